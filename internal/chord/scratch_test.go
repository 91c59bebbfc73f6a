package chord

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/HopIT-Hub/InkChord/internal/style"
)

func newTestScratch(ed *fakeEditor) (*Scratch, *fakeIO) {
	io := &fakeIO{}
	s := NewScratch(ScratchOpts{
		Editor:    ed,
		Transport: io,
		Driver:    io,
		NoDelay:   true,
	})
	return s, io
}

func TestScratch_PastesText(t *testing.T) {
	ed := &fakeEditor{text: "x=1"}
	s, io := newTestScratch(ed)

	if !s.Dispatch() {
		t.Fatal("Dispatch() = false, want true")
	}
	s.Wait()

	writes, keys := io.snapshot()
	if len(writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(writes))
	}
	if writes[0].mime != style.MIME {
		t.Errorf("mime = %q, want %q", writes[0].mime, style.MIME)
	}
	for _, want := range []string{"x=1", "font-family:'Monospace'", "font-size:16px"} {
		if !strings.Contains(writes[0].payload, want) {
			t.Errorf("payload missing %q:\n%s", want, writes[0].payload)
		}
	}
	if !reflect.DeepEqual(keys, pasteChord) {
		t.Errorf("keys = %v, want %v", keys, pasteChord)
	}
	if s.Active() {
		t.Error("Active() = true after session finished")
	}
}

func TestScratch_EditorFailure(t *testing.T) {
	ed := &fakeEditor{err: errors.New("editor did not exit cleanly")}
	s, io := newTestScratch(ed)

	s.Dispatch()
	s.Wait()

	writes, keys := io.snapshot()
	if len(writes) != 0 || len(keys) != 0 {
		t.Errorf("writes=%d keys=%d after failure, want none", len(writes), len(keys))
	}
	if s.Active() {
		t.Error("Active() = true after failed session")
	}
	if ed.Calls() != 1 {
		t.Errorf("editor calls = %d, want 1", ed.Calls())
	}
}

func TestScratch_AtMostOne(t *testing.T) {
	ed := &fakeEditor{
		text:    "hi",
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	s, _ := newTestScratch(ed)

	if s.Active() {
		t.Fatal("Active() = true before first dispatch")
	}
	if !s.Dispatch() {
		t.Fatal("first Dispatch() = false")
	}
	<-ed.started
	if s.Dispatch() {
		t.Error("second Dispatch() = true while a session is running")
	}
	if !s.Active() {
		t.Error("Active() = false while a session is running")
	}
	close(ed.release)
	s.Wait()

	if ed.Calls() != 1 {
		t.Errorf("editor calls = %d, want 1", ed.Calls())
	}
	if s.Active() {
		t.Error("Active() = true after session finished")
	}
}

func TestScratch_DispatchDoesNotBlock(t *testing.T) {
	ed := &fakeEditor{release: make(chan struct{})}
	s, _ := newTestScratch(ed)

	done := make(chan struct{})
	go func() {
		s.Dispatch()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch() blocked on the editor")
	}
	close(ed.release)
	s.Wait()
}

func TestScratch_ReleasesAfterPanic(t *testing.T) {
	s := NewScratch(ScratchOpts{
		Editor:    &fakeEditor{text: "x"},
		Transport: panicWriter{},
		Driver:    &fakeIO{},
		NoDelay:   true,
	})

	s.Dispatch()
	s.Wait()
	if s.Active() {
		t.Error("Active() = true after panicking session")
	}
	if !s.Dispatch() {
		t.Error("Dispatch() = false after a panicking session")
	}
	s.Wait()
}

func TestMachine_ScratchKeyDispatches(t *testing.T) {
	ed := &fakeEditor{text: "x=1"}
	s, _ := newTestScratch(ed)
	m, _ := newTestMachine(s)

	if v := m.Handle(down(KeyScratch)); v != Forward {
		t.Errorf("Handle(scratch) while idle = %v, want forward", v)
	}
	s.Wait()

	m.Handle(down(KeyTrigger))
	if v := m.Handle(down(KeyScratch)); v != Suppress {
		t.Errorf("Handle(scratch) while forming = %v, want suppress", v)
	}
	m.Handle(up(KeyTrigger))
	s.Wait()

	if ed.Calls() != 2 {
		t.Errorf("editor calls = %d, want 2", ed.Calls())
	}
}
