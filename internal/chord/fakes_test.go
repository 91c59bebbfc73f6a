package chord

import (
	"context"
	"sync"

	"github.com/HopIT-Hub/InkChord/internal/inject"
)

type write struct {
	mime    string
	payload string
}

// fakeIO records clipboard writes and synthetic keys in one ordered log.
type fakeIO struct {
	mu     sync.Mutex
	writes []write
	keys   []string
}

func (f *fakeIO) Write(mime, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, write{mime, payload})
	return nil
}

func (f *fakeIO) key(op string, k inject.Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, op+" "+k.String())
	return nil
}

func (f *fakeIO) KeyDown(k inject.Key) error  { return f.key("down", k) }
func (f *fakeIO) KeyUp(k inject.Key) error    { return f.key("up", k) }
func (f *fakeIO) KeyClick(k inject.Key) error { return f.key("click", k) }

func (f *fakeIO) snapshot() ([]write, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]write(nil), f.writes...), append([]string(nil), f.keys...)
}

var pasteChord = []string{
	"down ControlOrMeta",
	"down Shift",
	"click V",
	"up ControlOrMeta",
	"up Shift",
}

// fakeEditor returns text/err, optionally blocking until release is closed.
type fakeEditor struct {
	mu      sync.Mutex
	calls   int
	text    string
	err     error
	release chan struct{}
	started chan struct{}
}

func (e *fakeEditor) Open(ctx context.Context) (string, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.started != nil {
		e.started <- struct{}{}
	}
	if e.release != nil {
		<-e.release
	}
	return e.text, e.err
}

func (e *fakeEditor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}
