package hotkey

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/HopIT-Hub/InkChord/internal/chord"
	"github.com/HopIT-Hub/InkChord/internal/logger"
)

// Handler decides the fate of one key event. It is always called from the
// source's Run goroutine.
type Handler func(chord.Event) chord.Verdict

// Source feeds key events to a handler until ctx is cancelled.
type Source interface {
	Run(ctx context.Context, h Handler) error
}

// Binding is a modifier chord such as Alt+Space.
type Binding struct {
	Modifiers []string
	Key       string
}

// registrar is one global chord. *Manager is the production implementation.
type registrar interface {
	Register(mods []string, key string) error
	Unregister()
}

// Grab is a Source built on global hotkey grabs. The trigger and scratch
// chords are grabbed for the whole run. While a capture is in progress every
// key in the key map is grabbed with the trigger's modifiers, so presses
// such as Alt+F stay away from the focused window; attribute keys reach the
// handler as themselves and the rest as chord.KeyOther. Outside a capture
// those chords type normally.
//
// A grabbed chord is consumed by the OS grab itself, so a Forward verdict
// for the trigger or scratch chord cannot be replayed to other windows.
// Chords with a different modifier set than the trigger's are not grabbed
// and still reach the focused window during a capture.
type Grab struct {
	Trigger Binding
	Scratch Binding // optional; zero Key disables the scratch chord

	newHotkey func(onDown, onUp func()) registrar
}

// Run registers the hotkeys and delivers their events to h.
func (g *Grab) Run(ctx context.Context, h Handler) error {
	log := logger.L(ctx).Named("hotkey")
	newHotkey := g.newHotkey
	if newHotkey == nil {
		newHotkey = func(onDown, onUp func()) registrar { return NewManager(onDown, onUp) }
	}

	events := make(chan chord.Event, 32)
	post := func(ev chord.Event) func() {
		return func() {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}
	}

	trigger := newHotkey(
		post(chord.Event{Key: chord.KeyTrigger, Down: true}),
		post(chord.Event{Key: chord.KeyTrigger}),
	)
	if err := trigger.Register(g.Trigger.Modifiers, g.Trigger.Key); err != nil {
		return fmt.Errorf("trigger hotkey: %w", err)
	}
	defer trigger.Unregister()

	if g.Scratch.Key != "" {
		scratch := newHotkey(post(chord.Event{Key: chord.KeyScratch, Down: true}), nil)
		if err := scratch.Register(g.Scratch.Modifiers, g.Scratch.Key); err != nil {
			log.Warn("scratch hotkey register failed", zap.Error(err))
		} else {
			defer scratch.Unregister()
		}
	}

	keys := captureKeys(g.Trigger, g.Scratch)
	var held []registrar
	grab := func() {
		for _, ck := range keys {
			r := newHotkey(post(chord.Event{Key: ck.key, Down: true}), post(chord.Event{Key: ck.key}))
			if err := r.Register(g.Trigger.Modifiers, ck.name); err != nil {
				log.Warn("capture hotkey register failed", zap.String("key", ck.name), zap.Error(err))
				continue
			}
			held = append(held, r)
		}
	}
	release := func() {
		for _, r := range held {
			r.Unregister()
		}
		held = nil
	}
	defer func() { release() }()

	log.Info("listening",
		zap.Strings("modifiers", g.Trigger.Modifiers),
		zap.String("trigger", g.Trigger.Key),
		zap.String("scratch", g.Scratch.Key))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			v := h(ev)
			if ev.Key != chord.KeyTrigger {
				continue
			}
			switch {
			case ev.Down && v == chord.Suppress && held == nil:
				grab()
			case !ev.Down:
				release()
			}
		}
	}
}

type captureKey struct {
	name string
	key  chord.Key
}

// captureKeys lists the chords grabbed during a capture: every mapped key
// except the trigger itself and a scratch chord sharing the trigger's
// modifiers, in name order.
func captureKeys(trigger, scratch Binding) []captureKey {
	names := make([]string, 0, len(keyMap))
	for name := range keyMap {
		if strings.EqualFold(name, trigger.Key) {
			continue
		}
		if strings.EqualFold(name, scratch.Key) && sameModifiers(scratch.Modifiers, trigger.Modifiers) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	keys := make([]captureKey, len(names))
	for i, name := range names {
		k, _ := chord.KeyByName(name)
		keys[i] = captureKey{name: name, key: k}
	}
	return keys
}

func sameModifiers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, m := range a {
		seen[strings.ToLower(m)]++
	}
	for _, m := range b {
		m = strings.ToLower(m)
		if seen[m] == 0 {
			return false
		}
		seen[m]--
	}
	return true
}
