// Package keyhook observes every global key press through libuiohook.
//
// Unlike hotkey grabs it sees bare keys, so a lone modifier such as Alt can
// be the trigger. It cannot swallow events: suppress verdicts are only
// logged, and keystrokes made during a capture also reach the focused
// window.
package keyhook

import (
	"context"
	"errors"
	"strings"

	hook "github.com/robotn/gohook"
	"go.uber.org/zap"

	"github.com/HopIT-Hub/InkChord/internal/chord"
	"github.com/HopIT-Hub/InkChord/internal/hotkey"
	"github.com/HopIT-Hub/InkChord/internal/logger"
)

// Source is a hotkey.Source fed by the libuiohook event stream.
type Source struct {
	Trigger string // key name, e.g. "alt"
	Scratch string // key name, e.g. "t"; empty disables the scratch key
}

var _ hotkey.Source = (*Source)(nil)

// Run starts the hook and delivers key events to h until ctx is cancelled.
func (s *Source) Run(ctx context.Context, h hotkey.Handler) error {
	log := logger.L(ctx).Named("keyhook")

	evs := hook.Start()
	defer hook.End()

	log.Info("listening", zap.String("trigger", s.Trigger), zap.String("scratch", s.Scratch))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-evs:
			if !ok {
				return errors.New("keyhook: event stream closed")
			}
			var down bool
			switch ev.Kind {
			case hook.KeyHold:
				down = true
			case hook.KeyUp:
			default:
				continue
			}
			ce := chord.Event{Key: s.keyFor(hook.RawcodetoKeychar(ev.Rawcode)), Down: down}
			if v := h(ce); v == chord.Suppress {
				log.Debug("cannot suppress", zap.Stringer("key", ce.Key), zap.Bool("down", down))
			}
		}
	}
}

// keyFor maps a libuiohook key name onto the chord key set. Left and right
// variants of the trigger ("ralt" for "alt") both match.
func (s *Source) keyFor(name string) chord.Key {
	name = strings.ToLower(name)
	switch {
	case name == "":
		return chord.KeyOther
	case matches(name, s.Trigger):
		return chord.KeyTrigger
	case matches(name, s.Scratch):
		return chord.KeyScratch
	}
	if k, ok := chord.KeyByName(name); ok {
		return k
	}
	return chord.KeyOther
}

func matches(name, want string) bool {
	want = strings.ToLower(want)
	if want == "" {
		return false
	}
	return name == want || name == "l"+want || name == "r"+want
}
