// Package inject sends synthetic key events to the focused application.
package inject

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/multierr"
)

// Key is a key the paste-style chord needs.
type Key int

const (
	ControlOrMeta Key = iota // Cmd on macOS, Ctrl elsewhere
	Shift
	V
)

func (k Key) String() string {
	switch k {
	case ControlOrMeta:
		return "ControlOrMeta"
	case Shift:
		return "Shift"
	case V:
		return "V"
	default:
		return "unknown"
	}
}

// Driver injects OS-level key events.
type Driver interface {
	KeyDown(k Key) error
	KeyUp(k Key) error
	KeyClick(k Key) error
}

// DefaultSettle is how long to wait before the first synthetic event. Events
// sent immediately after the previous clipboard or window change are
// sometimes dropped.
const DefaultSettle = 10 * time.Millisecond

// PasteStyle performs Ctrl+Shift+V (Cmd+Shift+V on macOS). Every step is
// attempted even if an earlier one failed, so modifiers are never left held.
func PasteStyle(d Driver, settle time.Duration) error {
	time.Sleep(settle)

	var err error
	err = multierr.Append(err, d.KeyDown(ControlOrMeta))
	err = multierr.Append(err, d.KeyDown(Shift))
	err = multierr.Append(err, d.KeyClick(V))
	err = multierr.Append(err, d.KeyUp(ControlOrMeta))
	err = multierr.Append(err, d.KeyUp(Shift))
	if err != nil {
		return fmt.Errorf("paste style: %w", err)
	}
	return nil
}

// Xdotool drives input through the xdotool binary.
type Xdotool struct {
	// Path is the xdotool executable; empty means "xdotool" on $PATH.
	Path string
}

func (x Xdotool) KeyDown(k Key) error  { return x.run("keydown", k) }
func (x Xdotool) KeyUp(k Key) error    { return x.run("keyup", k) }
func (x Xdotool) KeyClick(k Key) error { return x.run("key", k) }

func (x Xdotool) run(action string, k Key) error {
	name := keysym(k, runtime.GOOS)
	if name == "" {
		return fmt.Errorf("xdotool %s: unsupported key %v", action, k)
	}
	path := x.Path
	if path == "" {
		path = "xdotool"
	}
	if out, err := exec.Command(path, action, name).CombinedOutput(); err != nil {
		return fmt.Errorf("xdotool %s %s: %w (%s)", action, name, err, out)
	}
	return nil
}

// keysym maps k to the X keysym name xdotool expects.
func keysym(k Key, goos string) string {
	switch k {
	case ControlOrMeta:
		if goos == "darwin" {
			return "super"
		}
		return "ctrl"
	case Shift:
		return "shift"
	case V:
		return "v"
	default:
		return ""
	}
}
