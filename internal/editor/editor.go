// Package editor opens a scratch file in a terminal text editor and returns
// what was typed into it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options describes the terminal and editor to launch.
type Options struct {
	Terminal     string   // terminal emulator binary, e.g. "urxvt"
	Geometry     string   // e.g. "40x15"
	WindowName   string   // window name used to find and focus the popup
	Font         string   // terminal font spec
	Shell        string   // shell the editor runs under
	Command      string   // editor command, the file path is appended
	Suffix       string   // scratch file suffix, selects the editor's filetype
	ActivateHost []string // command that refocuses the drawing application
}

// DefaultOptions returns a urxvt + nvim popup editing a .tex file.
func DefaultOptions() Options {
	return Options{
		Terminal:   "urxvt",
		Geometry:   "40x15",
		WindowName: "popup-middle-center",
		Font:       "xft:Monospace:size=17",
		Shell:      "fish",
		Command:    "nvim",
		Suffix:     ".tex",
		ActivateHost: []string{
			"xdotool", "search", "--name", "Inkscape", "windowactivate",
		},
	}
}

// Fixed waits around the editor window: the terminal needs a moment to map
// its window before it can be focused, and the host needs one to regain
// focus before synthetic keys reach it.
const (
	activateDelay = 100 * time.Millisecond
	settleDelay   = 100 * time.Millisecond
)

// ErrEditorFailed is returned when the editor exits unsuccessfully.
var ErrEditorFailed = errors.New("editor did not exit cleanly")

// Bridge runs the external editor.
type Bridge struct {
	opts   Options
	log    *zap.Logger
	newCmd func(ctx context.Context, path string) *exec.Cmd

	activateDelay time.Duration
	settleDelay   time.Duration
}

// New creates a bridge for opts.
func New(opts Options, log *zap.Logger) *Bridge {
	b := &Bridge{
		opts:          opts,
		log:           log.Named("editor"),
		activateDelay: activateDelay,
		settleDelay:   settleDelay,
	}
	b.newCmd = b.terminalCmd
	return b
}

// Open creates a scratch file, lets the user edit it, and returns its
// contents. The file is removed before Open returns. It blocks until the
// editor exits.
func (b *Bridge) Open(ctx context.Context) (string, error) {
	f, err := os.CreateTemp("", "inkchord-*"+b.opts.Suffix)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", multierr.Append(fmt.Errorf("close scratch file: %w", err), os.Remove(path))
	}

	cmd := b.newCmd(ctx, path)
	if err := cmd.Start(); err != nil {
		return "", multierr.Append(fmt.Errorf("start editor: %w", err), os.Remove(path))
	}
	b.log.Debug("editor started", zap.String("file", path), zap.Int("pid", cmd.Process.Pid))

	time.Sleep(b.activateDelay)
	if b.opts.WindowName != "" {
		b.run(ctx, "xdotool", "search", "--name", b.opts.WindowName, "windowactivate")
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%w: %v", ErrEditorFailed, exitErr)
		} else {
			err = fmt.Errorf("wait editor: %w", err)
		}
		return "", multierr.Append(err, os.Remove(path))
	}

	if len(b.opts.ActivateHost) > 0 {
		b.run(ctx, b.opts.ActivateHost[0], b.opts.ActivateHost[1:]...)
	}
	time.Sleep(b.settleDelay)

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		readErr = fmt.Errorf("read scratch file: %w", readErr)
	}
	if rmErr := os.Remove(path); rmErr != nil {
		readErr = multierr.Append(readErr, fmt.Errorf("remove scratch file: %w", rmErr))
	}
	if readErr != nil {
		return "", readErr
	}
	return string(data), nil
}

// run starts a helper command without waiting for it. Failures are logged
// only.
func (b *Bridge) run(ctx context.Context, name string, args ...string) {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		b.log.Warn("helper command", zap.String("cmd", name), zap.Error(err))
		return
	}
	go cmd.Wait() //nolint:errcheck
}

func (b *Bridge) terminalCmd(ctx context.Context, path string) *exec.Cmd {
	argv := b.terminalArgs(path)
	return exec.CommandContext(ctx, b.opts.Terminal, argv...)
}

func (b *Bridge) terminalArgs(path string) []string {
	var argv []string
	if b.opts.Geometry != "" {
		argv = append(argv, "-geometry", b.opts.Geometry)
	}
	if b.opts.WindowName != "" {
		argv = append(argv, "-name", b.opts.WindowName)
	}
	if b.opts.Font != "" {
		argv = append(argv, "-font", b.opts.Font)
	}
	return append(argv, "-e", b.opts.Shell, "-c", b.opts.Command+" "+shellQuote(path))
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
