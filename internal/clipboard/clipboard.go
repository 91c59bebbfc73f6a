// Package clipboard places typed payloads on the system clipboard.
//
// Inkscape only treats a paste as native SVG when the clipboard offers the
// image/x-inkscape-svg target, so the primary writers shell out to tools
// that can set an arbitrary target (wl-copy, xclip). Text falls back to a
// plain-text write, which Inkscape 1.x still parses as SVG markup.
package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"
	xclipboard "golang.design/x/clipboard"

	"github.com/HopIT-Hub/InkChord/internal/logger"
)

// Writer replaces the clipboard contents with payload under the given MIME
// type.
type Writer interface {
	Write(mime, payload string) error
}

// Exec writes through an external clipboard tool.
type Exec struct {
	// Wayland selects wl-copy instead of xclip.
	Wayland bool
}

// Write pipes payload into the clipboard tool.
//
// xclip and wl-copy fork a daemon that serves the selection until another
// client takes it. The daemon inherits stdout and stderr, so they must not
// be pipes or Write would wait for the next copy.
func (e Exec) Write(mime, payload string) error {
	argv := e.command(mime)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(payload)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

func (e Exec) command(mime string) []string {
	if e.Wayland {
		return []string{"wl-copy", "--type", mime}
	}
	return []string{"xclip", "-selection", "clipboard", "-t", mime, "-i"}
}

var (
	initOnce sync.Once
	initErr  error
)

// Text writes payload as plain text, ignoring the MIME type.
type Text struct{}

// Write stores payload as UTF-8 text.
func (Text) Write(_, payload string) error {
	initOnce.Do(func() { initErr = xclipboard.Init() })
	if initErr != nil {
		return fmt.Errorf("init clipboard: %w", initErr)
	}
	xclipboard.Write(xclipboard.FmtText, []byte(payload))
	return nil
}

// New returns the best writer for the current session and logs the choice.
func New(ctx context.Context) Writer {
	log := logger.L(ctx).Named("clipboard")

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if _, err := exec.LookPath("wl-copy"); err == nil {
			log.Info("clipboard writer", zap.String("writer", "wl-copy"))
			return Exec{Wayland: true}
		}
		log.Warn("wayland session without wl-copy")
	}
	if _, err := exec.LookPath("xclip"); err == nil {
		log.Info("clipboard writer", zap.String("writer", "xclip"))
		return Exec{}
	}
	log.Info("clipboard writer", zap.String("writer", "text"))
	return Text{}
}
