package chord

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/HopIT-Hub/InkChord/internal/clipboard"
	"github.com/HopIT-Hub/InkChord/internal/inject"
	"github.com/HopIT-Hub/InkChord/internal/style"
)

// Editor collects text from the user.
type Editor interface {
	Open(ctx context.Context) (string, error)
}

// Default text payload font.
const (
	DefaultFontFamily = "Monospace"
	DefaultFontSize   = 16
)

// pasteDelay gives the clipboard owner time to take over the selection
// before Inkscape asks for it.
const pasteDelay = 100 * time.Millisecond

// ScratchOpts configures a Scratch dispatcher.
type ScratchOpts struct {
	Editor     Editor
	Transport  clipboard.Writer
	Driver     inject.Driver
	Log        *zap.Logger       // optional
	FontFamily string            // optional; DefaultFontFamily
	FontSize   int               // optional; DefaultFontSize, in px
	OnChange   func(active bool) // optional
	NoDelay    bool              // skip settle waits, for tests
}

// Scratch runs at most one scratch-edit session at a time. Sessions run on
// their own goroutine so the key handler never waits on the editor.
type Scratch struct {
	editor    Editor
	transport clipboard.Writer
	driver    inject.Driver
	log       *zap.Logger
	family    string
	size      int
	onChange  func(bool)

	pasteDelay time.Duration
	settle     time.Duration

	active atomic.Bool
	wg     sync.WaitGroup
}

// NewScratch creates an inactive dispatcher.
func NewScratch(opts ScratchOpts) *Scratch {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scratch{
		editor:     opts.Editor,
		transport:  opts.Transport,
		driver:     opts.Driver,
		log:        log.Named("scratch"),
		family:     opts.FontFamily,
		size:       opts.FontSize,
		onChange:   opts.OnChange,
		pasteDelay: pasteDelay,
		settle:     inject.DefaultSettle,
	}
	if s.family == "" {
		s.family = DefaultFontFamily
	}
	if s.size <= 0 {
		s.size = DefaultFontSize
	}
	if opts.NoDelay {
		s.pasteDelay = 0
		s.settle = 0
	}
	return s
}

// Dispatch starts a session unless one is already running. It never blocks
// and reports whether a session was started.
func (s *Scratch) Dispatch() bool {
	if !s.active.CompareAndSwap(false, true) {
		s.log.Debug("session already running")
		return false
	}
	s.notify(true)

	s.wg.Add(1)
	go s.run()
	return true
}

// Active reports whether a session is running.
func (s *Scratch) Active() bool {
	return s.active.Load()
}

// Wait blocks until every started session has finished.
func (s *Scratch) Wait() {
	s.wg.Wait()
}

func (s *Scratch) run() {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("session panic", zap.Any("panic", r))
		}
		s.active.Store(false)
		s.notify(false)
	}()

	text, err := s.editor.Open(context.Background())
	if err != nil {
		s.log.Error("editor", zap.Error(err))
		return
	}
	s.log.Info("text captured", zap.Int("bytes", len(text)))

	payload := style.Text(text, s.family, s.size)
	if err := s.transport.Write(style.MIME, payload); err != nil {
		s.log.Warn("clipboard write", zap.Error(err))
	}
	time.Sleep(s.pasteDelay)
	if err := inject.PasteStyle(s.driver, s.settle); err != nil {
		s.log.Warn("paste chord", zap.Error(err))
	}
}

func (s *Scratch) notify(active bool) {
	if s.onChange != nil {
		s.onChange(active)
	}
}
