// Package chord turns the global key stream into style pastes.
//
// While the trigger key is held the machine is Forming: attribute keys
// edit a fresh style and every key event is swallowed so nothing leaks into
// the focused application. Releasing the trigger puts the style on the
// clipboard and sends the paste-style chord.
package chord

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/HopIT-Hub/InkChord/internal/clipboard"
	"github.com/HopIT-Hub/InkChord/internal/inject"
	"github.com/HopIT-Hub/InkChord/internal/style"
)

// State is the capture state.
type State int32

const (
	Idle State = iota
	Forming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Forming:
		return "forming"
	default:
		return "unknown"
	}
}

// MachineOpts configures a Machine.
type MachineOpts struct {
	Transport clipboard.Writer
	Driver    inject.Driver
	Scratch   *Scratch          // optional; handles KeyScratch
	Log       *zap.Logger       // optional
	OnChange  func(state State) // optional; called on every transition
	Settle    time.Duration     // wait before the paste chord; 0 uses inject.DefaultSettle
	NoSettle  bool              // skip the wait entirely
}

// Machine is the chord-capture state machine. Handle must be called from a
// single goroutine; State and LastPayload are safe from any goroutine.
type Machine struct {
	transport clipboard.Writer
	driver    inject.Driver
	scratch   *Scratch
	log       *zap.Logger
	onChange  func(State)
	settle    time.Duration

	forming bool
	style   style.Style

	state atomic.Int32
	mu    sync.Mutex
	last  string
}

// NewMachine creates an idle machine.
func NewMachine(opts MachineOpts) *Machine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	settle := opts.Settle
	if settle == 0 {
		settle = inject.DefaultSettle
	}
	if opts.NoSettle {
		settle = 0
	}
	return &Machine{
		transport: opts.Transport,
		driver:    opts.Driver,
		scratch:   opts.Scratch,
		log:       log.Named("chord"),
		onChange:  opts.OnChange,
		settle:    settle,
		style:     style.New(),
	}
}

// Handle processes one key event and reports whether the source should
// pass it on. Events seen while a capture is in progress, including the
// trigger press that starts it and the release that ends it, are
// suppressed. Handle never panics.
func (m *Machine) Handle(ev Event) (v Verdict) {
	wasForming := m.forming
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("key handler panic", zap.Any("panic", r), zap.Stringer("key", ev.Key))
		}
		if wasForming || m.forming {
			v = Suppress
		} else {
			v = Forward
		}
	}()

	switch {
	case ev.Key == KeyScratch && ev.Down:
		if m.scratch != nil {
			m.scratch.Dispatch()
		}
	case ev.Key == KeyTrigger && ev.Down:
		// Auto-repeat sends further presses while held; keep the live style.
		if !m.forming {
			m.begin()
		}
	case ev.Key == KeyTrigger:
		if m.forming {
			m.apply()
		}
	case ev.Down && m.forming:
		m.update(ev.Key)
	}
	return Forward
}

// State returns the current capture state.
func (m *Machine) State() State {
	return State(m.state.Load())
}

// LastPayload returns the most recently applied style payload, or "".
func (m *Machine) LastPayload() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *Machine) begin() {
	m.style = style.New()
	m.forming = true
	m.setState(Forming)
	m.log.Info("capture started")
}

func (m *Machine) update(k Key) {
	mut, ok := mutations[k]
	if !ok {
		return
	}
	mut.apply(&m.style)
	m.log.Info("style changed", zap.String(mut.label, mut.value))
}

func (m *Machine) apply() {
	payload := m.style.SVG()
	m.forming = false
	m.style = style.New()
	m.setState(Idle)

	m.mu.Lock()
	m.last = payload
	m.mu.Unlock()

	if err := m.transport.Write(style.MIME, payload); err != nil {
		m.log.Warn("clipboard write", zap.Error(err))
	}
	if err := inject.PasteStyle(m.driver, m.settle); err != nil {
		m.log.Warn("paste chord", zap.Error(err))
	}
	m.log.Info("capture applied")
}

func (m *Machine) setState(s State) {
	m.state.Store(int32(s))
	if m.onChange != nil {
		m.onChange(s)
	}
}
