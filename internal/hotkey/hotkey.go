package hotkey

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.design/x/hotkey"
)

// repeatWindow is how long a keyup is held back on Linux. X11 auto-repeat
// produces keyup/keydown pairs while a key is held; a keydown inside the
// window cancels the pending keyup.
const repeatWindow = 50 * time.Millisecond

// Manager owns one global hotkey and reports its presses and releases.
type Manager struct {
	mu     sync.Mutex
	hk     *hotkey.Hotkey
	cancel context.CancelFunc
	onDown func()
	onUp   func()
}

// NewManager creates a hotkey manager with callbacks for key-down and key-up.
// Either callback may be nil.
func NewManager(onDown, onUp func()) *Manager {
	return &Manager{
		onDown: onDown,
		onUp:   onUp,
	}
}

// Register sets up a global hotkey with the given modifiers and key.
// If a hotkey is already registered, it is unregistered first.
func (m *Manager) Register(mods []string, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unregisterLocked()

	parsedMods, err := ParseModifiers(mods)
	if err != nil {
		return fmt.Errorf("parse modifiers: %w", err)
	}
	parsedKey, err := ParseKey(key)
	if err != nil {
		return fmt.Errorf("parse key: %w", err)
	}

	hk := hotkey.New(parsedMods, parsedKey)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey: %w", err)
	}
	m.hk = hk

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.listen(ctx, hk, runtime.GOOS == "linux")

	zap.L().Named("hotkey").Debug("registered", zap.Strings("modifiers", mods), zap.String("key", key))
	return nil
}

// listen loops on keydown/keyup channels and calls the callbacks.
func (m *Manager) listen(ctx context.Context, hk *hotkey.Hotkey, debounce bool) {
	var (
		pending *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.Keydown():
			if pending != nil {
				// Auto-repeat: swallow both halves of the pair.
				pending.Stop()
				pending, fire = nil, nil
				continue
			}
			if m.onDown != nil {
				m.onDown()
			}
		case <-hk.Keyup():
			if !debounce {
				if m.onUp != nil {
					m.onUp()
				}
				continue
			}
			pending = time.NewTimer(repeatWindow)
			fire = pending.C
		case <-fire:
			pending, fire = nil, nil
			if m.onUp != nil {
				m.onUp()
			}
		}
	}
}

// Unregister removes the current global hotkey.
func (m *Manager) Unregister() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unregisterLocked()
}

func (m *Manager) unregisterLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.hk != nil {
		m.hk.Unregister()
		m.hk = nil
	}
}
