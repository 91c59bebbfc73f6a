// Package config handles loading and saving the InkChord configuration.
//
// The file is JSON with comments and trailing commas allowed (HuJSON).
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tailscale/hujson"

	"github.com/HopIT-Hub/InkChord/internal/editor"
)

// Key event backends.
const (
	BackendGrab = "grab" // golang.design/x/hotkey grabs; suppresses capture keys
	BackendHook = "hook" // libuiohook stream; bare-key trigger, no suppression
)

// Config holds the application configuration.
type Config struct {
	mu        sync.RWMutex `json:"-"`
	Backend   string       `json:"backend"`
	Trigger   HotkeyConfig `json:"trigger"`
	Scratch   HotkeyConfig `json:"scratch"`
	Editor    EditorConfig `json:"editor"`
	Text      TextConfig   `json:"text"`
	AutoStart bool         `json:"auto_start"`

	path string // file the config is saved to
}

// HotkeyConfig defines a global hotkey binding. The hook backend ignores
// Modifiers and watches Key alone.
type HotkeyConfig struct {
	Modifiers []string `json:"modifiers"` // "ctrl", "shift", "alt", "super"
	Key       string   `json:"key"`       // "space", "t", "alt" (hook backend), etc.
}

// String returns a human-readable representation like "Alt+Space".
func (h HotkeyConfig) String() string {
	s := ""
	for _, m := range h.Modifiers {
		switch m {
		case "ctrl":
			s += "Ctrl+"
		case "shift":
			s += "Shift+"
		case "alt":
			s += "Alt+"
		case "super":
			s += "Super+"
		}
	}
	if len(h.Key) == 1 {
		s += strings.ToUpper(h.Key)
	} else if h.Key != "" {
		s += strings.ToUpper(h.Key[:1]) + h.Key[1:]
	}
	return s
}

// EditorConfig configures the scratch editor popup.
type EditorConfig struct {
	Terminal     string   `json:"terminal"`
	Geometry     string   `json:"geometry"`
	WindowName   string   `json:"window_name"`
	Font         string   `json:"font"`
	Shell        string   `json:"shell"`
	Command      string   `json:"command"`
	Suffix       string   `json:"suffix"`
	ActivateHost []string `json:"activate_host"`
}

// Options converts the config into editor options.
func (e EditorConfig) Options() editor.Options {
	return editor.Options{
		Terminal:     e.Terminal,
		Geometry:     e.Geometry,
		WindowName:   e.WindowName,
		Font:         e.Font,
		Shell:        e.Shell,
		Command:      e.Command,
		Suffix:       e.Suffix,
		ActivateHost: append([]string(nil), e.ActivateHost...),
	}
}

// TextConfig sets the font of pasted scratch text.
type TextConfig struct {
	FontFamily string `json:"font_family"`
	FontSize   int    `json:"font_size"` // px
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	ed := editor.DefaultOptions()
	return &Config{
		Backend: BackendGrab,
		Trigger: HotkeyConfig{
			Modifiers: []string{"alt"},
			Key:       "space",
		},
		Scratch: HotkeyConfig{
			Modifiers: []string{"alt"},
			Key:       "t",
		},
		Editor: EditorConfig{
			Terminal:     ed.Terminal,
			Geometry:     ed.Geometry,
			WindowName:   ed.WindowName,
			Font:         ed.Font,
			Shell:        ed.Shell,
			Command:      ed.Command,
			Suffix:       ed.Suffix,
			ActivateHost: ed.ActivateHost,
		},
		Text: TextConfig{
			FontFamily: "Monospace",
			FontSize:   16,
		},
	}
}

// Dir returns the OS-appropriate config directory for inkchord.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, "inkchord"), nil
}

// Path returns the full path to the default config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(p)
}

// LoadFile reads the config at p. If the file doesn't exist, it creates a
// default config there.
func LoadFile(p string) (*Config, error) {
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = p
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, fmt.Errorf("create default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg := DefaultConfig() // start with defaults so new fields get populated
	cfg.path = p
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", p, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendGrab, BackendHook:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendGrab, BackendHook)
	}
	if c.Trigger.Key == "" {
		return fmt.Errorf("trigger key is required")
	}
	if c.Text.FontSize <= 0 {
		return fmt.Errorf("text font_size must be positive, got %d", c.Text.FontSize)
	}
	return nil
}

const header = "// InkChord configuration. Comments and trailing commas are allowed.\n"

// Save writes the config to disk atomically (write temp, rename).
func (c *Config) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c, "", "  ")
	p := c.path
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if p == "" {
		if p, err = Path(); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.Write(data)
	buf.WriteByte('\n')

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// GetBackend returns the key event backend name.
func (c *Config) GetBackend() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Backend
}

// GetTrigger returns a copy of the capture trigger binding.
func (c *Config) GetTrigger() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Trigger.clone()
}

// GetScratch returns a copy of the scratch editor binding.
func (c *Config) GetScratch() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Scratch.clone()
}

func (h HotkeyConfig) clone() HotkeyConfig {
	mods := make([]string, len(h.Modifiers))
	copy(mods, h.Modifiers)
	return HotkeyConfig{Modifiers: mods, Key: h.Key}
}

// GetEditor returns the editor options.
func (c *Config) GetEditor() editor.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Editor.Options()
}

// GetText returns the scratch text font settings.
func (c *Config) GetText() TextConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Text
}

// GetAutoStart returns the current auto-start setting.
func (c *Config) GetAutoStart() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AutoStart
}

// SetAutoStart updates the auto-start setting and saves to disk.
func (c *Config) SetAutoStart(enabled bool) error {
	c.mu.Lock()
	c.AutoStart = enabled
	c.mu.Unlock()
	return c.Save()
}
