package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile_CreatesDefault(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.GetBackend() != BackendGrab {
		t.Errorf("backend = %q, want %q", cfg.GetBackend(), BackendGrab)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "//") {
		t.Errorf("saved config should start with a comment header, got %q", data[:20])
	}

	// The written file, comments included, must load back.
	again, err := LoadFile(p)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if again.GetTrigger().String() != "Alt+Space" {
		t.Errorf("trigger = %q, want Alt+Space", again.GetTrigger().String())
	}
}

func TestLoadFile(t *testing.T) {
	type tc struct {
		body    string
		wantErr bool
		check   func(t *testing.T, c *Config)
	}

	tests := map[string]tc{
		"comments and trailing commas": {
			body: `{
				// use libuiohook
				"backend": "hook",
				"trigger": {"key": "alt",},
			}`,
			check: func(t *testing.T, c *Config) {
				if c.GetBackend() != BackendHook {
					t.Errorf("backend = %q, want hook", c.GetBackend())
				}
				if c.GetTrigger().Key != "alt" {
					t.Errorf("trigger key = %q, want alt", c.GetTrigger().Key)
				}
			},
		},
		"missing fields keep defaults": {
			body: `{"text": {"font_size": 20}}`,
			check: func(t *testing.T, c *Config) {
				if got := c.GetText(); got.FontSize != 20 || got.FontFamily != "Monospace" {
					t.Errorf("text = %+v, want Monospace/20", got)
				}
				if c.GetEditor().Terminal != "urxvt" {
					t.Errorf("editor terminal = %q, want urxvt", c.GetEditor().Terminal)
				}
				if c.GetScratch().Key != "t" {
					t.Errorf("scratch key = %q, want t", c.GetScratch().Key)
				}
			},
		},
		"unknown backend": {
			body:    `{"backend": "evdev"}`,
			wantErr: true,
		},
		"empty trigger": {
			body:    `{"trigger": {"key": ""}}`,
			wantErr: true,
		},
		"bad font size": {
			body:    `{"text": {"font_size": 0}}`,
			wantErr: true,
		},
		"malformed": {
			body:    `{"backend": `,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(p, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadFile(p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestSetAutoStart_Persists(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetAutoStart(true); err != nil {
		t.Fatalf("SetAutoStart() error = %v", err)
	}
	again, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !again.GetAutoStart() {
		t.Error("auto_start not persisted")
	}
}

func TestHotkeyConfig_String(t *testing.T) {
	tests := map[string]struct {
		hk   HotkeyConfig
		want string
	}{
		"alt space":    {HotkeyConfig{Modifiers: []string{"alt"}, Key: "space"}, "Alt+Space"},
		"ctrl shift t": {HotkeyConfig{Modifiers: []string{"ctrl", "shift"}, Key: "t"}, "Ctrl+Shift+T"},
		"digit":        {HotkeyConfig{Modifiers: []string{"super"}, Key: "1"}, "Super+1"},
		"bare key":     {HotkeyConfig{Key: "alt"}, "Alt"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.hk.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetTrigger_ReturnsCopy(t *testing.T) {
	cfg := DefaultConfig()
	hk := cfg.GetTrigger()
	hk.Modifiers[0] = "ctrl"
	if cfg.GetTrigger().Modifiers[0] != "alt" {
		t.Error("GetTrigger() exposed the internal slice")
	}
}
