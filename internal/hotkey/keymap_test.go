package hotkey

import "testing"

func TestParseModifiers(t *testing.T) {
	type tc struct {
		names   []string
		wantLen int
		wantErr bool
	}

	tests := map[string]tc{
		"none":           {names: nil, wantLen: 0},
		"ctrl alt":       {names: []string{"ctrl", "alt"}, wantLen: 2},
		"mixed case":     {names: []string{"Shift", "SUPER"}, wantLen: 2},
		"unknown":        {names: []string{"hyper"}, wantErr: true},
		"one bad of two": {names: []string{"ctrl", "meta"}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mods, err := ParseModifiers(tt.names)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModifiers(%v) error = %v, wantErr %v", tt.names, err, tt.wantErr)
			}
			if !tt.wantErr && len(mods) != tt.wantLen {
				t.Errorf("ParseModifiers(%v) len = %d, want %d", tt.names, len(mods), tt.wantLen)
			}
		})
	}
}

func TestParseKey_AttributeKeys(t *testing.T) {
	for _, name := range []string{"1", "2", "3", "q", "w", "e", "a", "s", "d", "z", "x", "space", "t"} {
		if _, err := ParseKey(name); err != nil {
			t.Errorf("ParseKey(%q) error = %v", name, err)
		}
	}
	if _, err := ParseKey("hyper"); err == nil {
		t.Error("ParseKey(hyper) error = nil, want error")
	}
}
