//go:build linux

package autostart

import (
	"os"
	"strings"
	"testing"
)

func TestDesktopEntry(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if IsEnabled() {
		t.Fatal("IsEnabled() = true before Enable")
	}
	if err := writeDesktopEntry("/opt/ink chord/inkchord", []string{"-config", "/tmp/c.json"}); err != nil {
		t.Fatalf("writeDesktopEntry() error = %v", err)
	}
	if !IsEnabled() {
		t.Fatal("IsEnabled() = false after Enable")
	}

	p, _ := desktopFilePath()
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if want := `Exec="/opt/ink chord/inkchord" -config /tmp/c.json`; !strings.Contains(string(data), want) {
		t.Errorf("desktop entry missing %q:\n%s", want, data)
	}

	if err := Disable(); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}
	if IsEnabled() {
		t.Error("IsEnabled() = true after Disable")
	}
	if err := Disable(); err != nil {
		t.Errorf("second Disable() error = %v, want nil", err)
	}
}
