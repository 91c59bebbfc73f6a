package clipboard

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HopIT-Hub/InkChord/internal/logger"
)

func TestExec_Command(t *testing.T) {
	type tc struct {
		exec Exec
		want []string
	}

	tests := map[string]tc{
		"xclip": {
			exec: Exec{},
			want: []string{"xclip", "-selection", "clipboard", "-t", "image/x-inkscape-svg", "-i"},
		},
		"wayland": {
			exec: Exec{Wayland: true},
			want: []string{"wl-copy", "--type", "image/x-inkscape-svg"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.exec.command("image/x-inkscape-svg"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("command() = %v, want %v", got, tt.want)
			}
		})
	}
}

// fakeTool puts an executable shell script named name on a fresh PATH.
func fakeTool(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	dir := t.TempDir()
	if name != "" {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+script), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", dir)
	return dir
}

func TestExec_WriteReturnsWhileDaemonServes(t *testing.T) {
	dir := fakeTool(t, "xclip", `/bin/cat > "${0%/*}/payload"
echo "$@" > "${0%/*}/args"
( /bin/sleep 5 ) &
exit 0
`)

	done := make(chan error, 1)
	go func() { done <- Exec{}.Write("image/x-inkscape-svg", "<svg/>") }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Write() still blocked while the clipboard daemon runs")
	}

	got, err := os.ReadFile(filepath.Join(dir, "payload"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<svg/>" {
		t.Errorf("payload = %q, want %q", got, "<svg/>")
	}
	args, err := os.ReadFile(filepath.Join(dir, "args"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "-selection clipboard -t image/x-inkscape-svg -i\n"; string(args) != want {
		t.Errorf("args = %q, want %q", args, want)
	}
}

func TestExec_WriteFailure(t *testing.T) {
	fakeTool(t, "xclip", "/bin/cat > /dev/null\nexit 1\n")

	if err := (Exec{}).Write("image/x-inkscape-svg", "<svg/>"); err == nil {
		t.Fatal("Write() error = nil, want exit failure")
	}
}

func TestNew(t *testing.T) {
	type tc struct {
		tool     string
		wayland  string
		want     Writer
		wantName string
		wantWarn bool
	}

	tests := map[string]tc{
		"wayland":            {tool: "wl-copy", wayland: "wayland-0", want: Exec{Wayland: true}, wantName: "wl-copy"},
		"x11":                {tool: "xclip", want: Exec{}, wantName: "xclip"},
		"wayland via xclip":  {tool: "xclip", wayland: "wayland-0", want: Exec{}, wantName: "xclip", wantWarn: true},
		"no tools":           {want: Text{}, wantName: "text"},
		"wayland, no tools":  {wayland: "wayland-0", want: Text{}, wantName: "text", wantWarn: true},
		"wl-copy without wl": {tool: "wl-copy", want: Text{}, wantName: "text"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fakeTool(t, tt.tool, "exit 0\n")
			t.Setenv("WAYLAND_DISPLAY", tt.wayland)

			core, logs := observer.New(zap.InfoLevel)
			ctx := logger.NewContext(context.Background(), zap.New(core))

			if got := New(ctx); got != tt.want {
				t.Errorf("New() = %#v, want %#v", got, tt.want)
			}
			chosen := logs.FilterMessage("clipboard writer").All()
			if len(chosen) != 1 {
				t.Fatalf("got %d writer log entries, want 1", len(chosen))
			}
			if got := chosen[0].ContextMap()["writer"]; got != tt.wantName {
				t.Errorf("logged writer = %v, want %q", got, tt.wantName)
			}
			if warned := logs.FilterMessage("wayland session without wl-copy").Len() > 0; warned != tt.wantWarn {
				t.Errorf("warned = %v, want %v", warned, tt.wantWarn)
			}
		})
	}
}
