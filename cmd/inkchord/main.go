// InkChord — chord-driven style pasting for Inkscape.
//
// Hold the trigger (default: Alt+Space) and tap attribute keys, then
// release the trigger to paste the style onto the selection:
//   - 1 / 2 / 3: stroke width normal, thick, very thick
//   - Q / W / E: stroke solid, dashed, dotted
//   - A / S / D: fill white, grey, black
//   - Z / X:     arrow marker at start, end
//
// Scratch hotkey (default: Alt+T) opens a terminal editor and pastes what
// was typed as a text object.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/HopIT-Hub/InkChord/internal/autostart"
	"github.com/HopIT-Hub/InkChord/internal/chord"
	"github.com/HopIT-Hub/InkChord/internal/clipboard"
	"github.com/HopIT-Hub/InkChord/internal/config"
	"github.com/HopIT-Hub/InkChord/internal/editor"
	"github.com/HopIT-Hub/InkChord/internal/hotkey"
	"github.com/HopIT-Hub/InkChord/internal/inject"
	"github.com/HopIT-Hub/InkChord/internal/keyhook"
	"github.com/HopIT-Hub/InkChord/internal/logger"
	"github.com/HopIT-Hub/InkChord/internal/server"
	"github.com/HopIT-Hub/InkChord/internal/style"
	"github.com/HopIT-Hub/InkChord/internal/tray"
)

var version = "dev"

func main() {
	cfgPath := flag.String("config", "", "config file (default: user config dir)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	var err error
	var l *zap.Logger
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	var cfg *config.Config
	if *cfgPath != "" {
		cfg, err = config.LoadFile(*cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		l.Fatal("config", zap.Error(err))
	}

	// Passed to the login item so it starts with the same config.
	var autoArgs []string
	if *cfgPath != "" {
		autoArgs = []string{"-config", *cfgPath}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, l)

	transport := clipboard.New(ctx)
	driver := inject.Xdotool{}
	text := cfg.GetText()

	scratch := chord.NewScratch(chord.ScratchOpts{
		Editor:     editor.New(cfg.GetEditor(), l),
		Transport:  transport,
		Driver:     driver,
		Log:        l,
		FontFamily: text.FontFamily,
		FontSize:   text.FontSize,
		OnChange:   tray.SetEditing,
	})
	machine := chord.NewMachine(chord.MachineOpts{
		Transport: transport,
		Driver:    driver,
		Scratch:   scratch,
		Log:       l,
		OnChange:  tray.SetState,
	})

	src := newSource(cfg)
	srv := server.New(machine, scratch, cfg, version, autoArgs, l)

	go func() {
		<-ctx.Done()
		tray.Quit()
	}()

	tray.Run(tray.RunOpts{
		Version:          version,
		Trigger:          cfg.GetTrigger().String(),
		AutoStartEnabled: cfg.GetAutoStart(),

		// onReady — start the key source after the tray is initialized
		OnReady: func() {
			go func() {
				if err := src.Run(ctx, machine.Handle); err != nil {
					l.Error("key source stopped", zap.Error(err))
				}
			}()

			if _, err := srv.Start(); err != nil {
				l.Error("status server", zap.Error(err))
			}

			l.Info("ready",
				zap.String("version", version),
				zap.String("backend", cfg.GetBackend()),
				zap.Stringer("trigger", cfg.GetTrigger()),
				zap.Stringer("scratch", cfg.GetScratch()))
		},

		// onCopyLast — put the last style on the clipboard as plain text
		OnCopyLast: func() {
			payload := machine.LastPayload()
			if payload == "" {
				l.Info("no style applied yet")
				return
			}
			if err := (clipboard.Text{}).Write(style.MIME, payload); err != nil {
				l.Error("copy last style", zap.Error(err))
			}
		},

		OnStatus: func() {
			url := srv.URL()
			if url == "" {
				l.Warn("status server not running")
				return
			}
			openBrowser(l, url+"/status")
		},

		// onAutoStart — toggle auto-start on login
		OnAutoStart: func(enabled bool) {
			if err := autostart.Set(enabled, autoArgs...); err != nil {
				l.Error("set autostart", zap.Bool("enabled", enabled), zap.Error(err))
				return
			}
			if err := cfg.SetAutoStart(enabled); err != nil {
				l.Error("save autostart config", zap.Error(err))
			}
			l.Info("auto-start changed", zap.Bool("enabled", enabled))
		},

		// onQuit — clean shutdown
		OnQuit: func() {
			stop()
			srv.Stop()
		},
	})
}

// newSource picks the key event backend.
func newSource(cfg *config.Config) hotkey.Source {
	trigger, scratch := cfg.GetTrigger(), cfg.GetScratch()
	if cfg.GetBackend() == config.BackendHook {
		return &keyhook.Source{Trigger: trigger.Key, Scratch: scratch.Key}
	}
	return &hotkey.Grab{
		Trigger: hotkey.Binding{Modifiers: trigger.Modifiers, Key: trigger.Key},
		Scratch: hotkey.Binding{Modifiers: scratch.Modifiers, Key: scratch.Key},
	}
}

func openBrowser(l *zap.Logger, url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default: // linux, bsd
		cmd = "xdg-open"
		args = []string{url}
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		l.Error("open browser", zap.Error(err))
	}
}
