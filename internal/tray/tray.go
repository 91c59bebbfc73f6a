// Package tray manages the system tray icon and menu.
package tray

import (
	"strings"
	"sync"

	"fyne.io/systray"

	"github.com/HopIT-Hub/InkChord/internal/chord"
)

// RunOpts configures the system tray.
type RunOpts struct {
	Version          string // app version string (e.g., "1.0.0")
	Trigger          string // human-readable trigger chord, shown in the menu
	AutoStartEnabled bool   // initial state of "Start on Login" checkbox
	OnReady          func()
	OnCopyLast       func() // called when the user asks for the last style as text
	OnStatus         func()
	OnAutoStart      func(enabled bool) // called when user toggles auto-start
	OnQuit           func()
}

// Run starts the system tray. It blocks on the main thread.
func Run(opts RunOpts) {
	systray.Run(func() {
		systray.SetIcon(IconIdle)
		systray.SetTitle("")
		systray.SetTooltip("InkChord — Idle")

		versionLabel := "InkChord"
		if opts.Version != "" && opts.Version != "dev" {
			versionLabel += " v" + strings.TrimPrefix(opts.Version, "v")
		}
		mVersion := systray.AddMenuItem(versionLabel, "")
		mVersion.Disable()
		if opts.Trigger != "" {
			mTrigger := systray.AddMenuItem("Hold "+opts.Trigger+" to style", "")
			mTrigger.Disable()
		}

		systray.AddSeparator()

		mCopy := systray.AddMenuItem("Copy Last Style", "Copy the last applied style as SVG text")
		mStatus := systray.AddMenuItem("Status...", "Open the status page")
		mAutoStart := systray.AddMenuItemCheckbox("Start on Login", "Launch automatically on login", opts.AutoStartEnabled)

		systray.AddSeparator()

		mState := systray.AddMenuItem("Status: Idle", "")
		mState.Disable()

		systray.AddSeparator()

		mQuit := systray.AddMenuItem("Quit", "Exit InkChord")

		mu.Lock()
		statusItem = mState
		mu.Unlock()

		if opts.OnReady != nil {
			opts.OnReady()
		}

		go func() {
			for {
				select {
				case <-mCopy.ClickedCh:
					if opts.OnCopyLast != nil {
						opts.OnCopyLast()
					}
				case <-mStatus.ClickedCh:
					if opts.OnStatus != nil {
						opts.OnStatus()
					}
				case <-mAutoStart.ClickedCh:
					if mAutoStart.Checked() {
						mAutoStart.Uncheck()
						if opts.OnAutoStart != nil {
							opts.OnAutoStart(false)
						}
					} else {
						mAutoStart.Check()
						if opts.OnAutoStart != nil {
							opts.OnAutoStart(true)
						}
					}
				case <-mQuit.ClickedCh:
					if opts.OnQuit != nil {
						opts.OnQuit()
					}
					systray.Quit()
				}
			}
		}()
	}, func() {
		// cleanup on systray exit
	})
}

var (
	mu         sync.Mutex
	statusItem *systray.MenuItem
	capture    = chord.Idle
	editing    bool
)

// SetState updates the tray for a capture state change.
func SetState(state chord.State) {
	mu.Lock()
	defer mu.Unlock()
	capture = state
	refreshLocked()
}

// SetEditing updates the tray when a scratch session starts or ends.
func SetEditing(active bool) {
	mu.Lock()
	defer mu.Unlock()
	editing = active
	refreshLocked()
}

func refreshLocked() {
	icon, label := IconIdle, "Idle"
	switch {
	case capture == chord.Forming:
		icon, label = IconForming, "Forming style"
	case editing:
		icon, label = IconEditing, "Editing text"
	}
	systray.SetIcon(icon)
	systray.SetTooltip("InkChord — " + label)
	if statusItem != nil {
		statusItem.SetTitle("Status: " + label)
	}
}

// Quit stops the system tray.
func Quit() {
	systray.Quit()
}
