// Package autostart manages registering the app to start on login.
// Each platform has its own implementation file providing IsEnabled,
// Enable and Disable.
package autostart

import (
	"os"
	"strings"
)

// appPath returns the path to the currently running executable.
func appPath() (string, error) {
	return os.Executable()
}

// Set enables or disables start on login. args are passed to the
// executable when it is launched at login.
func Set(enabled bool, args ...string) error {
	if enabled {
		return Enable(args...)
	}
	return Disable()
}

// quote wraps s in double quotes when it contains spaces, as desktop
// entries and the Windows Run key expect.
func quote(s string) string {
	if !strings.ContainsAny(s, " \t\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func commandLine(exe string, args []string) string {
	parts := []string{quote(exe)}
	for _, a := range args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}
