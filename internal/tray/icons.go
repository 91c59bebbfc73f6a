package tray

import _ "embed"

// Tray icons, 22x22 PNG.
var (
	//go:embed icons/idle.png
	IconIdle []byte
	//go:embed icons/forming.png
	IconForming []byte
	//go:embed icons/editing.png
	IconEditing []byte
)
