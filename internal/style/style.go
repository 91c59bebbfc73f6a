// Package style models the stroke and fill attributes assembled during a
// chord capture and renders them in Inkscape's clipboard format.
//
// Inkscape's "Paste Style" (Ctrl+Shift+V) reads the style attribute of the
// <inkscape:clipboard> element when the clipboard holds image/x-inkscape-svg.
// The pasted style replaces the selection's style wholesale, so SVG always
// writes every property, including the ones still at their defaults.
package style

import (
	"strconv"
	"strings"
)

// MIME is the clipboard target Inkscape recognizes as its own SVG.
const MIME = "image/x-inkscape-svg"

// StrokeWidth is the stroke thickness preset.
type StrokeWidth int

const (
	Normal StrokeWidth = iota
	Thick
	VeryThick
)

func (w StrokeWidth) String() string {
	switch w {
	case Normal:
		return "normal"
	case Thick:
		return "thick"
	case VeryThick:
		return "very thick"
	default:
		return "unknown"
	}
}

// px returns the stroke width in user units.
func (w StrokeWidth) px() float64 {
	switch w {
	case Thick:
		return 2
	case VeryThick:
		return 4
	default:
		return 1
	}
}

// StrokeDash is the stroke dash pattern.
type StrokeDash int

const (
	Solid StrokeDash = iota
	Dashed
	Dotted
)

func (d StrokeDash) String() string {
	switch d {
	case Solid:
		return "solid"
	case Dashed:
		return "dashed"
	case Dotted:
		return "dotted"
	default:
		return "unknown"
	}
}

// dasharray scales the pattern with the stroke width so dots stay round.
func (d StrokeDash) dasharray(w float64) string {
	switch d {
	case Dashed:
		return num(4*w) + "," + num(2*w)
	case Dotted:
		return num(w) + "," + num(2*w)
	default:
		return "none"
	}
}

// Style is the set of attributes applied to the selection in one paste.
// Every field always holds a usable value.
type Style struct {
	StrokeWidth StrokeWidth
	StrokeDash  StrokeDash
	FillColor   string  // CSS color keyword, or "none"
	FillOpacity float64 // 0.0 to 1.0
	MarkerStart bool
	MarkerEnd   bool
}

// New returns the style a capture starts from.
func New() Style {
	return Style{
		StrokeWidth: Normal,
		StrokeDash:  Solid,
		FillColor:   "none",
		FillOpacity: 1,
	}
}

// Declarations returns the CSS declarations in a fixed order.
func (s Style) Declarations() string {
	w := s.StrokeWidth.px()
	opacity := s.FillOpacity
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	fill := s.FillColor
	if fill == "" {
		fill = "none"
	}

	decls := []string{
		"fill:" + fill,
		"fill-opacity:" + num(opacity),
		"stroke:#000000",
		"stroke-opacity:1",
		"stroke-width:" + num(w),
		"stroke-linecap:round",
		"stroke-linejoin:round",
		"stroke-dasharray:" + s.StrokeDash.dasharray(w),
		"marker-start:" + marker(s.MarkerStart, markerStartID),
		"marker-end:" + marker(s.MarkerEnd, markerEndID),
	}
	return strings.Join(decls, ";")
}

const (
	markerStartID = "ArrowStart"
	markerEndID   = "ArrowEnd"
)

func marker(on bool, id string) string {
	if !on {
		return "none"
	}
	return "url(#" + id + ")"
}

// SVG renders s as an Inkscape clipboard document. The output depends only
// on s.
func (s Style) SVG() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"` +
		` xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">` + "\n")
	sb.WriteString("  <defs>\n")
	writeMarker(&sb, markerStartID, "Arrow2Lstart", "scale(1.1) translate(1,0)")
	writeMarker(&sb, markerEndID, "Arrow2Lend", "scale(1.1) rotate(180) translate(1,0)")
	sb.WriteString("  </defs>\n")
	sb.WriteString(`  <inkscape:clipboard style="`)
	sb.WriteString(s.Declarations())
	sb.WriteString(`" />` + "\n")
	sb.WriteString("</svg>\n")
	return sb.String()
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"

func writeMarker(sb *strings.Builder, id, stock, transform string) {
	sb.WriteString(`    <marker id="` + id + `" inkscape:stockid="` + stock + `"` +
		` orient="auto" refX="0" refY="0" style="overflow:visible" inkscape:isstock="true">` + "\n")
	sb.WriteString(`      <path transform="` + transform + `"` +
		` style="fill:context-stroke;fill-rule:evenodd;stroke:context-stroke;stroke-width:0.625;stroke-linejoin:round"` +
		` d="M 8.72,4.03 -2.21,0.02 8.72,-4 c -1.75,2.37 -1.74,5.62 0,8.03 z" />` + "\n")
	sb.WriteString("    </marker>\n")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
