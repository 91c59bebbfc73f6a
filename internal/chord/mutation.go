package chord

import "github.com/HopIT-Hub/InkChord/internal/style"

// mutation changes one attribute group of the live style. label and value
// describe the change for the log.
type mutation struct {
	label string
	value string
	apply func(*style.Style)
}

func width(w style.StrokeWidth) mutation {
	return mutation{"stroke width", w.String(), func(s *style.Style) { s.StrokeWidth = w }}
}

func dash(d style.StrokeDash) mutation {
	return mutation{"stroke", d.String(), func(s *style.Style) { s.StrokeDash = d }}
}

func fill(name, color string, opacity float64) mutation {
	return mutation{"fill", name, func(s *style.Style) {
		s.FillColor = color
		s.FillOpacity = opacity
	}}
}

var mutations = map[Key]mutation{
	Key1: width(style.Normal),
	Key2: width(style.Thick),
	Key3: width(style.VeryThick),
	KeyQ: dash(style.Solid),
	KeyW: dash(style.Dashed),
	KeyE: dash(style.Dotted),
	KeyA: fill("white", "white", 1.0),
	// Grey is black at low opacity so it darkens whatever is underneath.
	KeyS: fill("grey", "black", 0.12),
	KeyD: fill("black", "black", 1.0),
	KeyZ: {"marker", "start", func(s *style.Style) { s.MarkerStart = true }},
	KeyX: {"marker", "end", func(s *style.Style) { s.MarkerEnd = true }},
}
