package style

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Text renders text as an Inkscape clipboard document holding a single text
// object in the given font. Each line of text becomes its own tspan, and a
// trailing newline left behind by the editor is dropped.
func Text(text, family string, sizePx int) string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	fam := escape(family)

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"` +
		` xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"` +
		` xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd">` + "\n")
	sb.WriteString("  <text\n")
	sb.WriteString(`     style="font-size:` + strconv.Itoa(sizePx) + `px;font-family:'` + fam + `';` +
		`-inkscape-font-specification:'` + fam + `, Normal';` +
		`fill:#000000;fill-opacity:1;stroke:none"` + "\n")
	sb.WriteString(`     xml:space="preserve">`)
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(`<tspan sodipodi:role="line">`)
		sb.WriteString(escape(line))
		sb.WriteString(`</tspan>`)
	}
	sb.WriteString("</text>\n")
	sb.WriteString("</svg>\n")
	return sb.String()
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
