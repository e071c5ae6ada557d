package sink

import (
	"bytes"
	"encoding/xml"

	"github.com/matzehuels/rxtimeline/pkg/core/content"
)

// charWidth approximates the advance of one glyph as a share of the font
// size.
const charWidth = 0.55

// FitLabel truncates the title of e to what fits inside the rectangle after
// padding. It returns "" when not even three characters or one line of
// text fit.
func FitLabel(e content.EventRectangle) string {
	if e.Title == "" || e.FontSize <= 0 {
		return ""
	}
	avail := e.Width - 2*e.Padding
	if e.Height-2*e.Padding < e.FontSize {
		return ""
	}
	maxChars := int(avail / (e.FontSize * charWidth))
	if maxChars < 3 {
		return ""
	}
	runes := []rune(e.Title)
	if len(runes) <= maxChars {
		return e.Title
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
