package drawing

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Glyph is one grapheme cluster of text together with the number of grid
// cells it occupies (1 or 2).
type Glyph struct {
	Text  string
	Width int
}

// Glyphs splits a single line of text into grapheme clusters.
func Glyphs(line string) []Glyph {
	var glyphs []Glyph
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		cluster := gr.Str()
		if cluster == "\t" {
			cluster = " "
		}
		glyphs = append(glyphs, Glyph{Text: cluster, Width: clusterWidth(cluster)})
	}
	return glyphs
}

// widthCondition ignores the locale so ambiguous-width characters such as the
// box-drawing glyphs always measure one cell.
var widthCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

func clusterWidth(cluster string) int {
	w := widthCondition.StringWidth(cluster)
	switch {
	case w < 1:
		return 1
	case w > 2:
		return 2
	default:
		return w
	}
}

// DisplayWidth is the number of grid cells a single line occupies.
func DisplayWidth(line string) int {
	width := 0
	for _, g := range Glyphs(line) {
		width += g.Width
	}
	return width
}

// TextSize returns the widest line and the number of lines of a text payload.
func TextSize(text string) (width, height int) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		width = max(width, DisplayWidth(line))
	}
	return width, len(lines)
}
