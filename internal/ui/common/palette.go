package common

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/drawing"
)

var DefaultPalette = NewPalette()

// layerKinds get a tint of their own unless the user configured one.
var layerKinds = []drawing.Kind{drawing.KindRectangle, drawing.KindLine, drawing.KindText}

type node struct {
	style    lipgloss.Style
	children map[string]*node
}

// Palette resolves space separated selectors such as "status mode" to
// styles. A selector inherits from every shorter selector it contains, with
// the more specific ones taking precedence.
type Palette struct {
	root  *node
	cache map[string]lipgloss.Style
}

func NewPalette() *Palette {
	return &Palette{
		root:  &node{children: make(map[string]*node)},
		cache: make(map[string]lipgloss.Style),
	}
}

func (p *Palette) add(key string, style lipgloss.Style) {
	current := p.root
	for _, field := range strings.Fields(key) {
		child, ok := current.children[field]
		if !ok {
			child = &node{children: make(map[string]*node)}
			current.children[field] = child
		}
		current = child
	}
	current.style = style
}

func (p *Palette) lookup(fields ...string) lipgloss.Style {
	current := p.root
	for _, field := range fields {
		child, ok := current.children[field]
		if !ok {
			return lipgloss.NewStyle()
		}
		current = child
	}
	return current.style
}

// Update loads configured colours and fills in layer tints that are missing.
func (p *Palette) Update(styleMap map[string]config.Color) {
	clear(p.cache)
	for key, c := range styleMap {
		p.add(key, createStyleFrom(c))
	}
	for i, kind := range layerKinds {
		key := "canvas " + string(kind)
		if _, ok := styleMap[key]; !ok {
			p.add(key, lipgloss.NewStyle().Foreground(lipgloss.Color(LayerTint(i))))
		}
	}
}

// Get returns the style for selector. For "a b c" the lookups are, from
// weakest to strongest: "c", "b", "b c", "a", "a b", "a b c".
func (p *Palette) Get(selector string) lipgloss.Style {
	if style, ok := p.cache[selector]; ok {
		return style
	}
	fields := strings.Fields(selector)
	style := lipgloss.NewStyle()
	for start := range fields {
		for end := len(fields); end > start; end-- {
			style = style.Inherit(p.lookup(fields[start:end]...))
		}
	}
	p.cache[selector] = style
	return style
}

// KindStyle is the style shapes of kind are painted with on the canvas.
func (p *Palette) KindStyle(kind drawing.Kind) lipgloss.Style {
	return p.Get("canvas " + string(kind))
}

func (p *Palette) GetBorder(selector string, border lipgloss.Border) lipgloss.Style {
	style := p.Get(selector)
	return lipgloss.NewStyle().
		Border(border).
		Foreground(style.GetForeground()).
		Background(style.GetBackground()).
		BorderForeground(style.GetForeground()).
		BorderBackground(style.GetBackground())
}

// LayerTint returns the i-th colour of a golden ratio hue sequence as hex.
func LayerTint(i int) string {
	const goldenRatio = 0.618033988749895
	hue := float64(i) * goldenRatio
	hue -= float64(int(hue))
	return colorful.Hsl(hue*360, 0.6, 0.65).Hex()
}

func createStyleFrom(c config.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.Fg != "" {
		style = style.Foreground(parseColor(c.Fg))
	}
	if c.Bg != "" {
		style = style.Background(parseColor(c.Bg))
	}
	if c.Bold != nil {
		style = style.Bold(*c.Bold)
	}
	if c.Italic != nil {
		style = style.Italic(*c.Italic)
	}
	if c.Underline != nil {
		style = style.Underline(*c.Underline)
	}
	if c.Strikethrough != nil {
		style = style.Strikethrough(*c.Strikethrough)
	}
	if c.Reverse != nil {
		style = style.Reverse(*c.Reverse)
	}
	return style
}

var namedColors = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

// parseColor accepts #rgb and #rrggbb hex colours, ANSI 256 indexes, the
// eight colour names with an optional "bright " prefix and "ansi-color-N".
func parseColor(c string) color.Color {
	c = strings.TrimSpace(c)
	if strings.HasPrefix(c, "#") {
		if hex, err := colorful.Hex(c); err == nil {
			return lipgloss.Color(hex.Hex())
		}
		return lipgloss.NoColor{}
	}
	code := strings.TrimPrefix(c, "ansi-color-")
	if v, err := strconv.Atoi(code); err == nil {
		if v >= 0 && v <= 255 {
			return lipgloss.Color(code)
		}
		return lipgloss.NoColor{}
	}
	name, bright := strings.CutPrefix(c, "bright ")
	for i, n := range namedColors {
		if n == name {
			if bright {
				i += 8
			}
			return lipgloss.Color(strconv.Itoa(i))
		}
	}
	return lipgloss.NoColor{}
}
