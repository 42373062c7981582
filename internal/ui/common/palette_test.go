package common

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/drawing"
)

func boolPtr(b bool) *bool { return &b }

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"#ff0000", lipgloss.Color("#ff0000")},
		{"#F00", lipgloss.Color("#ff0000")},
		{"12", lipgloss.Color("12")},
		{"ansi-color-200", lipgloss.Color("200")},
		{"red", lipgloss.Color("1")},
		{"bright white", lipgloss.Color("15")},
		{"256", lipgloss.NoColor{}},
		{"#zzz", lipgloss.NoColor{}},
		{"chartreuse", lipgloss.NoColor{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseColor(tt.in))
		})
	}
}

func TestPalette_Inheritance(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{
		"text":        {Fg: "7"},
		"status":      {Bg: "4"},
		"status mode": {Fg: "0", Bold: boolPtr(true)},
	})

	mode := p.Get("status mode")
	assert.Equal(t, lipgloss.Color("0"), mode.GetForeground())
	assert.Equal(t, lipgloss.Color("4"), mode.GetBackground())
	assert.True(t, mode.GetBold())

	assert.Equal(t, lipgloss.Color("4"), p.Get("status text").GetBackground())
	assert.Equal(t, lipgloss.Color("7"), p.Get("status text").GetForeground())
}

func TestPalette_LayerTints(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{"canvas line": {Fg: "2"}})

	assert.Equal(t, lipgloss.Color(LayerTint(0)), p.KindStyle(drawing.KindRectangle).GetForeground())
	assert.Equal(t, lipgloss.Color("2"), p.KindStyle(drawing.KindLine).GetForeground())
	assert.NotEqual(t, LayerTint(0), LayerTint(2))
}

func TestPalette_UpdateInvalidatesCache(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{"title": {Fg: "1"}})
	assert.Equal(t, lipgloss.Color("1"), p.Get("title").GetForeground())

	p.Update(map[string]config.Color{"title": {Fg: "2"}})
	assert.Equal(t, lipgloss.Color("2"), p.Get("title").GetForeground())
}
