package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := loadDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8, cfg.Canvas.CellWidth)
	assert.Equal(t, 14, cfg.Canvas.CellHeight)
	assert.Equal(t, 2, cfg.Export.PNGPadding)
	assert.True(t, cfg.Export.TrimTrailingSpace)
	assert.NotEmpty(t, cfg.UI.Colors)
	assert.NotEmpty(t, cfg.Bindings)
	assert.Equal(t, 4*time.Second, GetExpiringFlashMessageTimeout(cfg))
}

func TestLoad_FlashMessageDisplaySeconds(t *testing.T) {
	content := `
[ui]
flash_message_display_seconds = 10
`
	config := &Config{}
	_, err := config.Load(content)
	assert.NoError(t, err)
	assert.Equal(t, 10, config.UI.FlashMessageDisplaySeconds)
	assert.Equal(t, 10*time.Second, GetExpiringFlashMessageTimeout(config))

	config.UI.FlashMessageDisplaySeconds = 0
	assert.Zero(t, GetExpiringFlashMessageTimeout(config))
	assert.Zero(t, GetExpiringFlashMessageTimeout(nil))
}

func TestLoad_OverlayKeepsDefaults(t *testing.T) {
	cfg := loadDefaultConfig()
	_, err := cfg.Load(`
[canvas]
pan_step = 9

[ui.colors]
"status mode" = "red"
`)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Canvas.PanStep)
	assert.Equal(t, 8, cfg.Canvas.CellWidth)
	assert.Equal(t, "red", cfg.UI.Colors["status mode"].Fg)
	assert.Contains(t, cfg.UI.Colors, "flash error")
}

func TestLoad_UnknownKeys(t *testing.T) {
	cfg := &Config{}
	unknown, err := cfg.Load(`
[canvas]
pan_stepp = 2
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"canvas.pan_stepp"}, unknown)
}

func TestValidate_Ranges(t *testing.T) {
	cfg := loadDefaultConfig()
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")

	cfg = loadDefaultConfig()
	cfg.Canvas.CellWidth = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_Colors_StringAndObject(t *testing.T) {
	content := `
[ui.colors]
simple = "red"
complex = { fg = "blue", bg = "white", bold = true }
`
	config := &Config{}
	_, err := config.Load(content)
	assert.NoError(t, err)
	assert.Len(t, config.UI.Colors, 2)

	assert.Equal(t, "red", config.UI.Colors["simple"].Fg)
	assert.Equal(t, "", config.UI.Colors["simple"].Bg)
	assert.Nil(t, config.UI.Colors["simple"].Bold)

	assert.Equal(t, "blue", config.UI.Colors["complex"].Fg)
	assert.Equal(t, "white", config.UI.Colors["complex"].Bg)
	if assert.NotNil(t, config.UI.Colors["complex"].Bold) {
		assert.True(t, *config.UI.Colors["complex"].Bold)
	}
}

func TestLoad_Colors_ExplicitFalsePreserved(t *testing.T) {
	content := `
[ui.colors]
unset = { fg = "red" }
explicit_false = { fg = "blue", underline = false }
`
	config := &Config{}
	_, err := config.Load(content)
	assert.NoError(t, err)

	assert.Nil(t, config.UI.Colors["unset"].Underline)
	if assert.NotNil(t, config.UI.Colors["explicit_false"].Underline) {
		assert.False(t, *config.UI.Colors["explicit_false"].Underline)
	}
}

func TestLoad_Colors_UnknownAttribute(t *testing.T) {
	config := &Config{}
	_, err := config.Load(`
[ui.colors]
bad = { fg = "red", blink = true }
`)
	assert.Error(t, err)
}
