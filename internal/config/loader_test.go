package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MergesBindingsByShadowRules(t *testing.T) {
	cfg := &Config{
		Bindings: []BindingConfig{
			{Scope: "canvas", Action: "canvas.delete", Key: StringList{"delete", "backspace"}},
			{Scope: "canvas", Action: "canvas.tool_line", Seq: StringList{"g", "l"}},
			{Scope: "ui", Action: "ui.quit", Key: StringList{"q"}},
		},
	}

	content := `
[[bindings]]
scope = "canvas"
action = "canvas.cancel"
key = "backspace"

[[bindings]]
scope = "canvas"
action = "canvas.tool_rectangle"
seq = ["g", "l"]

[[bindings]]
scope = "ui"
action = "ui.copy_all"
key = "c"
`

	_, err := cfg.Load(content)
	require.NoError(t, err)

	assert.Contains(t, cfg.Bindings, BindingConfig{
		Scope:  "canvas",
		Action: "canvas.delete",
		Key:    StringList{"delete"},
	})
	assert.NotContains(t, cfg.Bindings, BindingConfig{
		Scope:  "canvas",
		Action: "canvas.tool_line",
		Seq:    StringList{"g", "l"},
	})
	assert.Contains(t, cfg.Bindings, BindingConfig{
		Scope:  "canvas",
		Action: "canvas.cancel",
		Key:    StringList{"backspace"},
	})
	assert.Contains(t, cfg.Bindings, BindingConfig{
		Scope:  "canvas",
		Action: "canvas.tool_rectangle",
		Seq:    StringList{"g", "l"},
	})
	assert.Contains(t, cfg.Bindings, BindingConfig{
		Scope:  "ui",
		Action: "ui.quit",
		Key:    StringList{"q"},
	})
	assert.Contains(t, cfg.Bindings, BindingConfig{
		Scope:  "ui",
		Action: "ui.copy_all",
		Key:    StringList{"c"},
	})
}

func TestLoad_SeqBindingDoesNotInheritStaleKey(t *testing.T) {
	cfg := &Config{
		Bindings: []BindingConfig{
			{Scope: "ui", Action: "ui.quit", Key: StringList{"q"}},
		},
	}

	content := `
[[bindings]]
action = "ui.export_png"
seq = ["w", "p"]
scope = "ui"
`

	_, err := cfg.Load(content)
	require.NoError(t, err)

	found := false
	for _, b := range cfg.Bindings {
		if b.Action != "ui.export_png" || b.Scope != "ui" {
			continue
		}
		found = true
		assert.Empty(t, b.Key)
		assert.Equal(t, StringList{"w", "p"}, b.Seq)
	}
	assert.True(t, found, "expected merged binding for ui.export_png")
}

func TestGetConfigFilePath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), GetConfigFilePath())
}

func TestInit_ReadsUserConfig(t *testing.T) {
	saved := Current
	t.Cleanup(func() { Current = saved })

	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[export]
png_padding = 0
bogus = 1

[[bindings]]
scope = "ui"
action = "ui.quit"
key = "Q"
`), 0o644))

	warnings, err := Init()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "export.bogus")
	assert.Equal(t, 0, Current.Export.PNGPadding)
	assert.Contains(t, Current.Bindings, BindingConfig{Scope: "ui", Action: "ui.quit", Key: StringList{"Q"}})
}

func TestInit_MissingFileUsesDefaults(t *testing.T) {
	saved := Current
	t.Cleanup(func() { Current = saved })

	t.Setenv(EnvConfigDir, t.TempDir())
	warnings, err := Init()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, loadDefaultConfig().Canvas, Current.Canvas)
}

func TestInit_InvalidUserConfig(t *testing.T) {
	saved := Current
	t.Cleanup(func() { Current = saved })

	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[log]\nlevel = \"loud\"\n"), 0o644))

	_, err := Init()
	require.Error(t, err)
	assert.Equal(t, saved, Current)
}
