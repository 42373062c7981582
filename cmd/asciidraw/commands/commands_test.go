package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/uicc"
)

func execute(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()
	t.Setenv(config.EnvConfigDir, t.TempDir())
	renderTrim, renderClipboard = true, false
	uiccConfigPath, uiccJSON, uiccConvertTo = "", false, "hex"
	configForce = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func saveDrawing(t *testing.T, shapes ...drawing.Shape) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawing.json")
	require.NoError(t, document.Save(path, shapes, time.Now()))
	return path
}

func TestRender(t *testing.T) {
	path := saveDrawing(t,
		drawing.NewRectangle(drawing.NewID(), 0, 0, 4, 3),
		drawing.NewText(drawing.NewID(), 6, 1, "hi"),
	)

	out, _, err := execute(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, "┌──┐\n│  │  hi\n└──┘\n", out)
}

func TestRender_Errors(t *testing.T) {
	_, _, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, _, err = execute(t, "render")
	assert.Error(t, err, "a file is required")
}

func TestPNG(t *testing.T) {
	path := saveDrawing(t, drawing.NewRectangle(drawing.NewID(), 0, 0, 4, 3))
	out := filepath.Join(t.TempDir(), "out.png")

	_, stderr, err := execute(t, "png", path, out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote "+out)
	assert.FileExists(t, out)
}

func TestUICCEncode(t *testing.T) {
	out, _, err := execute(t, "uicc", "encode")
	require.NoError(t, err)

	want, err := uicc.Encode(uicc.DefaultParams())
	require.NoError(t, err)
	assert.Contains(t, out, "Install parameters")
	assert.Contains(t, out, want.InstallParams)
}

func TestUICCEncode_JSONWithConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "uicc.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"ramQuota": 4660}`), 0o644))

	out, _, err := execute(t, "uicc", "encode", "-c", cfg, "--json")
	require.NoError(t, err)

	var result uicc.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "EF08C7021234C8020001", result.SystemSpecific)
}

func TestUICCConvert(t *testing.T) {
	out, _, err := execute(t, "uicc", "convert", "--to", "ascii", `{"tag": "81", "payload": "4869", "payloadMode": "hex"}`)
	require.NoError(t, err)
	var tag uicc.Tag
	require.NoError(t, json.Unmarshal([]byte(out), &tag))
	assert.Equal(t, uicc.Tag{Tag: "81", Payload: "Hi", PayloadMode: uicc.ModeASCII, NumericLength: 2}, tag)

	out, _, err = execute(t, "uicc", "convert", "--to", "numeric", `{"tag": "82", "payload": "1F40"}`)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &tag))
	assert.Equal(t, "8000", tag.Payload)

	_, _, err = execute(t, "uicc", "convert", "--to", "base64", `{"tag": "81"}`)
	assert.ErrorIs(t, err, uicc.ErrInvalid)

	_, _, err = execute(t, "uicc", "convert", "{")
	assert.ErrorIs(t, err, uicc.ErrInvalid)
}

func TestUICCInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uicc.json")

	_, _, err := execute(t, "uicc", "init", path)
	require.NoError(t, err)
	loaded, err := uicc.LoadParamsFile(path)
	require.NoError(t, err)
	assert.Equal(t, uicc.DefaultParams(), loaded)

	_, _, err = execute(t, "uicc", "init", path)
	assert.ErrorContains(t, err, "already exists")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	configForce = false
	rootCmd.SetArgs([]string{"config", "init"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigTOML(), data)

	rootCmd.SetArgs([]string{"config", "init"})
	assert.ErrorContains(t, rootCmd.Execute(), "already exists")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "asciidraw dev\n", out)
}
