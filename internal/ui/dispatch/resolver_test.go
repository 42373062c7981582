package dispatch

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	keybindings "github.com/idursun/asciidraw/internal/ui/bindings"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/stretchr/testify/assert"
)

func keyMsg(s string) tea.KeyMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Text: s, Code: r}
}

func makeResolver(bindings []keybindings.Binding) *Resolver {
	d, err := NewDispatcher(bindings)
	if err != nil {
		panic(err)
	}
	return NewResolver(d)
}

func TestResolveKey_BuiltInAction(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "ui.quit", Scope: "ui", Key: []string{"q"}},
	})

	result := r.ResolveKey(keyMsg("q"), []keybindings.Scope{"ui"})
	assert.True(t, result.Consumed)
	assert.Equal(t, intents.Quit{}, result.Intent)
	assert.Equal(t, "ui", result.Owner)
}

func TestResolveKey_ArgsReachIntent(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "canvas.pan", Scope: "canvas", Key: []string{"H"}, Args: map[string]any{"dx": int64(-8)}},
	})

	result := r.ResolveKey(keyMsg("H"), []keybindings.Scope{"canvas", "ui"})
	assert.Equal(t, intents.Pan{DX: -8}, result.Intent)
	assert.Equal(t, "canvas", result.Owner)
}

func TestResolveKey_Pending(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "ui.quit", Scope: "ui", Seq: []string{"g", "q"}},
	})

	result := r.ResolveKey(keyMsg("g"), []keybindings.Scope{"ui"})
	assert.True(t, result.Pending)
	assert.True(t, result.Consumed)
	assert.Nil(t, result.Intent)
}

func TestResolveKey_Unmatched(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "ui.quit", Scope: "ui", Key: []string{"q"}},
	})

	result := r.ResolveKey(keyMsg("x"), []keybindings.Scope{"ui"})
	assert.False(t, result.Consumed)
	assert.Nil(t, result.Intent)
}

func TestResolveKey_UnknownActionIsNotConsumed(t *testing.T) {
	r := makeResolver([]keybindings.Binding{
		{Action: "canvas.nothing", Scope: "canvas", Key: []string{"a"}},
	})

	result := r.ResolveKey(keyMsg("a"), []keybindings.Scope{"canvas"})
	assert.False(t, result.Consumed)
	assert.Nil(t, result.Intent)
}

func TestResolveAction(t *testing.T) {
	r := makeResolver(nil)

	result := r.ResolveAction("canvas.tool_rectangle", nil)
	assert.True(t, result.Consumed)
	assert.Equal(t, intents.SelectTool{Tool: intents.ToolRectangle}, result.Intent)
}

func TestIsDialogOwner(t *testing.T) {
	for _, owner := range []string{"input", "editor", "choose", "confirm"} {
		assert.True(t, IsDialogOwner(owner), owner)
	}
	assert.False(t, IsDialogOwner("canvas"))
	assert.False(t, IsDialogOwner("ui"))
	assert.False(t, IsDialogOwner(""))
}
