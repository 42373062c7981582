package flash

import (
	"errors"
	"testing"

	"charm.land/bubbles/v2/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

func TestAdd_IgnoresEmptyMessages(t *testing.T) {
	m := New()

	assert.Zero(t, m.add("   ", nil))
	assert.False(t, m.Any())
}

func TestUpdate_SuccessMessageExpires(t *testing.T) {
	m := New()

	cmd := m.Update(intents.AddMessage{Text: "  saved  "})
	assert.NotNil(t, cmd)
	require.Len(t, m.messages, 1)
	assert.Equal(t, "saved", m.messages[0].text)

	m.Update(expireMessageMsg{id: m.messages[0].id})
	assert.False(t, m.Any())
}

func TestUpdate_ErrorAndStickyMessagesStay(t *testing.T) {
	m := New()

	assert.Nil(t, m.Update(intents.AddMessage{Err: errors.New("boom")}))
	assert.Nil(t, m.Update(intents.AddMessage{Text: "pinned", Sticky: true}))
	require.Len(t, m.messages, 2)
	assert.EqualError(t, m.messages[0].error, "boom")
}

func TestJobs(t *testing.T) {
	m := New()

	id, cmd := m.StartJob("Exporting PNG")
	assert.NotNil(t, cmd, "first job starts the spinner")
	_, cmd = m.StartJob("Copying")
	assert.Nil(t, cmd)
	assert.True(t, m.Busy())

	m.Update(JobDoneMsg{ID: id, Text: "Exported"})
	require.Len(t, m.jobs, 1)
	assert.Equal(t, "Copying", m.jobs[0].label)
	require.Len(t, m.messages, 1)
	assert.Equal(t, "Exported", m.messages[0].text)
}

func TestSpinnerStopsWithoutJobs(t *testing.T) {
	m := New()
	assert.Nil(t, m.Update(spinner.TickMsg{}))
}

func TestView_StacksFromBottomRight(t *testing.T) {
	m := New()
	m.add("abc", nil)
	m.add("de", errors.New("de failed"))
	m.StartJob("working")

	dl := render.NewDisplayContext()
	m.ViewRect(dl, layout.NewBox(layout.Rect(0, 0, 30, 12)))
	views := dl.DrawList()

	require.Len(t, views, 3)
	assert.Contains(t, views[0].Content, "abc")
	assert.Contains(t, views[1].Content, "de failed")
	assert.Contains(t, views[2].Content, "working")
	assert.Equal(t, 12, views[0].Rect.Max.Y)
	assert.Equal(t, 30, views[0].Rect.Max.X)
	assert.Greater(t, views[0].Rect.Min.Y, views[1].Rect.Min.Y)
	assert.Greater(t, views[1].Rect.Min.Y, views[2].Rect.Min.Y)
}

func TestDeleteOldest(t *testing.T) {
	m := New()
	m.add("first", nil)
	m.add("second", nil)

	m.Update(intents.DismissOldest{})
	require.Len(t, m.messages, 1)
	assert.Equal(t, "second", m.messages[0].text)
}
