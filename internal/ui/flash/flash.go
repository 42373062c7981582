// Package flash shows transient notifications and running background jobs in
// the bottom-right corner.
package flash

import (
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

var _ common.ImmediateModel = (*Model)(nil)

type expireMessageMsg struct {
	id uint64
}

// JobDoneMsg finishes a job started with StartJob. Text becomes a success
// message, Err an error message.
type JobDoneMsg struct {
	ID   uint64
	Text string
	Err  error
}

type flashMessage struct {
	id    uint64
	text  string
	error error
}

type job struct {
	id    uint64
	label string
}

type Model struct {
	messages     []flashMessage
	jobs         []job
	spinner      spinner.Model
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	textStyle    lipgloss.Style
	currentId    uint64
}

func New() *Model {
	return &Model{
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		successStyle: common.DefaultPalette.Get("flash success"),
		errorStyle:   common.DefaultPalette.Get("flash error"),
		textStyle:    common.DefaultPalette.Get("flash text"),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Intent:
		return m.handleIntent(msg)
	case expireMessageMsg:
		m.remove(msg.id)
	case JobDoneMsg:
		m.jobs = slices.DeleteFunc(m.jobs, func(j job) bool { return j.id == msg.ID })
		return m.addExpiring(msg.Text, msg.Err, false)
	case spinner.TickMsg:
		if len(m.jobs) == 0 {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleIntent(intent intents.Intent) tea.Cmd {
	switch intent := intent.(type) {
	case intents.AddMessage:
		return m.addExpiring(intent.Text, intent.Err, intent.Sticky)
	case intents.DismissOldest:
		m.DeleteOldest()
	}
	return nil
}

// StartJob shows label with a spinner until a JobDoneMsg with the returned id
// arrives.
func (m *Model) StartJob(label string) (uint64, tea.Cmd) {
	id := m.nextId()
	m.jobs = append(m.jobs, job{id: id, label: label})
	if len(m.jobs) == 1 {
		return id, m.spinner.Tick
	}
	return id, nil
}

func (m *Model) addExpiring(text string, err error, sticky bool) tea.Cmd {
	id := m.add(text, err)
	if id == 0 || err != nil || sticky {
		return nil
	}
	timeout := config.GetExpiringFlashMessageTimeout(config.Current)
	if timeout <= 0 {
		return nil
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return expireMessageMsg{id: id}
	})
}

func (m *Model) add(text string, err error) uint64 {
	text = strings.TrimSpace(text)
	if text == "" && err == nil {
		return 0
	}
	msg := flashMessage{id: m.nextId(), text: text, error: err}
	m.messages = append(m.messages, msg)
	return msg.id
}

func (m *Model) remove(id uint64) {
	m.messages = slices.DeleteFunc(m.messages, func(f flashMessage) bool { return f.id == id })
}

func (m *Model) Any() bool {
	return len(m.messages) > 0
}

func (m *Model) Busy() bool {
	return len(m.jobs) > 0
}

func (m *Model) DeleteOldest() {
	if len(m.messages) > 0 {
		m.messages = m.messages[1:]
	}
}

func (m *Model) nextId() uint64 {
	m.currentId++
	return m.currentId
}

// ViewRect stacks messages upwards from the bottom-right corner of box, the
// oldest at the bottom, with running jobs above them.
func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	area := box.R
	maxWidth := area.Dx() - 4
	y := area.Max.Y
	place := func(content string) {
		w, h := lipgloss.Size(content)
		y -= h
		dl.AddDraw(layout.Rect(area.Max.X-w, y, w, h), content, render.ZFlash)
	}

	for _, message := range m.messages {
		style := m.successStyle
		body := message.text
		if message.error != nil {
			style = m.errorStyle
			body = message.error.Error()
		}
		place(m.bordered(style.Render(body), style, maxWidth))
	}
	for _, j := range m.jobs {
		line := m.textStyle.Render(m.spinner.View() + " " + j.label)
		place(m.bordered(line, m.textStyle, maxWidth))
	}
}

func (m *Model) bordered(content string, style lipgloss.Style, maxWidth int) string {
	if w, _ := lipgloss.Size(content); w > maxWidth && maxWidth > 0 {
		content = lipgloss.NewStyle().Width(maxWidth).Render(content)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		PaddingLeft(1).
		PaddingRight(1).
		BorderForeground(style.GetForeground()).
		Render(content)
}
