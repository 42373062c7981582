package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/pngexport"
	"github.com/idursun/asciidraw/internal/raster"
	"github.com/idursun/asciidraw/internal/ui/flash"
	"github.com/idursun/asciidraw/internal/ui/input"
	"github.com/idursun/asciidraw/internal/ui/intents"
)

const (
	purposeExportJSON input.Purpose = "export-json"
	purposeImportJSON input.Purpose = "import-json"
	purposeExportPNG  input.Purpose = "export-png"
	purposeExportText input.Purpose = "export-text"
)

// savedMsg finishes a JSON export. snapshot is the drawing that was written.
type savedMsg struct {
	done     flash.JobDoneMsg
	path     string
	snapshot string
}

type importedMsg struct {
	done  flash.JobDoneMsg
	path  string
	store *drawing.Store
}

func (m *Model) promptPath(purpose input.Purpose, title string, value string) tea.Cmd {
	if purpose != purposeImportJSON && m.canvas.Store().Len() == 0 {
		return intents.Invoke(intents.AddMessage{Text: "Nothing to export"})
	}
	return m.openStacked(input.New(purpose, title, value))
}

func (m *Model) exportPath(ext string) string {
	if m.fileName != "" {
		return strings.TrimSuffix(m.fileName, filepath.Ext(m.fileName)) + ext
	}
	return filepath.Join(config.Current.Export.Directory, document.DefaultFileName(m.now(), ext))
}

func (m *Model) jsonPath() string {
	if m.fileName != "" {
		return m.fileName
	}
	return m.exportPath(".json")
}

// submitPath starts the background job the prompt was opened for.
func (m *Model) submitPath(purpose input.Purpose, path string) tea.Cmd {
	if path == "" {
		return intents.Invoke(intents.AddMessage{Text: "No file name given"})
	}
	shapes := m.canvas.Snapshot()
	now := m.now()
	switch purpose {
	case purposeExportJSON:
		snapshot := document.Snapshot(shapes)
		return m.runJob("Saving "+path, func(done flash.JobDoneMsg) tea.Msg {
			if err := document.Save(path, shapes, now); err != nil {
				done.Err = fmt.Errorf("save %s: %w", path, err)
			} else {
				done.Text = "Saved " + path
			}
			return savedMsg{done: done, path: path, snapshot: snapshot}
		})
	case purposeImportJSON:
		return m.runJob("Opening "+path, func(done flash.JobDoneMsg) tea.Msg {
			store, err := document.Load(path)
			if err != nil {
				done.Err = err
			} else {
				done.Text = fmt.Sprintf("Opened %s (%d shapes)", path, store.Len())
			}
			return importedMsg{done: done, path: path, store: store}
		})
	case purposeExportPNG:
		opts := pngexport.FromConfig(config.Current)
		return m.runJob("Exporting "+path, func(done flash.JobDoneMsg) tea.Msg {
			if err := pngexport.Save(path, shapes, opts); err != nil {
				done.Err = fmt.Errorf("export %s: %w", path, err)
			} else {
				done.Text = "Exported " + path
			}
			return done
		})
	case purposeExportText:
		trim := m.exportTrim
		return m.runJob("Exporting "+path, func(done flash.JobDoneMsg) tea.Msg {
			if err := saveText(path, shapes, trim); err != nil {
				done.Err = fmt.Errorf("export %s: %w", path, err)
			} else {
				done.Text = "Exported " + path
			}
			return done
		})
	}
	return nil
}

// runJob shows a spinner labelled label while work runs off the update loop.
func (m *Model) runJob(label string, work func(done flash.JobDoneMsg) tea.Msg) tea.Cmd {
	id, tick := m.flash.StartJob(label)
	return tea.Batch(tick, func() tea.Msg {
		return work(flash.JobDoneMsg{ID: id})
	})
}

func (m *Model) finishImport(msg importedMsg) tea.Cmd {
	cmd := m.flash.Update(msg.done)
	if msg.done.Err != nil || msg.store == nil {
		return cmd
	}
	m.fileName = msg.path
	m.saved = document.Snapshot(msg.store.Shapes())
	return tea.Batch(cmd, m.canvas.Replace(msg.store))
}

func saveText(path string, shapes []drawing.Shape, trim bool) error {
	if len(shapes) == 0 {
		return document.ErrEmpty
	}
	return document.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, raster.Text(shapes, trim)+"\n")
		return err
	})
}
