package commands

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/logging"
	"github.com/idursun/asciidraw/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit [file.json]",
	Short: "Open the editor, optionally with a saved drawing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEdit,
}

func init() {
	AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	store := drawing.NewStore()
	fileName := ""
	if len(args) == 1 {
		fileName = args[0]
		loaded, err := document.Load(fileName)
		if err != nil {
			return err
		}
		store = loaded
	}

	// the editor owns the terminal from here on
	closer, err := logging.Setup(config.Current.Log)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	slog.Info("editor started", "file", fileName, "shapes", store.Len())
	if _, err := tea.NewProgram(ui.New(store, fileName)).Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
