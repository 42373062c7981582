package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/logging"
	"github.com/idursun/asciidraw/internal/ui/common"
)

var rootCmd = &cobra.Command{
	Use:   "asciidraw [file.json]",
	Short: "asciidraw draws boxes, lines and text as ASCII art",
	Long: `asciidraw is a terminal editor for ASCII diagrams. Drawings are saved as
JSON and can be rendered as plain text or PNG.

Without a subcommand it opens the editor, like "asciidraw edit".`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runEdit,
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// setup loads .env, the config and the palette, and installs a console
// logger. The editor swaps the logger for the configured file in runEdit.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	warnings, err := config.Init()
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning:"), w)
	}
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(config.Current.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(logging.NewConsoleHandler(cmd.ErrOrStderr(), level)))
	common.DefaultPalette.Update(config.Current.UI.Colors)
	return nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Debug("close failed", "err", err)
	}
}
