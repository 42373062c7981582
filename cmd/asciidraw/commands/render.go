package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/pngexport"
	"github.com/idursun/asciidraw/internal/raster"
)

var (
	renderTrim      bool
	renderClipboard bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Print a saved drawing as ASCII art",
	Long: `Print a saved drawing as ASCII art. The art is rasterized again from the
shapes; the asciiArt field stored in the file is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := document.Load(args[0])
		if err != nil {
			return err
		}
		if store.Len() == 0 {
			return document.ErrEmpty
		}

		trim := config.Current.Export.TrimTrailingSpace
		if cmd.Flags().Changed("trim") {
			trim = renderTrim
		}
		text := raster.Text(store.Shapes(), trim)
		if renderClipboard {
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "copied %d shapes\n", store.Len())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var pngCmd = &cobra.Command{
	Use:   "png <file.json> <out.png>",
	Short: "Export a saved drawing as a PNG image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := document.Load(args[0])
		if err != nil {
			return err
		}
		if err := pngexport.Save(args[1], store.Shapes(), pngexport.FromConfig(config.Current)); err != nil {
			return fmt.Errorf("export %s: %w", args[1], err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "wrote", args[1])
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderTrim, "trim", true, "Strip trailing spaces from every line (default from config)")
	renderCmd.Flags().BoolVar(&renderClipboard, "clipboard", false, "Copy to the clipboard instead of printing")
	AddCommand(renderCmd)
	AddCommand(pngCmd)
}
