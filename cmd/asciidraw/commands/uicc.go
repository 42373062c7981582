package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/uicc"
)

var (
	uiccConfigPath string
	uiccJSON       bool
	uiccConvertTo  string
)

var uiccCmd = &cobra.Command{
	Use:   "uicc",
	Short: "Encode UICC toolkit install parameters",
}

var uiccEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print the install parameter blobs for a config",
	Long: `Print the application specific (C9), system specific (EF) and UICC system
specific (EA) blobs and their concatenation. Without -c the defaults are used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		params := uicc.DefaultParams()
		if uiccConfigPath != "" {
			loaded, err := uicc.LoadParamsFile(uiccConfigPath)
			if err != nil {
				return fmt.Errorf("%s: %w", uiccConfigPath, err)
			}
			params = loaded
		}
		result, err := uicc.Encode(params)
		if err != nil {
			return err
		}
		if uiccJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

var uiccInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default encoder config as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := uicc.DefaultConfigFileName(time.Now())
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := document.WriteFileAtomic(path, uicc.DefaultParams().Write); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "wrote", path)
		return nil
	},
}

var uiccConvertCmd = &cobra.Command{
	Use:   "convert <tag-json>",
	Short: "Switch an application specific tag to another payload mode",
	Long: `Print the tag with its payload translated to --to (hex, ascii or numeric).
Payloads with no lossless translation are cleared.`,
	Example: `  asciidraw uicc convert --to ascii '{"tag": "81", "payload": "4869", "payloadMode": "hex"}'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to := uicc.PayloadMode(uiccConvertTo)
		if !slices.Contains([]uicc.PayloadMode{uicc.ModeHex, uicc.ModeASCII, uicc.ModeNumeric}, to) {
			return fmt.Errorf("%w: unknown payload mode %q", uicc.ErrInvalid, uiccConvertTo)
		}
		var tag uicc.Tag
		if err := json.Unmarshal([]byte(args[0]), &tag); err != nil {
			return fmt.Errorf("%w: %w", uicc.ErrInvalid, err)
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(uicc.ConvertPayload(tag, to))
	},
}

func printResult(w io.Writer, r uicc.Result) {
	label := color.New(color.Bold).SprintFunc()
	rows := []struct{ name, value string }{
		{"Application specific", r.ApplicationSpecific},
		{"System specific", r.SystemSpecific},
		{"UICC system specific", r.UICCSystemSpecific},
		{"Install parameters", r.InstallParams},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\n%s\n\n", label(row.name), row.value)
	}
}

func init() {
	uiccEncodeCmd.Flags().StringVarP(&uiccConfigPath, "config", "c", "", "JSON config to encode")
	uiccEncodeCmd.Flags().BoolVar(&uiccJSON, "json", false, "Print the result as JSON")
	uiccConvertCmd.Flags().StringVar(&uiccConvertTo, "to", string(uicc.ModeHex), "Payload mode to convert to")
	uiccCmd.AddCommand(uiccEncodeCmd, uiccInitCmd, uiccConvertCmd)
	AddCommand(uiccCmd)
}
