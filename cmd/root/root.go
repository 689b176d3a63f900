// Package root contains the root command for the application
package root

import (
	"sync"

	"fjacquet/pdf2md/cmd/common"

	"github.com/spf13/cobra"
)

var (
	// SharedFlags holds the persistent flags, available to every subcommand.
	SharedFlags = common.Flags{}

	// Cmd is the root command. It converts one PDF and prints a single JSON
	// line; conversion failures are reported in that line and still exit 0.
	Cmd = &cobra.Command{
		Use:   "pdf2md <file>",
		Short: "Convert a PDF to markdown text with OCR fallback",
		Long: `pdf2md extracts the text of every page of a PDF. Pages without a usable
text layer are rasterized and run through Tesseract OCR. Lines that look like
figure, image, chart or diagram captions are tagged with "[Caption] ".

The result is printed as one JSON line on standard output:
  {"success":true,"markdown":"..."}
  {"success":false,"error":"..."}
Logs are written to standard error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE:          run,
	}

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&SharedFlags.ConfigFile, common.FlagConfig, "", "config file (default searches $HOME/.pdf2md, .pdf2md and . for config.yaml)")
		flags.StringVar(&SharedFlags.LogLevel, common.FlagLogLevel, "info", "log level (trace, debug, info, warn, error)")
		flags.StringVar(&SharedFlags.LogFormat, common.FlagLogFormat, "text", "log format (text or json)")
		flags.BoolVar(&SharedFlags.Normalize, common.FlagNormalize, false, "normalize lists, paragraphs and headings in the markdown")
	})
}

func run(cmd *cobra.Command, args []string) error {
	result := common.ConvertFile(cmd, SharedFlags, args[0])
	return common.WriteResult(cmd.OutOrStdout(), result)
}
