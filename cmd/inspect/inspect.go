// Package inspect implements the inspect command, which reports how each page
// of a PDF was converted.
package inspect

import (
	"fmt"
	"strings"

	"fjacquet/pdf2md/cmd/common"
	"fjacquet/pdf2md/cmd/root"
	"fjacquet/pdf2md/internal/report"
	"fjacquet/pdf2md/internal/validation"

	"github.com/spf13/cobra"
)

// Format is the --format flag value.
var Format string

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show per-page conversion details",
	Long: `Convert a PDF like the root command does and print, for every page, where
its text came from (text layer, OCR or none) with line, caption and character
counts. Unlike the root command, a failed conversion exits non-zero.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         inspectFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", report.FormatJSON,
		"report format ("+strings.Join(report.Formats, ", ")+")")
}

func inspectFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(Format); err != nil {
		return err
	}

	c, err := common.BuildContainer(cmd, root.SharedFlags)
	if err != nil {
		return err
	}

	doc, err := c.GetConverter().Run(common.Context(cmd), args[0])
	if err != nil {
		return err
	}

	out, err := c.GetReportGenerator().GenerateReport(doc, Format)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
