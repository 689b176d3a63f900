// Package validate implements the validate command.
package validate

import (
	"fmt"

	"fjacquet/pdf2md/cmd/common"
	"fjacquet/pdf2md/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check the structure of a PDF",
	Long: `Validate a PDF with pdfcpu in relaxed mode and print its version, page count
and the pages that carry images. Exits non-zero when the file is not a valid PDF.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) error {
	c, err := common.BuildContainer(cmd, root.SharedFlags)
	if err != nil {
		return err
	}

	rep, err := c.GetValidator().Validate(args[0])
	if err != nil {
		c.GetLogger().WithError(err).Error("Validation failed")
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s: valid PDF %s, %d page(s)\n", rep.File, rep.Version, rep.PageCount); err != nil {
		return err
	}
	if len(rep.ImagePages) > 0 {
		_, err = fmt.Fprintf(out, "pages with images: %v\n", rep.ImagePages)
	}
	return err
}
