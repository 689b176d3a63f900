// Package validation checks user input before any conversion work starts.
package validation

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/pdf2md/internal/pdferror"
	"fjacquet/pdf2md/internal/report"
)

// headerWindow is how far into the file the %PDF- marker may appear.
// Readers tolerate leading garbage before it.
const headerWindow = 1024

var pdfHeader = []byte("%PDF-")

// InputFile checks that path names a readable regular file carrying a PDF
// header. Errors wrap the underlying os error or pdferror.ErrNotPDF.
func InputFile(path string) error {
	if path == "" {
		return fmt.Errorf("no input file given")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %s is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}

	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return CheckHeader(f)
}

// CheckHeader reports pdferror.ErrNotPDF when r does not contain a PDF header
// within its first bytes.
func CheckHeader(r io.Reader) error {
	head := make([]byte, headerWindow)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("error reading header: %w", err)
	}
	if !bytes.Contains(head[:n], pdfHeader) {
		return pdferror.ErrNotPDF
	}
	return nil
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	for _, f := range report.Formats {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are %s",
		format, strings.Join(report.Formats, ", "))
}
