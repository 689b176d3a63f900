// Package pdferror defines the typed errors produced by the conversion stages.
// Every type unwraps to its cause so callers can use errors.Is / errors.As.
package pdferror

import (
	"errors"
	"fmt"
)

// Stage names used in PageError.
const (
	StageText      = "text"
	StageRasterize = "rasterize"
	StageOCR       = "ocr"
)

// ErrNotPDF is returned when a file does not start with a PDF header.
var ErrNotPDF = errors.New("not a PDF file")

// OpenError represents a failure to open or parse a document as a whole.
type OpenError struct {
	FilePath string
	Err      error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open PDF '%s': %v", e.FilePath, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// PageError represents a failure while processing one page. Page is zero-based.
type PageError struct {
	Page  int
	Stage string
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %s failed: %v", e.Page, e.Stage, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// RasterizeError represents a failure of the external rasterizer.
type RasterizeError struct {
	Backend string
	Output  string // Optional: trimmed diagnostic output of the tool
	Err     error
}

func (e *RasterizeError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Backend, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e *RasterizeError) Unwrap() error {
	return e.Err
}

// RecognizeError represents a failure of the OCR engine.
type RecognizeError struct {
	Engine string
	Err    error
}

func (e *RecognizeError) Error() string {
	return fmt.Sprintf("%s recognition failed: %v", e.Engine, e.Err)
}

func (e *RecognizeError) Unwrap() error {
	return e.Err
}

// PageOf returns the zero-based page carried by err, if any.
func PageOf(err error) (int, bool) {
	var pe *PageError
	if errors.As(err, &pe) {
		return pe.Page, true
	}
	return 0, false
}
