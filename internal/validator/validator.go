// Package validator checks PDF structure with pdfcpu before conversion.
package validator

import (
	"fmt"
	"os"

	"fjacquet/pdf2md/internal/logging"
	"fjacquet/pdf2md/internal/pdferror"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Report describes a structurally valid PDF.
type Report struct {
	File      string `json:"file" yaml:"file"`
	Version   string `json:"version" yaml:"version"`
	PageCount int    `json:"page_count" yaml:"page_count"`
	// ImagePages lists the one-based pages that reference image XObjects.
	ImagePages []int `json:"image_pages" yaml:"image_pages"`
}

// Validator runs pdfcpu validation in relaxed mode.
type Validator struct {
	logger logging.Logger
}

// New creates a Validator.
func New(logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Validator{logger: logger}
}

// Validate reads, validates and optimizes the PDF at path. A structural
// problem is returned as an OpenError.
func (v *Validator) Validate(path string) (*Report, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, &pdferror.OpenError{FilePath: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			v.logger.WithError(cerr).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, &pdferror.OpenError{FilePath: path, Err: fmt.Errorf("pdfcpu: %w", err)}
	}

	report := &Report{
		File:       path,
		Version:    ctx.XRefTable.Version().String(),
		PageCount:  ctx.PageCount,
		ImagePages: []int{},
	}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
			report.ImagePages = append(report.ImagePages, pageNr)
		}
	}

	v.logger.Info("PDF is valid",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldPageCount, Value: report.PageCount},
		logging.Field{Key: logging.FieldCount, Value: len(report.ImagePages)})
	return report, nil
}
