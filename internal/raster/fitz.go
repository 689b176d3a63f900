package raster

import (
	"context"
	"image"

	"fjacquet/pdf2md/internal/pdferror"

	"github.com/gen2brain/go-fitz"
)

// Fitz renders pages in-process with MuPDF through go-fitz.
type Fitz struct {
	DPI int
}

// NewFitz creates a MuPDF-backed rasterizer.
func NewFitz(dpi int) *Fitz {
	return &Fitz{DPI: dpi}
}

// Name returns "fitz".
func (f *Fitz) Name() string { return "fitz" }

// Render opens path, renders page index and closes the document again, so no
// handle outlives the call.
func (f *Fitz) Render(ctx context.Context, path string, index int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, &pdferror.RasterizeError{Backend: f.Name(), Err: err}
	}
	defer doc.Close()

	if index < 0 || index >= doc.NumPage() {
		return nil, nil
	}

	img, err := doc.ImageDPI(index, float64(f.DPI))
	if err != nil {
		return nil, &pdferror.RasterizeError{Backend: f.Name(), Err: err}
	}
	if img == nil {
		return nil, nil
	}
	return img, nil
}
