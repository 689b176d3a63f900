package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/pdf2md/internal/pdferror"
)

// Pdftoppm renders pages with poppler's pdftoppm command.
type Pdftoppm struct {
	// Binary is the pdftoppm executable, looked up in PATH when not absolute.
	Binary string
	// DPI is the render resolution.
	DPI int
}

// NewPdftoppm creates a Pdftoppm rasterizer.
func NewPdftoppm(binary string, dpi int) *Pdftoppm {
	if binary == "" {
		binary = "pdftoppm"
	}
	return &Pdftoppm{Binary: binary, DPI: dpi}
}

// Name returns "pdftoppm".
func (p *Pdftoppm) Name() string { return "pdftoppm" }

// Render rasterizes the single page index of path into a PNG in a temporary
// directory and decodes it. The directory is removed before returning.
func (p *Pdftoppm) Render(ctx context.Context, path string, index int) (image.Image, error) {
	if index < 0 {
		return nil, &pdferror.RasterizeError{Backend: p.Name(), Err: fmt.Errorf("invalid page index %d", index)}
	}

	tmpDir, err := os.MkdirTemp("", "pdf2md-raster")
	if err != nil {
		return nil, &pdferror.RasterizeError{Backend: p.Name(), Err: fmt.Errorf("create temporary directory: %w", err)}
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, p.Binary, p.args(path, index, prefix)...) // #nosec G204 -- binary comes from configuration
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &pdferror.RasterizeError{
			Backend: p.Name(),
			Output:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	f, err := os.Open(prefix + ".png")
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &pdferror.RasterizeError{Backend: p.Name(), Err: err}
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, &pdferror.RasterizeError{Backend: p.Name(), Err: fmt.Errorf("decode page image: %w", err)}
	}
	return img, nil
}

// args builds the pdftoppm command line; pdftoppm numbers pages from 1.
func (p *Pdftoppm) args(path string, index int, prefix string) []string {
	page := strconv.Itoa(index + 1)
	args := []string{"-png", "-singlefile", "-f", page, "-l", page}
	if p.DPI > 0 {
		args = append(args, "-r", strconv.Itoa(p.DPI))
	}
	return append(args, path, prefix)
}
