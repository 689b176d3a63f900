// Package raster renders single PDF pages to images for OCR.
package raster

import (
	"context"
	"image"
	"sync"
)

// Rasterizer renders exactly one page of a PDF file. index is zero-based.
// A nil image with a nil error means the backend produced no image for the page.
type Rasterizer interface {
	Name() string
	Render(ctx context.Context, path string, index int) (image.Image, error)
}

// MockRasterizer implements Rasterizer for testing purposes. It returns Images
// by page index and records every requested index.
type MockRasterizer struct {
	Images map[int]image.Image
	Err    error

	mu    sync.Mutex
	calls []int
}

// NewMockRasterizer creates a MockRasterizer serving images by page index.
func NewMockRasterizer(images map[int]image.Image) *MockRasterizer {
	return &MockRasterizer{Images: images}
}

// Name returns "mock".
func (m *MockRasterizer) Name() string { return "mock" }

// Render records the call and returns the configured image or error.
func (m *MockRasterizer) Render(ctx context.Context, path string, index int) (image.Image, error) {
	m.mu.Lock()
	m.calls = append(m.calls, index)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Images[index], nil
}

// Calls returns the page indexes requested so far, in call order.
func (m *MockRasterizer) Calls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.calls...)
}
