// Package ocr runs optical character recognition on page images.
//
// The Engine interface keeps the converter independent of Tesseract so tests
// can substitute a MockEngine.
package ocr

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// PageSegMode is a Tesseract page segmentation mode (0..13).
type PageSegMode int

// Page segmentation modes used by pdf2md.
const (
	// PSMAutoOSD is fully automatic page segmentation with orientation and
	// script detection.
	PSMAutoOSD PageSegMode = 1
	// PSMAuto is fully automatic page segmentation without OSD.
	PSMAuto PageSegMode = 3
	// PSMSingleBlock assumes a single uniform block of text.
	PSMSingleBlock PageSegMode = 6
	// PSMMax is the highest mode Tesseract accepts.
	PSMMax PageSegMode = 13
)

// Validate reports whether m is a mode Tesseract accepts.
func (m PageSegMode) Validate() error {
	if m < 0 || m > PSMMax {
		return fmt.Errorf("page segmentation mode %d out of range 0..%d", m, PSMMax)
	}
	return nil
}

// Engine recognizes the text of one page image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image, mode PageSegMode) (string, error)
}

// MockEngine implements Engine for testing purposes. Text maps an image to its
// recognized text; when nil, Default is returned for every image.
type MockEngine struct {
	Text    func(img image.Image) string
	Default string
	Err     error

	mu    sync.Mutex
	modes []PageSegMode
}

// Name returns "mock".
func (m *MockEngine) Name() string { return "mock" }

// Recognize records the mode and returns the configured text or error.
func (m *MockEngine) Recognize(ctx context.Context, img image.Image, mode PageSegMode) (string, error) {
	m.mu.Lock()
	m.modes = append(m.modes, mode)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Text != nil {
		return m.Text(img), nil
	}
	return m.Default, nil
}

// Calls returns how many times Recognize ran.
func (m *MockEngine) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.modes)
}

// Modes returns the page segmentation modes Recognize was called with.
func (m *MockEngine) Modes() []PageSegMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PageSegMode(nil), m.modes...)
}
