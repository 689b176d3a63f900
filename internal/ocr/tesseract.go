package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"fjacquet/pdf2md/internal/pdferror"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine with the gosseract client. A fresh client
// is created per call, so one engine can serve concurrent OCR workers.
type TesseractEngine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed OCR engine for the given
// languages (tesseract codes such as "eng" or "deu").
func NewTesseractEngine(languages ...string) *TesseractEngine {
	return &TesseractEngine{
		languages:     append([]string(nil), languages...),
		clientFactory: gosseract.NewClient,
	}
}

// Name returns "tesseract".
func (e *TesseractEngine) Name() string { return "tesseract" }

// Languages returns the configured recognition languages.
func (e *TesseractEngine) Languages() []string {
	return append([]string(nil), e.languages...)
}

// Recognize encodes img as PNG and runs Tesseract on it with the given page
// segmentation mode.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, mode PageSegMode) (string, error) {
	if err := mode.Validate(); err != nil {
		return "", &pdferror.RecognizeError{Engine: e.Name(), Err: err}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", &pdferror.RecognizeError{Engine: e.Name(), Err: err}
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", &pdferror.RecognizeError{Engine: e.Name(), Err: fmt.Errorf("set languages: %w", err)}
		}
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
		return "", &pdferror.RecognizeError{Engine: e.Name(), Err: fmt.Errorf("set page segmentation mode: %w", err)}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return "", &pdferror.RecognizeError{Engine: e.Name(), Err: fmt.Errorf("set image: %w", err)}
	}

	text, err := c.Text()
	if err != nil {
		return "", &pdferror.RecognizeError{Engine: e.Name(), Err: fmt.Errorf("recognize text: %w", err)}
	}
	return text, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page image: %w", err)
	}
	return buf.Bytes(), nil
}
