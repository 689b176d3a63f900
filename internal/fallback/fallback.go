// Package fallback recovers the text of pages that have no usable text layer by
// rasterizing that single page and running OCR on it.
//
// Pages with no text layer and heavy non-text graphics come back degraded or
// empty; that is accepted and not handled specially.
package fallback

import (
	"context"
	"time"

	"fjacquet/pdf2md/internal/imageprep"
	"fjacquet/pdf2md/internal/logging"
	"fjacquet/pdf2md/internal/models"
	"fjacquet/pdf2md/internal/ocr"
	"fjacquet/pdf2md/internal/pdferror"
	"fjacquet/pdf2md/internal/raster"
)

// PageOCR is what the converter needs from the fallback.
type PageOCR interface {
	Page(ctx context.Context, path string, index int) (string, error)
}

// OCR rasterizes, preprocesses and recognizes one page at a time.
type OCR struct {
	rasterizer raster.Rasterizer
	engine     ocr.Engine
	mode       ocr.PageSegMode
	logger     logging.Logger
}

// New creates an OCR fallback. A nil logger discards log output.
func New(rasterizer raster.Rasterizer, engine ocr.Engine, mode ocr.PageSegMode, logger logging.Logger) *OCR {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &OCR{
		rasterizer: rasterizer,
		engine:     engine,
		mode:       mode,
		logger:     logger,
	}
}

// Mode returns the page segmentation mode passed to the engine.
func (o *OCR) Mode() ocr.PageSegMode {
	return o.mode
}

// Page returns the OCR text of the zero-based page index of the PDF at path.
// Only that page is rendered. It returns "" when the rasterizer yields no image.
func (o *OCR) Page(ctx context.Context, path string, index int) (string, error) {
	log := o.logger.WithFields(
		logging.Field{Key: logging.FieldPage, Value: index},
		logging.Field{Key: logging.FieldRasterizer, Value: o.rasterizer.Name()},
	)
	start := time.Now()

	img, err := o.rasterizer.Render(ctx, path, index)
	if err != nil {
		log.WithError(err).Debug("Page render failed",
			logging.Field{Key: logging.FieldStage, Value: pdferror.StageRasterize})
		return "", &pdferror.PageError{Page: index, Stage: pdferror.StageRasterize, Err: err}
	}
	if img == nil {
		log.Warn("Rasterizer produced no image, page left empty")
		return "", nil
	}

	prepared := imageprep.Preprocess(img)

	text, err := o.engine.Recognize(ctx, prepared, o.mode)
	if err != nil {
		log.WithError(err).Debug("Page recognition failed",
			logging.Field{Key: logging.FieldStage, Value: pdferror.StageOCR})
		return "", &pdferror.PageError{Page: index, Stage: pdferror.StageOCR, Err: err}
	}

	log.Debug("Recognized page",
		logging.Field{Key: logging.FieldSource, Value: models.SourceOCR},
		logging.Field{Key: logging.FieldEngine, Value: o.engine.Name()},
		logging.Field{Key: logging.FieldPSM, Value: int(o.mode)},
		logging.Field{Key: logging.FieldChars, Value: len(text)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return text, nil
}
