// Package converter drives a PDF through text extraction, OCR fallback and
// assembly. It is the single place where stage errors become a failed Result.
package converter

import (
	"context"
	"strings"
	"time"

	"fjacquet/pdf2md/internal/assembler"
	"fjacquet/pdf2md/internal/fallback"
	"fjacquet/pdf2md/internal/logging"
	"fjacquet/pdf2md/internal/models"
	"fjacquet/pdf2md/internal/normalize"
	"fjacquet/pdf2md/internal/pdferror"
	"fjacquet/pdf2md/internal/textlayer"

	"golang.org/x/sync/errgroup"
)

// Options tune a Converter. The zero value converts sequentially without
// normalization.
type Options struct {
	// Workers bounds how many pages are OCRed at once. Values below 1 mean 1.
	Workers int
	// Normalize runs the markdown normalizer on the assembled document.
	Normalize bool
}

// Converter turns one PDF file into markdown.
type Converter struct {
	extractor textlayer.Extractor
	ocr       fallback.PageOCR
	opts      Options
	logger    logging.Logger
}

// New creates a Converter. A nil ocr disables the fallback: pages without a
// text layer are left empty.
func New(extractor textlayer.Extractor, ocr fallback.PageOCR, opts Options, logger logging.Logger) *Converter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Converter{
		extractor: extractor,
		ocr:       ocr,
		opts:      opts,
		logger:    logger,
	}
}

// Convert runs the pipeline and maps the outcome to a Result. It never panics
// on bad input; every failure is reported in the Result.
func (c *Converter) Convert(ctx context.Context, path string) models.Result {
	report, err := c.Run(ctx, path)
	if err != nil {
		fields := []logging.Field{{Key: logging.FieldFile, Value: path}}
		if page, ok := pdferror.PageOf(err); ok {
			fields = append(fields, logging.Field{Key: logging.FieldPage, Value: page})
		}
		c.logger.WithError(err).Error("Conversion failed", fields...)
		return models.Failed(err)
	}
	return models.Succeeded(report.Markdown)
}

// Run converts path and returns the markdown together with per-page details.
func (c *Converter) Run(ctx context.Context, path string) (*models.DocumentReport, error) {
	start := time.Now()
	log := c.logger.WithField(logging.FieldFile, path)

	doc, err := c.extractor.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close PDF")
		}
	}()

	count := doc.NumPage()
	log.Info("Converting PDF", logging.Field{Key: logging.FieldPageCount, Value: count})

	pages := make([]models.Page, count)
	var missing []int
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pages[i] = models.Page{Index: i, Source: models.SourceText}
		text, err := doc.PageText(i)
		if err != nil {
			log.WithError(err).Warn("Text layer unreadable, falling back to OCR",
				logging.Field{Key: logging.FieldPage, Value: i},
				logging.Field{Key: logging.FieldStage, Value: pdferror.StageText})
			missing = append(missing, i)
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Debug("Page has no text layer", logging.Field{Key: logging.FieldPage, Value: i})
			missing = append(missing, i)
			continue
		}
		pages[i].Text = text
	}

	if err := c.ocrMissing(ctx, path, pages, missing); err != nil {
		return nil, err
	}

	markdown, reports := assembler.Assemble(pages)
	if c.opts.Normalize {
		markdown = normalize.Markdown(markdown)
	}

	ocrPages := 0
	if c.ocr != nil {
		ocrPages = len(missing)
	}

	log.Info("Conversion finished",
		logging.Field{Key: logging.FieldPageCount, Value: count},
		logging.Field{Key: logging.FieldCount, Value: ocrPages},
		logging.Field{Key: logging.FieldChars, Value: len(markdown)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})

	return &models.DocumentReport{
		File:      path,
		PageCount: count,
		OCRPages:  ocrPages,
		Pages:     reports,
		Markdown:  markdown,
	}, nil
}

// ocrMissing fills the pages listed in missing with OCR text. Each goroutine
// writes only its own slot, so page order does not depend on completion order.
// The first failure cancels the remaining pages.
func (c *Converter) ocrMissing(ctx context.Context, path string, pages []models.Page, missing []int) error {
	if len(missing) == 0 {
		return nil
	}
	if c.ocr == nil {
		for _, i := range missing {
			pages[i].Text = ""
			pages[i].Source = models.SourceNone
		}
		c.logger.Warn("OCR disabled, pages without text layer left empty",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldSource, Value: models.SourceNone},
			logging.Field{Key: logging.FieldCount, Value: len(missing)})
		return nil
	}

	c.logger.Debug("Running OCR fallback",
		logging.Field{Key: logging.FieldCount, Value: len(missing)},
		logging.Field{Key: logging.FieldWorkers, Value: c.opts.Workers})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for _, i := range missing {
		g.Go(func() error {
			text, err := c.ocr.Page(gctx, path, i)
			if err != nil {
				return err
			}
			pages[i].Text = text
			pages[i].Source = models.SourceOCR
			return nil
		})
	}
	return g.Wait()
}
