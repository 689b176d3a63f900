// Package container provides dependency injection for pdf2md.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/pdf2md/internal/config"
	"fjacquet/pdf2md/internal/converter"
	"fjacquet/pdf2md/internal/fallback"
	"fjacquet/pdf2md/internal/logging"
	"fjacquet/pdf2md/internal/ocr"
	"fjacquet/pdf2md/internal/raster"
	"fjacquet/pdf2md/internal/report"
	"fjacquet/pdf2md/internal/textlayer"
	"fjacquet/pdf2md/internal/validator"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger logging.Logger
	config *config.Config

	extractor  textlayer.Extractor
	rasterizer raster.Rasterizer
	engine     ocr.Engine
	fallback   *fallback.OCR

	converter *converter.Converter
	validator *validator.Validator
	reports   *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies, logging with
// the logger described by cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	c := &Container{
		logger:    logger,
		config:    cfg,
		extractor: textlayer.NewPDFExtractor(),
		validator: validator.New(logger),
		reports:   report.NewReportGenerator(logger),
	}

	// A nil *fallback.OCR must not reach the converter as a non-nil interface.
	var pageOCR fallback.PageOCR
	if cfg.OCR.Enabled {
		mode := ocr.PageSegMode(cfg.OCR.PSM)
		if err := mode.Validate(); err != nil {
			return nil, err
		}

		rasterizer, err := newRasterizer(cfg.OCR)
		if err != nil {
			return nil, err
		}
		c.rasterizer = rasterizer
		c.engine = ocr.NewTesseractEngine(cfg.OCR.Languages...)
		c.fallback = fallback.New(c.rasterizer, c.engine, mode, logger)
		pageOCR = c.fallback

		logger.Debug("OCR fallback enabled",
			logging.Field{Key: logging.FieldRasterizer, Value: rasterizer.Name()},
			logging.Field{Key: logging.FieldDPI, Value: cfg.OCR.DPI},
			logging.Field{Key: logging.FieldPSM, Value: cfg.OCR.PSM})
	}

	c.converter = converter.New(c.extractor, pageOCR, converter.Options{
		Workers:   cfg.Pipeline.Workers,
		Normalize: cfg.Output.Normalize,
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "ocr_enabled", Value: cfg.OCR.Enabled},
		logging.Field{Key: logging.FieldRasterizer, Value: cfg.OCR.Rasterizer},
		logging.Field{Key: logging.FieldWorkers, Value: cfg.Pipeline.Workers})

	return c, nil
}

func newRasterizer(cfg config.OCRConfig) (raster.Rasterizer, error) {
	switch cfg.Rasterizer {
	case config.RasterizerPdftoppm, "":
		return raster.NewPdftoppm(config.ExpandHome(cfg.PdftoppmPath), cfg.DPI), nil
	case config.RasterizerFitz:
		return raster.NewFitz(cfg.DPI), nil
	default:
		return nil, fmt.Errorf("unknown rasterizer: %s", cfg.Rasterizer)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetExtractor returns the text-layer extractor.
func (c *Container) GetExtractor() textlayer.Extractor {
	return c.extractor
}

// GetRasterizer returns the page rasterizer, or nil when OCR is disabled.
func (c *Container) GetRasterizer() raster.Rasterizer {
	return c.rasterizer
}

// GetEngine returns the OCR engine, or nil when OCR is disabled.
func (c *Container) GetEngine() ocr.Engine {
	return c.engine
}

// GetFallback returns the OCR fallback, or nil when OCR is disabled.
func (c *Container) GetFallback() *fallback.OCR {
	return c.fallback
}

// GetConverter returns the conversion pipeline.
func (c *Container) GetConverter() *converter.Converter {
	return c.converter
}

// GetValidator returns the structural PDF validator.
func (c *Container) GetValidator() *validator.Validator {
	return c.validator
}

// GetReportGenerator returns the inspect report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}
