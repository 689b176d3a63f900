// Package report renders conversion reports for the inspect command.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/pdf2md/internal/logging"
	"fjacquet/pdf2md/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Formats lists the accepted values of the --format flag.
var Formats = []string{FormatJSON, FormatYAML, FormatCSV}

// ReportGenerator renders a DocumentReport in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// GenerateReport renders report as json, yaml or csv. The csv form holds one
// row per page; the document level fields are only in json and yaml.
func (g *ReportGenerator) GenerateReport(report *models.DocumentReport, format string) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to generate")
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatYAML, "yml":
		return g.generateYAMLReport(report)
	case FormatCSV:
		return g.generateCSVReport(report)
	default:
		g.logger.Warn("Unsupported report format", logging.Field{Key: logging.FieldFormat, Value: format})
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(report *models.DocumentReport) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report",
			logging.Field{Key: logging.FieldFormat, Value: FormatJSON})
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(report *models.DocumentReport) ([]byte, error) {
	out, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report",
			logging.Field{Key: logging.FieldFormat, Value: FormatYAML})
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateCSVReport(report *models.DocumentReport) ([]byte, error) {
	pages := report.Pages
	if pages == nil {
		pages = []models.PageReport{}
	}
	out, err := gocsv.MarshalBytes(&pages)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report",
			logging.Field{Key: logging.FieldFormat, Value: FormatCSV})
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return out, nil
}
