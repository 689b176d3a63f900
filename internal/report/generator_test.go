package report

import (
	"encoding/json"
	"strings"
	"testing"

	"fjacquet/pdf2md/internal/logging"
	"fjacquet/pdf2md/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *models.DocumentReport {
	return &models.DocumentReport{
		File:      "scan.pdf",
		PageCount: 2,
		OCRPages:  1,
		Pages: []models.PageReport{
			{Index: 0, Source: models.SourceText, LineCount: 3, CaptionCount: 1, CharCount: 42},
			{Index: 1, Source: models.SourceOCR, LineCount: 5, CaptionCount: 0, CharCount: 120},
		},
		Markdown: "not part of the report",
	}
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	generator := NewReportGenerator(logging.NewMockLogger())

	out, err := generator.GenerateReport(sampleReport(), "json")
	require.NoError(t, err)

	var decoded models.DocumentReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "scan.pdf", decoded.File)
	assert.Equal(t, 1, decoded.OCRPages)
	assert.Equal(t, sampleReport().Pages, decoded.Pages)
	assert.Empty(t, decoded.Markdown)
	assert.NotContains(t, string(out), "not part of the report")
	assert.Contains(t, string(out), `"caption_count": 1`)
}

func TestReportGenerator_GenerateReport_YAML(t *testing.T) {
	generator := NewReportGenerator(nil)

	out, err := generator.GenerateReport(sampleReport(), "YAML")
	require.NoError(t, err)

	var decoded models.DocumentReport
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, 2, decoded.PageCount)
	assert.Equal(t, models.SourceOCR, decoded.Pages[1].Source)
	assert.Contains(t, string(out), "line_count: 5")
}

func TestReportGenerator_GenerateReport_CSV(t *testing.T) {
	generator := NewReportGenerator(nil)

	out, err := generator.GenerateReport(sampleReport(), "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "index,source,line_count,caption_count,char_count", lines[0])
	assert.Equal(t, "0,text,3,1,42", lines[1])
	assert.Equal(t, "1,ocr,5,0,120", lines[2])
}

func TestReportGenerator_GenerateReport_Errors(t *testing.T) {
	logger := logging.NewMockLogger()
	generator := NewReportGenerator(logger)

	_, err := generator.GenerateReport(sampleReport(), "xml")
	assert.EqualError(t, err, "unsupported report format: xml")

	warns := logger.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, "Unsupported report format", warns[0].Message)
	assert.Contains(t, warns[0].Fields, logging.Field{Key: logging.FieldFormat, Value: "xml"})

	_, err = generator.GenerateReport(nil, "json")
	assert.Error(t, err)
}
