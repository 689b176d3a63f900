// Package assembler turns per-page text into the final markdown document.
package assembler

import (
	"strings"
	"unicode/utf8"

	"fjacquet/pdf2md/internal/caption"
	"fjacquet/pdf2md/internal/models"
)

// pageSeparator follows every page, including empty ones.
const pageSeparator = "\n\n"

// FormatPage trims every line of text, tags caption lines and rejoins them
// with "\n". It also returns the page statistics.
func FormatPage(text string) (string, models.PageReport) {
	var report models.PageReport
	if text == "" {
		return "", report
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		classified, tagged := caption.Classify(strings.TrimSpace(line))
		if tagged {
			report.CaptionCount++
		}
		if classified != "" {
			report.LineCount++
		}
		lines[i] = classified
	}

	body := strings.Join(lines, "\n")
	report.CharCount = utf8.RuneCountInString(body)
	return body, report
}

// Assemble formats pages in order and concatenates them, each followed by a
// blank line. The result is trimmed of surrounding whitespace.
func Assemble(pages []models.Page) (string, []models.PageReport) {
	var sb strings.Builder
	reports := make([]models.PageReport, 0, len(pages))

	for _, page := range pages {
		body, report := FormatPage(page.Text)
		report.Index = page.Index
		report.Source = page.Source
		reports = append(reports, report)

		sb.WriteString(body)
		sb.WriteString(pageSeparator)
	}

	return strings.TrimSpace(sb.String()), reports
}
