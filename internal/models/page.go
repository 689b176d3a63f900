package models

// PageSource records where a page's text came from.
type PageSource string

const (
	// SourceText means the embedded text layer was used.
	SourceText PageSource = "text"
	// SourceOCR means the page was rasterized and recognized.
	SourceOCR PageSource = "ocr"
	// SourceNone means the page had no text layer and OCR was disabled.
	SourceNone PageSource = "none"
)

// Page is the text of one zero-indexed page once extraction (and, if needed,
// OCR) has run.
type Page struct {
	Index  int
	Text   string
	Source PageSource
}

// PageReport summarizes one assembled page.
type PageReport struct {
	Index        int        `json:"index" yaml:"index" csv:"index"`
	Source       PageSource `json:"source" yaml:"source" csv:"source"`
	LineCount    int        `json:"line_count" yaml:"line_count" csv:"line_count"`
	CaptionCount int        `json:"caption_count" yaml:"caption_count" csv:"caption_count"`
	CharCount    int        `json:"char_count" yaml:"char_count" csv:"char_count"`
}

// DocumentReport is the outcome of a conversion including per-page details.
type DocumentReport struct {
	File      string       `json:"file" yaml:"file"`
	PageCount int          `json:"page_count" yaml:"page_count"`
	OCRPages  int          `json:"ocr_pages" yaml:"ocr_pages"`
	Pages     []PageReport `json:"pages" yaml:"pages"`
	Markdown  string       `json:"-" yaml:"-"`
}
