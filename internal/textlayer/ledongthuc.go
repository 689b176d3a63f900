// Package textlayer reads the embedded text layer of PDF pages.
//
// The production Extractor uses github.com/ledongthuc/pdf, a pure Go reader, so
// the text pass needs neither cgo nor external tools.
package textlayer

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"fjacquet/pdf2md/internal/pdferror"
	"fjacquet/pdf2md/internal/validation"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor implements Extractor with github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor instance.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Open opens path and parses its cross-reference table. Any failure here is a
// document-level error.
func (e *PDFExtractor) Open(path string) (doc Document, err error) {
	// The reader panics on some malformed trailers instead of returning errors.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &pdferror.OpenError{FilePath: path, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	if err := validation.InputFile(path); err != nil {
		return nil, &pdferror.OpenError{FilePath: path, Err: err}
	}

	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, &pdferror.OpenError{FilePath: path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &pdferror.OpenError{FilePath: path, Err: err}
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, &pdferror.OpenError{FilePath: path, Err: err}
	}
	return &pdfDocument{file: f, reader: r}, nil
}

type pdfDocument struct {
	file   io.Closer
	reader *pdf.Reader
}

func (d *pdfDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d *pdfDocument) PageText(index int) (text string, err error) {
	if index < 0 || index >= d.reader.NumPage() {
		return "", &pdferror.PageError{Page: index, Stage: pdferror.StageText, Err: fmt.Errorf("page out of range")}
	}
	// Content stream decoding panics on some broken fonts and operators.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &pdferror.PageError{Page: index, Stage: pdferror.StageText, Err: fmt.Errorf("malformed content stream: %v", r)}
		}
	}()

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = layoutText(page)
	if err != nil {
		text, err = page.GetPlainText(nil)
	}
	if err != nil {
		return "", &pdferror.PageError{Page: index, Stage: pdferror.StageText, Err: err}
	}
	return text, nil
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}

const (
	// lineTolerance is the largest baseline distance, in points, between
	// glyphs of the same line.
	lineTolerance = 3.0
	// wordGap is the horizontal gap, in points, that separates two words.
	wordGap = 3.0
)

// layoutText rebuilds the page lines from glyph positions. Producers place
// lines with Td, TD, Tm and the quote operators, none of which the plain text
// walk turns into line breaks.
func layoutText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("text layout: %v", r)
		}
	}()
	return joinRows(page.Content().Text), nil
}

type row struct {
	y      float64
	glyphs []pdf.Text
}

// joinRows groups glyphs into rows by baseline, orders rows top to bottom and
// glyphs left to right, and joins them into newline separated lines.
func joinRows(glyphs []pdf.Text) string {
	var rows []*row
	for _, g := range glyphs {
		if g.S == "" || strings.ContainsAny(g.S, "\r\n") {
			continue
		}
		var target *row
		for _, r := range rows {
			if math.Abs(r.y-g.Y) <= lineTolerance {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: g.Y}
			rows = append(rows, target)
		}
		target.glyphs = append(target.glyphs, g)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })

		var b strings.Builder
		for i, g := range r.glyphs {
			if i > 0 {
				prev := r.glyphs[i-1]
				if g.X-(prev.X+prev.W) > wordGap && prev.S != " " && g.S != " " {
					b.WriteByte(' ')
				}
			}
			b.WriteString(g.S)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
