package textlayer

// Extractor opens PDF documents for text-layer extraction. It is the seam that
// lets the converter be tested without real PDF files.
type Extractor interface {
	// Open opens the document at path. The caller owns the returned Document
	// and must Close it.
	Open(path string) (Document, error)
}

// Document is an open PDF handle.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int

	// PageText returns the embedded text of the zero-based page index. An empty
	// or whitespace-only string means the page has no usable text layer.
	PageText(index int) (string, error)

	// Close releases the handle.
	Close() error
}

// MockExtractor implements Extractor for testing purposes. It serves Pages as
// the text of each page and records how documents are used.
type MockExtractor struct {
	Pages    []string
	PageErrs map[int]error
	OpenErr  error

	Opened []string
	Docs   []*MockDocument
}

// NewMockExtractor creates a MockExtractor serving the given page texts.
func NewMockExtractor(pages ...string) *MockExtractor {
	return &MockExtractor{Pages: pages}
}

// Open returns a MockDocument or the configured error.
func (m *MockExtractor) Open(path string) (Document, error) {
	m.Opened = append(m.Opened, path)
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	doc := &MockDocument{pages: m.Pages, errs: m.PageErrs}
	m.Docs = append(m.Docs, doc)
	return doc, nil
}

// MockDocument is the Document handed out by MockExtractor.
type MockDocument struct {
	pages []string
	errs  map[int]error

	Requested []int
	Closed    bool
}

// NumPage returns the number of mock pages.
func (d *MockDocument) NumPage() int { return len(d.pages) }

// PageText returns the mock text of page index.
func (d *MockDocument) PageText(index int) (string, error) {
	d.Requested = append(d.Requested, index)
	if err, ok := d.errs[index]; ok {
		return "", err
	}
	return d.pages[index], nil
}

// Close marks the document as closed.
func (d *MockDocument) Close() error {
	d.Closed = true
	return nil
}
