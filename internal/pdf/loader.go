package pdf

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Page is one physical page of the source document.
type Page struct {
	Text   string
	Number int // zero-based, as the loader reports it
}

// LoadError means the document could not be read at all: missing file,
// invalid PDF, or zero pages. It always aborts ingestion.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load pdf %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrNoPages is wrapped in a LoadError when a document parses but
// contains no pages. Callers must treat this as a terminal failure,
// not an empty-but-valid result.
var ErrNoPages = errors.New("document has no pages")

// Loader reads PDFs page by page. It tries the Go library first, then
// falls back to pdftotext if enabled and available.
type Loader struct {
	FallbackPdftotext bool
}

// LoadPages returns one Page per physical page, in document order.
func (l *Loader) LoadPages(path string) ([]Page, error) {
	pages, err := loadPdflib(path)
	if err != nil && l.FallbackPdftotext {
		if fallback, ferr := loadPdftotext(path); ferr == nil {
			pages = fallback
			err = nil
		}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(pages) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoPages}
	}
	return pages, nil
}

func loadPdflib(path string) ([]Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: i - 1})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep the page so numbering stays aligned with the document.
			text = ""
		}
		pages = append(pages, Page{Text: text, Number: i - 1})
	}
	return pages, nil
}

func loadPdftotext(path string) ([]Page, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	// pdftotext separates pages with form feeds. The final form feed
	// leaves an empty trailing element; drop it.
	parts := strings.Split(string(out), "\f")
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	pages := make([]Page, 0, len(parts))
	for i, text := range parts {
		pages = append(pages, Page{Text: text, Number: i})
	}
	return pages, nil
}
