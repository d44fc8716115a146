package pdftext

import (
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// Document is an opened PDF. Page numbers are 1-based.
type Document interface {
	NumPage() int
	// EmbeddedText returns the text layer of the page, which may be empty for scans.
	EmbeddedText(page int) (string, error)
	// RenderPNG rasterises the page at dpi and returns it PNG-encoded.
	RenderPNG(page int, dpi float64) ([]byte, error)
	Close() error
}

// Opener opens the PDF at path.
type Opener func(path string) (Document, error)

// pdfDocument reads the text layer with ledongthuc/pdf and renders with MuPDF,
// which is only loaded once a page needs rasterising.
type pdfDocument struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	fitz   *fitz.Document
}

// OpenDocument is the default Opener.
func OpenDocument(path string) (Document, error) {
	d := &pdfDocument{path: path}
	f, r, err := pdf.Open(path)
	if err == nil {
		d.file, d.reader = f, r
		return d, nil
	}
	// some files ledongthuc cannot parse still open in MuPDF
	if ferr := d.openFitz(); ferr != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return d, nil
}

func (d *pdfDocument) openFitz() error {
	if d.fitz != nil {
		return nil
	}
	doc, err := fitz.New(d.path)
	if err != nil {
		return fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	d.fitz = doc
	return nil
}

func (d *pdfDocument) NumPage() int {
	if d.reader != nil {
		return d.reader.NumPage()
	}
	return d.fitz.NumPage()
}

func (d *pdfDocument) EmbeddedText(page int) (text string, err error) {
	if d.reader == nil {
		return d.fitz.Text(page - 1)
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	// malformed font tables make the text layer decoder panic
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to extract text from page %d: %v", page, r)
		}
	}()
	return p.GetPlainText(nil)
}

func (d *pdfDocument) RenderPNG(page int, dpi float64) ([]byte, error) {
	if err := d.openFitz(); err != nil {
		return nil, err
	}
	return d.fitz.ImagePNG(page-1, dpi)
}

func (d *pdfDocument) Close() error {
	var firstErr error
	if d.fitz != nil {
		firstErr = d.fitz.Close()
	}
	if d.file != nil {
		if err := d.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
