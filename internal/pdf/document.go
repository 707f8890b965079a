// Package pdf loads PDF documents and rasterises their pages with MuPDF.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/spherical/pdf-stitcher/internal/domain"
	"github.com/spherical/pdf-stitcher/internal/observability"
)

// pointsPerInch is the PDF user space resolution; scale 1.0 renders at it.
const pointsPerInch = 72

// Document is a loaded PDF backed by go-fitz
type Document struct {
	doc    *fitz.Document
	pages  int
	logger *observability.Logger
}

// Open validates the file at path and loads it for rendering
func Open(path, password string, logger *observability.Logger) (*Document, error) {
	validator := NewValidator(logger)
	if err := validator.ValidatePDFPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.IOError(fmt.Sprintf("failed to read %s", path), err)
	}
	return OpenBytes(data, password, logger)
}

// OpenBytes validates raw PDF bytes and loads them for rendering
func OpenBytes(data []byte, password string, logger *observability.Logger) (*Document, error) {
	if logger == nil {
		logger = observability.Nop()
	}
	validator := NewValidator(logger)

	info, err := validator.Inspect(data, password)
	if err != nil {
		if fatal(data, err) {
			return nil, err
		}
		logger.Warn().Err(err).Msg("pdfcpu rejected PDF, trying MuPDF")
	}

	// MuPDF gets a decrypted copy; pdfcpu already checked the password.
	if info != nil && info.Encrypted {
		if data, err = validator.Decrypt(data, password); err != nil {
			return nil, err
		}
	}

	doc, ferr := fitz.NewFromMemory(data)
	if ferr != nil {
		if err != nil {
			return nil, domain.LoadError("failed to open PDF", errors.Join(err, ferr))
		}
		return nil, domain.LoadError("failed to open PDF", ferr)
	}

	pages := doc.NumPage()
	if pages == 0 {
		doc.Close()
		return nil, domain.LoadError("PDF has no pages", err)
	}
	if info != nil && pages != info.PageCount {
		logger.Warn().
			Int("pdfcpu_pages", info.PageCount).
			Int("mupdf_pages", pages).
			Msg("page count mismatch between parsers, using MuPDF")
	}

	return &Document{
		doc:    doc,
		pages:  pages,
		logger: logger.WithOperation("render"),
	}, nil
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.pages
}

// Page returns the handle for a 1-based page index
func (d *Document) Page(index int) (domain.Page, error) {
	if index < 1 || index > d.pages {
		return nil, domain.RenderError(fmt.Sprintf("page %d out of range 1..%d", index, d.pages), nil)
	}
	return &Page{doc: d, index: index}, nil
}

// PageSizes returns each page's bounds in PDF points
func (d *Document) PageSizes() ([]image.Point, error) {
	sizes := make([]image.Point, d.pages)
	for i := range sizes {
		r, err := d.doc.Bound(i)
		if err != nil {
			return nil, domain.LoadError(fmt.Sprintf("failed to read bounds of page %d", i+1), err)
		}
		sizes[i] = r.Size()
	}
	return sizes, nil
}

// Close releases the MuPDF document
func (d *Document) Close() error {
	if d.doc == nil {
		return nil
	}
	err := d.doc.Close()
	d.doc = nil
	return err
}

// Page is a single page of a Document
type Page struct {
	doc   *Document
	index int
}

// Number returns the 1-based page index
func (p *Page) Number() int {
	return p.index
}

// Render rasterises the page at scale times 72 DPI
func (p *Page) Render(ctx context.Context, scale float64) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if scale <= 0 {
		return nil, domain.RenderError(fmt.Sprintf("invalid scale %v", scale), nil)
	}
	if p.doc.doc == nil {
		return nil, domain.RenderError("document is closed", nil)
	}

	img, err := p.doc.doc.ImageDPI(p.index-1, scale*pointsPerInch)
	if err != nil {
		return nil, domain.RenderError(fmt.Sprintf("failed to render page %d", p.index), err)
	}

	p.doc.logger.Debug().
		Int("page", p.index).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("rendered page")

	return img, nil
}
