package domain

import (
	"context"
	"image"
)

// Document is a loaded multi-page document
type Document interface {
	// PageCount returns the number of pages
	PageCount() int

	// Page returns the handle for a 1-based page index
	Page(index int) (Page, error)
}

// Page renders a single page to a raster surface
type Page interface {
	// Number returns the 1-based page index
	Number() int

	// Render rasterises the page; scale 1.0 maps one PDF point to one pixel
	Render(ctx context.Context, scale float64) (image.Image, error)
}

// Pipeline turns a document into one encoded image per page group
type Pipeline interface {
	Process(ctx context.Context, doc Document, cfg Config, onStatus StatusFunc) ([]Payload, error)
}
