// Package stitcher is the public entry point for turning a PDF into stitched
// long images and packaging them.
package stitcher

import (
	"context"
	"io"

	"github.com/spherical/pdf-stitcher/internal/archive"
	"github.com/spherical/pdf-stitcher/internal/domain"
	"github.com/spherical/pdf-stitcher/internal/observability"
	"github.com/spherical/pdf-stitcher/internal/pdf"
	"github.com/spherical/pdf-stitcher/internal/stitch"
)

// Re-export domain types for the public API
type (
	Config      = domain.Config
	Direction   = domain.Direction
	Quality     = domain.Quality
	Status      = domain.Status
	StatusFunc  = domain.StatusFunc
	Phase       = domain.Phase
	MessageCode = domain.MessageCode
	Payload     = domain.Payload
	Format      = domain.Format
)

// Option values
const (
	Vertical   = domain.DirectionVertical
	Horizontal = domain.DirectionHorizontal
	High       = domain.QualityHigh
	Normal     = domain.QualityNormal
)

// Phase constants
const (
	PhaseLoading   = domain.PhaseLoading
	PhaseRendering = domain.PhaseRendering
	PhaseStitching = domain.PhaseStitching
	PhasePackaging = domain.PhasePackaging
	PhaseDone      = domain.PhaseDone
	PhaseError     = domain.PhaseError
)

// Document is a loaded PDF ready for stitching
type Document interface {
	domain.Document
	Close() error
}

// Client is the main entry point for the stitcher library
type Client struct {
	pipeline domain.Pipeline
	logger   *observability.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used by the client and its pipeline
func WithLogger(logger *observability.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPipeline replaces the default render/composite/encode pipeline
func WithPipeline(p domain.Pipeline) Option {
	return func(c *Client) {
		c.pipeline = p
	}
}

// NewClient creates a new stitcher client
func NewClient(opts ...Option) *Client {
	c := &Client{logger: observability.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = observability.Nop()
	}
	if c.pipeline == nil {
		c.pipeline = stitch.NewService(c.logger)
	}
	return c
}

// DefaultConfig returns the initial stitching options
func DefaultConfig() Config {
	return domain.DefaultConfig()
}

// Load opens and validates the PDF at path
func (c *Client) Load(ctx context.Context, path, password string, onStatus StatusFunc) (Document, error) {
	return c.load(ctx, onStatus, func() (*pdf.Document, error) {
		return pdf.Open(path, password, c.logger)
	})
}

// LoadBytes opens and validates PDF bytes
func (c *Client) LoadBytes(ctx context.Context, data []byte, password string, onStatus StatusFunc) (Document, error) {
	return c.load(ctx, onStatus, func() (*pdf.Document, error) {
		return pdf.OpenBytes(data, password, c.logger)
	})
}

func (c *Client) load(ctx context.Context, onStatus StatusFunc, open func() (*pdf.Document, error)) (Document, error) {
	onStatus.Emit(Status{Phase: PhaseLoading, Code: domain.MsgLoading})

	if err := ctx.Err(); err != nil {
		err = domain.CanceledError("loading canceled", err)
		c.fail(onStatus, domain.MsgErrorLoad, err)
		return nil, err
	}

	doc, err := open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load PDF")
		c.fail(onStatus, domain.MsgErrorLoad, err)
		return nil, err
	}
	return doc, nil
}

// Process stitches doc into one payload per page group. The group count is
// clamped to [1, page count] first.
func (c *Client) Process(ctx context.Context, doc Document, cfg Config, onStatus StatusFunc) ([]Payload, error) {
	if doc == nil {
		err := domain.ValidationError("no document loaded", nil)
		c.fail(onStatus, domain.MsgErrorProcess, err)
		return nil, err
	}
	return c.pipeline.Process(ctx, doc, cfg.Clamp(doc.PageCount()), onStatus)
}

// Package writes payloads as a ZIP archive named after base. Failure leaves
// the payloads untouched so packaging can be retried.
func (c *Client) Package(w io.Writer, base string, payloads []Payload, onStatus StatusFunc) error {
	onStatus.Emit(Status{Phase: PhasePackaging, Code: domain.MsgPackaging})

	if err := archive.Generate(w, archive.Entries(base, payloads)); err != nil {
		c.logger.Error().Err(err).Str("base", base).Msg("Failed to package images")
		c.fail(onStatus, domain.MsgErrorPackage, err)
		return err
	}

	onStatus.Emit(Status{Phase: PhaseDone, Progress: 100, Code: domain.MsgDone})
	return nil
}

// FileName returns the archive entry name of the index-th (1-based) payload
func FileName(base string, index int, p Payload) string {
	return archive.FileName(base, index, p)
}

// BaseName derives the output base name from an input file name
func BaseName(filename string) string {
	return archive.BaseName(filename)
}

// BundleName returns the archive file name for base
func BundleName(base string) string {
	return archive.BundleName(base)
}

func (c *Client) fail(onStatus StatusFunc, code MessageCode, err error) {
	onStatus.Emit(Status{
		Phase:   PhaseError,
		Code:    code,
		Message: err.Error(),
	})
}
