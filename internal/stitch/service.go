// Package stitch runs the render, composite and encode pipeline over page
// groups.
package stitch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/spherical/pdf-stitcher/internal/compose"
	"github.com/spherical/pdf-stitcher/internal/domain"
	"github.com/spherical/pdf-stitcher/internal/observability"
	"github.com/spherical/pdf-stitcher/internal/partition"
)

// Service orchestrates the stitching process
type Service struct {
	logger *observability.Logger
}

// NewService creates a new stitching service
func NewService(logger *observability.Logger) *Service {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Service{logger: logger.WithOperation("stitch")}
}

var _ domain.Pipeline = (*Service)(nil)

// Process renders every page group of doc into one encoded image.
//
// Groups and the pages inside them are handled strictly in order, and only
// one group's surfaces are alive at a time. The run is all-or-nothing: on any
// failure an error status is reported and no payloads are returned.
func (s *Service) Process(ctx context.Context, doc domain.Document, cfg domain.Config, onStatus domain.StatusFunc) ([]domain.Payload, error) {
	payloads, err := s.process(ctx, doc, cfg, onStatus)
	if err != nil {
		onStatus.Emit(domain.Status{
			Phase:   domain.PhaseError,
			Code:    domain.MsgErrorProcess,
			Message: err.Error(),
		})
		return nil, err
	}
	return payloads, nil
}

func (s *Service) process(ctx context.Context, doc domain.Document, cfg domain.Config, onStatus domain.StatusFunc) ([]domain.Payload, error) {
	if doc == nil {
		return nil, domain.ValidationError("no document loaded", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := s.logger.WithRun(uuid.NewString())
	startTime := time.Now()

	groups := partition.Partition(doc.PageCount(), cfg.GroupCount)
	if len(groups) == 0 {
		return nil, domain.ValidationError("document has no pages", nil)
	}

	tier := cfg.Tier()
	opts := compose.OptionsFor(cfg)
	total := len(groups)

	logger.Info().
		Int("pages", doc.PageCount()).
		Int("groups", total).
		Str("direction", cfg.Direction.String()).
		Str("quality", cfg.Quality.String()).
		Float64("scale", tier.Scale).
		Bool("gap", cfg.Gap).
		Bool("border", cfg.Border).
		Msg("Starting stitch run")

	payloads := make([]domain.Payload, 0, total)
	for i, group := range groups {
		onStatus.Emit(domain.Status{
			Phase:    domain.PhaseRendering,
			Progress: progress(i, total, 0),
			Code:     domain.MsgRendering,
			Group:    i + 1,
			Groups:   total,
		})

		surfaces, err := s.renderGroup(ctx, doc, group, tier.Scale)
		if err != nil {
			logger.Error().Err(err).Int("group", i+1).Msg("Failed to render group")
			return nil, err
		}

		onStatus.Emit(domain.Status{
			Phase:    domain.PhaseStitching,
			Progress: progress(i, total, 0.5),
			Code:     domain.MsgStitching,
			Group:    i + 1,
			Groups:   total,
		})

		canvas, err := compose.Composite(surfaces, opts)
		if err != nil {
			logger.Error().Err(err).Int("group", i+1).Msg("Failed to composite group")
			return nil, err
		}

		payload, err := compose.Encode(canvas, tier)
		if err != nil {
			logger.Error().Err(err).Int("group", i+1).Msg("Failed to encode group")
			return nil, err
		}

		logger.Debug().
			Int("group", i+1).
			Ints("pages", group).
			Int("width", canvas.Bounds().Dx()).
			Int("height", canvas.Bounds().Dy()).
			Int("bytes", len(payload.Data)).
			Msg("Group complete")

		payloads = append(payloads, payload)
	}

	onStatus.Emit(domain.Status{
		Phase:    domain.PhaseDone,
		Progress: 100,
		Code:     domain.MsgDone,
		Groups:   total,
	})

	logger.Info().
		Int("images", len(payloads)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Stitch run complete")

	return payloads, nil
}

// renderGroup rasterises the pages of one group in order.
func (s *Service) renderGroup(ctx context.Context, doc domain.Document, pages []int, scale float64) ([]image.Image, error) {
	surfaces := make([]image.Image, 0, len(pages))
	for _, n := range pages {
		select {
		case <-ctx.Done():
			return nil, domain.CanceledError("stitching canceled", ctx.Err())
		default:
		}

		page, err := doc.Page(n)
		if err != nil {
			return nil, asRenderError(n, err)
		}
		img, err := page.Render(ctx, scale)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, domain.CanceledError("stitching canceled", err)
			}
			return nil, asRenderError(n, err)
		}
		surfaces = append(surfaces, img)
	}
	return surfaces, nil
}

func asRenderError(page int, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domain.RenderError(fmt.Sprintf("failed to render page %d", page), err)
}

// progress maps a step inside group i of n onto 0..100. Rendering owns the
// first half of a group's share, stitching the second.
func progress(i, n int, step float64) float64 {
	return (float64(i) + step) / float64(n) * 100
}
