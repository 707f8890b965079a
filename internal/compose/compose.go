// Package compose stitches rendered pages into a single canvas and encodes
// the result.
package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

// maxCanvasPixels bounds a single composite (about 1 GiB of NRGBA).
const maxCanvasPixels = 1 << 28

// BorderGray is the stroke colour used around each placed page.
var BorderGray = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}

// Options controls the layout of one composite.
type Options struct {
	Direction   domain.Direction
	Gap         int // pixels between consecutive pages
	Border      bool
	BorderWidth int
	BorderColor color.Color // defaults to BorderGray
}

// OptionsFor derives layout options from a run configuration and its tier.
func OptionsFor(cfg domain.Config) Options {
	tier := cfg.Tier()
	opts := Options{
		Direction:   cfg.Direction,
		Border:      cfg.Border,
		BorderWidth: tier.BorderPixels,
		BorderColor: BorderGray,
	}
	if cfg.Gap {
		opts.Gap = tier.GapPixels
	}
	return opts
}

// Layout computes the canvas size and the placed bounds of each page.
//
// Pages are laid out along the stitching axis separated by gap pixels and
// centred on the cross axis. Centering offsets are rounded down.
func Layout(sizes []image.Point, dir domain.Direction, gap int) (image.Point, []image.Rectangle) {
	if len(sizes) == 0 {
		return image.Point{}, nil
	}
	if gap < 0 {
		gap = 0
	}

	var canvas image.Point
	for _, s := range sizes {
		if dir == domain.DirectionHorizontal {
			canvas.X += s.X
			canvas.Y = max(canvas.Y, s.Y)
		} else {
			canvas.X = max(canvas.X, s.X)
			canvas.Y += s.Y
		}
	}
	if dir == domain.DirectionHorizontal {
		canvas.X += gap * (len(sizes) - 1)
	} else {
		canvas.Y += gap * (len(sizes) - 1)
	}

	placed := make([]image.Rectangle, len(sizes))
	offset := 0
	for i, s := range sizes {
		var at image.Point
		if dir == domain.DirectionHorizontal {
			at = image.Pt(offset, (canvas.Y-s.Y)/2)
			offset += s.X + gap
		} else {
			at = image.Pt((canvas.X-s.X)/2, offset)
			offset += s.Y + gap
		}
		placed[i] = image.Rectangle{Min: at, Max: at.Add(s)}
	}
	return canvas, placed
}

// Composite draws surfaces onto one white canvas following opts.
func Composite(surfaces []image.Image, opts Options) (*image.NRGBA, error) {
	if len(surfaces) == 0 {
		return nil, domain.CompositeError("no surfaces to composite", nil)
	}
	if opts.Direction == "" {
		opts.Direction = domain.DirectionVertical
	}
	if !opts.Direction.Valid() {
		return nil, domain.CompositeError(fmt.Sprintf("invalid direction %q", opts.Direction), nil)
	}

	sizes := make([]image.Point, len(surfaces))
	for i, s := range surfaces {
		if s == nil {
			return nil, domain.CompositeError(fmt.Sprintf("surface %d is nil", i+1), nil)
		}
		sizes[i] = s.Bounds().Size()
	}

	size, placed := Layout(sizes, opts.Direction, opts.Gap)
	if size.X <= 0 || size.Y <= 0 {
		return nil, domain.CompositeError(fmt.Sprintf("empty canvas %dx%d", size.X, size.Y), nil)
	}
	if int64(size.X)*int64(size.Y) > maxCanvasPixels {
		return nil, domain.CompositeError(fmt.Sprintf("canvas %dx%d exceeds the drawing surface limit", size.X, size.Y), nil)
	}

	// JPEG has no alpha channel, so every composite starts from opaque white.
	canvas := imaging.New(size.X, size.Y, color.White)

	stroke := opts.BorderColor
	if stroke == nil {
		stroke = BorderGray
	}
	for i, src := range surfaces {
		draw.Draw(canvas, placed[i], src, src.Bounds().Min, draw.Over)
		if opts.Border && opts.BorderWidth > 0 {
			strokeRect(canvas, placed[i], opts.BorderWidth, stroke)
		}
	}
	return canvas, nil
}

// strokeRect draws a width-pixel outline centred on the edges of r.
func strokeRect(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	lo := width / 2
	hi := width - lo
	outer := image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Max.Y+hi)
	inner := image.Rect(r.Min.X+hi, r.Min.Y+hi, r.Max.X-lo, r.Max.Y-lo)

	src := image.NewUniform(c)
	if inner.Empty() {
		draw.Draw(dst, outer, src, image.Point{}, draw.Src)
		return
	}
	strips := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), // top
		image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), // bottom
		image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), // left
		image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), // right
	}
	for _, s := range strips {
		draw.Draw(dst, s, src, image.Point{}, draw.Src)
	}
}
