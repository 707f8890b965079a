package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)

func solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

func at(img *image.NRGBA, x, y int) color.NRGBA {
	return img.NRGBAAt(x, y)
}

func TestLayoutVertical(t *testing.T) {
	size, placed := Layout([]image.Point{{100, 50}, {60, 30}}, domain.DirectionVertical, 40)

	assert.Equal(t, image.Pt(100, 120), size)
	want := []image.Rectangle{
		image.Rect(0, 0, 100, 50),
		image.Rect(20, 90, 80, 120),
	}
	if diff := cmp.Diff(want, placed); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutHorizontal(t *testing.T) {
	size, placed := Layout([]image.Point{{30, 80}, {50, 41}, {10, 80}}, domain.DirectionHorizontal, 20)

	assert.Equal(t, image.Pt(130, 80), size)
	want := []image.Rectangle{
		image.Rect(0, 0, 30, 80),
		image.Rect(50, 19, 100, 60), // (80-41)/2 rounds down
		image.Rect(120, 0, 130, 80),
	}
	if diff := cmp.Diff(want, placed); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutEmpty(t *testing.T) {
	size, placed := Layout(nil, domain.DirectionVertical, 10)
	assert.Equal(t, image.Point{}, size)
	assert.Nil(t, placed)
}

func TestCompositeSingleSurfaceKeepsDimensions(t *testing.T) {
	src := solid(70, 90, red)
	for _, dir := range []domain.Direction{domain.DirectionVertical, domain.DirectionHorizontal} {
		for _, gap := range []int{0, 40} {
			for _, border := range []bool{false, true} {
				out, err := Composite([]image.Image{src}, Options{
					Direction:   dir,
					Gap:         gap,
					Border:      border,
					BorderWidth: 4,
				})
				require.NoError(t, err)
				assert.Equal(t, image.Pt(70, 90), out.Bounds().Size(), "dir=%s gap=%d border=%v", dir, gap, border)
			}
		}
	}
}

func TestCompositeVerticalCentersNarrowerPage(t *testing.T) {
	out, err := Composite([]image.Image{solid(100, 50, red), solid(60, 30, blue)}, Options{
		Direction: domain.DirectionVertical,
		Gap:       40,
	})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 120), out.Bounds().Size())

	assert.Equal(t, red, at(out, 50, 25))
	// gap band is white background
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(out, 50, 70))
	// narrower page starts at x=(100-60)/2
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(out, 19, 100))
	assert.Equal(t, blue, at(out, 20, 100))
	assert.Equal(t, blue, at(out, 79, 100))
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(out, 80, 100))
}

func TestCompositeWithoutGapSumsHeights(t *testing.T) {
	out, err := Composite([]image.Image{solid(100, 50, red), solid(60, 30, blue)}, Options{
		Direction: domain.DirectionVertical,
	})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 80), out.Bounds().Size())
	assert.Equal(t, blue, at(out, 50, 50))
}

func TestCompositeHorizontalCentersShorterPage(t *testing.T) {
	out, err := Composite([]image.Image{solid(40, 100, red), solid(40, 20, blue)}, Options{
		Direction: domain.DirectionHorizontal,
		Gap:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(90, 100), out.Bounds().Size())
	assert.Equal(t, blue, at(out, 60, 40))
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(out, 60, 39))
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(out, 45, 50))
}

func TestCompositeFillsTransparentPixelsWhite(t *testing.T) {
	out, err := Composite([]image.Image{solid(10, 10, color.NRGBA{})}, Options{})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(out, 5, 5))
}

func TestCompositeBorderIsDrawnInCanvasCoordinates(t *testing.T) {
	out, err := Composite([]image.Image{solid(100, 50, red), solid(60, 30, blue)}, Options{
		Direction:   domain.DirectionVertical,
		Gap:         40,
		Border:      true,
		BorderWidth: 4,
	})
	require.NoError(t, err)

	// Stroke is centred on the placed edge: 2px outside, 2px inside.
	assert.Equal(t, BorderGray, at(out, 18, 100))
	assert.Equal(t, BorderGray, at(out, 21, 100))
	assert.Equal(t, blue, at(out, 22, 100))
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(out, 17, 100))

	// First page: outer half is clipped by the canvas, inner half remains.
	assert.Equal(t, BorderGray, at(out, 0, 25))
	assert.Equal(t, BorderGray, at(out, 1, 25))
	assert.Equal(t, red, at(out, 2, 25))
	assert.Equal(t, BorderGray, at(out, 50, 51))
}

func TestCompositeHonoursSourceBoundsOrigin(t *testing.T) {
	base := solid(50, 50, red)
	sub := base.SubImage(image.Rect(10, 10, 30, 40))

	out, err := Composite([]image.Image{sub}, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(20, 30), out.Bounds().Size())
	assert.Equal(t, red, at(out, 0, 0))
}

func TestCompositeErrors(t *testing.T) {
	_, err := Composite(nil, Options{})
	assert.True(t, domain.IsType(err, domain.ErrorTypeComposite))

	_, err = Composite([]image.Image{solid(1, 1, red), nil}, Options{})
	assert.True(t, domain.IsType(err, domain.ErrorTypeComposite))

	_, err = Composite([]image.Image{image.NewNRGBA(image.Rect(0, 0, 0, 0))}, Options{})
	assert.True(t, domain.IsType(err, domain.ErrorTypeComposite))

	_, err = Composite([]image.Image{solid(1, 1, red)}, Options{Direction: "diagonal"})
	assert.True(t, domain.IsType(err, domain.ErrorTypeComposite))
}

func TestOptionsFor(t *testing.T) {
	high := OptionsFor(domain.Config{GroupCount: 1, Direction: domain.DirectionHorizontal, Quality: domain.QualityHigh, Gap: true, Border: true})
	assert.Equal(t, domain.DirectionHorizontal, high.Direction)
	assert.Equal(t, 40, high.Gap)
	assert.Equal(t, 4, high.BorderWidth)
	assert.True(t, high.Border)

	normal := OptionsFor(domain.Config{GroupCount: 1, Direction: domain.DirectionVertical, Quality: domain.QualityNormal})
	assert.Equal(t, 0, normal.Gap)
	assert.Equal(t, 2, normal.BorderWidth)
	assert.False(t, normal.Border)
}

func TestEncodeFormats(t *testing.T) {
	img := solid(12, 7, red)

	pngPayload, err := Encode(img, domain.TierFor(domain.QualityHigh))
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPNG, pngPayload.Format)
	cfg, err := png.DecodeConfig(bytes.NewReader(pngPayload.Data))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 7, cfg.Height)

	jpgPayload, err := Encode(img, domain.TierFor(domain.QualityNormal))
	require.NoError(t, err)
	assert.Equal(t, domain.FormatJPEG, jpgPayload.Format)
	_, err = jpeg.DecodeConfig(bytes.NewReader(jpgPayload.Data))
	require.NoError(t, err)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(nil, domain.TierFor(domain.QualityHigh))
	assert.True(t, domain.IsType(err, domain.ErrorTypeEncode))

	_, err = Encode(solid(1, 1, red), domain.Tier{Format: "webp"})
	assert.True(t, domain.IsType(err, domain.ErrorTypeEncode))
}
