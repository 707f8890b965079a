package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

// Encode serialises img in the tier's output format. PNG uses maximal
// compression, JPEG the tier's fixed quality.
func Encode(img image.Image, tier domain.Tier) (domain.Payload, error) {
	if img == nil {
		return domain.Payload{}, domain.EncodeError("nothing to encode", nil)
	}

	var buf bytes.Buffer
	var err error
	switch tier.Format {
	case domain.FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	case domain.FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(tier.JPEGQuality))
	default:
		return domain.Payload{}, domain.EncodeError(fmt.Sprintf("unsupported output format %q", tier.Format), nil)
	}
	if err != nil {
		return domain.Payload{}, domain.EncodeError(fmt.Sprintf("failed to encode %s", tier.Format), err)
	}

	return domain.Payload{Data: buf.Bytes(), Format: tier.Format}, nil
}
