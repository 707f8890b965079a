package domain

// Tier bundles the resolution, encoding and spacing policy of a quality level.
type Tier struct {
	Quality      Quality
	Scale        float64 // 1.0 renders at 72 DPI
	Format       Format
	JPEGQuality  int // only used for FormatJPEG
	GapPixels    int
	BorderPixels int
}

var (
	tierHigh = Tier{
		Quality:      QualityHigh,
		Scale:        2,
		Format:       FormatPNG,
		GapPixels:    40,
		BorderPixels: 4,
	}
	tierNormal = Tier{
		Quality:      QualityNormal,
		Scale:        1.5,
		Format:       FormatJPEG,
		JPEGQuality:  80,
		GapPixels:    20,
		BorderPixels: 2,
	}
)

// TierFor returns the policy for q. Unknown values fall back to normal.
func TierFor(q Quality) Tier {
	if q == QualityHigh {
		return tierHigh
	}
	return tierNormal
}

// DPI converts the tier scale to a rasterisation resolution
func (t Tier) DPI() float64 {
	return t.Scale * 72
}
