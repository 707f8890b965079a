package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero groups", Config{GroupCount: 0, Direction: DirectionVertical, Quality: QualityHigh}, true},
		{"bad direction", Config{GroupCount: 1, Direction: "diagonal", Quality: QualityHigh}, true},
		{"bad quality", Config{GroupCount: 1, Direction: DirectionHorizontal, Quality: "ultra"}, true},
		{"group count above page count", Config{GroupCount: 500, Direction: DirectionHorizontal, Quality: QualityNormal}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsType(err, ErrorTypeValidation) {
				t.Errorf("Validate() error type = %v, want validation", err)
			}
		})
	}
}

func TestConfigClamp(t *testing.T) {
	cfg := DefaultConfig()

	cfg.GroupCount = 12
	if got := cfg.Clamp(5).GroupCount; got != 5 {
		t.Errorf("Clamp(5) with 12 groups = %d, want 5", got)
	}

	cfg.GroupCount = 0
	if got := cfg.Clamp(5).GroupCount; got != 1 {
		t.Errorf("Clamp(5) with 0 groups = %d, want 1", got)
	}

	cfg.GroupCount = 3
	if got := cfg.Clamp(5).GroupCount; got != 3 {
		t.Errorf("Clamp(5) with 3 groups = %d, want 3", got)
	}
}

func TestDirectionUnmarshalText(t *testing.T) {
	var d Direction
	if err := d.UnmarshalText([]byte(" Horizontal ")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != DirectionHorizontal {
		t.Errorf("got %q, want horizontal", d)
	}
	if err := d.Set("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
	if d != DirectionHorizontal {
		t.Error("failed Set must not modify the value")
	}
}

func TestQualityUnmarshalText(t *testing.T) {
	var q Quality
	if err := q.Set("NORMAL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != QualityNormal {
		t.Errorf("got %q, want normal", q)
	}
	if err := q.UnmarshalText([]byte("lossless")); err == nil {
		t.Error("expected error for unknown quality")
	}
}

func TestTierPolicy(t *testing.T) {
	high := TierFor(QualityHigh)
	if high.Format != FormatPNG || high.Scale != 2 || high.GapPixels != 40 || high.BorderPixels != 4 {
		t.Errorf("unexpected high tier: %+v", high)
	}
	if high.DPI() != 144 {
		t.Errorf("high DPI = %v, want 144", high.DPI())
	}

	normal := TierFor(QualityNormal)
	if normal.Format != FormatJPEG || normal.Scale != 1.5 || normal.JPEGQuality != 80 || normal.GapPixels != 20 || normal.BorderPixels != 2 {
		t.Errorf("unexpected normal tier: %+v", normal)
	}
}

func TestPayloadFormatTags(t *testing.T) {
	png := Payload{Data: []byte{1, 2, 3}, Format: FormatPNG}
	if png.MIMEType() != "image/png" || png.Ext() != "png" {
		t.Errorf("png tags = %s %s", png.MIMEType(), png.Ext())
	}
	if got := png.DataURI(); got != "data:image/png;base64,AQID" {
		t.Errorf("DataURI() = %s", got)
	}

	jpg := Payload{Format: FormatJPEG}
	if jpg.MIMEType() != "image/jpeg" || jpg.Ext() != "jpg" {
		t.Errorf("jpeg tags = %s %s", jpg.MIMEType(), jpg.Ext())
	}
}

func TestStatusFuncEmitNil(t *testing.T) {
	var f StatusFunc
	f.Emit(Status{Phase: PhaseDone}) // must not panic

	var got []Phase
	f = func(s Status) { got = append(got, s.Phase) }
	f.Emit(Status{Phase: PhaseRendering})
	if len(got) != 1 || got[0] != PhaseRendering {
		t.Errorf("got %v", got)
	}
}

func TestDomainErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("outer: %w", PackagingError("zip failed", cause))

	if !IsType(err, ErrorTypePackaging) {
		t.Error("expected packaging error type through wrapping")
	}
	if IsType(err, ErrorTypeRender) {
		t.Error("unexpected render type")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if IsType(cause, ErrorTypePackaging) {
		t.Error("plain errors have no domain type")
	}
	want := "[packaging] zip failed: disk full"
	if got := PackagingError("zip failed", cause).Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
