package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Direction is the axis along which pages of a group are stitched
type Direction string

const (
	DirectionVertical   Direction = "vertical"
	DirectionHorizontal Direction = "horizontal"
)

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == DirectionVertical || d == DirectionHorizontal
}

// UnmarshalText implements encoding.TextUnmarshaler for config files and flags
func (d *Direction) UnmarshalText(text []byte) error {
	v := Direction(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return ValidationError(fmt.Sprintf("unknown direction %q (want vertical or horizontal)", string(text)), nil)
	}
	*d = v
	return nil
}

// Set implements pflag.Value
func (d *Direction) Set(s string) error { return d.UnmarshalText([]byte(s)) }

func (d Direction) String() string { return string(d) }

// Type implements pflag.Value
func (d Direction) Type() string { return "direction" }

// Quality names a quality tier
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityNormal Quality = "normal"
)

// Valid reports whether q is a known quality tier
func (q Quality) Valid() bool {
	return q == QualityHigh || q == QualityNormal
}

// UnmarshalText implements encoding.TextUnmarshaler for config files and flags
func (q *Quality) UnmarshalText(text []byte) error {
	v := Quality(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return ValidationError(fmt.Sprintf("unknown quality %q (want high or normal)", string(text)), nil)
	}
	*q = v
	return nil
}

// Set implements pflag.Value
func (q *Quality) Set(s string) error { return q.UnmarshalText([]byte(s)) }

func (q Quality) String() string { return string(q) }

// Type implements pflag.Value
func (q Quality) Type() string { return "quality" }

// Config holds the stitching options for one pipeline run
type Config struct {
	GroupCount int       `yaml:"group_count" toml:"group_count"`
	Direction  Direction `yaml:"direction" toml:"direction"`
	Quality    Quality   `yaml:"quality" toml:"quality"`
	Gap        bool      `yaml:"gap" toml:"gap"`
	Border     bool      `yaml:"border" toml:"border"`
}

// DefaultConfig returns one vertical group at high quality, no gap or border
func DefaultConfig() Config {
	return Config{
		GroupCount: 1,
		Direction:  DirectionVertical,
		Quality:    QualityHigh,
	}
}

// Validate checks the configuration for errors
func (c Config) Validate() error {
	if c.GroupCount < 1 {
		return ValidationError(fmt.Sprintf("group count must be at least 1, got %d", c.GroupCount), nil)
	}
	if !c.Direction.Valid() {
		return ValidationError(fmt.Sprintf("invalid direction: %q", c.Direction), nil)
	}
	if !c.Quality.Valid() {
		return ValidationError(fmt.Sprintf("invalid quality: %q", c.Quality), nil)
	}
	return nil
}

// Clamp returns a copy with GroupCount limited to [1, totalPages].
func (c Config) Clamp(totalPages int) Config {
	if c.GroupCount > totalPages {
		c.GroupCount = totalPages
	}
	if c.GroupCount < 1 {
		c.GroupCount = 1
	}
	return c
}

// Tier returns the quality tier policy for this configuration
func (c Config) Tier() Tier {
	return TierFor(c.Quality)
}

// Format is the encoding of an output image
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// MIMEType returns the media type for the format
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// Ext returns the file extension (without the dot) for the format
func (f Format) Ext() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpg"
	default:
		return "bin"
	}
}

// Payload is one encoded composite image
type Payload struct {
	Data   []byte
	Format Format
}

// MIMEType returns the media type of the payload
func (p Payload) MIMEType() string { return p.Format.MIMEType() }

// Ext returns the file extension of the payload
func (p Payload) Ext() string { return p.Format.Ext() }

// DataURI renders the payload as data:<mime>;base64,<data>
func (p Payload) DataURI() string {
	return "data:" + p.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// Phase represents the pipeline step a status update belongs to
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseRendering Phase = "rendering"
	PhaseStitching Phase = "stitching"
	PhasePackaging Phase = "packaging"
	PhaseDone      Phase = "done"
	PhaseError     Phase = "error"
)

// MessageCode keys a status message; presentation layers resolve the text.
type MessageCode string

const (
	MsgLoading      MessageCode = "status.loading"
	MsgRendering    MessageCode = "status.rendering"
	MsgStitching    MessageCode = "status.stitching"
	MsgPackaging    MessageCode = "status.packaging"
	MsgDone         MessageCode = "status.done"
	MsgErrorLoad    MessageCode = "error.load"
	MsgErrorProcess MessageCode = "error.process"
	MsgErrorPackage MessageCode = "error.package"
)

// Status is a progress update pushed to the caller
type Status struct {
	Phase    Phase       `json:"phase"`
	Progress float64     `json:"progress"`
	Code     MessageCode `json:"code,omitempty"`
	Group    int         `json:"group,omitempty"`  // 1-based group being worked on
	Groups   int         `json:"groups,omitempty"` // total group count
	Message  string      `json:"message,omitempty"`
}

// StatusFunc receives status updates synchronously.
type StatusFunc func(Status)

// Emit calls f when it is non-nil
func (f StatusFunc) Emit(s Status) {
	if f != nil {
		f(s)
	}
}
