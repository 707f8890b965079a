package ui

import (
	"io"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

// StatusView turns pipeline status updates into terminal output: a spinner
// for loading and packaging, a progress bar for rendering and stitching.
type StatusView struct {
	w       io.Writer
	loc     *Localizer
	spinner *Spinner
	bar     *ProgressBar
	failed  bool
}

// NewStatusView creates a view writing to w.
func NewStatusView(w io.Writer, loc *Localizer) *StatusView {
	return &StatusView{w: w, loc: loc}
}

// Handle is a domain.StatusFunc.
func (v *StatusView) Handle(s domain.Status) {
	text := v.loc.Status(s)

	switch s.Phase {
	case domain.PhaseLoading, domain.PhasePackaging:
		v.finishBar()
		v.spin(text)
	case domain.PhaseRendering, domain.PhaseStitching:
		v.stopSpinner()
		if v.bar == nil {
			v.bar = NewProgressBar(v.w, text)
		}
		v.bar.Describe(text)
		v.bar.Set(s.Progress)
	case domain.PhaseDone:
		v.stopSpinner()
		if v.bar != nil {
			v.bar.Set(s.Progress)
			v.finishBar()
		}
	case domain.PhaseError:
		v.Close()
		v.failed = true
		Error(v.w, "%s", text)
	}
}

// Failed reports whether an error status has been shown.
func (v *StatusView) Failed() bool { return v.failed }

// Close stops any running spinner or bar.
func (v *StatusView) Close() {
	v.stopSpinner()
	v.finishBar()
}

func (v *StatusView) spin(text string) {
	if v.spinner == nil {
		v.spinner = NewSpinner(v.w, text)
		v.spinner.Start()
		return
	}
	v.spinner.UpdateMessage(text)
}

func (v *StatusView) stopSpinner() {
	if v.spinner != nil {
		v.spinner.Stop()
		v.spinner = nil
	}
}

func (v *StatusView) finishBar() {
	if v.bar != nil {
		v.bar.Finish()
		v.bar = nil
	}
}
