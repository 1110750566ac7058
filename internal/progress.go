package internal

import (
	"github.com/schollz/progressbar/v3"
)

// StatusLine shows transient progress for interactive CLI runs. In quiet mode
// it degrades to a silent bar so call sites stay unconditional.
type StatusLine struct {
	bar *progressbar.ProgressBar
}

// NewStatusLine creates a spinner with an initial description.
func NewStatusLine(quiet bool, description string) *StatusLine {
	if quiet {
		return &StatusLine{bar: progressbar.DefaultSilent(-1, description)}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &StatusLine{bar: bar}
}

// Describe updates the status text.
func (s *StatusLine) Describe(description string) {
	s.bar.Describe(description)
}

// Finish clears the status line.
func (s *StatusLine) Finish() {
	_ = s.bar.Finish()
}
