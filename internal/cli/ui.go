//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

const (
	// SpinnerRefreshRate defines the refresh frequency of the sampling spinner.
	SpinnerRefreshRate = 100 * time.Millisecond
	// GaugeWidth defines the width in characters of the saturation gauge.
	GaugeWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// gauge renders a textual bar for a percentage in [0,100].
func gauge(pct float64, length int) string {
	pct = min(max(pct, 0), 100)
	count := int(pct / 100 * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
