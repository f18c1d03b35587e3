package feedback

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
)

// Reporter mirrors the host reported batch progress.
type Reporter struct {
	bar     progress.Model
	percent float64
}

// NewReporter returns a reporter at 0%.
func NewReporter(width int) *Reporter {
	bar := progress.New(
		progress.WithSolidFill("#7aa2f7"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return &Reporter{bar: bar}
}

// Set overwrites the current value, clamped to [0,100].
func (r *Reporter) Set(percent float64) {
	r.percent = clampPercent(percent)
}

// Percent returns the clamped value.
func (r *Reporter) Percent() float64 {
	return r.percent
}

// Label renders the value as a rounded integer percentage.
func (r *Reporter) Label() string {
	return fmt.Sprintf("%d%%", int(math.Round(r.percent)))
}

// SetWidth resizes the bar.
func (r *Reporter) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	r.bar.Width = width
}

// SetColors restyles the filled and empty parts of the bar.
func (r *Reporter) SetColors(full, empty string) {
	r.bar.FullColor = full
	r.bar.EmptyColor = empty
}

// View renders the bar followed by the label.
func (r *Reporter) View() string {
	return r.bar.ViewAs(r.percent/100) + " " + r.Label()
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
