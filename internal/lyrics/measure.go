package lyrics

import "github.com/kvmet/tanukioke/internal/lrx"

// Measurer reports the rendered height of a line of text in the units the
// viewport is measured in. It must return the same value for the same text
// within one frame.
type Measurer interface {
	Height(text string) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string) float64

// Height calls f(text).
func (f MeasureFunc) Height(text string) float64 {
	return f(text)
}

// Heights measures every line.
func Heights(m Measurer, lines []lrx.LyricLine) []float64 {
	heights := make([]float64, len(lines))
	for i, line := range lines {
		heights[i] = m.Height(line.Text)
	}
	return heights
}
