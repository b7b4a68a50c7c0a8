package lyrics

import (
	"errors"
	"sort"

	"github.com/kvmet/tanukioke/internal/lrx"
)

// ErrHeightMismatch is returned when the number of measured heights differs
// from the number of lines.
var ErrHeightMismatch = errors.New("line heights do not match lines")

// Scroller computes the scroll offset of a lyric viewport.
type Scroller struct {
	// Spacing is added between consecutive lines.
	Spacing float64

	// Easing shapes the move between lines. Nil means Linear.
	Easing EasingFunc
}

// Centers returns the vertical center of each line in content coordinates.
// Content starts half a viewport down so that the first line can sit in the
// middle of the viewport.
func Centers(viewport float64, heights []float64, spacing float64) []float64 {
	centers := make([]float64, len(heights))
	y := viewport / 2
	for i, h := range heights {
		centers[i] = y + h/2
		y += h + spacing
	}
	return centers
}

// Offset returns the content offset to scroll to at position seconds. lines
// must be sorted by timestamp and heights must hold one entry per line.
//
// Before the first line the viewport stays at the top. After the last line
// it stays centered on that line.
func (s Scroller) Offset(position, viewport float64, lines []lrx.LyricLine, heights []float64) (float64, error) {
	if len(lines) != len(heights) {
		return 0, ErrHeightMismatch
	}

	return s.Target(position, viewport, lines, heights) - viewport/2, nil
}

// Target returns the content y coordinate that should be centered. Offset
// is Target minus half the viewport.
func (s Scroller) Target(position, viewport float64, lines []lrx.LyricLine, heights []float64) float64 {
	cur := CurrentLine(lines, position)
	if cur < 0 || len(heights) != len(lines) {
		return 0
	}

	centers := Centers(viewport, heights, s.Spacing)
	next := cur + 1
	if next >= len(lines) {
		return centers[cur]
	}

	t0, t1 := lines[cur].Timestamp, lines[next].Timestamp
	if t1 <= t0 {
		return centers[cur]
	}

	p := clamp((position-t0)/(t1-t0), 0, 1)
	ease := s.Easing
	if ease == nil {
		ease = Linear
	}
	return lerp(centers[cur], centers[next], ease(p))
}

// CurrentLine returns the index of the last line whose timestamp is at or
// before position, or -1 if position precedes every line.
func CurrentLine(lines []lrx.LyricLine, position float64) int {
	return sort.Search(len(lines), func(i int) bool {
		return lines[i].Timestamp > position
	}) - 1
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
