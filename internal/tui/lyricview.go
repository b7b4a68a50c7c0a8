package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kvmet/tanukioke/internal/config"
	"github.com/kvmet/tanukioke/internal/lrx"
	"github.com/kvmet/tanukioke/internal/lyrics"
	log "github.com/sirupsen/logrus"
)

// lyricView renders the scrolling lyric viewport of a document.
type lyricView struct {
	doc      *lrx.Document
	scroller lyrics.Scroller
	defaults lrx.LineStyle
	spacing  int
	bold     bool

	pastOpacity     float64
	currentOpacity  float64
	upcomingOpacity float64
}

func newLyricView(doc *lrx.Document, s *config.Settings) lyricView {
	return lyricView{
		doc: doc,
		scroller: lyrics.Scroller{
			Spacing: float64(s.LyricsLineSpacing),
			Easing:  s.Easing(),
		},
		defaults:        s.DefaultStyle(),
		spacing:         s.LyricsLineSpacing,
		bold:            s.BoldCurrentLine,
		pastOpacity:     s.PastLineOpacity,
		currentOpacity:  s.CurrentLineOpacity,
		upcomingOpacity: s.UpcomingLineOpacity,
	}
}

// Render draws the lyrics at position seconds into a width×height block.
// Line heights are measured on every call since wrapping depends on width.
func (v lyricView) Render(position float64, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := v.doc.Lines
	current := lyrics.CurrentLine(lines, position)

	wrap := lipgloss.NewStyle().Width(width)
	measure := lyrics.MeasureFunc(func(text string) float64 {
		return float64(lipgloss.Height(wrap.Render(text)))
	})
	heights := lyrics.Heights(measure, lines)

	offset, err := v.scroller.Offset(position, float64(height), lines, heights)
	if err != nil {
		log.WithError(err).WithField("component", "tui").Error("Failed to compute scroll offset")
	}

	background := v.doc.LineColors(lrx.LyricLine{}, v.defaults).Background
	blank := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color(background.Hex())).
		Render("")

	// Content starts half a viewport down, matching lyrics.Centers.
	pad := height / 2
	rows := make([]string, 0, pad+len(lines)*(1+v.spacing))
	for i := 0; i < pad; i++ {
		rows = append(rows, blank)
	}
	for i, line := range lines {
		rendered := v.lineStyle(i, current, line).Width(width).Render(line.Text)
		rows = append(rows, strings.Split(rendered, "\n")...)
		for j := 0; j < v.spacing; j++ {
			rows = append(rows, blank)
		}
	}

	top := int(math.Round(offset - float64(height)/2 + float64(pad)))
	if top < 0 {
		top = 0
	}

	window := make([]string, height)
	for i := range window {
		if top+i < len(rows) {
			window[i] = rows[top+i]
		} else {
			window[i] = blank
		}
	}
	return strings.Join(window, "\n")
}

// lineStyle colors line i by its part and dims it by whether it has been
// sung, is being sung, or is coming up.
func (v lyricView) lineStyle(i, current int, line lrx.LyricLine) lipgloss.Style {
	colors := v.doc.LineColors(line, v.defaults)

	alpha := v.upcomingOpacity
	switch {
	case i < current:
		alpha = v.pastOpacity
	case i == current:
		alpha = v.currentOpacity
	}
	fg := colors.Foreground.Blend(colors.Background, alpha)

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Bold(v.bold && i == current).
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(colors.Background.Hex()))
}
