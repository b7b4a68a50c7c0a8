// Package lyrics positions synchronized lyrics in a scrolling viewport.
//
// Each frame the caller measures the rendered height of every line, then asks
// a Scroller for the offset that keeps the active line centered:
//
//	s := lyrics.Scroller{Spacing: 1, Easing: lyrics.Snap(8)}
//	offset, err := s.Offset(snap.Position.Seconds(), viewport, doc.Lines, heights)
//
// Between two timed lines the offset moves from one line's center to the
// next, shaped by the Easing function. Heights are never cached, so a
// resize or a font change takes effect on the next frame.
package lyrics
