package lrx

import (
	"math"
	"sort"
)

// Track is one audio stem of a song.
type Track struct {
	// ID is the key of the track in Document.Tracks.
	ID string

	// Name is the display name. May be empty.
	Name string

	// Source is the path of the audio file. Relative paths are resolved
	// against the directory containing the LRX file.
	Source string

	// Volume is the initial playback volume in [0, 1].
	Volume float64
}

// NewTrack returns a track with default values.
func NewTrack(id string) *Track {
	return &Track{ID: id, Volume: 1.0}
}

// Part is a vocal role used to color lyric lines.
type Part struct {
	ID   string
	Name string

	// Color is the foreground color of lines sung by this part.
	Color Color

	// BackgroundColor is optional; nil falls back to the document color.
	BackgroundColor *Color
}

// NewPart returns a part with a white foreground and no background.
func NewPart(id string) *Part {
	return &Part{ID: id, Color: White}
}

// LyricLine is a single timed line of lyrics.
type LyricLine struct {
	// Timestamp is the start time in seconds.
	Timestamp float64

	// Text may be empty (a spacer line).
	Text string

	// PartID references Document.Parts. Empty means no part. A dangling
	// reference is treated the same as no part.
	PartID string
}

// Document is a parsed LRX file.
//
// Tracks, parts and metadata are unordered. Lines are in playback order once
// Finalize has run; Parse always finalizes.
type Document struct {
	Metadata map[string]string
	Tracks   map[string]*Track
	Parts    map[string]*Part
	Lines    []LyricLine

	// Color and BackgroundColor are the document-wide fallbacks for lines
	// whose part does not define one. nil means unset.
	Color           *Color
	BackgroundColor *Color
}

// Metadata keys that also set document colors.
const (
	KeyColor           = "color"
	KeyBackgroundColor = "background_color"
)

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Metadata: make(map[string]string),
		Tracks:   make(map[string]*Track),
		Parts:    make(map[string]*Part),
	}
}

// Track returns the track with the given id.
func (d *Document) Track(id string) (*Track, bool) {
	t, ok := d.Tracks[id]
	return t, ok
}

// Part returns the part with the given id. An empty id never resolves.
func (d *Document) Part(id string) (*Part, bool) {
	if id == "" {
		return nil, false
	}
	p, ok := d.Parts[id]
	return p, ok
}

// SetColor sets the document foreground color and keeps the color metadata
// tag in sync.
func (d *Document) SetColor(c Color) {
	d.Color = &c
	d.Metadata[KeyColor] = c.Hex()
}

// SetBackgroundColor sets the document background color and keeps the
// background_color metadata tag in sync.
func (d *Document) SetBackgroundColor(c Color) {
	d.BackgroundColor = &c
	d.Metadata[KeyBackgroundColor] = c.Hex()
}

// Finalize sorts lines by timestamp. The sort is stable, so lines sharing a
// timestamp keep their source order.
func (d *Document) Finalize() {
	sort.SliceStable(d.Lines, func(i, j int) bool {
		return d.Lines[i].Timestamp < d.Lines[j].Timestamp
	})
}

// SortedTracks returns the tracks ordered by id.
func (d *Document) SortedTracks() []*Track {
	tracks := make([]*Track, 0, len(d.Tracks))
	for _, t := range d.Tracks {
		tracks = append(tracks, t)
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].ID < tracks[j].ID })
	return tracks
}

// SortedParts returns the parts ordered by id.
func (d *Document) SortedParts() []*Part {
	parts := make([]*Part, 0, len(d.Parts))
	for _, p := range d.Parts {
		parts = append(parts, p)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].ID < parts[j].ID })
	return parts
}

// LineStyle holds the resolved colors of a lyric line.
type LineStyle struct {
	Foreground Color
	Background Color
}

// LineColors resolves the colors of a line: the part's colors first, then the
// document colors, then defaults. A line whose part does not exist gets the
// document or default colors.
func (d *Document) LineColors(line LyricLine, defaults LineStyle) LineStyle {
	style := defaults
	if d.Color != nil {
		style.Foreground = *d.Color
	}
	if d.BackgroundColor != nil {
		style.Background = *d.BackgroundColor
	}

	if part, ok := d.Part(line.PartID); ok {
		style.Foreground = part.Color
		if part.BackgroundColor != nil {
			style.Background = *part.BackgroundColor
		}
	}

	return style
}

// Equal reports whether two documents are semantically equal: same metadata
// (the color tags are compared through the parsed colors instead of their raw
// text), same tracks, same parts, and the same lines in the same order, with
// timestamps compared at centisecond precision.
//
// Parse stores the color and background_color tags in canonical uppercase
// #RRGGBB form, so "[color:#ffffff]" reads back as "#FFFFFF".
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}

	if !equalMetadata(d.Metadata, o.Metadata) {
		return false
	}
	if !equalColorPtr(d.Color, o.Color) || !equalColorPtr(d.BackgroundColor, o.BackgroundColor) {
		return false
	}

	if len(d.Tracks) != len(o.Tracks) {
		return false
	}
	for id, t := range d.Tracks {
		ot, ok := o.Tracks[id]
		if !ok || *t != *ot {
			return false
		}
	}

	if len(d.Parts) != len(o.Parts) {
		return false
	}
	for id, p := range d.Parts {
		op, ok := o.Parts[id]
		if !ok || p.ID != op.ID || p.Name != op.Name || p.Color != op.Color ||
			!equalColorPtr(p.BackgroundColor, op.BackgroundColor) {
			return false
		}
	}

	if len(d.Lines) != len(o.Lines) {
		return false
	}
	for i, l := range d.Lines {
		ol := o.Lines[i]
		if l.Text != ol.Text || l.PartID != ol.PartID || centiseconds(l.Timestamp) != centiseconds(ol.Timestamp) {
			return false
		}
	}

	return true
}

func equalMetadata(a, b map[string]string) bool {
	count := func(m map[string]string) int {
		n := len(m)
		for _, k := range []string{KeyColor, KeyBackgroundColor} {
			if _, ok := m[k]; ok {
				n--
			}
		}
		return n
	}

	if count(a) != count(b) {
		return false
	}
	for k, v := range a {
		if k == KeyColor || k == KeyBackgroundColor {
			continue
		}
		if ov, ok := b[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func equalColorPtr(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func centiseconds(seconds float64) int64 {
	return int64(math.Round(seconds * 100))
}
