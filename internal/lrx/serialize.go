package lrx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serialize renders doc as LRX source text.
//
// Sections are written in order: metadata, tracks, parts, lyric lines, each
// followed by a blank line when non-empty. Keys within a section are sorted so
// output is stable across runs. The document colors are written from
// Document.Color and Document.BackgroundColor rather than from the raw
// metadata text.
func Serialize(doc *Document) string {
	var sb strings.Builder

	keys := make([]string, 0, len(doc.Metadata))
	for k := range doc.Metadata {
		if k == KeyColor || k == KeyBackgroundColor {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("[%s:%s]\n", k, doc.Metadata[k]))
	}
	if doc.Color != nil {
		sb.WriteString(fmt.Sprintf("[%s:%s]\n", KeyColor, doc.Color.Hex()))
	}
	if doc.BackgroundColor != nil {
		sb.WriteString(fmt.Sprintf("[%s:%s]\n", KeyBackgroundColor, doc.BackgroundColor.Hex()))
	}
	if len(keys) > 0 || doc.Color != nil || doc.BackgroundColor != nil {
		sb.WriteString("\n")
	}

	tracks := doc.SortedTracks()
	for _, t := range tracks {
		sb.WriteString(serializeTrack(t))
	}
	if len(tracks) > 0 {
		sb.WriteString("\n")
	}

	parts := doc.SortedParts()
	for _, p := range parts {
		sb.WriteString(serializePart(p))
	}
	if len(parts) > 0 {
		sb.WriteString("\n")
	}

	for _, l := range doc.Lines {
		sb.WriteString(serializeLyricLine(l))
	}

	return sb.String()
}

// String implements fmt.Stringer by serializing the document.
func (d *Document) String() string {
	return Serialize(d)
}

func serializeTrack(t *Track) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[track.%s:name=%s]\n", t.ID, t.Name))
	sb.WriteString(fmt.Sprintf("[track.%s:source=%s]\n", t.ID, t.Source))
	sb.WriteString(fmt.Sprintf("[track.%s:volume=%s]\n", t.ID, strconv.FormatFloat(t.Volume, 'g', -1, 64)))

	return sb.String()
}

func serializePart(p *Part) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[part.%s:name=%s]\n", p.ID, p.Name))
	sb.WriteString(fmt.Sprintf("[part.%s:color=%s]\n", p.ID, p.Color.Hex()))
	if p.BackgroundColor != nil {
		sb.WriteString(fmt.Sprintf("[part.%s:background_color=%s]\n", p.ID, p.BackgroundColor.Hex()))
	}

	return sb.String()
}

func serializeLyricLine(l LyricLine) string {
	ts := FormatTimestamp(l.Timestamp)
	if l.PartID != "" {
		return fmt.Sprintf("[%s][%s]%s\n", ts, l.PartID, l.Text)
	}
	return fmt.Sprintf("[%s]%s\n", ts, l.Text)
}
