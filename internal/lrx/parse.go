package lrx

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// timestampRegex matches mm:ss and mm:ss.cc. Any number of fraction digits is
// accepted so millisecond LRC timestamps parse too.
var timestampRegex = regexp.MustCompile(`^(\d+):(\d+(?:\.\d+)?)$`)

// Parse parses LRX source text into a finalized Document. Any malformed line
// fails the whole parse with a *ParseError naming the line.
func Parse(content string) (*Document, error) {
	doc := NewDocument()

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Everything meaningful starts with a bracket; free text is ignored.
		if !strings.HasPrefix(line, "[") {
			continue
		}

		if err := parseLine(doc, line); err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
	}

	doc.Finalize()

	return doc, nil
}

func parseLine(doc *Document, line string) error {
	segments, err := extractBrackets(line)
	if err != nil {
		return err
	}

	if len(segments) == 0 {
		return nil
	}

	if ts, err := ParseTimestamp(segments[0]); err == nil {
		parseLyricLine(doc, ts, segments, line)
		return nil
	}

	if strings.Contains(segments[0], ":") {
		return parseTag(doc, segments[0])
	}

	return nil
}

// extractBrackets returns the contents of every top-level [...] segment in
// line, in order.
func extractBrackets(line string) ([]string, error) {
	var (
		segments []string
		current  strings.Builder
		inside   bool
	)

	for _, ch := range line {
		switch ch {
		case '[':
			if inside {
				return nil, ErrNestedBrackets
			}
			inside = true
			current.Reset()
		case ']':
			if !inside {
				return nil, ErrUnmatchedBracket
			}
			inside = false
			segments = append(segments, current.String())
		default:
			if inside {
				current.WriteRune(ch)
			}
		}
	}

	if inside {
		return nil, ErrUnclosedBracket
	}

	return segments, nil
}

// ParseTimestamp parses "mm:ss" or "mm:ss.cc" into seconds.
func ParseTimestamp(s string) (float64, error) {
	m := timestampRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	minutes, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	seconds, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	return float64(minutes)*60 + seconds, nil
}

// FormatTimestamp formats seconds as mm:ss.cc, rounded to centiseconds.
// Negative values format as zero.
func FormatTimestamp(seconds float64) string {
	cs := int64(math.Round(seconds * 100))
	if cs < 0 {
		cs = 0
	}
	minutes := cs / 6000
	cs %= 6000
	return fmt.Sprintf("%02d:%02d.%02d", minutes, cs/100, cs%100)
}

func parseLyricLine(doc *Document, ts float64, segments []string, line string) {
	var partID string
	if len(segments) > 1 && isPartRef(segments[1]) {
		partID = segments[1]
	}

	// Text is whatever follows the last closing bracket.
	text := strings.TrimSpace(line[strings.LastIndexByte(line, ']')+1:])

	doc.Lines = append(doc.Lines, LyricLine{
		Timestamp: ts,
		Text:      text,
		PartID:    partID,
	})
}

// isPartRef reports whether a second lyric segment names a part rather than
// carrying another timestamp or a number.
func isPartRef(s string) bool {
	if _, err := ParseTimestamp(s); err == nil {
		return false
	}
	return !strings.ContainsAny(s, ":.")
}

func parseTag(doc *Document, tag string) error {
	key, value, _ := strings.Cut(tag, ":")
	if key == "" {
		return fmt.Errorf("%w: empty key in %q", ErrInvalidTag, tag)
	}

	switch {
	case strings.Contains(key, "."):
		return parseDotNotation(doc, key, value)

	case key == KeyColor:
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		doc.SetColor(c)

	case key == KeyBackgroundColor:
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		doc.SetBackgroundColor(c)

	default:
		doc.Metadata[key] = value
	}

	return nil
}

func parseDotNotation(doc *Document, key, value string) error {
	category, id, _ := strings.Cut(key, ".")
	if id == "" {
		return fmt.Errorf("%w: missing id in %q", ErrInvalidDotNotation, key)
	}

	property, propValue, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("%w: expected property=value, got %q", ErrInvalidDotNotation, value)
	}

	switch category {
	case "track":
		return parseTrackProperty(doc, id, property, propValue)
	case "part":
		return parsePartProperty(doc, id, property, propValue)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

func parseTrackProperty(doc *Document, id, property, value string) error {
	track, ok := doc.Tracks[id]
	if !ok {
		track = NewTrack(id)
		doc.Tracks[id] = track
	}

	switch property {
	case "name":
		track.Name = value
	case "source":
		track.Source = value
	case "volume":
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %q", ErrInvalidVolume, value)
		}
		track.Volume = v
	default:
		return fmt.Errorf("%w: track property %q", ErrUnknownProperty, property)
	}

	return nil
}

func parsePartProperty(doc *Document, id, property, value string) error {
	part, ok := doc.Parts[id]
	if !ok {
		part = NewPart(id)
		doc.Parts[id] = part
	}

	switch property {
	case "name":
		part.Name = value
	case "color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		part.Color = c
	case "background_color":
		c, err := ParseColor(value)
		if err != nil {
			return err
		}
		part.BackgroundColor = &c
	default:
		return fmt.Errorf("%w: part property %q", ErrUnknownProperty, property)
	}

	return nil
}
