package lrx

import "testing"

func TestDocument_LineColors(t *testing.T) {
	defaults := LineStyle{Foreground: White, Background: Black}
	bg := Color{1, 1, 1}

	doc := NewDocument()
	doc.Parts["lead"] = &Part{ID: "lead", Color: Color{255, 0, 0}, BackgroundColor: &bg}
	doc.Parts["harm"] = &Part{ID: "harm", Color: Color{0, 255, 0}}

	tests := []struct {
		name   string
		global *Color
		partID string
		want   LineStyle
	}{
		{"no part, no global", nil, "", defaults},
		{"dangling part", nil, "ghost", defaults},
		{"part with background", nil, "lead", LineStyle{Foreground: Color{255, 0, 0}, Background: bg}},
		{"part without background", nil, "harm", LineStyle{Foreground: Color{0, 255, 0}, Background: Black}},
		{"global fallback", &Color{9, 9, 9}, "ghost", LineStyle{Foreground: Color{9, 9, 9}, Background: Black}},
		{"part wins over global", &Color{9, 9, 9}, "harm", LineStyle{Foreground: Color{0, 255, 0}, Background: Black}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc.Color = tt.global
			got := doc.LineColors(LyricLine{PartID: tt.partID}, defaults)
			if got != tt.want {
				t.Errorf("LineColors() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDocument_Equal(t *testing.T) {
	a := NewDocument()
	a.Lines = []LyricLine{{Timestamp: 1.001, Text: "x"}}
	b := NewDocument()
	b.Lines = []LyricLine{{Timestamp: 1.0, Text: "x"}}

	if !a.Equal(b) {
		t.Error("timestamps equal at centisecond precision should compare equal")
	}

	b.Lines[0].PartID = "lead"
	if a.Equal(b) {
		t.Error("documents with different part ids should differ")
	}

	c := NewDocument()
	c.Metadata["ar"] = "x"
	if a.Equal(c) {
		t.Error("documents with different metadata should differ")
	}
}

func TestDocument_SortedTracks(t *testing.T) {
	doc := NewDocument()
	for _, id := range []string{"c", "a", "b"} {
		doc.Tracks[id] = NewTrack(id)
	}

	got := doc.SortedTracks()
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Errorf("SortedTracks()[%d] = %q, want %q", i, got[i].ID, want)
		}
	}
}
