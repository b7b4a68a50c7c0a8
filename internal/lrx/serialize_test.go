package lrx

import (
	"strings"
	"testing"
)

func TestSerializeLyricLine(t *testing.T) {
	line := LyricLine{Timestamp: 12.0, Text: "Test lyrics"}
	if got, want := serializeLyricLine(line), "[00:12.00]Test lyrics\n"; got != want {
		t.Errorf("serializeLyricLine() = %q, want %q", got, want)
	}

	withPart := LyricLine{Timestamp: 12.0, Text: "Test lyrics", PartID: "lead"}
	if got, want := serializeLyricLine(withPart), "[00:12.00][lead]Test lyrics\n"; got != want {
		t.Errorf("serializeLyricLine() = %q, want %q", got, want)
	}
}

func TestSerialize_Sections(t *testing.T) {
	doc := NewDocument()
	doc.Metadata["ti"] = "Title"
	doc.Metadata["ar"] = "Artist"
	doc.Tracks["inst"] = &Track{ID: "inst", Name: "Instrumental", Source: "inst.ogg", Volume: 0.75}
	bg := Color{0, 0, 0}
	doc.Parts["lead"] = &Part{ID: "lead", Name: "Lead", Color: Color{255, 0, 0}, BackgroundColor: &bg}
	doc.Lines = []LyricLine{{Timestamp: 90.5, Text: "Hello", PartID: "lead"}}

	want := `[ar:Artist]
[ti:Title]

[track.inst:name=Instrumental]
[track.inst:source=inst.ogg]
[track.inst:volume=0.75]

[part.lead:name=Lead]
[part.lead:color=#FF0000]
[part.lead:background_color=#000000]

[01:30.50][lead]Hello
`
	if got := Serialize(doc); got != want {
		t.Errorf("Serialize() =\n%s\nwant\n%s", got, want)
	}
}

func TestSerialize_ColorsFromFields(t *testing.T) {
	doc := NewDocument()
	doc.Metadata[KeyColor] = "#abcdef"
	c := Color{0xAB, 0xCD, 0xEF}
	doc.Color = &c

	got := Serialize(doc)
	if !strings.Contains(got, "[color:#ABCDEF]") {
		t.Errorf("Serialize() = %q, want canonical color tag", got)
	}
	if strings.Count(got, "[color:") != 1 {
		t.Errorf("color tag written more than once: %q", got)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  func() *Document
	}{
		{"empty", NewDocument},
		{"full", func() *Document {
			doc := NewDocument()
			doc.Metadata["ar"] = "Artist"
			doc.Metadata["by"] = "someone: with colon"
			doc.SetColor(Color{1, 2, 3})
			doc.SetBackgroundColor(Color{20, 20, 30})
			doc.Tracks["a"] = &Track{ID: "a", Name: "Vocals", Source: "vocals.mp3", Volume: 1}
			doc.Tracks["b"] = &Track{ID: "b", Name: "", Source: "/abs/b.wav", Volume: 0.333}
			doc.Parts["lead"] = &Part{ID: "lead", Name: "Lead", Color: Color{255, 107, 107}}
			bg := Color{9, 9, 9}
			doc.Parts["harm"] = &Part{ID: "harm", Name: "Harmony", Color: White, BackgroundColor: &bg}
			doc.Lines = []LyricLine{
				{Timestamp: 1, Text: "one", PartID: "lead"},
				{Timestamp: 1, Text: "one again"},
				{Timestamp: 61.25, Text: ""},
				{Timestamp: 125.5, Text: "dangling", PartID: "nobody"},
			}
			return doc
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tt.doc()

			parsed, err := Parse(Serialize(doc))
			if err != nil {
				t.Fatalf("Parse(Serialize()) error = %v", err)
			}
			if !parsed.Equal(doc) {
				t.Errorf("round trip mismatch:\noriginal:\n%s\nparsed:\n%s", Serialize(doc), Serialize(parsed))
			}
		})
	}
}

func TestSerialize_ParsedRoundTrip(t *testing.T) {
	content := `[ti:Song]
[color:#ffffff]
[track.x:source=x.flac]
[part.p:color=#00ff00]
[00:03.00][p]c
[00:01.00]a
`
	doc, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	again, err := Parse(doc.String())
	if err != nil {
		t.Fatalf("Parse(String()) error = %v", err)
	}
	if !again.Equal(doc) {
		t.Errorf("re-parsed document differs:\n%s", again)
	}
}
