package tui

import (
	"path/filepath"
	"strings"

	"github.com/kvmet/tanukioke/internal/audio"
	"github.com/kvmet/tanukioke/internal/lrx"
)

// trackSpecs lists the stems a document declares, ordered by id.
func trackSpecs(doc *lrx.Document) []audio.TrackSpec {
	tracks := doc.SortedTracks()
	specs := make([]audio.TrackSpec, len(tracks))
	for i, t := range tracks {
		specs[i] = audio.TrackSpec{
			ID:     t.ID,
			Name:   t.Name,
			Source: t.Source,
			Volume: t.Volume,
		}
	}
	return specs
}

// songTitle builds "Artist - Title" from the ar and ti tags, falling back
// to the file name.
func songTitle(doc *lrx.Document, path string) string {
	title := strings.TrimSpace(doc.Metadata["ti"])
	artist := strings.TrimSpace(doc.Metadata["ar"])

	switch {
	case title != "" && artist != "":
		return artist + " - " + title
	case title != "":
		return title
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
