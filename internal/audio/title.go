package audio

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// TrackTitle returns the title (TIT2) from an MP3 file's ID3v2 tag. It
// returns "" for other formats, untagged files and unreadable files.
//
// Example:
//
//	TrackTitle("/songs/abc/vocals.mp3") // "Vocals (Isolated)"
func TrackTitle(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return ""
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title"}})
	if err != nil {
		return ""
	}
	defer tag.Close()

	return strings.TrimSpace(tag.Title())
}
