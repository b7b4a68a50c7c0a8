// Package ioutils provides file system utilities for tanukioke.
//
// This package contains functions for:
//   - Reading text files with BOM and UTF-16 detection
//   - Resolving track sources relative to a song directory
//   - Watching a file for changes
//
// # Reading Text
//
//	content, err := ioutils.ReadTextFile("song.lrx")
//	// UTF-8 with or without BOM, UTF-16 LE/BE with BOM
//
// # Resolving Paths
//
//	path := ioutils.ResolvePath("/songs/abc", "stems/vocals.mp3")
//	// "/songs/abc/stems/vocals.mp3"
//
// # Watching
//
//	w, err := ioutils.WatchFile(ctx, "song.lrx", 200*time.Millisecond, func() {
//	    // file was written or replaced
//	})
//	defer w.Close()
package ioutils
