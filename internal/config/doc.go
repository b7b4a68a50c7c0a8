// Package config provides configuration management for tanukioke.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides (TANUKIOKE_*), including a .env file
//   - Logging setup
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Snappy lyric scrolling at 30 frames per second
//	// 5 second seek step
//	// Lyrics reloaded when the .lrx file changes
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// Environment variables override file values, e.g.
//
//	TANUKIOKE_SNAPPINESS=0 TANUKIOKE_FRAME_RATE=60 tanukioke song.lrx
//
// # Saving Settings
//
//	settings.LyricsSnappiness = 12
//	err := settings.Save(config.DefaultPath())
//
// # Configuration Options
//
// Settings includes options for:
//   - Lyric scrolling, spacing, opacity and colors
//   - Seek and volume steps
//   - Audio output sample rate and buffer
//   - Lyric file watching
//   - Log file, level and format
package config
