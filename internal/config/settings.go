package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	ioutils "github.com/kvmet/tanukioke/internal/io"
	"github.com/kvmet/tanukioke/internal/lrx"
	"github.com/kvmet/tanukioke/internal/lyrics"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix is the prefix of every environment override, e.g.
// TANUKIOKE_SNAPPINESS.
const EnvPrefix = "TANUKIOKE"

// Settings holds all configuration options.
type Settings struct {
	// Lyrics display
	LyricsSnappiness    float64 `json:"lyrics_snappiness" envconfig:"SNAPPINESS"`
	LyricsLineSpacing   int     `json:"lyrics_line_spacing" envconfig:"LINE_SPACING"`
	CurrentLineOpacity  float64 `json:"current_line_opacity" envconfig:"CURRENT_OPACITY"`
	UpcomingLineOpacity float64 `json:"upcoming_line_opacity" envconfig:"UPCOMING_OPACITY"`
	PastLineOpacity     float64 `json:"past_line_opacity" envconfig:"PAST_OPACITY"`
	DefaultColor        string  `json:"default_color" envconfig:"COLOR"`
	DefaultBackground   string  `json:"default_background_color" envconfig:"BACKGROUND_COLOR"`
	BoldCurrentLine     bool    `json:"bold_current_line" envconfig:"BOLD_CURRENT"`
	FrameRate           int     `json:"frame_rate" envconfig:"FRAME_RATE"`

	// Playback
	SeekStepSeconds float64 `json:"seek_step_seconds" envconfig:"SEEK_STEP"`
	VolumeStep      float64 `json:"volume_step" envconfig:"VOLUME_STEP"`
	LoadConcurrency int     `json:"load_concurrency" envconfig:"LOAD_CONCURRENCY"`
	SampleRate      int     `json:"sample_rate" envconfig:"SAMPLE_RATE"`
	BufferMillis    int     `json:"buffer_ms" envconfig:"BUFFER_MS"`

	// Files
	WatchLyrics bool   `json:"watch_lyrics" envconfig:"WATCH_LYRICS"`
	LibraryPath string `json:"library_path" envconfig:"LIBRARY_PATH"`

	// Logging
	LogFile   string `json:"log_file" envconfig:"LOG_FILE"`
	LogLevel  string `json:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `json:"log_format" envconfig:"LOG_FORMAT"` // text, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		LyricsSnappiness:    8,
		LyricsLineSpacing:   1,
		CurrentLineOpacity:  1.0,
		UpcomingLineOpacity: 0.6,
		PastLineOpacity:     0.35,
		DefaultColor:        "#FFFFFF",
		DefaultBackground:   "#14141E",
		BoldCurrentLine:     true,
		FrameRate:           30,

		SeekStepSeconds: 5,
		VolumeStep:      0.05,
		LoadConcurrency: 4,
		SampleRate:      44100,
		BufferMillis:    100,

		WatchLyrics: true,
		LibraryPath: filepath.Join(homeDir, "Music", "Karaoke"),

		LogFile:   filepath.Join(Dir(), "tanukioke.log"),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Dir returns the directory holding the settings and log files.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "tanukioke")
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "settings.json")
}

// Load reads settings from a JSON file, then applies environment overrides.
// A missing file yields the defaults. Variables from a .env file in the
// working directory are loaded first if it exists.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		log.WithField("path", path).Debug("No settings file, using defaults")
	default:
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}
	if err := envconfig.Process(EnvPrefix, settings); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the player cannot run with. Opacities are
// clamped to [0, 1] rather than rejected.
func (s *Settings) Validate() error {
	if s.LyricsSnappiness < 0 {
		return fmt.Errorf("lyrics_snappiness must be >= 0, got %v", s.LyricsSnappiness)
	}
	if s.LyricsLineSpacing < 0 {
		return fmt.Errorf("lyrics_line_spacing must be >= 0, got %d", s.LyricsLineSpacing)
	}
	if s.FrameRate < 1 || s.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be between 1 and 240, got %d", s.FrameRate)
	}
	if s.SeekStepSeconds <= 0 {
		return fmt.Errorf("seek_step_seconds must be > 0, got %v", s.SeekStepSeconds)
	}
	if s.VolumeStep <= 0 || s.VolumeStep > 1 {
		return fmt.Errorf("volume_step must be in (0, 1], got %v", s.VolumeStep)
	}
	if s.LoadConcurrency < 1 {
		return fmt.Errorf("load_concurrency must be >= 1, got %d", s.LoadConcurrency)
	}
	if s.SampleRate < 8000 {
		return fmt.Errorf("sample_rate must be >= 8000, got %d", s.SampleRate)
	}
	if s.BufferMillis < 1 {
		return fmt.Errorf("buffer_ms must be >= 1, got %d", s.BufferMillis)
	}
	if _, err := lrx.ParseColor(s.DefaultColor); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	if _, err := lrx.ParseColor(s.DefaultBackground); err != nil {
		return fmt.Errorf("default_background_color: %w", err)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", s.LogFormat)
	}

	s.CurrentLineOpacity = clamp01(s.CurrentLineOpacity)
	s.UpcomingLineOpacity = clamp01(s.UpcomingLineOpacity)
	s.PastLineOpacity = clamp01(s.PastLineOpacity)
	return nil
}

// Easing maps LyricsSnappiness to a scroll easing. Zero scrolls linearly,
// 100 and above jumps straight to the next line.
func (s *Settings) Easing() lyrics.EasingFunc {
	switch {
	case s.LyricsSnappiness <= 0:
		return lyrics.Linear
	case s.LyricsSnappiness >= 100:
		return lyrics.Instant
	default:
		return lyrics.Snap(s.LyricsSnappiness)
	}
}

// DefaultStyle returns the colors used for lines with no part or document
// color. Call Validate first; unparseable colors fall back to white on black.
func (s *Settings) DefaultStyle() lrx.LineStyle {
	style := lrx.LineStyle{Foreground: lrx.White, Background: lrx.Black}
	if c, err := lrx.ParseColor(s.DefaultColor); err == nil {
		style.Foreground = c
	}
	if c, err := lrx.ParseColor(s.DefaultBackground); err == nil {
		style.Background = c
	}
	return style
}

// SeekStep returns SeekStepSeconds as a duration.
func (s *Settings) SeekStep() time.Duration {
	return time.Duration(s.SeekStepSeconds * float64(time.Second))
}

// FrameInterval returns the time between two rendered frames.
func (s *Settings) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.FrameRate)
}

// BufferSize returns BufferMillis as a duration.
func (s *Settings) BufferSize() time.Duration {
	return time.Duration(s.BufferMillis) * time.Millisecond
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
