package audio

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownTrack is returned for per-track calls naming a track that
	// is not loaded.
	ErrUnknownTrack = errors.New("unknown track")

	// ErrNegativePosition is returned when seeking before the start.
	ErrNegativePosition = errors.New("negative position")

	// ErrUnsupportedFormat is returned by BeepBackend.Open for files it has
	// no decoder for.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// LoadError reports a track that could not be opened or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SeekError reports a failed seek. Reloads happen on Play, so Play is where
// most SeekErrors come from.
type SeekError struct {
	Position time.Duration
	Err      error
}

func (e *SeekError) Error() string {
	return fmt.Sprintf("seek to %s: %v", e.Position, e.Err)
}

func (e *SeekError) Unwrap() error {
	return e.Err
}
