package audio

import "time"

// Stream is a decoded audio source positioned at its start.
type Stream interface {
	// Duration returns the total length, or zero if unknown.
	Duration() time.Duration

	// Skip advances the read position by d. Skipping past the end leaves
	// the stream exhausted.
	Skip(d time.Duration) error

	Close() error
}

// Sink is a controllable playback handle fed by one Stream. A new sink is
// paused. The Transport only calls the Play, Pause, Stop and SetVolume
// methods from inside Backend.Sync.
type Sink interface {
	Play()
	Pause()

	// Stop pauses the sink and rewinds its stream to the start.
	Stop()

	// SetVolume sets a linear volume in [0, 1].
	SetVolume(v float64)

	// Close detaches the sink from the output and closes its stream.
	Close() error
}

// Backend provides the decode and output capabilities the Transport needs.
type Backend interface {
	// Open decodes the audio file at path.
	Open(path string) (Stream, error)

	// NewSink creates a paused sink playing s at the given volume. The sink
	// takes ownership of s.
	NewSink(s Stream, volume float64) (Sink, error)

	// Sync runs fn while the output is not mixing, so that state changes
	// made by fn on several sinks take effect on the same buffer.
	Sync(fn func())
}
