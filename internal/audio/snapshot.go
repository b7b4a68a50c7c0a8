package audio

import "time"

// Snapshot is a consistent view of the Transport at one instant.
type Snapshot struct {
	Position time.Duration
	Duration time.Duration
	Playing  bool
	Paused   bool
}

// Sampler is the read side of a Transport. Renderers and the lyric
// scroller consume Snapshots instead of querying the Transport field by
// field.
type Sampler interface {
	Snapshot() Snapshot
}

// Snapshot reads position, duration and state under a single lock, so the
// fields never disagree with each other.
func (t *Transport) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		Position: t.position(),
		Duration: t.duration,
		Playing:  t.playing,
		Paused:   t.paused,
	}
}

// Stopped reports whether the snapshot is neither playing nor paused.
func (s Snapshot) Stopped() bool {
	return !s.Playing && !s.Paused
}

// Progress returns Position as a fraction of Duration in [0, 1]. It is 0
// when the duration is unknown.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := float64(s.Position) / float64(s.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Ended reports whether playback has run past the longest stem.
func (s Snapshot) Ended() bool {
	return s.Playing && s.Duration > 0 && s.Position >= s.Duration
}
