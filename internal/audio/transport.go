package audio

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	ioutils "github.com/kvmet/tanukioke/internal/io"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger = log.WithField("component", "transport")

// TrackSpec describes one stem to load.
type TrackSpec struct {
	ID     string
	Name   string
	Source string
	Volume float64
}

// TrackInfo describes a loaded stem.
type TrackInfo struct {
	ID       string
	Name     string
	Source   string
	Volume   float64
	Duration time.Duration
}

type trackSink struct {
	info TrackInfo
	path string
	sink Sink
}

// Option configures a Transport.
type Option func(*Transport)

// WithClock replaces time.Now as the Transport's wall clock.
func WithClock(now func() time.Time) Option {
	return func(t *Transport) {
		t.now = now
	}
}

// WithConcurrency sets how many stems are opened at once. Values below 1
// mean one at a time.
func WithConcurrency(n int) Option {
	return func(t *Transport) {
		if n < 1 {
			n = 1
		}
		t.concurrency = n
	}
}

// Transport plays a set of stems as one unit.
//
// Playback position is derived from the wall clock: Play records an anchor
// instant and Position is the time elapsed since it. Sinks are started in a
// single Backend.Sync pass and are not re-aligned afterwards, so any drift
// between the output and the wall clock goes uncorrected.
//
// All methods are safe for concurrent use. Every state change and every
// read happens under one mutex. Concurrent LoadTracks calls open their
// files in parallel and then swap in under the lock one after another, so
// the last call to finish wins and earlier sets are closed.
type Transport struct {
	mu sync.Mutex

	backend     Backend
	now         func() time.Time
	concurrency int

	tracks   []*trackSink
	duration time.Duration

	// Playing: anchor set. Paused: pausedElapsed set. A pending seek is
	// always paused at seekTarget.
	anchor        time.Time
	playing       bool
	paused        bool
	pausedElapsed time.Duration
	seekPending   bool
	seekTarget    time.Duration
}

// NewTransport creates an empty, stopped Transport.
func NewTransport(backend Backend, opts ...Option) *Transport {
	t := &Transport{
		backend:     backend,
		now:         time.Now,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LoadTracks replaces the loaded stems. Relative sources are resolved
// against baseDir.
//
// Loading is all or nothing. Every stem is opened before anything is
// replaced, and if one fails the streams opened so far are closed, the
// previous stems stay loaded and the returned *LoadError names the failing
// path. On success the Transport is stopped with every sink paused.
func (t *Transport) LoadTracks(ctx context.Context, specs []TrackSpec, baseDir string) error {
	logger.WithFields(log.Fields{"tracks": len(specs), "dir": baseDir}).Info("Loading tracks")

	loaded := make([]*trackSink, len(specs))
	for i, spec := range specs {
		path := ioutils.ResolvePath(baseDir, spec.Source)
		loaded[i] = &trackSink{
			info: TrackInfo{
				ID:     spec.ID,
				Name:   spec.Name,
				Source: spec.Source,
				Volume: clampVolume(spec.Volume),
			},
			path: path,
		}
	}

	streams, err := t.openAll(ctx, loaded, 0)
	if err != nil {
		return err
	}

	for i, tr := range loaded {
		tr.info.Duration = streams[i].Duration()
		if tr.info.Name == "" {
			tr.info.Name = trackName(tr.path)
		}
	}

	sinks, err := t.newSinks(loaded, streams)
	if err != nil {
		return err
	}

	var duration time.Duration
	for i, tr := range loaded {
		tr.sink = sinks[i]
		if tr.info.Duration > duration {
			duration = tr.info.Duration
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Sync(t.closeTracks)
	t.tracks = loaded
	t.duration = duration
	t.reset()

	logger.WithFields(log.Fields{"tracks": len(loaded), "duration": duration}).Info("Tracks loaded")
	return nil
}

// openAll opens every track's file and skips each stream forward by offset.
// On error every opened stream is closed.
func (t *Transport) openAll(ctx context.Context, tracks []*trackSink, offset time.Duration) ([]Stream, error) {
	streams := make([]Stream, len(tracks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)

	for i, tr := range tracks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return &LoadError{Path: tr.path, Err: err}
			}

			s, err := t.backend.Open(tr.path)
			if err != nil {
				logger.WithError(err).WithField("path", tr.path).Warn("Failed to open track")
				return &LoadError{Path: tr.path, Err: err}
			}
			streams[i] = s

			if offset > 0 {
				if err := s.Skip(offset); err != nil {
					return &LoadError{Path: tr.path, Err: err}
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		closeStreams(streams)
		return nil, err
	}
	return streams, nil
}

// newSinks wraps each stream in a paused sink. On error every sink created
// so far and every remaining stream is closed.
func (t *Transport) newSinks(tracks []*trackSink, streams []Stream) ([]Sink, error) {
	sinks := make([]Sink, len(streams))
	for i, s := range streams {
		sink, err := t.backend.NewSink(s, tracks[i].info.Volume)
		if err != nil {
			t.backend.Sync(func() {
				for _, created := range sinks[:i] {
					created.Close()
				}
			})
			closeStreams(streams[i:])
			return nil, &LoadError{Path: tracks[i].path, Err: err}
		}
		sinks[i] = sink
	}
	return sinks, nil
}

func closeStreams(streams []Stream) {
	for _, s := range streams {
		if s != nil {
			s.Close()
		}
	}
}

// Play starts or resumes playback of every stem. It does nothing when no
// stems are loaded or playback is already running.
//
// A pending seek is applied here: each stem is reopened, skipped to the
// seek target and given a fresh sink. If that fails the Transport stays
// paused at the target with the seek still pending, and Play returns a
// *SeekError.
func (t *Transport) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.tracks) == 0 || t.playing {
		return nil
	}

	var elapsed time.Duration
	switch {
	case t.seekPending:
		if err := t.reload(t.seekTarget); err != nil {
			logger.WithError(err).WithField("position", t.seekTarget).Error("Seek reload failed")
			return &SeekError{Position: t.seekTarget, Err: err}
		}
		elapsed = t.seekTarget
		t.seekPending = false
	case t.paused:
		elapsed = t.pausedElapsed
	}

	t.anchor = t.now().Add(-elapsed)
	t.playing = true
	t.paused = false
	t.pausedElapsed = 0

	t.backend.Sync(func() {
		for _, tr := range t.tracks {
			tr.sink.Play()
		}
	})
	return nil
}

// reload replaces every sink with one reading from offset. The caller holds
// t.mu.
func (t *Transport) reload(offset time.Duration) error {
	logger.WithField("position", offset).Debug("Reloading tracks for seek")

	streams, err := t.openAll(context.Background(), t.tracks, offset)
	if err != nil {
		return err
	}
	sinks, err := t.newSinks(t.tracks, streams)
	if err != nil {
		return err
	}

	t.backend.Sync(func() {
		for i, tr := range t.tracks {
			tr.sink.Close()
			tr.sink = sinks[i]
		}
	})
	return nil
}

// Pause freezes the position and pauses every sink. Pausing while paused
// or stopped only re-pauses the sinks.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.tracks) == 0 {
		return
	}
	t.pause()
}

func (t *Transport) pause() {
	if t.playing {
		t.pausedElapsed = t.now().Sub(t.anchor)
		t.playing = false
		t.paused = true
	}
	t.backend.Sync(func() {
		for _, tr := range t.tracks {
			tr.sink.Pause()
		}
	})
}

// Stop halts playback, drops any pending seek and rewinds every sink.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reset()
	t.backend.Sync(func() {
		for _, tr := range t.tracks {
			tr.sink.Stop()
		}
	})
}

// Seek pauses playback and moves the position to pos. The stems are not
// reopened until the next Play, so repeated seeks while scrubbing are cheap.
// Seeking with no stems loaded does nothing.
func (t *Transport) Seek(pos time.Duration) error {
	if pos < 0 {
		return &SeekError{Position: pos, Err: ErrNegativePosition}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.tracks) == 0 {
		return nil
	}

	t.pause()
	t.paused = true
	t.pausedElapsed = pos
	t.seekPending = true
	t.seekTarget = pos
	return nil
}

// Position returns the current playback position.
func (t *Transport) Position() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position()
}

func (t *Transport) position() time.Duration {
	switch {
	case t.playing:
		return t.now().Sub(t.anchor)
	case t.paused:
		return t.pausedElapsed
	default:
		return 0
	}
}

// Duration returns the length of the longest loaded stem.
func (t *Transport) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// IsPlaying reports whether playback is running.
func (t *Transport) IsPlaying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// IsPaused reports whether playback is paused, including after a Seek.
func (t *Transport) IsPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// SetVolume sets the linear volume of one stem, clamped to [0, 1].
func (t *Transport) SetVolume(id string, v float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr := t.track(id)
	if tr == nil {
		return ErrUnknownTrack
	}

	tr.info.Volume = clampVolume(v)
	t.backend.Sync(func() {
		tr.sink.SetVolume(tr.info.Volume)
	})
	return nil
}

// Volume returns the volume of one stem.
func (t *Transport) Volume(id string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tr := t.track(id)
	if tr == nil {
		return 0, false
	}
	return tr.info.Volume, true
}

// Tracks returns the loaded stems in load order.
func (t *Transport) Tracks() []TrackInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	infos := make([]TrackInfo, len(t.tracks))
	for i, tr := range t.tracks {
		infos[i] = tr.info
	}
	return infos
}

// Close unloads every stem and releases its resources.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Sync(t.closeTracks)
	t.tracks = nil
	t.duration = 0
	t.reset()
	return nil
}

func (t *Transport) track(id string) *trackSink {
	for _, tr := range t.tracks {
		if tr.info.ID == id {
			return tr
		}
	}
	return nil
}

// closeTracks must run inside Backend.Sync.
func (t *Transport) closeTracks() {
	for _, tr := range t.tracks {
		if err := tr.sink.Close(); err != nil {
			logger.WithError(err).WithField("path", tr.path).Warn("Failed to close track")
		}
	}
}

func (t *Transport) reset() {
	t.anchor = time.Time{}
	t.playing = false
	t.paused = false
	t.pausedElapsed = 0
	t.seekPending = false
	t.seekTarget = 0
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// trackName derives a display name from the file: its title tag when it
// has one, else the file name without extension.
func trackName(path string) string {
	if title := TrackTitle(path); title != "" {
		return title
	}
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
