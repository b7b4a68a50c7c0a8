package audio

import (
	"errors"
	"sync"
	"time"
)

// fakeClock is a manually advanced wall clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeStream struct {
	path     string
	duration time.Duration
	skipped  time.Duration
	closed   bool
}

func (s *fakeStream) Duration() time.Duration { return s.duration }

func (s *fakeStream) Skip(d time.Duration) error {
	s.skipped += d
	return nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeSink struct {
	stream  *fakeStream
	volume  float64
	playing bool
	stops   int
	closed  bool
}

func (s *fakeSink) Play()               { s.playing = true }
func (s *fakeSink) Pause()              { s.playing = false }
func (s *fakeSink) SetVolume(v float64) { s.volume = v }

func (s *fakeSink) Stop() {
	s.playing = false
	s.stops++
}

func (s *fakeSink) Close() error {
	s.playing = false
	s.closed = true
	return s.stream.Close()
}

var errMissing = errors.New("no such file")

// fakeBackend serves streams for the paths in durations. Any other path
// fails to open.
type fakeBackend struct {
	mu        sync.Mutex
	durations map[string]time.Duration
	streams   []*fakeStream
	sinks     []*fakeSink
	inSync    bool
	syncCalls int
}

func newFakeBackend(durations map[string]time.Duration) *fakeBackend {
	return &fakeBackend{durations: durations}
}

func (b *fakeBackend) Open(path string) (Stream, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.durations[path]
	if !ok {
		return nil, errMissing
	}
	s := &fakeStream{path: path, duration: d}
	b.streams = append(b.streams, s)
	return s, nil
}

func (b *fakeBackend) NewSink(s Stream, volume float64) (Sink, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sink := &fakeSink{stream: s.(*fakeStream), volume: volume}
	b.sinks = append(b.sinks, sink)
	return sink, nil
}

func (b *fakeBackend) Sync(fn func()) {
	b.mu.Lock()
	b.inSync = true
	b.syncCalls++
	b.mu.Unlock()

	fn()

	b.mu.Lock()
	b.inSync = false
	b.mu.Unlock()
}

// liveSinks returns the sinks that have not been closed.
func (b *fakeBackend) liveSinks() []*fakeSink {
	b.mu.Lock()
	defer b.mu.Unlock()

	var live []*fakeSink
	for _, s := range b.sinks {
		if !s.closed {
			live = append(live, s)
		}
	}
	return live
}

func (b *fakeBackend) openStreams() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, s := range b.streams {
		if !s.closed {
			n++
		}
	}
	return n
}
