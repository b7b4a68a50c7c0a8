package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// resampleQuality is passed to beep.Resample for stems whose sample rate
// differs from the speaker's.
const resampleQuality = 4

// BeepBackend decodes files with beep and mixes every sink into the
// default output device.
type BeepBackend struct {
	sampleRate beep.SampleRate
}

// NewBeepBackend opens the default output device. bufferSize trades
// latency for resistance to underruns; 100ms is a reasonable default.
func NewBeepBackend(sampleRate beep.SampleRate, bufferSize time.Duration) (*BeepBackend, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &BeepBackend{sampleRate: sampleRate}, nil
}

// Open decodes an MP3, WAV, FLAC or Ogg Vorbis file.
func (b *BeepBackend) Open(path string) (Stream, error) {
	return decodeFile(path)
}

func decodeFile(path string) (*beepStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return &beepStream{streamer: streamer, format: format, file: f}, nil
}

type beepStream struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File
}

func (s *beepStream) Duration() time.Duration {
	return s.format.SampleRate.D(s.streamer.Len())
}

func (s *beepStream) Skip(d time.Duration) error {
	pos := s.streamer.Position() + s.format.SampleRate.N(d)
	if pos > s.streamer.Len() {
		pos = s.streamer.Len()
	}
	return s.streamer.Seek(pos)
}

func (s *beepStream) Close() error {
	err := s.streamer.Close()
	if ferr := s.file.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) && err == nil {
		err = ferr
	}
	return err
}

// NewSink resamples s to the output rate if needed and adds it, paused, to
// the speaker mix.
func (b *BeepBackend) NewSink(s Stream, volume float64) (Sink, error) {
	bs, ok := s.(*beepStream)
	if !ok {
		return nil, fmt.Errorf("beep backend: foreign stream %T", s)
	}

	sink := newBeepSink(bs, b.sampleRate, volume)
	speaker.Play(sink.ctrl)
	return sink, nil
}

// Sync holds the speaker lock while fn runs.
func (b *BeepBackend) Sync(fn func()) {
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

// padded streams s and then silence forever. The mixer drops any streamer
// that comes up short, so an exhausted sink has to keep reporting full
// buffers to be playable again after a rewind.
type padded struct {
	s beep.Streamer
}

func (p padded) Stream(samples [][2]float64) (int, bool) {
	n, _ := p.s.Stream(samples)
	clear(samples[n:])
	return len(samples), true
}

func (p padded) Err() error {
	return p.s.Err()
}

type beepSink struct {
	stream  *beepStream
	outRate beep.SampleRate
	volume  *effects.Volume
	ctrl    *beep.Ctrl
}

func newBeepSink(bs *beepStream, outRate beep.SampleRate, volume float64) *beepSink {
	sink := &beepSink{stream: bs, outRate: outRate}
	sink.volume = &effects.Volume{Streamer: sink.source(), Base: 2}
	sink.SetVolume(volume)
	sink.ctrl = &beep.Ctrl{Streamer: sink.volume, Paused: true}
	return sink
}

// source builds the chain from the decoder up to the volume stage. The
// resampler keeps history, so it is rebuilt after every rewind.
func (s *beepSink) source() beep.Streamer {
	var src beep.Streamer = s.stream.streamer
	if s.stream.format.SampleRate != s.outRate {
		src = beep.Resample(resampleQuality, s.stream.format.SampleRate, s.outRate, src)
	}
	return padded{src}
}

func (s *beepSink) Play() {
	s.ctrl.Paused = false
}

func (s *beepSink) Pause() {
	s.ctrl.Paused = true
}

func (s *beepSink) Stop() {
	s.ctrl.Paused = true
	if err := s.stream.streamer.Seek(0); err != nil {
		logger.WithError(err).Warn("Failed to rewind stream")
	}
	s.volume.Streamer = s.source()
}

// SetVolume maps a linear volume onto beep's exponential scale.
func (s *beepSink) SetVolume(v float64) {
	if v <= 0 {
		s.volume.Silent = true
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(v)
}

func (s *beepSink) Close() error {
	// A nil streamer makes the speaker drop the ctrl on its next pass.
	s.ctrl.Streamer = nil
	return s.stream.Close()
}
