package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func writeSilentWAV(t *testing.T, path string, format beep.Format, d time.Duration) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeFile(t *testing.T) {
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	path := filepath.Join(t.TempDir(), "click.wav")
	writeSilentWAV(t, path, format, 2*time.Second)

	s, err := decodeFile(path)
	if err != nil {
		t.Fatalf("decodeFile() error = %v", err)
	}
	defer s.Close()

	if got := s.Duration(); got != 2*time.Second {
		t.Errorf("Duration() = %v, want 2s", got)
	}

	if err := s.Skip(500 * time.Millisecond); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	if got := s.streamer.Position(); got != 4000 {
		t.Errorf("Position() after Skip = %d, want 4000", got)
	}

	// Skipping past the end leaves the stream exhausted.
	if err := s.Skip(time.Minute); err != nil {
		t.Fatalf("Skip() past end error = %v", err)
	}
	if got := s.streamer.Position(); got != s.streamer.Len() {
		t.Errorf("Position() = %d, want %d", got, s.streamer.Len())
	}
}

func TestDecodeFile_Errors(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := decodeFile(txt); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("decodeFile(.txt) error = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := decodeFile(filepath.Join(dir, "missing.wav")); !os.IsNotExist(err) {
		t.Errorf("decodeFile(missing) error = %v, want not-exist", err)
	}

	garbage := filepath.Join(dir, "garbage.wav")
	if err := os.WriteFile(garbage, []byte("not a riff file"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := decodeFile(garbage); err == nil {
		t.Error("decodeFile(garbage) error = nil")
	}
}

func openTestSink(t *testing.T, rate, outRate beep.SampleRate, volume float64) *beepSink {
	t.Helper()

	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	path := filepath.Join(t.TempDir(), "stem.wav")
	writeSilentWAV(t, path, format, 100*time.Millisecond)

	bs, err := decodeFile(path)
	if err != nil {
		t.Fatalf("decodeFile() error = %v", err)
	}
	t.Cleanup(func() { bs.Close() })

	return newBeepSink(bs, outRate, volume)
}

// drain streams n mixer buffers.
func drain(mixer *beep.Mixer, n int) {
	buf := make([][2]float64, 512)
	for range n {
		mixer.Stream(buf)
	}
}

func TestBeepSink_Lifecycle(t *testing.T) {
	tests := []struct {
		name    string
		outRate beep.SampleRate
	}{
		{"same rate", 8000},
		{"resampled", 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := openTestSink(t, 8000, tt.outRate, 1)
			src := sink.stream.streamer

			var mixer beep.Mixer
			mixer.Add(sink.ctrl)

			drain(&mixer, 1)
			if got := src.Position(); got != 0 {
				t.Fatalf("paused sink advanced to %d", got)
			}

			sink.Play()
			drain(&mixer, 1)
			if src.Position() == 0 {
				t.Fatal("playing sink did not advance")
			}

			sink.Pause()
			paused := src.Position()
			drain(&mixer, 2)
			if got := src.Position(); got != paused {
				t.Errorf("position moved while paused: %d -> %d", paused, got)
			}

			// Play well past the end of the 800-sample stem.
			sink.Play()
			drain(&mixer, 8)
			if got := src.Position(); got != src.Len() {
				t.Errorf("Position() = %d, want end %d", got, src.Len())
			}
			if got := mixer.Len(); got != 1 {
				t.Fatalf("mixer.Len() after end = %d, want 1", got)
			}

			sink.Stop()
			if got := src.Position(); got != 0 {
				t.Errorf("Position() after Stop = %d, want 0", got)
			}
			drain(&mixer, 1)
			if got := src.Position(); got != 0 {
				t.Errorf("stopped sink advanced to %d", got)
			}

			sink.Play()
			drain(&mixer, 1)
			if src.Position() == 0 {
				t.Error("sink did not advance after Stop and Play")
			}
			if got := mixer.Len(); got != 1 {
				t.Errorf("mixer.Len() after replay = %d, want 1", got)
			}
		})
	}
}

func TestBeepSink_SetVolume(t *testing.T) {
	sink := openTestSink(t, 8000, 8000, 1)

	if sink.volume.Silent || sink.volume.Volume != 0 {
		t.Errorf("volume 1: Silent = %v, Volume = %v, want false, 0", sink.volume.Silent, sink.volume.Volume)
	}

	sink.SetVolume(0.5)
	if sink.volume.Silent || sink.volume.Volume != -1 {
		t.Errorf("volume 0.5: Silent = %v, Volume = %v, want false, -1", sink.volume.Silent, sink.volume.Volume)
	}

	sink.SetVolume(0)
	if !sink.volume.Silent {
		t.Error("volume 0 should be silent")
	}

	sink.SetVolume(0.25)
	if sink.volume.Silent || sink.volume.Volume != -2 {
		t.Errorf("volume 0.25: Silent = %v, Volume = %v, want false, -2", sink.volume.Silent, sink.volume.Volume)
	}
}

func TestBeepSink_CloseLeavesMixer(t *testing.T) {
	sink := openTestSink(t, 8000, 8000, 1)

	var mixer beep.Mixer
	mixer.Add(sink.ctrl)
	sink.Play()
	drain(&mixer, 1)

	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	drain(&mixer, 1)
	if got := mixer.Len(); got != 0 {
		t.Errorf("mixer.Len() after Close = %d, want 0", got)
	}
}
