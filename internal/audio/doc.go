// Package audio plays the stems of a song as one synchronized unit.
//
// # Transport
//
// The Transport owns one playback sink per track and a wall-clock anchor that
// defines the song position:
//
//	t := audio.NewTransport(backend)
//	err := t.LoadTracks(ctx, []audio.TrackSpec{
//	    {ID: "inst", Source: "instrumental.ogg", Volume: 0.8},
//	    {ID: "vox", Source: "vocals.mp3", Volume: 1},
//	}, songDir)
//
//	t.Play()
//	t.Seek(90 * time.Second) // pauses; the reload happens on the next Play
//	t.Play()
//
// Every sink is started and paused inside one Backend.Sync call, so all
// tracks begin on the same output buffer. After that the tracks are not
// re-aligned: position is derived from the wall clock, which is accurate to
// well under a lyric line but is not sample accurate. A backend with a shared
// device sample counter would be needed for that.
//
// # Seeking
//
// Sinks cannot seek. A seek records a pending target and the next Play
// reopens every source, skips forward to the target and replaces the sinks.
// Scrubbing while paused therefore costs nothing until playback resumes.
//
// # Sampling
//
// Snapshot returns position, duration and play state read under one lock.
// Rendering code should use it instead of calling the individual getters.
//
// # Backends
//
// Backend abstracts decoding and output. BeepBackend decodes MP3, WAV, FLAC
// and Ogg Vorbis with beep and plays through the default audio device.
package audio
