package config

import (
	"io"
	"os"
	"path/filepath"

	ioutils "github.com/kvmet/tanukioke/internal/io"
	log "github.com/sirupsen/logrus"
)

// SetupLogging points the standard logrus logger at LogFile with the
// configured level and format. The terminal belongs to the player, so logs
// never go to stdout. An empty LogFile discards all output.
//
// The returned closer closes the log file.
func (s *Settings) SetupLogging() (io.Closer, error) {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if s.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	if s.LogFile == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	if err := ioutils.EnsureDir(filepath.Dir(s.LogFile)); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}
