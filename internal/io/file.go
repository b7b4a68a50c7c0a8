package ioutils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadTextFile reads a text file and returns its content as UTF-8.
//
// A UTF-8 or UTF-16 byte order mark selects the encoding and is stripped.
// Without a BOM the content is taken as UTF-8. Windows line endings are
// normalized to "\n".
//
// Example:
//
//	content, err := ReadTextFile("/songs/abc/song.lrx")
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	decoded = bytes.ReplaceAll(decoded, []byte("\r\n"), []byte("\n"))

	return string(decoded), nil
}

// ResolvePath returns source unchanged if it is absolute or baseDir is empty,
// and joins it onto baseDir otherwise.
//
// Example:
//
//	ResolvePath("/songs/abc", "vocals.mp3")  // "/songs/abc/vocals.mp3"
//	ResolvePath("/songs/abc", "/tmp/x.mp3")  // "/tmp/x.mp3"
func ResolvePath(baseDir, source string) string {
	if filepath.IsAbs(source) || baseDir == "" {
		return source
	}
	return filepath.Join(baseDir, source)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
