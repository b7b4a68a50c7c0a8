package lrx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ioutils "github.com/kvmet/tanukioke/internal/io"
)

// KeyOffset is the LRC metadata key holding a global timing offset in
// milliseconds.
const KeyOffset = "offset"

// ReadFile reads and parses an LRX file. The file may be UTF-8 or, with a
// byte order mark, UTF-16.
func ReadFile(path string) (*Document, error) {
	content, err := ioutils.ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Offset returns the [offset:±ms] metadata as a duration. A positive offset
// shows lyrics earlier. Missing or malformed values are zero.
func (d *Document) Offset() time.Duration {
	raw := strings.TrimSpace(d.Metadata[KeyOffset])
	if raw == "" {
		return 0
	}
	ms, err := strconv.ParseInt(strings.TrimPrefix(raw, "+"), 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
