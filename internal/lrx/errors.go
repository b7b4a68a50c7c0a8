package lrx

import (
	"errors"
	"fmt"
)

// Failure kinds reported by Parse. A *ParseError wraps exactly one of these,
// so callers can test with errors.Is.
var (
	ErrNestedBrackets     = errors.New("nested brackets not allowed")
	ErrUnmatchedBracket   = errors.New("unmatched closing bracket")
	ErrUnclosedBracket    = errors.New("unclosed bracket")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidTag         = errors.New("invalid tag")
	ErrInvalidDotNotation = errors.New("invalid dot notation")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownProperty    = errors.New("unknown property")
	ErrInvalidVolume      = errors.New("invalid volume")
	ErrInvalidColor       = errors.New("invalid color")
)

// ParseError reports a malformed line in an LRX document.
type ParseError struct {
	// Line is the 1-based line number in the source text.
	Line int

	// Text is the offending line, trimmed.
	Text string

	// Err is the underlying failure, one of the Err* values above
	// (possibly wrapped with extra detail).
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
