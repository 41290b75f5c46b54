package quotes

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrIO indicates the quote source could not be read.
	ErrIO = errors.New("i/o error")

	// ErrParse indicates the quote source is malformed or in an unsupported format.
	ErrParse = errors.New("parse error")

	// ErrNoQuotesAvailable covers both an empty collection and one whose
	// quotes have all been handed out by SelectRandom.
	ErrNoQuotesAvailable = errors.New("no quotes available")
)

// IOError wraps a filesystem failure while reading a quote source.
type IOError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error reading %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// ParseError describes malformed quote content.
type ParseError struct {
	Path string
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("parse error in %s: %s", e.Path, msg)
	}
	return "parse error: " + msg
}

// Unwrap exposes ErrParse and, when present, the decoder's error.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
