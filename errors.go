// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

import (
	"bytes"
	"errors"
	"fmt"
)

// Errors reported by the parsers and writers in this package. A parser that
// reports one of these errors has stopped and cannot continue.
var (
	ErrNotFinished = errors.New("item not finished")

	ErrArrayStart       = errors.New("expected '['")
	ErrArraySeparator   = errors.New("array, expected ',' or ']'")
	ErrSubContainerSize = errors.New("array, sub-container size varies")

	ErrObjectStart         = errors.New("expected '{'")
	ErrKeySeparator        = errors.New("object, expected ':'")
	ErrValueSeparator      = errors.New("object, expected ',' or '}'")
	ErrInvalidKey          = errors.New("object, unexpected key")
	ErrDuplicateKey        = errors.New("object, duplicate key")
	ErrRequiredKeyNotGiven = errors.New("object, required key not given")

	ErrInvalidBool       = errors.New("invalid bool")
	ErrInvalidInt        = errors.New("invalid int")
	ErrIntOutsideRange   = errors.New("int outside range")
	ErrInvalidFloat      = errors.New("invalid float")
	ErrInvalidDouble     = errors.New("invalid double")
	ErrFloatOutsideRange = errors.New("float outside range")

	ErrStringStart            = errors.New("expected '\"'")
	ErrStringEscape           = errors.New("string, invalid escape")
	ErrStringHexDigits        = errors.New("string, expected hex digit")
	ErrStringInvalidCharacter = errors.New("string, invalid character")

	ErrNotFinite = errors.New("number not finite")
)

// contextBytes is the number of input bytes reported on each side of the
// position of a SyntaxError.
const contextBytes = 20

// SyntaxError is the concrete type of errors reported by a Stream, and of the
// errors constructed by WithContext. It wraps one of the errors declared by
// this package, or an I/O error.
type SyntaxError struct {
	Location LineCol // where the error occurred
	Offset   int64   // byte offset of the error from the start of input
	Context  string  // input text surrounding the error, if available

	err error
}

// WithContext returns a *SyntaxError for err reported at offset pos of data.
// The location is computed relative to the start of data.
func WithContext(err error, data []byte, pos int) *SyntaxError {
	pos = max(0, min(pos, len(data)))
	var loc LineCol
	loc.advance(data[:pos])
	return &SyntaxError{
		Location: loc,
		Offset:   int64(pos),
		Context:  contextAround(data, pos),
		err:      err,
	}
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Context == "" {
		return fmt.Sprintf("at %s: %v", s.Location, s.err)
	}
	return fmt.Sprintf("at %s: %v, near %q", s.Location, s.err, s.Context)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// contextAround returns up to contextBytes of data on either side of pos,
// with line breaks folded to spaces.
func contextAround(data []byte, pos int) string {
	lo := max(0, pos-contextBytes)
	hi := min(len(data), pos+contextBytes)
	if lo >= hi {
		return ""
	}
	return string(bytes.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, data[lo:hi]))
}
