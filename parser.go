// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

// More is the position reported by a Parser that consumed all of its input
// without completing a value. The caller should deliver the next chunk of
// input to the same parser.
const More = -1

// A Parser consumes JSON text for a single value, possibly across several
// chunks of input.
//
// Parse consumes a prefix of data. If the value is complete, it returns the
// offset in data just past the end of the value; any remaining bytes belong
// to the caller. If data was exhausted before the value was complete, Parse
// returns More and saves its progress in the parser and in p; it does not
// retain data. If the input is invalid, Parse returns the offset of the
// offending byte and a non-nil error, and the parser must not be used again.
//
// Finished reports whether the parser is between values, that is, it has
// either not begun a value or has completed one.
type Parser interface {
	Parse(data []byte, p *Pool) (int, error)
	Finished() bool
}

// A ValueParser is a Parser that produces a value of type T.
//
// Swap moves the most recently completed value into *dst, and resets the
// parser storage for reuse. It reports ErrNotFinished if a value is in
// progress.
type ValueParser[T any] interface {
	Parser
	Swap(dst *T) error
}

// A Terminator is a Parser whose value may be completed by the end of the
// input rather than by a following byte. Numbers have this property: the
// text "25" is not known to be complete until a delimiter or the end of input
// is seen.
type Terminator interface {
	// EndOfInput completes a value pending at the end of the input.
	EndOfInput(p *Pool) error
}

// isSpace reports whether b is a JSON whitespace byte.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// skipSpace returns the offset of the first non-space byte of data at or
// after pos, or len(data) if there is none.
func skipSpace(data []byte, pos int) int {
	for pos < len(data) && isSpace(data[pos]) {
		pos++
	}
	return pos
}
