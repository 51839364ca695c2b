// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

import (
	"errors"
	"fmt"
	"io"
)

// DefaultBlockSize is the size of the blocks a Stream reads from its input,
// if not otherwise specified.
const DefaultBlockSize = 64 << 10

// Stream reads a sequence of JSON values from an io.Reader in fixed-size
// blocks, and delivers the blocks to parsers. A Stream has its own Pool,
// which its parsers share.
type Stream struct {
	r    io.Reader
	pool Pool
	buf  []byte
	pos  int // offset of the next unconsumed byte in buf
	end  int // offset of the end of valid data in buf
	err  error

	off int64   // input offset of buf[pos]
	loc LineCol // location of buf[pos]
}

// NewStream constructs a new Stream that consumes input from r in blocks of
// DefaultBlockSize bytes.
func NewStream(r io.Reader) *Stream { return NewStreamSize(r, DefaultBlockSize) }

// NewStreamSize constructs a new Stream that consumes input from r in blocks
// of the given size. If size <= 0, DefaultBlockSize is used.
func NewStreamSize(r io.Reader, size int) *Stream {
	if size <= 0 {
		size = DefaultBlockSize
	}
	return &Stream{r: r, buf: make([]byte, size), loc: LineCol{Line: 1}}
}

// Pool returns the parse context shared by parsers on s.
func (s *Stream) Pool() *Pool { return &s.pool }

// Offset returns the input offset of the next unconsumed byte.
func (s *Stream) Offset() int64 { return s.off }

// Parse parses values from the input stream with p until the input is
// exhausted or an error occurs. After each value is complete, Parse calls f,
// which typically swaps the value out of p. If f reports an error, parsing
// stops and that error is returned to the caller. In case of a syntax error,
// the returned error has type [*SyntaxError].
func (s *Stream) Parse(p Parser, f func() error) error {
	for {
		if err := s.ParseOne(p); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := f(); err != nil {
			return err
		}
	}
}

// ParseOne parses a single value from the input stream with p. Whitespace
// before the value is skipped, and any input following the value is kept for
// the next call. If no further value is available from the input, ParseOne
// returns io.EOF. In case of a syntax error, the returned error has type
// [*SyntaxError].
func (s *Stream) ParseOne(p Parser) error {
	if err := s.skipSpace(); err != nil {
		return err
	}
	for {
		data := s.buf[s.pos:s.end]
		n, err := p.Parse(data, &s.pool)
		if err != nil {
			return s.syntaxError(err, n)
		} else if n != More {
			s.consume(n)
			return nil
		}
		s.consume(len(data))

		if err := s.fill(); err == io.EOF {
			return s.endOfInput(p)
		} else if err != nil {
			return s.syntaxError(err, 0)
		}
	}
}

// endOfInput handles the end of the input in the middle of a value.
func (s *Stream) endOfInput(p Parser) error {
	if t, ok := p.(Terminator); ok {
		if err := t.EndOfInput(&s.pool); err != nil {
			return s.syntaxError(err, 0)
		}
		if p.Finished() {
			return nil
		}
	}
	return s.syntaxError(io.ErrUnexpectedEOF, 0)
}

// skipSpace discards whitespace up to the next value. It reports io.EOF if
// the input ends first.
func (s *Stream) skipSpace() error {
	for {
		pos := skipSpace(s.buf[:s.end], s.pos)
		s.consume(pos - s.pos)
		if s.pos < s.end {
			return nil
		}
		if err := s.fill(); err == io.EOF {
			return io.EOF
		} else if err != nil {
			return s.syntaxError(err, 0)
		}
	}
}

// fill reads the next block of input. It requires that all the data in the
// buffer have been consumed.
func (s *Stream) fill() error {
	s.pos, s.end = 0, 0
	for s.err == nil {
		n, err := s.r.Read(s.buf)
		s.end, s.err = n, err
		if n > 0 {
			return nil
		}
	}
	if errors.Is(s.err, io.EOF) {
		return io.EOF
	}
	return fmt.Errorf("read input: %w", s.err)
}

// consume advances the read position by n bytes.
func (s *Stream) consume(n int) {
	s.loc.advance(s.buf[s.pos : s.pos+n])
	s.pos += n
	s.off += int64(n)
}

// syntaxError returns a *SyntaxError for err at offset pos from the current
// read position.
func (s *Stream) syntaxError(err error, pos int) *SyntaxError {
	data := s.buf[s.pos:s.end]
	pos = max(0, min(pos, len(data)))
	loc := s.loc
	loc.advance(data[:pos])
	return &SyntaxError{
		Location: loc,
		Offset:   s.off + int64(pos),
		Context:  contextAround(s.buf[:s.end], s.pos+pos),
		err:      err,
	}
}
