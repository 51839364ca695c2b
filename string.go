// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

import "github.com/creachadair/specjson/internal/escape"

type stringState byte

const (
	strNormal  stringState = iota // plain text
	strEscaped                    // after a backslash
	strUnicode                    // reading the digits of \uXXXX
)

// StringParser parses JSON strings. Escape sequences are decoded as they
// are read; a \u escape is stored as the UTF-8 encoding of its code unit, and
// surrogate pairs are not combined.
type StringParser struct {
	active   bool
	state    stringState
	buffered bool // the decoded text so far is in the Pool accumulator
	code     int  // partial \u code unit
	digits   int  // number of \u digits read
	value    string
}

// Parse implements part of the Parser interface.
func (s *StringParser) Parse(data []byte, p *Pool) (int, error) {
	pos, text, err := s.scan(data, p)
	if err == nil && pos != More {
		s.value = string(text)
		p.clear()
	}
	return pos, err
}

// scan consumes the string at the front of data. When the string is
// complete, scan returns its decoded text, which is either a slice of data or
// the contents of the accumulator. The caller must use or copy the text
// before the Pool is used again.
func (s *StringParser) scan(data []byte, p *Pool) (int, []byte, error) {
	pos := 0
	if !s.active {
		if len(data) == 0 {
			return More, nil, nil
		} else if data[0] != '"' {
			return 0, nil, ErrStringStart
		}
		s.active, s.state, s.buffered = true, strNormal, false
		p.clear()
		pos = 1
	}

	start := pos // beginning of the current run of plain text
	for pos < len(data) {
		b := data[pos]
		switch s.state {
		case strNormal:
			switch {
			case b == '"':
				text := data[start:pos]
				if s.buffered {
					p.buf = append(p.buf, text...)
					text = p.buf
				}
				s.active = false
				return pos + 1, text, nil
			case b == '\\':
				p.buf = append(p.buf, data[start:pos]...)
				s.buffered = true
				s.state = strEscaped
			case b < ' ':
				return pos, nil, ErrStringInvalidCharacter
			}

		case strEscaped:
			if b == 'u' {
				s.state, s.code, s.digits = strUnicode, 0, 0
			} else if c, ok := escape.Single(b); ok {
				p.buf = append(p.buf, c)
				s.state = strNormal
				start = pos + 1
			} else {
				return pos, nil, ErrStringEscape
			}

		case strUnicode:
			d, ok := escape.HexDigit(b)
			if !ok {
				return pos, nil, ErrStringHexDigits
			}
			s.code = s.code<<4 | d
			if s.digits++; s.digits == 4 {
				p.buf = escape.AppendCode(p.buf, s.code)
				s.state = strNormal
				start = pos + 1
			}
		}
		pos++
	}

	// The input ended inside the string: save any plain text seen so far.
	if s.state == strNormal {
		p.buf = append(p.buf, data[start:]...)
		s.buffered = true
	}
	return More, nil, nil
}

// Finished implements part of the Parser interface.
func (s *StringParser) Finished() bool { return !s.active }

// Swap implements part of the ValueParser interface.
func (s *StringParser) Swap(dst *string) error {
	if s.active {
		return ErrNotFinished
	}
	*dst, s.value = s.value, ""
	return nil
}
