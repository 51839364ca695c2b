// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

// BoolParser parses the literals true and false. The bytes of a literal
// matched so far are kept in the Pool accumulator, so a literal may be split
// at any point. Only the literal itself is checked; the byte following it is
// left to the caller.
type BoolParser struct {
	active bool
	value  bool
}

// Parse implements part of the Parser interface.
func (b *BoolParser) Parse(data []byte, p *Pool) (int, error) {
	pos := 0
	if !b.active {
		if len(data) == 0 {
			return More, nil
		}
		switch data[0] {
		case 't':
			b.value = true
		case 'f':
			b.value = false
		default:
			return 0, ErrInvalidBool
		}
		p.buf = append(p.buf[:0], data[0])
		b.active = true
		pos = 1
	}

	want := "false"
	if b.value {
		want = "true"
	}
	for len(p.buf) < len(want) {
		if pos == len(data) {
			return More, nil
		}
		if data[pos] != want[len(p.buf)] {
			return pos, ErrInvalidBool
		}
		p.buf = append(p.buf, data[pos])
		pos++
	}
	p.clear()
	b.active = false
	return pos, nil
}

// Finished implements part of the Parser interface.
func (b *BoolParser) Finished() bool { return !b.active }

// Swap implements part of the ValueParser interface.
func (b *BoolParser) Swap(dst *bool) error {
	if b.active {
		return ErrNotFinished
	}
	*dst, b.value = b.value, false
	return nil
}
