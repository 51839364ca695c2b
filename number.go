// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

import (
	"errors"
	"strconv"

	"go4.org/mem"
	"golang.org/x/exp/constraints"
)

// A number holds the state shared by the numeric parsers. The text of a
// number is the longest run of eligible bytes. When the run reaches the end
// of a chunk, it is copied to the Pool accumulator and later chunks extend
// it, so a number parses the same way however its input is divided.
type number struct {
	active bool
}

// scan consumes the run of bytes in data that satisfy ok, and calls conv with
// the complete text once a byte outside the run is found. On success it
// returns the offset of that byte.
func (n *number) scan(data []byte, p *Pool, ok func(byte) bool, conv func(mem.RO) error, invalid error) (int, error) {
	end := 0
	for end < len(data) && ok(data[end]) {
		end++
	}
	if !n.active {
		if end == len(data) {
			if end > 0 {
				p.buf = append(p.buf[:0], data...)
				n.active = true
			}
			return More, nil
		} else if end == 0 {
			return 0, invalid
		}
		if err := conv(mem.B(data[:end])); err != nil {
			return 0, err
		}
		return end, nil
	}

	p.buf = append(p.buf, data[:end]...)
	if end == len(data) {
		return More, nil
	}
	err := conv(mem.B(p.buf))
	n.active = false
	p.clear()
	if err != nil {
		return end, err
	}
	return end, nil
}

// finish converts the text pending in the accumulator at end of input.
func (n *number) finish(p *Pool, conv func(mem.RO) error) error {
	if !n.active {
		return nil
	}
	err := conv(mem.B(p.buf))
	n.active = false
	p.clear()
	return err
}

func isIntByte(b byte) bool { return '0' <= b && b <= '9' || b == '-' || b == '+' }

func isFloatByte(b byte) bool { return isIntByte(b) || b == '.' || b == 'e' || b == 'E' }

// isWordByte reports whether b may continue an identifier, which a number
// must not be immediately followed by.
func isWordByte(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || b == '_'
}

// numError maps a conversion error to the corresponding package error.
func numError(err, invalid, outOfRange error) error {
	if errors.Is(err, strconv.ErrRange) {
		return outOfRange
	}
	return invalid
}

// IntParser parses signed integers of type T.
type IntParser[T constraints.Signed] struct {
	number
	value T
}

// Parse implements part of the Parser interface.
func (ip *IntParser[T]) Parse(data []byte, p *Pool) (int, error) {
	return ip.scan(data, p, isIntByte, ip.convert, ErrInvalidInt)
}

// EndOfInput implements the Terminator interface.
func (ip *IntParser[T]) EndOfInput(p *Pool) error { return ip.finish(p, ip.convert) }

func (ip *IntParser[T]) convert(text mem.RO) error {
	v, err := mem.ParseInt(text, 10, 64)
	if err != nil {
		return numError(err, ErrInvalidInt, ErrIntOutsideRange)
	} else if int64(T(v)) != v {
		return ErrIntOutsideRange
	}
	ip.value = T(v)
	return nil
}

// Finished implements part of the Parser interface.
func (ip *IntParser[T]) Finished() bool { return !ip.active }

// Swap implements part of the ValueParser interface.
func (ip *IntParser[T]) Swap(dst *T) error {
	if ip.active {
		return ErrNotFinished
	}
	*dst, ip.value = ip.value, 0
	return nil
}

// UintParser parses unsigned integers of type T. A leading minus sign is out
// of range, even for zero.
type UintParser[T constraints.Unsigned] struct {
	number
	value T
}

// Parse implements part of the Parser interface.
func (up *UintParser[T]) Parse(data []byte, p *Pool) (int, error) {
	return up.scan(data, p, isIntByte, up.convert, ErrInvalidInt)
}

// EndOfInput implements the Terminator interface.
func (up *UintParser[T]) EndOfInput(p *Pool) error { return up.finish(p, up.convert) }

func (up *UintParser[T]) convert(text mem.RO) error {
	if text.Len() != 0 {
		switch text.At(0) {
		case '-':
			return ErrIntOutsideRange
		case '+':
			text = text.SliceFrom(1)
		}
	}
	v, err := mem.ParseUint(text, 10, 64)
	if err != nil {
		return numError(err, ErrInvalidInt, ErrIntOutsideRange)
	} else if uint64(T(v)) != v {
		return ErrIntOutsideRange
	}
	up.value = T(v)
	return nil
}

// Finished implements part of the Parser interface.
func (up *UintParser[T]) Finished() bool { return !up.active }

// Swap implements part of the ValueParser interface.
func (up *UintParser[T]) Swap(dst *T) error {
	if up.active {
		return ErrNotFinished
	}
	*dst, up.value = up.value, 0
	return nil
}

// FloatParser parses floating-point numbers of type T. The accepted text is
// decimal only: hexadecimal significands and the names of infinities and NaN
// are rejected.
type FloatParser[T constraints.Float] struct {
	number
	value T
}

// Parse implements part of the Parser interface.
func (fp *FloatParser[T]) Parse(data []byte, p *Pool) (int, error) {
	pos, err := fp.scan(data, p, isFloatByte, fp.convert, fp.invalid())
	if err == nil && pos >= 0 && pos < len(data) && isWordByte(data[pos]) {
		return pos, fp.invalid()
	}
	return pos, err
}

// EndOfInput implements the Terminator interface.
func (fp *FloatParser[T]) EndOfInput(p *Pool) error { return fp.finish(p, fp.convert) }

func (fp *FloatParser[T]) bits() int {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return 32
	}
	return 64
}

func (fp *FloatParser[T]) invalid() error {
	if fp.bits() == 32 {
		return ErrInvalidFloat
	}
	return ErrInvalidDouble
}

func (fp *FloatParser[T]) convert(text mem.RO) error {
	v, err := mem.ParseFloat(text, fp.bits())
	if err != nil {
		return numError(err, fp.invalid(), ErrFloatOutsideRange)
	}
	fp.value = T(v)
	return nil
}

// Finished implements part of the Parser interface.
func (fp *FloatParser[T]) Finished() bool { return !fp.active }

// Swap implements part of the ValueParser interface.
func (fp *FloatParser[T]) Swap(dst *T) error {
	if fp.active {
		return ErrNotFinished
	}
	*dst, fp.value = fp.value, 0
	return nil
}
