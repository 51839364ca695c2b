// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the escape sequences of JSON strings.
package escape

// Single returns the byte denoted by the single-character escape \c, and
// reports whether c names such an escape. The Unicode escape \u is not a
// single-character escape.
func Single(c byte) (byte, bool) {
	switch c {
	case '"', '\\', '/':
		return c, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// HexDigit returns the value of the hexadecimal digit b, and reports whether
// b is a hexadecimal digit.
func HexDigit(b byte) (int, bool) {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0'), true
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10, true
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}

// AppendCode appends the UTF-8 encoding of the 16-bit code unit v to buf.
// Code units in the surrogate range are encoded as they stand and are not
// combined into pairs.
func AppendCode(buf []byte, v int) []byte {
	switch {
	case v < 0x80:
		return append(buf, byte(v))
	case v < 0x800:
		return append(buf, 0xc0|byte(v>>6), 0x80|byte(v&0x3f))
	default:
		return append(buf, 0xe0|byte(v>>12), 0x80|byte(v>>6&0x3f), 0x80|byte(v&0x3f))
	}
}
