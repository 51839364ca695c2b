// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends the JSON string encoding of src to buf, including the
// enclosing double quotation marks. Control characters are escaped, along
// with the quotation mark, the backslash, and the Unicode line and paragraph
// separators. Invalid UTF-8 is copied through unchanged.
func AppendQuote(buf []byte, src mem.RO) []byte {
	buf = append(buf, '"')
	for src.Len() != 0 {
		// Copy runs of bytes that need no escaping in one step.
		i := 0
		for i < src.Len() {
			b := src.At(i)
			if b < ' ' || b == '"' || b == '\\' || b == 0xe2 {
				break
			}
			i++
		}
		buf = mem.Append(buf, src.SliceTo(i))
		src = src.SliceFrom(i)
		if src.Len() == 0 {
			break
		}

		b := src.At(0)
		switch {
		case b < ' ':
			if e := controlEsc[b]; e != 0 {
				buf = append(buf, '\\', e)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
			}
			src = src.SliceFrom(1)
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
			src = src.SliceFrom(1)
		default: // 0xe2 leads the encodings of U+2028 and U+2029
			r, n := mem.DecodeRune(src)
			switch r {
			case '\u2028':
				buf = append(buf, `\u2028`...)
			case '\u2029':
				buf = append(buf, `\u2029`...)
			default:
				buf = mem.Append(buf, src.SliceTo(n))
			}
			src = src.SliceFrom(n)
		}
	}
	return append(buf, '"')
}
