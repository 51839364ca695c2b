// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/specjson/internal/escape"
	"go4.org/mem"
)

func TestAppendQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"a b c", `"a b c"`},
		{"\"\\", `"\"\\"`},
		{"\x01\x1f", `"\u0001\u001f"`},
		{"\t\n", `"\t\n"`},
		{"€\u2028x", "\"€\\u2028x\""},
		{"\xe2", "\"\xe2\""},
	}
	for _, tc := range tests {
		got := string(escape.AppendQuote([]byte("prefix:"), mem.S(tc.input)))
		if want := "prefix:" + tc.want; got != want {
			t.Errorf("AppendQuote(%q): got %#q, want %#q", tc.input, got, want)
		}
	}
}

func TestAppendCode(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0x00, "\x00"},
		{0x41, "A"},
		{0x7f, "\x7f"},
		{0x80, "\u0080"},
		{0x7ff, "\u07ff"},
		{0x800, "\u0800"},
		{0xffff, "\uffff"},
		{0xd800, "\xed\xa0\x80"},
	}
	for _, tc := range tests {
		if got := string(escape.AppendCode(nil, tc.code)); got != tc.want {
			t.Errorf("AppendCode(%04x): got %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestSingle(t *testing.T) {
	for in, want := range map[byte]byte{
		'"': '"', '\\': '\\', '/': '/', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
	} {
		if got, ok := escape.Single(in); !ok || got != want {
			t.Errorf("Single(%q): got (%q, %v), want (%q, true)", in, got, ok, want)
		}
	}
	for _, in := range []byte("uxa0 ") {
		if got, ok := escape.Single(in); ok {
			t.Errorf("Single(%q): got (%q, true), want false", in, got)
		}
	}
}

func TestHexDigit(t *testing.T) {
	for i, c := range []byte("0123456789abcdef") {
		if v, ok := escape.HexDigit(c); !ok || v != i {
			t.Errorf("HexDigit(%q): got (%d, %v), want (%d, true)", c, v, ok, i)
		}
		if c >= 'a' {
			if v, ok := escape.HexDigit(c - 'a' + 'A'); !ok || v != i {
				t.Errorf("HexDigit(%q): got (%d, %v), want (%d, true)", c-'a'+'A', v, ok, i)
			}
		}
	}
	for _, c := range []byte("gG/:@` ") {
		if _, ok := escape.HexDigit(c); ok {
			t.Errorf("HexDigit(%q): got true, want false", c)
		}
	}
}
