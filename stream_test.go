// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/specjson"
	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   \n\t ", nil},
		{`{"name":"a"}`, []string{"a"}},
		{`{"name":"a"}{"name":"b"}`, []string{"a", "b"}},
		{"\n{\"name\": \"a\"}\n\n {\"name\":\"b\", \"age\": 2}\r\n{ \"name\" : \"c\" }  ", []string{"a", "b", "c"}},
	}
	for _, tc := range tests {
		for _, size := range []int{1, 2, 7, 0} {
			s := specjson.NewStreamSize(strings.NewReader(tc.input), size)
			obj := newPersonParser()

			var got []string
			if err := s.Parse(obj, func() error {
				var p person
				if err := obj.Swap(&p); err != nil {
					return err
				}
				got = append(got, p.Name.Value)
				return nil
			}); err != nil {
				t.Errorf("Parse %q (size %d): unexpected error: %v", tc.input, size, err)
				continue
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse %q (size %d): wrong names (-want, +got):\n%s", tc.input, size, diff)
			}
			if s.Offset() != int64(len(tc.input)) {
				t.Errorf("Parse %q (size %d): offset is %d, want %d", tc.input, size, s.Offset(), len(tc.input))
			}
		}
	}
}

func TestStreamNumbers(t *testing.T) {
	// A number at the very end of the input is completed by the end of input.
	const input = "1 -2\n30"
	for _, size := range []int{1, 3, 64} {
		s := specjson.NewStreamSize(strings.NewReader(input), size)
		p := specjson.Int64(s.Pool())

		var got []int64
		for {
			err := s.ParseOne(p)
			if err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("ParseOne (size %d): unexpected error: %v", size, err)
			}
			var v int64
			if err := p.Swap(&v); err != nil {
				t.Fatalf("Swap: unexpected error: %v", err)
			}
			got = append(got, v)
		}
		if diff := cmp.Diff([]int64{1, -2, 30}, got); diff != "" {
			t.Errorf("ParseOne (size %d): wrong values (-want, +got):\n%s", size, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
		wantLoc specjson.LineCol
	}{
		{`{"name":"a"`, io.ErrUnexpectedEOF, specjson.LineCol{Line: 1, Column: 11}},
		{"{\"name\":\"a\"}\n{\"nope\":1}", specjson.ErrInvalidKey, specjson.LineCol{Line: 2, Column: 1}},
		{"{\"name\":\"a\"}\n\n  [", specjson.ErrObjectStart, specjson.LineCol{Line: 3, Column: 2}},
		{"{\"name\":\n\"a\", \"age\": -1}", specjson.ErrIntOutsideRange, specjson.LineCol{Line: 2, Column: 12}},
	}
	for _, tc := range tests {
		s := specjson.NewStream(strings.NewReader(tc.input))
		obj := newPersonParser()
		err := s.Parse(obj, func() error { return nil })

		var serr *specjson.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %q: got %v (%[2]T), want *SyntaxError", tc.input, err)
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("Parse %q: got %v, want %v", tc.input, err, tc.wantErr)
		}
		if serr.Location != tc.wantLoc {
			t.Errorf("Parse %q: error at %v, want %v", tc.input, serr.Location, tc.wantLoc)
		}
	}
}

func TestStreamReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader(`{"name":`), iotest.ErrReader(boom))
	s := specjson.NewStreamSize(r, 4)
	err := s.ParseOne(newPersonParser())
	if !errors.Is(err, boom) {
		t.Errorf("ParseOne: got %v, want %v", err, boom)
	}
}

func TestStreamCallbackError(t *testing.T) {
	stop := errors.New("stop")
	s := specjson.NewStream(strings.NewReader(`{"name":"a"} {"name":"b"}`))
	n := 0
	err := s.Parse(newPersonParser(), func() error { n++; return stop })
	if err != stop {
		t.Errorf("Parse: got %v, want %v", err, stop)
	}
	if n != 1 {
		t.Errorf("Parse: callback ran %d times, want 1", n)
	}
}

func TestWithContext(t *testing.T) {
	data := []byte("line one\nxx trux yy")
	err := specjson.WithContext(specjson.ErrInvalidBool, data, 14)
	if err.Location != (specjson.LineCol{Line: 2, Column: 5}) {
		t.Errorf("Location: got %v, want 2:5", err.Location)
	}
	if err.Offset != 14 {
		t.Errorf("Offset: got %d, want 14", err.Offset)
	}
	if want := "line one xx trux yy"; err.Context != want {
		t.Errorf("Context: got %q, want %q", err.Context, want)
	}
	if !errors.Is(err, specjson.ErrInvalidBool) {
		t.Errorf("WithContext error does not wrap %v", specjson.ErrInvalidBool)
	}
	const wantMsg = `at 2:5: invalid bool, near "line one xx trux yy"`
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error: got %q, want %q", got, wantMsg)
	}

	// The context is limited on both sides of the error.
	long := []byte(strings.Repeat("a", 50) + "!" + strings.Repeat("b", 50))
	lerr := specjson.WithContext(specjson.ErrValueSeparator, long, 50)
	if want := strings.Repeat("a", 20) + "!" + strings.Repeat("b", 19); lerr.Context != want {
		t.Errorf("Context: got %q, want %q", lerr.Context, want)
	}
}
