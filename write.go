// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

import (
	"io"
	"math"
	"strconv"

	"github.com/creachadair/specjson/internal/escape"
	"github.com/valyala/bytebufferpool"
	"go4.org/mem"
	"golang.org/x/exp/constraints"
)

// A WriteFunc writes the JSON encoding of a value of type T to w. The buf
// argument is scratch space the function may use; it returns the scratch
// buffer, possibly grown, for reuse by later calls.
type WriteFunc[T any] func(w io.Writer, v T, buf []byte) ([]byte, error)

func flush(w io.Writer, buf []byte) ([]byte, error) {
	_, err := w.Write(buf)
	return buf, err
}

// WriteBool writes the JSON encoding of v to w.
func WriteBool(w io.Writer, v bool, buf []byte) ([]byte, error) {
	return flush(w, strconv.AppendBool(buf[:0], v))
}

// WriteInt writes the JSON encoding of v to w.
func WriteInt[T constraints.Signed](w io.Writer, v T, buf []byte) ([]byte, error) {
	return flush(w, strconv.AppendInt(buf[:0], int64(v), 10))
}

// WriteUint writes the JSON encoding of v to w.
func WriteUint[T constraints.Unsigned](w io.Writer, v T, buf []byte) ([]byte, error) {
	return flush(w, strconv.AppendUint(buf[:0], uint64(v), 10))
}

// WriteFloat writes the JSON encoding of v to w, using the shortest text that
// parses back to v at its own precision. It reports ErrNotFinite without
// writing anything if v is an infinity or NaN.
func WriteFloat[T constraints.Float](w io.Writer, v T, buf []byte) ([]byte, error) {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return buf, ErrNotFinite
	}
	bits := 64
	if _, ok := any(v).(float32); ok {
		bits = 32
	}
	return flush(w, strconv.AppendFloat(buf[:0], f, 'g', -1, bits))
}

// WriteString writes the JSON encoding of v to w. Quotation marks,
// backslashes, and control characters are escaped.
func WriteString(w io.Writer, v string, buf []byte) ([]byte, error) {
	return flush(w, escape.AppendQuote(buf[:0], mem.S(v)))
}

// WriteArray writes the elements of vs to w as a JSON array, using write for
// each element.
func WriteArray[T any](w io.Writer, vs []T, buf []byte, write WriteFunc[T]) ([]byte, error) {
	var err error
	if _, err = io.WriteString(w, "["); err != nil {
		return buf, err
	}
	for i, v := range vs {
		if i > 0 {
			if _, err = io.WriteString(w, ","); err != nil {
				return buf, err
			}
		}
		if buf, err = write(w, v, buf); err != nil {
			return buf, err
		}
	}
	_, err = io.WriteString(w, "]")
	return buf, err
}

// WriteNullable writes null to w if v == nil, and otherwise writes *v using
// write.
func WriteNullable[T any](w io.Writer, v *T, buf []byte, write WriteFunc[T]) ([]byte, error) {
	if v == nil {
		_, err := io.WriteString(w, "null")
		return buf, err
	}
	return write(w, *v, buf)
}

// Marshal returns the JSON text written by write for v. It is a convenience
// for writers whose output is wanted in memory.
func Marshal[T any](v T, write WriteFunc[T]) ([]byte, error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	var scratch [64]byte
	if _, err := write(bb, v, scratch[:0]); err != nil {
		return nil, err
	}
	return append([]byte(nil), bb.B...), nil
}
