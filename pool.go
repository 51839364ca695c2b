// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

// A Pool is the shared context for one parse. It holds an accumulator for
// scalar text that spans chunk boundaries, and a single parser for each
// scalar kind. Composite parsers reach the scalar parsers through the kind
// functions (Bool, Int32, String, and so on), so that any number of arrays
// and objects share one parser and one value slot per kind.
//
// At most one scalar value is in progress in a Pool at a time. A Pool must
// not be shared by concurrent parses. The zero value is ready for use.
type Pool struct {
	buf []byte // accumulated text of the scalar in progress

	bools    BoolParser
	int8s    IntParser[int8]
	int16s   IntParser[int16]
	int32s   IntParser[int32]
	int64s   IntParser[int64]
	uint8s   UintParser[uint8]
	uint16s  UintParser[uint16]
	uint32s  UintParser[uint32]
	uint64s  UintParser[uint64]
	float32s FloatParser[float32]
	float64s FloatParser[float64]
	strings  StringParser
}

// NewPool returns a new empty Pool.
func NewPool() *Pool { return new(Pool) }

// Reset discards any partial state held by p, including the accumulator and
// any scalar value in progress. Composite parsers that were in the middle of
// a value when Reset is called must be discarded.
func (p *Pool) Reset() {
	buf := p.buf[:0]
	*p = Pool{buf: buf}
}

// clear empties the accumulator.
func (p *Pool) clear() { p.buf = p.buf[:0] }

// Bool returns the pooled parser for Boolean values.
func Bool(p *Pool) ValueParser[bool] { return &p.bools }

// Int8 returns the pooled parser for int8 values.
func Int8(p *Pool) ValueParser[int8] { return &p.int8s }

// Int16 returns the pooled parser for int16 values.
func Int16(p *Pool) ValueParser[int16] { return &p.int16s }

// Int32 returns the pooled parser for int32 values.
func Int32(p *Pool) ValueParser[int32] { return &p.int32s }

// Int64 returns the pooled parser for int64 values.
func Int64(p *Pool) ValueParser[int64] { return &p.int64s }

// Uint8 returns the pooled parser for uint8 values.
func Uint8(p *Pool) ValueParser[uint8] { return &p.uint8s }

// Uint16 returns the pooled parser for uint16 values.
func Uint16(p *Pool) ValueParser[uint16] { return &p.uint16s }

// Uint32 returns the pooled parser for uint32 values.
func Uint32(p *Pool) ValueParser[uint32] { return &p.uint32s }

// Uint64 returns the pooled parser for uint64 values.
func Uint64(p *Pool) ValueParser[uint64] { return &p.uint64s }

// Float32 returns the pooled parser for float32 values.
func Float32(p *Pool) ValueParser[float32] { return &p.float32s }

// Float64 returns the pooled parser for float64 values.
func Float64(p *Pool) ValueParser[float64] { return &p.float64s }

// String returns the pooled parser for string values.
func String(p *Pool) ValueParser[string] { return &p.strings }
