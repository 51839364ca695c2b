// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

import (
	"fmt"

	"github.com/creachadair/mds/mapset"
	"go4.org/mem"
)

// A Value is a member of an object record. Given reports whether the member
// was present in the input.
type Value[V any] struct {
	Value V
	Given bool
}

// A Field describes one member of an object whose values are recorded in a
// struct of type T. Fields are constructed by Required, Optional,
// RequiredContainer, and OptionalContainer.
type Field[T any] interface {
	// Key returns the member key, which is matched exactly.
	Key() string

	// Required reports whether the member must be present.
	Required() bool

	// Given reports whether a value for the member is being parsed, that is,
	// Scanner has been called and Swap has not.
	Given() bool

	// Scanner returns the parser for the member value and marks the field as
	// given.
	Scanner(p *Pool) Parser

	// Swap moves the completed value into its slot in *dst, marks the slot as
	// given, and clears the given flag of the field.
	Swap(dst *T, p *Pool) error
}

type fieldBase struct {
	key      string
	required bool
	given    bool
}

func (f *fieldBase) Key() string    { return f.key }
func (f *fieldBase) Required() bool { return f.required }
func (f *fieldBase) Given() bool    { return f.given }

// scalarField is a field whose value is parsed by a pooled scalar parser.
type scalarField[T, V any] struct {
	fieldBase
	kind func(*Pool) ValueParser[V]
	slot func(*T) *Value[V]
}

func (f *scalarField[T, V]) Scanner(p *Pool) Parser {
	f.given = true
	return f.kind(p)
}

func (f *scalarField[T, V]) Swap(dst *T, p *Pool) error {
	v := f.slot(dst)
	if err := f.kind(p).Swap(&v.Value); err != nil {
		return err
	}
	v.Given, f.given = true, false
	return nil
}

// containerField is a field whose value is parsed by a parser it owns.
type containerField[T, V any] struct {
	fieldBase
	parser ValueParser[V]
	slot   func(*T) *Value[V]
}

func (f *containerField[T, V]) Scanner(*Pool) Parser {
	f.given = true
	return f.parser
}

func (f *containerField[T, V]) Swap(dst *T, _ *Pool) error {
	v := f.slot(dst)
	if err := f.parser.Swap(&v.Value); err != nil {
		return err
	}
	v.Given, f.given = true, false
	return nil
}

// Required returns a field for a required member with the given key, whose
// value is a scalar parsed by the pooled parser selected by kind, and stored
// in the slot of T returned by slot. For example:
//
//	specjson.Required("name", specjson.String, func(r *Rec) *specjson.Value[string] {
//	   return &r.Name
//	})
func Required[T, V any](key string, kind func(*Pool) ValueParser[V], slot func(*T) *Value[V]) Field[T] {
	return &scalarField[T, V]{fieldBase: fieldBase{key: key, required: true}, kind: kind, slot: slot}
}

// Optional returns a field like Required, for a member that may be omitted.
func Optional[T, V any](key string, kind func(*Pool) ValueParser[V], slot func(*T) *Value[V]) Field[T] {
	return &scalarField[T, V]{fieldBase: fieldBase{key: key}, kind: kind, slot: slot}
}

// RequiredContainer returns a field for a required member with the given
// key, whose value is parsed by p, typically an array or object parser. The
// field takes ownership of p.
func RequiredContainer[T, V any](key string, p ValueParser[V], slot func(*T) *Value[V]) Field[T] {
	return &containerField[T, V]{fieldBase: fieldBase{key: key, required: true}, parser: p, slot: slot}
}

// OptionalContainer returns a field like RequiredContainer, for a member that
// may be omitted.
func OptionalContainer[T, V any](key string, p ValueParser[V], slot func(*T) *Value[V]) Field[T] {
	return &containerField[T, V]{fieldBase: fieldBase{key: key}, parser: p, slot: slot}
}

type objectState byte

const (
	objNotStarted objectState = iota
	objPreKey                 // whitespace before a key or '}'
	objExpectKey              // inside a key string
	objPreColon               // whitespace before ':'
	objExpectColon            // ':'
	objPreValue               // whitespace before a value
	objExpectValue            // inside a value
	objPreComma               // whitespace before ',' or '}'
	objExpectComma            // ',' or '}'
)

// noField marks the absence of an active field.
const noField = -1

// Object parses a JSON object whose members are described by a fixed set of
// fields, into a record of type T. A key that does not match any field is
// an error, as is a key that occurs more than once.
//
// When an object is complete, the parser is ready to parse another. Use Swap
// to retrieve each record.
type Object[T any] struct {
	fields []Field[T]
	given  []bool // per field, the member occurred in the current object
	state  objectState
	count  int // members seen in the current object

	activating int // field whose key was read, awaiting ':'
	active     int // field whose value is being parsed

	out T
}

// NewObject constructs an Object with the given fields. It panics if two
// fields have the same key.
func NewObject[T any](fields ...Field[T]) *Object[T] {
	keys := mapset.New[string]()
	for _, f := range fields {
		if keys.Has(f.Key()) {
			panic(fmt.Sprintf("duplicate object key %q", f.Key()))
		}
		keys.Add(f.Key())
	}
	return &Object[T]{
		fields:     fields,
		given:      make([]bool, len(fields)),
		activating: noField,
		active:     noField,
	}
}

// Parse implements part of the Parser interface.
func (o *Object[T]) Parse(data []byte, p *Pool) (int, error) {
	pos := 0
	for {
		switch o.state {
		case objNotStarted:
			if pos == len(data) {
				return More, nil
			} else if data[pos] != '{' {
				return pos, ErrObjectStart
			}
			o.begin()
			o.state = objPreKey
			pos++

		case objPreKey:
			if pos = skipSpace(data, pos); pos == len(data) {
				return More, nil
			}
			if data[pos] == '}' && o.count == 0 {
				return o.end(pos)
			}
			o.state = objExpectKey

		case objExpectKey:
			n, key, err := p.strings.scan(data[pos:], p)
			if err != nil {
				return pos + n, err
			} else if n == More {
				return More, nil
			}
			k := o.lookup(key)
			p.clear()
			if k == noField {
				return pos, ErrInvalidKey
			} else if o.given[k] {
				return pos, ErrDuplicateKey
			}
			o.activating = k
			o.state = objPreColon
			pos += n

		case objPreColon:
			if pos = skipSpace(data, pos); pos == len(data) {
				return More, nil
			}
			o.state = objExpectColon

		case objExpectColon:
			if pos == len(data) {
				return More, nil
			} else if data[pos] != ':' {
				return pos, ErrKeySeparator
			}
			o.state = objPreValue
			pos++

		case objPreValue:
			if pos = skipSpace(data, pos); pos == len(data) {
				return More, nil
			}
			o.active, o.activating = o.activating, noField
			o.state = objExpectValue

		case objExpectValue:
			f := o.fields[o.active]
			n, err := f.Scanner(p).Parse(data[pos:], p)
			if err != nil {
				return pos + n, err
			} else if n == More {
				return More, nil
			}
			pos += n
			if err := f.Swap(&o.out, p); err != nil {
				return pos, err
			}
			o.given[o.active] = true
			o.active = noField
			o.count++
			o.state = objPreComma

		case objPreComma:
			if pos = skipSpace(data, pos); pos == len(data) {
				return More, nil
			}
			o.state = objExpectComma

		case objExpectComma:
			if pos == len(data) {
				return More, nil
			}
			switch data[pos] {
			case '}':
				return o.end(pos)
			case ',':
				o.state = objPreKey
				pos++
			default:
				return pos, ErrValueSeparator
			}

		default:
			panic(fmt.Sprintf("invalid object state %d", o.state))
		}
	}
}

// begin resets the record and the per-field state for a new object.
func (o *Object[T]) begin() {
	var zero T
	o.out = zero
	clear(o.given)
	o.count = 0
	o.activating, o.active = noField, noField
}

// end completes the object whose closing brace is at data[pos].
func (o *Object[T]) end(pos int) (int, error) {
	for i, f := range o.fields {
		if f.Required() && !o.given[i] {
			return pos, fmt.Errorf("%w: %q", ErrRequiredKeyNotGiven, f.Key())
		}
	}
	o.state = objNotStarted
	o.activating, o.active = noField, noField
	return pos + 1, nil
}

// lookup returns the index of the field whose key matches text, or noField.
func (o *Object[T]) lookup(text []byte) int {
	m := mem.B(text)
	for i, f := range o.fields {
		if m.EqualString(f.Key()) {
			return i
		}
	}
	return noField
}

// Finished implements part of the Parser interface.
func (o *Object[T]) Finished() bool { return o.state == objNotStarted }

// Swap implements part of the ValueParser interface.
func (o *Object[T]) Swap(dst *T) error {
	if o.state != objNotStarted {
		return ErrNotFinished
	}
	var zero T
	*dst, o.out = o.out, zero
	return nil
}
