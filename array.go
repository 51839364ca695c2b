// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

// arrayState is the parse state shared by the array parsers.
type arrayState[T any] struct {
	began  bool // the opening bracket has been consumed
	expect bool // an element (rather than a separator) is next
	out    []T
}

// parse consumes array text from data, using elem to parse each element.
// Each completed element is appended to out, and check (if non-nil) is
// applied to the updated slice.
func (a *arrayState[T]) parse(data []byte, p *Pool, elem ValueParser[T], check func([]T) error) (int, error) {
	pos := 0
	if !a.began {
		if len(data) == 0 {
			return More, nil
		} else if data[0] != '[' {
			return 0, ErrArrayStart
		}
		a.began, a.expect = true, true
		a.out = a.out[:0]
		pos = 1
	} else if a.expect && !elem.Finished() {
		// Resume the element that was interrupted by the end of the last chunk.
		n, err := a.element(data, p, elem, check)
		if n == More || err != nil {
			return n, err
		}
		pos = n
	}

	for {
		pos = skipSpace(data, pos)
		if pos == len(data) {
			return More, nil
		}
		if a.expect {
			switch data[pos] {
			case ']':
				if len(a.out) != 0 {
					return pos, ErrArraySeparator // trailing comma
				}
				a.began = false
				return pos + 1, nil
			case ',':
				return pos, ErrArraySeparator
			}
			n, err := a.element(data[pos:], p, elem, check)
			if err != nil {
				return pos + n, err
			} else if n == More {
				return More, nil
			}
			pos += n
			continue
		}

		switch data[pos] {
		case ',':
			a.expect = true
		case ']':
			a.began = false
			return pos + 1, nil
		default:
			return pos, ErrArraySeparator
		}
		pos++
	}
}

// element delivers data to elem, and records its value if it completes.
func (a *arrayState[T]) element(data []byte, p *Pool, elem ValueParser[T], check func([]T) error) (int, error) {
	n, err := elem.Parse(data, p)
	if n == More || err != nil {
		return n, err
	}
	// Reuse a slot left from earlier storage if there is one, so the element
	// parser can take over its contents.
	if len(a.out) < cap(a.out) {
		a.out = a.out[:len(a.out)+1]
	} else {
		var zero T
		a.out = append(a.out, zero)
	}
	if err := elem.Swap(&a.out[len(a.out)-1]); err != nil {
		return n, err
	}
	if check != nil {
		if err := check(a.out); err != nil {
			return n, err
		}
	}
	a.expect = false
	return n, nil
}

func (a *arrayState[T]) finished() bool { return !a.began }

// swap exchanges the accumulated elements with *dst, and keeps the storage
// formerly held by *dst, emptied, for the next array. The next array
// overwrites that storage.
func (a *arrayState[T]) swap(dst *[]T) error {
	if a.began {
		return ErrNotFinished
	}
	*dst, a.out = a.out, (*dst)[:0]
	return nil
}

// Array parses a JSON array whose elements are values of a scalar kind,
// parsed by the pooled parser for that kind.
type Array[T any] struct {
	arrayState[T]
	kind func(*Pool) ValueParser[T]
}

// NewArray constructs an Array whose elements are parsed by the pooled
// parser selected by kind, for example:
//
//	a := specjson.NewArray(specjson.Float64)
func NewArray[T any](kind func(*Pool) ValueParser[T]) *Array[T] {
	return &Array[T]{kind: kind}
}

// Parse implements part of the Parser interface.
func (a *Array[T]) Parse(data []byte, p *Pool) (int, error) {
	return a.parse(data, p, a.kind(p), nil)
}

// Finished implements part of the Parser interface.
func (a *Array[T]) Finished() bool { return a.finished() }

// Swap implements part of the ValueParser interface. After Swap, *dst holds
// the elements of the most recent array, and the parser reuses the storage
// previously held by *dst. A caller that keeps earlier results must not keep
// the slice it passes in: set *dst to nil first, or copy the result.
func (a *Array[T]) Swap(dst *[]T) error { return a.swap(dst) }

// ContainerArray parses a JSON array whose elements are themselves composite
// values: arrays or objects. The element parser belongs to the array.
type ContainerArray[T any] struct {
	arrayState[T]
	elem  ValueParser[T]
	check func([]T) error
}

// NewContainerArray constructs a ContainerArray that parses each element with
// elem. The caller must not use elem separately.
func NewContainerArray[T any](elem ValueParser[T]) *ContainerArray[T] {
	return &ContainerArray[T]{elem: elem}
}

// NewSameSizeArray constructs a ContainerArray of slices in which every
// element must have the same length as the first, as in the rows of a
// matrix. An element of a different length is reported as
// ErrSubContainerSize.
func NewSameSizeArray[E any](elem ValueParser[[]E]) *ContainerArray[[]E] {
	return &ContainerArray[[]E]{elem: elem, check: sameSize[E]}
}

func sameSize[E any](rows [][]E) error {
	if last := len(rows) - 1; last > 0 && len(rows[last]) != len(rows[0]) {
		return ErrSubContainerSize
	}
	return nil
}

// Parse implements part of the Parser interface.
func (c *ContainerArray[T]) Parse(data []byte, p *Pool) (int, error) {
	return c.parse(data, p, c.elem, c.check)
}

// Finished implements part of the Parser interface.
func (c *ContainerArray[T]) Finished() bool { return c.finished() }

// Swap implements part of the ValueParser interface, with the same storage
// exchange as Array.
func (c *ContainerArray[T]) Swap(dst *[]T) error { return c.swap(dst) }
