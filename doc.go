// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package specjson implements an incremental JSON parser that decodes input
// directly into statically-typed Go values, without an intermediate document
// tree.
//
// # Parsers
//
// Each parser consumes the JSON text for one value, which may arrive in
// chunks divided at arbitrary points: inside a number, a string escape, or a
// nested structure. The Parse method of a parser reports one of three
// outcomes:
//
//	n, err := p.Parse(chunk, pool)
//	switch {
//	case err != nil:
//	   // the input is invalid at offset n of chunk
//	case n == specjson.More:
//	   // deliver the next chunk to p
//	default:
//	   // the value is complete; chunk[n:] follows it
//	}
//
// A parser saves its progress in itself and in a shared Pool, and never
// retains a chunk after Parse returns. When a parser has completed a value,
// its Swap method moves the value into caller storage.
//
// # Schema
//
// A schema is built from the parser types at compile time:
//
//	Type                | JSON             | Constructor
//	------------------- | ---------------- | -----------------------------------
//	bool, ints, floats  | true, 25, 1e-3   | Bool, Int32, Float64, ... (pooled)
//	string              | "text"           | String (pooled)
//	[]T, T scalar       | [1, 2, 3]        | NewArray(kind)
//	[]T, T composite    | [[1], [2]]       | NewContainerArray(elem)
//	[][]E, same lengths | [[1, 2], [3, 4]] | NewSameSizeArray(elem)
//	struct records      | {"key": value}   | NewObject(fields...)
//
// The scalar parsers are shared: a Pool holds one parser for each scalar kind,
// and composite parsers select them with the kind functions. For example:
//
//	type Point struct {
//	   X, Y specjson.Value[float64]
//	   Tags specjson.Value[[]string]
//	}
//
//	obj := specjson.NewObject(
//	   specjson.Required("x", specjson.Float64, func(p *Point) *specjson.Value[float64] { return &p.X }),
//	   specjson.Required("y", specjson.Float64, func(p *Point) *specjson.Value[float64] { return &p.Y }),
//	   specjson.OptionalContainer("tags", specjson.NewArray(specjson.String),
//	      func(p *Point) *specjson.Value[[]string] { return &p.Tags }),
//	)
//
// # Streaming
//
// The Stream type reads an io.Reader in fixed-size blocks and delivers them to
// a parser, skipping the whitespace between top-level values:
//
//	s := specjson.NewStream(input)
//	var pt Point
//	err := s.Parse(obj, func() error {
//	   if err := obj.Swap(&pt); err != nil {
//	      return err
//	   }
//	   log.Printf("point %v", pt)
//	   return nil
//	})
//
// In case of a syntax error, the error has concrete type *SyntaxError, and
// wraps one of the Err values declared by this package.
//
// # Writing
//
// The Write functions encode values of the same types. They are not
// incremental: each writes a complete value to an io.Writer.
package specjson
