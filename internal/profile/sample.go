package profile

import "github.com/creachadair/specjson"

// A Sample is the record type parsed by the harness. Its shape exercises
// every kind of parser: pooled scalars of several widths, arrays of scalars,
// a same-size matrix, and an array of nested objects.
type Sample struct {
	ID       specjson.Value[uint64]
	Name     specjson.Value[string]
	Enabled  specjson.Value[bool]
	Priority specjson.Value[int8]
	Offset   specjson.Value[int32]
	Weight   specjson.Value[float32]
	Values   specjson.Value[[]float64]
	Labels   specjson.Value[[]string]
	Matrix   specjson.Value[[][]float64]
	Events   specjson.Value[[]Event]
}

// An Event is a nested record of a Sample.
type Event struct {
	At    specjson.Value[int64]
	Kind  specjson.Value[string]
	Count specjson.Value[uint32]
	Codes specjson.Value[[]uint16]
}

// Elements returns the number of array elements in s, at all depths.
func (s *Sample) Elements() int {
	n := len(s.Values.Value) + len(s.Labels.Value) + len(s.Events.Value)
	for _, row := range s.Matrix.Value {
		n += len(row)
	}
	for _, e := range s.Events.Value {
		n += len(e.Codes.Value)
	}
	return n
}

// NewSampleParser returns a parser for Sample records.
func NewSampleParser() *specjson.Object[Sample] {
	event := specjson.NewObject(
		specjson.Required("at", specjson.Int64, func(e *Event) *specjson.Value[int64] { return &e.At }),
		specjson.Required("kind", specjson.String, func(e *Event) *specjson.Value[string] { return &e.Kind }),
		specjson.Optional("count", specjson.Uint32, func(e *Event) *specjson.Value[uint32] { return &e.Count }),
		specjson.OptionalContainer("codes", specjson.NewArray(specjson.Uint16),
			func(e *Event) *specjson.Value[[]uint16] { return &e.Codes }),
	)
	return specjson.NewObject(
		specjson.Required("id", specjson.Uint64, func(s *Sample) *specjson.Value[uint64] { return &s.ID }),
		specjson.Required("name", specjson.String, func(s *Sample) *specjson.Value[string] { return &s.Name }),
		specjson.Optional("enabled", specjson.Bool, func(s *Sample) *specjson.Value[bool] { return &s.Enabled }),
		specjson.Optional("priority", specjson.Int8, func(s *Sample) *specjson.Value[int8] { return &s.Priority }),
		specjson.Optional("offset", specjson.Int32, func(s *Sample) *specjson.Value[int32] { return &s.Offset }),
		specjson.Optional("weight", specjson.Float32, func(s *Sample) *specjson.Value[float32] { return &s.Weight }),
		specjson.OptionalContainer("values", specjson.NewArray(specjson.Float64),
			func(s *Sample) *specjson.Value[[]float64] { return &s.Values }),
		specjson.OptionalContainer("labels", specjson.NewArray(specjson.String),
			func(s *Sample) *specjson.Value[[]string] { return &s.Labels }),
		specjson.OptionalContainer("matrix", specjson.NewSameSizeArray(specjson.NewArray(specjson.Float64)),
			func(s *Sample) *specjson.Value[[][]float64] { return &s.Matrix }),
		specjson.OptionalContainer("events", specjson.NewContainerArray(event),
			func(s *Sample) *specjson.Value[[]Event] { return &s.Events }),
	)
}
