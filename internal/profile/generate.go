package profile

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/creachadair/specjson"
)

// Generate writes n pseudo-random Sample records to w, one per line. The
// output depends only on n and seed.
func Generate(w io.Writer, n int, seed uint64) error {
	bw := bufio.NewWriter(w)
	g := &generator{w: bw, rng: rand.New(rand.NewPCG(seed, seed^0x5eed))}
	for i := range n {
		g.sample(uint64(i))
		if g.err != nil {
			return fmt.Errorf("write sample %d: %w", i, g.err)
		}
	}
	return bw.Flush()
}

// generator writes the parts of a record, remembering the first error.
type generator struct {
	w   io.Writer
	rng *rand.Rand
	buf []byte
	err error
}

func (g *generator) text(s string) {
	if g.err == nil {
		_, g.err = io.WriteString(g.w, s)
	}
}

// member writes the key of an object member; the first member of an object
// has no leading comma.
func (g *generator) member(first bool, key string) {
	if !first {
		g.text(",")
	}
	g.value(func() ([]byte, error) { return specjson.WriteString(g.w, key, g.buf) })
	g.text(":")
}

func (g *generator) value(write func() ([]byte, error)) {
	if g.err == nil {
		g.buf, g.err = write()
	}
}

func (g *generator) sample(id uint64) {
	g.text("{")
	g.member(true, "id")
	g.value(func() ([]byte, error) { return specjson.WriteUint(g.w, id, g.buf) })
	g.member(false, "name")
	g.value(func() ([]byte, error) { return specjson.WriteString(g.w, fmt.Sprintf("sample\t%d", id), g.buf) })
	if g.rng.IntN(2) == 0 {
		g.member(false, "enabled")
		g.value(func() ([]byte, error) { return specjson.WriteBool(g.w, g.rng.IntN(2) == 0, g.buf) })
	}
	g.member(false, "priority")
	g.value(func() ([]byte, error) { return specjson.WriteInt(g.w, int8(g.rng.IntN(256)-128), g.buf) })
	g.member(false, "offset")
	g.value(func() ([]byte, error) { return specjson.WriteInt(g.w, g.rng.Int32()-1<<30, g.buf) })
	g.member(false, "weight")
	g.value(func() ([]byte, error) { return specjson.WriteFloat(g.w, g.rng.Float32()*100, g.buf) })

	values := make([]float64, g.rng.IntN(16))
	for i := range values {
		values[i] = g.rng.NormFloat64() * 1e3
	}
	g.member(false, "values")
	g.value(func() ([]byte, error) {
		return specjson.WriteArray(g.w, values, g.buf, specjson.WriteFloat[float64])
	})

	labels := make([]string, g.rng.IntN(4))
	for i := range labels {
		labels[i] = fmt.Sprintf("label \"%d\"", g.rng.IntN(100))
	}
	g.member(false, "labels")
	g.value(func() ([]byte, error) { return specjson.WriteArray(g.w, labels, g.buf, specjson.WriteString) })

	cols := 1 + g.rng.IntN(4)
	matrix := make([][]float64, g.rng.IntN(4))
	for i := range matrix {
		matrix[i] = make([]float64, cols)
		for j := range matrix[i] {
			matrix[i][j] = float64(g.rng.IntN(1000)) / 8
		}
	}
	g.member(false, "matrix")
	g.value(func() ([]byte, error) {
		return specjson.WriteArray(g.w, matrix, g.buf, func(w io.Writer, row []float64, buf []byte) ([]byte, error) {
			return specjson.WriteArray(w, row, buf, specjson.WriteFloat[float64])
		})
	})

	g.member(false, "events")
	g.text("[")
	for i := range g.rng.IntN(3) {
		if i > 0 {
			g.text(",")
		}
		g.event()
	}
	g.text("]}\n")
}

func (g *generator) event() {
	g.text("{")
	g.member(true, "at")
	g.value(func() ([]byte, error) { return specjson.WriteInt(g.w, g.rng.Int64(), g.buf) })
	g.member(false, "kind")
	g.value(func() ([]byte, error) { return specjson.WriteString(g.w, []string{"start", "stop", "tick"}[g.rng.IntN(3)], g.buf) })
	if g.rng.IntN(2) == 0 {
		g.member(false, "count")
		g.value(func() ([]byte, error) { return specjson.WriteUint(g.w, g.rng.Uint32(), g.buf) })
	}
	codes := make([]uint16, g.rng.IntN(5))
	for i := range codes {
		codes[i] = uint16(g.rng.UintN(1 << 16))
	}
	g.member(false, "codes")
	g.value(func() ([]byte, error) { return specjson.WriteArray(g.w, codes, g.buf, specjson.WriteUint[uint16]) })
	g.text("}")
}
