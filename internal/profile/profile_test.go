package profile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/creachadair/specjson"
	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// plainSample is the reflection-decoded counterpart of Sample.
type plainSample struct {
	Values []float64   `json:"values"`
	Labels []string    `json:"labels"`
	Matrix [][]float64 `json:"matrix"`
	Events []struct {
		Codes []uint16 `json:"codes"`
	} `json:"events"`
}

func (p plainSample) elements() int {
	n := len(p.Values) + len(p.Labels) + len(p.Events)
	for _, row := range p.Matrix {
		n += len(row)
	}
	for _, e := range p.Events {
		n += len(e.Codes)
	}
	return n
}

// generated returns n generated records and the number of array elements
// they contain, as counted by a conventional decoder.
func generated(t *testing.T, n int, seed uint64) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	if err := Generate(&buf, n, seed); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	var elts int
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for sc.Scan() {
		var p plainSample
		if err := gojson.Unmarshal(sc.Bytes(), &p); err != nil {
			t.Fatalf("Unmarshal %q: %v", sc.Text(), err)
		}
		elts += p.elements()
	}
	return buf.String(), elts
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	a, _ := generated(t, 20, 5)
	b, _ := generated(t, 20, 5)
	if a != b {
		t.Error("Generate is not deterministic for a fixed seed")
	}
	if got := strings.Count(a, "\n"); got != 20 {
		t.Errorf("Generate: got %d lines, want 20", got)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input, elts := generated(t, 100, 1)
	path := writeFile(t, dir, "input.json", input)

	for _, cfg := range []Config{
		{BlockSize: DefaultBlockSize, Workers: 1},
		{BlockSize: 7, Workers: 1},
		{BlockSize: 64, Workers: 1, Prefetch: 3},
		{BlockSize: 1024, Workers: 2, Prefetch: 1, Rate: 1 << 30},
	} {
		name := fmt.Sprintf("block=%d,prefetch=%d,rate=%g", cfg.BlockSize, cfg.Prefetch, cfg.Rate)
		t.Run(name, func(t *testing.T) {
			cfg.Files = []string{path, path}
			sum, err := Run(context.Background(), cfg, discard)
			if err != nil {
				t.Fatalf("Run: unexpected error: %v", err)
			}
			want := Result{File: path, Bytes: int64(len(input)), Values: 100, Elements: elts}
			for _, got := range sum.Results {
				if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Result{}, "Elapsed")); diff != "" {
					t.Errorf("Wrong result (-want, +got):\n%s", diff)
				}
			}
			if sum.HasErrors() {
				t.Error("HasErrors: got true, want false")
			}
		})
	}
}

func TestRunHuJSON(t *testing.T) {
	t.Parallel()

	const input = `// leading comment
[
  {"id": 1, "name": "first", /* inline */ "values": [1, 2, 3,],},
  {"id": 2, "name": "second", "events": [{"at": -1, "kind": "tick", "codes": [5],},],},
]
`
	dir := t.TempDir()
	path := writeFile(t, dir, "input.hujson", input)

	sum, err := Run(context.Background(), Config{
		Files: []string{path}, BlockSize: 16, Workers: 1, HuJSON: true,
	}, discard)
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	got := sum.Results[0]
	if got.Err != nil {
		t.Fatalf("Run: file error: %v", got.Err)
	}
	if got.Values != 2 || got.Elements != 5 {
		t.Errorf("Run: got %d values, %d elements; want 2, 5", got.Values, got.Elements)
	}

	// Without standardization the comments are a syntax error.
	sum, err = Run(context.Background(), Config{Files: []string{path}, BlockSize: 16, Workers: 1}, discard)
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	var serr *specjson.SyntaxError
	if !errors.As(sum.Results[0].Err, &serr) {
		t.Fatalf("Run: got error %v, want *SyntaxError", sum.Results[0].Err)
	}
	if serr.Offset != 0 {
		t.Errorf("Error offset: got %d, want 0", serr.Offset)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"id":1,"name":"ok"}`)
	tests := []struct {
		name, input string
		want        error
		values      int
	}{
		{"MissingRequired", `{"id":1,"name":"a"} {"id":2}`, specjson.ErrRequiredKeyNotGiven, 1},
		{"UnknownKey", `{"id":1,"name":"a","bogus":0}`, specjson.ErrInvalidKey, 0},
		{"Ragged", `{"id":1,"name":"a","matrix":[[1,2],[3]]}`, specjson.ErrSubContainerSize, 0},
		{"Range", `{"id":1,"name":"a","priority":200}`, specjson.ErrIntOutsideRange, 0},
		{"Truncated", `{"id":1,"name":"a"`, io.ErrUnexpectedEOF, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bad := writeFile(t, dir, tc.name+".json", tc.input)
			sum, err := Run(context.Background(), Config{
				Files: []string{good, bad}, BlockSize: 8, Workers: 2, Prefetch: 1,
			}, discard)
			if err != nil {
				t.Fatalf("Run: unexpected error: %v", err)
			}
			if err := sum.Results[0].Err; err != nil {
				t.Errorf("Good file: unexpected error: %v", err)
			}
			got := sum.Results[1]
			if !errors.Is(got.Err, tc.want) {
				t.Errorf("Bad file: got error %v, want %v", got.Err, tc.want)
			}
			if got.Values != tc.values {
				t.Errorf("Bad file: got %d values, want %d", got.Values, tc.values)
			}
			if !sum.HasErrors() {
				t.Error("HasErrors: got false, want true")
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input, _ := generated(t, 10, 3)
	path := writeFile(t, dir, "input.json", input)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := Run(ctx, Config{Files: []string{path}, BlockSize: 32, Workers: 1, Prefetch: 2}, discard)
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	if got := sum.Results[0]; got.Err == nil || got.Values > 1 {
		t.Errorf("Run: got (%d values, %v), want a cancellation error", got.Values, got.Err)
	}
}

func TestPacedReader(t *testing.T) {
	t.Parallel()

	const input = "0123456789abcdef"
	// A burst of 4 bytes at 400 bytes/sec: the first 4 bytes are free, and
	// each later group of 4 waits 10ms.
	r := newPacedReader(context.Background(), strings.NewReader(input), 400, 4)
	start := time.Now()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: unexpected error: %v", err)
	}
	if string(got) != input {
		t.Errorf("ReadAll: got %q, want %q", got, input)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("ReadAll took %v, want at least 20ms", elapsed)
	}
}

func TestPrefetchReader(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("abcdefghij", 100)
	for _, size := range []int{1, 3, 64, 2000} {
		r := newPrefetchReader(context.Background(), strings.NewReader(input), size, 2)
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("ReadAll (size %d): unexpected error: %v", size, err)
		}
		if string(got) != input {
			t.Errorf("ReadAll (size %d): got %d bytes, want %d", size, len(got), len(input))
		}
	}
}

func TestSummaryWrite(t *testing.T) {
	sum := &Summary{
		Results: []Result{
			{File: "a.json", Bytes: 2 << 20, Values: 1500, Elements: 20, Elapsed: time.Second},
			{File: "b.json", Err: errors.New("bad input")},
		},
		Elapsed: 2 * time.Second,
		RSS:     4096,
	}
	var buf bytes.Buffer
	if err := sum.Write(&buf); err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}
	want := `a.json: 2,097,152 bytes, 1,500 values, 20 elements in 1s (2.0 MB/s)
b.json: error: bad input
total: 2 files, 2,097,152 bytes, 1,500 values, 20 elements in 2s (1.0 MB/s)
resident memory: 4,096 bytes
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Wrong report (-want, +got):\n%s", diff)
	}
}
