// Package testutil defines support code for unit tests.
package testutil

import "github.com/creachadair/specjson"

// Splits returns every division of input into two chunks, followed by every
// division into three chunks. Empty chunks are included, so a parser sees
// both an empty first chunk and an empty last chunk.
func Splits(input string) [][]string {
	var out [][]string
	for i := 0; i <= len(input); i++ {
		out = append(out, []string{input[:i], input[i:]})
	}
	for i := 0; i <= len(input); i++ {
		for j := i; j <= len(input); j++ {
			out = append(out, []string{input[:i], input[i:j], input[j:]})
		}
	}
	return out
}

// Bytes returns the chunks of input, each of n bytes except possibly the
// last.
func Bytes(input string, n int) []string {
	var out []string
	for len(input) > n {
		out = append(out, input[:n])
		input = input[n:]
	}
	return append(out, input)
}

// Feed delivers chunks to p in order until p completes a value or reports an
// error. It returns the number of bytes consumed from all the chunks, or
// specjson.More if the chunks ran out first. On error, the offset is of the
// offending byte relative to the start of the first chunk.
func Feed(p specjson.Parser, pool *specjson.Pool, chunks ...string) (int, error) {
	base := 0
	for _, c := range chunks {
		n, err := p.Parse([]byte(c), pool)
		if err != nil {
			return base + n, err
		} else if n != specjson.More {
			return base + n, nil
		}
		base += len(c)
	}
	return specjson.More, nil
}
