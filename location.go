package specjson

import (
	"bytes"
	"fmt"
)

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", max(lc.Line, 1), lc.Column)
}

// advance updates lc to the position following text.
func (lc *LineCol) advance(text []byte) {
	if lc.Line == 0 {
		lc.Line = 1
	}
	if n := bytes.Count(text, []byte{'\n'}); n > 0 {
		lc.Line += n
		lc.Column = len(text) - bytes.LastIndexByte(text, '\n') - 1
	} else {
		lc.Column += len(text)
	}
}
