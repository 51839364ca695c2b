// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package specjson

import (
	"github.com/creachadair/specjson/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuote(nil, mem.S(src))) }
