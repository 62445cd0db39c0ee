// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"fmt"
	"strconv"
	"strings"
)

// parseRangeWidth extracts the bit width implied by a packed-range or
// bit/part-select text of the shape "[msb:lsb]" when both bounds are
// decimal literals. It returns ok=false for symbolic bounds such as
// "[WIDTH-1:0]", which callers fall back to a declared width for.
// Splits on the delimiter, parses each side as a plain integer, and
// only trusts the result when both sides are literal.
func parseRangeWidth(r string) (width int, ok bool) {
	r = strings.TrimSpace(r)
	r = strings.TrimPrefix(r, "[")
	r = strings.TrimSuffix(r, "]")
	parts := strings.SplitN(r, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	msb, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	lsb, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, false
	}
	if msb < lsb {
		msb, lsb = lsb, msb
	}
	return msb - lsb + 1, true
}

// synthesizeRange returns a "[W-1:0]" range string for a synthesised
// width, used when no contributor offers original or resolved syntax.
func synthesizeRange(width int) string {
	if width <= 1 {
		return "[0:0]"
	}
	return fmt.Sprintf("[%d:0]", width-1)
}

// literalMaxIndex scans a bit-select or part-select suffix such as
// "[3]" or "[7:0]" appended to an identifier in a connection
// expression and returns its maximum literal index. ok is false when
// the suffix is absent or symbolic.
func literalMaxIndex(suffix string) (max int, ok bool) {
	suffix = strings.TrimSpace(suffix)
	if !strings.HasPrefix(suffix, "[") || !strings.HasSuffix(suffix, "]") {
		return 0, false
	}
	inner := suffix[1 : len(suffix)-1]
	if idx := strings.IndexByte(inner, ':'); idx >= 0 {
		hi, err1 := strconv.Atoi(strings.TrimSpace(inner[:idx]))
		lo, err2 := strconv.Atoi(strings.TrimSpace(inner[idx+1:]))
		if err1 != nil || err2 != nil {
			return 0, false
		}
		if hi < lo {
			hi = lo
		}
		return hi, true
	}
	v, err := strconv.Atoi(inner)
	if err != nil {
		return 0, false
	}
	return v, true
}
