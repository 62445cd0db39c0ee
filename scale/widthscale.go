// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale maps a module's net bit-widths onto pixel widths for
// the port-diagram box layout: the widest net in a column should draw
// the widest box, the narrowest the narrowest, everything else
// somewhere linearly in between.
package scale

// A WidthScale normalizes a set of net widths onto [0, 1], the widest
// net observed mapping to 1 and the narrowest to 0. A diagram with
// only one distinct width (or none) has a zero-width domain; Of
// returns 0 for every input in that case rather than dividing by
// zero.
type WidthScale struct {
	min, span float64
}

// NewWidthScale returns a WidthScale fit to the given net widths,
// typically every net.Width across one diagram's columns so that box
// sizes are comparable across inputs, outputs, and inouts alike.
func NewWidthScale(widths []float64) WidthScale {
	min, max := minmax(widths)
	return WidthScale{min, max - min}
}

// Of returns where width falls within the fitted domain, in [0, 1].
func (s WidthScale) Of(width float64) float64 {
	if s.span == 0 {
		return 0
	}
	return (width - s.min) / s.span
}
