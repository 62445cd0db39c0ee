// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

// A PixelScale maps a normalized [0, 1] value, as produced by
// WidthScale, onto a pixel range [min, max]. The diagram renderer uses
// it to turn a net's relative width into an actual box width in
// pixels.
type PixelScale struct {
	min, max float64
	clamp    clampMode
}

type clampMode int

const (
	clampCrop clampMode = iota
	clampNone
	clampClamp
)

// NewPixelScale returns a PixelScale mapping [0, 1] onto [min, max],
// cropping out-of-range input by default.
func NewPixelScale(min, max float64) PixelScale {
	return PixelScale{min, max, clampCrop}
}

// Crop makes Of reject input outside [0, 1] instead of mapping it.
func (s *PixelScale) Crop() {
	s.clamp = clampCrop
}

// Unclamp makes Of extrapolate input outside [0, 1] instead of
// rejecting or clamping it.
func (s *PixelScale) Unclamp() {
	s.clamp = clampNone
}

// Clamp makes Of saturate input outside [0, 1] to 0 or 1 before
// mapping it, rather than rejecting it.
func (s *PixelScale) Clamp() {
	s.clamp = clampClamp
}

// Of maps norm, a value in [0, 1] from a WidthScale, onto this
// scale's pixel range. ok is false when norm falls outside [0, 1] and
// the scale is in its default cropping mode, in which case the caller
// should fall back to its own minimum box width.
func (s PixelScale) Of(norm float64) (float64, bool) {
	if s.clamp == clampCrop {
		if norm < 0 || norm > 1 {
			return 0, false
		}
	} else if s.clamp == clampClamp {
		if norm < 0 {
			norm = 0
		} else if norm > 1 {
			norm = 1
		}
	}
	return norm*(s.max-s.min) + s.min, true
}
