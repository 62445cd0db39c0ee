// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import "testing"

func TestParseRangeWidth(t *testing.T) {
	cases := []struct {
		in        string
		wantWidth int
		wantOk    bool
	}{
		{"[7:0]", 8, true},
		{"[0:7]", 8, true},
		{"[0:0]", 1, true},
		{"[WIDTH-1:0]", 0, false},
		{"not a range", 0, false},
	}
	for _, c := range cases {
		width, ok := parseRangeWidth(c.in)
		if width != c.wantWidth || ok != c.wantOk {
			t.Errorf("parseRangeWidth(%q) = (%d, %v), want (%d, %v)", c.in, width, ok, c.wantWidth, c.wantOk)
		}
	}
}

func TestSynthesizeRange(t *testing.T) {
	cases := []struct {
		width int
		want  string
	}{
		{1, "[0:0]"},
		{0, "[0:0]"},
		{8, "[7:0]"},
		{32, "[31:0]"},
	}
	for _, c := range cases {
		if got := synthesizeRange(c.width); got != c.want {
			t.Errorf("synthesizeRange(%d) = %q, want %q", c.width, got, c.want)
		}
	}
}

func TestLiteralMaxIndex(t *testing.T) {
	cases := []struct {
		in      string
		wantMax int
		wantOk  bool
	}{
		{"[3]", 3, true},
		{"[7:0]", 7, true},
		{"[0:7]", 7, true},
		{"[idx]", 0, false},
		{"", 0, false},
		{"[", 0, false},
	}
	for _, c := range cases {
		max, ok := literalMaxIndex(c.in)
		if max != c.wantMax || ok != c.wantOk {
			t.Errorf("literalMaxIndex(%q) = (%d, %v), want (%d, %v)", c.in, max, ok, c.wantMax, c.wantOk)
		}
	}
}
