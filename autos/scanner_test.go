// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"testing"

	"github.com/sjalloq/slang-autos/source"
	"github.com/sjalloq/slang-autos/sv/svfake"
)

func TestScanFindsMarkers(t *testing.T) {
	text := []byte(`module top;
  /* foo AUTO_TEMPLATE (
     .din (in_@ [7:0]),
  ); */
  sub u_sub0 (/*AUTOINST*/);
  wire /*AUTOLOGIC*/;
endmodule
`)
	buf := source.New(0, "top.sv", text)
	var e svfake.Elaborator
	tree, err := e.Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	markers := Scan(tree)
	var kinds []MarkerKind
	for _, m := range markers {
		kinds = append(kinds, m.Kind)
	}

	want := []MarkerKind{MarkerAutoTemplate, MarkerAutoinst, MarkerAutologic}
	if len(kinds) != len(want) {
		t.Fatalf("Scan found %d markers %v, want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("marker %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestClassifyComment(t *testing.T) {
	cases := []struct {
		in     string
		want   MarkerKind
		wantOk bool
	}{
		{"/*AUTOINST*/", MarkerAutoinst, true},
		{`/*AUTOINST("^dbg_")*/`, MarkerAutoinst, true},
		{"/*AUTOLOGIC*/", MarkerAutologic, true},
		{"/*AUTOPORTS*/", MarkerAutoports, true},
		{"/* sub AUTO_TEMPLATE */", MarkerAutoTemplate, true},
		{"/* just a comment */", 0, false},
	}
	for _, c := range cases {
		kind, _, ok := classifyComment(c.in)
		if kind != c.want || ok != c.wantOk {
			t.Errorf("classifyComment(%q) = (%v, %v), want (%v, %v)", c.in, kind, ok, c.want, c.wantOk)
		}
	}
}
