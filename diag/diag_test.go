// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import "testing"

func TestOnceDedups(t *testing.T) {
	var s Sink
	if !s.Once("k", "f.sv", 3, CategoryUnresolvedCapture, "unresolved %s", "$1") {
		t.Fatal("first Once should report")
	}
	if s.Once("k", "f.sv", 3, CategoryUnresolvedCapture, "unresolved %s", "$1") {
		t.Fatal("second Once with same key should not report")
	}
	if len(s.All()) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(s.All()))
	}
}

func TestFormat(t *testing.T) {
	var s Sink
	s.Warnf("f.sv", 10, CategoryConstantOutput, "constant on output port %s", "q")
	s.Errorf("f.sv", 12, CategoryPortParse, "empty port name")

	w, e := s.Counts()
	if w != 1 || e != 1 {
		t.Fatalf("Counts() = %d, %d, want 1, 1", w, e)
	}
	got := s.Format()
	want := "f.sv:10: warning: constant on output port q\nf.sv:12: error: empty port name\n"
	if got != want {
		t.Fatalf("Format() =\n%q\nwant\n%q", got, want)
	}
	if !s.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
}
