// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"strings"
	"testing"

	"github.com/sjalloq/slang-autos/source"
)

func TestFindMatchingClose(t *testing.T) {
	text := []byte("sub u_sub (.a(b), .c(d[3:0]));")
	got := findMatchingClose(text, 0)
	want := strings.Index(string(text), ");")
	if got != want {
		t.Errorf("findMatchingClose = %d, want %d", got, want)
	}
}

func TestFindMatchingCloseUnterminated(t *testing.T) {
	text := []byte("sub u_sub (.a(b)")
	if got := findMatchingClose(text, 0); got != -1 {
		t.Errorf("findMatchingClose of unterminated text = %d, want -1", got)
	}
}

func TestPlanAutoinstEmptyGeneratedSkips(t *testing.T) {
	buf := source.New(0, "t.sv", []byte("sub u_sub (/*AUTOINST*/);"))
	_, ok := PlanAutoinst(buf, Marker{}, 0, "")
	if ok {
		t.Error("PlanAutoinst should skip when generated is empty")
	}
}

func TestPlanAutologicInsertsWhenNoExistingBlock(t *testing.T) {
	text := []byte("module m;\n  /*AUTOLOGIC*/\nendmodule\n")
	buf := source.New(0, "t.sv", text)
	markerOff := strings.Index(string(text), "/*AUTOLOGIC*/")
	m := Marker{Start: markerOff}

	r, ok := PlanAutologic(buf, m, "  logic foo;\n")
	if !ok {
		t.Fatal("PlanAutologic returned ok=false")
	}
	if !strings.HasPrefix(r.ReplacementText, "\n") {
		t.Errorf("insertion replacement should be newline-prefixed, got %q", r.ReplacementText)
	}
	if r.Start != r.End {
		t.Errorf("insertion replacement should be zero-width, got [%d,%d)", r.Start, r.End)
	}
}

func TestPlanAutologicReplacesExistingBlock(t *testing.T) {
	text := []byte("module m;\n  /*AUTOLOGIC*/\n  // Beginning of automatic logic\n  logic old;\n  // End of automatics\nendmodule\n")
	buf := source.New(0, "t.sv", text)
	markerOff := strings.Index(string(text), "/*AUTOLOGIC*/")
	m := Marker{Start: markerOff}

	r, ok := PlanAutologic(buf, m, "  logic new;\n")
	if !ok {
		t.Fatal("PlanAutologic returned ok=false")
	}
	replaced := string(text[r.Start:r.End])
	if !strings.Contains(replaced, "old") || !strings.Contains(replaced, "End of automatics") {
		t.Errorf("replacement range %q does not span the existing block", replaced)
	}
}

func TestPlanAutoports(t *testing.T) {
	text := []byte("module m (\n  input clk,\n  /*AUTOPORTS*/\n);\nendmodule\n")
	buf := source.New(0, "t.sv", text)
	markerOff := strings.Index(string(text), "/*AUTOPORTS*/")
	m := Marker{Start: markerOff, End: markerOff + len("/*AUTOPORTS*/")}

	r, ok := PlanAutoports(buf, m, "  input a\n")
	if !ok {
		t.Fatal("PlanAutoports returned ok=false")
	}
	if !strings.Contains(r.ReplacementText, "/*AUTOPORTS*/") || !strings.Contains(r.ReplacementText, "input a") {
		t.Errorf("PlanAutoports replacement = %q", r.ReplacementText)
	}
	if string(text[r.End]) != ")" {
		t.Errorf("PlanAutoports should end just before the port list's closing ')', got %q", text[r.End])
	}
}

func TestPlanAutoportsRemovesStaleGeneratedPorts(t *testing.T) {
	text := []byte("module m (\n  input clk,\n  /*AUTOPORTS*/\n  output old_port\n);\nendmodule\n")
	buf := source.New(0, "t.sv", text)
	markerOff := strings.Index(string(text), "/*AUTOPORTS*/")
	m := Marker{Start: markerOff, End: markerOff + len("/*AUTOPORTS*/")}

	r, ok := PlanAutoports(buf, m, "  input new_port\n")
	if !ok {
		t.Fatal("PlanAutoports returned ok=false")
	}
	if strings.Contains(r.ReplacementText, "old_port") {
		t.Errorf("replacement still contains the stale generated port: %q", r.ReplacementText)
	}
	removed := string(text[r.Start:r.End])
	if !strings.Contains(removed, "old_port") {
		t.Errorf("replacement range %q does not span the stale generated port", removed)
	}
}
