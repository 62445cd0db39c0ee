// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"testing"

	"github.com/sjalloq/slang-autos/sv"
)

func TestAggregatorClassification(t *testing.T) {
	ports := map[string]sv.Port{
		"din":  {Name: "din", Dir: sv.DirInput, Width: 8, PackedRangeResolved: "[7:0]"},
		"dout": {Name: "dout", Dir: sv.DirOutput, Width: 8, PackedRangeResolved: "[7:0]"},
		"bidi": {Name: "bidi", Dir: sv.DirInout, Width: 1},
	}

	agg := NewAggregator()
	// u1 drives "mid" into din of u2 and reads "ext_in" on its own din.
	agg.Add("u1", []Connection{
		{PortName: "din", Dir: sv.DirInput, SignalExpr: "ext_in", ExtractedIdents: []string{"ext_in"}},
		{PortName: "dout", Dir: sv.DirOutput, SignalExpr: "mid", ExtractedIdents: []string{"mid"}},
	}, ports)
	agg.Add("u2", []Connection{
		{PortName: "din", Dir: sv.DirInput, SignalExpr: "mid", ExtractedIdents: []string{"mid"}},
		{PortName: "dout", Dir: sv.DirOutput, SignalExpr: "ext_out", ExtractedIdents: []string{"ext_out"}},
		{PortName: "bidi", Dir: sv.DirInout, SignalExpr: "io_pad", ExtractedIdents: []string{"io_pad"}},
	}, ports)
	agg.Resolve()

	wantNames := func(nets []*NetUsage) []string {
		var out []string
		for _, n := range nets {
			out = append(out, n.Name)
		}
		return out
	}

	if got := wantNames(agg.ExternalInputs()); len(got) != 1 || got[0] != "ext_in" {
		t.Errorf("ExternalInputs = %v, want [ext_in]", got)
	}
	if got := wantNames(agg.ExternalOutputs()); len(got) != 1 || got[0] != "ext_out" {
		t.Errorf("ExternalOutputs = %v, want [ext_out]", got)
	}
	if got := wantNames(agg.InternalNets()); len(got) != 1 || got[0] != "mid" {
		t.Errorf("InternalNets = %v, want [mid]", got)
	}
	if got := wantNames(agg.Inouts()); len(got) != 1 || got[0] != "io_pad" {
		t.Errorf("Inouts = %v, want [io_pad]", got)
	}
}

func TestAggregatorWidthConflictMaxWins(t *testing.T) {
	ports8 := map[string]sv.Port{
		"din": {Name: "din", Dir: sv.DirInput, Width: 8, PackedRangeResolved: "[7:0]"},
	}
	ports16 := map[string]sv.Port{
		"din": {Name: "din", Dir: sv.DirInput, Width: 16, PackedRangeResolved: "[15:0]"},
	}

	agg := NewAggregator()
	agg.Add("u1", []Connection{
		{PortName: "din", Dir: sv.DirInput, SignalExpr: "shared", ExtractedIdents: []string{"shared"}},
	}, ports8)
	agg.Add("u2", []Connection{
		{PortName: "din", Dir: sv.DirInput, SignalExpr: "shared", ExtractedIdents: []string{"shared"}},
	}, ports16)
	agg.Resolve()

	inputs := agg.ExternalInputs()
	if len(inputs) != 1 {
		t.Fatalf("ExternalInputs = %v, want one net", inputs)
	}
	if inputs[0].Width != 16 || inputs[0].RangeText != "[15:0]" {
		t.Errorf("shared net = %+v, want width 16 range [15:0]", inputs[0])
	}
}

func TestAggregatorUnknownPortIgnored(t *testing.T) {
	ports := map[string]sv.Port{
		"din": {Name: "din", Dir: sv.DirInput, Width: 1},
	}
	agg := NewAggregator()
	agg.Add("u1", []Connection{
		{PortName: "nonexistent", Dir: sv.DirInput, SignalExpr: "x", ExtractedIdents: []string{"x"}},
	}, ports)
	agg.Resolve()
	if len(agg.ExternalInputs()) != 0 {
		t.Errorf("connection to an undeclared port should be ignored, got %v", agg.ExternalInputs())
	}
}
