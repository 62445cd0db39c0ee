// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"strings"
	"testing"

	"github.com/sjalloq/slang-autos/sv"
)

func TestGenerateAutoinstWidthAnnotation(t *testing.T) {
	ports := []sv.Port{
		{Name: "din", Dir: sv.DirInput, Width: 8, PackedRangeResolved: "[7:0]"},
	}
	conns := map[string]Connection{
		"din": {PortName: "din", SignalExpr: "din"},
	}
	cfg := GenConfig{Indent: "  ", GroupByDirection: true, ResolvedRanges: true}

	got := GenerateAutoinst(ports, conns, nil, cfg)
	if !strings.Contains(got, ".din (din[7:0])") {
		t.Errorf("GenerateAutoinst = %q, want a width-annotated .din connection", got)
	}
}

func TestGenerateAutoinstSkipsManualAndUnconnected(t *testing.T) {
	ports := []sv.Port{
		{Name: "clk", Dir: sv.DirInput, Width: 1},
		{Name: "din", Dir: sv.DirInput, Width: 1},
	}
	conns := map[string]Connection{}
	manual := map[string]bool{"clk": true}
	cfg := GenConfig{Indent: "  ", GroupByDirection: true}

	got := GenerateAutoinst(ports, conns, manual, cfg)
	if strings.Contains(got, "clk") {
		t.Errorf("GenerateAutoinst emitted a manually connected port: %q", got)
	}
	if !strings.Contains(got, ".din ()") {
		t.Errorf("GenerateAutoinst should emit an empty unconnected port, got %q", got)
	}
}

func TestGenerateAutoinstLastLineNoTrailingComma(t *testing.T) {
	ports := []sv.Port{
		{Name: "a", Dir: sv.DirInput, Width: 1},
		{Name: "b", Dir: sv.DirInput, Width: 1},
	}
	cfg := GenConfig{Indent: "", GroupByDirection: true}
	got := GenerateAutoinst(ports, nil, nil, cfg)
	lines := strings.Split(got, "\n")
	last := lines[len(lines)-1]
	if strings.HasSuffix(last, ",") {
		t.Errorf("last emitted line has a trailing comma: %q", last)
	}
}

func TestGenerateAutologicSkipsExisting(t *testing.T) {
	nets := []*NetUsage{
		{Name: "mid", Width: 8, RangeText: "[7:0]"},
		{Name: "already", Width: 1},
	}
	cfg := GenConfig{Indent: "  ", UseLogic: true}

	got := GenerateAutologic(nets, map[string]bool{"already": true}, cfg)
	if !strings.Contains(got, "logic [7:0] mid;") {
		t.Errorf("GenerateAutologic = %q, want a mid declaration", got)
	}
	if strings.Contains(got, "already") {
		t.Errorf("GenerateAutologic re-declared an existing net: %q", got)
	}
	if !strings.Contains(got, "Beginning of automatic logic") || !strings.Contains(got, "End of automatics") {
		t.Errorf("GenerateAutologic missing delimiter comments: %q", got)
	}
}

func TestGenerateAutologicEmptyWhenNothingNew(t *testing.T) {
	nets := []*NetUsage{{Name: "already", Width: 1}}
	got := GenerateAutologic(nets, map[string]bool{"already": true}, GenConfig{})
	if got != "" {
		t.Errorf("GenerateAutologic = %q, want empty string", got)
	}
}

func TestGenerateAutoportsOrdersByDirection(t *testing.T) {
	agg := NewAggregator()
	ports := map[string]sv.Port{
		"din":  {Name: "din", Dir: sv.DirInput, Width: 1},
		"dout": {Name: "dout", Dir: sv.DirOutput, Width: 1},
	}
	agg.Add("u1", []Connection{
		{PortName: "din", Dir: sv.DirInput, SignalExpr: "top_in", ExtractedIdents: []string{"top_in"}},
		{PortName: "dout", Dir: sv.DirOutput, SignalExpr: "top_out", ExtractedIdents: []string{"top_out"}},
	}, ports)
	agg.Resolve()

	cfg := GenConfig{Indent: "", UseLogic: true, GroupByDirection: true}
	got := GenerateAutoports(agg, nil, cfg)
	outIdx := strings.Index(got, "top_out")
	inIdx := strings.Index(got, "top_in")
	if outIdx < 0 || inIdx < 0 || outIdx > inIdx {
		t.Errorf("GenerateAutoports = %q, want output before input", got)
	}
}
