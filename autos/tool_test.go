// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"strings"
	"testing"

	"github.com/sjalloq/slang-autos/diag"
	"github.com/sjalloq/slang-autos/source"
	"github.com/sjalloq/slang-autos/sv"
	"github.com/sjalloq/slang-autos/sv/svfake"
)

func mustPort(t *testing.T, line string) sv.Port {
	t.Helper()
	p, err := svfake.ParsePortLine(line)
	if err != nil {
		t.Fatalf("ParsePortLine(%q): %v", line, err)
	}
	return p
}

func TestExpandAutoinstAndAutologic(t *testing.T) {
	text := []byte(
		"module top;\n" +
			"  wire clk;\n" +
			"  sub u_sub (/*AUTOINST*/);\n" +
			"  /*AUTOLOGIC*/\n" +
			"endmodule\n",
	)
	buf := source.New(0, "top.sv", text)

	subBody := &sv.InstanceBody{
		ModuleName: "sub",
		Ports: []sv.Port{
			mustPort(t, "input clk"),
			mustPort(t, "input [7:0] din"),
			mustPort(t, "output dout"),
		},
	}
	e := &svfake.Elaborator{Modules: map[string]*sv.InstanceBody{"sub": subBody}}
	tree, err := e.Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	comp, err := e.Elaborate([]*source.Buffer{buf}, nil)
	if err != nil {
		t.Fatalf("Elaborate: %v", err)
	}

	var sink diag.Sink
	cfg := GenConfig{Indent: "  ", Alignment: true, GroupByDirection: true, UseLogic: true, ResolvedRanges: true}
	tool := NewAutosTool(buf, comp.TopInstances[0], false, cfg, false, &sink)

	out, err := tool.Expand(tree)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	got := string(out)

	if !strings.Contains(got, ".clk  (clk)") && !strings.Contains(got, ".clk (clk)") {
		t.Errorf("expanded AUTOINST missing clk connection:\n%s", got)
	}
	if !strings.Contains(got, ".din ") {
		t.Errorf("expanded AUTOINST missing din connection:\n%s", got)
	}
	if !strings.Contains(got, "dout") {
		t.Errorf("expanded AUTOINST missing dout connection:\n%s", got)
	}
	if strings.Contains(got, "Beginning of automatic logic") {
		t.Errorf("expanded output has an AUTOLOGIC block, but a single instance drives no internal net:\n%s", got)
	}
	if sink.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", sink.All())
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	text := []byte(
		"module top;\n" +
			"  sub u_sub (/*AUTOINST*/);\n" +
			"endmodule\n",
	)
	buf := source.New(0, "top.sv", text)
	subBody := &sv.InstanceBody{
		ModuleName: "sub",
		Ports:      []sv.Port{mustPort(t, "input din")},
	}
	e := &svfake.Elaborator{Modules: map[string]*sv.InstanceBody{"sub": subBody}}
	tree, _ := e.Parse(buf)
	comp, _ := e.Elaborate([]*source.Buffer{buf}, nil)

	var sink diag.Sink
	cfg := GenConfig{Indent: "  ", GroupByDirection: true}
	tool := NewAutosTool(buf, comp.TopInstances[0], false, cfg, false, &sink)

	first, err := tool.Expand(tree)
	if err != nil {
		t.Fatalf("Expand (first pass): %v", err)
	}

	buf2 := source.New(0, "top.sv", first)
	tree2, _ := e.Parse(buf2)
	var sink2 diag.Sink
	tool2 := NewAutosTool(buf2, comp.TopInstances[0], false, cfg, false, &sink2)
	second, err := tool2.Expand(tree2)
	if err != nil {
		t.Fatalf("Expand (second pass): %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("expansion is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestExpandAutoportsIsIdempotent(t *testing.T) {
	text := []byte(
		"module top (\n" +
			"  /*AUTOPORTS*/\n" +
			");\n" +
			"  sub u_sub (/*AUTOINST*/);\n" +
			"endmodule\n",
	)
	buf := source.New(0, "top.sv", text)
	subBody := &sv.InstanceBody{
		ModuleName: "sub",
		Ports: []sv.Port{
			mustPort(t, "input [7:0] din"),
			mustPort(t, "output dout"),
		},
	}
	e := &svfake.Elaborator{Modules: map[string]*sv.InstanceBody{"sub": subBody}}
	tree, _ := e.Parse(buf)
	comp, _ := e.Elaborate([]*source.Buffer{buf}, nil)

	cfg := GenConfig{Indent: "  ", Alignment: true, GroupByDirection: true, UseLogic: true}

	var sink diag.Sink
	tool := NewAutosTool(buf, comp.TopInstances[0], false, cfg, false, &sink)
	first, err := tool.Expand(tree)
	if err != nil {
		t.Fatalf("Expand (first pass): %v", err)
	}
	got := string(first)
	if strings.Count(got, "input") != 1 {
		t.Fatalf("expected exactly one input port declaration after first pass, got:\n%s", got)
	}
	if strings.Count(got, "output") != 1 {
		t.Fatalf("expected exactly one output port declaration after first pass, got:\n%s", got)
	}

	buf2 := source.New(0, "top.sv", first)
	tree2, _ := e.Parse(buf2)
	var sink2 diag.Sink
	tool2 := NewAutosTool(buf2, comp.TopInstances[0], false, cfg, false, &sink2)
	second, err := tool2.Expand(tree2)
	if err != nil {
		t.Fatalf("Expand (second pass): %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("AUTOPORTS expansion is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	got2 := string(second)
	if strings.Count(got2, "input") != 1 {
		t.Errorf("second pass duplicated the input port declaration:\n%s", got2)
	}
	if strings.Count(got2, "output") != 1 {
		t.Errorf("second pass duplicated the output port declaration:\n%s", got2)
	}
}

func TestExpandReportsRuleHits(t *testing.T) {
	text := []byte(
		"module top;\n" +
			"  /* sub AUTO_TEMPLATE\n" +
			"   din => din,\n" +
			"  */\n" +
			"  sub u_sub (/*AUTOINST*/);\n" +
			"endmodule\n",
	)
	buf := source.New(0, "top.sv", text)
	subBody := &sv.InstanceBody{
		ModuleName: "sub",
		Ports:      []sv.Port{mustPort(t, "input din")},
	}
	e := &svfake.Elaborator{Modules: map[string]*sv.InstanceBody{"sub": subBody}}
	tree, _ := e.Parse(buf)
	comp, _ := e.Elaborate([]*source.Buffer{buf}, nil)

	var sink diag.Sink
	tool := NewAutosTool(buf, comp.TopInstances[0], false, GenConfig{GroupByDirection: true}, false, &sink)
	var hits []string
	tool.RuleHit = func(key string) { hits = append(hits, key) }

	if _, err := tool.Expand(tree); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("RuleHit called %d times, want 1: %v", len(hits), hits)
	}
	if !strings.Contains(hits[0], "din") {
		t.Errorf("RuleHit key = %q, want it to name the din rule", hits[0])
	}
	if tool.LastAgg == nil {
		t.Error("Expand should populate LastAgg")
	}
}

func TestAggregate(t *testing.T) {
	text := []byte(
		"module top;\n" +
			"  sub u_a (/*AUTOINST*/);\n" +
			"  sub u_b (/*AUTOINST*/);\n" +
			"endmodule\n",
	)
	buf := source.New(0, "top.sv", text)
	subBody := &sv.InstanceBody{
		ModuleName: "sub",
		Ports: []sv.Port{
			mustPort(t, "input [7:0] din"),
			mustPort(t, "output dout"),
		},
	}
	e := &svfake.Elaborator{Modules: map[string]*sv.InstanceBody{"sub": subBody}}
	tree, err := e.Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	comp, err := e.Elaborate([]*source.Buffer{buf}, nil)
	if err != nil {
		t.Fatalf("Elaborate: %v", err)
	}

	var sink diag.Sink
	tool := NewAutosTool(buf, comp.TopInstances[0], false, GenConfig{}, false, &sink)
	agg := tool.Aggregate(tree)

	inputs := agg.ExternalInputs()
	if len(inputs) != 1 || inputs[0].Name != "din" || inputs[0].Width != 8 {
		t.Errorf("ExternalInputs = %+v, want one 8-bit din", inputs)
	}
	if len(inputs[0].Instances) != 2 {
		t.Errorf("din should be shared across both instances, got %v", inputs[0].Instances)
	}

	outputs := agg.ExternalOutputs()
	if len(outputs) != 1 || outputs[0].Name != "dout" {
		t.Errorf("ExternalOutputs = %+v, want one dout", outputs)
	}
}
