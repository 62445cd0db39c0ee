// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"testing"

	"github.com/sjalloq/slang-autos/diag"
	"github.com/sjalloq/slang-autos/sv"
)

func TestResolverFindsModule(t *testing.T) {
	sub := &sv.InstanceBody{ModuleName: "sub", Ports: []sv.Port{{Name: "din", Dir: sv.DirInput, Width: 1}}}
	top := &sv.InstanceBody{ModuleName: "top", Members: []sv.Member{{Name: "u_sub", Body: sub}}}

	var sink diag.Sink
	r := NewResolver(top, true, &sink)

	ports, ok := r.Resolve("sub", "top.sv", 1, false)
	if !ok || len(ports) != 1 || ports[0].Name != "din" {
		t.Fatalf("Resolve(sub) = (%v, %v), want the one din port", ports, ok)
	}
	if sink.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", sink.All())
	}
}

func TestResolverMissingModuleStrict(t *testing.T) {
	top := &sv.InstanceBody{ModuleName: "top"}
	var sink diag.Sink
	r := NewResolver(top, true, &sink)

	if _, ok := r.Resolve("missing", "top.sv", 5, false); ok {
		t.Error("Resolve found a nonexistent module")
	}
	if !sink.HasErrors() {
		t.Error("strict mode should record an error for a missing module")
	}
}

func TestResolverMissingModuleLenient(t *testing.T) {
	top := &sv.InstanceBody{ModuleName: "top"}
	var sink diag.Sink
	r := NewResolver(top, false, &sink)

	if _, ok := r.Resolve("missing", "top.sv", 5, false); ok {
		t.Error("Resolve found a nonexistent module")
	}
	if sink.HasErrors() {
		t.Error("lenient mode should only warn, not error, for a missing module")
	}
	warnings, _ := sink.Counts()
	if warnings != 1 {
		t.Errorf("expected one warning, got %d", warnings)
	}
}

func TestResolverCaches(t *testing.T) {
	sub := &sv.InstanceBody{ModuleName: "sub"}
	top := &sv.InstanceBody{ModuleName: "top", Members: []sv.Member{{Name: "u_sub", Body: sub}}}
	var sink diag.Sink
	r := NewResolver(top, true, &sink)

	r.Resolve("sub", "top.sv", 1, false)
	r.Resolve("sub", "top.sv", 1, false)
	if len(sink.All()) != 0 {
		t.Errorf("cached lookup re-reported diagnostics: %v", sink.All())
	}
}

func TestByName(t *testing.T) {
	ports := []sv.Port{{Name: "a"}, {Name: "b"}}
	m := ByName(ports)
	if len(m) != 2 || m["a"].Name != "a" || m["b"].Name != "b" {
		t.Errorf("ByName(%v) = %v", ports, m)
	}
}
