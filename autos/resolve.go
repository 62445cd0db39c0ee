// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"fmt"

	"github.com/sjalloq/slang-autos/diag"
	"github.com/sjalloq/slang-autos/sv"
)

// Resolver looks up a module's elaborated port list by name, caching
// results within one invocation.
type Resolver struct {
	top    *sv.InstanceBody
	strict bool
	sink   *diag.Sink

	cache map[string][]sv.Port
}

// NewResolver returns a Resolver that searches top's member tree.
// strict selects the missing-module disposition (error vs warning).
func NewResolver(top *sv.InstanceBody, strict bool, sink *diag.Sink) *Resolver {
	return &Resolver{top: top, strict: strict, sink: sink, cache: make(map[string][]sv.Port)}
}

// Resolve returns the ordered port descriptors for moduleName, or nil
// if the module could not be found or had an empty port name. file
// and line locate the diagnostic;
// verbose additionally reports up to five sibling module names.
func (r *Resolver) Resolve(moduleName, file string, line int, verbose bool) ([]sv.Port, bool) {
	if ports, ok := r.cache[moduleName]; ok {
		return ports, true
	}

	body, siblings := sv.FindModule(r.top, moduleName)
	if body == nil {
		msg := fmt.Sprintf("module %q not found during elaboration", moduleName)
		if verbose && len(siblings) > 0 {
			msg += fmt.Sprintf(" (siblings seen: %v)", siblings)
		}
		if r.strict {
			r.sink.Errorf(file, line, diag.CategoryPortParse, "%s", msg)
		} else {
			r.sink.Warnf(file, line, diag.CategoryPortParse, "%s", msg)
		}
		return nil, false
	}

	for _, p := range body.Ports {
		if p.Name == "" {
			r.sink.Errorf(file, line, diag.CategoryPortParse,
				"module %q has a port with an empty name; check for an undefined macro in its port declaration", moduleName)
			return nil, false
		}
	}

	r.cache[moduleName] = body.Ports
	return body.Ports, true
}

// ByName returns ports indexed by name, the shape the aggregator's
// declared-port check wants.
func ByName(ports []sv.Port) map[string]sv.Port {
	m := make(map[string]sv.Port, len(ports))
	for _, p := range ports {
		m[p.Name] = p
	}
	return m
}
