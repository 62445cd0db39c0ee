// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import "github.com/sjalloq/slang-autos/sv"

// NetUsage is the aggregated view of one net name across every
// AUTOINST in a file.
type NetUsage struct {
	Name       string
	Width      int
	RangeText  string
	Instances  []string // source-instance names, first-seen order
	DrivenBy   bool
	ConsumedBy bool
	IsInout    bool
	IsConcatInternal bool

	instanceSet map[string]bool
	rangeIsLiteral bool // true once RangeText came from a contributor, not a synthesis fallback
}

// Aggregator folds each AUTOINST's port connections into a
// net_name -> NetUsage map and answers the four classification
// queries the generator needs.
type Aggregator struct {
	nets  map[string]*NetUsage
	order []string // first-seen net name order, so iteration does not depend on map order
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{nets: make(map[string]*NetUsage)}
}

// Add folds one instance's connections against the instantiated
// module's resolved port list. ports is indexed by port name so a
// connection naming a port the module doesn't actually declare is
// silently ignored rather than aggregated.
func (a *Aggregator) Add(instanceName string, conns []Connection, ports map[string]sv.Port) {
	for _, c := range conns {
		port, known := ports[c.PortName]
		if !known {
			continue
		}
		if c.IsUnconnected || c.IsConstant {
			continue
		}

		width, rangeText, isLiteral := a.effectiveWidth(port, c.SignalExpr)

		for _, name := range c.ExtractedIdents {
			u := a.get(name)
			a.merge(u, width, rangeText, isLiteral)
			if !u.instanceSet[instanceName] {
				u.instanceSet[instanceName] = true
				u.Instances = append(u.Instances, instanceName)
			}
			switch port.Dir {
			case sv.DirOutput:
				u.DrivenBy = true
			case sv.DirInput:
				u.ConsumedBy = true
			case sv.DirInout:
				u.DrivenBy = true
				u.ConsumedBy = true
				u.IsInout = true
			}
			if c.IsConcat && port.Dir == sv.DirOutput {
				u.IsConcatInternal = true
			}
		}
	}
}

// effectiveWidth widens the declared port width to cover a literal
// bit/part-select suffix found on the connection expression.
func (a *Aggregator) effectiveWidth(port sv.Port, expr string) (width int, rangeText string, isLiteral bool) {
	width = port.Width
	if port.PackedRangeResolved != "" {
		rangeText = port.PackedRangeResolved
		isLiteral = true
	} else if port.PackedRangeOriginal != "" {
		rangeText = port.PackedRangeOriginal
		isLiteral = true
	}

	if idx := indexOfSuffixBracket(expr); idx >= 0 {
		if max, ok := literalMaxIndex(expr[idx:]); ok && max+1 > width {
			width = max + 1
			rangeText = synthesizeRange(width)
			isLiteral = true
		}
	}
	return width, rangeText, isLiteral
}

// indexOfSuffixBracket finds the start of a trailing "[...]" suffix on
// a single-identifier connection expression, or -1 if expr is not of
// that shape (e.g. a concatenation or a bare identifier).
func indexOfSuffixBracket(expr string) int {
	i := 0
	for i < len(expr) && isIdentContByte(expr[i]) {
		i++
	}
	if i == 0 || i >= len(expr) || expr[i] != '[' {
		return -1
	}
	return i
}

func (a *Aggregator) get(name string) *NetUsage {
	u, ok := a.nets[name]
	if !ok {
		u = &NetUsage{Name: name, instanceSet: make(map[string]bool)}
		a.nets[name] = u
		a.order = append(a.order, name)
	}
	return u
}

// merge applies the width-conflict policy: maximum width wins; its
// range text is adopted, with ties keeping the first seen.
func (a *Aggregator) merge(u *NetUsage, width int, rangeText string, isLiteral bool) {
	if width > u.Width {
		u.Width = width
		if isLiteral {
			u.RangeText = rangeText
			u.rangeIsLiteral = true
		} else {
			u.RangeText = synthesizeRange(width)
			u.rangeIsLiteral = false
		}
	} else if width == u.Width && u.RangeText == "" && isLiteral {
		u.RangeText = rangeText
		u.rangeIsLiteral = true
	}
}

// Resolve finalizes range text for nets that never saw a literal
// contributor, synthesising "[W-1:0]". Call once after all Add calls
// for a file.
func (a *Aggregator) Resolve() {
	for _, name := range a.order {
		u := a.nets[name]
		if u.RangeText == "" && u.Width > 1 {
			u.RangeText = synthesizeRange(u.Width)
		}
	}
}

func (a *Aggregator) classify(pred func(*NetUsage) bool) []*NetUsage {
	var out []*NetUsage
	for _, name := range a.order {
		u := a.nets[name]
		if pred(u) {
			out = append(out, u)
		}
	}
	return out
}

// ExternalInputs returns nets consumed but never driven, excluding
// inouts and concat-internal nets.
func (a *Aggregator) ExternalInputs() []*NetUsage {
	return a.classify(func(u *NetUsage) bool {
		return u.ConsumedBy && !u.DrivenBy && !u.IsConcatInternal
	})
}

// ExternalOutputs returns nets driven but never consumed, excluding
// inouts and concat-internal nets.
func (a *Aggregator) ExternalOutputs() []*NetUsage {
	return a.classify(func(u *NetUsage) bool {
		return u.DrivenBy && !u.ConsumedBy && !u.IsInout && !u.IsConcatInternal
	})
}

// Inouts returns every net that was connected to an inout port.
func (a *Aggregator) Inouts() []*NetUsage {
	return a.classify(func(u *NetUsage) bool { return u.IsInout })
}

// InternalNets returns nets both driven and consumed (excluding
// inouts), or marked concat-internal; these are AUTOLOGIC's source.
func (a *Aggregator) InternalNets() []*NetUsage {
	return a.classify(func(u *NetUsage) bool {
		if u.IsConcatInternal {
			return true
		}
		return u.DrivenBy && u.ConsumedBy && !u.IsInout
	})
}
