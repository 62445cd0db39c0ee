// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package template

import (
	"fmt"

	"github.com/sjalloq/slang-autos/diag"
	"github.com/sjalloq/slang-autos/sv"
)

// Kind is the terminal state of one port match: connected, unconnected,
// or constant.
type Kind uint8

const (
	Connected Kind = iota
	Unconnected
	Constant
)

// MatchResult is what Match returns for one port: the signal expression
// to connect (or the empty string for Unconnected) and which rule, if
// any, produced it.
type MatchResult struct {
	Kind       Kind
	SignalExpr string
	Rule       *Rule // nil if no rule matched; port.Name was used verbatim
}

// Matcher matches one port name against an ordered rule list and
// performs substitution, math, and ternary reduction. A Matcher is not
// safe for concurrent use; each file-processing pipeline owns one.
type Matcher struct {
	sink *diag.Sink
}

// NewMatcher returns a Matcher that reports warnings to sink.
func NewMatcher(sink *diag.Sink) *Matcher {
	return &Matcher{sink: sink}
}

// Match matches one port against tmpl, the template scoping this
// instance, or nil if none applies. file and line locate diagnostics.
func (m *Matcher) Match(tmpl *Template, port sv.Port, instName string, file string, line int) MatchResult {
	if tmpl == nil {
		return MatchResult{Kind: Connected, SignalExpr: port.Name}
	}

	var matchedRule *Rule
	var portCaptures []string
	for i := range tmpl.Rules {
		rule := &tmpl.Rules[i]
		sm := rule.PortRegex.FindStringSubmatch(port.Name)
		if sm == nil {
			continue
		}
		matchedRule = rule
		portCaptures = append([]string{port.Name}, sm[1:]...)
		break
	}
	if matchedRule == nil {
		return MatchResult{Kind: Connected, SignalExpr: port.Name}
	}

	instCaptures := m.instanceCaptures(tmpl, instName)
	ctx := substContext{
		PortCaptures: portCaptures,
		InstCaptures: instCaptures,
		Port:         port,
		InstName:     instName,
	}

	substituted, unresolved := substitute(matchedRule.SignalExpr, ctx)
	for _, p := range unresolved {
		key := fmt.Sprintf("%s\x00%s\x00%s", instName, port.Name, p)
		m.sink.Once(key, file, line, diag.CategoryUnresolvedCapture,
			"unresolved placeholder %s in template rule for port %s on instance %s",
			describePlaceholder(p), port.Name, instName)
	}

	reduced := reduceMath(substituted, func(op string) {
		m.sink.Warnf(file, line, diag.CategoryMathError,
			"%s by zero in template rule for port %s on instance %s", op, port.Name, instName)
	})
	reduced = reduceTernary(reduced)

	switch reduced {
	case "_":
		return MatchResult{Kind: Unconnected, Rule: matchedRule}
	case "'0", "'1", "'z":
		if port.Dir == sv.DirOutput {
			m.sink.Warnf(file, line, diag.CategoryConstantOutput,
				"constant %s assigned to output port %s; consider a direction-aware ternary", reduced, port.Name)
		}
		return MatchResult{Kind: Constant, SignalExpr: reduced, Rule: matchedRule}
	default:
		return MatchResult{Kind: Connected, SignalExpr: reduced, Rule: matchedRule}
	}
}

// instanceCaptures matches tmpl's instance_regex (full-match) against
// instName, or falls back to the "first decimal run" default when
// tmpl has none or it fails to match.
func (m *Matcher) instanceCaptures(tmpl *Template, instName string) []string {
	if tmpl.InstanceRegex == nil {
		return defaultInstCaptures(instName)
	}
	sm := tmpl.InstanceRegex.FindStringSubmatch(instName)
	if sm == nil {
		return defaultInstCaptures(instName)
	}
	return sm
}
