// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"fmt"

	"github.com/sjalloq/slang-autos/diag"
	"github.com/sjalloq/slang-autos/source"
	"github.com/sjalloq/slang-autos/sv"
	"github.com/sjalloq/slang-autos/template"
)

// AutosTool expands every AUTO marker in one buffer. It owns its own
// Resolver (port cache) and Matcher and is used for
// exactly one file; parallelism across files is the caller's
// responsibility, one AutosTool per file.
type AutosTool struct {
	Buf      *source.Buffer
	Resolver *Resolver
	Matcher  *template.Matcher
	Sink     *diag.Sink
	Cfg      GenConfig
	Verbose  bool

	// RuleHit, if set, is called once per port whose connection was
	// produced by a matched AUTO_TEMPLATE rule, keyed by the rule's
	// defining file, line, and port regex text. Callers that want a
	// per-invocation hit count (to flag rules that never matched
	// anything) set this before calling Expand; it is left nil by
	// NewAutosTool and ignored when nil.
	RuleHit func(key string)

	// LastAgg is the Aggregator built by the most recent Expand or
	// Aggregate call, retained so verbose callers can summarize
	// aggregated net usage without re-scanning the file and
	// double-counting RuleHit.
	LastAgg *Aggregator
}

// NewAutosTool returns a tool for one buffer, elaborated against top.
func NewAutosTool(buf *source.Buffer, top *sv.InstanceBody, strict bool, cfg GenConfig, verbose bool, sink *diag.Sink) *AutosTool {
	return &AutosTool{
		Buf:      buf,
		Resolver: NewResolver(top, strict, sink),
		Matcher:  template.NewMatcher(sink),
		Sink:     sink,
		Cfg:      cfg,
		Verbose:  verbose,
	}
}

// autoinstJob is the per-AUTOINST state collected during the
// aggregation pass, replayed during the generation pass once the
// file's Aggregator has seen every instance.
type autoinstJob struct {
	marker   Marker
	header   instanceHeader
	ports    []sv.Port
	conns    map[string]Connection
	manual   map[string]bool
}

// Expand runs the full pipeline for one file: scan for markers,
// resolve and aggregate every AUTOINST in source order honoring
// template scoping, then generate and plan every marker's
// replacement, and finally splice them in. It returns the rewritten
// bytes; the caller decides whether to write them to disk or print a
// diff.
func (t *AutosTool) Expand(tree *sv.SyntaxTree) ([]byte, error) {
	markers := Scan(tree)

	templates := map[string]*template.Template{}
	agg := NewAggregator()
	var jobs []autoinstJob
	var logicMarkers, portsMarkers []Marker

	for _, m := range markers {
		switch m.Kind {
		case MarkerAutoTemplate:
			pos := t.Buf.Position(m.Start)
			if tmpl, ok := template.Parse(m.Body, t.Buf.Path, pos.Line, t.Sink); ok {
				templates[tmpl.ModuleName] = tmpl
			}

		case MarkerAutoinst:
			job, ok := t.collectAutoinst(m, templates, agg)
			if ok {
				jobs = append(jobs, job)
			}

		case MarkerAutologic:
			logicMarkers = append(logicMarkers, m)

		case MarkerAutoports:
			portsMarkers = append(portsMarkers, m)
		}
	}
	agg.Resolve()
	t.LastAgg = agg

	var reps []Replacement
	for _, j := range jobs {
		generated := GenerateAutoinst(j.ports, j.conns, j.manual, t.Cfg)
		if rep, ok := PlanAutoinst(t.Buf, j.marker, j.header.Start, generated); ok {
			reps = append(reps, rep)
		}
	}
	for _, m := range logicMarkers {
		existing := findExistingDecls(t.Buf, 0, m.Start)
		generated := GenerateAutologic(agg.InternalNets(), existing, t.Cfg)
		if rep, ok := PlanAutologic(t.Buf, m, generated); ok {
			reps = append(reps, rep)
		}
	}
	for _, m := range portsMarkers {
		existing := findExistingPorts(t.Buf, 0, m.Start)
		generated := GenerateAutoports(agg, existing, t.Cfg)
		if rep, ok := PlanAutoports(t.Buf, m, generated); ok {
			reps = append(reps, rep)
		}
	}

	return Apply(t.Buf.Bytes(), reps)
}

// Aggregate runs only the scan-and-resolve pass over tree, folding
// every AUTOINST's connections into an Aggregator without generating
// or applying any replacement text. Expand computes the same
// Aggregator state internally as part of a full run; this is for
// read-only consumers, such as the diagram renderer, that want
// classified net usage without rewriting the file.
func (t *AutosTool) Aggregate(tree *sv.SyntaxTree) *Aggregator {
	templates := map[string]*template.Template{}
	agg := NewAggregator()
	for _, m := range Scan(tree) {
		switch m.Kind {
		case MarkerAutoTemplate:
			pos := t.Buf.Position(m.Start)
			if tmpl, ok := template.Parse(m.Body, t.Buf.Path, pos.Line, t.Sink); ok {
				templates[tmpl.ModuleName] = tmpl
			}
		case MarkerAutoinst:
			t.collectAutoinst(m, templates, agg)
		}
	}
	agg.Resolve()
	t.LastAgg = agg
	return agg
}

// collectAutoinst resolves the instantiated module's ports, matches
// every port against the currently scoped template (if any), and
// folds the resulting connections into agg. It returns ok=false when
// the enclosing instance header could not be located in the source,
// or when the resolver found no ports, in which case the instance
// text is left untouched.
func (t *AutosTool) collectAutoinst(m Marker, templates map[string]*template.Template, agg *Aggregator) (autoinstJob, bool) {
	header, ok := findInstanceHeader(t.Buf, m.Start)
	if !ok {
		return autoinstJob{}, false
	}

	pos := t.Buf.Position(m.Start)
	ports, ok := t.Resolver.Resolve(header.ModuleType, t.Buf.Path, pos.Line, t.Verbose)
	if !ok || len(ports) == 0 {
		return autoinstJob{}, false
	}

	tmpl := templates[header.ModuleType]
	manual := findManualConnections(t.Buf, header.OpenParen, m.Start)

	conns := make(map[string]Connection, len(ports))
	for _, p := range ports {
		if manual[p.Name] {
			continue
		}
		res := t.Matcher.Match(tmpl, p, header.InstanceName, t.Buf.Path, pos.Line)
		conns[p.Name] = connFromMatch(p, res)
		if t.RuleHit != nil && res.Rule != nil {
			t.RuleHit(ruleKey(tmpl, res.Rule))
		}
	}

	agg.Add(header.InstanceName, connsSlice(conns), ByName(ports))

	return autoinstJob{
		marker: m,
		header: header,
		ports:  ports,
		conns:  conns,
		manual: manual,
	}, true
}

// ruleKey identifies one AUTO_TEMPLATE rule by where it was defined,
// stable across expansion runs so hit counts can be compared against
// a prior run's zero-hit report.
func ruleKey(tmpl *template.Template, rule *template.Rule) string {
	return fmt.Sprintf("%s:%d: %s", tmpl.DefiningFile, rule.Line, rule.PortRegexText)
}

func connsSlice(m map[string]Connection) []Connection {
	out := make([]Connection, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}
