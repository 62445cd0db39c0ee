// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"sort"
	"strings"

	"github.com/sjalloq/slang-autos/sv"
)

// GenConfig parametrizes generation: the resolved view of the
// config layer's formatting-relevant options.
type GenConfig struct {
	Indent           string
	Alignment        bool
	GroupByDirection bool // false means alphabetical
	UseLogic         bool
	ResolvedRanges   bool
}

func (c GenConfig) logicKeyword() string {
	if c.UseLogic {
		return "logic"
	}
	return "wire"
}

func (c GenConfig) rangeText(p sv.Port) string {
	if c.ResolvedRanges && p.PackedRangeResolved != "" {
		return p.PackedRangeResolved
	}
	if p.PackedRangeOriginal != "" {
		return p.PackedRangeOriginal
	}
	return p.PackedRangeResolved
}

func (u *NetUsage) rangeText(cfg GenConfig) string {
	if u.RangeText == "" {
		return ""
	}
	if cfg.ResolvedRanges && !looksResolved(u.RangeText) {
		return synthesizeRange(u.Width)
	}
	return u.RangeText
}

// looksResolved reports whether a range string contains only digits,
// colons, brackets and whitespace, i.e. no symbolic reference that
// resolved_ranges must strip.
func looksResolved(r string) bool {
	for i := 0; i < len(r); i++ {
		c := r[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '[' || c == ']' || c == ':' || c == ' ' || c == '-':
		default:
			return false
		}
	}
	return true
}

// portGroups buckets ports into outputs/inouts/inputs, preserving
// declaration order within each bucket, or returns a single
// alphabetical bucket when cfg is not grouping by direction.
func portGroups(ports []sv.Port, cfg GenConfig) [][]sv.Port {
	if !cfg.GroupByDirection {
		sorted := append([]sv.Port(nil), ports...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
		return [][]sv.Port{sorted}
	}
	var outs, inouts, ins []sv.Port
	for _, p := range ports {
		switch p.Dir {
		case sv.DirOutput:
			outs = append(outs, p)
		case sv.DirInout:
			inouts = append(inouts, p)
		default:
			ins = append(ins, p)
		}
	}
	return [][]sv.Port{outs, inouts, ins}
}

var groupHeaders = []string{"// Outputs", "// Inouts", "// Inputs"}

// GenerateAutoinst produces the full `.port(signal)` connection list
// for one instance. conns is indexed by port name; ports not present
// in conns are emitted unconnected. manual holds the port names the
// user already wrote by hand between the instance's `(` and the
// marker: those are omitted entirely.
func GenerateAutoinst(ports []sv.Port, conns map[string]Connection, manual map[string]bool, cfg GenConfig) string {
	groups := portGroups(ports, cfg)

	width := 0
	if cfg.Alignment {
		for _, p := range ports {
			if manual[p.Name] {
				continue
			}
			if len(p.Name) > width {
				width = len(p.Name)
			}
		}
	}

	var b strings.Builder

	// Count total emitted lines up front so the last one can omit its
	// trailing comma.
	total := 0
	for _, grp := range groups {
		for _, p := range grp {
			if !manual[p.Name] {
				total++
			}
		}
	}

	emitted := 0
	for gi, grp := range groups {
		var kept []sv.Port
		for _, p := range grp {
			if !manual[p.Name] {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if cfg.GroupByDirection {
			b.WriteString(cfg.Indent)
			b.WriteString(groupHeaders[gi])
			b.WriteString("\n")
		}
		for _, p := range kept {
			emitted++
			b.WriteString(cfg.Indent)
			b.WriteString(".")
			name := p.Name
			if cfg.Alignment {
				name = padRight(name, width)
			}
			b.WriteString(name)
			b.WriteString(" (")
			if c, ok := conns[p.Name]; ok && !c.IsUnconnected {
				b.WriteString(c.SignalExpr)
				// Annotate a plain-identifier connection with the
				// port's own range, the way a bare signal name (no
				// template override) is conventionally written with
				// its width for readability.
				if p.Width > 1 && !strings.ContainsAny(c.SignalExpr, "[{") {
					b.WriteString(cfg.rangeText(p))
				}
			}
			b.WriteString(")")
			if emitted < total {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// GenerateAutologic emits one `logic <range> <name>;` per internal net
// not already declared, framed by the delimiter comments recognised
// on re-expansion.
func GenerateAutologic(nets []*NetUsage, existingDecls map[string]bool, cfg GenConfig) string {
	var kept []*NetUsage
	for _, n := range nets {
		if !existingDecls[n.Name] {
			kept = append(kept, n)
		}
	}
	if !cfg.GroupByDirection {
		sort.Slice(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })
	}
	if len(kept) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(cfg.Indent)
	b.WriteString("// Beginning of automatic logic\n")
	for _, n := range kept {
		b.WriteString(cfg.Indent)
		b.WriteString(cfg.logicKeyword())
		if r := n.rangeText(cfg); r != "" {
			b.WriteString(" ")
			b.WriteString(r)
		}
		b.WriteString(" ")
		b.WriteString(n.Name)
		b.WriteString(";\n")
	}
	b.WriteString(cfg.Indent)
	b.WriteString("// End of automatics")
	return b.String()
}

// GenerateAutoports emits ANSI-style `direction logic <range> <name>`
// declarations for the three external roles, skipping ports already
// declared before the marker.
func GenerateAutoports(agg *Aggregator, existingPorts map[string]bool, cfg GenConfig) string {
	type entry struct {
		dir sv.Direction
		u   *NetUsage
	}
	var all []entry
	for _, u := range agg.ExternalOutputs() {
		all = append(all, entry{sv.DirOutput, u})
	}
	for _, u := range agg.Inouts() {
		all = append(all, entry{sv.DirInout, u})
	}
	for _, u := range agg.ExternalInputs() {
		all = append(all, entry{sv.DirInput, u})
	}
	if !cfg.GroupByDirection {
		sort.Slice(all, func(i, j int) bool { return all[i].u.Name < all[j].u.Name })
	}

	var kept []entry
	for _, e := range all {
		if !existingPorts[e.u.Name] {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return ""
	}

	var b strings.Builder
	for i, e := range kept {
		b.WriteString(cfg.Indent)
		b.WriteString(e.dir.String())
		b.WriteString(" ")
		b.WriteString(cfg.logicKeyword())
		if r := e.u.rangeText(cfg); r != "" {
			b.WriteString(" ")
			b.WriteString(r)
		}
		b.WriteString(" ")
		b.WriteString(e.u.Name)
		if i < len(kept)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
