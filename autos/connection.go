// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"strings"

	"github.com/sjalloq/slang-autos/sv"
	"github.com/sjalloq/slang-autos/template"
)

// Connection is one port connection on an instance. SignalExpr is the
// verbatim text the generator would write on the right of a
// `.port_name( ... )` form, or the already-substituted expression for
// a freshly matched template rule.
type Connection struct {
	PortName      string
	SignalExpr    string
	Dir           sv.Direction
	IsUnconnected bool
	IsConstant    bool
	IsConcat      bool

	// ExtractedIdents are the bare identifiers reachable by descending
	// SignalExpr's syntax, skipping numeric indices, hierarchical
	// suffixes, member-access tails, and literals.
	ExtractedIdents []string
}

// connFromMatch builds a Connection from one template.MatchResult,
// classifying it per the Kind the matcher returned.
func connFromMatch(port sv.Port, res template.MatchResult) Connection {
	c := Connection{PortName: port.Name, Dir: port.Dir, SignalExpr: res.SignalExpr}
	switch res.Kind {
	case template.Unconnected:
		c.IsUnconnected = true
	case template.Constant:
		c.IsConstant = true
	default:
		c.IsConcat = strings.Contains(res.SignalExpr, "{") && strings.Contains(res.SignalExpr, ",")
		c.ExtractedIdents = extractIdentifiers(res.SignalExpr)
	}
	return c
}

// extractIdentifiers descends a connection expression's text and
// returns the bare identifiers it references, skipping bit/part-select
// suffixes, hierarchical dotted suffixes, and numeric literals. It is
// scoped to what AUTOINST connection expressions actually contain:
// identifiers, indices, concatenation braces, and commas.
func extractIdentifiers(expr string) []string {
	var out []string
	seen := make(map[string]bool)
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case isIdentStartByte(c):
			j := i + 1
			for j < len(expr) && isIdentContByte(expr[j]) {
				j++
			}
			name := expr[i:j]
			i = j
			// Skip a trailing bit/part-select suffix; it names no new
			// identifier.
			for i < len(expr) && expr[i] == '[' {
				depth := 1
				k := i + 1
				for k < len(expr) && depth > 0 {
					if expr[k] == '[' {
						depth++
					} else if expr[k] == ']' {
						depth--
					}
					k++
				}
				i = k
			}
			// Skip a hierarchical or member-access tail: "name.field"
			// contributes only "name".
			for i < len(expr) && expr[i] == '.' {
				i++
				for i < len(expr) && isIdentContByte(expr[i]) {
					i++
				}
			}
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		case (c >= '0' && c <= '9') || c == '\'':
			// A numeric literal such as 8'h0 is skipped whole, so its
			// base letter and digits are not read as an identifier.
			j := i + 1
			for j < len(expr) && (isIdentContByte(expr[j]) || expr[j] == '\'') {
				j++
			}
			i = j
		default:
			i++
		}
	}
	return out
}

func isIdentStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}
