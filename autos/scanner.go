// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"strings"

	"github.com/sjalloq/slang-autos/sv"
	"github.com/sjalloq/slang-autos/template"
)

// Scan walks every token of tree in source order, inspects each
// token's leading trivia for a block comment whose body contains one
// of the four marker keywords, and returns one Marker per occurrence
// in source order. It never looks at raw source bytes outside of
// trivia the AST itself attributes to a token.
func Scan(tree *sv.SyntaxTree) []Marker {
	var markers []Marker
	tree.Root.AllTokens(func(n *sv.Node, tok sv.Token) {
		for _, tv := range tok.LeadingTrivia {
			if tv.Kind != sv.TriviaBlockComment {
				continue
			}
			kind, body, ok := classifyComment(tv.Text)
			if !ok {
				continue
			}
			m := Marker{
				Kind:   kind,
				Buffer: tok.Buffer,
				Start:  tv.Start,
				End:    tv.End,
				Node:   n,
				Body:   body,
			}
			if kind == MarkerAutoinst {
				if re, ok := template.ParseAutoinstFilter(body); ok {
					m.AutoinstFilter = re
				}
			}
			markers = append(markers, m)
		}
	})
	return markers
}

// classifyComment strips the /* */ delimiters from a block comment's
// text and identifies which marker keyword, if any, its body names.
func classifyComment(text string) (kind MarkerKind, body string, ok bool) {
	body = strings.TrimSpace(text)
	body = strings.TrimPrefix(body, "/*")
	body = strings.TrimSuffix(body, "*/")
	body = strings.TrimSpace(body)

	switch {
	case strings.HasPrefix(body, "AUTOINST"):
		return MarkerAutoinst, body, true
	case body == "AUTOLOGIC":
		return MarkerAutologic, body, true
	case body == "AUTOPORTS":
		return MarkerAutoports, body, true
	case strings.Contains(body, "AUTO_TEMPLATE"):
		return MarkerAutoTemplate, body, true
	default:
		return 0, "", false
	}
}
