// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"strings"

	"github.com/sjalloq/slang-autos/source"
)

// beginAutomaticLogic and endAutomatics are the bit-exact delimiter
// comments both emitted and recognised on re-expansion.
const (
	beginAutomaticLogic = "// Beginning of automatic logic"
	beginAutomaticWires = "// Beginning of automatic wires"
	endAutomatics       = "// End of automatics"
)

// PlanAutoinst plans the AUTOINST replacement: it spans the
// instance's opening token through the closing parenthesis of its
// port-connection list, found by scanning forward from the marker for
// the next unmatched ')'. The instance text up to and including the
// marker (header, manual connections, marker comment) is kept; whatever
// followed the marker is replaced by a newline, generated (the text
// GenerateAutoinst produced) and the closing ')'. If generated is empty
// (the resolver found no ports), no replacement is produced and the
// instance text is left untouched.
func PlanAutoinst(buf *source.Buffer, m Marker, instanceStart int, generated string) (Replacement, bool) {
	if generated == "" {
		return Replacement{}, false
	}
	text := buf.Bytes()
	closeParen, depth := -1, 0
	for i := m.End; i < len(text) && closeParen < 0; i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				closeParen = i
			}
			depth--
		}
	}
	if closeParen < 0 {
		return Replacement{}, false
	}
	return Replacement{
		Start:           instanceStart,
		End:             closeParen + 1,
		ReplacementText: string(text[instanceStart:m.End]) + "\n" + generated + ")",
		Description:     "AUTOINST",
	}, true
}

// findMatchingClose returns the offset of the ')' that closes the
// first '(' found at or after start, or -1 if none is found.
func findMatchingClose(text []byte, start int) int {
	i := start
	for i < len(text) && text[i] != '(' {
		i++
	}
	if i >= len(text) {
		return -1
	}
	depth := 0
	for ; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// PlanAutologic plans the AUTOLOGIC replacement. If an existing
// generated block (delimited by beginAutomaticLogic/Wires and
// endAutomatics) begins on or after the marker's line, within the
// 4096 bytes findExistingBlock searches, the whole block is
// replaced; otherwise the replacement is a zero-width insertion after
// the marker's line and the generated text is prefixed with a
// newline.
func PlanAutologic(buf *source.Buffer, m Marker, generated string) (Replacement, bool) {
	lineStart := buf.LineStartOf(m.Start)
	lineEnd := buf.LineEnd(m.Start)

	if lo, hi, ok := findExistingBlock(buf, lineStart); ok {
		if generated == "" {
			return Replacement{Start: lo, End: hi, ReplacementText: "", Description: "AUTOLOGIC (removed)"}, true
		}
		return Replacement{Start: lo, End: hi, ReplacementText: generated, Description: "AUTOLOGIC"}, true
	}
	if generated == "" {
		return Replacement{}, false
	}
	return Replacement{
		Start:           lineEnd,
		End:             lineEnd,
		ReplacementText: "\n" + generated,
		Description:     "AUTOLOGIC",
	}, true
}

// findExistingBlock looks for a beginAutomaticLogic/Wires ...
// endAutomatics block starting at or after lineStart, within a few
// lines, returning the byte range [begin-of-begin-line,
// end-of-end-line).
func findExistingBlock(buf *source.Buffer, lineStart int) (lo, hi int, ok bool) {
	text := buf.Bytes()
	searchEnd := lineStart + 4096
	if searchEnd > len(text) {
		searchEnd = len(text)
	}
	window := string(text[lineStart:searchEnd])
	bi := strings.Index(window, beginAutomaticLogic)
	if bi < 0 {
		bi = strings.Index(window, beginAutomaticWires)
	}
	if bi < 0 {
		return 0, 0, false
	}
	ei := strings.Index(window[bi:], endAutomatics)
	if ei < 0 {
		return 0, 0, false
	}
	beginOff := lineStart + bi
	endOff := lineStart + bi + ei + len(endAutomatics)
	return buf.LineStartOf(beginOff), buf.LineEnd(endOff), true
}

// PlanAutoports plans the AUTOPORTS replacement. Unlike AUTOINST and
// AUTOLOGIC, a prior expansion's generated ports carry no delimiter
// comment of their own; they sit directly between the marker and the
// module's ANSI port-list closing ')'. So the replacement always spans
// from the marker through that ')' (exclusive), re-emitting the marker
// as the leading comment of the fresh port declarations, which erases
// any previously-generated ports in that span along with the marker
// itself. If the enclosing port list's ')' cannot be located, this
// falls back to replacing only the marker's own range.
func PlanAutoports(buf *source.Buffer, m Marker, generated string) (Replacement, bool) {
	closeParen, ok := findPortListClose(buf, m.Start)
	if !ok {
		if generated == "" {
			return Replacement{}, false
		}
		return Replacement{
			Start:           m.Start,
			End:             m.End,
			ReplacementText: "/*AUTOPORTS*/\n" + generated,
			Description:     "AUTOPORTS",
		}, true
	}

	text := buf.Bytes()
	stale := strings.TrimSpace(string(text[m.End:closeParen]))
	if generated == "" && stale == "" {
		return Replacement{}, false
	}

	newText := "/*AUTOPORTS*/"
	if generated != "" {
		newText += "\n" + generated
	}
	newText += "\n"
	return Replacement{
		Start:           m.Start,
		End:             closeParen,
		ReplacementText: newText,
		Description:     "AUTOPORTS",
	}, true
}
