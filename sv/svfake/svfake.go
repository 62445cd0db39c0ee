// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svfake is a minimal in-memory stand-in for the external
// sv.Elaborator, used by this repository's own tests. It recognizes a
// small, literal textual convention for module and port declarations
// rather than parsing real SystemVerilog, the same way a test double
// for an external service is expected to satisfy the interface without
// reimplementing the service.
package svfake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sjalloq/slang-autos/source"
	"github.com/sjalloq/slang-autos/sv"
)

// Elaborator holds a fixed module table, keyed by module name, and
// satisfies sv.Elaborator.
type Elaborator struct {
	Modules map[string]*sv.InstanceBody
	// Top is returned as the single top instance; if nil, Elaborate
	// synthesizes one by scanning the buffers for "module NAME" and
	// "InstanceType instName(" lines and wiring up Members from
	// Modules.
	Top *sv.InstanceBody
}

var moduleDeclRe = regexp.MustCompile(`(?m)^\s*module\s+(\w+)`)
var instRe = regexp.MustCompile(`(?m)^\s*(\w+)\s+(?:#\([^)]*\)\s*)?(\w+)\s*\(`)

// Parse builds a syntax tree good enough for the scanner: it finds
// block comments and records them as trivia on a synthetic token
// positioned right after the comment.
func (e *Elaborator) Parse(buf *source.Buffer) (*sv.SyntaxTree, error) {
	text := buf.Bytes()
	root := &sv.Node{Kind: sv.NodeModuleDeclaration}

	// Split into tokens crudely: every run of non-space bytes, up to
	// the start of a block comment, is a token; block comments
	// immediately preceding a token become its
	// leading trivia. This is sufficient for the marker scanner, which
	// only needs trivia association and offsets, not real lexing.
	i := 0
	var pendingTrivia []sv.Trivia
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			j := i
			for j < len(text) && (text[j] == ' ' || text[j] == '\t' || text[j] == '\r') {
				j++
			}
			pendingTrivia = append(pendingTrivia, sv.Trivia{Kind: sv.TriviaWhitespace, Start: i, End: j, Text: string(text[i:j])})
			i = j
		case c == '\n':
			pendingTrivia = append(pendingTrivia, sv.Trivia{Kind: sv.TriviaNewline, Start: i, End: i + 1, Text: "\n"})
			i++
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			j := i + 2
			for j+1 < len(text) && !(text[j] == '*' && text[j+1] == '/') {
				j++
			}
			end := j + 2
			if end > len(text) {
				end = len(text)
			}
			pendingTrivia = append(pendingTrivia, sv.Trivia{Kind: sv.TriviaBlockComment, Start: i, End: end, Text: string(text[i:end])})
			i = end
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			j := i
			for j < len(text) && text[j] != '\n' {
				j++
			}
			pendingTrivia = append(pendingTrivia, sv.Trivia{Kind: sv.TriviaLineComment, Start: i, End: j, Text: string(text[i:j])})
			i = j
		default:
			j := i
			for j < len(text) && !isSep(text[j]) && !(text[j] == '/' && j+1 < len(text) && text[j+1] == '*') {
				j++
			}
			if j == i {
				j = i + 1
			}
			tok := sv.Token{Buffer: buf.Id, Offset: i, Text: string(text[i:j]), LeadingTrivia: pendingTrivia}
			pendingTrivia = nil
			root.Tokens = append(root.Tokens, tok)
			i = j
		}
	}
	if len(pendingTrivia) > 0 {
		root.Tokens = append(root.Tokens, sv.Token{Buffer: buf.Id, Offset: len(text), Text: "", LeadingTrivia: pendingTrivia})
	}
	return &sv.SyntaxTree{Buffer: buf.Id, Root: root}, nil
}

func isSep(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// Elaborate returns a Compilation containing e.Top (or a top
// synthesized from source text when e.Top is nil).
func (e *Elaborator) Elaborate(sources []*source.Buffer, options map[string]string) (*sv.Compilation, error) {
	if e.Top != nil {
		return &sv.Compilation{TopInstances: []*sv.InstanceBody{e.Top}}, nil
	}

	var topName string
	members := []sv.Member{}
	for _, buf := range sources {
		text := string(buf.Bytes())
		if m := moduleDeclRe.FindStringSubmatch(text); m != nil && topName == "" {
			topName = m[1]
		}
		for _, m := range instRe.FindAllStringSubmatch(text, -1) {
			modType, instName := m[1], m[2]
			if body, ok := e.Modules[modType]; ok {
				members = append(members, sv.Member{Name: instName, Body: body})
			}
		}
	}
	if topName == "" {
		topName = "top"
	}
	top := &sv.InstanceBody{ModuleName: topName, Members: members}
	return &sv.Compilation{TopInstances: []*sv.InstanceBody{top}}, nil
}

// ParsePortLine parses a line of the shape "input [7:0] name" or
// "output logic [WIDTH-1:0] name [3:0]" into a sv.Port, for building
// fixtures tersely in tests.
func ParsePortLine(line string) (sv.Port, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return sv.Port{}, fmt.Errorf("bad port line %q", line)
	}
	var p sv.Port
	switch fields[0] {
	case "input":
		p.Dir = sv.DirInput
	case "output":
		p.Dir = sv.DirOutput
	case "inout":
		p.Dir = sv.DirInout
	default:
		return sv.Port{}, fmt.Errorf("bad direction %q", fields[0])
	}
	fields = fields[1:]
	if len(fields) > 0 && fields[0] == "logic" {
		fields = fields[1:]
	}
	if len(fields) > 0 && fields[0] == "signed" {
		p.IsSigned = true
		fields = fields[1:]
	}
	if len(fields) > 0 && strings.HasPrefix(fields[0], "[") {
		p.PackedRangeOriginal = fields[0]
		p.PackedRangeResolved = fields[0]
		p.Width = rangeWidth(fields[0])
		fields = fields[1:]
	} else {
		p.Width = 1
	}
	if len(fields) == 0 {
		return sv.Port{}, fmt.Errorf("missing port name in %q", line)
	}
	p.Name = fields[0]
	fields = fields[1:]
	if len(fields) > 0 {
		p.UnpackedDims = strings.Join(fields, " ")
		p.IsUnpackedArray = true
	}
	return p, nil
}

func rangeWidth(r string) int {
	r = strings.TrimPrefix(r, "[")
	r = strings.TrimSuffix(r, "]")
	parts := strings.SplitN(r, ":", 2)
	if len(parts) != 2 {
		return 1
	}
	hi, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	lo, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 1
	}
	if hi < lo {
		hi, lo = lo, hi
	}
	return hi - lo + 1
}
