// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package template

import (
	"regexp"
	"strings"

	"github.com/sjalloq/slang-autos/diag"
)

var headerRe = regexp.MustCompile(`^\s*(\w+)\s+AUTO_TEMPLATE(?:\s+"([^"]*)")?`)
var ruleLineRe = regexp.MustCompile(`^(.+?)=>(.*)$`)

// Parse parses one AUTO_TEMPLATE block-comment body (with the
// enclosing /* */ already stripped) into a Template. file and line
// locate diagnostics at the comment's header line.
//
// Malformed rule regexes are warned about and dropped; the remainder
// of the template is kept. instance_regex is compiled for full-match
// semantics, matching legacy verilog-mode's full-match (not search)
// behavior.
func Parse(body string, file string, line int, sink *diag.Sink) (*Template, bool) {
	m := headerRe.FindStringSubmatch(body)
	if m == nil {
		sink.Warnf(file, line, diag.CategoryTemplateSyntax, "malformed AUTO_TEMPLATE header")
		return nil, false
	}

	t := &Template{
		ModuleName:   m[1],
		DefiningFile: file,
		DefiningLine: line,
	}
	if m[2] != "" {
		re, err := regexp.Compile("^(?:" + m[2] + ")$")
		if err != nil {
			sink.Warnf(file, line, diag.CategoryTemplateRegex, "invalid instance_regex %q: %v", m[2], err)
		} else {
			t.InstanceRegex = re
		}
	}

	rest := body[len(m[0]):]
	lineNo := line
	for _, rawSeg := range splitRuleSegments(rest) {
		seg := strings.TrimSpace(rawSeg.text)
		lineNo = line + rawSeg.lineOffset
		if seg == "" {
			continue
		}
		rm := ruleLineRe.FindStringSubmatch(seg)
		if rm == nil {
			sink.Warnf(file, lineNo, diag.CategoryTemplateSyntax, "malformed AUTO_TEMPLATE rule %q", seg)
			continue
		}
		portRegexText := strings.TrimSpace(rm[1])
		signalExpr := strings.TrimSpace(rm[2])
		signalExpr = strings.TrimSuffix(signalExpr, ",")
		signalExpr = strings.TrimSpace(signalExpr)

		re, err := regexp.Compile(portRegexText)
		if err != nil {
			sink.Warnf(file, lineNo, diag.CategoryTemplateRegex, "invalid port_regex %q: %v", portRegexText, err)
			continue
		}
		t.Rules = append(t.Rules, Rule{
			PortRegexText: portRegexText,
			PortRegex:     re,
			SignalExpr:    signalExpr,
			Line:          lineNo,
		})
	}

	if len(t.Rules) == 0 {
		t.ZeroRules = true
	}
	return t, true
}

type ruleSegment struct {
	text       string
	lineOffset int
}

// splitRuleSegments splits the remainder of a template body into
// candidate rule segments, delimited by newlines and by commas outside
// parentheses and braces, so that both one-rule-per-line bodies and
// comma-packed single-line bodies parse the same way while a comma
// inside a function call or concatenation stays part of its rule.
func splitRuleSegments(s string) []ruleSegment {
	var segs []ruleSegment
	lineOffset := 0
	start := 0
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{':
			depth++
		case ')', '}':
			if depth > 0 {
				depth--
			}
		case '\n':
			segs = append(segs, ruleSegment{s[start:i], lineOffset})
			start = i + 1
			lineOffset++
			depth = 0
		case ',':
			if depth == 0 {
				segs = append(segs, ruleSegment{s[start:i], lineOffset})
				start = i + 1
			}
		}
	}
	segs = append(segs, ruleSegment{s[start:], lineOffset})
	return segs
}

// autoinstFilterRe extracts the optional filter regex from
// /*AUTOINST("regex")*/.
var autoinstFilterRe = regexp.MustCompile(`^\s*AUTOINST\s*\(\s*"([^"]*)"\s*\)`)

// ParseAutoinstFilter extracts the optional filter regex from an
// AUTOINST marker body (with /* */ stripped). Returns nil, true if
// there is no filter (bare /*AUTOINST*/).
func ParseAutoinstFilter(body string) (re *regexp.Regexp, ok bool) {
	body = strings.TrimSpace(body)
	if body == "AUTOINST" {
		return nil, true
	}
	m := autoinstFilterRe.FindStringSubmatch(body)
	if m == nil {
		return nil, false
	}
	compiled, err := regexp.Compile(m[1])
	if err != nil {
		return nil, false
	}
	return compiled, true
}
