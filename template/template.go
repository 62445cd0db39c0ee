// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package template implements the template parser and matcher: parsing
// AUTO_TEMPLATE comment bodies into rule sets, and matching one port
// name against a rule list to produce the signal expression to
// connect.
package template

import "regexp"

// Rule is one port_regex => signal_expression mapping line, in source
// order; rules are tried first match wins.
type Rule struct {
	PortRegexText string
	PortRegex     *regexp.Regexp
	SignalExpr    string
	Line          int
}

// Template is one parsed AUTO_TEMPLATE comment.
type Template struct {
	ModuleName    string
	InstanceRegex *regexp.Regexp // nil if none given
	Rules         []Rule
	DefiningFile  string
	DefiningLine  int
	// ZeroRules is set when every rule line failed to parse; the
	// template is still retained but flagged so callers can decide
	// whether to warn further.
	ZeroRules bool
}
