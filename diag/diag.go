// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag is an append-only collection of warnings and errors
// with location and category, formatted for the caller. Diagnostics
// accumulate in an explicit Sink threaded through the pipeline rather
// than going to a global logger.
package diag

import "fmt"

// Severity is a diagnostic's severity.
type Severity uint8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Category classifies a diagnostic for programmatic filtering.
type Category string

const (
	CategoryTemplateSyntax    Category = "template_syntax"
	CategoryTemplateRegex     Category = "template_regex"
	CategoryAutoinstSyntax    Category = "autoinst_syntax"
	CategoryUnresolvedCapture Category = "unresolved_capture"
	CategoryConstantOutput    Category = "constant_output"
	CategoryMathError         Category = "math_error"
	CategoryPortParse         Category = "port_parse"
	CategoryInlineConfig      Category = "inline_config"
	CategoryConfig            Category = "config"
)

// Diagnostic is one reported warning or error.
type Diagnostic struct {
	Severity Severity
	Message  string
	File     string
	Line     int
	Category Category
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Severity, d.Message)
}

// Sink accumulates diagnostics for one invocation. The zero value is
// ready to use.
type Sink struct {
	diags []Diagnostic

	// seen de-duplicates one-time warnings keyed by an arbitrary
	// caller-chosen string, e.g. one warning per (instance, port,
	// placeholder) triple.
	seen map[string]bool
}

// Warnf records a warning.
func (s *Sink) Warnf(file string, line int, cat Category, format string, args ...interface{}) {
	s.add(Warning, file, line, cat, format, args...)
}

// Errorf records an error.
func (s *Sink) Errorf(file string, line int, cat Category, format string, args ...interface{}) {
	s.add(Error, file, line, cat, format, args...)
}

func (s *Sink) add(sev Severity, file string, line int, cat Category, format string, args ...interface{}) {
	s.diags = append(s.diags, Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Line:     line,
		Category: cat,
	})
}

// Once reports a warning at most once for the given dedup key across
// this Sink's lifetime, returning true if it was newly reported.
func (s *Sink) Once(key, file string, line int, cat Category, format string, args ...interface{}) bool {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.Warnf(file, line, cat, format, args...)
	return true
}

// All returns every diagnostic recorded so far, in report order.
func (s *Sink) All() []Diagnostic { return s.diags }

// Counts returns the number of warnings and errors recorded.
func (s *Sink) Counts() (warnings, errors int) {
	for _, d := range s.diags {
		if d.Severity == Error {
			errors++
		} else {
			warnings++
		}
	}
	return
}

// HasErrors reports whether any error-severity diagnostic was
// recorded.
func (s *Sink) HasErrors() bool {
	_, errs := s.Counts()
	return errs > 0
}

// Format renders every diagnostic as "file:line: severity: message",
// one per line.
func (s *Sink) Format() string {
	out := ""
	for _, d := range s.diags {
		out += d.String() + "\n"
	}
	return out
}
