// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package autos implements the core AUTO-expansion pipeline: scanning
// for directives, resolving instantiated modules' ports, aggregating
// net usage across instances, generating replacement text, planning
// where it lands in the buffer, and writing the result. Template
// parsing and matching live in the sibling template package;
// configuration and diagnostics live in config and diag.
package autos

import (
	"regexp"

	"github.com/sjalloq/slang-autos/source"
	"github.com/sjalloq/slang-autos/sv"
)

// MarkerKind is one of the four recognized AUTO directive kinds.
type MarkerKind uint8

const (
	MarkerAutoinst MarkerKind = 1 + iota
	MarkerAutologic
	MarkerAutoports
	MarkerAutoTemplate
)

// Marker is one located AUTO directive.
type Marker struct {
	Kind MarkerKind

	Buffer     source.BufferId
	Start, End int // byte range of the marker comment itself
	Pos        source.Position

	// Node is the syntax node whose leading trivia contained this
	// marker, retained so later stages can traverse syntactically from
	// it rather than re-scanning text.
	Node *sv.Node

	// Body is the comment's text with the enclosing /* */ stripped.
	Body string

	// AutoinstFilter is the optional filter regex parsed from
	// /*AUTOINST("regex")*/; nil when absent or when Kind is not
	// MarkerAutoinst.
	AutoinstFilter *regexp.Regexp
}
