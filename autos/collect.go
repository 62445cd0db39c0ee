// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autos

import (
	"regexp"

	"github.com/sjalloq/slang-autos/source"
)

// instanceHeaderRe matches "ModuleType instanceName (" possibly with
// parameters (#(...)) between the type and instance names, anchored
// to the nearest preceding occurrence of a marker.
var instanceHeaderRe = regexp.MustCompile(`(\w+)\s*(?:#\s*\((?:[^()]|\([^()]*\))*\))?\s+(\w+)\s*\(`)

// instanceHeader is what findInstanceHeader recovers about the
// hierarchy instantiation immediately enclosing an AUTOINST marker.
type instanceHeader struct {
	ModuleType   string
	InstanceName string
	// Start is the byte offset of the first character of ModuleType,
	// the replacement's start offset.
	Start int
	// OpenParen is the offset of the instance's opening '('.
	OpenParen int
}

// findInstanceHeader scans backward from an AUTOINST marker's offset
// for the nearest "Type inst (" idiom, the shape an AUTOINST
// replacement anchors to.
func findInstanceHeader(buf *source.Buffer, markerOffset int) (instanceHeader, bool) {
	text := buf.Bytes()
	lineStart := buf.LineStartOf(markerOffset)
	windowStart := lineStart - 512
	if windowStart < 0 {
		windowStart = 0
	}
	window := string(text[windowStart:markerOffset])

	locs := instanceHeaderRe.FindAllStringSubmatchIndex(window, -1)
	if len(locs) == 0 {
		return instanceHeader{}, false
	}
	last := locs[len(locs)-1]
	return instanceHeader{
		ModuleType:   window[last[2]:last[3]],
		InstanceName: window[last[4]:last[5]],
		Start:        windowStart + last[0],
		OpenParen:    windowStart + last[1] - 1,
	}, true
}

// manualConnRe matches one ".port_name(" idiom, used to detect ports
// the user already connected by hand.
var manualConnRe = regexp.MustCompile(`\.(\w+)\s*\(`)

// findManualConnections returns the set of port names already written
// as `.name(` between openParen and markerOffset (exclusive).
func findManualConnections(buf *source.Buffer, openParen, markerOffset int) map[string]bool {
	text := buf.Bytes()
	if openParen < 0 || markerOffset > len(text) || openParen >= markerOffset {
		return nil
	}
	segment := string(text[openParen:markerOffset])
	out := make(map[string]bool)
	for _, m := range manualConnRe.FindAllStringSubmatch(segment, -1) {
		out[m[1]] = true
	}
	return out
}

// declRe matches a net declaration of the shape
// "logic|wire [range] name;" used to collect already-declared signal
// names inside a module.
var declRe = regexp.MustCompile(`(?m)^\s*(?:logic|wire)\s*(?:\[[^\]]*\])?\s*(\w+)\s*;`)

// findExistingDecls scans [start,end) for net declarations and
// returns the set of declared names.
func findExistingDecls(buf *source.Buffer, start, end int) map[string]bool {
	text := buf.Bytes()
	if start < 0 || end > len(text) || start >= end {
		return nil
	}
	out := make(map[string]bool)
	for _, m := range declRe.FindAllStringSubmatch(string(text[start:end]), -1) {
		out[m[1]] = true
	}
	return out
}

// findPortListClose returns the offset of the ')' that closes the
// module port list enclosing markerOffset, found by scanning backward
// for the nearest unmatched '(' and then forward for its match. This
// is the AUTOPORTS analogue of findMatchingClose/findInstanceHeader:
// an AUTOPORTS marker always sits inside a module's ANSI port-list
// parentheses, and everything between the marker and this ')' is
// fair game for a previous expansion's generated port declarations.
func findPortListClose(buf *source.Buffer, markerOffset int) (int, bool) {
	text := buf.Bytes()
	windowStart := markerOffset - 8192
	if windowStart < 0 {
		windowStart = 0
	}
	depth := 0
	open := -1
	for i := markerOffset - 1; i >= windowStart; i-- {
		switch text[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return -1, false
	}
	closeParen := findMatchingClose(text, open)
	if closeParen < 0 {
		return -1, false
	}
	return closeParen, true
}

// ansiPortRe matches one ANSI port declaration
// "input|output|inout [logic] [range] name" used to collect
// already-declared port names ahead of an AUTOPORTS marker.
var ansiPortRe = regexp.MustCompile(`\b(?:input|output|inout)\s+(?:logic\s+|wire\s+)?(?:\[[^\]]*\]\s*)?(\w+)`)

// findExistingPorts scans [start,end) for ANSI port declarations and
// returns the set of declared names.
func findExistingPorts(buf *source.Buffer, start, end int) map[string]bool {
	text := buf.Bytes()
	if start < 0 || end > len(text) || start >= end {
		return nil
	}
	out := make(map[string]bool)
	for _, m := range ansiPortRe.FindAllStringSubmatch(string(text[start:end]), -1) {
		out[m[1]] = true
	}
	return out
}
