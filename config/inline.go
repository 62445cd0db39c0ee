// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"regexp"
	"strings"

	"github.com/sjalloq/slang-autos/diag"
)

// inlineRe matches one "// slang-autos-<key>: <value>" comment line.
var inlineRe = regexp.MustCompile(`//\s*slang-autos-([\w-]+)\s*:\s*(.*)`)

var inlineKeys = map[string]bool{
	"libdir": true, "libext": true, "incdir": true,
	"grouping": true, "indent": true, "alignment": true,
	"strictness": true, "resolved-ranges": true,
}

// ParseInline scans text line by line for in-file configuration
// comments and folds each recognized key into a Layer. Unknown keys
// warn and are retained as custom options rather than dropped.
func ParseInline(text string, file string, sink *diag.Sink) Layer {
	var layer Layer
	for i, line := range strings.Split(text, "\n") {
		m := inlineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key, val := m[1], strings.Trim(strings.TrimSpace(m[2]), `"`)
		lineNo := i + 1
		if !inlineKeys[key] {
			if sink != nil {
				sink.Warnf(file, lineNo, diag.CategoryInlineConfig, "unknown in-file config key %q; retaining as custom", key)
			}
			if layer.Custom == nil {
				layer.Custom = map[string]string{}
			}
			layer.Custom[key] = val
			continue
		}
		applyInlineKey(&layer, key, val, file, lineNo, sink)
	}
	return layer
}

func applyInlineKey(layer *Layer, key, val, file string, line int, sink *diag.Sink) {
	switch key {
	case "libdir":
		layer.LibDirs = append(layer.LibDirs, splitList(val)...)
	case "libext":
		layer.LibExt = append(layer.LibExt, splitList(val)...)
	case "incdir":
		layer.IncDirs = append(layer.IncDirs, splitList(val)...)
	case "indent":
		layer.Indent = &val
	case "alignment":
		setBoolField(&layer.Alignment, val, key, file, line, sink)
	case "grouping":
		b := val == "direction"
		layer.GroupByDirection = &b
	case "strictness":
		b := val == "strict"
		layer.Strict = &b
	case "resolved-ranges":
		setBoolField(&layer.ResolvedRanges, val, key, file, line, sink)
	}
}
