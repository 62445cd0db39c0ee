// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sjalloq/slang-autos/diag"
)

// RepoFileName is the filename a repository's own configuration is
// discovered under.
const RepoFileName = ".slang-autos.toml"

// FindRepoFile walks up from dir looking for RepoFileName or a VCS
// root (a directory containing ".git"), returning the config file's
// path if found in either location.
func FindRepoFile(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		candidate := filepath.Join(dir, RepoFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			// Reached the VCS root without finding a config file; stop
			// here rather than climbing past the repository.
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

var repoSectionKeys = map[string]map[string]bool{
	"library": {"libdir": true, "libext": true, "incdir": true},
	"formatting": {"indent": true, "alignment": true, "grouping": true, "use_logic": true, "resolved_ranges": true},
	"behavior": {"strictness": true},
}

// ParseRepoFile reads a key=value file with bracketed `[section]`
// headers (library, formatting, behavior) into a Layer. Malformed
// files produce an error; the caller falls back to defaults.
func ParseRepoFile(path string, sink *diag.Sink) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()

	var layer Layer
	section := ""
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return Layer{}, fmt.Errorf("config: %s:%d: malformed line %q", path, lineNo, line)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.Trim(strings.TrimSpace(line[eq+1:]), `"`)

		if !repoSectionKeys[section][key] {
			if sink != nil {
				sink.Warnf(path, lineNo, diag.CategoryInlineConfig, "unknown repository config key %q in section %q; retaining as custom", key, section)
			}
			if layer.Custom == nil {
				layer.Custom = map[string]string{}
			}
			layer.Custom[key] = val
			continue
		}
		applyRepoKey(&layer, key, val, path, lineNo, sink)
	}
	if err := scanner.Err(); err != nil {
		return Layer{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return layer, nil
}

func applyRepoKey(layer *Layer, key, val, file string, line int, sink *diag.Sink) {
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
	case "use_logic":
		setBoolField(&layer.UseLogic, val, key, file, line, sink)
	case "resolved_ranges":
		setBoolField(&layer.ResolvedRanges, val, key, file, line, sink)
	case "strictness":
		b := val == "strict"
		layer.Strict = &b
	}
}

func setBoolField(field **bool, val, key, file string, line int, sink *diag.Sink) {
	b, err := strconv.ParseBool(val)
	if err != nil {
		if sink != nil {
			sink.Warnf(file, line, diag.CategoryInlineConfig, "invalid value %q for %q; keeping the default", val, key)
		}
		return
	}
	*field = &b
}

func splitList(val string) []string {
	var out []string
	for _, s := range strings.Split(val, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
