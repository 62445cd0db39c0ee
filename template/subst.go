// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sjalloq/slang-autos/sv"
)

// substContext holds everything a template rule's signal_expression
// can refer to: the per-rule captures from matching the port regex,
// the per-instance captures from matching the instance regex (or the
// default "first decimal run" fallback), the port descriptor itself,
// and the instance name.
type substContext struct {
	PortCaptures []string // index 0 is $0, the whole port name
	InstCaptures []string // index 0 is %0, the whole instance-regex match
	Port         sv.Port
	InstName     string
}

var placeholderRe = regexp.MustCompile(
	`\$\{(\d+)\}|\$(\d+)|%\{(\d+)\}|%(\d+)|@|\bport\.name\b|\bport\.width\b|\bport\.range\b|\bport\.direction\b|\bport\.input\b|\bport\.output\b|\bport\.inout\b|\binst\.name\b`)

// substitute replaces every recognized placeholder in expr with its
// value from ctx. unresolved collects the literal text of any
// placeholder that was recognized syntactically but had no
// corresponding capture (e.g. $2 when the port regex has only one
// group), so the caller can issue its one-time-per-placeholder
// warning.
func substitute(expr string, ctx substContext) (result string, unresolved []string) {
	out := placeholderRe.ReplaceAllStringFunc(expr, func(m string) string {
		val, ok := resolvePlaceholder(m, ctx)
		if !ok {
			unresolved = append(unresolved, m)
			return m
		}
		return val
	})
	return out, unresolved
}

func resolvePlaceholder(m string, ctx substContext) (string, bool) {
	switch {
	case m == "@":
		return capture(ctx.InstCaptures, 1)
	case m == "port.name":
		return ctx.Port.Name, true
	case m == "port.width":
		return strconv.Itoa(ctx.Port.Width), true
	case m == "port.range":
		if ctx.Port.PackedRangeResolved != "" {
			return ctx.Port.PackedRangeResolved, true
		}
		return ctx.Port.PackedRangeOriginal, true
	case m == "port.direction":
		return ctx.Port.Dir.String(), true
	case m == "port.input":
		return boolDigit(ctx.Port.Dir == sv.DirInput), true
	case m == "port.output":
		return boolDigit(ctx.Port.Dir == sv.DirOutput), true
	case m == "port.inout":
		return boolDigit(ctx.Port.Dir == sv.DirInout), true
	case m == "inst.name":
		return ctx.InstName, true
	}

	if strings.HasPrefix(m, "${") {
		n, _ := strconv.Atoi(m[2 : len(m)-1])
		return capture(ctx.PortCaptures, n)
	}
	if strings.HasPrefix(m, "$") {
		n, _ := strconv.Atoi(m[1:])
		return capture(ctx.PortCaptures, n)
	}
	if strings.HasPrefix(m, "%{") {
		n, _ := strconv.Atoi(m[2 : len(m)-1])
		return capture(ctx.InstCaptures, n)
	}
	if strings.HasPrefix(m, "%") {
		n, _ := strconv.Atoi(m[1:])
		return capture(ctx.InstCaptures, n)
	}
	return "", false
}

func capture(captures []string, n int) (string, bool) {
	if n < 0 || n >= len(captures) {
		return "", false
	}
	return captures[n], true
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// defaultInstCaptures implements the "first decimal run anywhere in
// the instance name" fallback used when a template has no
// instance_regex.
func defaultInstCaptures(instName string) []string {
	start := -1
	end := -1
	for i := 0; i < len(instName); i++ {
		if instName[i] >= '0' && instName[i] <= '9' {
			if start < 0 {
				start = i
			}
			end = i + 1
		} else if start >= 0 {
			break
		}
	}
	if start < 0 {
		return []string{""}
	}
	match := instName[start:end]
	return []string{match, match}
}

func describePlaceholder(p string) string {
	return fmt.Sprintf("%q", p)
}
