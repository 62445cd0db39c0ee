// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package template

import "strconv"

// mathError is invoked when a div/mod by zero is reduced to zero, so
// the caller can record a warning.
type mathError func(op string)

// reduceMath performs the first reduction pass over an already
// variable-substituted signal expression: it evaluates every
// add/sub/mul/div/mod(...) call, innermost first, replacing each with
// its decimal result. Text outside of math calls passes through
// unchanged.
func reduceMath(s string, onErr mathError) string {
	toks := exprToks(lexExpr(s))
	out, _ := reduceMathToks(toks, onErr)
	return out
}

func reduceMathToks(toks exprToks, onErr mathError) (string, exprToks) {
	out := ""
	for len(toks) > 0 {
		t := toks.next()
		if t.kind == exprIdent {
			val, rest := evalCall(toks, onErr)
			out += strconv.Itoa(val)
			toks = rest
			continue
		}
		out += t.text
		toks.skip(1)
	}
	return out, toks
}

// evalCall parses "name(arg, arg)" at the head of toks (name already
// peeked) and returns its integer result and the remaining tokens.
func evalCall(toks exprToks, onErr mathError) (int, exprToks) {
	name := toks.next().text
	toks.skip(1)
	if !toks.try(exprOp, "(") {
		// Malformed call; treat the name as opaque text worth zero so
		// the caller keeps making progress.
		return 0, toks
	}

	var args []int
	for {
		v, rest := evalArg(toks, onErr)
		args = append(args, v)
		toks = rest
		if toks.try(exprOp, ",") {
			continue
		}
		break
	}
	toks.try(exprOp, ")")

	a := 0
	if len(args) > 0 {
		a = args[0]
	}
	b := 0
	if len(args) > 1 {
		b = args[1]
	}

	switch name {
	case "add":
		return a + b, toks
	case "sub":
		return a - b, toks
	case "mul":
		return a * b, toks
	case "div":
		if b == 0 {
			onErr("div")
			return 0, toks
		}
		return a / b, toks
	case "mod":
		if b == 0 {
			onErr("mod")
			return 0, toks
		}
		return a % b, toks
	default:
		return 0, toks
	}
}

// evalArg parses one argument of a math call: either a nested call or
// a run of text/number tokens up to the next ',' or ')', which is
// then parsed as a decimal integer (0 if not parseable).
func evalArg(toks exprToks, onErr mathError) (int, exprToks) {
	if toks.next().kind == exprIdent {
		return evalCall(toks, onErr)
	}

	text := ""
	for len(toks) > 0 {
		t := toks.next()
		if t.match(exprOp, ",") || t.match(exprOp, ")") {
			break
		}
		text += t.text
		toks.skip(1)
	}
	return atoiOrZero(trimSpace(text)), toks
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// reduceTernary performs the second reduction pass: a ternary of the
// exact shape "cond ? a : b" where cond is literal "0" or "1". Only
// the top-level ternary is evaluated; nested ternaries are not part of
// the grammar.
func reduceTernary(s string) string {
	qIdx := indexByte(s, '?')
	if qIdx < 0 {
		return s
	}
	cond := trimSpace(s[:qIdx])
	if cond != "0" && cond != "1" {
		return s
	}
	rest := s[qIdx+1:]
	cIdx := indexByte(rest, ':')
	if cIdx < 0 {
		return s
	}
	a := trimSpace(rest[:cIdx])
	b := trimSpace(rest[cIdx+1:])
	if cond == "1" {
		return a
	}
	return b
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}
