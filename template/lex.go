// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This tokenizer and cursor follow the familiar Tok/TokKind shape and
// toks cursor with Peek/Try/Skip found in small recursive-descent
// parsers, repurposed here to drive the math-and-ternary interpreter
// over an already variable-substituted signal expression, instead of
// tokenizing a programming language.
package template

import (
	"strconv"
)

type exprTokKind uint8

const (
	exprEOF exprTokKind = iota
	exprNumber
	exprIdent // function names: add, sub, mul, div, mod
	exprOp    // ( ) , ? :
	exprText  // any other run of characters, opaque to the interpreter
)

type exprTok struct {
	kind exprTokKind
	text string
}

func (t exprTok) match(kind exprTokKind, text string) bool {
	return t.kind == kind && t.text == text
}

// lexExpr tokenizes s into a stream suitable for the recursive-descent
// reducer in reduce.go. Unlike a real language lexer it does not need
// to recognize every character class precisely: anything that isn't
// one of the math/ternary operators or a decimal number is folded
// into exprText runs and passed through unevaluated, since the
// surrounding signal-expression text (identifiers, brackets, dots) is
// not itself part of the math grammar.
func lexExpr(s string) []exprTok {
	var toks []exprTok
	i := 0
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	isIdentStart := func(c byte) bool {
		return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	}
	isIdentCont := func(c byte) bool { return isIdentStart(c) || isDigit(c) }

	for i < len(s) {
		c := s[i]
		switch {
		case c == '(' || c == ')' || c == ',' || c == '?' || c == ':':
			toks = append(toks, exprTok{exprOp, string(c)})
			i++
		case isDigit(c):
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			toks = append(toks, exprTok{exprNumber, s[i:j]})
			i = j
		case isIdentStart(c) && isMathKeyword(s, i):
			j := i
			for j < len(s) && isIdentCont(s[j]) {
				j++
			}
			toks = append(toks, exprTok{exprIdent, s[i:j]})
			i = j
		default:
			// Accumulate a text run up to the next recognized
			// operator/number/keyword boundary.
			j := i
			for j < len(s) {
				cj := s[j]
				if cj == '(' || cj == ')' || cj == ',' || cj == '?' || cj == ':' || isDigit(cj) {
					break
				}
				if isIdentStart(cj) && isMathKeyword(s, j) {
					break
				}
				j++
			}
			if j == i {
				j++
			}
			toks = append(toks, exprTok{exprText, s[i:j]})
			i = j
		}
	}
	return toks
}

func isMathKeyword(s string, i int) bool {
	for _, kw := range []string{"add", "sub", "mul", "div", "mod"} {
		n := len(kw)
		if i+n <= len(s) && s[i:i+n] == kw {
			// Must be followed directly by '(' with no whitespace, e.g.
			// "add(a,b)".
			if i+n < len(s) && s[i+n] == '(' {
				return true
			}
		}
	}
	return false
}

type exprToks []exprTok

func (t exprToks) next() exprTok {
	if len(t) == 0 {
		return exprTok{kind: exprEOF}
	}
	return t[0]
}

func (t *exprToks) try(kind exprTokKind, text string) bool {
	if t.next().match(kind, text) {
		*t = (*t)[1:]
		return true
	}
	return false
}

func (t *exprToks) skip(n int) {
	if n > len(*t) {
		n = len(*t)
	}
	*t = (*t)[n:]
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
