// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sv declares the contract this repository expects from an
// external SystemVerilog parser/elaborator. It holds no parsing logic
// of its own: a real implementation talks to a service such as slang
// and adapts its tree into these types, a narrower, purpose-built view
// for the rest of this repository.
package sv

import "github.com/sjalloq/slang-autos/source"

// TriviaKind classifies one piece of lexical trivia attached to a
// token.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = 1 + iota
	TriviaLineComment
	TriviaBlockComment
	TriviaNewline
)

// Trivia is one piece of lexical material attached to a Token: a run
// of whitespace, a newline, or a comment. Trivia is never itself
// rewritten; it only locates markers.
type Trivia struct {
	Kind TriviaKind
	// Start, End are the byte offsets of this trivia item within its
	// buffer, set by the parser that produced the owning token; the
	// marker scanner reads them as they are.
	Start, End int
	Text       string
}

// NodeKind tags a syntax node with the minimal capability set the
// pipeline needs: iterate child tokens, read the first token's offset,
// and read the kind. Real node kinds are not enumerated exhaustively
// here; only the ones the pipeline dispatches on are named.
type NodeKind uint8

const (
	NodeUnknown NodeKind = iota
	NodeModuleDeclaration
	NodeHierarchyInstantiation
	NodeHierarchicalInstance
	NodePortDeclaration
	NodeANSIPortList
)

// Token is one lexical token in the elaborated syntax tree.
type Token struct {
	Buffer        source.BufferId
	Offset        int
	Text          string
	LeadingTrivia []Trivia
}

// Node is a syntax tree node. Only the capabilities the pipeline
// actually needs are exposed: its kind, its first token's offset (for
// anchoring replacements), and its child tokens in source order (for
// trivia scanning and for locating the `.name(` idiom inside an
// instance's port list).
type Node struct {
	Kind     NodeKind
	Tokens   []Token
	Children []*Node
}

// FirstOffset returns the byte offset of n's first token, searching
// children if n has no direct tokens.
func (n *Node) FirstOffset() int {
	if len(n.Tokens) > 0 {
		return n.Tokens[0].Offset
	}
	for _, c := range n.Children {
		if len(c.Tokens) > 0 || len(c.Children) > 0 {
			return c.FirstOffset()
		}
	}
	return 0
}

// LastToken returns n's last token, searching children in reverse if
// n has no direct tokens.
func (n *Node) LastToken() (Token, bool) {
	if len(n.Tokens) > 0 {
		return n.Tokens[len(n.Tokens)-1], true
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t, ok := n.Children[i].LastToken(); ok {
			return t, true
		}
	}
	return Token{}, false
}

// AllTokens walks n and its children in source order, yielding every
// token exactly once. This is the traversal the marker scanner uses to
// find trivia.
func (n *Node) AllTokens(yield func(*Node, Token)) {
	for _, t := range n.Tokens {
		yield(n, t)
	}
	for _, c := range n.Children {
		c.AllTokens(yield)
	}
}

// SyntaxTree is the parsed form of one source buffer.
type SyntaxTree struct {
	Buffer source.BufferId
	Root   *Node
}
