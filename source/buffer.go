// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source holds the immutable bytes of one input file together
// with a byte-offset to (line, column) index, so downstream stages can
// walk a file's raw bytes without copying.
package source

import (
	"fmt"
	"sort"
)

// BufferId identifies one SourceBuffer within a single invocation.
// Ids are assigned in the order buffers are opened and never reused.
type BufferId int

// Buffer is the immutable bytes of one input file plus a byte-offset
// to (line, column) index. All downstream stages address text by
// offset into a Buffer, never by re-scanning raw bytes for markers.
type Buffer struct {
	Id   BufferId
	Path string
	text []byte

	// lineStarts[i] is the byte offset of the first byte of line i+1
	// (1-based lines, 0-based index here).
	lineStarts []int
}

// New indexes text and returns a Buffer carrying id and path for
// diagnostics.
func New(id BufferId, path string, text []byte) *Buffer {
	b := &Buffer{Id: id, Path: path, text: text}
	b.lineStarts = append(b.lineStarts, 0)
	for i, c := range text {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	return b
}

// Bytes returns the buffer's immutable underlying text.
func (b *Buffer) Bytes() []byte { return b.text }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// Slice returns the verbatim bytes in [start, end).
func (b *Buffer) Slice(start, end int) []byte {
	return b.text[start:end]
}

// Position is a 1-based (line, column) pair used only for
// diagnostics; it never participates in byte-range arithmetic.
type Position struct {
	Line, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Position returns the (line, column) of byte offset off.
func (b *Buffer) Position(off int) Position {
	// Largest lineStarts[i] <= off.
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > off
	}) - 1
	if i < 0 {
		i = 0
	}
	return Position{Line: i + 1, Col: off - b.lineStarts[i] + 1}
}

// LineStart returns the byte offset of the first byte of the given
// 1-based line.
func (b *Buffer) LineStart(line int) int {
	if line < 1 {
		line = 1
	}
	if line-1 >= len(b.lineStarts) {
		return len(b.text)
	}
	return b.lineStarts[line-1]
}

// LineEnd returns the byte offset one past the last byte of the line
// containing off, not including the line's trailing newline.
func (b *Buffer) LineEnd(off int) int {
	pos := b.Position(off)
	if pos.Line >= len(b.lineStarts) {
		return len(b.text)
	}
	end := b.lineStarts[pos.Line] - 1
	if end < 0 || end > len(b.text) {
		end = len(b.text)
	}
	return end
}

// LineStartOf returns the byte offset of the first byte of the line
// containing off.
func (b *Buffer) LineStartOf(off int) int {
	return b.LineStart(b.Position(off).Line)
}
