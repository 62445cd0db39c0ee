// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sv

import "github.com/sjalloq/slang-autos/source"

// Direction is a port's signal direction.
type Direction uint8

const (
	DirUnknown Direction = iota
	DirInput
	DirOutput
	DirInout
)

func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	case DirInout:
		return "inout"
	default:
		return "unknown"
	}
}

// Port is the resolver's flattened view of one declared port on a
// module.
type Port struct {
	Name     string
	Dir      Direction
	Width    int
	IsSigned bool

	// PackedRangeOriginal is the source text of the packed dimension,
	// e.g. "[WIDTH-1:0]", recovered verbatim from the buffer. Empty
	// for scalar ports.
	PackedRangeOriginal string
	// PackedRangeResolved is the elaborated form, e.g. "[7:0]".
	PackedRangeResolved string

	// UnpackedDims is the verbatim source text of any unpacked
	// dimensions, e.g. "[0:3]".
	UnpackedDims string
	IsUnpackedArray bool
}

// InstanceBody is the result of elaborating one module: its ordered
// port list. A real elaborator also exposes the body's own children
// for recursive search (instance arrays, nested instances); that
// detail is represented here only far enough to let Resolver walk it.
type InstanceBody struct {
	ModuleName string
	Ports      []Port
	// Members are nested instance/array symbols beneath this body, in
	// declaration order, used to search without elaborating siblings
	// that aren't needed.
	Members []Member
}

// Member is either a single instance or an instance array within a
// body's direct members.
type Member struct {
	IsArray  bool
	Name     string
	Body     *InstanceBody // set when !IsArray
	Elements []*InstanceBody // set when IsArray; recurse into Elements[0]
}

// Compilation is the elaborator's top-level result.
type Compilation struct {
	TopInstances []*InstanceBody
}

// Elaborator is the external collaborator this repository never
// implements itself: a SystemVerilog parser and elaborator. The core
// only consumes this interface.
type Elaborator interface {
	Parse(buf *source.Buffer) (*SyntaxTree, error)
	Elaborate(sources []*source.Buffer, options map[string]string) (*Compilation, error)
}

// FindModule searches depth-first from top through its members,
// descending into each member's body (only the first element of an
// instance array), for the first body whose name matches name. siblings collects up to five sibling names seen
// along the way for verbose diagnostics.
func FindModule(top *InstanceBody, name string) (found *InstanceBody, siblings []string) {
	if top == nil {
		return nil, nil
	}
	if top.ModuleName == name {
		return top, nil
	}
	for _, m := range top.Members {
		var candidate *InstanceBody
		if m.IsArray {
			if len(m.Elements) > 0 {
				candidate = m.Elements[0]
			}
		} else {
			candidate = m.Body
		}
		if candidate == nil {
			continue
		}
		if len(siblings) < 5 {
			siblings = append(siblings, candidate.ModuleName)
		}
		if candidate.ModuleName == name {
			return candidate, siblings
		}
		if f, s := FindModule(candidate, name); f != nil {
			return f, s
		} else {
			for _, sib := range s {
				if len(siblings) >= 5 {
					break
				}
				siblings = append(siblings, sib)
			}
		}
	}
	return nil, siblings
}
