// Package runtime implements Sol's environments and evaluator: lexical
// call/block frames, the block-exit signal, and the tree-walking
// evaluator itself. The frame/lookup shape is a parent-linked map with
// Define/Assign/Get operations, split into three disjoint
// arguments/constants/variables maps instead of one merged map.
package runtime

import (
	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/source"
	"github.com/solscript/sol/internal/value"
)

// Frame is one lexical scope: a call frame (function entry) or a block
// scope (any `{ ... }` body). arguments/constants/variables are pairwise
// disjoint within a frame.
type Frame struct {
	parent    *Frame
	arguments map[string]value.Value
	constants map[string]value.Value
	variables map[string]value.Value
}

// NewFrame creates a frame nested inside parent (nil for the outermost
// call frame).
func NewFrame(parent *Frame) *Frame {
	return &Frame{
		parent:    parent,
		arguments: make(map[string]value.Value),
		constants: make(map[string]value.Value),
		variables: make(map[string]value.Value),
	}
}

// DefineArg binds a call argument in this frame.
func (f *Frame) DefineArg(name string, v value.Value) {
	f.arguments[name] = v
}

// DefineConst binds a constant in this frame.
func (f *Frame) DefineConst(name string, v value.Value) {
	f.constants[name] = v
}

// DeclareVar binds a new variable in this frame. It is an error to
// collide with any existing binding of any of the three kinds in this
// same frame.
func (f *Frame) DeclareVar(pos source.Position, name string, v value.Value) error {
	if _, ok := f.arguments[name]; ok {
		return redeclaredErr(pos, name)
	}
	if _, ok := f.constants[name]; ok {
		return redeclaredErr(pos, name)
	}
	if _, ok := f.variables[name]; ok {
		return redeclaredErr(pos, name)
	}
	f.variables[name] = v
	return nil
}

func redeclaredErr(pos source.Position, name string) error {
	return diag.NewRuntimeError(pos, diag.ErrRedeclared, "'%s' is already declared in this scope", name)
}

// Get resolves name by searching from this frame outward; within a
// frame, arguments are checked before constants before variables.
func (f *Frame) Get(pos source.Position, name string) (value.Value, error) {
	for frame := f; frame != nil; frame = frame.parent {
		if v, ok := frame.arguments[name]; ok {
			return v, nil
		}
		if v, ok := frame.constants[name]; ok {
			return v, nil
		}
		if v, ok := frame.variables[name]; ok {
			return v, nil
		}
	}
	return nil, diag.NewRuntimeError(pos, diag.ErrUndefinedName, "undefined name '%s'", name)
}

// Reassign walks outward for an existing *variable* binding and
// overwrites it; the new value's type descriptor must equal the old
// one's. Assigning to an argument or constant binding, or to an unknown
// name, is a runtime error.
func (f *Frame) Reassign(pos source.Position, name string, v value.Value) error {
	for frame := f; frame != nil; frame = frame.parent {
		if old, ok := frame.variables[name]; ok {
			if !old.Type().Equal(v.Type()) {
				return diag.NewRuntimeError(pos, diag.ErrTypeMismatch,
					"cannot reassign '%s': expected %s, got %s", name, old.Type(), v.Type())
			}
			frame.variables[name] = v
			return nil
		}
		if _, ok := frame.arguments[name]; ok {
			return diag.NewRuntimeError(pos, diag.ErrNotReassignable, "'%s' is a parameter and cannot be reassigned", name)
		}
		if _, ok := frame.constants[name]; ok {
			return diag.NewRuntimeError(pos, diag.ErrNotReassignable, "'%s' is a constant and cannot be reassigned", name)
		}
	}
	return diag.NewRuntimeError(pos, diag.ErrUndefinedName, "undefined variable '%s'", name)
}
