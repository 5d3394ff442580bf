// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ir is the intermediate representation of tensor programs
// using the conventions of the Torch dialect.
// The representation is built by an importer upstream,
// then rewritten in place by the transform passes
// [github.com/um-urosmarkovic/torch-mlir/build/transforms].
package ir

import (
	"slices"

	"github.com/pkg/errors"
)

// ----------------------------------------------------------------------------
// Types of node in the tree.
type (
	// Node in the tree.
	Node interface {
		// node marks a structure as a node structure.
		// It prevents external implementations of the interface.
		node()
	}

	// Value is a value defined once and used by operations in a function body.
	// A value is identified by its pointer.
	Value struct {
		typ Type
		def Op
	}

	// Param is a function parameter.
	Param struct {
		// PName is the name of the parameter in the source program.
		PName string
		// Val is the value of the parameter in the function body.
		Val *Value
		// Bound, when not nil, narrows the effective type that callers
		// provide for the parameter. The calling convention pass
		// incorporates the bound into the signature, then erases it.
		Bound Type
	}

	// Func is a function of a module.
	// Functions are referenced by calls through their name,
	// unique within their module.
	Func struct {
		FName   string
		Params  []*Param
		Results []Type
		Body    *Block
	}

	// Block is an ordered list of operations.
	Block struct {
		Ops []Op
	}

	// Module owns a set of functions.
	Module struct {
		MName  string
		funcs  []*Func
		byName map[string]*Func
	}
)

var (
	_ Node = (*Value)(nil)
	_ Node = (*Func)(nil)
	_ Node = (*Block)(nil)
	_ Node = (*Module)(nil)
)

func (*Value) node()  {}
func (*Func) node()   {}
func (*Block) node()  {}
func (*Module) node() {}

func newValue(typ Type, def Op) *Value {
	return &Value{typ: typ, def: def}
}

// Type of the value.
func (v *Value) Type() Type { return v.typ }

// SetType sets the type of the value.
func (v *Value) SetType(typ Type) { v.typ = typ }

// DefiningOp returns the operation defining the value,
// or nil for a function parameter.
func (v *Value) DefiningOp() Op { return v.def }

// NewParam returns a function parameter and its value.
func NewParam(name string, typ Type) *Param {
	return &Param{PName: name, Val: newValue(typ, nil)}
}

// NewFunc returns a function with an empty body.
func NewFunc(name string, params []*Param, results []Type) *Func {
	return &Func{
		FName:   name,
		Params:  params,
		Results: results,
		Body:    &Block{},
	}
}

// Name of the function (without the module name).
func (f *Func) Name() string { return f.FName }

// ParamTypes returns the type of each parameter, in order.
func (f *Func) ParamTypes() []Type {
	types := make([]Type, len(f.Params))
	for i, param := range f.Params {
		types[i] = param.Val.Type()
	}
	return types
}

// Uses returns the operations of the body using the value as an operand,
// in body order. An operation using the value more than once appears once.
func (f *Func) Uses(val *Value) []Op {
	var uses []Op
	for _, op := range f.Body.Ops {
		if slices.Contains(op.Operands(), val) {
			uses = append(uses, op)
		}
	}
	return uses
}

// ReplaceAllUses replaces every use of old as an operand in the body with new.
func (f *Func) ReplaceAllUses(old, new *Value) {
	f.ReplaceAllUsesExcept(old, new, nil)
}

// ReplaceAllUsesExcept replaces every use of old as an operand in the body
// with new, leaving the operands of except untouched.
func (f *Func) ReplaceAllUsesExcept(old, new *Value, except Op) {
	for _, op := range f.Body.Ops {
		if op == except {
			continue
		}
		for i, operand := range op.Operands() {
			if operand == old {
				op.SetOperand(i, new)
			}
		}
	}
}

// Index returns the position of the operation in the block,
// or -1 if the block does not contain the operation.
func (b *Block) Index(op Op) int {
	return slices.Index(b.Ops, op)
}

// Insert inserts operations at the given position.
func (b *Block) Insert(i int, ops ...Op) {
	b.Ops = slices.Insert(b.Ops, i, ops...)
}

// Append appends operations at the end of the block.
func (b *Block) Append(ops ...Op) {
	b.Ops = append(b.Ops, ops...)
}

// Remove removes an operation from the block.
// Returns false if the block does not contain the operation.
func (b *Block) Remove(op Op) bool {
	i := b.Index(op)
	if i < 0 {
		return false
	}
	b.Ops = slices.Delete(b.Ops, i, i+1)
	return true
}

// NewModule returns an empty module.
func NewModule(name string) *Module {
	return &Module{MName: name, byName: make(map[string]*Func)}
}

// Name of the module.
func (m *Module) Name() string { return m.MName }

// AppendFunc adds a function to the module.
func (m *Module) AppendFunc(f *Func) error {
	if _, ok := m.byName[f.Name()]; ok {
		return errors.Errorf("function %q already declared in module %q", f.Name(), m.Name())
	}
	m.funcs = append(m.funcs, f)
	m.byName[f.Name()] = f
	return nil
}

// Func returns a function given its name, or nil if the module
// declares no function with that name.
func (m *Module) Func(name string) *Func {
	return m.byName[name]
}

// Funcs returns the functions of the module in declaration order.
func (m *Module) Funcs() []*Func {
	return m.funcs
}
