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

// Package callconv normalizes the calling conventions of a module.
//
// After the pass, every function boundary uses the flattened convention:
// no parameter or result of the none type, no tuple result (flattened one
// level into its element types), every tensor parameter with a value
// semantics type, and no residual type bound. Calls and returns are
// rewritten together with the signatures so that the whole module stays
// consistent.
//
// The pass is all-or-nothing: on error the module may be partially
// rewritten and must be discarded by the caller.
package callconv

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/um-urosmarkovic/torch-mlir/build/ir"
	"github.com/um-urosmarkovic/torch-mlir/build/transforms"
)

type pass struct{}

var _ transforms.Pass = pass{}

// New returns the pass normalizing calling conventions.
func New() transforms.Pass { return pass{} }

// Name of the pass.
func (pass) Name() string { return "adjust-calling-conventions" }

// Run the pass over the module.
func (pass) Run(mod *ir.Module) error { return Run(mod) }

// Run normalizes the calling conventions of the module.
func Run(mod *ir.Module) error {
	// Snapshot the calls and returns of the original program before any
	// rewriting: the rewrite synthesizes new calls whose operands have
	// already been converted, and those must not be rewritten again.
	processed, err := originalOps(mod)
	if err != nil {
		return err
	}
	bounds := Bounds(mod)
	for _, f := range mod.Funcs() {
		if err := rewriteSignature(f); err != nil {
			return err
		}
		if err := rewriteBody(f, bounds, processed); err != nil {
			return err
		}
	}
	return nil
}

// originalOps returns the set of calls and returns present in the module
// before any rewriting. Indirect calls cannot be rewritten: encountering
// one fails the whole pass, before any function is mutated.
func originalOps(mod *ir.Module) (map[ir.Op]bool, error) {
	set := make(map[ir.Op]bool)
	for _, f := range mod.Funcs() {
		for _, op := range f.Body.Ops {
			switch op.(type) {
			case *ir.CallIndirectOp:
				return nil, errors.WithStack(&UnsupportedIndirectCallError{Func: f.Name()})
			case *ir.CallOp, *ir.ReturnOp:
				set[op] = true
			}
		}
	}
	return set, nil
}

func rewriteBody(f *ir.Func, bounds BoundTable, processed map[ir.Op]bool) error {
	for _, op := range slices.Clone(f.Body.Ops) {
		if !processed[op] {
			continue
		}
		switch op := op.(type) {
		case *ir.CallOp:
			if err := rewriteCall(f, bounds, op); err != nil {
				return err
			}
		case *ir.ReturnOp:
			rewriteReturn(f, op)
		}
	}
	return nil
}

// flattenTypes maps boundary types to the flattened convention:
// none types are dropped and tuples are replaced by their element types.
// Tuples are flattened one level only: a nested tuple stays a tuple.
func flattenTypes(types []ir.Type) []ir.Type {
	var flat []ir.Type
	for _, typ := range types {
		switch typ := typ.(type) {
		case *ir.TupleType:
			flat = append(flat, typ.Types...)
		default:
			if typ.Kind() == ir.NoneKind {
				continue
			}
			flat = append(flat, typ)
		}
	}
	return flat
}
