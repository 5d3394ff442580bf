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

// Package valuesem converts tensor computations to value semantics where
// the conversion is provably sound.
//
// The pass looks for subgraphs starting at a torch.copy.to_tensor and
// terminating at torch.copy.to_vtensor operations or returns, possibly
// with intervening static information casts. No operation of such a
// subgraph mutates the tensor, so the copies are erased and the casts
// retyped with value semantics. Returns keep their original types: an
// explicit copy is rebuilt for the operands whose value changed semantics.
//
// The pass is best effort: a subgraph reaching any other operation is
// left untouched, and the pass never fails.
package valuesem

import (
	"slices"

	"github.com/um-urosmarkovic/torch-mlir/build/ir"
	"github.com/um-urosmarkovic/torch-mlir/build/transforms"
)

type pass struct{}

var _ transforms.Pass = pass{}

// New returns the pass maximizing value semantics.
func New() transforms.Pass { return pass{} }

// Name of the pass.
func (pass) Name() string { return "maximize-value-semantics" }

// Run the pass over the module.
func (pass) Run(mod *ir.Module) error { return Run(mod) }

// Run maximizes value semantics in every function of the module.
func Run(mod *ir.Module) error {
	for _, f := range mod.Funcs() {
		rewriteFunc(f)
	}
	return nil
}

func rewriteFunc(f *ir.Func) {
	for _, op := range slices.Clone(f.Body.Ops) {
		copy, ok := op.(*ir.CopyToNonValueTensorOp)
		if !ok {
			continue
		}
		if f.Body.Index(copy) < 0 {
			continue
		}
		rewriteSubgraph(f, copy)
	}
}

// subgraph is the forward slice from a torch.copy.to_tensor, split by
// operation kind. The slice is only collected when every transitive user
// is one of the three kinds below.
type subgraph struct {
	casts   []*ir.StaticInfoCastOp
	copies  []*ir.CopyToValueTensorOp
	returns []*ir.ReturnOp
}

func collectSubgraph(f *ir.Func, copy *ir.CopyToNonValueTensorOp) (*subgraph, bool) {
	sub := &subgraph{}
	visited := make(map[ir.Op]bool)
	work := f.Uses(copy.Res)
	for len(work) > 0 {
		op := work[len(work)-1]
		work = work[:len(work)-1]
		if visited[op] {
			continue
		}
		visited[op] = true
		switch op := op.(type) {
		case *ir.CopyToValueTensorOp:
			sub.copies = append(sub.copies, op)
		case *ir.ReturnOp:
			sub.returns = append(sub.returns, op)
		case *ir.StaticInfoCastOp:
			sub.casts = append(sub.casts, op)
			if _, ok := op.Res.Type().(*ir.NonValueTensorType); ok {
				work = append(work, f.Uses(op.Res)...)
			}
		default:
			// The tensor escapes into an operation the analysis does not
			// know to be mutation free.
			return nil, false
		}
	}
	if len(sub.copies) == 0 && len(sub.casts) == 0 {
		// Only returns: rewriting would change nothing, since returns
		// must keep their original types.
		return nil, false
	}
	return sub, true
}

func rewriteSubgraph(f *ir.Func, copy *ir.CopyToNonValueTensorOp) {
	sub, ok := collectSubgraph(f, copy)
	if !ok {
		return
	}

	// Non-value types of the values about to change semantics, recorded
	// before the rewrite so that returns can be restored.
	nonValue := make(map[*ir.Value]ir.TensorType)
	nonValue[copy.Res] = copy.Res.Type().(*ir.NonValueTensorType)
	for _, cast := range sub.casts {
		if nv, ok := cast.Res.Type().(*ir.NonValueTensorType); ok {
			nonValue[cast.Res] = nv
		}
	}
	type returnFix struct {
		ret   *ir.ReturnOp
		index int
		typ   ir.TensorType
	}
	var fixes []returnFix
	for _, ret := range sub.returns {
		for i, val := range ret.Vals {
			if typ, ok := nonValue[val]; ok {
				fixes = append(fixes, returnFix{ret: ret, index: i, typ: typ})
			}
		}
	}

	for _, c := range sub.copies {
		f.ReplaceAllUses(c.Res, c.Src)
		f.Body.Remove(c)
	}
	f.ReplaceAllUses(copy.Res, copy.Src)
	f.Body.Remove(copy)
	for _, cast := range sub.casts {
		if nv, ok := cast.Res.Type().(*ir.NonValueTensorType); ok {
			cast.Res.SetType(nv.WithValueSemantics())
		}
	}
	for _, fix := range fixes {
		b := ir.NewBuilderBefore(f.Body, fix.ret)
		fix.ret.Vals[fix.index] = b.CopyToType(fix.typ, fix.ret.Vals[fix.index])
	}
}
