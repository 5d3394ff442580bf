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

package callconv

import (
	"github.com/pkg/errors"

	"github.com/um-urosmarkovic/torch-mlir/build/ir"
)

// rewriteCall maps a call of the original program to the flattened
// convention. The bounds of the callee come from the bound table, never
// from the callee function itself: the callee signature may already have
// been rewritten, with its bounds erased.
//
// The call is replaced by a call with converted operands and flattened
// results, followed by the reconstruction of a value for every original
// result position: a none result is synthesized by a constant and consumes
// no flattened result, a tuple result is reconstructed from the next
// len(tuple.Types) flattened results, and any other result consumes
// exactly one.
func rewriteCall(f *ir.Func, bounds BoundTable, call *ir.CallOp) error {
	b := ir.NewBuilderBefore(f.Body, call)
	var operands []*ir.Value
	for i, operand := range call.Args {
		if operand.Type().Kind() == ir.NoneKind {
			continue
		}
		bound, ok := bounds.Bound(call.Callee, i)
		if !ok {
			operands = append(operands, operand)
			continue
		}
		vt, ok := bound.(*ir.ValueTensorType)
		if !ok {
			return errors.WithStack(&UnsupportedAliasingBoundError{
				Func:  call.Callee,
				Index: i,
				Bound: bound,
			})
		}
		operands = append(operands, b.CopyToType(vt, operand))
	}

	resultTypes := make([]ir.Type, len(call.Rets))
	for i, ret := range call.Rets {
		resultTypes[i] = ret.Type()
	}
	newCall := b.Call(call.Callee, flattenTypes(resultTypes), operands)

	next := 0
	for _, old := range call.Rets {
		var repl *ir.Value
		switch typ := old.Type().(type) {
		case *ir.TupleType:
			elts := newCall.Rets[next : next+len(typ.Types)]
			next += len(typ.Types)
			repl = b.TupleConstruct(typ, elts...)
		default:
			if typ.Kind() == ir.NoneKind {
				repl = b.ConstantNone()
				break
			}
			repl = newCall.Rets[next]
			next++
		}
		f.ReplaceAllUses(old, repl)
	}
	f.Body.Remove(call)
	return nil
}
