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
	"github.com/um-urosmarkovic/torch-mlir/build/ir"
)

// rewriteReturn maps a return of the original program to the flattened
// convention of the already rewritten signature: a none operand is
// dropped, and a tuple operand is decomposed into one indexed extraction
// per element.
//
// The extractions go through the tuple value rather than reaching for the
// values the tuple was built from: the tuple may be used elsewhere in the
// body, and indexing is the decomposition that preserves its provenance.
func rewriteReturn(f *ir.Func, ret *ir.ReturnOp) {
	b := ir.NewBuilderBefore(f.Body, ret)
	var vals []*ir.Value
	for _, val := range ret.Vals {
		switch typ := val.Type().(type) {
		case *ir.TupleType:
			for i, elt := range typ.Types {
				index := b.ConstantInt(int64(i))
				vals = append(vals, b.TupleIndex(elt, val, index))
			}
		default:
			if typ.Kind() == ir.NoneKind {
				continue
			}
			vals = append(vals, val)
		}
	}
	ret.Vals = vals
}
