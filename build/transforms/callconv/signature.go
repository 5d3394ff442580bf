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

// rewriteSignature maps the signature of the function to the flattened
// convention:
//   - a tensor parameter without value semantics is narrowed to its type
//     bound, which must be a tensor with value semantics. The original
//     view of the parameter is materialized at the top of the body by an
//     explicit copy for the existing uses; a parameter without uses
//     needs no copy.
//   - a none parameter is dropped; its uses are fed by a constant.
//   - the result list is flattened (see flattenTypes).
//
// The bounds are erased once incorporated into the types: the signature
// is the only source of truth after the rewrite.
func rewriteSignature(f *ir.Func) error {
	entry := ir.NewBuilderAt(f.Body, 0)
	params := make([]*ir.Param, 0, len(f.Params))
	for i, param := range f.Params {
		switch typ := param.Val.Type().(type) {
		case *ir.NonValueTensorType:
			bound, ok := param.Bound.(*ir.ValueTensorType)
			if !ok {
				return errors.WithStack(&UnsupportedAliasingBoundError{
					Func:  f.Name(),
					Index: i,
					Bound: param.Bound,
				})
			}
			used := len(f.Uses(param.Val)) > 0
			param.Val.SetType(bound)
			if used {
				view := entry.CopyToType(typ, param.Val)
				f.ReplaceAllUsesExcept(param.Val, view, view.DefiningOp())
			}
			param.Bound = nil
			params = append(params, param)
		default:
			if typ.Kind() == ir.NoneKind {
				none := entry.ConstantNone()
				f.ReplaceAllUses(param.Val, none)
				continue
			}
			param.Bound = nil
			params = append(params, param)
		}
	}
	f.Params = params
	f.Results = flattenTypes(f.Results)
	return nil
}
