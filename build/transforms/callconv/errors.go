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
	"fmt"

	"github.com/um-urosmarkovic/torch-mlir/build/ir"
)

// UnsupportedAliasingBoundError reports a parameter without value semantics
// which aliasing cannot be preserved across the calling convention boundary:
// either the parameter carries no type bound, or its bound is not a tensor
// type with value semantics.
type UnsupportedAliasingBoundError struct {
	// Func is the name of the function declaring the parameter.
	Func string
	// Index of the parameter in the function signature.
	Index int
	// Bound declared for the parameter. Nil if the parameter has no bound.
	Bound ir.Type
}

// Error returns a description of the unsupported construct.
func (e *UnsupportedAliasingBoundError) Error() string {
	if e.Bound == nil {
		return fmt.Sprintf("unimplemented: preserving aliasing for parameter %d of function %q: no type bound declared", e.Index, e.Func)
	}
	return fmt.Sprintf("unimplemented: preserving aliasing for non-value-semantic type bound %s on parameter %d of function %q", e.Bound, e.Index, e.Func)
}

// UnsupportedIndirectCallError reports a call through a function value.
// Such calls cannot be rewritten to the flattened convention because the
// callee, and therefore its type bounds, are unknown statically.
type UnsupportedIndirectCallError struct {
	// Func is the name of the function containing the call.
	Func string
}

// Error returns a description of the unsupported construct.
func (e *UnsupportedIndirectCallError) Error() string {
	return fmt.Sprintf("unsupported: indirect call in function %q", e.Func)
}
