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

// Package irhelper provides helper functions to build IR programmatically.
package irhelper

import (
	"fmt"

	"github.com/gx-org/backend/dtype"
	"github.com/um-urosmarkovic/torch-mlir/build/ir"
)

// Module returns a module declaring the given functions.
// Module panics on duplicated function names:
// the helper is for tests building valid programs by hand.
func Module(name string, funcs ...*ir.Func) *ir.Module {
	mod := ir.NewModule(name)
	for _, f := range funcs {
		if err := mod.AppendFunc(f); err != nil {
			panic(fmt.Sprintf("cannot build module %s: %v", name, err))
		}
	}
	return mod
}

// Func returns a function with the given body.
func Func(name string, params []*ir.Param, results []ir.Type, ops ...ir.Op) *ir.Func {
	f := ir.NewFunc(name, params, results)
	f.Body.Append(ops...)
	return f
}

// Param returns a function parameter given a name and a type.
func Param(name string, typ ir.Type) *ir.Param {
	return ir.NewParam(name, typ)
}

// BoundParam returns a function parameter carrying a type bound.
func BoundParam(name string, typ, bound ir.Type) *ir.Param {
	param := ir.NewParam(name, typ)
	param.Bound = bound
	return param
}

// Tuple returns a tuple type given its element types.
func Tuple(types ...ir.Type) *ir.TupleType {
	return &ir.TupleType{Types: types}
}

// Tensor returns a ranked tensor type without value semantics.
func Tensor(dt dtype.DataType, sizes ...int) *ir.NonValueTensorType {
	if sizes == nil {
		sizes = []int{}
	}
	return ir.NewNonValueTensorType(sizes, dt)
}

// UnrankedTensor returns an unranked tensor type without value semantics
// and with an unknown element type.
func UnrankedTensor() *ir.NonValueTensorType {
	return ir.NewNonValueTensorType(nil, dtype.Invalid)
}

// VTensor returns a ranked tensor type with value semantics.
func VTensor(dt dtype.DataType, sizes ...int) *ir.ValueTensorType {
	if sizes == nil {
		sizes = []int{}
	}
	return ir.NewValueTensorType(sizes, dt)
}

// UnrankedVTensor returns an unranked tensor type with value semantics.
func UnrankedVTensor(dt dtype.DataType) *ir.ValueTensorType {
	return ir.NewValueTensorType(nil, dt)
}

// Vals returns its arguments as a value slice.
func Vals(vals ...*ir.Value) []*ir.Value {
	return vals
}

// Types returns its arguments as a type slice.
func Types(types ...ir.Type) []ir.Type {
	return types
}

// Params returns its arguments as a parameter slice.
func Params(params ...*ir.Param) []*ir.Param {
	return params
}
