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

package ir

import (
	"github.com/um-urosmarkovic/torch-mlir/build/fmterr"
)

// Verify checks the structural invariants of the module:
// values are defined before their uses, calls target declared functions
// with matching arities and types, and function bodies terminate with
// a return matching the declared results.
// All violations are reported, accumulated in a single error.
func (m *Module) Verify() error {
	errs := &fmterr.Errors{}
	for _, f := range m.funcs {
		fErrs := &fmterr.Errors{}
		m.verifyFunc(f, fErrs)
		for _, err := range fErrs.Errors() {
			errs.Append(fmterr.InFunc(f.Name())(err))
		}
	}
	return errs.ToError()
}

func (m *Module) verifyFunc(f *Func, errs *fmterr.Errors) {
	defined := make(map[*Value]bool)
	for _, param := range f.Params {
		defined[param.Val] = true
	}
	for _, op := range f.Body.Ops {
		for i, operand := range op.Operands() {
			if operand == nil {
				errs.Appendf("operand %d of %s is nil", i, op.OpName())
				continue
			}
			if !defined[operand] {
				errs.Appendf("operand %d of %s used before definition", i, op.OpName())
			}
		}
		m.verifyOp(f, op, errs)
		for _, res := range op.Results() {
			defined[res] = true
		}
	}
	n := len(f.Body.Ops)
	if n == 0 {
		errs.Appendf("function body has no terminator")
		return
	}
	if _, ok := f.Body.Ops[n-1].(*ReturnOp); !ok {
		errs.Appendf("function body does not terminate with a return")
	}
	for i, op := range f.Body.Ops {
		if _, ok := op.(*ReturnOp); ok && i != n-1 {
			errs.Appendf("%s before the end of the function body", op.OpName())
		}
	}
}

func (m *Module) verifyOp(f *Func, op Op, errs *fmterr.Errors) {
	switch op := op.(type) {
	case *CallOp:
		callee := m.Func(op.Callee)
		if callee == nil {
			errs.Appendf("call to undeclared function %q", op.Callee)
			return
		}
		if len(op.Args) != len(callee.Params) {
			errs.Appendf("call to %q has %d arguments, function declares %d parameters",
				op.Callee, len(op.Args), len(callee.Params))
			return
		}
		for i, arg := range op.Args {
			if arg == nil {
				continue
			}
			if want := callee.Params[i].Val.Type(); !arg.Type().Equal(want) {
				errs.Appendf("argument %d of call to %q has type %s, function declares %s",
					i, op.Callee, arg.Type(), want)
			}
		}
		if len(op.Rets) != len(callee.Results) {
			errs.Appendf("call to %q declares %d results, function declares %d",
				op.Callee, len(op.Rets), len(callee.Results))
			return
		}
		for i, ret := range op.Rets {
			if want := callee.Results[i]; !ret.Type().Equal(want) {
				errs.Appendf("result %d of call to %q has type %s, function declares %s",
					i, op.Callee, ret.Type(), want)
			}
		}
	case *ReturnOp:
		if len(op.Vals) != len(f.Results) {
			errs.Appendf("return has %d operands, function declares %d results",
				len(op.Vals), len(f.Results))
			return
		}
		for i, val := range op.Vals {
			if val == nil {
				continue
			}
			if want := f.Results[i]; !val.Type().Equal(want) {
				errs.Appendf("return operand %d has type %s, function declares %s",
					i, val.Type(), want)
			}
		}
	case *TupleConstructOp:
		tuple, ok := op.Res.Type().(*TupleType)
		if !ok {
			errs.Appendf("%s result has type %s, want a tuple", op.OpName(), op.Res.Type())
			return
		}
		if len(op.Elts) != len(tuple.Types) {
			errs.Appendf("%s has %d operands, result type has %d elements",
				op.OpName(), len(op.Elts), len(tuple.Types))
			return
		}
		for i, elt := range op.Elts {
			if elt == nil {
				continue
			}
			if want := tuple.Types[i]; !elt.Type().Equal(want) {
				errs.Appendf("element %d of %s has type %s, result type declares %s",
					i, op.OpName(), elt.Type(), want)
			}
		}
	case *TupleIndexOp:
		if op.Tuple == nil || op.Index == nil {
			return
		}
		tuple, ok := op.Tuple.Type().(*TupleType)
		if !ok {
			errs.Appendf("%s operand has type %s, want a tuple", op.OpName(), op.Tuple.Type())
			return
		}
		if op.Index.Type().Kind() != IntKind {
			errs.Appendf("%s index has type %s, want %s", op.OpName(), op.Index.Type(), IntType())
		}
		cst, ok := op.Index.DefiningOp().(*ConstantIntOp)
		if !ok {
			return
		}
		if cst.Val < 0 || cst.Val >= int64(len(tuple.Types)) {
			errs.Appendf("%s index %d out of range for %s", op.OpName(), cst.Val, tuple)
			return
		}
		if want := tuple.Types[cst.Val]; !op.Res.Type().Equal(want) {
			errs.Appendf("%s result has type %s, element %d has type %s",
				op.OpName(), op.Res.Type(), cst.Val, want)
		}
	case *CopyToValueTensorOp:
		if _, ok := op.Src.Type().(TensorType); !ok {
			errs.Appendf("%s operand has type %s, want a tensor", op.OpName(), op.Src.Type())
		}
	case *CopyToNonValueTensorOp:
		if _, ok := op.Src.Type().(TensorType); !ok {
			errs.Appendf("%s operand has type %s, want a tensor", op.OpName(), op.Src.Type())
		}
	case *StaticInfoCastOp:
		if _, ok := op.Src.Type().(TensorType); !ok {
			errs.Appendf("%s operand has type %s, want a tensor", op.OpName(), op.Src.Type())
		}
	}
}
