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

// ----------------------------------------------------------------------------
// Operations of a function body.
type (
	// Op is an operation in a function body.
	Op interface {
		Node

		// OpName returns the name of the operation in the dialect.
		OpName() string

		// Operands returns the values read by the operation, in order.
		Operands() []*Value

		// SetOperand replaces the i-th operand
		// (following the order returned by Operands).
		SetOperand(i int, val *Value)

		// Results returns the values defined by the operation, in order.
		Results() []*Value
	}

	// CallOp calls a function of the module given its name.
	CallOp struct {
		Callee string
		Args   []*Value
		Rets   []*Value
	}

	// CallIndirectOp calls a function given as a first class value.
	// No transform pass supports rewriting such a call.
	CallIndirectOp struct {
		Fn   *Value
		Args []*Value
		Rets []*Value
	}

	// ReturnOp terminates a function body,
	// returning its operands to the caller.
	ReturnOp struct {
		Vals []*Value
	}

	// ConstantNoneOp defines the singleton value of the none type.
	ConstantNoneOp struct {
		Res *Value
	}

	// ConstantIntOp defines a constant integer value.
	ConstantIntOp struct {
		Val int64
		Res *Value
	}

	// TupleConstructOp builds a tuple from its elements.
	TupleConstructOp struct {
		Elts []*Value
		Res  *Value
	}

	// TupleIndexOp extracts an element of a tuple given its position.
	TupleIndexOp struct {
		Tuple *Value
		Index *Value
		Res   *Value
	}

	// CopyToValueTensorOp copies a tensor into a fresh tensor
	// with value semantics.
	CopyToValueTensorOp struct {
		Src *Value
		Res *Value
	}

	// CopyToNonValueTensorOp copies a tensor into a fresh tensor
	// without value semantics.
	CopyToNonValueTensorOp struct {
		Src *Value
		Res *Value
	}

	// StaticInfoCastOp adds or removes static information from a tensor type.
	// The operation is a no-op at runtime.
	StaticInfoCastOp struct {
		Src *Value
		Res *Value
	}
)

var (
	_ Op = (*CallOp)(nil)
	_ Op = (*CallIndirectOp)(nil)
	_ Op = (*ReturnOp)(nil)
	_ Op = (*ConstantNoneOp)(nil)
	_ Op = (*ConstantIntOp)(nil)
	_ Op = (*TupleConstructOp)(nil)
	_ Op = (*TupleIndexOp)(nil)
	_ Op = (*CopyToValueTensorOp)(nil)
	_ Op = (*CopyToNonValueTensorOp)(nil)
	_ Op = (*StaticInfoCastOp)(nil)
)

func newResults(op Op, types []Type) []*Value {
	vals := make([]*Value, len(types))
	for i, typ := range types {
		vals[i] = newValue(typ, op)
	}
	return vals
}

// NewCallOp returns a call to callee declaring the given result types.
func NewCallOp(callee string, results []Type, args []*Value) *CallOp {
	op := &CallOp{Callee: callee, Args: args}
	op.Rets = newResults(op, results)
	return op
}

func (*CallOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*CallOp) OpName() string { return "func.call" }

// Operands returns the arguments of the call.
func (op *CallOp) Operands() []*Value { return op.Args }

// SetOperand replaces the i-th argument.
func (op *CallOp) SetOperand(i int, val *Value) { op.Args[i] = val }

// Results returns the results of the call.
func (op *CallOp) Results() []*Value { return op.Rets }

// NewCallIndirectOp returns a call to a function value
// declaring the given result types.
func NewCallIndirectOp(fn *Value, results []Type, args []*Value) *CallIndirectOp {
	op := &CallIndirectOp{Fn: fn, Args: args}
	op.Rets = newResults(op, results)
	return op
}

func (*CallIndirectOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*CallIndirectOp) OpName() string { return "func.call_indirect" }

// Operands returns the callee value followed by the arguments of the call.
func (op *CallIndirectOp) Operands() []*Value {
	return append([]*Value{op.Fn}, op.Args...)
}

// SetOperand replaces the i-th operand.
func (op *CallIndirectOp) SetOperand(i int, val *Value) {
	if i == 0 {
		op.Fn = val
		return
	}
	op.Args[i-1] = val
}

// Results returns the results of the call.
func (op *CallIndirectOp) Results() []*Value { return op.Rets }

// NewReturnOp returns an operation returning the given values to the caller.
func NewReturnOp(vals []*Value) *ReturnOp {
	return &ReturnOp{Vals: vals}
}

func (*ReturnOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*ReturnOp) OpName() string { return "func.return" }

// Operands returns the values returned to the caller.
func (op *ReturnOp) Operands() []*Value { return op.Vals }

// SetOperand replaces the i-th returned value.
func (op *ReturnOp) SetOperand(i int, val *Value) { op.Vals[i] = val }

// Results returns nil: a return defines no value.
func (op *ReturnOp) Results() []*Value { return nil }

// NewConstantNoneOp returns an operation defining the none value.
func NewConstantNoneOp() *ConstantNoneOp {
	op := &ConstantNoneOp{}
	op.Res = newValue(NoneType(), op)
	return op
}

func (*ConstantNoneOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*ConstantNoneOp) OpName() string { return "torch.constant.none" }

// Operands returns nil.
func (op *ConstantNoneOp) Operands() []*Value { return nil }

// SetOperand panics: the operation has no operand.
func (op *ConstantNoneOp) SetOperand(i int, val *Value) {
	panic("torch.constant.none has no operand")
}

// Results returns the none value.
func (op *ConstantNoneOp) Results() []*Value { return []*Value{op.Res} }

// NewConstantIntOp returns an operation defining a constant integer.
func NewConstantIntOp(val int64) *ConstantIntOp {
	op := &ConstantIntOp{Val: val}
	op.Res = newValue(IntType(), op)
	return op
}

func (*ConstantIntOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*ConstantIntOp) OpName() string { return "torch.constant.int" }

// Operands returns nil.
func (op *ConstantIntOp) Operands() []*Value { return nil }

// SetOperand panics: the operation has no operand.
func (op *ConstantIntOp) SetOperand(i int, val *Value) {
	panic("torch.constant.int has no operand")
}

// Results returns the constant value.
func (op *ConstantIntOp) Results() []*Value { return []*Value{op.Res} }

// NewTupleConstructOp returns an operation building a tuple value of the
// given type from one value per element.
func NewTupleConstructOp(typ *TupleType, elts []*Value) *TupleConstructOp {
	op := &TupleConstructOp{Elts: elts}
	op.Res = newValue(typ, op)
	return op
}

func (*TupleConstructOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*TupleConstructOp) OpName() string { return "torch.prim.TupleConstruct" }

// Operands returns the elements of the tuple.
func (op *TupleConstructOp) Operands() []*Value { return op.Elts }

// SetOperand replaces the i-th element.
func (op *TupleConstructOp) SetOperand(i int, val *Value) { op.Elts[i] = val }

// Results returns the tuple value.
func (op *TupleConstructOp) Results() []*Value { return []*Value{op.Res} }

// NewTupleIndexOp returns an operation extracting the element of type typ
// at position index in tuple.
func NewTupleIndexOp(typ Type, tuple, index *Value) *TupleIndexOp {
	op := &TupleIndexOp{Tuple: tuple, Index: index}
	op.Res = newValue(typ, op)
	return op
}

func (*TupleIndexOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*TupleIndexOp) OpName() string { return "torch.prim.TupleIndex" }

// Operands returns the tuple followed by the index.
func (op *TupleIndexOp) Operands() []*Value { return []*Value{op.Tuple, op.Index} }

// SetOperand replaces the i-th operand.
func (op *TupleIndexOp) SetOperand(i int, val *Value) {
	if i == 0 {
		op.Tuple = val
		return
	}
	op.Index = val
}

// Results returns the extracted element.
func (op *TupleIndexOp) Results() []*Value { return []*Value{op.Res} }

// NewCopyToValueTensorOp returns an operation copying src into a fresh
// tensor of the given value semantics type.
func NewCopyToValueTensorOp(typ *ValueTensorType, src *Value) *CopyToValueTensorOp {
	op := &CopyToValueTensorOp{Src: src}
	op.Res = newValue(typ, op)
	return op
}

func (*CopyToValueTensorOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*CopyToValueTensorOp) OpName() string { return "torch.copy.to_vtensor" }

// Operands returns the copied tensor.
func (op *CopyToValueTensorOp) Operands() []*Value { return []*Value{op.Src} }

// SetOperand replaces the copied tensor.
func (op *CopyToValueTensorOp) SetOperand(i int, val *Value) { op.Src = val }

// Results returns the copy.
func (op *CopyToValueTensorOp) Results() []*Value { return []*Value{op.Res} }

// NewCopyToNonValueTensorOp returns an operation copying src into a fresh
// tensor of the given non-value semantics type.
func NewCopyToNonValueTensorOp(typ *NonValueTensorType, src *Value) *CopyToNonValueTensorOp {
	op := &CopyToNonValueTensorOp{Src: src}
	op.Res = newValue(typ, op)
	return op
}

func (*CopyToNonValueTensorOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*CopyToNonValueTensorOp) OpName() string { return "torch.copy.to_tensor" }

// Operands returns the copied tensor.
func (op *CopyToNonValueTensorOp) Operands() []*Value { return []*Value{op.Src} }

// SetOperand replaces the copied tensor.
func (op *CopyToNonValueTensorOp) SetOperand(i int, val *Value) { op.Src = val }

// Results returns the copy.
func (op *CopyToNonValueTensorOp) Results() []*Value { return []*Value{op.Res} }

// NewStaticInfoCastOp returns an operation casting src to the given tensor type.
func NewStaticInfoCastOp(typ TensorType, src *Value) *StaticInfoCastOp {
	op := &StaticInfoCastOp{Src: src}
	op.Res = newValue(typ, op)
	return op
}

func (*StaticInfoCastOp) node() {}

// OpName returns the name of the operation in the dialect.
func (*StaticInfoCastOp) OpName() string { return "torch.tensor_static_info_cast" }

// Operands returns the cast tensor.
func (op *StaticInfoCastOp) Operands() []*Value { return []*Value{op.Src} }

// SetOperand replaces the cast tensor.
func (op *StaticInfoCastOp) SetOperand(i int, val *Value) { op.Src = val }

// Results returns the cast.
func (op *StaticInfoCastOp) Results() []*Value { return []*Value{op.Res} }
