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

import "fmt"

// Builder inserts operations in a block at a given position.
// Each insertion moves the position forward, so that operations
// built in sequence keep their build order in the block.
type Builder struct {
	block *Block
	at    int
}

// NewBuilderAt returns a builder inserting operations at position i of the block.
func NewBuilderAt(block *Block, i int) *Builder {
	if i < 0 || i > len(block.Ops) {
		panic(fmt.Sprintf("insertion point %d out of range", i))
	}
	return &Builder{block: block, at: i}
}

// NewBuilderBefore returns a builder inserting operations before op.
// The block must contain op.
func NewBuilderBefore(block *Block, op Op) *Builder {
	i := block.Index(op)
	if i < 0 {
		panic(fmt.Sprintf("operation %s not in the block", op.OpName()))
	}
	return &Builder{block: block, at: i}
}

func (b *Builder) insert(op Op) {
	b.block.Insert(b.at, op)
	b.at++
}

// Call builds a call to callee.
func (b *Builder) Call(callee string, results []Type, args []*Value) *CallOp {
	op := NewCallOp(callee, results, args)
	b.insert(op)
	return op
}

// Return builds a return of the given values.
func (b *Builder) Return(vals ...*Value) *ReturnOp {
	op := NewReturnOp(vals)
	b.insert(op)
	return op
}

// ConstantNone builds the none value.
func (b *Builder) ConstantNone() *Value {
	op := NewConstantNoneOp()
	b.insert(op)
	return op.Res
}

// ConstantInt builds a constant integer value.
func (b *Builder) ConstantInt(val int64) *Value {
	op := NewConstantIntOp(val)
	b.insert(op)
	return op.Res
}

// TupleConstruct builds a tuple of the given type from one value per element.
func (b *Builder) TupleConstruct(typ *TupleType, elts ...*Value) *Value {
	op := NewTupleConstructOp(typ, elts)
	b.insert(op)
	return op.Res
}

// TupleIndex builds the extraction of the element of type typ
// at position index in tuple.
func (b *Builder) TupleIndex(typ Type, tuple, index *Value) *Value {
	op := NewTupleIndexOp(typ, tuple, index)
	b.insert(op)
	return op.Res
}

// StaticInfoCast builds a cast of src to the given tensor type.
func (b *Builder) StaticInfoCast(typ TensorType, src *Value) *Value {
	op := NewStaticInfoCastOp(typ, src)
	b.insert(op)
	return op.Res
}

// CopyToType builds a copy of src into a fresh tensor of the given type.
// The copy operation is picked from the value semantics of the target type.
func (b *Builder) CopyToType(typ TensorType, src *Value) *Value {
	if vt, ok := typ.(*ValueTensorType); ok {
		op := NewCopyToValueTensorOp(vt, src)
		b.insert(op)
		return op.Res
	}
	op := NewCopyToNonValueTensorOp(typ.WithoutValueSemantics(), src)
	b.insert(op)
	return op.Res
}
