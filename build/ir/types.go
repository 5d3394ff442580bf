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
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/pkg/errors"
)

type (
	// Type of a value.
	Type interface {
		Node

		// Kind of the type.
		Kind() Kind

		// Equal returns true if other is the same type.
		Equal(Type) bool

		// String representation of the type.
		String() string
	}

	// TensorType is a tensor with or without value semantics.
	// A tensor type optionally carries its rank and sizes and, independently,
	// the data type of its elements.
	TensorType interface {
		Type

		// DType returns the element type, or dtype.Invalid when unknown.
		DType() dtype.DataType

		// HasSizes returns true if the rank and sizes of the tensor are known.
		HasSizes() bool

		// Sizes returns the size of each axis. An axis with an unknown size
		// is reported as UnknownSize. Returns nil when HasSizes is false.
		Sizes() []int

		// HasValueSemantics returns true if the tensor never changes after
		// its creation.
		HasValueSemantics() bool

		// WithValueSemantics returns the same tensor type with value semantics.
		WithValueSemantics() *ValueTensorType

		// WithoutValueSemantics returns the same tensor type without value semantics.
		WithoutValueSemantics() *NonValueTensorType
	}
)

// UnknownSize marks an axis which size is not known statically.
const UnknownSize = -1

type atomicType struct {
	knd Kind
}

var (
	boolT  = &atomicType{knd: BoolKind}
	intT   = &atomicType{knd: IntKind}
	floatT = &atomicType{knd: FloatKind}
	strT   = &atomicType{knd: StrKind}
	noneT  = &atomicType{knd: NoneKind}
)

// BoolType returns the scalar boolean type.
func BoolType() Type { return boolT }

// IntType returns the scalar integer type.
func IntType() Type { return intT }

// FloatType returns the scalar floating point type.
func FloatType() Type { return floatT }

// StrType returns the string type.
func StrType() Type { return strT }

// NoneType returns the type carrying no runtime value.
func NoneType() Type { return noneT }

func (*atomicType) node() {}

// Kind of the atomic type.
func (t *atomicType) Kind() Kind { return t.knd }

// Equal returns true if other is the same type.
func (t *atomicType) Equal(other Type) bool {
	return t.knd == other.Kind()
}

// String representation of the type.
func (t *atomicType) String() string {
	return "!torch." + t.knd.String()
}

// TupleType is an ordered heterogeneous aggregate.
type TupleType struct {
	Types []Type
}

var _ Type = (*TupleType)(nil)

func (*TupleType) node() {}

// Kind of the tuple type.
func (*TupleType) Kind() Kind { return TupleKind }

// Equal returns true if other is a tuple with equal contained types.
func (t *TupleType) Equal(other Type) bool {
	otherT, ok := other.(*TupleType)
	if !ok {
		return false
	}
	if len(t.Types) != len(otherT.Types) {
		return false
	}
	for i, typ := range t.Types {
		if !typ.Equal(otherT.Types[i]) {
			return false
		}
	}
	return true
}

// String representation of the type.
func (t *TupleType) String() string {
	ss := make([]string, len(t.Types))
	for i, typ := range t.Types {
		ss[i] = strings.TrimPrefix(typ.String(), "!torch.")
	}
	return fmt.Sprintf("!torch.tuple<%s>", strings.Join(ss, ", "))
}

// tensorInfo is the optional static information carried by tensor types.
type tensorInfo struct {
	sizes  []int
	ranked bool
	dt     dtype.DataType
}

// DType returns the element type, or dtype.Invalid when unknown.
func (t *tensorInfo) DType() dtype.DataType { return t.dt }

// HasSizes returns true if the rank and sizes of the tensor are known.
func (t *tensorInfo) HasSizes() bool { return t.ranked }

// Sizes returns the size of each axis, or nil for an unranked tensor.
func (t *tensorInfo) Sizes() []int { return t.sizes }

func (t *tensorInfo) equal(other *tensorInfo) bool {
	if t.ranked != other.ranked || t.dt != other.dt {
		return false
	}
	return slices.Equal(t.sizes, other.sizes)
}

func (t *tensorInfo) string(kind Kind) string {
	if !t.ranked && t.dt == dtype.Invalid {
		return "!torch." + kind.String()
	}
	sizes := "*"
	if t.ranked {
		ss := make([]string, len(t.sizes))
		for i, size := range t.sizes {
			if size == UnknownSize {
				ss[i] = "?"
				continue
			}
			ss[i] = strconv.Itoa(size)
		}
		sizes = "[" + strings.Join(ss, ",") + "]"
	}
	return fmt.Sprintf("!torch.%s<%s,%s>", kind.String(), sizes, dtypeString(t.dt))
}

// dtypeString returns the mnemonic of an element type in printed tensor types.
func dtypeString(dt dtype.DataType) string {
	switch dt {
	case dtype.Invalid:
		return "unk"
	case dtype.Bool:
		return "i1"
	case dtype.Int32:
		return "si32"
	case dtype.Int64:
		return "si64"
	case dtype.Uint32:
		return "ui32"
	case dtype.Uint64:
		return "ui64"
	case dtype.Bfloat16:
		return "bf16"
	case dtype.Float32:
		return "f32"
	case dtype.Float64:
		return "f64"
	default:
		return dt.String()
	}
}

type (
	// NonValueTensorType is a tensor without value semantics:
	// the tensor may be mutated through other references to the same storage.
	NonValueTensorType struct {
		tensorInfo
	}

	// ValueTensorType is a tensor with value semantics:
	// the tensor is guaranteed to never change after its creation.
	ValueTensorType struct {
		tensorInfo
	}
)

var (
	_ TensorType = (*NonValueTensorType)(nil)
	_ TensorType = (*ValueTensorType)(nil)
)

// NewNonValueTensorType returns a tensor type without value semantics.
// A nil sizes slice builds an unranked tensor; dtype.Invalid marks an
// unknown element type.
func NewNonValueTensorType(sizes []int, dt dtype.DataType) *NonValueTensorType {
	return &NonValueTensorType{tensorInfo{sizes: sizes, ranked: sizes != nil, dt: dt}}
}

// NewValueTensorType returns a tensor type with value semantics.
// A nil sizes slice builds an unranked tensor; dtype.Invalid marks an
// unknown element type.
func NewValueTensorType(sizes []int, dt dtype.DataType) *ValueTensorType {
	return &ValueTensorType{tensorInfo{sizes: sizes, ranked: sizes != nil, dt: dt}}
}

func (*NonValueTensorType) node() {}

// Kind of the tensor type.
func (*NonValueTensorType) Kind() Kind { return TensorKind }

// Equal returns true if other is a non-value tensor with the same static information.
func (t *NonValueTensorType) Equal(other Type) bool {
	otherT, ok := other.(*NonValueTensorType)
	return ok && t.tensorInfo.equal(&otherT.tensorInfo)
}

// HasValueSemantics always returns false.
func (t *NonValueTensorType) HasValueSemantics() bool { return false }

// WithValueSemantics returns the same tensor type with value semantics.
func (t *NonValueTensorType) WithValueSemantics() *ValueTensorType {
	return &ValueTensorType{t.tensorInfo}
}

// WithoutValueSemantics returns the type itself.
func (t *NonValueTensorType) WithoutValueSemantics() *NonValueTensorType { return t }

// String representation of the type.
func (t *NonValueTensorType) String() string {
	return t.tensorInfo.string(TensorKind)
}

func (*ValueTensorType) node() {}

// Kind of the tensor type.
func (*ValueTensorType) Kind() Kind { return ValueTensorKind }

// Equal returns true if other is a value tensor with the same static information.
func (t *ValueTensorType) Equal(other Type) bool {
	otherT, ok := other.(*ValueTensorType)
	return ok && t.tensorInfo.equal(&otherT.tensorInfo)
}

// HasValueSemantics always returns true.
func (t *ValueTensorType) HasValueSemantics() bool { return true }

// WithValueSemantics returns the type itself.
func (t *ValueTensorType) WithValueSemantics() *ValueTensorType { return t }

// WithoutValueSemantics returns the same tensor type without value semantics.
func (t *ValueTensorType) WithoutValueSemantics() *NonValueTensorType {
	return &NonValueTensorType{t.tensorInfo}
}

// String representation of the type.
func (t *ValueTensorType) String() string {
	return t.tensorInfo.string(ValueTensorKind)
}

// Shape converts the type into a backend shape.
// The type needs a known element type, a rank, and a static size on every axis.
func (t *ValueTensorType) Shape() (*shape.Shape, error) {
	if !t.ranked {
		return nil, errors.Errorf("cannot build the shape of %s: tensor is unranked", t)
	}
	if t.dt == dtype.Invalid {
		return nil, errors.Errorf("cannot build the shape of %s: unknown element type", t)
	}
	if slices.Contains(t.sizes, UnknownSize) {
		return nil, errors.Errorf("cannot build the shape of %s: unknown axis size", t)
	}
	return &shape.Shape{
		DType:       t.dt,
		AxisLengths: slices.Clone(t.sizes),
	}, nil
}
