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

// Kind of a type.
type Kind uint

// Kinds of the types in the dialect.
const (
	// InvalidKind is the kind of no valid type.
	InvalidKind Kind = iota
	// BoolKind is the kind of the scalar boolean type.
	BoolKind
	// IntKind is the kind of the scalar integer type.
	IntKind
	// FloatKind is the kind of the scalar floating point type.
	FloatKind
	// StrKind is the kind of the string type.
	StrKind
	// NoneKind is the kind of the type with no runtime representation.
	NoneKind
	// TupleKind is the kind of ordered heterogeneous aggregates.
	TupleKind
	// TensorKind is the kind of tensors without value semantics:
	// the tensor may be mutated through other references.
	TensorKind
	// ValueTensorKind is the kind of tensors with value semantics:
	// the tensor never changes after its creation.
	ValueTensorKind
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StrKind:
		return "str"
	case NoneKind:
		return "none"
	case TupleKind:
		return "tuple"
	case TensorKind:
		return "tensor"
	case ValueTensorKind:
		return "vtensor"
	default:
		return "invalid"
	}
}
