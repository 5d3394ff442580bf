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

package ir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/um-urosmarkovic/torch-mlir/build/ir"
	"github.com/um-urosmarkovic/torch-mlir/build/ir/irhelper"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  ir.Type
		want string
	}{
		{typ: ir.BoolType(), want: "!torch.bool"},
		{typ: ir.IntType(), want: "!torch.int"},
		{typ: ir.FloatType(), want: "!torch.float"},
		{typ: ir.StrType(), want: "!torch.str"},
		{typ: ir.NoneType(), want: "!torch.none"},
		{
			typ:  irhelper.Tuple(ir.IntType(), ir.FloatType()),
			want: "!torch.tuple<int, float>",
		},
		{
			typ:  irhelper.Tuple(irhelper.Tuple(ir.IntType())),
			want: "!torch.tuple<tuple<int>>",
		},
		{typ: irhelper.UnrankedTensor(), want: "!torch.tensor"},
		{
			typ:  ir.NewNonValueTensorType(nil, dtype.Float32),
			want: "!torch.tensor<*,f32>",
		},
		{
			typ:  irhelper.Tensor(dtype.Float32, 2, 3),
			want: "!torch.tensor<[2,3],f32>",
		},
		{
			typ:  irhelper.Tensor(dtype.Invalid, 2, ir.UnknownSize),
			want: "!torch.tensor<[2,?],unk>",
		},
		{typ: irhelper.VTensor(dtype.Float32), want: "!torch.vtensor<[],f32>"},
		{
			typ:  irhelper.VTensor(dtype.Int64, 4),
			want: "!torch.vtensor<[4],si64>",
		},
		{typ: ir.NewValueTensorType(nil, dtype.Invalid), want: "!torch.vtensor"},
	}
	for i, test := range tests {
		got := test.typ.String()
		if got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
}

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		x, y ir.Type
		want bool
	}{
		{x: ir.IntType(), y: ir.IntType(), want: true},
		{x: ir.IntType(), y: ir.FloatType(), want: false},
		{x: ir.NoneType(), y: ir.NoneType(), want: true},
		{
			x:    irhelper.Tuple(ir.IntType(), ir.IntType()),
			y:    irhelper.Tuple(ir.IntType(), ir.IntType()),
			want: true,
		},
		{
			x:    irhelper.Tuple(ir.IntType()),
			y:    irhelper.Tuple(ir.IntType(), ir.IntType()),
			want: false,
		},
		{
			x:    irhelper.Tuple(ir.IntType()),
			y:    ir.IntType(),
			want: false,
		},
		{
			x:    irhelper.Tensor(dtype.Float32, 2, 3),
			y:    irhelper.Tensor(dtype.Float32, 2, 3),
			want: true,
		},
		{
			x:    irhelper.Tensor(dtype.Float32, 2, 3),
			y:    irhelper.Tensor(dtype.Float32, 3, 2),
			want: false,
		},
		{
			x:    irhelper.Tensor(dtype.Float32),
			y:    irhelper.UnrankedTensor(),
			want: false,
		},
		{
			x:    irhelper.Tensor(dtype.Float32, 2),
			y:    irhelper.VTensor(dtype.Float32, 2),
			want: false,
		},
		{
			x:    irhelper.VTensor(dtype.Float32, 2),
			y:    irhelper.Tensor(dtype.Float32, 2).WithValueSemantics(),
			want: true,
		},
	}
	for i, test := range tests {
		if got := test.x.Equal(test.y); got != test.want {
			t.Errorf("test %d: %s.Equal(%s)=%v but want %v", i, test.x, test.y, got, test.want)
		}
	}
}

func TestTensorSemanticsConversion(t *testing.T) {
	nv := irhelper.Tensor(dtype.Float32, 2, 3)
	vt := nv.WithValueSemantics()
	if vt.HasValueSemantics() != true {
		t.Errorf("WithValueSemantics returned a type without value semantics")
	}
	if got, want := vt.String(), "!torch.vtensor<[2,3],f32>"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	back := vt.WithoutValueSemantics()
	if !back.Equal(nv) {
		t.Errorf("round trip %s -> %s -> %s does not preserve the type", nv, vt, back)
	}
}

func TestValueTensorShape(t *testing.T) {
	vt := irhelper.VTensor(dtype.Float32, 2, 3)
	got, err := vt.Shape()
	if err != nil {
		t.Fatalf("cannot build the shape of %s: %v", vt, err)
	}
	want := &shape.Shape{DType: dtype.Float32, AxisLengths: []int{2, 3}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("unexpected shape:\n%s", diff)
	}
}

func TestValueTensorShapeError(t *testing.T) {
	tests := []*ir.ValueTensorType{
		ir.NewValueTensorType(nil, dtype.Float32),
		irhelper.VTensor(dtype.Invalid, 2),
		irhelper.VTensor(dtype.Float32, 2, ir.UnknownSize),
	}
	for i, typ := range tests {
		if _, err := typ.Shape(); err == nil {
			t.Errorf("test %d: %s.Shape() returned no error", i, typ)
		}
	}
}
