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

package valuesem_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/um-urosmarkovic/torch-mlir/build/ir"
	"github.com/um-urosmarkovic/torch-mlir/build/ir/irhelper"
	"github.com/um-urosmarkovic/torch-mlir/build/transforms/valuesem"
)

func TestCopyRoundTripErased(t *testing.T) {
	f := irhelper.Func("f",
		irhelper.Params(irhelper.Param("x", irhelper.VTensor(dtype.Float32))),
		irhelper.Types(ir.IntType()))
	fb := ir.NewBuilderAt(f.Body, 0)
	one := fb.ConstantInt(1)
	fb.Return(one)

	v := irhelper.Param("v", irhelper.VTensor(dtype.Float32))
	g := ir.NewFunc("g", irhelper.Params(v), irhelper.Types(ir.IntType()))
	gb := ir.NewBuilderAt(g.Body, 0)
	view := gb.CopyToType(irhelper.UnrankedTensor(), v.Val)
	arg := gb.CopyToType(irhelper.VTensor(dtype.Float32), view)
	call := gb.Call("f", irhelper.Types(ir.IntType()), irhelper.Vals(arg))
	gb.Return(call.Rets[0])
	mod := irhelper.Module("test", f, g)

	if err := valuesem.Run(mod); err != nil {
		t.Fatalf("the pass failed: %v", err)
	}
	got := mod.Func("g").String()
	want := strings.TrimSpace(`
func @g(%arg0: !torch.vtensor<[],f32>) -> (!torch.int) {
	%0 = func.call @f(%arg0) : !torch.int
	func.return %0
}`)
	if got != want {
		t.Errorf("got:\n%s\nbut want:\n%s\ndiff:\n%s", got, want, cmp.Diff(got, want))
	}
	if err := mod.Verify(); err != nil {
		t.Errorf("the rewritten module does not verify: %v", err)
	}
}

func TestCastRetypedAndReturnRestored(t *testing.T) {
	x := irhelper.Param("x", irhelper.VTensor(dtype.Float32, 2))
	h := ir.NewFunc("h", irhelper.Params(x), irhelper.Types(irhelper.UnrankedTensor()))
	hb := ir.NewBuilderAt(h.Body, 0)
	view := hb.CopyToType(irhelper.Tensor(dtype.Float32, 2), x.Val)
	cast := hb.StaticInfoCast(irhelper.UnrankedTensor(), view)
	hb.Return(cast)
	mod := irhelper.Module("test", h)

	if err := valuesem.Run(mod); err != nil {
		t.Fatalf("the pass failed: %v", err)
	}
	got := mod.Func("h").String()
	want := strings.TrimSpace(`
func @h(%arg0: !torch.vtensor<[2],f32>) -> (!torch.tensor) {
	%0 = torch.tensor_static_info_cast %arg0 : !torch.vtensor
	%1 = torch.copy.to_tensor %0 : !torch.tensor
	func.return %1
}`)
	if got != want {
		t.Errorf("got:\n%s\nbut want:\n%s\ndiff:\n%s", got, want, cmp.Diff(got, want))
	}
	if err := mod.Verify(); err != nil {
		t.Errorf("the rewritten module does not verify: %v", err)
	}
}

func TestEscapingUseLeftUntouched(t *testing.T) {
	// The copied tensor flows into a tuple: the analysis cannot prove the
	// absence of mutation and must leave the whole subgraph alone.
	x := irhelper.Param("x", irhelper.VTensor(dtype.Float32, 2))
	h := ir.NewFunc("h", irhelper.Params(x), irhelper.Types(irhelper.Tuple(irhelper.Tensor(dtype.Float32, 2))))
	hb := ir.NewBuilderAt(h.Body, 0)
	view := hb.CopyToType(irhelper.Tensor(dtype.Float32, 2), x.Val)
	tuple := hb.TupleConstruct(irhelper.Tuple(irhelper.Tensor(dtype.Float32, 2)), view)
	hb.Return(tuple)
	mod := irhelper.Module("test", h)

	before := mod.String()
	if err := valuesem.Run(mod); err != nil {
		t.Fatalf("the pass failed: %v", err)
	}
	if after := mod.String(); after != before {
		t.Errorf("the pass rewrote an escaping subgraph:\n%s", cmp.Diff(before, after))
	}
}

func TestReturnOnlySubgraphLeftUntouched(t *testing.T) {
	// Erasing the copy would change the type of the returned value, which
	// returns are not allowed to do. Nothing else profits from the rewrite.
	x := irhelper.Param("x", irhelper.VTensor(dtype.Float32, 2))
	h := ir.NewFunc("h", irhelper.Params(x), irhelper.Types(irhelper.Tensor(dtype.Float32, 2)))
	hb := ir.NewBuilderAt(h.Body, 0)
	view := hb.CopyToType(irhelper.Tensor(dtype.Float32, 2), x.Val)
	hb.Return(view)
	mod := irhelper.Module("test", h)

	before := mod.String()
	if err := valuesem.Run(mod); err != nil {
		t.Fatalf("the pass failed: %v", err)
	}
	if after := mod.String(); after != before {
		t.Errorf("the pass rewrote a return-only subgraph:\n%s", cmp.Diff(before, after))
	}
}
