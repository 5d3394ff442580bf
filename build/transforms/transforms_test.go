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

package transforms_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"
	"github.com/pkg/errors"
	"github.com/um-urosmarkovic/torch-mlir/build/ir"
	"github.com/um-urosmarkovic/torch-mlir/build/ir/irhelper"
	"github.com/um-urosmarkovic/torch-mlir/build/transforms"
	"github.com/um-urosmarkovic/torch-mlir/build/transforms/callconv"
	"github.com/um-urosmarkovic/torch-mlir/build/transforms/valuesem"
)

// caller builds a function f with a bound tensor parameter and a caller g:
// the calling convention pass materializes a copy round trip in g, which
// the value semantics pass then erases.
func caller() *ir.Module {
	x := irhelper.BoundParam("x", irhelper.UnrankedTensor(), irhelper.VTensor(dtype.Float32))
	f := ir.NewFunc("f", irhelper.Params(x), irhelper.Types(ir.IntType()))
	fb := ir.NewBuilderAt(f.Body, 0)
	one := fb.ConstantInt(1)
	fb.Return(one)

	v := irhelper.BoundParam("v", irhelper.UnrankedTensor(), irhelper.VTensor(dtype.Float32))
	g := ir.NewFunc("g", irhelper.Params(v), irhelper.Types(ir.IntType()))
	gb := ir.NewBuilderAt(g.Body, 0)
	call := gb.Call("f", irhelper.Types(ir.IntType()), irhelper.Vals(v.Val))
	gb.Return(call.Rets[0])
	return irhelper.Module("test", f, g)
}

func TestPipeline(t *testing.T) {
	mod := caller()
	pipeline := transforms.NewPipeline(callconv.New(), valuesem.New())
	if err := pipeline.Run(mod); err != nil {
		t.Fatalf("the pipeline failed: %v", err)
	}
	got := mod.String()
	want := strings.TrimSpace(`
module @test {
	func @f(%arg0: !torch.vtensor<[],f32>) -> (!torch.int) {
		%0 = torch.constant.int 1 : !torch.int
		func.return %0
	}
	func @g(%arg0: !torch.vtensor<[],f32>) -> (!torch.int) {
		%0 = func.call @f(%arg0) : !torch.int
		func.return %0
	}
}`)
	if got != want {
		t.Errorf("got:\n%s\nbut want:\n%s\ndiff:\n%s", got, want, cmp.Diff(got, want))
	}
	if err := mod.Verify(); err != nil {
		t.Errorf("the rewritten module does not verify: %v", err)
	}
}

func TestPipelineStopsAtFirstFailure(t *testing.T) {
	x := irhelper.Param("x", irhelper.UnrankedTensor())
	f := irhelper.Func("f", irhelper.Params(x), nil, ir.NewReturnOp(nil))
	mod := irhelper.Module("test", f)

	pipeline := transforms.NewPipeline(callconv.New(), valuesem.New())
	err := pipeline.Run(mod)
	if err == nil {
		t.Fatalf("the pipeline accepted an invalid module")
	}
	if !strings.HasPrefix(err.Error(), "pass adjust-calling-conventions: ") {
		t.Errorf("the error does not name the failed pass: %v", err)
	}
	var bErr *callconv.UnsupportedAliasingBoundError
	if !errors.As(err, &bErr) {
		t.Errorf("the cause is not reachable through the wrapping: %v", err)
	}
}
