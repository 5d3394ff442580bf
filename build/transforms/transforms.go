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

// Package transforms defines whole-module IR passes and their sequencing.
package transforms

import (
	"github.com/um-urosmarkovic/torch-mlir/build/fmterr"
	"github.com/um-urosmarkovic/torch-mlir/build/ir"
)

// Pass rewrites a module in place.
// A pass returning an error may have left the module partially rewritten:
// the module is not a valid program anymore and must be discarded.
type Pass interface {
	// Name of the pass.
	Name() string

	// Run the pass over the module.
	Run(mod *ir.Module) error
}

// Pipeline applies a sequence of passes to a module.
type Pipeline struct {
	passes []Pass
}

// NewPipeline returns a pipeline applying the given passes in order.
func NewPipeline(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes}
}

// Run the passes in order, stopping at the first failure.
// On failure, the module must be discarded (see Pass).
func (p *Pipeline) Run(mod *ir.Module) error {
	for _, pass := range p.passes {
		if err := pass.Run(mod); err != nil {
			return fmterr.InPass(pass.Name())(err)
		}
	}
	return nil
}
