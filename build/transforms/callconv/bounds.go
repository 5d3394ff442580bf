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

package callconv

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/um-urosmarkovic/torch-mlir/build/ir"
)

type boundKey struct {
	fn    string
	index int
}

// BoundTable maps a function name and parameter index to the type bound
// declared for that parameter.
//
// Rewriting a call needs the non-local bounds of the callee definition.
// The table is built for the whole module before any function is rewritten,
// which avoids any ordering issue between the rewriting of functions and
// the rewriting of calls: rewriting a function erases its bounds.
type BoundTable map[boundKey]ir.Type

// Bounds collects the type bounds declared by all the functions of the module.
// The module is left untouched. A parameter without a bound has no entry.
func Bounds(mod *ir.Module) BoundTable {
	table := BoundTable{}
	for _, f := range mod.Funcs() {
		for i, param := range f.Params {
			if param.Bound == nil {
				continue
			}
			table[boundKey{fn: f.Name(), index: i}] = param.Bound
		}
	}
	return table
}

// Bound returns the type bound declared for a parameter of a function,
// given the function name and the parameter index.
func (t BoundTable) Bound(fn string, index int) (ir.Type, bool) {
	bound, ok := t[boundKey{fn: fn, index: index}]
	return bound, ok
}

// String returns a deterministic representation of the table.
func (t BoundTable) String() string {
	keys := maps.Keys(t)
	slices.SortFunc(keys, func(a, b boundKey) int {
		if c := strings.Compare(a.fn, b.fn); c != 0 {
			return c
		}
		return a.index - b.index
	})
	ss := make([]string, len(keys))
	for i, key := range keys {
		ss[i] = fmt.Sprintf("%s:%d: %s", key.fn, key.index, t[key])
	}
	return strings.Join(ss, "\n")
}
