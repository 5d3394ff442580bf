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
	"strings"
)

// printer assigns stable names to the values of one function.
// Parameters are named after their position, all other values
// after the order in which their defining operation appears.
type printer struct {
	names map[*Value]string
	next  int
}

func newPrinter(f *Func) *printer {
	p := &printer{names: make(map[*Value]string)}
	for i, param := range f.Params {
		p.names[param.Val] = fmt.Sprintf("%%arg%d", i)
	}
	for _, op := range f.Body.Ops {
		for _, res := range op.Results() {
			p.names[res] = fmt.Sprintf("%%%d", p.next)
			p.next++
		}
	}
	return p
}

func (p *printer) value(val *Value) string {
	if name, ok := p.names[val]; ok {
		return name
	}
	return "%?"
}

func (p *printer) values(vals []*Value) string {
	ss := make([]string, len(vals))
	for i, val := range vals {
		ss[i] = p.value(val)
	}
	return strings.Join(ss, ", ")
}

func typesString(types []Type) string {
	ss := make([]string, len(types))
	for i, typ := range types {
		ss[i] = typ.String()
	}
	return strings.Join(ss, ", ")
}

func (p *printer) op(op Op) string {
	var b strings.Builder
	if results := op.Results(); len(results) > 0 {
		b.WriteString(p.values(results))
		b.WriteString(" = ")
	}
	b.WriteString(op.OpName())
	switch op := op.(type) {
	case *CallOp:
		fmt.Fprintf(&b, " @%s(%s)", op.Callee, p.values(op.Args))
	case *CallIndirectOp:
		fmt.Fprintf(&b, " %s(%s)", p.value(op.Fn), p.values(op.Args))
	case *ConstantIntOp:
		fmt.Fprintf(&b, " %d", op.Val)
	default:
		if operands := op.Operands(); len(operands) > 0 {
			b.WriteString(" ")
			b.WriteString(p.values(operands))
		}
	}
	if results := op.Results(); len(results) > 0 {
		types := make([]Type, len(results))
		for i, res := range results {
			types[i] = res.Type()
		}
		b.WriteString(" : ")
		b.WriteString(typesString(types))
	}
	return b.String()
}

func (f *Func) params(p *printer) string {
	ss := make([]string, len(f.Params))
	for i, param := range f.Params {
		ss[i] = fmt.Sprintf("%s: %s", p.value(param.Val), param.Val.Type())
		if param.Bound != nil {
			ss[i] += fmt.Sprintf(" {bound = %s}", param.Bound)
		}
	}
	return strings.Join(ss, ", ")
}

func indent(s string) string {
	var lines []string
	for line := range strings.Lines(s) {
		lines = append(lines, "\t"+line)
	}
	return strings.Join(lines, "")
}

// String returns a string representation of the function.
func (f *Func) String() string {
	p := newPrinter(f)
	var body strings.Builder
	for _, op := range f.Body.Ops {
		body.WriteString(p.op(op))
		body.WriteString("\n")
	}
	return fmt.Sprintf("func @%s(%s) -> (%s) {\n%s}",
		f.Name(), f.params(p), typesString(f.Results), indent(body.String()))
}

// String returns a string representation of the module.
func (m *Module) String() string {
	var body strings.Builder
	for _, f := range m.funcs {
		body.WriteString(f.String())
		body.WriteString("\n")
	}
	return fmt.Sprintf("module @%s {\n%s}", m.Name(), indent(body.String()))
}
