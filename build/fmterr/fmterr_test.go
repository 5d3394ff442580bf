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

package fmterr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/um-urosmarkovic/torch-mlir/build/fmterr"
)

func TestPrefixes(t *testing.T) {
	base := fmt.Errorf("boom")
	tests := []struct {
		prefix func(error) error
		want   string
	}{
		{prefix: fmterr.PrefixWith("at %d: ", 42), want: "at 42: boom"},
		{prefix: fmterr.InFunc("f"), want: `in function "f": boom`},
		{prefix: fmterr.InPass("adjust-calling-conventions"), want: "pass adjust-calling-conventions: boom"},
	}
	for _, test := range tests {
		err := test.prefix(base)
		if got := err.Error(); got != test.want {
			t.Errorf("got error %q but want %q", got, test.want)
		}
		if !errors.Is(err, base) {
			t.Errorf("error %q does not wrap its cause", err)
		}
	}
}

func TestErrors(t *testing.T) {
	errs := &fmterr.Errors{}
	if !errs.Empty() {
		t.Errorf("a new set is not empty")
	}
	if errs.ToError() != nil {
		t.Errorf("an empty set converts to a non-nil error")
	}
	errs.Append(nil)
	if !errs.Empty() {
		t.Errorf("appending nil declared an error")
	}
	if ok := errs.Appendf("invalid value %d", 1); ok {
		t.Errorf("Appendf returned true")
	}
	errs.Appendf("invalid value %d", 2)
	if errs.Empty() {
		t.Errorf("the set is still empty after two errors")
	}
	if got := len(errs.Errors()); got != 2 {
		t.Errorf("the set has %d errors but want 2", got)
	}

	prefixed := errs.Transform(fmterr.InFunc("f"))
	for i, err := range prefixed.Errors() {
		want := fmt.Sprintf(`in function "f": invalid value %d`, i+1)
		if got := err.Error(); got != want {
			t.Errorf("got error %q but want %q", got, want)
		}
	}
}
