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

// Package fmterr provides helpers to accumulate errors while building or
// transforming IR modules and to prefix errors with the entity they concern.
package fmterr

import (
	"fmt"

	"go.uber.org/multierr"
)

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return fmt.Errorf("%s%w", fmt.Sprintf(s, o...), err)
	}
}

// InFunc returns a function to prefix errors with the name of the function
// in which they occurred.
func InFunc(name string) func(err error) error {
	return PrefixWith("in function %q: ", name)
}

// InPass returns a function to prefix errors with the name of the pass
// that produced them.
func InPass(name string) func(err error) error {
	return PrefixWith("pass %s: ", name)
}

// Errors is a set of errors.
type Errors struct {
	errs error
}

// Append an error to the set. Appending nil leaves the set unchanged.
// Always returns false so that callers can report and abort in one statement.
func (errs *Errors) Append(err error) bool {
	errs.errs = multierr.Append(errs.errs, err)
	return false
}

// Appendf formats an error and appends it to the set.
func (errs *Errors) Appendf(format string, a ...any) bool {
	return errs.Append(fmt.Errorf(format, a...))
}

// Empty returns true if no error has been declared.
func (errs *Errors) Empty() bool {
	return errs.errs == nil
}

// Errors returns the list of all collected errors.
func (errs *Errors) Errors() []error {
	return multierr.Errors(errs.errs)
}

// ToError returns the errors as an error interface,
// or nil if the set is empty.
func (errs *Errors) ToError() error {
	if errs == nil {
		return nil
	}
	return errs.errs
}

// Transform the set of errors into a new set.
func (errs *Errors) Transform(f func(error) error) *Errors {
	if errs == nil {
		return nil
	}
	nw := &Errors{}
	for _, err := range errs.Errors() {
		nw.Append(f(err))
	}
	return nw
}
