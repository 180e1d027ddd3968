// Copyright 2024 The Cockroach Authors
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
//
// SPDX-License-Identifier: Apache-2.0

package ident

import "github.com/spf13/pflag"

// Value allows Names to be used with the spf13 flags package.
type Value Name

var _ pflag.Value = (*Value)(nil)

// NewValue wraps the given Name so that it can be used with the spf13
// flags package.
func NewValue(id *Name) *Value {
	return (*Value)(id)
}

// Set implements pflag.Value and parses the delimited form.
func (v *Value) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*(*Name)(v) = parsed
	return nil
}

// String returns the delimited form of the underlying Name.
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	return Name(*v).String()
}

// Type implements pflag.Value.
func (v *Value) Type() string { return "name" }
