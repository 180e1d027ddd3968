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

package format

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCommand(t *testing.T) {
	tcs := []struct {
		args     []string
		expected string
		err      string
	}{
		{args: []string{"--name", "T"}, expected: "T"},
		{args: []string{"--schema", "S", "--name", "T"}, expected: "S.T"},
		{args: []string{"--schema", "abc", "--name", "d.ef"}, expected: "abc.[d.ef]"},
		{args: []string{"--schema", "a.].]", "--name", ".b.[c]d"}, expected: "[a.]].]]].[.b.[c]]d]"},
		{args: []string{"--name", "[x"}, expected: "[[x]"},
		{args: []string{"--schema", "S"}, err: "name must be set"},
		{args: []string{"--name", "T", "extra"}, err: "unknown command"},
	}

	for idx, tc := range tcs {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			a := assert.New(t)

			var buf bytes.Buffer
			cmd := Command()
			cmd.SetOut(&buf)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tc.args)

			err := cmd.Execute()
			if tc.err != "" {
				a.ErrorContains(err, tc.err)
				return
			}
			a.NoError(err)
			a.Equal(tc.expected+"\n", buf.String())
		})
	}
}
