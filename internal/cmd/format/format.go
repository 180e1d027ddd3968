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

// Package format contains a command to build a delimited name from its
// unquoted parts.
package format

import (
	"fmt"

	"github.com/cockroachdb/dbname/internal/util/ident"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Command returns a command that prints the delimited form of a name.
func Command() *cobra.Command {
	var name, schema string
	cmd := &cobra.Command{
		Args:  cobra.NoArgs,
		Short: "quote a name and optional schema",
		Use:   "format",
		Example: `
dbname format --schema sales.eu --name 'Line]Items'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				return errors.New("name must be set")
			}
			var id ident.Name
			if schema == "" {
				id = ident.New(name)
			} else {
				id = ident.NewQualified(schema, name)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return errors.WithStack(err)
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "the unquoted object name")
	f.StringVar(&schema, "schema", "", "the unquoted schema name, if any")
	return cmd
}
