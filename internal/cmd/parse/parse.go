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

// Package parse contains a command to split delimited names into their
// schema and name parts.
package parse

import (
	"encoding/json"

	"github.com/cockroachdb/dbname/internal/util/ident"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Result is printed for each successfully-parsed argument.
type Result struct {
	Input     string `json:"input"`
	Schema    string `json:"schema,omitempty"`
	Name      string `json:"name"`
	Canonical string `json:"canonical"`
}

// Command returns a command that parses each of its arguments and
// prints the results as newline-delimited JSON.
func Command() *cobra.Command {
	return &cobra.Command{
		Args:  cobra.MinimumNArgs(1),
		Short: "parse schema-qualified names",
		Use:   "parse NAME...",
		Example: `
dbname parse dbo.Orders '[sales.eu].[Line]]Items]'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			var failed int
			for _, arg := range args {
				name, err := ident.Parse(arg)
				if err != nil {
					log.WithError(err).Error("could not parse name")
					failed++
					continue
				}
				schema, _ := name.Schema()
				if err := enc.Encode(&Result{
					Input:     arg,
					Schema:    schema,
					Name:      name.Name(),
					Canonical: name.String(),
				}); err != nil {
					return errors.WithStack(err)
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d names could not be parsed", failed, len(args))
			}
			return nil
		},
	}
}
