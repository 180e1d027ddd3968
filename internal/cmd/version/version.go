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

// Package version contains a command to print the build's
// bill-of-materials.
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// BuildVersion is set by the go linker at build time
var BuildVersion = "<unknown>"

// Module is an entry in the bill-of-materials.
type Module struct {
	Path    string `json:"path"`
	Version string `json:"version"`
	Sum     string `json:"sum,omitempty"`
}

// Modules returns the dependencies compiled into the binary.
func Modules() []Module {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	ret := make([]Module, 0, len(bi.Deps))
	for _, m := range bi.Deps {
		for m.Replace != nil {
			m = m.Replace
		}
		ret = append(ret, Module{Path: m.Path, Version: m.Version, Sum: m.Sum})
	}
	return ret
}

// Command returns a command to print the build's bill-of-materials.
func Command() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Args:  cobra.NoArgs,
		Short: "print the build's bill-of-materials",
		Use:   "version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return errors.WithStack(enc.Encode(map[string]any{
					"build":   BuildVersion,
					"runtime": runtime.Version(),
					"modules": Modules(),
				}))
			}

			log.WithFields(log.Fields{
				"build":   BuildVersion,
				"runtime": runtime.Version(),
				"arch":    runtime.GOARCH,
				"os":      runtime.GOOS,
			}).Info("dbname")

			for _, m := range Modules() {
				log.WithFields(log.Fields{
					"sum":     m.Sum,
					"version": m.Version,
				}).Info(m.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the bill-of-materials as JSON")
	return cmd
}
