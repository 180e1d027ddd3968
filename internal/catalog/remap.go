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

package catalog

import (
	"os"

	"github.com/cockroachdb/dbname/internal/util/ident"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadRemap reads a YAML file of "from: to" entries.
func LoadRemap(path string) (*ident.Map[ident.Name], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read remap file %s", path)
	}
	ret, err := ParseRemap(data)
	return ret, errors.Wrap(err, path)
}

// ParseRemap decodes a YAML document whose keys and values are both
// names in delimited form. Keys that begin with a bracket must be
// quoted, since YAML would otherwise treat them as a sequence.
func ParseRemap(data []byte) (*ident.Map[ident.Name], error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "could not decode remap entries")
	}

	ret := &ident.Map[ident.Name]{}
	for from, to := range raw {
		fromName, err := ident.Parse(from)
		if err != nil {
			return nil, err
		}
		toName, err := ident.Parse(to)
		if err != nil {
			return nil, err
		}
		ret.Put(fromName, toName)
	}
	return ret, nil
}
