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
	"github.com/cockroachdb/dbname/internal/util/ident"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	defaultDriver = "sqlserver"
	defaultSchema = "dbo"
	defaultQuery  = `SELECT TABLE_SCHEMA, TABLE_NAME, TABLE_TYPE
FROM INFORMATION_SCHEMA.TABLES
ORDER BY TABLE_SCHEMA, TABLE_NAME`
)

// Config contains the user-visible configuration for loading a
// Catalog.
type Config struct {
	ConnectionString string
	DefaultSchema    string
	Driver           string
	Query            string
	RemapFile        string

	remap *ident.Map[ident.Name] // Populated by Preflight.
}

// Bind adds flags to the set.
func (c *Config) Bind(f *pflag.FlagSet) {
	f.StringVar(&c.ConnectionString, "conn", "",
		"the connection string of the database to catalog")
	f.StringVar(&c.DefaultSchema, "defaultSchema", defaultSchema,
		"the schema to apply to unqualified names; may be empty")
	f.StringVar(&c.Driver, "driver", defaultDriver,
		"the database/sql driver to use")
	f.StringVar(&c.Query, "query", defaultQuery,
		"a query which returns the schema, name, and type of each table")
	f.StringVar(&c.RemapFile, "remap", "",
		"a YAML file whose entries map old table names to new ones")
}

// Preflight ensures that the Config is usable and loads the remap
// file, if one was specified.
func (c *Config) Preflight() error {
	if c.ConnectionString == "" {
		return errors.New("conn must be set")
	}
	if c.Driver == "" {
		c.Driver = defaultDriver
	}
	if c.Query == "" {
		c.Query = defaultQuery
	}
	if c.RemapFile == "" {
		c.remap = &ident.Map[ident.Name]{}
		return nil
	}
	remap, err := LoadRemap(c.RemapFile)
	if err != nil {
		return err
	}
	c.remap = remap
	return nil
}
