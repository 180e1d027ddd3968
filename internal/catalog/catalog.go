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

// Package catalog maintains a listing of the tables in a database,
// keyed by their schema-qualified names.
package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/dbname/internal/util/ident"
	"github.com/cockroachdb/dbname/internal/util/metrics"
	_ "github.com/microsoft/go-mssqldb" // Registers the sqlserver driver.
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Table describes a single entry in the Catalog.
type Table struct {
	Name ident.Name `json:"name"`
	Type string     `json:"type,omitempty"`
}

// A Catalog is an immutable collection of Tables. It is safe for
// concurrent use.
type Catalog struct {
	defaultSchema string
	remap         *ident.Map[ident.Name]
	tables        *ident.Map[*Table]
}

// Open connects to the database described by the Config and loads its
// tables. The connection is closed before returning. Preflight must
// have been called on the Config.
func Open(ctx context.Context, cfg *Config) (*Catalog, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, errors.Wrap(err, "could not open database")
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "could not connect to database")
	}
	return Load(ctx, db, cfg)
}

// Load executes the Config's query and returns the resulting Catalog.
// The query must return schema, name, and type columns. A NULL or empty
// schema produces an unqualified name.
func Load(ctx context.Context, db *sql.DB, cfg *Config) (*Catalog, error) {
	start := time.Now()
	rows, err := db.QueryContext(ctx, cfg.Query)
	if err != nil {
		return nil, errors.Wrap(err, cfg.Query)
	}
	defer func() { _ = rows.Close() }()

	remap := cfg.remap
	if remap == nil {
		remap = &ident.Map[ident.Name]{}
	}
	ret := &Catalog{
		defaultSchema: cfg.DefaultSchema,
		remap:         remap,
		tables:        &ident.Map[*Table]{},
	}

	for rows.Next() {
		var schema, typ sql.NullString
		var name string
		if err := rows.Scan(&schema, &name, &typ); err != nil {
			return nil, errors.WithStack(err)
		}
		if name == "" {
			log.WithField("schema", schema.String).Warn("ignoring table with empty name")
			continue
		}

		tbl := &Table{Type: typ.String}
		if schema.String == "" {
			tbl.Name = ident.New(name)
		} else {
			tbl.Name = ident.NewQualified(schema.String, name)
		}
		ret.tables.Put(tbl.Name, tbl)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	loadDuration.Observe(time.Since(start).Seconds())
	tableCount.Set(float64(ret.tables.Len()))
	log.WithFields(log.Fields{
		"count":    ret.tables.Len(),
		"duration": time.Since(start),
	}).Debug("loaded catalog")
	return ret, nil
}

// Len returns the number of tables in the Catalog.
func (c *Catalog) Len() int {
	return c.tables.Len()
}

// Lookup parses the raw name and resolves it. An
// *ident.InvalidNameError will be returned if the name is malformed.
func (c *Catalog) Lookup(raw string) (*Table, bool, error) {
	name, err := ident.Parse(raw)
	if err != nil {
		lookupCount.WithLabelValues(resultInvalid).Inc()
		return nil, false, err
	}
	tbl, ok := c.Resolve(name)
	return tbl, ok, nil
}

// Qualify applies any remapping and then the default schema to the
// name.
func (c *Catalog) Qualify(name ident.Name) ident.Name {
	if name.Empty() {
		return name
	}
	if to, ok := c.remap.Get(name); ok {
		name = to
	}
	if _, ok := name.Schema(); !ok && c.defaultSchema != "" {
		name = ident.NewQualified(c.defaultSchema, name.Name())
	}
	return name
}

// Resolve returns the Table identified by the qualified form of the
// name.
func (c *Catalog) Resolve(name ident.Name) (*Table, bool) {
	tbl, ok := c.tables.Get(c.Qualify(name))
	if ok {
		lookupCount.WithLabelValues(resultHit).Inc()
		tableHits.WithLabelValues(metrics.TableValues(tbl.Name)...).Inc()
	} else {
		lookupCount.WithLabelValues(resultMiss).Inc()
	}
	return tbl, ok
}

// Tables returns the tables in the Catalog, ordered by name.
func (c *Catalog) Tables() []*Table {
	ret := make([]*Table, 0, c.tables.Len())
	for _, tbl := range c.tables.All() {
		ret = append(ret, tbl)
	}
	return ret
}
