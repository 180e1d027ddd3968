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
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/dbname/internal/util/ident"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testQuery = `SELECT table_schema, table_name, table_type FROM tables ORDER BY rowid`

// seed creates a sqlite database that mimics the shape of
// INFORMATION_SCHEMA.TABLES and returns its path.
func seed(t *testing.T) string {
	t.Helper()
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite", path)
	r.NoError(err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `CREATE TABLE tables (
  table_schema TEXT,
  table_name TEXT NOT NULL,
  table_type TEXT)`)
	r.NoError(err)

	rows := [][]any{
		{"dbo", "Orders", "BASE TABLE"},
		{"sales.eu", "Line]Items", "BASE TABLE"},
		{"sales", "Customers", "VIEW"},
		{nil, "loose", nil},
		{"dbo", "", "BASE TABLE"},
	}
	for _, row := range rows {
		_, err := db.ExecContext(ctx,
			`INSERT INTO tables (table_schema, table_name, table_type) VALUES (?, ?, ?)`, row...)
		r.NoError(err)
	}
	return path
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{
		ConnectionString: seed(t),
		DefaultSchema:    "dbo",
		Driver:           "sqlite",
		Query:            testQuery,
	}
	require.NoError(t, cfg.Preflight())
	return cfg
}

func TestOpen(t *testing.T) {
	r := require.New(t)

	cat, err := Open(context.Background(), testConfig(t))
	r.NoError(err)

	// The row with an empty name is skipped.
	r.Equal(4, cat.Len())
	r.Equal(float64(4), testutil.ToFloat64(tableCount))

	var names []string
	for _, tbl := range cat.Tables() {
		names = append(names, tbl.Name.String())
	}
	r.Equal([]string{
		"[sales.eu].[Line]]Items]",
		"dbo.Orders",
		"loose",
		"sales.Customers",
	}, names)
}

func TestLookup(t *testing.T) {
	cat, err := Open(context.Background(), testConfig(t))
	require.NoError(t, err)

	tcs := []struct {
		raw     string
		found   ident.Name // Empty if not found.
		typ     string
		invalid bool
	}{
		{raw: "Orders", found: ident.NewQualified("dbo", "Orders"), typ: "BASE TABLE"},
		{raw: "dbo.Orders", found: ident.NewQualified("dbo", "Orders"), typ: "BASE TABLE"},
		{raw: "[dbo].[Orders]", found: ident.NewQualified("dbo", "Orders"), typ: "BASE TABLE"},
		{raw: "sales.Customers", found: ident.NewQualified("sales", "Customers"), typ: "VIEW"},
		{raw: "[sales.eu].[Line]]Items]", found: ident.NewQualified("sales.eu", "Line]Items"), typ: "BASE TABLE"},
		{raw: "dbo.orders"},
		{raw: "sales.eu.[Line]]Items]", invalid: true},
		{raw: "Customers"},
		// Default schema is applied, so this is dbo.loose.
		{raw: "loose"},
		{raw: ".Orders", invalid: true},
	}

	for _, tc := range tcs {
		t.Run(tc.raw, func(t *testing.T) {
			a := assert.New(t)

			tbl, ok, err := cat.Lookup(tc.raw)
			if tc.invalid {
				a.True(ident.IsInvalid(err))
				a.False(ok)
				return
			}
			a.NoError(err)
			if tc.found.Empty() {
				a.False(ok)
				a.Nil(tbl)
				return
			}
			if a.True(ok) {
				a.Equal(tc.found, tbl.Name)
				a.Equal(tc.typ, tbl.Type)
			}
		})
	}
}

func TestNoDefaultSchema(t *testing.T) {
	r := require.New(t)

	cfg := testConfig(t)
	cfg.DefaultSchema = ""
	cat, err := Open(context.Background(), cfg)
	r.NoError(err)

	tbl, ok := cat.Resolve(ident.New("loose"))
	r.True(ok)
	r.Equal(ident.New("loose"), tbl.Name)

	_, ok = cat.Resolve(ident.New("Orders"))
	r.False(ok)

	_, ok = cat.Resolve(ident.Name{})
	r.False(ok)
}

func TestLookupMetrics(t *testing.T) {
	r := require.New(t)

	cat, err := Open(context.Background(), testConfig(t))
	r.NoError(err)

	hits := testutil.ToFloat64(lookupCount.WithLabelValues(resultHit))
	misses := testutil.ToFloat64(lookupCount.WithLabelValues(resultMiss))
	invalid := testutil.ToFloat64(lookupCount.WithLabelValues(resultInvalid))
	orders := testutil.ToFloat64(tableHits.WithLabelValues("dbo", "Orders"))

	_, _, _ = cat.Lookup("Orders")
	_, _, _ = cat.Lookup("Nope")
	_, _, _ = cat.Lookup("a.b.c")

	r.Equal(hits+1, testutil.ToFloat64(lookupCount.WithLabelValues(resultHit)))
	r.Equal(misses+1, testutil.ToFloat64(lookupCount.WithLabelValues(resultMiss)))
	r.Equal(invalid+1, testutil.ToFloat64(lookupCount.WithLabelValues(resultInvalid)))
	r.Equal(orders+1, testutil.ToFloat64(tableHits.WithLabelValues("dbo", "Orders")))
}

func TestRemap(t *testing.T) {
	r := require.New(t)

	remapFile := filepath.Join(t.TempDir(), "remap.yaml")
	r.NoError(os.WriteFile(remapFile, []byte(`
legacy_orders: dbo.Orders
"[old.eu].items": "[sales.eu].[Line]]Items]"
Clients: sales.Customers
`), 0644))

	cfg := testConfig(t)
	cfg.RemapFile = remapFile
	r.NoError(cfg.Preflight())

	cat, err := Open(context.Background(), cfg)
	r.NoError(err)

	tbl, ok, err := cat.Lookup("legacy_orders")
	r.NoError(err)
	r.True(ok)
	r.Equal(ident.NewQualified("dbo", "Orders"), tbl.Name)

	tbl, ok, err = cat.Lookup("[old.eu].[items]")
	r.NoError(err)
	r.True(ok)
	r.Equal(ident.NewQualified("sales.eu", "Line]Items"), tbl.Name)

	// Remapping happens before the default schema is applied.
	r.Equal(ident.NewQualified("sales", "Customers"), cat.Qualify(ident.New("Clients")))
	_, ok, err = cat.Lookup("dbo.Clients")
	r.NoError(err)
	r.False(ok)
}

func TestParseRemapErrors(t *testing.T) {
	a := assert.New(t)

	_, err := ParseRemap([]byte(`a.b.c: d`))
	a.True(ident.IsInvalid(err))

	_, err = ParseRemap([]byte(`a: .d`))
	a.True(ident.IsInvalid(err))

	_, err = ParseRemap([]byte(`[not, a, map]`))
	a.Error(err)

	_, err = LoadRemap(filepath.Join(t.TempDir(), "missing.yaml"))
	a.ErrorContains(err, "could not read remap file")
}

func TestPreflight(t *testing.T) {
	a := assert.New(t)

	cfg := &Config{}
	a.ErrorContains(cfg.Preflight(), "conn must be set")

	cfg.ConnectionString = "sqlserver://localhost"
	a.NoError(cfg.Preflight())
	a.Equal(defaultDriver, cfg.Driver)
	a.Equal(defaultQuery, cfg.Query)
	a.NotNil(cfg.remap)
}

func TestQueryError(t *testing.T) {
	r := require.New(t)

	cfg := testConfig(t)
	cfg.Query = "SELECT * FROM no_such_table"
	_, err := Open(context.Background(), cfg)
	r.ErrorContains(err, "no_such_table")
}
