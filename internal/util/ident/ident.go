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

// Package ident contains a value type for representing possibly
// schema-qualified database object names, such as "dbo.Orders" or
// "[sales.eu].[Line]]Items]".
package ident

import (
	"encoding"
	"encoding/json"
	"strings"
)

// A Name is an object name, optionally qualified by a schema. Instances
// are canonicalized, so two Names are == if and only if they have
// identical name and schema values. This makes a Name suitable for use
// as a map key.
//
// The zero value is an empty Name, which is never returned by Parse.
type Name struct {
	*qualified
}

var (
	_ encoding.TextMarshaler   = Name{}
	_ encoding.TextUnmarshaler = (*Name)(nil)
	_ json.Marshaler           = Name{}
	_ json.Unmarshaler         = (*Name)(nil)
)

// The key values are unquoted. An empty schema means that no schema
// was specified.
type nameKey struct {
	schema, name string
}

// qualified is the canonical instance behind a Name. It should only
// ever be constructed via [qualifieds].
type qualified struct {
	nameKey
	q string // Pre-computed, quoted form.
	_ noCopy
}

var qualifieds = canonicalMap[nameKey, *qualified]{
	Lazy: func(key nameKey) *qualified {
		var sb strings.Builder
		if key.schema != "" {
			writePart(&sb, key.schema)
			sb.WriteRune(separator)
		}
		writePart(&sb, key.name)
		return &qualified{nameKey: key, q: sb.String()}
	},
}

// New returns an unqualified Name. The value is used verbatim; prefer
// Parse when operating on user-provided input that may be quoted. This
// function panics if the name is empty.
func New(name string) Name {
	if name == "" {
		panic("ident: name must not be empty")
	}
	return newName("", name)
}

// NewQualified returns a Name within the given schema. Both values are
// used verbatim. This function panics if either value is empty.
func NewQualified(schema, name string) Name {
	if schema == "" {
		panic("ident: schema must not be empty")
	}
	if name == "" {
		panic("ident: name must not be empty")
	}
	return newName(schema, name)
}

func newName(schema, name string) Name {
	return Name{qualifieds.Get(nameKey{schema: schema, name: name})}
}

// Empty returns true for the zero value.
func (n Name) Empty() bool {
	return n.qualified == nil
}

// Name returns the unqualified object name.
func (n Name) Name() string {
	if n.qualified == nil {
		return ""
	}
	return n.nameKey.name
}

// Schema returns the schema qualifier and true, or false if no schema
// was specified.
func (n Name) Schema() (string, bool) {
	if n.qualified == nil || n.nameKey.schema == "" {
		return "", false
	}
	return n.nameKey.schema, true
}

// Raw returns the unquoted, dot-separated parts. The result is meant
// for display and may not be parsed back into the same Name.
func (n Name) Raw() string {
	if n.qualified == nil {
		return ""
	}
	if n.nameKey.schema == "" {
		return n.nameKey.name
	}
	return n.nameKey.schema + string(separator) + n.nameKey.name
}

// String returns the Name in its delimited form. A part is wrapped in
// brackets only if its content would otherwise be ambiguous. A part
// that begins with an opening bracket is also delimited. The result can
// be passed to Parse to recover an identical Name.
func (n Name) String() string {
	if n.qualified == nil {
		return ""
	}
	return n.q
}

// MarshalJSON encodes the delimited form as a JSON string.
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// MarshalText returns the delimited form, allowing the Name to be used
// as a JSON map key.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalJSON parses a JSON string. An empty string or a JSON null
// will result in the zero value.
func (n *Name) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*n = Name{}
		return nil
	}
	return n.UnmarshalText([]byte(*raw))
}

// UnmarshalText parses the delimited form.
func (n *Name) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*n = Name{}
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// noCopy idiom for go vet.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
