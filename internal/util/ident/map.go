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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Map is an exact-match mapping of Name to values.
//
// Usage notes:
//   - The zero value of a Map is safe to use.
//   - A Map can be serialized to and from a JSON object whose keys are
//     the delimited form of the Names.
//   - A Map is not internally synchronized.
type Map[V any] struct {
	data map[Name]V
	_    noCopy
}

var (
	_ json.Marshaler   = (*Map[any])(nil)
	_ json.Unmarshaler = (*Map[any])(nil)
)

// MapOf accepts an even number of arguments and constructs a map of
// names to values. The names may be given as either a Name or as a
// string to be parsed. This function panics if there is invalid input,
// so its use should be limited to testing.
func MapOf[V any](args ...any) *Map[V] {
	if len(args)%2 != 0 {
		panic("expecting an even number of arguments")
	}
	ret := &Map[V]{}
	for i := 0; i < len(args); i += 2 {
		var key Name
		switch t := args[i].(type) {
		case Name:
			key = t
		case string:
			key = MustParse(t)
		default:
			panic(fmt.Sprintf("unsupported type %T at index %d", t, i))
		}
		// A nil in the input should result in a zero value.
		var v V
		if args[i+1] != nil {
			v = args[i+1].(V)
		}
		ret.Put(key, v)
	}
	return ret
}

// All returns an iterator over the map entries, ordered by the
// delimited form of the keys.
func (m *Map[V]) All() iter.Seq2[Name, V] {
	return func(yield func(Name, V) bool) {
		for _, k := range m.Keys() {
			if !yield(k, m.data[k]) {
				return
			}
		}
	}
}

// Delete removes the mapping, if any.
func (m *Map[V]) Delete(key Name) {
	delete(m.data, key)
}

// Get returns the value associated with the key.
func (m *Map[V]) Get(key Name) (_ V, ok bool) {
	v, ok := m.data[key]
	return v, ok
}

// GetZero returns the value associated with the key or a zero value.
func (m *Map[V]) GetZero(key Name) V {
	return m.data[key]
}

// Keys returns the keys of the map, ordered by their delimited form.
func (m *Map[V]) Keys() []Name {
	ret := make([]Name, 0, len(m.data))
	for k := range m.data {
		ret = append(ret, k)
	}
	slices.SortFunc(ret, func(a, b Name) int {
		return strings.Compare(a.String(), b.String())
	})
	return ret
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.data)
}

// Put adds or replaces a mapping.
func (m *Map[V]) Put(key Name, value V) {
	if m.data == nil {
		m.data = make(map[Name]V)
	}
	m.data[key] = value
}

// MarshalJSON implements json.Marshaler.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	temp := make(map[string]V, len(m.data))
	for k, v := range m.data {
		temp[k.String()] = v
	}
	return json.Marshal(temp)
}

// UnmarshalJSON implements json.Unmarshaler. Every key is parsed, so an
// *InvalidNameError will be returned for malformed keys.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // Preserve large-magnitude JSON numbers.
	temp := make(map[string]V)
	if err := dec.Decode(&temp); err != nil {
		return errors.WithStack(err)
	}

	next := make(map[Name]V, len(temp))
	for k, v := range temp {
		name, err := Parse(k)
		if err != nil {
			return err
		}
		next[name] = v
	}
	m.data = next
	return nil
}
