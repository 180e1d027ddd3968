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

import "sync"

// canonicalMap interns values so that equal keys always yield the same
// instance.
type canonicalMap[K comparable, V any] struct {
	// May be called more than once for the same key. Only one of the
	// results will be retained.
	Lazy func(key K) V
	// Names come from a finite catalog, so entries are never evicted.
	data map[K]V
	mu   sync.RWMutex
}

// Get implements a thread-safe get-or-create routine.
func (m *canonicalMap[K, V]) Get(key K) V {
	m.mu.RLock()
	found, ok := m.data[key]
	m.mu.RUnlock()
	if ok {
		return found
	}

	ret := m.Lazy(key)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have won the race.
	if found, ok := m.data[key]; ok {
		return found
	}
	if m.data == nil {
		m.data = make(map[K]V)
	}
	m.data[key] = ret
	return ret
}

// Len returns the number of interned values.
func (m *canonicalMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
