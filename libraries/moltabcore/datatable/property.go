// Copyright 2026 Dolthub, Inc.
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

package datatable

import (
	"sort"
	"strings"
)

// Property is a single named attribute of a Record.
//
// Properties are ordered and deduplicated using CompareProperties, which looks at Key and nothing else. Two
// properties with the same Key and different Values are the same property as far as a Properties collection is
// concerned.
type Property struct {
	Key   string
	Value Value
}

// NewProperty returns a Property with the given key and value
func NewProperty(key string, val Value) Property {
	return Property{Key: key, Value: val}
}

// CompareProperties orders properties by Key only, returning -1, 0 or 1. It is the only ordering used for
// properties. Do not add fields to the comparison; equality of a Property inside a collection is key equality.
func CompareProperties(p1, p2 Property) int {
	return strings.Compare(p1.Key, p2.Key)
}

// Properties is an immutable collection of Property values, ordered by key with at most one Property per key.
// The zero value is an empty collection.
type Properties struct {
	props []Property
}

// NewProperties builds an ordered, deduplicated collection from props. When more than one Property shares a key the
// first one in argument order is kept and the rest are dropped.
func NewProperties(props ...Property) Properties {
	if len(props) == 0 {
		return Properties{}
	}

	sorted := make([]Property, len(props))
	copy(sorted, props)

	// stable so that the first occurrence of a key stays first within its run
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareProperties(sorted[i], sorted[j]) < 0
	})

	deduped := sorted[:1]
	for _, p := range sorted[1:] {
		if CompareProperties(deduped[len(deduped)-1], p) != 0 {
			deduped = append(deduped, p)
		}
	}

	return Properties{deduped}
}

// Len returns the number of properties in the collection
func (ps Properties) Len() int {
	return len(ps.props)
}

// At returns the property at index i in key order.
func (ps Properties) At(i int) Property {
	return ps.props[i]
}

// Get returns the value of the property with the given key.
func (ps Properties) Get(key string) (Value, bool) {
	idx := sort.Search(len(ps.props), func(i int) bool {
		return ps.props[i].Key >= key
	})

	if idx < len(ps.props) && ps.props[idx].Key == key {
		return ps.props[idx].Value, true
	}

	return Value{}, false
}

// Iter calls cb for each property in key order until cb returns true.
func (ps Properties) Iter(cb func(p Property) (stop bool)) {
	for _, p := range ps.props {
		if cb(p) {
			return
		}
	}
}

// Keys returns the property keys in order
func (ps Properties) Keys() []string {
	keys := make([]string, len(ps.props))
	for i, p := range ps.props {
		keys[i] = p.Key
	}

	return keys
}

// Slice returns a copy of the properties in key order.
func (ps Properties) Slice() []Property {
	if len(ps.props) == 0 {
		return nil
	}

	cp := make([]Property, len(ps.props))
	copy(cp, ps.props)
	return cp
}

// Equals reports whether both collections hold the same keys with equal values.
func (ps Properties) Equals(other Properties) bool {
	if len(ps.props) != len(other.props) {
		return false
	}

	for i := range ps.props {
		if ps.props[i].Key != other.props[i].Key || !ps.props[i].Value.Equals(other.props[i].Value) {
			return false
		}
	}

	return true
}

func (ps Properties) copy() Properties {
	return Properties{ps.Slice()}
}
