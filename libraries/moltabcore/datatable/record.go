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
	"errors"
	"strings"
)

// ErrEmptyKey is returned when a Record is constructed without a key.
var ErrEmptyKey = errors.New("record key cannot be empty")

// Record is a named entity with an ordered set of properties.
//
// Key is the identity of the record. CompareRecords looks at Key and nothing else, so two records with the same key
// but a different Name or different Props are the same record to a Table and to every set operation. This assumes
// no two distinct entities share a key; when they do, whichever record reaches a Table first is kept.
type Record struct {
	Key   string
	Name  string
	Props Properties
}

// NewRecord returns a fully formed Record. The key must be non-empty.
func NewRecord(key, name string, props Properties) (Record, error) {
	if key == "" {
		return Record{}, ErrEmptyKey
	}

	return Record{Key: key, Name: name, Props: props}, nil
}

// MustNewRecord is NewRecord but panics on error.
func MustNewRecord(key, name string, props Properties) Record {
	r, err := NewRecord(key, name, props)

	if err != nil {
		panic(err)
	}

	return r
}

// CompareRecords orders records by Key only, returning -1, 0 or 1. This is the single ordering and equality
// function used by Table and by the set algebra; Name and Props never take part in it.
func CompareRecords(r1, r2 Record) int {
	return strings.Compare(r1.Key, r2.Key)
}

// Copy returns a Record that shares no storage with r.
func (r Record) Copy() Record {
	return Record{Key: r.Key, Name: r.Name, Props: r.Props.copy()}
}

// Equals reports whether every field of r matches other. Unlike CompareRecords this includes Name and Props.
func (r Record) Equals(other Record) bool {
	return r.Key == other.Key && r.Name == other.Name && r.Props.Equals(other.Props)
}
