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
	"sync"

	"github.com/google/btree"
)

const tableBTreeDegree = 32

func recordLess(a, b Record) bool {
	return CompareRecords(a, b) < 0
}

// Table is an ordered collection of Records with at most one Record per key. Records are kept in strictly increasing
// key order as defined by CompareRecords. A nil *Table behaves as an empty table for every read method.
//
// Records live in a btree so inserts in any order cost O(log n). Positional reads (At, Records, Equals) are served
// from a slice snapshot of the tree which is rebuilt on the first positional read after an out of order insert.
// Inserts arriving in key order extend the snapshot in place.
//
// Tables are not synchronized for writes. Once built they are only read, which makes sharing them between
// goroutines safe.
type Table struct {
	tree *btree.BTreeG[Record]

	mu          sync.Mutex
	sorted      []Record
	sortedValid bool
}

// NewTable returns a Table built by inserting each record in order. Later records whose key is already present are
// dropped.
func NewTable(records ...Record) *Table {
	t := &Table{
		tree:        btree.NewG[Record](tableBTreeDegree, recordLess),
		sorted:      make([]Record, 0, len(records)),
		sortedValid: true,
	}

	for _, r := range records {
		t.Insert(r)
	}

	return t
}

// Insert adds r to the table. If a record with the same key is already present the table is left untouched and
// Insert returns false; the first record inserted for a key always wins. This is not an error.
func (t *Table) Insert(r Record) bool {
	if t.tree == nil {
		t.tree = btree.NewG[Record](tableBTreeDegree, recordLess)
	}

	// ReplaceOrInsert overwrites, so the existing record has to be checked for first
	if t.tree.Has(r) {
		return false
	}

	t.tree.ReplaceOrInsert(r)

	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.sorted)
	if t.sortedValid && (n == 0 || CompareRecords(t.sorted[n-1], r) < 0) {
		t.sorted = append(t.sorted, r)
	} else {
		t.sorted = nil
		t.sortedValid = false
	}

	return true
}

// snapshot returns the records in key order. The returned slice must not be modified.
func (t *Table) snapshot() []Record {
	if t == nil || t.tree == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.sortedValid {
		sorted := make([]Record, 0, t.tree.Len())
		t.tree.Ascend(func(r Record) bool {
			sorted = append(sorted, r)
			return true
		})

		t.sorted = sorted
		t.sortedValid = true
	}

	return t.sorted
}

// Len returns the number of records in the table
func (t *Table) Len() int {
	if t == nil || t.tree == nil {
		return 0
	}

	return t.tree.Len()
}

// Empty returns true if the table has no records
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// At returns the record at index i in key order.
func (t *Table) At(i int) Record {
	return t.snapshot()[i]
}

// Get returns the record with the given key.
func (t *Table) Get(key string) (Record, bool) {
	if t == nil || t.tree == nil {
		return Record{}, false
	}

	return t.tree.Get(Record{Key: key})
}

// Has returns true if a record with the given key is in the table
func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Iter calls cb for each record in key order until cb returns true.
func (t *Table) Iter(cb func(r Record) (stop bool)) {
	if t == nil || t.tree == nil {
		return
	}

	t.tree.Ascend(func(r Record) bool {
		return !cb(r)
	})
}

// Records returns a copy of the table's records in key order.
func (t *Table) Records() []Record {
	sorted := t.snapshot()
	if len(sorted) == 0 {
		return nil
	}

	cp := make([]Record, len(sorted))
	copy(cp, sorted)
	return cp
}

// Keys returns the keys of the table's records in order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.Len())
	t.Iter(func(r Record) (stop bool) {
		keys = append(keys, r.Key)
		return false
	})

	return keys
}

// Equals reports whether both tables hold the same records, comparing every field of every record.
func (t *Table) Equals(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}

	lhs, rhs := t.snapshot(), other.snapshot()
	for i := range lhs {
		if !lhs[i].Equals(rhs[i]) {
			return false
		}
	}

	return true
}
