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

package setalgebra

import (
	"strings"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
)

// mergePolicy says which records a merge pass keeps. aOnly and bOnly cover keys found in just one input, both covers
// keys found in the two. When a key is in both inputs the record from the first table is the one kept.
type mergePolicy struct {
	aOnly bool
	bOnly bool
	both  bool
}

var (
	unionPolicy        = mergePolicy{aOnly: true, bOnly: true, both: true}
	differencePolicy   = mergePolicy{aOnly: true}
	symDiffPolicy      = mergePolicy{aOnly: true, bOnly: true}
	intersectionPolicy = mergePolicy{both: true}
)

// merge walks the two key ordered tables once, in the manner of the merge step of a merge sort. Each step compares
// the current heads and either advances a, advances b, or advances both when the keys match. Output is produced in
// key order so it is appended to the result without any searching or sorting. Neither input is modified and the
// result holds copies of the input records.
func merge(a, b *datatable.Table, policy mergePolicy) *datatable.Table {
	res := datatable.NewTable()

	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		ra, rb := a.At(i), b.At(j)

		switch datatable.CompareRecords(ra, rb) {
		case -1:
			if policy.aOnly {
				res.Insert(ra.Copy())
			}
			i++
		case 1:
			if policy.bOnly {
				res.Insert(rb.Copy())
			}
			j++
		default:
			if policy.both {
				res.Insert(ra.Copy())
			}
			i++
			j++
		}
	}

	if policy.aOnly {
		for ; i < a.Len(); i++ {
			res.Insert(a.At(i).Copy())
		}
	}

	if policy.bOnly {
		for ; j < b.Len(); j++ {
			res.Insert(b.At(j).Copy())
		}
	}

	return res
}

// Union returns a table containing every key present in a or b. When both tables hold a key the record from a is
// kept, so Union(a, b) and Union(b, a) have the same keys but may differ in which properties survive.
func Union(a, b *datatable.Table) *datatable.Table {
	return merge(a, b, unionPolicy)
}

// Difference returns a table containing the records of a whose keys are not in b.
func Difference(a, b *datatable.Table) *datatable.Table {
	return merge(a, b, differencePolicy)
}

// SymmetricDifference returns a table containing the records whose keys are present in exactly one of a and b.
func SymmetricDifference(a, b *datatable.Table) *datatable.Table {
	return merge(a, b, symDiffPolicy)
}

// Intersection returns a table containing the keys present in both a and b, using the records from a.
func Intersection(a, b *datatable.Table) *datatable.Table {
	return merge(a, b, intersectionPolicy)
}

// OpFunc is the signature shared by the set operations
type OpFunc func(a, b *datatable.Table) *datatable.Table

// Op is a named set operation
type Op struct {
	// Name is the display name, e.g. "Set Union"
	Name string
	// ShortName is the name used to select the op on the command line, e.g. "union"
	ShortName string
	Apply     OpFunc
}

// Ops holds the four set operations in the order they are run and printed.
var Ops = []Op{
	{"Set Union", "union", Union},
	{"Set Difference", "difference", Difference},
	{"Set Symmetric Difference", "symmetric-difference", SymmetricDifference},
	{"Set Intersection", "intersection", Intersection},
}

// ShortNames returns the short names of all Ops
func ShortNames() []string {
	names := make([]string, len(Ops))
	for i, op := range Ops {
		names[i] = op.ShortName
	}

	return names
}

// OpByName finds an Op by its short name, ignoring case.
func OpByName(name string) (Op, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, op := range Ops {
		if op.ShortName == name {
			return op, true
		}
	}

	return Op{}, false
}
