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

package set

import "sort"

var emptyInstance = struct{}{}

// StrSet is a simple set of strings
type StrSet struct {
	items map[string]struct{}
}

// NewStrSet creates a set from a list of strings
func NewStrSet(items []string) *StrSet {
	s := &StrSet{make(map[string]struct{}, len(items))}

	for _, item := range items {
		s.items[item] = emptyInstance
	}

	return s
}

// Add adds new items to the set
func (s *StrSet) Add(items ...string) {
	for _, item := range items {
		s.items[item] = emptyInstance
	}
}

// Contains returns true if the item being checked is already in the set.
func (s *StrSet) Contains(item string) bool {
	_, present := s.items[item]
	return present
}

// ContainsAll returns true if all the items being checked are already in the set.
func (s *StrSet) ContainsAll(items []string) bool {
	for _, item := range items {
		if _, present := s.items[item]; !present {
			return false
		}
	}

	return true
}

// Size returns the number of unique elements in the set
func (s *StrSet) Size() int {
	return len(s.items)
}

// AsSortedSlice returns the elements of the set in ascending order
func (s *StrSet) AsSortedSlice() []string {
	sl := make([]string, 0, len(s.items))
	for item := range s.items {
		sl = append(sl, item)
	}

	sort.Strings(sl)
	return sl
}
