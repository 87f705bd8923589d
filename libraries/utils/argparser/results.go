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

package argparser

import (
	"strings"

	"github.com/moltab/moltab/libraries/utils/set"
)

// ArgParseResults holds the named options and positional arguments found by ArgParser.Parse.
type ArgParseResults struct {
	options map[string]string
	Args    []string
	parser  *ArgParser
}

// Contains returns true if the option with the given name was provided, either as a flag or with a value.
func (res *ArgParseResults) Contains(name string) bool {
	_, ok := res.options[name]
	return ok
}

// ContainsAny returns true if any of the named options were provided.
func (res *ArgParseResults) ContainsAny(names ...string) bool {
	for _, name := range names {
		if res.Contains(name) {
			return true
		}
	}

	return false
}

// ContainsAll returns true if every named option was provided.
func (res *ArgParseResults) ContainsAll(names ...string) bool {
	for _, name := range names {
		if !res.Contains(name) {
			return false
		}
	}

	return true
}

// Options returns the names of the options that were provided
func (res *ArgParseResults) Options() *set.StrSet {
	names := set.NewStrSet(nil)
	for name := range res.options {
		names.Add(name)
	}

	return names
}

func (res *ArgParseResults) GetValue(name string) (string, bool) {
	val, ok := res.options[name]
	return val, ok
}

func (res *ArgParseResults) MustGetValue(name string) string {
	val, ok := res.options[name]

	if !ok {
		panic("Value not available.")
	}

	return val
}

func (res *ArgParseResults) GetValueOrDefault(name, defVal string) string {
	if val, ok := res.options[name]; ok {
		return val
	}

	return defVal
}

// GetValueList splits a comma separated value into its trimmed, non-empty elements.
func (res *ArgParseResults) GetValueList(name string) ([]string, bool) {
	val, ok := res.options[name]
	if !ok {
		return nil, false
	}

	var list []string
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}

	return list, true
}

func (res *ArgParseResults) NArg() int {
	return len(res.Args)
}

func (res *ArgParseResults) Arg(idx int) string {
	return res.Args[idx]
}
