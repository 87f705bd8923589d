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

package config

import (
	"os"
	"strings"
)

// EnvVarName maps a config key to its environment variable, e.g. ("MOLTAB", "csv.key_column") -> MOLTAB_CSV_KEY_COLUMN
func EnvVarName(prefix, key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if prefix == "" {
		return name
	}

	return strings.ToUpper(prefix) + "_" + name
}

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(string) (string, bool)

// FromEnv builds a config from the environment variables that correspond to keys. Passing a nil lookup uses the
// process environment.
func FromEnv(prefix string, keys []string, lookup LookupFunc) *MapConfig {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	props := make(map[string]string)
	for _, key := range keys {
		if val, ok := lookup(EnvVarName(prefix, key)); ok {
			props[key] = val
		}
	}

	return NewMapConfig(props)
}
