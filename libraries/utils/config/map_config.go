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

// MapConfig is a simple config for in memory or test configuration.  Values set with SetStrings last for the lifetime
// of the program and are not persisted anywhere.
type MapConfig struct {
	properties map[string]string
}

var _ ReadableConfig = (*MapConfig)(nil)

// NewMapConfig creates a config from a map.
func NewMapConfig(properties map[string]string) *MapConfig {
	if properties == nil {
		properties = make(map[string]string)
	}

	return &MapConfig{properties}
}

// GetString retrieves a value for a given key.
func (mc *MapConfig) GetString(k string) (string, error) {
	if val, ok := mc.properties[k]; ok {
		return val, nil
	}

	return "", ErrConfigParamNotFound
}

// SetStrings sets the values for a map of updates.
func (mc *MapConfig) SetStrings(updates map[string]string) {
	for k, v := range updates {
		mc.properties[k] = v
	}
}

// Iter will perform a callback for each value in a config until all values have been exhausted or until the
// callback returns true indicating that it should stop.
func (mc *MapConfig) Iter(cb func(string, string) (stop bool)) {
	for k, v := range mc.properties {
		if cb(k, v) {
			break
		}
	}
}

// Size returns the number of properties contained within the config
func (mc *MapConfig) Size() int {
	return len(mc.properties)
}
