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

// ConfigHierarchy is a prioritized list of named configs. A lookup is answered by the first config, in the order
// they were added, that has the key.
type ConfigHierarchy struct {
	configs []namedConfig
}

type namedConfig struct {
	name string
	cfg  ReadableConfig
}

var _ ReadableConfig = (*ConfigHierarchy)(nil)

// NewConfigHierarchy creates an empty ConfigHierarchy
func NewConfigHierarchy() *ConfigHierarchy {
	return &ConfigHierarchy{}
}

// AddConfig adds cfg at the lowest priority. Nil configs are ignored.
func (ch *ConfigHierarchy) AddConfig(name string, cfg ReadableConfig) {
	if cfg == nil {
		return
	}

	ch.configs = append(ch.configs, namedConfig{name, cfg})
}

// GetConfig returns the config that was added with the given name
func (ch *ConfigHierarchy) GetConfig(name string) (ReadableConfig, bool) {
	for _, nc := range ch.configs {
		if nc.name == name {
			return nc.cfg, true
		}
	}

	return nil, false
}

// GetString returns the value from the highest priority config that has key.
func (ch *ConfigHierarchy) GetString(key string) (string, error) {
	_, val, err := ch.GetStringWithSource(key)
	return val, err
}

// GetStringWithSource is GetString but also returns the name of the config the value came from.
func (ch *ConfigHierarchy) GetStringWithSource(key string) (source, val string, err error) {
	for _, nc := range ch.configs {
		val, err := nc.cfg.GetString(key)

		if err == nil {
			return nc.name, val, nil
		} else if err != ErrConfigParamNotFound {
			return "", "", err
		}
	}

	return "", "", ErrConfigParamNotFound
}

// Iter visits every key once with its effective value.
func (ch *ConfigHierarchy) Iter(cb func(string, string) (stop bool)) {
	seen := make(map[string]struct{})
	stopped := false

	for _, nc := range ch.configs {
		nc.cfg.Iter(func(k, v string) (stop bool) {
			if _, ok := seen[k]; ok {
				return false
			}

			seen[k] = struct{}{}
			stopped = cb(k, v)
			return stopped
		})

		if stopped {
			return
		}
	}
}
