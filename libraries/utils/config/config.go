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
	"errors"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrConfigParamNotFound is returned by GetString when the requested key is not set.
var ErrConfigParamNotFound = errors.New("Param not found")

// ReadableConfig is an interface for retrieving configuration values.
type ReadableConfig interface {
	// GetString retrieves a string from the config. ErrConfigParamNotFound is returned when the key is not set.
	GetString(key string) (string, error)

	// Iter will perform a callback for each value in a config until all values have been exhausted or until the
	// callback returns true indicating that it should stop.
	Iter(func(key, value string) (stop bool))
}

// GetStringOrDefault retrieves a string from the config, returning defStr if the key is not set.
func GetStringOrDefault(cfg ReadableConfig, key, defStr string) string {
	if cfg == nil {
		return defStr
	}

	val, err := cfg.GetString(key)
	if err != nil {
		return defStr
	}

	return val
}

// GetBool parses the value of key as a bool. ok is false when the key is not set.
func GetBool(cfg ReadableConfig, key string) (val bool, ok bool, err error) {
	str, err := cfg.GetString(key)
	if err == ErrConfigParamNotFound {
		return false, false, nil
	} else if err != nil {
		return false, false, err
	}

	val, err = strconv.ParseBool(strings.TrimSpace(str))
	if err != nil {
		return false, true, pkgerrors.Wrapf(err, "invalid value for '%s'", key)
	}

	return val, true, nil
}

// GetStringList splits the comma separated value of key into its trimmed, non-empty elements. ok is false when the
// key is not set.
func GetStringList(cfg ReadableConfig, key string) (list []string, ok bool) {
	str, err := cfg.GetString(key)
	if err != nil {
		return nil, false
	}

	return SplitList(str), true
}

// SplitList splits a comma separated list, dropping empty elements.
func SplitList(str string) []string {
	var list []string
	for _, s := range strings.Split(str, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, s)
		}
	}

	return list
}

// JoinList is the inverse of SplitList
func JoinList(list []string) string {
	return strings.Join(list, ",")
}
