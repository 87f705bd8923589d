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

package moltabcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/config"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

const yamlConfig = `
data:
  extensions: [".csv", ".psv"]
csv:
  delim: ";"
  key_column: ID
  float_columns:
    - Solubility
  infer_kinds: true
log:
  level: debug
`

const tomlConfig = `
[csv]
key_column = "ID"
name_column = "Name"
string_columns = ["Formula"]

[load]
skip_bad_rows = true

[output]
format = "json"
`

func TestFromFile(t *testing.T) {
	fs := filesys.NewInMemFS(nil, map[string][]byte{
		"/cfg/moltab.yaml": []byte(yamlConfig),
		"/cfg/moltab.toml": []byte(tomlConfig),
		"/cfg/bad.yml":     []byte("csv:\n  not_a_field: 1\n"),
		"/cfg/bad.toml":    []byte("[csv]\nnot_a_field = 1\n"),
		"/cfg/broken.toml": []byte("[csv\n"),
		"/cfg/moltab.ini":  []byte("delim=;"),
	}, "/cfg")

	tests := []struct {
		path        string
		expected    map[string]string
		expectedErr bool
	}{
		{
			"moltab.yaml",
			map[string]string{
				DataExtensionsKey:  ".csv,.psv",
				CSVDelimKey:        ";",
				CSVKeyColumnKey:    "ID",
				CSVFloatColumnsKey: "Solubility",
				CSVInferKindsKey:   "true",
				LogLevelKey:        "debug",
			},
			false,
		},
		{
			"moltab.toml",
			map[string]string{
				CSVKeyColumnKey:     "ID",
				CSVNameColumnKey:    "Name",
				CSVStringColumnsKey: "Formula",
				LoadSkipBadRowsKey:  "true",
				OutputFormatKey:     "json",
			},
			false,
		},
		{"bad.yml", nil, true},
		{"bad.toml", nil, true},
		{"broken.toml", nil, true},
		{"moltab.ini", nil, true},
		{"missing.yaml", nil, true},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			cfg, err := FromFile(fs, test.path)
			if test.expectedErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			actual := make(map[string]string)
			cfg.Iter(func(k, v string) bool {
				actual[k] = v
				return false
			})
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	for _, key := range Keys {
		switch key {
		case CSVNameColumnKey, CSVStringColumnsKey:
			_, err := defaults.GetString(key)
			assert.Equal(t, config.ErrConfigParamNotFound, err, key)
		default:
			_, err := defaults.GetString(key)
			assert.NoError(t, err, key)
		}
	}

	floats, ok := config.GetStringList(defaults, CSVFloatColumnsKey)
	require.True(t, ok)
	assert.Equal(t, table.DefaultFloatColumns, floats)
}

func TestFileConfigString(t *testing.T) {
	cfg, err := NewYAMLConfig([]byte(yamlConfig))
	require.NoError(t, err)

	roundTrip, err := NewYAMLConfig([]byte(cfg.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg.ToMap(), roundTrip.ToMap())
}

func TestRecordMapping(t *testing.T) {
	ch := config.NewConfigHierarchy()
	ch.AddConfig("cli", config.NewMapConfig(map[string]string{CSVStringColumnsKey: "Formula, Notes"}))
	ch.AddConfig("defaults", Defaults())

	m, err := RecordMapping(ch)
	require.NoError(t, err)
	assert.Equal(t, table.RecordMapping{
		KeyCol:     "Molecule",
		FloatCols:  []string{"Solubility", "Molecular Weight"},
		StringCols: []string{"Formula", "Notes"},
	}, m)

	m, err = RecordMapping(config.NewMapConfig(map[string]string{
		CSVKeyColumnKey:  "ID",
		CSVNameColumnKey: "Name",
		CSVInferKindsKey: "yes please",
	}))
	assert.Error(t, err)

	m, err = RecordMapping(config.NewMapConfig(map[string]string{
		CSVKeyColumnKey:  "ID",
		CSVNameColumnKey: "Name",
		CSVInferKindsKey: "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, table.RecordMapping{KeyCol: "ID", NameCol: "Name", InferKinds: true}, m)

	_, err = RecordMapping(config.NewMapConfig(map[string]string{CSVKeyColumnKey: ""}))
	assert.Error(t, err)
}
