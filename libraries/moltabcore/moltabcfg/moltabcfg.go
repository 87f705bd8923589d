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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/config"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

const (
	DataExtensionsKey    = "data.extensions"
	CSVDelimKey          = "csv.delim"
	CSVKeyColumnKey      = "csv.key_column"
	CSVNameColumnKey     = "csv.name_column"
	CSVFloatColumnsKey   = "csv.float_columns"
	CSVStringColumnsKey  = "csv.string_columns"
	CSVInferKindsKey     = "csv.infer_kinds"
	LoadSkipBadRowsKey   = "load.skip_bad_rows"
	LogLevelKey          = "log.level"
	OutputFormatKey      = "output.format"
	EnvPrefix            = "MOLTAB"
	defaultLogLevel      = "info"
	defaultOutputFormat  = "tabular"
	defaultDataExtension = ".csv"
)

// Keys lists every recognized configuration key.
var Keys = []string{
	DataExtensionsKey,
	CSVDelimKey,
	CSVKeyColumnKey,
	CSVNameColumnKey,
	CSVFloatColumnsKey,
	CSVStringColumnsKey,
	CSVInferKindsKey,
	LoadSkipBadRowsKey,
	LogLevelKey,
	OutputFormatKey,
}

// Defaults returns the built-in configuration, the lowest priority layer of every hierarchy.
func Defaults() *config.MapConfig {
	return config.NewMapConfig(map[string]string{
		DataExtensionsKey:  defaultDataExtension,
		CSVDelimKey:        ",",
		CSVKeyColumnKey:    table.DefaultKeyColumn,
		CSVFloatColumnsKey: config.JoinList(table.DefaultFloatColumns),
		CSVInferKindsKey:   "false",
		LoadSkipBadRowsKey: "false",
		LogLevelKey:        defaultLogLevel,
		OutputFormatKey:    defaultOutputFormat,
	})
}

// DataFileConfig is the data section of a config file
type DataFileConfig struct {
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions"`
}

// CSVFileConfig is the csv section of a config file. It also controls how xlsx and json rows are mapped to records.
type CSVFileConfig struct {
	Delim         *string  `yaml:"delim,omitempty" toml:"delim"`
	KeyColumn     *string  `yaml:"key_column,omitempty" toml:"key_column"`
	NameColumn    *string  `yaml:"name_column,omitempty" toml:"name_column"`
	FloatColumns  []string `yaml:"float_columns,omitempty" toml:"float_columns"`
	StringColumns []string `yaml:"string_columns,omitempty" toml:"string_columns"`
	InferKinds    *bool    `yaml:"infer_kinds,omitempty" toml:"infer_kinds"`
}

type LoadFileConfig struct {
	SkipBadRows *bool `yaml:"skip_bad_rows,omitempty" toml:"skip_bad_rows"`
}

type LogFileConfig struct {
	Level *string `yaml:"level,omitempty" toml:"level"`
}

type OutputFileConfig struct {
	Format *string `yaml:"format,omitempty" toml:"format"`
}

// FileConfig is the structure of a moltab config file, in either YAML or TOML.
type FileConfig struct {
	Data   DataFileConfig   `yaml:"data,omitempty" toml:"data"`
	CSV    CSVFileConfig    `yaml:"csv,omitempty" toml:"csv"`
	Load   LoadFileConfig   `yaml:"load,omitempty" toml:"load"`
	Log    LogFileConfig    `yaml:"log,omitempty" toml:"log"`
	Output OutputFileConfig `yaml:"output,omitempty" toml:"output"`
}

// NewYAMLConfig parses YAML config file contents. Unknown fields are an error.
func NewYAMLConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewTOMLConfig parses TOML config file contents. Unknown fields are an error.
func NewTOMLConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, errors.Errorf("unknown config fields: %s", strings.Join(keys, ", "))
	}

	return &cfg, nil
}

// FromFile reads a YAML (.yaml, .yml) or TOML (.toml) config file and flattens it into a config keyed by the
// dotted key names.
func FromFile(fs filesys.ReadableFS, path string) (*config.MapConfig, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	var cfg *FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = NewYAMLConfig(data)
	case ".toml":
		cfg, err = NewTOMLConfig(data)
	default:
		return nil, errors.Errorf("unsupported config file type '%s' for '%s'. expected .yaml, .yml or .toml", ext, path)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file '%s'", path)
	}

	return config.NewMapConfig(cfg.ToMap()), nil
}

// ToMap flattens the values that were set in the file. Lists are comma joined.
func (cfg *FileConfig) ToMap() map[string]string {
	m := make(map[string]string)
	setStr := func(key string, val *string) {
		if val != nil {
			m[key] = *val
		}
	}
	setBool := func(key string, val *bool) {
		if val != nil {
			m[key] = strconv.FormatBool(*val)
		}
	}
	setList := func(key string, val []string) {
		if val != nil {
			m[key] = config.JoinList(val)
		}
	}

	setList(DataExtensionsKey, cfg.Data.Extensions)
	setStr(CSVDelimKey, cfg.CSV.Delim)
	setStr(CSVKeyColumnKey, cfg.CSV.KeyColumn)
	setStr(CSVNameColumnKey, cfg.CSV.NameColumn)
	setList(CSVFloatColumnsKey, cfg.CSV.FloatColumns)
	setList(CSVStringColumnsKey, cfg.CSV.StringColumns)
	setBool(CSVInferKindsKey, cfg.CSV.InferKinds)
	setBool(LoadSkipBadRowsKey, cfg.Load.SkipBadRows)
	setStr(LogLevelKey, cfg.Log.Level)
	setStr(OutputFormatKey, cfg.Output.Format)

	return m
}

// String returns the config as YAML
func (cfg FileConfig) String() string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "Failed to marshal as yaml: " + err.Error()
	}

	return string(data)
}

// RecordMapping builds the column mapping described by cfg. Unset keys fall back to table's defaults for the key
// column and to no columns otherwise, so cfg should normally have Defaults() as its last layer.
func RecordMapping(cfg config.ReadableConfig) (table.RecordMapping, error) {
	m := table.RecordMapping{
		KeyCol:  config.GetStringOrDefault(cfg, CSVKeyColumnKey, table.DefaultKeyColumn),
		NameCol: config.GetStringOrDefault(cfg, CSVNameColumnKey, ""),
	}

	if m.KeyCol == "" {
		return table.RecordMapping{}, errors.Errorf("'%s' cannot be empty", CSVKeyColumnKey)
	}

	infer, _, err := config.GetBool(cfg, CSVInferKindsKey)
	if err != nil {
		return table.RecordMapping{}, err
	}

	m.InferKinds = infer
	m.FloatCols, _ = config.GetStringList(cfg, CSVFloatColumnsKey)
	m.StringCols, _ = config.GetStringList(cfg, CSVStringColumnsKey)

	return m, nil
}
