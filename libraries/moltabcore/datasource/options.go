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

package datasource

import (
	"github.com/pkg/errors"

	"github.com/moltab/moltab/libraries/moltabcore/moltabcfg"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/config"
)

// Options control how data files are found and read.
type Options struct {
	// Formats are the formats ListDataFiles looks for
	Formats []DataFormat
	// Delim separates the fields of a CsvFile. PsvFile always uses "|".
	Delim string
	// SheetName is the sheet read from an XlsxFile. When empty the first sheet is read.
	SheetName string
	// Mapping says how source fields become records
	Mapping table.RecordMapping
	// SkipBadRows skips rows that cannot be read as records instead of failing the whole file
	SkipBadRows bool
}

// DefaultOptions finds .csv files and reads them with the default record mapping.
func DefaultOptions() Options {
	return Options{
		Formats: []DataFormat{CsvFile},
		Delim:   ",",
		Mapping: table.DefaultRecordMapping(),
	}
}

// OptionsFromConfig builds Options from the data, csv and load sections of cfg.
func OptionsFromConfig(cfg config.ReadableConfig) (Options, error) {
	opts := DefaultOptions()

	if exts, ok := config.GetStringList(cfg, moltabcfg.DataExtensionsKey); ok {
		opts.Formats = nil
		for _, ext := range exts {
			df := DFFromString(ext)
			if df == InvalidDataFormat {
				return Options{}, errors.Errorf("unsupported data file extension '%s' in '%s'", ext, moltabcfg.DataExtensionsKey)
			}

			opts.Formats = append(opts.Formats, df)
		}

		if len(opts.Formats) == 0 {
			return Options{}, errors.Errorf("'%s' cannot be empty", moltabcfg.DataExtensionsKey)
		}
	}

	opts.Delim = config.GetStringOrDefault(cfg, moltabcfg.CSVDelimKey, opts.Delim)
	if opts.Delim == "" {
		return Options{}, errors.Errorf("'%s' cannot be empty", moltabcfg.CSVDelimKey)
	}

	mapping, err := moltabcfg.RecordMapping(cfg)
	if err != nil {
		return Options{}, err
	}

	opts.Mapping = mapping

	skip, _, err := config.GetBool(cfg, moltabcfg.LoadSkipBadRowsKey)
	if err != nil {
		return Options{}, err
	}

	opts.SkipBadRows = skip
	return opts, nil
}
