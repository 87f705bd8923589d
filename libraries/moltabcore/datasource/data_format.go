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
	"path/filepath"
	"strings"
)

// DataFormat is an enumeration of the file formats tables can be loaded from. The value of each format is the file
// extension it is recognized by.
type DataFormat string

const (
	// InvalidDataFormat is the format of a file with an unrecognized extension
	InvalidDataFormat DataFormat = "invalid"

	// CsvFile is the format for comma separated files
	CsvFile DataFormat = ".csv"

	// PsvFile is the format for pipe separated files
	PsvFile DataFormat = ".psv"

	// XlsxFile is the format for Excel workbooks
	XlsxFile DataFormat = ".xlsx"

	// JsonFile is the format for json files holding a rows array
	JsonFile DataFormat = ".json"
)

// DataFormats lists every format that can be loaded.
var DataFormats = []DataFormat{CsvFile, PsvFile, XlsxFile, JsonFile}

// ReadableStr returns a human readable string for a DataFormat
func (df DataFormat) ReadableStr() string {
	switch df {
	case CsvFile:
		return "csv file"
	case PsvFile:
		return "psv file"
	case XlsxFile:
		return "xlsx file"
	case JsonFile:
		return "json file"
	default:
		return "invalid"
	}
}

// DFFromString converts an extension, with or without the leading dot, to a DataFormat. Case is ignored.
func DFFromString(str string) DataFormat {
	str = strings.ToLower(strings.TrimSpace(str))
	if str != "" && !strings.HasPrefix(str, ".") {
		str = "." + str
	}

	for _, df := range DataFormats {
		if string(df) == str {
			return df
		}
	}

	return InvalidDataFormat
}

// DFFromPath returns the DataFormat of a file based on its extension
func DFFromPath(path string) DataFormat {
	ext := filepath.Ext(path)
	if ext == "" {
		return InvalidDataFormat
	}

	return DFFromString(ext)
}
