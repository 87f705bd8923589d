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

package csv

// CSVFileInfo describes a csv file
type CSVFileInfo struct {
	// Delim says which string is used to separate fields. Multi-character delimiters are allowed.
	Delim string
	// HasHeaderLine says if the first line of the file holds the column names
	HasHeaderLine bool
	// Columns is the list of column names used when the file has no header line. When the file has a header line
	// and Columns is set, Columns takes the place of the names found in the file.
	Columns []string
}

// NewCSVInfo creates a new CSVInfo struct with default values
func NewCSVInfo() *CSVFileInfo {
	return &CSVFileInfo{",", true, nil}
}

// SetDelim sets the Delim member and returns the CSVFileInfo
func (info *CSVFileInfo) SetDelim(delim string) *CSVFileInfo {
	info.Delim = delim
	return info
}

// SetHasHeaderLine sets the HeaderLine member and returns the CSVFileInfo
func (info *CSVFileInfo) SetHasHeaderLine(hasHeaderLine bool) *CSVFileInfo {
	info.HasHeaderLine = hasHeaderLine
	return info
}

// SetColumns sets the Columns member and returns the CSVFileInfo
func (info *CSVFileInfo) SetColumns(columns []string) *CSVFileInfo {
	info.Columns = columns
	return info
}
