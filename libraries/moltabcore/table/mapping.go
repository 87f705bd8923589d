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

package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/utils/set"
)

// DefaultKeyColumn is the column records are keyed on when no mapping is configured
const DefaultKeyColumn = "Molecule"

// DefaultFloatColumns are the columns read as float properties when no mapping is configured
var DefaultFloatColumns = []string{"Solubility", "Molecular Weight"}

// RecordMapping describes how the named fields of a source row become a Record.
type RecordMapping struct {
	// KeyCol is the column holding the record key. Rows without a value for it are bad rows.
	KeyCol string
	// NameCol is the column holding the display name. When empty, or when a row has no value for it, the key is used.
	NameCol string
	// FloatCols are read as float properties. A value that does not parse as a float makes the row a bad row.
	FloatCols []string
	// StringCols are read as string properties.
	StringCols []string
	// InferKinds turns every other column into a property too, a float when the value parses as one and a string
	// otherwise.
	InferKinds bool
}

// DefaultRecordMapping keys records on the Molecule column and reads Solubility and Molecular Weight as floats.
func DefaultRecordMapping() RecordMapping {
	floats := make([]string, len(DefaultFloatColumns))
	copy(floats, DefaultFloatColumns)

	return RecordMapping{KeyCol: DefaultKeyColumn, FloatCols: floats}
}

type colKind int

const (
	ignoredCol colKind = iota
	floatCol
	stringCol
	inferredCol
)

type colBinding struct {
	idx  int
	name string
	kind colKind
}

// RowConverter turns rows laid out according to a fixed header into Records
type RowConverter struct {
	keyIdx  int
	nameIdx int
	cols    []colBinding
}

// BindHeader resolves the mapping against a header, returning a converter for the rows that follow it. The first
// column with a given name wins. Float and string columns that are not in the header are ignored, but the key column
// must be present.
func (m RecordMapping) BindHeader(header []string) (*RowConverter, error) {
	nameToIdx := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := nameToIdx[name]; !ok {
			nameToIdx[name] = i
		}
	}

	keyIdx, ok := nameToIdx[m.KeyCol]
	if !ok {
		return nil, errors.Wrapf(ErrKeyColumnMissing, "no column named '%s' in header [%s]", m.KeyCol, strings.Join(header, ", "))
	}

	nameIdx := keyIdx
	if m.NameCol != "" {
		if idx, ok := nameToIdx[m.NameCol]; ok {
			nameIdx = idx
		}
	}

	floats := set.NewStrSet(m.FloatCols)
	strs := set.NewStrSet(m.StringCols)

	var cols []colBinding
	for i, name := range header {
		if nameToIdx[name] != i || i == keyIdx || i == nameIdx {
			continue
		}

		kind := ignoredCol
		switch {
		case floats.Contains(name):
			kind = floatCol
		case strs.Contains(name):
			kind = stringCol
		case m.InferKinds:
			kind = inferredCol
		}

		if kind != ignoredCol {
			cols = append(cols, colBinding{i, name, kind})
		}
	}

	return &RowConverter{keyIdx, nameIdx, cols}, nil
}

func fieldAt(row []*string, idx int) (string, bool) {
	if idx >= len(row) || row[idx] == nil {
		return "", false
	}

	return *row[idx], true
}

// Convert builds a Record from a row. Missing and empty fields produce no property. A row without a key, or with a
// float column that does not parse, results in a *BadRow error.
func (rc *RowConverter) Convert(row []*string) (datatable.Record, error) {
	key, ok := fieldAt(row, rc.keyIdx)
	if !ok || key == "" {
		return datatable.Record{}, NewBadRow(row, "row has no key")
	}

	name, ok := fieldAt(row, rc.nameIdx)
	if !ok || name == "" {
		name = key
	}

	props := make([]datatable.Property, 0, len(rc.cols))
	for _, col := range rc.cols {
		str, ok := fieldAt(row, col.idx)
		if !ok || strings.TrimSpace(str) == "" {
			continue
		}

		var val datatable.Value
		switch col.kind {
		case floatCol:
			f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
			if err != nil {
				return datatable.Record{}, NewBadRow(row, fmt.Sprintf("'%s' is not a valid float for column '%s' of row with key '%s'", str, col.name, key))
			}
			val = datatable.NewFloat(f)
		case stringCol:
			val = datatable.NewString(str)
		case inferredCol:
			if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
				val = datatable.NewFloat(f)
			} else {
				val = datatable.NewString(str)
			}
		default:
			panic(fmt.Sprintf("unexpected column kind %d", col.kind))
		}

		props = append(props, datatable.NewProperty(col.name, val))
	}

	return datatable.NewRecord(key, name, datatable.NewProperties(props...))
}

// ConvertFields builds a Record from a row of named, typed fields such as a decoded JSON object. Strings, numbers and
// bools are accepted, nil is a missing field and anything else makes the row a bad row.
func (m RecordMapping) ConvertFields(fields map[string]interface{}) (datatable.Record, error) {
	header := make([]string, 0, len(fields))
	for name := range fields {
		header = append(header, name)
	}
	sort.Strings(header)

	row := make([]*string, len(header))
	for i, name := range header {
		var str string
		switch v := fields[name].(type) {
		case nil:
			continue
		case string:
			str = v
		case float64:
			str = strconv.FormatFloat(v, 'g', -1, 64)
		case bool:
			str = strconv.FormatBool(v)
		default:
			return datatable.Record{}, NewBadRow(row, fmt.Sprintf("field '%s' has unsupported type %T", name, v))
		}

		row[i] = &str
	}

	rc, err := m.BindHeader(header)
	if err != nil {
		return datatable.Record{}, NewBadRow(row, err.Error())
	}

	return rc.Convert(row)
}
