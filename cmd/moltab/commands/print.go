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

package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/moltabcore/table/typed/json"
	"github.com/moltab/moltab/libraries/moltabcore/table/untyped/csv"
	"github.com/moltab/moltab/libraries/moltabcore/table/untyped/tabular"
	"github.com/moltab/moltab/libraries/utils/iohelp"
)

type PrintResultFormat byte

const (
	FormatTabular PrintResultFormat = iota
	FormatCsv
	FormatJson
)

var resultFormatNames = []string{"tabular", "csv", "json"}

func (f PrintResultFormat) String() string {
	if int(f) < len(resultFormatNames) {
		return resultFormatNames[f]
	}

	return fmt.Sprintf("PrintResultFormat(%d)", byte(f))
}

// ParseResultFormat returns the format with the given name, ignoring case
func ParseResultFormat(name string) (PrintResultFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, fmtName := range resultFormatNames {
		if name == fmtName {
			return PrintResultFormat(i), nil
		}
	}

	return FormatTabular, fmt.Errorf("invalid result format '%s'. valid formats are: %s", name, strings.Join(resultFormatNames, ", "))
}

// PrintTable writes every record of tbl to wr in the format given. keyField and nameField name the key and name
// columns of csv and json output; when nameField is empty names are left out of them.
func PrintTable(ctx context.Context, wr io.Writer, format PrintResultFormat, tbl *datatable.Table, keyField, nameField string) error {
	if format == FormatTabular {
		return tabular.WriteTable(ctx, wr, tbl)
	}

	var tblWr table.RecordWriteCloser
	var err error
	switch format {
	case FormatCsv:
		var propCols []string
		if !tbl.Empty() {
			propCols = tbl.At(0).Props.Keys()
		}

		cols := csv.WriterColumns{KeyCol: keyField, NameCol: nameField, PropCols: propCols}
		tblWr, err = csv.NewCSVWriter(iohelp.NopWrCloser(wr), csv.NewCSVInfo(), cols)
	case FormatJson:
		tblWr, err = json.NewJSONWriter(iohelp.NopWrCloser(wr), keyField, nameField)
	default:
		return fmt.Errorf("unsupported result format: %v", format)
	}

	if err != nil {
		return err
	}

	_, _, err = table.PipeRecords(ctx, table.NewInMemTableReader(tbl), tblWr, false)
	closeErr := tblWr.Close(ctx)

	if err != nil {
		return err
	}

	return closeErr
}
