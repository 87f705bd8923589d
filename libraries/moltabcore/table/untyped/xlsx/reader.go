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

package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

// XLSXReader implements RecordReadCloser over one sheet of a workbook. The first row of the sheet is the header.
// Workbooks are not streamed, the whole sheet is decoded when the reader is created.
type XLSXReader struct {
	closer io.Closer
	header []string
	rows   [][]string
	conv   *table.RowConverter
	ind    int
}

var _ table.RecordReadCloser = (*XLSXReader)(nil)

func OpenXLSXReader(path string, fs filesys.ReadableFS, info *XLSXFileInfo, mapping table.RecordMapping) (*XLSXReader, error) {
	r, err := fs.OpenForRead(path)

	if err != nil {
		return nil, err
	}

	return NewXLSXReader(r, info, mapping)
}

// NewXLSXReader reads the whole workbook from r and binds the header of the selected sheet to mapping.
func NewXLSXReader(r io.ReadCloser, info *XLSXFileInfo, mapping table.RecordMapping) (*XLSXReader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		r.Close()
		return nil, err
	}

	rows, err := getXlsxRows(data, info.SheetName)
	if err != nil {
		r.Close()
		return nil, err
	}

	if len(rows) == 0 {
		r.Close()
		return nil, errors.New("sheet has no header row")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	conv, err := mapping.BindHeader(header)
	if err != nil {
		r.Close()
		return nil, err
	}

	return &XLSXReader{closer: r, header: header, rows: rows[1:], conv: conv}, nil
}

// getXlsxRows decodes a workbook and returns the rows of the named sheet, or of the first sheet when sheetName is
// empty.
func getXlsxRows(data []byte, sheetName string) ([][]string, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, err
	}

	sheets, err := file.ToSlice()
	if err != nil {
		return nil, err
	}

	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	if sheetName == "" {
		return sheets[0], nil
	}

	for i, sheet := range file.Sheets {
		if sheet.Name == sheetName && i < len(sheets) {
			return sheets[i], nil
		}
	}

	return nil, fmt.Errorf("workbook has no sheet named '%s'", sheetName)
}

// Header returns the column names found in the first row of the sheet
func (xlsxr *XLSXReader) Header() []string {
	return xlsxr.header
}

// ReadRecord maps the next non-blank row of the sheet to a record. Empty cells are missing values.
func (xlsxr *XLSXReader) ReadRecord(ctx context.Context) (datatable.Record, error) {
	for xlsxr.ind < len(xlsxr.rows) {
		cells := xlsxr.rows[xlsxr.ind]
		xlsxr.ind++

		row := make([]*string, len(cells))
		blank := true
		for i := range cells {
			if cells[i] != "" {
				row[i] = &cells[i]
				blank = false
			}
		}

		if blank {
			continue
		}

		return xlsxr.conv.Convert(row)
	}

	return datatable.Record{}, io.EOF
}

// Close should release resources being held
func (xlsxr *XLSXReader) Close(ctx context.Context) error {
	if xlsxr.closer != nil {
		err := xlsxr.closer.Close()
		xlsxr.closer = nil

		return err
	}

	return errors.New("Already closed.")
}
