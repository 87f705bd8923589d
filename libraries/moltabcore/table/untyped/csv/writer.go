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

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/iohelp"
)

var WriteBufSize = 256 * 1024

// WriterColumns says which columns a CSVWriter writes. NameCol may be empty, in which case names are not written.
type WriterColumns struct {
	KeyCol   string
	NameCol  string
	PropCols []string
}

// CSVWriter implements RecordWriteCloser.  It writes each record as a line of a csv file.
type CSVWriter struct {
	closer io.Closer
	bWr    *bufio.Writer
	info   *CSVFileInfo
	cols   WriterColumns
}

var _ table.RecordWriteCloser = (*CSVWriter)(nil)

// NewCSVWriter creates a CSVWriter that writes to wr, writing the header line immediately when info says there is one.
func NewCSVWriter(wr io.WriteCloser, info *CSVFileInfo, cols WriterColumns) (*CSVWriter, error) {
	if len(info.Delim) < 1 || !validDelim(info.Delim) {
		return nil, fmt.Errorf("invalid delimiter: '%s'", info.Delim)
	}

	bwr := bufio.NewWriterSize(wr, WriteBufSize)
	csvw := &CSVWriter{wr, bwr, info, cols}

	if info.HasHeaderLine {
		header := []string{cols.KeyCol}
		if cols.NameCol != "" {
			header = append(header, cols.NameCol)
		}
		header = append(header, cols.PropCols...)

		hdrPtrs := make([]*string, len(header))
		for i := range header {
			hdrPtrs[i] = &header[i]
		}

		if err := csvw.writeLine(hdrPtrs); err != nil {
			wr.Close()
			return nil, err
		}
	}

	return csvw, nil
}

// WriteRecord will write a record as a line. Properties not among the writer's columns are not written, and columns
// the record has no property for are left empty.
func (csvw *CSVWriter) WriteRecord(ctx context.Context, r datatable.Record) error {
	fields := make([]*string, 0, 2+len(csvw.cols.PropCols))
	key := r.Key
	fields = append(fields, &key)

	if csvw.cols.NameCol != "" {
		name := r.Name
		fields = append(fields, &name)
	}

	for _, col := range csvw.cols.PropCols {
		val, ok := r.Props.Get(col)
		if !ok {
			fields = append(fields, nil)
			continue
		}

		str := valueString(val)
		fields = append(fields, &str)
	}

	return csvw.writeLine(fields)
}

// valueString renders floats with the fewest digits that read back as the same float64.
func valueString(val datatable.Value) string {
	switch val.Kind() {
	case datatable.FloatKind:
		f, _ := val.AsFloat()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case datatable.StringKind:
		s, _ := val.AsString()
		return s
	default:
		panic(fmt.Sprintf("unexpected value kind %v", val.Kind()))
	}
}

func (csvw *CSVWriter) writeLine(fields []*string) error {
	var sb strings.Builder
	for i, field := range fields {
		if i > 0 {
			sb.WriteString(csvw.info.Delim)
		}

		if field == nil {
			continue
		}

		if csvw.fieldNeedsQuotes(*field) {
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(*field, `"`, `""`))
			sb.WriteByte('"')
		} else {
			sb.WriteString(*field)
		}
	}

	return iohelp.WriteLine(csvw.bWr, sb.String())
}

// fieldNeedsQuotes reports whether a field must be quoted to read back as the same value. Empty strings are quoted so
// they stay distinct from missing values.
func (csvw *CSVWriter) fieldNeedsQuotes(field string) bool {
	if field == "" {
		return true
	}

	if strings.Contains(field, csvw.info.Delim) || strings.ContainsAny(field, "\"\r\n") {
		return true
	}

	// leading whitespace is trimmed by the reader
	first := field[0]
	return first == ' ' || first == '\t'
}

// Close should flush all writes, release resources being held
func (csvw *CSVWriter) Close(ctx context.Context) error {
	if csvw.closer != nil {
		errFl := csvw.bWr.Flush()
		errCl := csvw.closer.Close()
		csvw.closer = nil

		if errCl != nil {
			return errCl
		}

		return errFl
	}

	return errors.New("Already closed.")
}
