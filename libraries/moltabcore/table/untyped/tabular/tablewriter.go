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

package tabular

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/moltabcore/table/untyped/fwt"
	"github.com/moltab/moltab/libraries/utils/iohelp"
)

const (
	// KeyHeader and NameHeader title the first two columns of every rendered table
	KeyHeader  = "Key"
	NameHeader = "Name"

	// NullPrintedValue is printed for a property the record does not have
	NullPrintedValue = "<NULL>"

	// EmptyTableMessage is printed instead of a grid when no records were written
	EmptyTableMessage = "Table is empty"
)

// TextTableWriter renders records as a grid of aligned text, like:
//
//	+---------+----------+------------+
//	| Key     | Name     | Solubility |
//	+---------+----------+------------+
//	| aspirin | Aspirin  | 3.300000   |
//	+---------+----------+------------+
//
// Column widths depend on every value, so records are buffered and the grid is written on Close. The columns are Key,
// Name, then the property keys of the first record written. Later records missing one of those properties show
// NullPrintedValue in its place, and properties the first record did not have are not shown.
type TextTableWriter struct {
	closer io.Closer
	bWr    *bufio.Writer
	header []string
	rows   [][]string
}

var _ table.RecordWriteCloser = (*TextTableWriter)(nil)

// NewTextTableWriter returns a TextTableWriter that writes to wr and closes it when the writer is closed
func NewTextTableWriter(wr io.WriteCloser) *TextTableWriter {
	return &TextTableWriter{closer: wr, bWr: bufio.NewWriter(wr)}
}

// WriteRecord buffers a record to be rendered when the writer is closed
func (ttw *TextTableWriter) WriteRecord(ctx context.Context, r datatable.Record) error {
	if ttw.header == nil {
		ttw.header = append([]string{KeyHeader, NameHeader}, r.Props.Keys()...)
	}

	row := make([]string, len(ttw.header))
	row[0] = r.Key
	row[1] = r.Name
	for i, propKey := range ttw.header[2:] {
		if val, ok := r.Props.Get(propKey); ok {
			row[i+2] = datatable.FormatValue(val)
		} else {
			row[i+2] = NullPrintedValue
		}
	}

	ttw.rows = append(ttw.rows, row)
	return nil
}

// Close writes the grid and closes the underlying writer
func (ttw *TextTableWriter) Close(ctx context.Context) error {
	if ttw.closer == nil {
		return nil
	}

	err := ttw.writeTable()

	if err == nil {
		err = ttw.bWr.Flush()
	}

	closeErr := ttw.closer.Close()
	ttw.closer = nil

	if err != nil {
		return err
	}

	return closeErr
}

func (ttw *TextTableWriter) writeTable() error {
	if len(ttw.rows) == 0 {
		return iohelp.WriteLine(ttw.bWr, EmptyTableMessage)
	}

	widths := fwt.MaxWidths(append([][]string{ttw.header}, ttw.rows...)...)
	fwf := fwt.NewFixedWidthFormatter(fwt.PrintAllWhenTooLong, widths)
	separator := separatorLine(widths)

	if err := iohelp.WriteLine(ttw.bWr, separator); err != nil {
		return err
	}

	if err := ttw.writeRow(fwf, ttw.header); err != nil {
		return err
	}

	if err := iohelp.WriteLine(ttw.bWr, separator); err != nil {
		return err
	}

	for _, row := range ttw.rows {
		if err := ttw.writeRow(fwf, row); err != nil {
			return err
		}
	}

	return iohelp.WriteLine(ttw.bWr, separator)
}

func (ttw *TextTableWriter) writeRow(fwf fwt.FixedWidthFormatter, row []string) error {
	cols, err := fwf.Format(row)

	if err != nil {
		return err
	}

	return iohelp.WriteLine(ttw.bWr, "| "+strings.Join(cols, " | ")+" |")
}

func separatorLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}

	return sb.String()
}

// WriteTable renders every record of tbl, in key order, to wr. wr is not closed.
func WriteTable(ctx context.Context, wr io.Writer, tbl *datatable.Table) error {
	ttw := NewTextTableWriter(iohelp.NopWrCloser(wr))
	_, _, err := table.PipeRecords(ctx, table.NewInMemTableReader(tbl), ttw, false)

	if err != nil {
		ttw.closer = nil
		return err
	}

	return ttw.Close(ctx)
}
