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
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
)

// InMemTableReader is an implementation of a RecordReadCloser over a datatable.Table. Records are read in key order.
type InMemTableReader struct {
	tbl     *datatable.Table
	current int
}

var _ RecordReadCloser = (*InMemTableReader)(nil)

// NewInMemTableReader creates an instance of a RecordReader from a Table
func NewInMemTableReader(tbl *datatable.Table) *InMemTableReader {
	return &InMemTableReader{tbl, 0}
}

// ReadRecord returns the next record of the table, or io.EOF once all of them were read
func (rd *InMemTableReader) ReadRecord(ctx context.Context) (datatable.Record, error) {
	if rd.current >= 0 && rd.current < rd.tbl.Len() {
		r := rd.tbl.At(rd.current)
		rd.current++

		return r, nil
	}

	return datatable.Record{}, io.EOF
}

// Close should release resources being held
func (rd *InMemTableReader) Close(ctx context.Context) error {
	rd.current = -1
	return nil
}

// InMemTableWriter builds a datatable.Table from the records written to it.
type InMemTableWriter struct {
	tbl        *datatable.Table
	duplicates int
}

var _ RecordWriteCloser = (*InMemTableWriter)(nil)

func NewInMemTableWriter() *InMemTableWriter {
	return &InMemTableWriter{tbl: datatable.NewTable()}
}

// WriteRecord inserts r into the table. A record whose key is already present is dropped and counted as a duplicate.
func (wr *InMemTableWriter) WriteRecord(ctx context.Context, r datatable.Record) error {
	if !wr.tbl.Insert(r) {
		wr.duplicates++
		logrus.WithField("key", r.Key).Debug("duplicate key, keeping the first record")
	}

	return nil
}

// Table returns the table built so far
func (wr *InMemTableWriter) Table() *datatable.Table {
	return wr.tbl
}

// Duplicates returns the number of records dropped for having a key already in the table
func (wr *InMemTableWriter) Duplicates() int {
	return wr.duplicates
}

func (wr *InMemTableWriter) Close(ctx context.Context) error {
	return nil
}
