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
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
)

// RecordReader is an interface for reading records from a source
type RecordReader interface {
	// ReadRecord reads the next record. io.EOF is returned once every record has been read. If a row cannot be made into
	// a record the returned error will be non nil and IsBadRow(err) will return true. This is a potentially non-fatal
	// error and callers can decide if they want to continue on a bad row, or fail.
	ReadRecord(ctx context.Context) (datatable.Record, error)
}

// RecordWriter is an interface for writing records
type RecordWriter interface {
	// WriteRecord will write a record
	WriteRecord(ctx context.Context, r datatable.Record) error
}

// TableCloser is an interface for a record stream that can be closed to release resources
type TableCloser interface {
	// Close should release resources being held
	Close(ctx context.Context) error
}

// RecordReadCloser is an interface for reading records that can be closed.
type RecordReadCloser interface {
	RecordReader
	TableCloser
}

// RecordWriteCloser is an interface for writing records that can be closed.
type RecordWriteCloser interface {
	RecordWriter
	TableCloser
}

// PipeRecords reads records from rd and writes each one to wr until rd returns io.EOF, or until an error is hit while
// reading or writing. When contOnBadRow is true bad rows are counted and skipped instead of ending the pipe.
func PipeRecords(ctx context.Context, rd RecordReader, wr RecordWriter, contOnBadRow bool) (numGood, numBad int, err error) {
	for {
		r, err := rd.ReadRecord(ctx)

		if err == io.EOF {
			return numGood, numBad, nil
		} else if err != nil {
			if IsBadRow(err) && contOnBadRow {
				logrus.WithError(err).Debug("skipping bad row")
				numBad++
				continue
			}

			return numGood, numBad, err
		} else if r.Key == "" {
			return numGood, numBad, errors.New("reader returned a record without a key")
		}

		if err = wr.WriteRecord(ctx, r); err != nil {
			return numGood, numBad, err
		}

		numGood++
	}
}

// ReadAllRecords reads all records from a RecordReader and returns them in the order they were read. Usually this
// is used for testing, or with very small data sets.
func ReadAllRecords(ctx context.Context, rd RecordReader, contOnBadRow bool) ([]datatable.Record, int, error) {
	wr := &sliceWriter{}
	_, numBad, err := PipeRecords(ctx, rd, wr, contOnBadRow)

	if err != nil {
		return nil, numBad, err
	}

	return wr.records, numBad, nil
}

type sliceWriter struct {
	records []datatable.Record
}

func (wr *sliceWriter) WriteRecord(_ context.Context, r datatable.Record) error {
	wr.records = append(wr.records, r)
	return nil
}

// ReadStats counts what happened to the rows of a source while building a table
type ReadStats struct {
	// Good is the number of rows that became records, duplicates included
	Good int
	// Bad is the number of rows skipped as bad rows
	Bad int
	// Duplicates is the number of records dropped because their key was already in the table
	Duplicates int
}

// Records is the number of records that made it into the table
func (s ReadStats) Records() int {
	return s.Good - s.Duplicates
}

// ReadTable reads every record from rd into a new Table. Duplicate keys keep the first record read. ErrNoRecords is
// returned, along with the stats, when no record was read.
func ReadTable(ctx context.Context, rd RecordReader, contOnBadRow bool) (*datatable.Table, ReadStats, error) {
	wr := NewInMemTableWriter()
	good, bad, err := PipeRecords(ctx, rd, wr, contOnBadRow)
	stats := ReadStats{Good: good, Bad: bad, Duplicates: wr.Duplicates()}

	if err != nil {
		return nil, stats, err
	}

	tbl := wr.Table()
	if tbl.Empty() {
		return nil, stats, ErrNoRecords
	}

	return tbl, stats, nil
}
