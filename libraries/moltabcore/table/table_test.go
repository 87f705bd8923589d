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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
)

// sliceReader returns each of its results in turn, then io.EOF
type sliceReader struct {
	results []interface{}
	pos     int
}

func (rd *sliceReader) ReadRecord(ctx context.Context) (datatable.Record, error) {
	if rd.pos >= len(rd.results) {
		return datatable.Record{}, io.EOF
	}

	res := rd.results[rd.pos]
	rd.pos++

	switch v := res.(type) {
	case datatable.Record:
		return v, nil
	case error:
		return datatable.Record{}, v
	}

	panic("unexpected result type")
}

func rec(key, name string) datatable.Record {
	return datatable.MustNewRecord(key, name, datatable.Properties{})
}

func TestReadTable(t *testing.T) {
	ctx := context.Background()
	ioErr := errors.New("disk on fire")

	tests := []struct {
		name          string
		results       []interface{}
		contOnBadRow  bool
		expectedKeys  []string
		expectedStats ReadStats
		expectedErr   error
	}{
		{
			"empty",
			nil,
			true,
			nil,
			ReadStats{},
			ErrNoRecords,
		},
		{
			"only bad rows",
			[]interface{}{NewBadRow(nil, "bad"), NewBadRow(nil, "worse")},
			true,
			nil,
			ReadStats{Bad: 2},
			ErrNoRecords,
		},
		{
			"duplicates keep the first",
			[]interface{}{rec("b", "B1"), rec("a", "A1"), rec("b", "B2")},
			false,
			[]string{"a", "b"},
			ReadStats{Good: 3, Duplicates: 1},
			nil,
		},
		{
			"skip bad rows",
			[]interface{}{rec("a", "A"), NewBadRow(nil, "bad"), rec("c", "C")},
			true,
			[]string{"a", "c"},
			ReadStats{Good: 2, Bad: 1},
			nil,
		},
		{
			"stop on bad row",
			[]interface{}{rec("a", "A"), NewBadRow(nil, "bad"), rec("c", "C")},
			false,
			nil,
			ReadStats{Good: 1},
			&BadRow{Details: []string{"bad"}},
		},
		{
			"read error",
			[]interface{}{rec("a", "A"), ioErr},
			true,
			nil,
			ReadStats{Good: 1},
			ioErr,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tbl, stats, err := ReadTable(ctx, &sliceReader{results: test.results}, test.contOnBadRow)
			assert.Equal(t, test.expectedStats, stats)

			if test.expectedErr != nil {
				assert.Equal(t, test.expectedErr, err)
				assert.Nil(t, tbl)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedKeys, tbl.Keys())
			assert.Equal(t, tbl.Len(), stats.Records())
		})
	}

	tbl, _, err := ReadTable(ctx, &sliceReader{results: []interface{}{rec("b", "B1"), rec("b", "B2")}}, false)
	require.NoError(t, err)
	r, _ := tbl.Get("b")
	assert.Equal(t, "B1", r.Name)
}

func TestBadRow(t *testing.T) {
	val := "x"
	br := NewBadRow([]*string{&val, nil}, "first", "second")
	assert.Equal(t, "first\nsecond", br.Error())

	wrapped := errors.Join(errors.New("while reading"), br)
	assert.True(t, IsBadRow(br))
	assert.True(t, IsBadRow(wrapped))
	assert.False(t, IsBadRow(io.EOF))
	assert.Equal(t, []*string{&val, nil}, GetBadRowRow(wrapped))
	assert.Panics(t, func() { GetBadRowRow(io.EOF) })
}

func TestInMemTableRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := datatable.NewTable(rec("c", "C"), rec("a", "A"), rec("b", "B"))

	rd := NewInMemTableReader(src)
	wr := NewInMemTableWriter()
	good, bad, err := PipeRecords(ctx, rd, wr, false)
	require.NoError(t, err)
	assert.Equal(t, 3, good)
	assert.Equal(t, 0, bad)
	assert.True(t, src.Equals(wr.Table()))
	assert.Equal(t, 0, wr.Duplicates())
	require.NoError(t, wr.Close(ctx))

	require.NoError(t, rd.Close(ctx))
	_, err = rd.ReadRecord(ctx)
	assert.Equal(t, io.EOF, err)

	recs, numBad, err := ReadAllRecords(ctx, NewInMemTableReader(src), false)
	require.NoError(t, err)
	assert.Equal(t, 0, numBad)
	assert.Equal(t, src.Records(), recs)
}

func TestPipeRecordsRejectsKeylessRecords(t *testing.T) {
	rd := &sliceReader{results: []interface{}{datatable.Record{Name: "no key"}}}
	_, _, err := PipeRecords(context.Background(), rd, NewInMemTableWriter(), true)
	assert.Error(t, err)
}
