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

package json

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bcicen/jstream"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

// ErrUnexpectedFormat is returned for documents that are not of the form {"rows": [ {...}, ... ]}
var ErrUnexpectedFormat = errors.New(`unexpected JSON format received, expected format: { "rows": [ json_row_objects... ] }`)

// JSONReader implements RecordReadCloser. Rows are streamed from a document of the form {"rows": [ {...}, ... ]},
// each object being mapped to a record.
type JSONReader struct {
	closer     io.Closer
	decoder    *jstream.Decoder
	jsonStream chan *jstream.MetaValue
	mapping    table.RecordMapping
	rowNum     int
}

var _ table.RecordReadCloser = (*JSONReader)(nil)

func OpenJSONReader(path string, fs filesys.ReadableFS, mapping table.RecordMapping) (*JSONReader, error) {
	r, err := fs.OpenForRead(path)

	if err != nil {
		return nil, err
	}

	return NewJSONReader(r, mapping)
}

func NewJSONReader(r io.ReadCloser, mapping table.RecordMapping) (*JSONReader, error) {
	// extract JSON values at a depth level of 2, the objects of the rows array
	decoder := jstream.NewDecoder(r, 2)

	return &JSONReader{
		closer:     r,
		decoder:    decoder,
		jsonStream: decoder.Stream(),
		mapping:    mapping,
	}, nil
}

// ReadRecord decodes the next row object. Objects that cannot be mapped result in a *table.BadRow, while a document
// that does not have the expected shape or is not valid JSON ends the read with an error.
func (jsonr *JSONReader) ReadRecord(ctx context.Context) (datatable.Record, error) {
	metaRow, ok := <-jsonr.jsonStream
	if !ok {
		if err := jsonr.decoder.Err(); err != nil {
			return datatable.Record{}, err
		}

		return datatable.Record{}, io.EOF
	}

	jsonr.rowNum++

	if metaRow.ValueType != jstream.Object {
		return datatable.Record{}, ErrUnexpectedFormat
	}

	fields, ok := metaRow.Value.(map[string]interface{})
	if !ok {
		return datatable.Record{}, ErrUnexpectedFormat
	}

	r, err := jsonr.mapping.ConvertFields(fields)
	if err != nil {
		return datatable.Record{}, fmt.Errorf("row %d: %w", jsonr.rowNum, err)
	}

	return r, nil
}

// Close releases the underlying reader and waits for the decoder to stop
func (jsonr *JSONReader) Close(ctx context.Context) error {
	if jsonr.closer == nil {
		return errors.New("already closed")
	}

	err := jsonr.closer.Close()
	jsonr.closer = nil

	for range jsonr.jsonStream {
	}

	return err
}
