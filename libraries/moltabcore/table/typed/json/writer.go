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
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/iohelp"
)

const jsonHeader = `{"rows": [`
const jsonFooter = `]}`

var WriteBufSize = 256 * 1024

// RecordWriter encodes records as a single JSON object with a single key, "rows", holding an array with one object
// per record. The record key and name are written under KeyField and NameField, followed by the properties in key
// order.
type RecordWriter struct {
	closer      io.Closer
	bWr         *bufio.Writer
	keyField    string
	nameField   string
	rowsWritten int
}

var _ table.RecordWriteCloser = (*RecordWriter)(nil)

// NewJSONWriter returns a RecordWriter writing to wr. Names are not written when nameField is empty.
func NewJSONWriter(wr io.WriteCloser, keyField, nameField string) (*RecordWriter, error) {
	if keyField == "" {
		return nil, errors.New("json writer requires a key field name")
	}

	return &RecordWriter{
		closer:    wr,
		bWr:       bufio.NewWriterSize(wr, WriteBufSize),
		keyField:  keyField,
		nameField: nameField,
	}, nil
}

func (j *RecordWriter) WriteRecord(ctx context.Context, r datatable.Record) error {
	if j.rowsWritten == 0 {
		if err := iohelp.WriteAll(j.bWr, []byte(jsonHeader)); err != nil {
			return err
		}
	} else if err := iohelp.WriteAll(j.bWr, []byte(",")); err != nil {
		return err
	}

	data, err := j.jsonDataForRecord(r)
	if err != nil {
		return err
	}

	if err := iohelp.WriteAll(j.bWr, data); err != nil {
		return err
	}

	j.rowsWritten++
	return nil
}

type jsonField struct {
	name string
	val  interface{}
}

// jsonDataForRecord encodes a record as an object with its fields in a fixed order. A property named like the key or
// name field is left out.
func (j *RecordWriter) jsonDataForRecord(r datatable.Record) ([]byte, error) {
	fields := []jsonField{{j.keyField, r.Key}}
	if j.nameField != "" {
		fields = append(fields, jsonField{j.nameField, r.Name})
	}

	var err error
	r.Props.Iter(func(p datatable.Property) (stop bool) {
		if p.Key == j.keyField || p.Key == j.nameField {
			return false
		}

		var val interface{}
		val, err = jsonValue(p.Value)
		if err != nil {
			return true
		}

		fields = append(fields, jsonField{p.Key, val})
		return false
	})

	if err != nil {
		return nil, err
	}

	buf := []byte{'{'}
	for i, f := range fields {
		if i > 0 {
			buf = append(buf, ',')
		}

		name, err := json.Marshal(f.name)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(f.val)
		if err != nil {
			return nil, fmt.Errorf("error marshalling field '%s' of record '%s' to json: %w", f.name, r.Key, err)
		}

		buf = append(buf, name...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}

	return append(buf, '}'), nil
}

// jsonValue converts a property value for encoding. JSON has no representation for NaN or infinities, so those are
// written as their formatted strings.
func jsonValue(v datatable.Value) (interface{}, error) {
	switch v.Kind() {
	case datatable.FloatKind:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return datatable.FormatValue(v), nil
		}
		return f, nil
	case datatable.StringKind:
		s, _ := v.AsString()
		return s, nil
	default:
		return nil, fmt.Errorf("unexpected value kind %v", v.Kind())
	}
}

// Close writes the end of the document, flushes and closes the underlying writer
func (j *RecordWriter) Close(ctx context.Context) error {
	if j.closer == nil {
		return errors.New("already closed")
	}

	if j.rowsWritten == 0 {
		if err := iohelp.WriteAll(j.bWr, []byte(jsonHeader)); err != nil {
			return err
		}
	}

	errWr := iohelp.WriteLine(j.bWr, jsonFooter)
	errFl := j.bWr.Flush()
	errCl := j.closer.Close()
	j.closer = nil

	if errWr != nil {
		return errWr
	}

	if errFl != nil {
		return errFl
	}

	return errCl
}
