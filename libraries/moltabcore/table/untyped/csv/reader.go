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
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/moltab/moltab/libraries/moltabcore/datatable"
	"github.com/moltab/moltab/libraries/moltabcore/table"
	"github.com/moltab/moltab/libraries/utils/filesys"
)

// ReadBufSize is the size of the buffer used when reading the csv file.  It is set at the package level and all
// readers create their own buffer's using the value of this variable at the time they create their buffers.
var ReadBufSize = 256 * 1024

const utf8BOM = "\ufeff"

// CSVReader implements RecordReadCloser.  It reads csv files and returns records.
type CSVReader struct {
	closer io.Closer
	bRd    *bufio.Reader
	header []string
	conv   *table.RowConverter
	isDone bool

	// CSV parsing is based on the standard Golang csv parser in encoding/csv/reader.go
	// This parser has been adapted to differentiate between quoted and unquoted
	// empty strings, and to use multi-rune delimiters. This adaptation removes the
	// comment feature and the lazyQuotes option
	delim           []byte
	numLine         int
	fieldsPerRecord int
}

var _ table.RecordReadCloser = (*CSVReader)(nil)

// OpenCSVReader opens a reader at a given path within a given filesys.  The CSVFileInfo should describe the csv file
// being opened, and the mapping says which columns become the key, the name and the properties of each record.
func OpenCSVReader(path string, fs filesys.ReadableFS, info *CSVFileInfo, mapping table.RecordMapping) (*CSVReader, error) {
	r, err := fs.OpenForRead(path)

	if err != nil {
		return nil, err
	}

	return NewCSVReader(r, info, mapping)
}

// NewCSVReader creates a CSVReader from a given ReadCloser.  The CSVFileInfo should describe the csv file being read.
// The reader takes ownership of r, closing it if the header cannot be read.
func NewCSVReader(r io.ReadCloser, info *CSVFileInfo, mapping table.RecordMapping) (*CSVReader, error) {
	if len(info.Delim) < 1 {
		r.Close()
		return nil, fmt.Errorf("delimiter '%s' has invalid length", info.Delim)
	}
	if !validDelim(info.Delim) {
		r.Close()
		return nil, fmt.Errorf("invalid delimiter: %s", info.Delim)
	}

	csvr := &CSVReader{
		closer: r,
		bRd:    bufio.NewReaderSize(r, ReadBufSize),
		delim:  []byte(info.Delim),
	}

	header, err := csvr.readHeader(info)
	if err != nil {
		r.Close()
		return nil, err
	}

	conv, err := mapping.BindHeader(header)
	if err != nil {
		r.Close()
		return nil, err
	}

	csvr.header = header
	csvr.conv = conv
	csvr.fieldsPerRecord = len(header)

	return csvr, nil
}

func (csvr *CSVReader) readHeader(info *CSVFileInfo) ([]string, error) {
	if !info.HasHeaderLine {
		if len(info.Columns) == 0 {
			return nil, errors.New("no columns given for a csv file without a header line")
		}

		return info.Columns, nil
	}

	colStrsFromFile, err := csvr.csvReadRecords(nil)
	if err == io.EOF {
		return nil, errors.New("Header line is empty")
	} else if err != nil {
		return nil, err
	}

	if info.Columns != nil {
		return info.Columns, nil
	}

	cols := make([]string, len(colStrsFromFile))
	for i, s := range colStrsFromFile {
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil, errors.New("bad header line: column cannot be NULL or empty string")
		}

		cols[i] = *s
		if i == 0 {
			cols[i] = strings.TrimPrefix(cols[i], utf8BOM)
		}
	}

	return cols, nil
}

// Header returns the column names of the file
func (csvr *CSVReader) Header() []string {
	return csvr.header
}

// ReadRecord reads the next line and maps it to a record. If the line cannot be parsed, has the wrong number of
// fields, or cannot be mapped, the returned error will be a *table.BadRow. io.EOF is returned after the last line.
func (csvr *CSVReader) ReadRecord(ctx context.Context) (datatable.Record, error) {
	if csvr.isDone {
		return datatable.Record{}, io.EOF
	}

	colVals, err := csvr.csvReadRecords(nil)

	if err == io.EOF {
		csvr.isDone = true
		return datatable.Record{}, io.EOF
	}

	if len(colVals) != csvr.fieldsPerRecord {
		var out strings.Builder
		for _, cv := range colVals {
			if cv != nil {
				out.WriteString(*cv)
			}
			out.Write(csvr.delim)
		}
		return datatable.Record{}, table.NewBadRow(colVals,
			fmt.Sprintf("csv header has %d fields, but line %d has %d values.", csvr.fieldsPerRecord, csvr.numLine, len(colVals)),
			fmt.Sprintf("line: '%s'", out.String()),
		)
	}

	if err != nil {
		return datatable.Record{}, table.NewBadRow(colVals, err.Error())
	}

	return csvr.conv.Convert(colVals)
}

// Close should release resources being held
func (csvr *CSVReader) Close(ctx context.Context) error {
	if csvr.closer != nil {
		err := csvr.closer.Close()
		csvr.closer = nil

		return err
	}

	return errors.New("Already closed.")
}

// Functions below this line are borrowed or adapted from encoding/csv/reader.go

func validDelim(s string) bool {
	return !(strings.Contains(s, "\"") ||
		strings.Contains(s, "\r") ||
		strings.Contains(s, "\n") ||
		strings.Contains(s, string(utf8.RuneError)))
}

func lengthNL(b []byte) int {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return 1
	}
	return 0
}

// readLine reads the next line (with the trailing endline).
// If EOF is hit without a trailing endline, it will be omitted.
// If some bytes were read, then the error is never io.EOF.
// The result is only valid until the next call to readLine.
func (csvr *CSVReader) readLine() ([]byte, error) {
	var rawBuffer []byte

	line, err := csvr.bRd.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		rawBuffer = append(rawBuffer[:0], line...)
		for err == bufio.ErrBufferFull {
			line, err = csvr.bRd.ReadSlice('\n')
			rawBuffer = append(rawBuffer, line...)
		}
		line = rawBuffer
	}
	if len(line) > 0 && err == io.EOF {
		err = nil
		// drop trailing \r before EOF.
		if line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
	}
	csvr.numLine++
	// Normalize \r\n to \n on all input lines.
	if n := len(line); n >= 2 && line[n-2] == '\r' && line[n-1] == '\n' {
		line[n-2] = '\n'
		line = line[:n-1]
	}
	return line, err
}

type recordState struct {
	line []byte
	// recordBuffer holds the unescaped fields, one after another.
	// The fields can be accessed by using the indexes in fieldIndexes.
	// E.g., For the row `a,"b","c""d",e`, recordBuffer will contain `abc"de`
	// and fieldIndexes will contain the indexes [1, 2, 5, 6].
	recordBuffer []byte
	fieldIndexes []int
}

// csvReadRecords parses the next non-empty line. Unquoted empty fields are returned as nil, quoted empty fields as
// a pointer to "".
func (csvr *CSVReader) csvReadRecords(dst []*string) ([]*string, error) {
	rs := recordState{}
	recordStartline := csvr.numLine

	var err error
	for err == nil {
		rs.line, err = csvr.readLine()
		if err == nil && len(rs.line) == lengthNL(rs.line) {
			rs.line = nil
			continue // Skip empty lines
		}
		break
	}
	if err == io.EOF {
		return nil, err
	}

	// only empty strings escaped with double quotes are non-null
	nullField := make(map[int]bool)
	fieldIdx := 0

	kontinue := true
	for kontinue {
		rs.line = bytes.TrimLeftFunc(rs.line, unicode.IsSpace)
		if len(rs.line) == 0 || rs.line[0] != '"' {
			var keep bool
			kontinue, keep, err = csvr.parseField(&rs)
			if !keep {
				nullField[fieldIdx] = true
			}
		} else {
			kontinue, err = csvr.parseQuotedField(&rs)
		}
		fieldIdx++
	}

	// Create a single string and create slices out of it.
	// This pins the memory of the fields together, but allocates once.
	str := string(rs.recordBuffer)
	if cap(dst) < len(rs.fieldIndexes) {
		dst = make([]*string, len(rs.fieldIndexes))
	}
	dst = dst[:len(rs.fieldIndexes)]
	var preIdx int
	for i, idx := range rs.fieldIndexes {
		if nullField[i] {
			dst[i] = nil
		} else {
			s := str[preIdx:idx]
			dst[i] = &s
		}
		preIdx = idx
	}

	// Check or update the expected fields per record.
	if csvr.fieldsPerRecord > 0 {
		if len(dst) != csvr.fieldsPerRecord && err == nil {
			err = &csv.ParseError{StartLine: recordStartline, Line: csvr.numLine, Err: csv.ErrFieldCount}
		}
	}

	return dst, err
}

func (csvr *CSVReader) parseField(rs *recordState) (kontinue bool, keep bool, err error) {
	i := bytes.Index(rs.line, csvr.delim)
	field := rs.line
	if i >= 0 {
		field = field[:i]
	} else {
		field = field[:len(field)-lengthNL(field)]
	}
	rs.recordBuffer = append(rs.recordBuffer, field...)
	rs.fieldIndexes = append(rs.fieldIndexes, len(rs.recordBuffer))
	keep = len(field) != 0 // discard unquoted empty strings
	if i >= 0 {
		rs.line = rs.line[i+len(csvr.delim):]
		return true, keep, nil
	}
	return false, keep, nil
}

func (csvr *CSVReader) parseQuotedField(rs *recordState) (kontinue bool, err error) {
	const quoteLen = len(`"`)
	dl := len(csvr.delim)
	recordStartLine := csvr.numLine
	fullLine := rs.line

	// Quoted string field
	rs.line = rs.line[quoteLen:]
	for {
		i := bytes.IndexByte(rs.line, '"')
		if i >= 0 {
			// Hit next quote.
			rs.recordBuffer = append(rs.recordBuffer, rs.line[:i]...)
			rs.line = rs.line[i+quoteLen:]

			atDelimiter := len(rs.line) >= dl && bytes.Equal(rs.line[:dl], csvr.delim)
			nextRune, _ := utf8.DecodeRune(rs.line)

			switch {
			case atDelimiter:
				// `"<delimiter>` sequence (end of field).
				rs.line = rs.line[dl:]
				rs.fieldIndexes = append(rs.fieldIndexes, len(rs.recordBuffer))
				return true, err
			case nextRune == '"':
				// `""` sequence (append quote).
				rs.recordBuffer = append(rs.recordBuffer, '"')
				rs.line = rs.line[quoteLen:]
			case lengthNL(rs.line) == len(rs.line):
				// `"\n` sequence (end of line).
				rs.fieldIndexes = append(rs.fieldIndexes, len(rs.recordBuffer))
				return false, err
			default:
				// `"*` sequence (invalid non-escaped quote).
				col := utf8.RuneCount(fullLine[:len(fullLine)-len(rs.line)-quoteLen])
				err = &csv.ParseError{StartLine: recordStartLine, Line: csvr.numLine, Column: col, Err: csv.ErrQuote}
				rs.fieldIndexes = append(rs.fieldIndexes, len(rs.recordBuffer))
				return false, err
			}
		} else if len(rs.line) > 0 {
			// Hit end of line (copy all data so far).
			rs.recordBuffer = append(rs.recordBuffer, rs.line...)
			if err != nil {
				rs.fieldIndexes = append(rs.fieldIndexes, len(rs.recordBuffer))
				return false, err
			}
			rs.line, err = csvr.readLine()
			if err == io.EOF {
				err = nil
			}
			fullLine = rs.line
		} else {
			// Abrupt end of file
			if err == nil {
				col := utf8.RuneCount(fullLine)
				err = &csv.ParseError{StartLine: recordStartLine, Line: csvr.numLine, Column: col, Err: csv.ErrQuote}
			}
			rs.fieldIndexes = append(rs.fieldIndexes, len(rs.recordBuffer))
			return false, err
		}
	}
}
