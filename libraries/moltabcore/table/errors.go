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
	"errors"
	"strings"
)

// ErrNoRecords is returned by ReadTable when a source produced no usable records.
var ErrNoRecords = errors.New("no records were read")

// ErrKeyColumnMissing is returned when a header has no column for the record key.
var ErrKeyColumnMissing = errors.New("key column not found")

// BadRow is returned by a RecordReader for a row that could not be turned into a Record. It is a potentially non-fatal
// error; callers decide whether to skip the row or fail.
type BadRow struct {
	// Row holds the raw field values of the offending row, nil entries being missing fields
	Row     []*string
	Details []string
}

// NewBadRow creates a BadRow instance with a given row and error details
func NewBadRow(row []*string, details ...string) *BadRow {
	return &BadRow{row, details}
}

// IsBadRow takes an error and returns whether it is, or wraps, a BadRow
func IsBadRow(err error) bool {
	var br *BadRow
	return errors.As(err, &br)
}

// GetBadRowRow will retrieve the raw values from the BadRow error
func GetBadRowRow(err error) []*string {
	var br *BadRow
	if !errors.As(err, &br) {
		panic("Call IsBadRow prior to trying to get the BadRowRow")
	}

	return br.Row
}

// Error returns a string with error details.
func (br *BadRow) Error() string {
	return strings.Join(br.Details, "\n")
}
