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

package fwt

import (
	"errors"
	"fmt"
	"strings"
)

// TooLongBehavior determines how the FixedWidthFormatter should behave when it encounters a column that is longer
// than what it expected
type TooLongBehavior int

const (
	// ErrorWhenTooLong returns ErrColumnTooLong for any column that is longer than expected
	ErrorWhenTooLong TooLongBehavior = iota
	// TruncateWhenTooLong will cut off the end of columns that are too long
	TruncateWhenTooLong
	// HashFillWhenTooLong will result in ######### being printed in place of the columns that are longer than expected.
	HashFillWhenTooLong
	// PrintAllWhenTooLong will print the entire column.  When this happens the output is no longer aligned
	PrintAllWhenTooLong
)

// ErrRowCountMismatch is returned when the number of columns does not match the expected count
var ErrRowCountMismatch = errors.New("number of columns passed to formatter does not match expected count")

// ErrColumnTooLong is returned when the width exceeds the maximum
var ErrColumnTooLong = errors.New("column width exceeded maximum width for column and TooLongBehavior is ErrorWhenTooLong")

// FixedWidthFormatter pads or cuts the columns of a row of text so that every column prints at a fixed width
type FixedWidthFormatter struct {
	colCount   int
	Widths     []int
	noFitStrs  []string
	TotalWidth int

	tooLngBhv TooLongBehavior
}

// NewFixedWidthFormatter returns a new fixed width formatter. Negative widths are treated as zero and columns with a
// width of zero are formatted as empty strings.
func NewFixedWidthFormatter(tooLongBhv TooLongBehavior, printWidths []int) FixedWidthFormatter {
	numCols := len(printWidths)

	totalWidth := 0
	widths := make([]int, numCols)
	noFitStrs := make([]string, numCols)
	for i, printWidth := range printWidths {
		if printWidth < 0 {
			printWidth = 0
		}

		widths[i] = printWidth
		totalWidth += printWidth
		noFitStrs[i] = strings.Repeat("#", printWidth)
	}

	return FixedWidthFormatter{
		colCount:   numCols,
		Widths:     widths,
		noFitStrs:  noFitStrs,
		TotalWidth: totalWidth,
		tooLngBhv:  tooLongBhv,
	}
}

// MaxWidths returns, for each column, the width of the widest value found in that column across all rows. Rows
// shorter than the longest row contribute nothing to the columns they lack.
func MaxWidths(rows ...[]string) []int {
	var widths []int
	for _, row := range rows {
		for i, col := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}

			if w := StringWidth(col); w > widths[i] {
				widths[i] = w
			}
		}
	}

	return widths
}

// Format takes an array of columns strings and makes each column the approriate width
func (fwf FixedWidthFormatter) Format(cols []string) ([]string, error) {
	if len(cols) != fwf.colCount {
		return nil, ErrRowCountMismatch
	}

	formatted := make([]string, fwf.colCount)
	for i, str := range cols {
		var err error
		formatted[i], err = fwf.FormatColumn(str, i)

		if err != nil {
			return nil, err
		}
	}

	return formatted, nil
}

// FormatColumn takes a column string and a column index and returns a column string that is the appropriate width for
// that column
func (fwf FixedWidthFormatter) FormatColumn(colStr string, colIdx int) (string, error) {
	colWidth := fwf.Widths[colIdx]

	if colWidth == 0 {
		return "", nil
	}

	strWidth := StringWidth(colStr)

	if strWidth > colWidth {
		switch fwf.tooLngBhv {
		case ErrorWhenTooLong:
			return "", fmt.Errorf("for column %d '%s' exceeds the maximum length of %d: %w", colIdx, colStr, colWidth, ErrColumnTooLong)
		case TruncateWhenTooLong:
			colStr = TruncateToWidth(colStr, colWidth)
		case HashFillWhenTooLong:
			return fwf.noFitStrs[colIdx], nil
		case PrintAllWhenTooLong:
			return colStr, nil
		}

		strWidth = StringWidth(colStr)
	}

	// a wide grapheme cut off by truncation can leave the string short of the column
	return colStr + strings.Repeat(" ", colWidth-strWidth), nil
}
