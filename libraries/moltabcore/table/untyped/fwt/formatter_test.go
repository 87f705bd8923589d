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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 0},
		{"Aspirin", 7},
		{"Halpêrt", 7},
		{"é", 1},
		{"日本", 4},
		{"short\na longer line", 13},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			assert.Equal(t, test.expected, StringWidth(test.text))
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "Asp", TruncateToWidth("Aspirin", 3))
	assert.Equal(t, "Aspirin", TruncateToWidth("Aspirin", 30))
	assert.Equal(t, "", TruncateToWidth("Aspirin", 0))
	assert.Equal(t, "日", TruncateToWidth("日本", 3))
	assert.Equal(t, "café", TruncateToWidth("cafés", 4))
}

func TestMaxWidths(t *testing.T) {
	widths := MaxWidths(
		[]string{"Key", "Name", "Solubility"},
		[]string{"aspirin", "Aspirin", "3.300000"},
		[]string{"caffeine", "Caffeine"},
	)

	assert.Equal(t, []int{8, 8, 10}, widths)
	assert.Nil(t, MaxWidths())
}

func TestFormatColumn(t *testing.T) {
	tests := []struct {
		name     string
		bhv      TooLongBehavior
		in       string
		expected string
		err      error
	}{
		{"pad", ErrorWhenTooLong, "ab", "ab   ", nil},
		{"exact", ErrorWhenTooLong, "abcde", "abcde", nil},
		{"wide runes pad by width", ErrorWhenTooLong, "日本", "日本 ", nil},
		{"error", ErrorWhenTooLong, "abcdefg", "", ErrColumnTooLong},
		{"truncate", TruncateWhenTooLong, "abcdefg", "abcde", nil},
		{"truncate wide runes", TruncateWhenTooLong, "日本語", "日本 ", nil},
		{"hash fill", HashFillWhenTooLong, "abcdefg", "#####", nil},
		{"print all", PrintAllWhenTooLong, "abcdefg", "abcdefg", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fwf := NewFixedWidthFormatter(test.bhv, []int{5})
			res, err := fwf.FormatColumn(test.in, 0)

			if test.err != nil {
				assert.True(t, errors.Is(err, test.err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, res)
		})
	}
}

func TestFormat(t *testing.T) {
	fwf := NewFixedWidthFormatter(HashFillWhenTooLong, []int{3, 0, -1, 6})
	assert.Equal(t, []int{3, 0, 0, 6}, fwf.Widths)
	assert.Equal(t, 9, fwf.TotalWidth)

	res, err := fwf.Format([]string{"a", "hidden", "", "<NULL>"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a  ", "", "", "<NULL>"}, res)

	_, err = fwf.Format([]string{"a"})
	assert.Equal(t, ErrRowCountMismatch, err)
}
