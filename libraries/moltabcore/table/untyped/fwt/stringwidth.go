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
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// StringWidth returns the number of horizontal cells needed to print the given text. It splits the text into lines,
// each line into grapheme clusters, calculates each cluster's width, sums them, and returns the width of the
// longest line
func StringWidth(text string) int {
	var maxWidth int
	for _, line := range strings.Split(text, "\n") {
		if width := lineWidth(line); width > maxWidth {
			maxWidth = width
		}
	}

	return maxWidth
}

func lineWidth(line string) int {
	var width int
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		width += graphemeWidth(g.Runes())
	}

	return width
}

// graphemeWidth uses the width of the first non-zero-width rune in the cluster.
func graphemeWidth(runes []rune) int {
	for _, r := range runes {
		if w := runewidth.RuneWidth(r); w > 0 {
			return w
		}
	}

	return 0
}

// TruncateToWidth returns the longest prefix of text, cut on grapheme cluster boundaries, that prints in at most
// width cells.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := graphemeWidth(g.Runes())
		if used+w > width {
			break
		}

		used += w
		sb.WriteString(g.Str())
	}

	return sb.String()
}
