/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tables

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/google/tabula/core/cells"
)

// ToAscii returns the visible columns of the table with ASCII borders, the
// header first and data rows in their current order.
func (t *Table) ToAscii() string {
	visible := t.VisibleColumns()
	if len(visible) == 0 {
		return ""
	}

	lines := make([][]string, 0, len(t.rows)+1)
	lines = append(lines, t.asciiRow(t.header, visible))
	for _, r := range t.rows {
		lines = append(lines, t.asciiRow(r, visible))
	}

	widths := make([]int, len(visible))
	for _, line := range lines {
		for i, s := range line {
			if w := runewidth.StringWidth(s); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	border := asciiBorder(widths)
	sb.WriteString(border)
	for n, line := range lines {
		for i, s := range line {
			sb.WriteString("| ")
			sb.WriteString(runewidth.FillRight(s, widths[i]))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
		if n == 0 {
			sb.WriteString(border)
		}
	}
	if len(lines) > 1 {
		sb.WriteString(border)
	}
	return sb.String()
}

func (t *Table) asciiRow(r *Row, visible []int) []string {
	out := make([]string, len(visible))
	for i, col := range visible {
		out[i] = asciiText(r.Cell(col))
	}
	return out
}

func asciiBorder(widths []int) string {
	var sb strings.Builder
	for _, w := range widths {
		sb.WriteString("+")
		sb.WriteString(strings.Repeat("-", w+2))
	}
	sb.WriteString("+\n")
	return sb.String()
}

// asciiText is the one-line text shown for a cell; kinds without a value
// show their kind in brackets.
func asciiText(c *cells.Cell) string {
	if c == nil {
		return ""
	}
	if !c.Kind.Valid() {
		return cells.InvalidText
	}
	v, ok := c.Value()
	if !ok {
		return "[" + c.Kind.String() + "]"
	}
	return strings.Join(strings.Fields(v), " ")
}
