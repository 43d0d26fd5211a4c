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

// Package columns holds the per-column presentation and sort state of a table.
package columns

import (
	"fmt"
	"strings"
)

// SortDirection is the direction a column is sorted in.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Arrow returns the glyph shown on the sort button for the next sort.
func (d SortDirection) Arrow() string {
	if d == Ascending {
		return "▲"
	}
	return "▼"
}

func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseSortDirection accepts "asc", "ascending", "desc" and "descending".
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Descending, fmt.Errorf("unknown sort direction %q", s)
}

// ColumnView is the mutable display state of one column.
type ColumnView struct {
	Name      string        // header text
	Width     int           // width in pixels, 0 means automatic
	Visible   bool          // hidden columns are skipped when rendering
	Direction SortDirection // direction used by the next sort on this column
}

// NewColumnView creates a visible column with automatic width.
func NewColumnView(name string, direction SortDirection) *ColumnView {
	return &ColumnView{
		Name:      name,
		Visible:   true,
		Direction: direction,
	}
}

// SetWidth sets the width, clamping negative values to zero.
func (cv *ColumnView) SetWidth(px int) {
	if px < 0 {
		px = 0
	}
	cv.Width = px
}

// IncreaseWidth widens the column by step pixels.
func (cv *ColumnView) IncreaseWidth(step int) {
	cv.SetWidth(cv.Width + abs(step))
}

// DecreaseWidth narrows the column by step pixels; the width never goes
// below zero.
func (cv *ColumnView) DecreaseWidth(step int) {
	cv.SetWidth(cv.Width - abs(step))
}

// ToggleDirection flips the direction for the next sort and returns the
// direction that was current before the flip.
func (cv *ColumnView) ToggleDirection() SortDirection {
	d := cv.Direction
	cv.Direction = d.Toggle()
	return d
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
