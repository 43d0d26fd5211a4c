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

package views

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/tables"
)

// WidthStep is the number of pixels one width button adds or removes.
const WidthStep = 20

// TableViewModel contains the data from the table formatted for template consumption
type TableViewModel struct {
	Title     string
	TableName string
	Headers   []HeaderCell   // Visible columns in order
	Rows      []RowView      // Visible data rows in current order
	Hidden    []HiddenColumn // Columns that can be shown again
	CellStyle safehtml.Style // Table-wide cell dimensions

	CurrentURL safehtml.URL // Current URL without a pending action

	// Pagination info
	TotalRows     int          // Total number of data rows in the table
	DisplayedRows int          // Number of rows actually displayed
	HasMoreRows   bool         // True if there are more rows than displayed
	CurrentLimit  int          // Current row limit
	ShowAllURL    safehtml.URL // URL that lifts the row limit
}

// HeaderCell is the header of one visible column with its controls.
type HeaderCell struct {
	Index       int
	Name        string
	Arrow       string // Direction of the next sort on this column
	Direction   string
	Width       int // 0 means automatic
	Style       safehtml.Style
	SortURL     safehtml.URL
	WiderURL    safehtml.URL
	NarrowerURL safehtml.URL
	HideURL     safehtml.URL
}

// RowView is one data row.
type RowView struct {
	ID    int
	Cells []CellView
}

// CellView is one rendered cell.
type CellView struct {
	ID    string
	Col   int
	Style safehtml.Style
	HTML  safehtml.HTML
}

// HiddenColumn is a hidden column and the link that shows it.
type HiddenColumn struct {
	Index   int
	Name    string
	ShowURL safehtml.URL
}

var (
	cssLength = regexp.MustCompile(`^\d+(\.\d+)?(px|em|rem|%|vw|vh)$`)
	hAligns   = map[string]bool{"left": true, "center": true, "right": true, "justify": true}
	vAligns   = map[string]bool{"top": true, "middle": true, "bottom": true, "baseline": true}
)

// BuildViewModel builds the view model of t as it currently stands. The
// table's column state decides visibility, width and sort arrows; q supplies
// the row limit and the base for every action URL.
func BuildViewModel(t *tables.Table, q *query.Query, title string) (TableViewModel, error) {
	vm := TableViewModel{
		Title:        title,
		TableName:    t.Name(),
		CurrentURL:   q.WithoutAction(),
		TotalRows:    t.Len(),
		CurrentLimit: q.Limit,
		ShowAllURL:   q.WithLimit(0),
	}
	vm.CellStyle = cellDimensionStyle(t.CellDimensions())

	visible := t.VisibleColumns()
	for col := 0; col < t.ColumnsPerRow(); col++ {
		cv, _ := t.Column(col)
		if !cv.Visible {
			vm.Hidden = append(vm.Hidden, HiddenColumn{
				Index:   col,
				Name:    cv.Name,
				ShowURL: q.WithColumnShown(col),
			})
			continue
		}
		vm.Headers = append(vm.Headers, HeaderCell{
			Index:       col,
			Name:        cv.Name,
			Arrow:       cv.Direction.Arrow(),
			Direction:   cv.Direction.String(),
			Width:       cv.Width,
			Style:       widthStyle(cv.Width),
			SortURL:     q.WithSort(col),
			WiderURL:    q.WithWidthDelta(col, WidthStep),
			NarrowerURL: q.WithWidthDelta(col, -WidthStep),
			HideURL:     q.WithColumnHidden(col),
		})
	}

	rows := t.Rows()
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
		vm.HasMoreRows = true
	}
	vm.DisplayedRows = len(rows)

	vm.Rows = make([]RowView, 0, len(rows))
	for _, r := range rows {
		rv := RowView{ID: r.ID(), Cells: make([]CellView, 0, len(visible))}
		for _, col := range visible {
			c := r.Cell(col)
			html, err := RenderCell(c)
			if err != nil {
				return TableViewModel{}, fmt.Errorf("table %q row %d: %w", t.Name(), r.ID(), err)
			}
			cell := CellView{Col: col, HTML: html}
			if c != nil {
				cell.ID = c.ID()
				cell.Style = alignStyle(c)
			}
			rv.Cells = append(rv.Cells, cell)
		}
		vm.Rows = append(vm.Rows, rv)
	}
	return vm, nil
}

// The style helpers below only assemble validated lengths, integers and the
// fixed alignment keywords.

func cellDimensionStyle(width, height string) safehtml.Style {
	var css string
	if cssLength.MatchString(width) {
		css += "width:" + width + ";"
	}
	if cssLength.MatchString(height) {
		css += "height:" + height + ";"
	}
	return uncheckedconversions.StyleFromStringKnownToSatisfyTypeContract(css)
}

func widthStyle(px int) safehtml.Style {
	if px <= 0 {
		return safehtml.Style{}
	}
	return uncheckedconversions.StyleFromStringKnownToSatisfyTypeContract(
		"width:" + strconv.Itoa(px) + "px;min-width:" + strconv.Itoa(px) + "px;")
}

func alignStyle(c *cells.Cell) safehtml.Style {
	h, v := c.HAlign, c.VAlign
	if !hAligns[h] {
		h = cells.DefaultHAlign
	}
	if !vAligns[v] {
		v = cells.DefaultVAlign
	}
	return uncheckedconversions.StyleFromStringKnownToSatisfyTypeContract(
		"text-align:" + h + ";vertical-align:" + v + ";")
}
