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

// Package tables implements the row/cell arena of a table and the sort
// engine that reorders its data rows.
package tables

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/logutil"
)

var (
	ErrColumnOutOfRange   = errors.New("column index out of range")
	ErrRowOutOfRange      = errors.New("row index out of range")
	ErrInvalidPermutation = errors.New("sorted indices are not a permutation of the data rows")
	ErrArityMismatch      = errors.New("row arity does not match columns per row")
)

// HeaderRow is the table row index of the header. Data rows start at 1.
const HeaderRow = 0

// Row is an ordered list of cells. Rows keep their identity when the table
// is reordered; only their position changes.
type Row struct {
	id    int
	cells []*cells.Cell
}

// ID returns the table row index the row was created at.
func (r *Row) ID() int { return r.id }

// Len returns the number of cells in the row.
func (r *Row) Len() int { return len(r.cells) }

// Cell returns the cell in column col, or nil.
func (r *Row) Cell(col int) *cells.Cell {
	if col < 0 || col >= len(r.cells) {
		return nil
	}
	return r.cells[col]
}

// Cells returns the cells of the row in column order.
func (r *Row) Cells() []*cells.Cell { return r.cells }

// Table owns the header, the data rows and the per-column state of one
// table instance. It is not safe for concurrent use.
type Table struct {
	name             string
	columnsPerRow    int
	header           *Row
	rows             []*Row
	views            []*columns.ColumnView
	initialDirection columns.SortDirection
	cellWidth        string
	cellHeight       string
	logger           *zap.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithName names the table in logs and rendered output.
func WithName(name string) Option {
	return func(t *Table) { t.name = name }
}

// WithInitialDirection sets the direction used by the first sort of every
// column. The default is Descending.
func WithInitialDirection(d columns.SortDirection) Option {
	return func(t *Table) { t.initialDirection = d }
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// NewTable creates an empty table with columnsPerRow columns and a blank
// header.
func NewTable(columnsPerRow int, opts ...Option) (*Table, error) {
	if columnsPerRow <= 0 {
		return nil, fmt.Errorf("columns per row must be positive, got %d", columnsPerRow)
	}
	t := &Table{
		columnsPerRow:    columnsPerRow,
		initialDirection: columns.Descending,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logutil.GetGlobalLogger()
	}
	t.logger = t.logger.With(zap.String("table", t.name))
	t.resetHeader(make([]string, columnsPerRow))
	return t, nil
}

func (t *Table) resetHeader(names []string) {
	t.header = &Row{id: HeaderRow}
	for i, name := range names {
		t.header.cells = append(t.header.cells, cells.New(HeaderRow, i, cells.Text(name)))
	}
	if len(t.views) == len(names) {
		for i, name := range names {
			t.views[i].Name = name
		}
		return
	}
	t.views = make([]*columns.ColumnView, len(names))
	for i, name := range names {
		t.views[i] = columns.NewColumnView(name, t.initialDirection)
	}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// ColumnsPerRow returns the fixed number of cells in a complete row.
func (t *Table) ColumnsPerRow() int { return t.columnsPerRow }

// Len returns the number of data rows, including an incomplete last row.
func (t *Table) Len() int { return len(t.rows) }

// Header returns the header row.
func (t *Table) Header() *Row { return t.header }

// Rows returns the data rows in their current order.
func (t *Table) Rows() []*Row { return t.rows }

// Column returns the display state of column col.
func (t *Table) Column(col int) (*columns.ColumnView, bool) {
	if col < 0 || col >= len(t.views) {
		return nil, false
	}
	return t.views[col], true
}

// AppendHeader replaces the header and takes columnsPerRow from its arity.
// Once data rows exist the arity can no longer change.
func (t *Table) AppendHeader(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("header: %w", ErrArityMismatch)
	}
	if len(t.rows) > 0 && len(names) != t.columnsPerRow {
		return fmt.Errorf("header has %d columns, table has %d: %w", len(names), t.columnsPerRow, ErrArityMismatch)
	}
	t.columnsPerRow = len(names)
	t.resetHeader(names)
	return nil
}

// AppendCell adds a cell at the next free slot, starting a new row only when
// the last row is full, and returns the new cell's ID.
func (t *Table) AppendCell(spec cells.Spec) string {
	last := t.lastRow()
	if last == nil || len(last.cells) == t.columnsPerRow {
		last = t.newRow()
	}
	c := cells.New(last.id, len(last.cells), spec)
	last.cells = append(last.cells, c)
	if !c.Kind.Valid() {
		t.logger.Warn("invalid cell type", zap.String("cell", c.ID()))
	}
	return c.ID()
}

// AppendRow appends one complete row. The last row must be complete.
func (t *Table) AppendRow(specs ...cells.Spec) error {
	if len(specs) != t.columnsPerRow {
		return fmt.Errorf("row has %d cells, table has %d: %w", len(specs), t.columnsPerRow, ErrArityMismatch)
	}
	if last := t.lastRow(); last != nil && len(last.cells) != t.columnsPerRow {
		return fmt.Errorf("last row has %d of %d cells: %w", len(last.cells), t.columnsPerRow, ErrArityMismatch)
	}
	for _, spec := range specs {
		t.AppendCell(spec)
	}
	return nil
}

// SetColumnData overwrites column col of the first len(specs) data rows,
// adding rows of blank text cells as needed. Replaced cells keep their
// position identity.
func (t *Table) SetColumnData(col int, specs []cells.Spec) error {
	if col < 0 || col >= t.columnsPerRow {
		return fmt.Errorf("column %d of %d: %w", col, t.columnsPerRow, ErrColumnOutOfRange)
	}
	for i, spec := range specs {
		for i >= len(t.rows) {
			t.newRow()
		}
		row := t.rows[i]
		t.pad(row)
		row.cells[col] = cells.New(row.id, col, spec)
	}
	return nil
}

// pad fills a row with blank text cells up to columnsPerRow.
func (t *Table) pad(row *Row) {
	for len(row.cells) < t.columnsPerRow {
		row.cells = append(row.cells, cells.New(row.id, len(row.cells), cells.Text("")))
	}
}

func (t *Table) lastRow() *Row {
	if len(t.rows) == 0 {
		return nil
	}
	return t.rows[len(t.rows)-1]
}

// newRow appends an empty data row. Rows are never removed, so ids 1..n
// stay unique whatever the current order.
func (t *Table) newRow() *Row {
	r := &Row{id: len(t.rows) + 1}
	t.rows = append(t.rows, r)
	return r
}

// Cell returns the cell at table position (row, col), where row 0 is the
// header and rows are counted in their current order.
func (t *Table) Cell(row, col int) (*cells.Cell, bool) {
	if col < 0 || col >= t.columnsPerRow || row < 0 || row > len(t.rows) {
		return nil, false
	}
	r := t.header
	if row != HeaderRow {
		r = t.rows[row-1]
	}
	c := r.Cell(col)
	return c, c != nil
}

// GetCellValue returns the read-back value at (row, col). Out-of-range
// positions and kinds without a value report false.
func (t *Table) GetCellValue(row, col int) (string, bool) {
	c, ok := t.Cell(row, col)
	if !ok {
		return "", false
	}
	return c.Value()
}

// ColumnValues returns the sort value of column col for every data row in
// current order. Missing cells yield "".
func (t *Table) ColumnValues(col int) []string {
	values := make([]string, len(t.rows))
	for i, r := range t.rows {
		values[i] = r.Cell(col).SortValue()
	}
	return values
}

// SetColumnVisibility shows or hides column col.
func (t *Table) SetColumnVisibility(col int, visible bool) error {
	cv, ok := t.Column(col)
	if !ok {
		return fmt.Errorf("column %d: %w", col, ErrColumnOutOfRange)
	}
	cv.Visible = visible
	return nil
}

// SetColumnWidth sets the width of column col in pixels.
func (t *Table) SetColumnWidth(col, px int) error {
	cv, ok := t.Column(col)
	if !ok {
		return fmt.Errorf("column %d: %w", col, ErrColumnOutOfRange)
	}
	cv.SetWidth(px)
	return nil
}

// IncreaseColumnWidth widens column col by step pixels.
func (t *Table) IncreaseColumnWidth(col, step int) error {
	cv, ok := t.Column(col)
	if !ok {
		return fmt.Errorf("column %d: %w", col, ErrColumnOutOfRange)
	}
	cv.IncreaseWidth(step)
	return nil
}

// DecreaseColumnWidth narrows column col by step pixels, never below zero.
func (t *Table) DecreaseColumnWidth(col, step int) error {
	cv, ok := t.Column(col)
	if !ok {
		return fmt.Errorf("column %d: %w", col, ErrColumnOutOfRange)
	}
	cv.DecreaseWidth(step)
	return nil
}

// VisibleColumns returns the indices of visible columns in order.
func (t *Table) VisibleColumns() []int {
	var out []int
	for i, cv := range t.views {
		if cv.Visible {
			out = append(out, i)
		}
	}
	return out
}

// SetCellDimensions records table-wide CSS cell sizes, e.g. "120px".
func (t *Table) SetCellDimensions(width, height string) {
	t.cellWidth = width
	t.cellHeight = height
}

// CellDimensions returns the sizes set by SetCellDimensions.
func (t *Table) CellDimensions() (width, height string) {
	return t.cellWidth, t.cellHeight
}
