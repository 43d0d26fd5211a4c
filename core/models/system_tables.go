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

package models

import (
	"slices"
	"strconv"
	"strings"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/tables"
)

// System table name constants
const (
	ColumnsTableName = "_columns"
)

var columnsTableHeader = []string{
	"table_name", "column", "name", "cell_types", "row_count", "visible", "width", "next_sort",
}

// BuildColumnsTable creates a system table describing every column of every
// user table in the DataModel, one row per column. Each table is read under
// its own lock.
func BuildColumnsTable(dm *DataModel) (*tables.Table, error) {
	columnsTable, err := tables.NewTable(len(columnsTableHeader), tables.WithName(ColumnsTableName))
	if err != nil {
		return nil, err
	}
	if err := columnsTable.AppendHeader(columnsTableHeader); err != nil {
		return nil, err
	}

	for _, name := range dm.TableNames() {
		if isSystemTable(name) {
			continue
		}
		err := dm.WithTable(name, func(t *tables.Table) error {
			for col := 0; col < t.ColumnsPerRow(); col++ {
				cv, _ := t.Column(col)
				err := columnsTable.AppendRow(
					cells.Text(name),
					cells.Text(strconv.Itoa(col)),
					cells.Text(cv.Name),
					cells.Text(strings.Join(columnKinds(t, col), ",")),
					cells.Text(strconv.Itoa(t.Len())),
					cells.Text(strconv.FormatBool(cv.Visible)),
					cells.Text(strconv.Itoa(cv.Width)),
					cells.Text(cv.Direction.String()),
				)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return columnsTable, nil
}

// columnKinds returns the distinct cell types found in column col, sorted.
func columnKinds(t *tables.Table, col int) []string {
	var kinds []string
	for _, r := range t.Rows() {
		c := r.Cell(col)
		if c == nil {
			continue
		}
		if k := c.Kind.String(); !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	slices.Sort(kinds)
	return kinds
}

// isSystemTable returns true if the table name is a system table
func isSystemTable(name string) bool {
	return name == ColumnsTableName
}

// AddSystemTables creates or refreshes all system tables in the DataModel.
// Call it again after user tables change shape.
func AddSystemTables(dm *DataModel) error {
	columnsTable, err := BuildColumnsTable(dm)
	if err != nil {
		return err
	}
	dm.ReplaceTable(ColumnsTableName, columnsTable, "Columns of every loaded table")
	return nil
}
