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

package csvimport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

func TestImportBasicCSV(t *testing.T) {
	csvData := `name,age,city
Alice,30,New York
Bob,25,Los Angeles
Charlie,35,Chicago`

	table, err := ImportFromReader(strings.NewReader(csvData), DefaultOptions(), tables.WithName("people"))
	require.NoError(t, err)

	assert.Equal(t, "people", table.Name())
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 3, table.ColumnsPerRow())

	v, ok := table.GetCellValue(0, 1)
	assert.True(t, ok)
	assert.Equal(t, "age", v)
	v, ok = table.GetCellValue(1, 0)
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)

	res, err := table.SortBy(1, columns.Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"25", "30", "35"}, res.SortedValues)
}

func TestImportWithoutHeader(t *testing.T) {
	csvData := `Alice,30
Bob,25`

	options := DefaultOptions()
	options.HasHeader = false
	table, err := ImportFromReader(strings.NewReader(csvData), options)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	v, _ := table.GetCellValue(0, 1)
	assert.Equal(t, "column_2", v)
}

func TestImportColumnKinds(t *testing.T) {
	csvData := "item;qty;status;photo\nbolt;12;ok|low;https://example.com/b.png\nnut;;low|out\n"

	options := DefaultOptions()
	options.Delimiter = ';'
	options.ColumnKinds["qty"] = cells.KindInputEditable
	options.ColumnKinds["status"] = cells.KindSelect
	options.ColumnKinds["photo"] = cells.KindImage

	table, err := ImportFromReader(strings.NewReader(csvData), options)
	require.NoError(t, err)

	c, ok := table.Cell(1, 1)
	require.True(t, ok)
	assert.Equal(t, cells.KindInputEditable, c.Kind)
	assert.Equal(t, "12", c.Current())

	c, ok = table.Cell(1, 2)
	require.True(t, ok)
	assert.Equal(t, []string{"ok", "low"}, c.Options)

	// short record is padded
	c, ok = table.Cell(2, 3)
	require.True(t, ok)
	assert.Equal(t, cells.KindImage, c.Kind)
	assert.Equal(t, "", c.Data)
}

func TestImportErrors(t *testing.T) {
	_, err := ImportFromReader(strings.NewReader(""), DefaultOptions())
	assert.Error(t, err)

	_, err = ImportFromReader(strings.NewReader("a,\"b\n"), DefaultOptions())
	assert.Error(t, err)

	_, err = ImportFromFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())
	assert.Error(t, err)
}

func TestImportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("k,v\na,1\n"), 0o644))

	table, err := ImportFromFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, table.ColumnValues(1))
}

func TestImportHeaderOnly(t *testing.T) {
	table, err := ImportFromReader(strings.NewReader("a,b\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	res, err := table.Sort(0)
	require.NoError(t, err)
	assert.Empty(t, res.SortedIndices)
}
