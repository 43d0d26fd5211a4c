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
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/tables"
)

func newTable(t *testing.T, name string, header []string, rows ...[]cells.Spec) *tables.Table {
	t.Helper()
	table, err := tables.NewTable(len(header), tables.WithName(name))
	require.NoError(t, err)
	require.NoError(t, table.AppendHeader(header))
	for _, r := range rows {
		require.NoError(t, table.AppendRow(r...))
	}
	return table
}

func TestDataModelRegistry(t *testing.T) {
	dm := NewDataModel()
	users := newTable(t, "users", []string{"name"})

	require.NoError(t, dm.AddTable("users", users, "People"))
	require.NoError(t, dm.AddTable("orders", newTable(t, "orders", []string{"id"}), ""))

	err := dm.AddTable("users", users, "")
	assert.True(t, errors.Is(err, ErrTableExists))
	assert.Error(t, dm.AddTable("", users, ""))

	assert.Equal(t, []string{"users", "orders"}, dm.TableNames())
	assert.True(t, dm.HasTable("orders"))
	assert.Equal(t, "People", dm.Description("users"))
	assert.Equal(t, "", dm.Description("missing"))

	err = dm.WithTable("missing", func(*tables.Table) error { return nil })
	assert.True(t, errors.Is(err, ErrTableNotFound))

	var got *tables.Table
	require.NoError(t, dm.WithTable("users", func(t *tables.Table) error {
		got = t
		return nil
	}))
	assert.Same(t, users, got)
}

func TestDataModelSerializesAccess(t *testing.T) {
	dm := NewDataModel()
	require.NoError(t, dm.AddTable("n", newTable(t, "n", []string{"v"}), ""))

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = dm.WithTable("n", func(*tables.Table) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestBuildColumnsTable(t *testing.T) {
	dm := NewDataModel()
	require.NoError(t, dm.AddTable("users", newTable(t, "users", []string{"name", "age"},
		[]cells.Spec{cells.Text("Alice"), {Kind: cells.KindInputEditable, Data: "30"}},
		[]cells.Spec{cells.Text("Bob"), cells.Text("25")},
	), ""))
	require.NoError(t, dm.AddTable("tags", newTable(t, "tags", []string{"tag"}), ""))

	require.NoError(t, AddSystemTables(dm))
	assert.Equal(t, []string{"users", "tags", ColumnsTableName}, dm.TableNames())

	require.NoError(t, dm.WithTable(ColumnsTableName, func(ct *tables.Table) error {
		assert.Equal(t, 3, ct.Len())
		assert.Equal(t, []string{"users", "users", "tags"}, ct.ColumnValues(0))
		assert.Equal(t, []string{"name", "age", "tag"}, ct.ColumnValues(2))
		assert.Equal(t, []string{"text", "input-editable,text", ""}, ct.ColumnValues(3))
		assert.Equal(t, []string{"2", "2", "0"}, ct.ColumnValues(4))
		assert.Equal(t, []string{"desc", "desc", "desc"}, ct.ColumnValues(7))
		return nil
	}))

	// refreshing does not list the system table itself
	require.NoError(t, AddSystemTables(dm))
	require.NoError(t, dm.WithTable(ColumnsTableName, func(ct *tables.Table) error {
		assert.Equal(t, 3, ct.Len())
		return nil
	}))
	assert.Len(t, dm.TableNames(), 3)
}
