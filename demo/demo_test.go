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

package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
)

func TestShowcaseCoversEveryKind(t *testing.T) {
	table, err := CreateShowcaseTable()
	require.NoError(t, err)

	seen := make(map[cells.Kind]bool)
	for _, r := range table.Rows() {
		c := r.Cell(1)
		seen[c.Kind] = true
		_, err := views.RenderCell(c)
		assert.NoError(t, err, c.ID())
	}
	for k := cells.KindText; k <= cells.KindYouTube; k++ {
		if k == cells.KindInput {
			continue
		}
		assert.True(t, seen[k], "missing %s", k)
	}
	assert.True(t, seen[cells.KindInvalid])
}

func TestOrdersTable(t *testing.T) {
	table, err := CreateOrdersTable()
	require.NoError(t, err)
	assert.Equal(t, "orders", table.Name())
	assert.Equal(t, 8, table.Len())

	res, err := table.SortBy(3, columns.Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"9.99", "45.5", "75", "120.50", "300", "1200", "abc", "n/a"}, res.SortedValues)
}

func TestPerfTableSortIsPermutation(t *testing.T) {
	table, err := CreatePerfTable(500)
	require.NoError(t, err)

	res, err := table.Sort(1)
	require.NoError(t, err)
	require.Len(t, res.SortedIndices, 500)

	seen := make([]bool, 500)
	for _, i := range res.SortedIndices {
		require.False(t, seen[i])
		seen[i] = true
	}
	for k := 1; k < len(res.SortedValues); k++ {
		assert.LessOrEqual(t, tables.CompareDirected(res.SortedValues[k-1], res.SortedValues[k], columns.Descending), 0)
	}
}

func TestRegister(t *testing.T) {
	dm := models.NewDataModel()
	require.NoError(t, Register(dm, zap.NewNop()))
	assert.Equal(t, []string{"showcase", "orders", "perf"}, dm.TableNames())
	assert.Error(t, Register(dm, zap.NewNop()))
}
