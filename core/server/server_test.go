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

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/tables"
)

func newTestServer(t *testing.T) (*Server, *models.DataModel) {
	t.Helper()
	table, err := tables.NewTable(2, tables.WithName("mixed"))
	require.NoError(t, err)
	require.NoError(t, table.AppendHeader([]string{"value", "note"}))
	for _, v := range []string{"10", "abc", "2"} {
		require.NoError(t, table.AppendRow(cells.Text(v), cells.Spec{Kind: cells.KindTextarea, Data: "n" + v}))
	}

	dm := models.NewDataModel()
	require.NoError(t, dm.AddTable("mixed", table, "Mixed values"))
	s, err := NewServer(dm, WithTitle("Test", "sub"), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return s, dm
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))
	return rec
}

func values(t *testing.T, dm *models.DataModel, name string, col int) []string {
	t.Helper()
	var out []string
	require.NoError(t, dm.WithTable(name, func(tbl *tables.Table) error {
		out = tbl.ColumnValues(col)
		return nil
	}))
	return out
}

func TestLanding(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mixed values")
	assert.Contains(t, rec.Body.String(), "/table?limit=25&amp;table=mixed")

	rec = do(t, s.Handler(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTablePage(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/table?table=mixed", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `id="cell-3-0"`)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/table", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/table?table=missing", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/table?table=mixed", nil).Code)
}

func TestTableSortActionRedirects(t *testing.T) {
	s, dm := newTestServer(t)
	h := s.Handler()

	// first sort of a column is descending
	rec := do(t, h, http.MethodGet, "/table?table=mixed&sort=0&hidden=1", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.NotContains(t, loc, "sort=")
	assert.Contains(t, loc, "hidden=1")
	assert.Equal(t, []string{"abc", "10", "2"}, values(t, dm, "mixed", 0))

	// following the redirect renders without sorting again
	rec = do(t, h, http.MethodGet, loc, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc", "10", "2"}, values(t, dm, "mixed", 0))
	assert.NotContains(t, rec.Body.String(), `data-cell="cell-1-1"`, "hidden column is not rendered")

	rec = do(t, h, http.MethodGet, "/table?table=mixed&sort=0", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"2", "10", "abc"}, values(t, dm, "mixed", 0))

	rec = do(t, h, http.MethodGet, "/table?table=mixed&sort=9", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableAppliesWidths(t *testing.T) {
	s, dm := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/table?table=mixed&widths=0:140,7:10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "width:140px")

	require.NoError(t, dm.WithTable("mixed", func(tbl *tables.Table) error {
		cv, _ := tbl.Column(0)
		assert.Equal(t, 140, cv.Width)
		return nil
	}))
}

func TestSortAPI(t *testing.T) {
	s, dm := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/sort", SortRequest{Table: "mixed", Column: 0, Direction: "asc"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res tables.SortResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"2", "10", "abc"}, res.SortedValues)
	assert.Equal(t, []int{2, 0, 1}, res.SortedIndices)

	// without a direction the column's next direction is used
	rec = do(t, h, http.MethodPost, "/api/sort", SortRequest{Table: "mixed", Column: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc", "10", "2"}, values(t, dm, "mixed", 0))

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/sort", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/sort", SortRequest{Table: "x"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/sort", SortRequest{Table: "mixed", Column: 5}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/sort", SortRequest{Table: "mixed", Direction: "up"}).Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sort", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCellAPI(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/cell?table=mixed&row=0&col=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cv CellValue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cv))
	assert.Equal(t, "note", cv.Value)
	assert.Equal(t, "cell-0-1", cv.ID)

	value := "edited"
	rec = do(t, h, http.MethodPost, "/api/cell", CellUpdate{Table: "mixed", Row: 2, Column: 1, Value: &value})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/cell?table=mixed&row=2&col=1", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cv))
	assert.Equal(t, "edited", cv.Value)
	assert.Equal(t, "textarea", cv.Type)

	// text cells are not editable
	rec = do(t, h, http.MethodPost, "/api/cell", CellUpdate{Table: "mixed", Row: 1, Column: 0, Value: &value})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/cell?table=mixed&row=9&col=0", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/cell?table=none&row=0&col=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/cell?table=mixed&row=a&col=0", nil).Code)
}

func TestCellAPIRejectsCombinedUpdate(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	value := "new"
	rec := do(t, h, http.MethodPost, "/api/cell", CellUpdate{Table: "mixed", Row: 2, Column: 1, Value: &value, Selected: []int{0}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/cell?table=mixed&row=2&col=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cv CellValue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cv))
	assert.Equal(t, "nabc", cv.Value, "a rejected update leaves the cell untouched")
}
