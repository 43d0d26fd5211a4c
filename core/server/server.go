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

// Package server serves the tables of a DataModel over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/logutil"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rendering"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
)

// Server represents the application server with all its dependencies
type Server struct {
	dataModel    *models.DataModel
	renderer     *rendering.TableRenderer
	logger       *zap.Logger
	title        string
	subtitle     string
	defaultLimit int
}

// Option configures a Server.
type Option func(*Server)

// WithTitle sets the landing page title and subtitle.
func WithTitle(title, subtitle string) Option {
	return func(s *Server) {
		s.title = title
		s.subtitle = subtitle
	}
}

// WithDefaultLimit sets the row limit used when a URL carries none.
func WithDefaultLimit(limit int) Option {
	return func(s *Server) { s.defaultLimit = limit }
}

// WithLogger overrides the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new server with the given data model
func NewServer(dataModel *models.DataModel, opts ...Option) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	s := &Server{
		dataModel:    dataModel,
		renderer:     renderer,
		title:        "Tabula",
		defaultLimit: query.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logutil.GetGlobalLogger()
	}
	return s, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/table", s.handleTable)
	mux.HandleFunc("/api/cell", s.handleCell)
	mux.HandleFunc("/api/sort", s.handleSort)
	return mux
}

// TableHandlerResult represents the result of handling a table request
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
	Location   string // redirect target when StatusCode is a 3xx
}

// HandleTableRequest applies the view state carried by requestURL to the
// table and renders it. A sort action is applied once and answered with a
// redirect to the same view without it, so reloading the page does not sort
// again. Returns nil on success.
func (s *Server) HandleTableRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult {
	start := time.Now()
	q := query.NewQuery(requestURL)
	if !requestURL.Query().Has("limit") {
		q.Limit = s.defaultLimit
	}

	if q.Table == "" {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: "Table parameter is required"}
	}

	var vm views.TableViewModel
	err := s.dataModel.WithTable(q.Table, func(t *tables.Table) error {
		s.applyViewState(t, q)
		if q.HasAction() {
			_, err := t.Sort(q.Sort)
			return err
		}
		var err error
		vm, err = views.BuildViewModel(t, q, views.DisplayTitle(q.Table))
		return err
	})
	switch {
	case errors.Is(err, models.ErrTableNotFound):
		return &TableHandlerResult{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Table '%s' not found", q.Table)}
	case errors.Is(err, tables.ErrColumnOutOfRange):
		s.logger.Warn("rejected sort", zap.String("table", q.Table), zap.Int("column", q.Sort), zap.Error(err))
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error()}
	case err != nil:
		s.logger.Error("failed to build table view", zap.String("table", q.Table), zap.Error(err))
		return &TableHandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "Failed to build table view"}
	}

	if q.HasAction() {
		return &TableHandlerResult{StatusCode: http.StatusSeeOther, Location: q.WithoutAction().String()}
	}

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		s.logger.Error("template rendering error", zap.String("table", q.Table), zap.Error(err))
		return &TableHandlerResult{Error: err, StatusCode: http.StatusInternalServerError, Message: "Failed to render table"}
	}
	s.logger.Debug("rendered table",
		zap.String("table", q.Table),
		zap.Int("rows", vm.DisplayedRows),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// applyViewState makes the table's column state match the URL. Columns the
// URL does not mention are visible with automatic width.
func (s *Server) applyViewState(t *tables.Table, q *query.Query) {
	for col := 0; col < t.ColumnsPerRow(); col++ {
		_ = t.SetColumnVisibility(col, !q.IsColumnHidden(col))
		_ = t.SetColumnWidth(col, q.Width(col))
	}
	for col := range q.Widths {
		if col >= t.ColumnsPerRow() {
			s.logger.Debug("ignoring width of unknown column", zap.String("table", q.Table), zap.Int("column", col))
		}
	}
}

// HandleLandingRequest processes the landing page request
func (s *Server) HandleLandingRequest(w io.Writer, setHeader func(key, value string)) error {
	vm := views.LandingViewModel{
		Title:    s.title,
		Subtitle: s.subtitle,
	}
	for _, name := range s.dataModel.TableNames() {
		description := s.dataModel.Description(name)
		err := s.dataModel.WithTable(name, func(t *tables.Table) error {
			info := views.NewTableInfo(t, description)
			info.Name = name
			info.Title = views.DisplayTitle(name)
			info.URL = (&query.Query{Path: "/table", Table: name, Sort: query.NoSort, Limit: s.defaultLimit}).ToSafeURL()
			vm.Tables = append(vm.Tables, info)
			return nil
		})
		if err != nil {
			return err
		}
	}

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		s.logger.Error("landing page rendering error", zap.Error(err))
		return err
	}
	return nil
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := s.HandleLandingRequest(w, w.Header().Set); err != nil {
		http.Error(w, "Failed to render landing page", http.StatusInternalServerError)
	}
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	result := s.HandleTableRequest(w, r.URL, w.Header().Set)
	switch {
	case result == nil:
	case result.Location != "":
		http.Redirect(w, r, result.Location, result.StatusCode)
	default:
		http.Error(w, result.Message, result.StatusCode)
	}
}

// CellValue is the JSON body of /api/cell responses.
type CellValue struct {
	Table    string `json:"table"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	ID       string `json:"id"`
	Type     string `json:"type"`
	Value    string `json:"value"`
	Selected []int  `json:"selected,omitempty"`
}

// CellUpdate is the JSON body of a POST to /api/cell. Value is applied to
// editable controls, Selected to choice controls; a request carries at most
// one of them.
type CellUpdate struct {
	Table    string  `json:"table"`
	Row      int     `json:"row"`
	Column   int     `json:"column"`
	Value    *string `json:"value,omitempty"`
	Selected []int   `json:"selected,omitempty"`
}

// SortRequest is the JSON body of a POST to /api/sort. An empty Direction
// uses the column's current direction.
type SortRequest struct {
	Table     string `json:"table"`
	Column    int    `json:"column"`
	Direction string `json:"direction,omitempty"`
}

func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		params := r.URL.Query()
		row, errRow := strconv.Atoi(params.Get("row"))
		col, errCol := strconv.Atoi(params.Get("col"))
		if errRow != nil || errCol != nil {
			http.Error(w, "row and col must be integers", http.StatusBadRequest)
			return
		}
		s.writeCell(w, params.Get("table"), row, col, nil)
	case http.MethodPost:
		var req CellUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		// no kind holds both a free-text value and options
		if req.Value != nil && req.Selected != nil {
			http.Error(w, "value and selected cannot be combined", http.StatusBadRequest)
			return
		}
		s.writeCell(w, req.Table, req.Row, req.Column, func(c *cells.Cell) error {
			if req.Value != nil {
				return c.SetInput(*req.Value)
			}
			if req.Selected != nil {
				return c.Select(req.Selected...)
			}
			return nil
		})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// writeCell optionally updates the cell at (row, col) and answers with its
// read-back value.
func (s *Server) writeCell(w http.ResponseWriter, table string, row, col int, update func(*cells.Cell) error) {
	var out CellValue
	status := http.StatusOK
	err := s.dataModel.WithTable(table, func(t *tables.Table) error {
		c, ok := t.Cell(row, col)
		if !ok {
			status = http.StatusNotFound
			return fmt.Errorf("cell (%d, %d): %w", row, col, tables.ErrRowOutOfRange)
		}
		if update != nil {
			if err := update(c); err != nil {
				status = http.StatusBadRequest
				return err
			}
		}
		value, ok := c.Value()
		if !ok {
			status = http.StatusNotFound
			return fmt.Errorf("%s has no value", c.ID())
		}
		out = CellValue{
			Table:    table,
			Row:      row,
			Column:   col,
			ID:       c.ID(),
			Type:     c.Kind.String(),
			Value:    value,
			Selected: c.Selected(),
		}
		return nil
	})
	if errors.Is(err, models.ErrTableNotFound) {
		status = http.StatusNotFound
	}
	if err != nil {
		s.logger.Debug("cell request rejected", zap.String("table", table), zap.Int("row", row), zap.Int("column", col), zap.Error(err))
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, out)
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req SortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	var result tables.SortResult
	err := s.dataModel.WithTable(req.Table, func(t *tables.Table) error {
		if req.Direction == "" {
			var err error
			result, err = t.Sort(req.Column)
			return err
		}
		dir, err := columns.ParseSortDirection(req.Direction)
		if err != nil {
			return err
		}
		result, err = t.SortBy(req.Column, dir)
		return err
	})
	switch {
	case errors.Is(err, models.ErrTableNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		s.logger.Warn("rejected sort", zap.String("table", req.Table), zap.Int("column", req.Column), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Info("sorted table", zap.String("table", req.Table), zap.Int("column", req.Column), zap.Int("rows", len(result.SortedIndices)))
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
