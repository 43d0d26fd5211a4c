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

package query

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// NoSort is the Sort value of a query that carries no sort action.
const NoSort = -1

// DefaultLimit is the number of data rows shown when the URL has no limit.
const DefaultLimit = 25

// DefaultColumnWidth is the base for width changes on a column whose width
// is not in the URL yet.
const DefaultColumnWidth = 120

// Query represents the parsed state of a table view URL
type Query struct {
	// Base path (e.g., "/table")
	Path string

	Table  string      // The table being viewed
	Sort   int         // Column to sort once, NoSort when absent
	Hidden []int       // Hidden column indices, ascending
	Widths map[int]int // Column widths in pixels (column -> width)
	Limit  int         // Number of rows to display (0 = show all)
}

// NewQuery creates a Query from a URL. Malformed parameters are ignored.
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:   u.Path,
		Sort:   NoSort,
		Widths: make(map[int]int),
		Limit:  DefaultLimit,
	}

	q := u.Query()

	state.Table = q.Get("table")

	if col, err := strconv.Atoi(q.Get("sort")); err == nil && col >= 0 {
		state.Sort = col
	}

	// Extract hidden parameter (format: 1,3)
	if hiddenStr := q.Get("hidden"); hiddenStr != "" {
		for _, part := range strings.Split(hiddenStr, ",") {
			if col, err := strconv.Atoi(part); err == nil && col >= 0 && !slices.Contains(state.Hidden, col) {
				state.Hidden = append(state.Hidden, col)
			}
		}
		slices.Sort(state.Hidden)
	}

	// Extract widths parameter (format: col:px,col:px)
	if widthsStr := q.Get("widths"); widthsStr != "" {
		for _, part := range strings.Split(widthsStr, ",") {
			colStr, pxStr, ok := strings.Cut(part, ":")
			if !ok {
				continue
			}
			col, err := strconv.Atoi(colStr)
			if err != nil || col < 0 {
				continue
			}
			if px, err := strconv.Atoi(pxStr); err == nil && px >= 0 {
				state.Widths[col] = px
			}
		}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			state.Limit = limit
		}
	}

	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	return &Query{
		Path:   s.Path,
		Table:  s.Table,
		Sort:   s.Sort,
		Hidden: slices.Clone(s.Hidden),
		Widths: maps.Clone(s.Widths),
		Limit:  s.Limit,
	}
}

// HasAction reports whether the query carries a one-shot action.
func (s *Query) HasAction() bool {
	return s.Sort != NoSort
}

// IsColumnHidden checks if a column is in the hidden list
func (s *Query) IsColumnHidden(col int) bool {
	return slices.Contains(s.Hidden, col)
}

// Width returns the width of col in the URL, or 0 (automatic).
func (s *Query) Width(col int) int {
	return s.Widths[col]
}

// WithSort returns a URL that sorts column col once.
func (s *Query) WithSort(col int) safehtml.URL {
	newState := s.Clone()
	newState.Sort = col
	return newState.ToSafeURL()
}

// WithoutAction returns the URL of the same view without its one-shot
// action. The server redirects here after applying a sort.
func (s *Query) WithoutAction() safehtml.URL {
	newState := s.Clone()
	newState.Sort = NoSort
	return newState.ToSafeURL()
}

// WithColumnHidden returns a URL with the column hidden
func (s *Query) WithColumnHidden(col int) safehtml.URL {
	newState := s.Clone()
	newState.Sort = NoSort
	if !newState.IsColumnHidden(col) {
		newState.Hidden = append(newState.Hidden, col)
		slices.Sort(newState.Hidden)
	}
	return newState.ToSafeURL()
}

// WithColumnShown returns a URL with the column visible again
func (s *Query) WithColumnShown(col int) safehtml.URL {
	newState := s.Clone()
	newState.Sort = NoSort
	newState.Hidden = slices.DeleteFunc(newState.Hidden, func(c int) bool { return c == col })
	return newState.ToSafeURL()
}

// WithWidthDelta returns a URL with the column width changed by delta
// pixels. Widths never go below zero. A column at automatic width, whether
// absent from the URL or stored as 0, starts from DefaultColumnWidth.
func (s *Query) WithWidthDelta(col, delta int) safehtml.URL {
	newState := s.Clone()
	newState.Sort = NoSort
	base := s.Widths[col]
	if base == 0 {
		base = DefaultColumnWidth
	}
	newState.Widths[col] = max(0, base+delta)
	return newState.ToSafeURL()
}

// WithLimit returns a URL with a different row limit
func (s *Query) WithLimit(limit int) safehtml.URL {
	newState := s.Clone()
	newState.Sort = NoSort
	newState.Limit = max(0, limit)
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Table != "" {
		q.Set("table", s.Table)
	}

	if s.Sort != NoSort {
		q.Set("sort", strconv.Itoa(s.Sort))
	}

	if len(s.Hidden) > 0 {
		parts := make([]string, len(s.Hidden))
		for i, col := range s.Hidden {
			parts[i] = strconv.Itoa(col)
		}
		q.Set("hidden", strings.Join(parts, ","))
	}

	if len(s.Widths) > 0 {
		cols := slices.Sorted(maps.Keys(s.Widths))
		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = strconv.Itoa(col) + ":" + strconv.Itoa(s.Widths[col])
		}
		q.Set("widths", strings.Join(parts, ","))
	}

	// Add limit parameter (always included in URL)
	q.Set("limit", strconv.Itoa(s.Limit))

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}
