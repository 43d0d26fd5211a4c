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
	"strings"

	"github.com/google/safehtml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/tables"
)

// LandingViewModel contains data for the landing page
type LandingViewModel struct {
	Title    string
	Subtitle string
	Tables   []TableInfo
}

// TableInfo describes one table on the landing page
type TableInfo struct {
	Name        string
	Title       string
	Description string
	URL         safehtml.URL
	RecordCount int
	ColumnCount int
}

// DisplayTitle turns a table name such as "order_items" into "Order Items".
func DisplayTitle(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// NewTableInfo summarizes t for the landing page.
func NewTableInfo(t *tables.Table, description string) TableInfo {
	q := &query.Query{
		Path:   "/table",
		Table:  t.Name(),
		Sort:   query.NoSort,
		Widths: map[int]int{},
		Limit:  query.DefaultLimit,
	}
	return TableInfo{
		Name:        t.Name(),
		Title:       DisplayTitle(t.Name()),
		Description: description,
		URL:         q.ToSafeURL(),
		RecordCount: t.Len(),
		ColumnCount: t.ColumnsPerRow(),
	}
}
