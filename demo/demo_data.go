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

// Package demo builds the sample tables served when the demo is enabled.
package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/tabledef"
	"github.com/google/tabula/core/tables"
)

//go:embed data/showcase.textproto
var showcaseTextproto []byte

//go:embed data/orders.csv
var ordersCSV string

// PerfRows is the size of the generated performance table.
const PerfRows = 10_000

// CreateShowcaseTable builds a table with one row per cell type.
func CreateShowcaseTable(opts ...tables.Option) (*tables.Table, error) {
	loader, err := tabledef.NewLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load(showcaseTextproto, opts...)
}

// CreateOrdersTable imports the embedded orders CSV. Status is a select and
// notes are editable.
func CreateOrdersTable(opts ...tables.Option) (*tables.Table, error) {
	options := csvimport.DefaultOptions()
	options.ColumnKinds["notes"] = cells.KindTextarea
	options.ColumnKinds["amount"] = cells.KindInputEditable
	return csvimport.ImportFromReader(strings.NewReader(ordersCSV), options,
		append([]tables.Option{tables.WithName("orders")}, opts...)...)
}

// Register adds every demo table to dm.
func Register(dm *models.DataModel, logger *zap.Logger) error {
	builders := []struct {
		name        string
		description string
		build       func(...tables.Option) (*tables.Table, error)
	}{
		{"showcase", "Every cell type side by side", CreateShowcaseTable},
		{"orders", "Orders imported from CSV with editable amounts and notes", CreateOrdersTable},
		{"perf", fmt.Sprintf("%d generated rows of mixed numeric and text values", PerfRows), func(opts ...tables.Option) (*tables.Table, error) {
			return CreatePerfTable(PerfRows, opts...)
		}},
	}
	for _, b := range builders {
		t, err := b.build(tables.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("demo table %q: %w", b.name, err)
		}
		if err := dm.AddTable(b.name, t, b.description); err != nil {
			return err
		}
		logger.Info("registered demo table", zap.String("table", b.name), zap.Int("rows", t.Len()))
	}
	return nil
}
