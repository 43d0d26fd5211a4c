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

package datasources

import (
	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/csvimport"
	"github.com/google/tabula/core/tables"
)

// CsvLoader implements DataSourceLoader for CSV files.
// Every field is a text cell unless the source maps its column to another
// cell type.
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return config.FormatCSV
}

// Load imports the CSV file at src.Path.
func (l *CsvLoader) Load(src config.TableSource, defaults config.Defaults, opts ...tables.Option) (*tables.Table, error) {
	options := csvimport.DefaultOptions()
	options.HasHeader = !src.NoHeader
	if src.Delimiter != "" {
		options.Delimiter = []rune(src.Delimiter)[0]
	}
	for col, kind := range src.ColumnKinds {
		options.ColumnKinds[col] = cells.ParseKind(kind)
	}
	opts = append(opts, tables.WithInitialDirection(src.SortDirection(defaults)))
	return csvimport.ImportFromFile(src.Path, options, opts...)
}
