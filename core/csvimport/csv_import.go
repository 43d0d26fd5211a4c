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

// Package csvimport builds tables from CSV data.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/tables"
)

// OptionSeparator splits the options of choice cells within one CSV field.
const OptionSeparator = "|"

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnKinds overrides the cell kind of a column by header name.
	// Columns not listed hold text cells.
	ColumnKinds map[string]cells.Kind
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:   true,
		Delimiter:   ',',
		ColumnKinds: make(map[string]cells.Kind),
	}
}

// ImportFromFile imports a CSV file and returns a Table
func ImportFromFile(path string, options ImportOptions, opts ...tables.Option) (*tables.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options, opts...)
}

// ImportFromReader imports CSV data from an io.Reader and returns a Table.
// Short records are padded with empty cells and extra fields are dropped.
func ImportFromReader(reader io.Reader, options ImportOptions, opts ...tables.Option) (*tables.Table, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	var headers []string
	dataRows := records
	if options.HasHeader {
		headers = records[0]
		dataRows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	table, err := tables.NewTable(len(headers), opts...)
	if err != nil {
		return nil, err
	}
	if err := table.AppendHeader(headers); err != nil {
		return nil, err
	}

	kinds := make([]cells.Kind, len(headers))
	for i, h := range headers {
		kinds[i] = cells.KindText
		if k, ok := options.ColumnKinds[h]; ok {
			kinds[i] = k
		}
	}

	for n, record := range dataRows {
		specs := make([]cells.Spec, len(headers))
		for i := range headers {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			specs[i] = fieldSpec(kinds[i], value)
		}
		if err := table.AppendRow(specs...); err != nil {
			return nil, fmt.Errorf("record %d: %w", n+1, err)
		}
	}
	return table, nil
}

func fieldSpec(kind cells.Kind, value string) cells.Spec {
	spec := cells.Spec{Kind: kind}
	if kind.HasOptions() {
		if value != "" {
			spec.Options = strings.Split(value, OptionSeparator)
		}
		return spec
	}
	spec.Data = value
	return spec
}
