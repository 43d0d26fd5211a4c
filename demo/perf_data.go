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
	"strconv"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/tables"
)

var perfStatuses = []string{"pending", "completed", "cancelled", "processing"}

// CreatePerfTable generates a table of n rows for exercising sort on a
// large, partly non-numeric column. The data is deterministic.
func CreatePerfTable(n int, opts ...tables.Option) (*tables.Table, error) {
	t, err := tables.NewTable(4, append([]tables.Option{tables.WithName("perf")}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := t.AppendHeader([]string{"id", "amount", "status", "comment"}); err != nil {
		return nil, err
	}

	// linear congruential sequence so amounts are spread but reproducible
	seed := uint32(12345)
	for i := 0; i < n; i++ {
		seed = seed*1664525 + 1013904223
		amount := strconv.FormatFloat(float64(seed%100000)/100, 'f', -1, 64)
		if i%97 == 0 {
			amount = "n/a"
		}
		err := t.AppendRow(
			cells.Text(strconv.Itoa(i+1)),
			cells.Text(amount),
			cells.Spec{Kind: cells.KindSelect, Options: perfStatuses},
			cells.Spec{Kind: cells.KindInputEditable},
		)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}
