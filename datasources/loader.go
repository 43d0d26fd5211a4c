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

// Package datasources loads the table sources named in the configuration
// through a registry of loaders keyed by source format.
package datasources

import (
	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/tables"
)

// DataSourceLoader is the interface that all data source loaders must implement.
// Tabula provides built-in loaders for "textproto", "json" and "csv".
type DataSourceLoader interface {
	// SourceType returns the format identifier used in config (e.g., "csv").
	SourceType() string

	// Load builds the table described by src. src.Path is already resolved
	// and opts carry the name and logger chosen by the manager.
	Load(src config.TableSource, defaults config.Defaults, opts ...tables.Option) (*tables.Table, error)
}
