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

// Package config reads the tabula server configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/logutil"
)

// Table source formats.
const (
	FormatTextproto = "textproto"
	FormatJSON      = "json"
	FormatCSV       = "csv"
)

// Config is the top-level server configuration.
type Config struct {
	Addr     string         `toml:"addr"`
	Title    string         `toml:"title"`
	Subtitle string         `toml:"subtitle"`
	Demo     bool           `toml:"demo"` // also serve the built-in demo tables
	Log      logutil.Config `toml:"log"`
	Defaults Defaults       `toml:"defaults"`
	Tables   []TableSource  `toml:"tables"`
}

// Defaults apply to every table unless its source overrides them.
type Defaults struct {
	Direction  string `toml:"direction"` // first sort direction, "asc" or "desc"
	Limit      int    `toml:"limit"`     // rows per page, 0 shows all
	CellWidth  string `toml:"cell-width"`
	CellHeight string `toml:"cell-height"`
}

// TableSource names a file to load a table from.
type TableSource struct {
	Name        string `toml:"name"`
	Path        string `toml:"path"`
	Format      string `toml:"format"` // textproto, json or csv; inferred from the extension when empty
	Description string `toml:"description"`
	Direction   string `toml:"direction"`

	// CSV only.
	Delimiter   string            `toml:"delimiter"`
	NoHeader    bool              `toml:"no-header"`
	ColumnKinds map[string]string `toml:"column-kinds"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:  "127.0.0.1:8097",
		Title: "Tabula",
		Log:   logutil.DefaultConfig(),
		Defaults: Defaults{
			Direction: columns.Descending.String(),
			Limit:     25,
		},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	for i := range cfg.Tables {
		cfg.Tables[i].Format = cfg.Tables[i].format()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if _, err := columns.ParseSortDirection(c.Defaults.Direction); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}
	if c.Defaults.Limit < 0 {
		errs = append(errs, fmt.Errorf("defaults: negative limit %d", c.Defaults.Limit))
	}
	seen := make(map[string]bool)
	for i, src := range c.Tables {
		if err := src.validate(); err != nil {
			errs = append(errs, fmt.Errorf("tables[%d]: %w", i, err))
			continue
		}
		if seen[src.Name] {
			errs = append(errs, fmt.Errorf("tables[%d]: duplicate table name %q", i, src.Name))
		}
		seen[src.Name] = true
	}
	return errors.Join(errs...)
}

func (s TableSource) validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Path == "" {
		return fmt.Errorf("table %q: path is required", s.Name)
	}
	switch s.format() {
	case FormatTextproto, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("table %q: unknown format %q", s.Name, s.Format)
	}
	if s.Direction != "" {
		if _, err := columns.ParseSortDirection(s.Direction); err != nil {
			return fmt.Errorf("table %q: %w", s.Name, err)
		}
	}
	if len([]rune(s.Delimiter)) > 1 {
		return fmt.Errorf("table %q: delimiter must be a single character", s.Name)
	}
	for col, kind := range s.ColumnKinds {
		if !cells.ParseKind(kind).Valid() {
			return fmt.Errorf("table %q: column %q has unknown cell type %q", s.Name, col, kind)
		}
	}
	return nil
}

func (s TableSource) format() string {
	if s.Format != "" {
		return strings.ToLower(s.Format)
	}
	switch {
	case strings.HasSuffix(s.Path, ".csv"):
		return FormatCSV
	case strings.HasSuffix(s.Path, ".json"):
		return FormatJSON
	}
	return FormatTextproto
}

// SortDirection returns the first sort direction of the table, falling back
// to the configured default.
func (s TableSource) SortDirection(d Defaults) columns.SortDirection {
	for _, v := range []string{s.Direction, d.Direction} {
		if dir, err := columns.ParseSortDirection(v); err == nil {
			return dir
		}
	}
	return columns.Descending
}
