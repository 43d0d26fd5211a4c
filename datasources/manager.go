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
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/logutil"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/tables"
)

// Manager handles loading and caching of data sources.
// Source metadata is registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Source metadata indexed by name, in config order
	sources map[string]config.TableSource
	order   []string

	defaults config.Defaults

	// Cached tables indexed by source name - populated lazily
	tables map[string]*tables.Table

	// Registered loaders indexed by format
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string

	logger *zap.Logger
}

// NewManager creates a manager with the built-in loaders registered.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = logutil.GetGlobalLogger()
	}
	m := &Manager{
		sources: make(map[string]config.TableSource),
		tables:  make(map[string]*tables.Table),
		loaders: make(map[string]DataSourceLoader),
		baseDir: ".",
		logger:  logger,
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewProtoLoader(config.FormatTextproto))
	m.RegisterLoader(NewProtoLoader(config.FormatJSON))
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the base directory for resolving relative paths in config.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSources registers the table sources and defaults of cfg. No data is
// read until LoadData. A duplicate name rejects the whole batch and leaves
// the manager unchanged.
func (m *Manager) AddSources(cfg config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool, len(cfg.Tables))
	for _, src := range cfg.Tables {
		if _, ok := m.sources[src.Name]; ok || seen[src.Name] {
			return fmt.Errorf("duplicate source %q", src.Name)
		}
		seen[src.Name] = true
	}
	m.defaults = cfg.Defaults
	for _, src := range cfg.Tables {
		m.sources[src.Name] = src
		m.order = append(m.order, src.Name)
	}
	return nil
}

// GetSourceNames returns all registered source names in config order.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// IsLoaded reports whether the source's table has been loaded.
func (m *Manager) IsLoaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[name]
	return ok
}

// LoadData loads data for a source by name.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(name string) (*tables.Table, error) {
	m.mu.RLock()
	if t, ok := m.tables[name]; ok {
		m.mu.RUnlock()
		return t, nil
	}
	src, ok := m.sources[name]
	loader := m.loaders[src.Format]
	defaults := m.defaults
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("source %q not found", name)
	}
	if loader == nil {
		return nil, fmt.Errorf("source %q: no loader for format %q", name, src.Format)
	}
	if !filepath.IsAbs(src.Path) {
		src.Path = filepath.Join(baseDir, src.Path)
	}

	t, err := loader.Load(src, defaults, tables.WithName(name), tables.WithLogger(m.logger))
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	if w, h := t.CellDimensions(); w == "" && h == "" {
		t.SetCellDimensions(defaults.CellWidth, defaults.CellHeight)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := m.tables[name]; ok {
		return cached, nil
	}
	m.tables[name] = t
	m.logger.Info("loaded table",
		zap.String("table", name),
		zap.String("path", src.Path),
		zap.String("format", src.Format),
		zap.Int("rows", t.Len()),
		zap.Int("columns", t.ColumnsPerRow()))
	return t, nil
}

// LoadAll loads every registered source and adds it to dm.
func (m *Manager) LoadAll(dm *models.DataModel) error {
	for _, name := range m.GetSourceNames() {
		t, err := m.LoadData(name)
		if err != nil {
			return err
		}
		m.mu.RLock()
		description := m.sources[name].Description
		m.mu.RUnlock()
		if err := dm.AddTable(name, t, description); err != nil {
			return err
		}
	}
	return nil
}
