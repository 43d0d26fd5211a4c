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

// Package models holds the set of named tables a server serves.
package models

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/tabula/core/tables"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTableExists   = errors.New("table already registered")
)

// tableEntry guards one table. A Table is not safe for concurrent use, so
// every access goes through mu.
type tableEntry struct {
	mu          sync.Mutex
	table       *tables.Table
	description string
}

// DataModel is a registry of named tables.
type DataModel struct {
	mu     sync.RWMutex
	tables map[string]*tableEntry
	order  []string
}

// NewDataModel creates a new DataModel instance
func NewDataModel() *DataModel {
	return &DataModel{
		tables: make(map[string]*tableEntry),
	}
}

// AddTable registers table under name. Names are unique.
func (dm *DataModel) AddTable(name string, table *tables.Table, description string) error {
	if name == "" {
		return errors.New("table name is required")
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if _, ok := dm.tables[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrTableExists)
	}
	dm.tables[name] = &tableEntry{table: table, description: description}
	dm.order = append(dm.order, name)
	return nil
}

// ReplaceTable registers table under name, replacing an existing table but
// keeping its position.
func (dm *DataModel) ReplaceTable(name string, table *tables.Table, description string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if e, ok := dm.tables[name]; ok {
		e.mu.Lock()
		e.table = table
		e.description = description
		e.mu.Unlock()
		return
	}
	dm.tables[name] = &tableEntry{table: table, description: description}
	dm.order = append(dm.order, name)
}

// HasTable reports whether name is registered.
func (dm *DataModel) HasTable(name string) bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	_, ok := dm.tables[name]
	return ok
}

// TableNames returns the registered names in registration order.
func (dm *DataModel) TableNames() []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return append([]string(nil), dm.order...)
}

// Description returns the description given when name was registered.
func (dm *DataModel) Description(name string) string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	if e, ok := dm.tables[name]; ok {
		return e.description
	}
	return ""
}

// WithTable runs fn with exclusive access to the table registered as name.
func (dm *DataModel) WithTable(name string, fn func(*tables.Table) error) error {
	dm.mu.RLock()
	e, ok := dm.tables[name]
	dm.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrTableNotFound)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.table)
}
