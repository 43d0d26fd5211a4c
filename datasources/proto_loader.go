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
	"os"
	"sync"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/tabledef"
	"github.com/google/tabula/core/tables"
)

// ProtoLoader implements DataSourceLoader for tabula.TableDef files written
// as textproto or JSON.
type ProtoLoader struct {
	format string

	once    sync.Once
	loader  *tabledef.Loader
	initErr error
}

// NewProtoLoader creates a loader for format, config.FormatTextproto or
// config.FormatJSON.
func NewProtoLoader(format string) *ProtoLoader {
	return &ProtoLoader{format: format}
}

// SourceType returns the format the loader parses.
func (l *ProtoLoader) SourceType() string {
	return l.format
}

// Load parses the definition at src.Path. The direction set on the source
// wins over the file's initial_direction, which wins over the configured
// default.
func (l *ProtoLoader) Load(src config.TableSource, defaults config.Defaults, opts ...tables.Option) (*tables.Table, error) {
	l.once.Do(func() {
		l.loader, l.initErr = tabledef.NewLoader()
	})
	if l.initErr != nil {
		return nil, l.initErr
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table definition: %w", err)
	}
	var msg protoreflect.Message
	if l.format == config.FormatJSON {
		msg, err = l.loader.ParseJSON(data)
	} else {
		msg, err = l.loader.ParseTextproto(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}
	if src.Direction != "" || !tabledef.HasInitialDirection(msg) {
		opts = append(opts, tables.WithInitialDirection(src.SortDirection(defaults)))
	}
	return tabledef.Build(msg, opts...)
}
