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

// Package tabledef loads declarative table definitions written as textproto
// or JSON against the tabula.TableDef schema. The schema is built in code and
// messages are parsed dynamically, so no generated code is involved.
package tabledef

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/google/tabula/core/cells"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

// Loader parses table definitions using a private registry that holds the
// tabula schema.
type Loader struct {
	registry *protoregistry.Files
	tableDef protoreflect.MessageDescriptor
}

// NewLoader creates a Loader with the tabula schema registered.
func NewLoader() (*Loader, error) {
	registry := new(protoregistry.Files)
	fd, err := protodesc.NewFile(schema(), registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build table definition schema: %w", err)
	}
	if err := registry.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("failed to register table definition schema: %w", err)
	}

	l := &Loader{registry: registry}
	desc, err := l.messageDescriptor(TableDefMessage)
	if err != nil {
		return nil, err
	}
	l.tableDef = desc
	return l, nil
}

// Descriptor returns the descriptor of the root TableDef message.
func (l *Loader) Descriptor() protoreflect.MessageDescriptor {
	return l.tableDef
}

func (l *Loader) messageDescriptor(name protoreflect.FullName) (protoreflect.MessageDescriptor, error) {
	desc, err := l.registry.FindDescriptorByName(name)
	if err != nil {
		return nil, fmt.Errorf("message %q not found in registry: %w", name, err)
	}
	msgDesc, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("%q is not a message type", name)
	}
	return msgDesc, nil
}

// ParseTextproto parses a TableDef in text format.
func (l *Loader) ParseTextproto(data []byte) (protoreflect.Message, error) {
	msg := dynamicpb.NewMessage(l.tableDef)
	opts := prototext.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse textproto: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// ParseJSON parses a TableDef in protobuf JSON format.
func (l *Loader) ParseJSON(data []byte) (protoreflect.Message, error) {
	msg := dynamicpb.NewMessage(l.tableDef)
	opts := protojson.UnmarshalOptions{Resolver: l}
	if err := opts.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	return msg.ProtoReflect(), nil
}

// LoadFile reads a table definition from path. Files ending in .json are
// parsed as JSON, everything else as textproto.
func (l *Loader) LoadFile(path string, opts ...tables.Option) (*tables.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table definition: %w", err)
	}
	var msg protoreflect.Message
	if strings.EqualFold(filepath.Ext(path), ".json") {
		msg, err = l.ParseJSON(data)
	} else {
		msg, err = l.ParseTextproto(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(msg, opts...)
}

// Load parses a textproto TableDef and builds the table.
func (l *Loader) Load(textproto []byte, opts ...tables.Option) (*tables.Table, error) {
	msg, err := l.ParseTextproto(textproto)
	if err != nil {
		return nil, err
	}
	return Build(msg, opts...)
}

// FindMessageByName implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByName(name protoreflect.FullName) (protoreflect.MessageType, error) {
	desc, err := l.messageDescriptor(name)
	if err != nil {
		return nil, err
	}
	return dynamicpb.NewMessageType(desc), nil
}

// FindMessageByURL implements protoregistry.MessageTypeResolver
func (l *Loader) FindMessageByURL(url string) (protoreflect.MessageType, error) {
	name := protoreflect.FullName(url)
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		name = protoreflect.FullName(url[i+1:])
	}
	return l.FindMessageByName(name)
}

// FindExtensionByName implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByName(name protoreflect.FullName) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// FindExtensionByNumber implements protoregistry.ExtensionTypeResolver
func (l *Loader) FindExtensionByNumber(message protoreflect.FullName, field protoreflect.FieldNumber) (protoreflect.ExtensionType, error) {
	return nil, protoregistry.NotFound
}

// Build creates a table from a parsed TableDef message. Options derived from
// the message apply first, so the caller's options override them.
func Build(msg protoreflect.Message, opts ...tables.Option) (*tables.Table, error) {
	if got := msg.Descriptor().FullName(); got != TableDefMessage {
		return nil, fmt.Errorf("expected %s, got %s", TableDefMessage, got)
	}

	name := getString(msg, "name")
	header := getStrings(msg, "header")
	rows := getMessages(msg, "rows")
	flat := getMessages(msg, "cells")

	columnsPerRow := int(getInt(msg, "columns_per_row"))
	if columnsPerRow == 0 {
		columnsPerRow = len(header)
	}
	if columnsPerRow == 0 && len(rows) > 0 {
		columnsPerRow = len(getMessages(rows[0], "cells"))
	}
	if columnsPerRow == 0 {
		return nil, fmt.Errorf("table %q: columns_per_row is not set and cannot be inferred", name)
	}

	derived := []tables.Option{tables.WithName(name)}
	if s := getString(msg, "initial_direction"); s != "" {
		dir, err := columns.ParseSortDirection(s)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		derived = append(derived, tables.WithInitialDirection(dir))
	}

	t, err := tables.NewTable(columnsPerRow, append(derived, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}
	if len(header) > 0 {
		if len(header) != columnsPerRow {
			return nil, fmt.Errorf("table %q: header has %d columns, columns_per_row is %d", name, len(header), columnsPerRow)
		}
		if err := t.AppendHeader(header); err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
	}
	for i, row := range rows {
		defs := getMessages(row, "cells")
		specs := make([]cells.Spec, len(defs))
		for j, def := range defs {
			specs[j] = cellSpec(def)
		}
		if err := t.AppendRow(specs...); err != nil {
			return nil, fmt.Errorf("table %q row %d: %w", name, i+1, err)
		}
	}
	for _, def := range flat {
		t.AppendCell(cellSpec(def))
	}
	t.SetCellDimensions(getString(msg, "cell_width"), getString(msg, "cell_height"))
	return t, nil
}

// HasInitialDirection reports whether a TableDef message sets
// initial_direction.
func HasInitialDirection(msg protoreflect.Message) bool {
	return getString(msg, "initial_direction") != ""
}

func cellSpec(def protoreflect.Message) cells.Spec {
	spec := cells.Spec{
		Kind:     cells.ParseKind(getString(def, "type")),
		Data:     getString(def, "data"),
		Options:  getStrings(def, "options"),
		Disabled: getBool(def, "disabled"),
		HAlign:   getString(def, "h_align"),
		VAlign:   getString(def, "v_align"),
	}
	if chart, ok := getMessage(def, "chart"); ok {
		spec.Chart = chartSpec(chart)
	}
	return spec
}

func chartSpec(m protoreflect.Message) *cells.ChartSpec {
	c := &cells.ChartSpec{
		Type:       getString(m, "type"),
		Title:      getString(m, "title"),
		TitleAlign: getString(m, "title_align"),
		Zoom:       getBool(m, "zoom"),
	}
	for _, s := range getMessages(m, "series") {
		series := cells.Series{Name: getString(s, "name")}
		list := s.Get(fieldByName(s, "data")).List()
		for i := 0; i < list.Len(); i++ {
			series.Data = append(series.Data, list.Get(i).Float())
		}
		c.Series = append(c.Series, series)
	}
	if c.Type == "" {
		c.Type = "bar"
	}
	if c.TitleAlign == "" {
		c.TitleAlign = "center"
	}
	return c
}

func fieldByName(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(fieldByName(m, name)).String()
}

func getBool(m protoreflect.Message, name protoreflect.Name) bool {
	return m.Get(fieldByName(m, name)).Bool()
}

func getInt(m protoreflect.Message, name protoreflect.Name) int64 {
	return m.Get(fieldByName(m, name)).Int()
}

func getStrings(m protoreflect.Message, name protoreflect.Name) []string {
	list := m.Get(fieldByName(m, name)).List()
	out := make([]string, list.Len())
	for i := range out {
		out[i] = list.Get(i).String()
	}
	return out
}

func getMessages(m protoreflect.Message, name protoreflect.Name) []protoreflect.Message {
	list := m.Get(fieldByName(m, name)).List()
	out := make([]protoreflect.Message, list.Len())
	for i := range out {
		out[i] = list.Get(i).Message()
	}
	return out
}

func getMessage(m protoreflect.Message, name protoreflect.Name) (protoreflect.Message, bool) {
	fd := fieldByName(m, name)
	if !m.Has(fd) {
		return nil, false
	}
	return m.Get(fd).Message(), true
}
