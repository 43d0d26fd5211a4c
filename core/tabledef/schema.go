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

package tabledef

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	// Package is the proto package of the table definition schema.
	Package = "tabula"
	// TableDefMessage is the full name of the root message.
	TableDefMessage = Package + ".TableDef"
)

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, repeated bool, typeName string) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	f := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName(name)),
		Number:   proto.Int32(number),
		Label:    label.Enum(),
		Type:     typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String("." + Package + "." + typeName)
	}
	return f
}

// jsonName converts snake_case to lowerCamelCase the way protoc does.
func jsonName(name string) string {
	out := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

// schema returns the descriptor of tabula/tabledef.proto:
//
//	message ChartSeries { string name = 1; repeated double data = 2; }
//	message Chart {
//	  string type = 1; string title = 2; string title_align = 3;
//	  bool zoom = 4; repeated ChartSeries series = 5;
//	}
//	message CellDef {
//	  string type = 1; string data = 2; repeated string options = 3;
//	  bool disabled = 4; string h_align = 5; string v_align = 6; Chart chart = 7;
//	}
//	message RowDef { repeated CellDef cells = 1; }
//	message TableDef {
//	  string name = 1; int32 columns_per_row = 2; repeated string header = 3;
//	  string initial_direction = 4; string cell_width = 5; string cell_height = 6;
//	  repeated RowDef rows = 7; repeated CellDef cells = 8;
//	}
func schema() *descriptorpb.FileDescriptorProto {
	const (
		str     = descriptorpb.FieldDescriptorProto_TYPE_STRING
		dbl     = descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
		boolean = descriptorpb.FieldDescriptorProto_TYPE_BOOL
		i32     = descriptorpb.FieldDescriptorProto_TYPE_INT32
		msg     = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("tabula/tabledef.proto"),
		Package: proto.String(Package),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("ChartSeries"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("name", 1, str, false, ""),
					field("data", 2, dbl, true, ""),
				},
			},
			{
				Name: proto.String("Chart"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("type", 1, str, false, ""),
					field("title", 2, str, false, ""),
					field("title_align", 3, str, false, ""),
					field("zoom", 4, boolean, false, ""),
					field("series", 5, msg, true, "ChartSeries"),
				},
			},
			{
				Name: proto.String("CellDef"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("type", 1, str, false, ""),
					field("data", 2, str, false, ""),
					field("options", 3, str, true, ""),
					field("disabled", 4, boolean, false, ""),
					field("h_align", 5, str, false, ""),
					field("v_align", 6, str, false, ""),
					field("chart", 7, msg, false, "Chart"),
				},
			},
			{
				Name: proto.String("RowDef"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("cells", 1, msg, true, "CellDef"),
				},
			},
			{
				Name: proto.String("TableDef"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("name", 1, str, false, ""),
					field("columns_per_row", 2, i32, false, ""),
					field("header", 3, str, true, ""),
					field("initial_direction", 4, str, false, ""),
					field("cell_width", 5, str, false, ""),
					field("cell_height", 6, str, false, ""),
					field("rows", 7, msg, true, "RowDef"),
					field("cells", 8, msg, true, "CellDef"),
				},
			},
		},
	}
}
