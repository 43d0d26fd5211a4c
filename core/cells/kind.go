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

// Package cells defines the typed content of a single table cell.
package cells

import "strings"

// Kind is the content kind of a cell. The set is closed; every renderer and
// extractor switches over it exhaustively.
type Kind int

const (
	KindInvalid Kind = iota
	KindText
	KindInput
	KindInputEditable
	KindTextarea
	KindSelect
	KindMultiSelect
	KindRadio
	KindCheckbox
	KindImage
	KindVideo
	KindChart
	KindEmbeddedHTML
	KindYouTube
)

var kindNames = map[Kind]string{
	KindInvalid:       "invalid",
	KindText:          "text",
	KindInput:         "input",
	KindInputEditable: "input-editable",
	KindTextarea:      "textarea",
	KindSelect:        "select",
	KindMultiSelect:   "multiselect",
	KindRadio:         "radio",
	KindCheckbox:      "checkbox",
	KindImage:         "image",
	KindVideo:         "video",
	KindChart:         "chart",
	KindEmbeddedHTML:  "embedded-html",
	KindYouTube:       "youtube-embed",
}

// kindAliases maps the short names used by older widget markup.
var kindAliases = map[string]Kind{
	"input-ss": KindInputEditable,
	"img":      KindImage,
	"html":     KindEmbeddedHTML,
	"youtube":  KindYouTube,
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames)+len(kindAliases))
	for k, name := range kindNames {
		if k != KindInvalid {
			m[name] = k
		}
	}
	for alias, k := range kindAliases {
		m[alias] = k
	}
	return m
}()

// ParseKind maps a kind name to a Kind. Unknown names yield KindInvalid,
// which renders as a visible marker rather than failing the table.
func ParseKind(name string) Kind {
	if k, ok := kindsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return KindInvalid
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInvalid]
}

// Valid reports whether k is one of the known content kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k <= KindYouTube
}

// Interactive reports whether the kind is backed by a form control that
// honours the disabled flag.
func (k Kind) Interactive() bool {
	switch k {
	case KindInput, KindInputEditable, KindTextarea, KindSelect, KindMultiSelect:
		return true
	}
	return false
}

// Editable reports whether the kind holds a free-text current value.
func (k Kind) Editable() bool {
	switch k {
	case KindInput, KindInputEditable, KindTextarea:
		return true
	}
	return false
}

// HasOptions reports whether the kind's payload is an option list.
func (k Kind) HasOptions() bool {
	switch k {
	case KindSelect, KindMultiSelect, KindRadio, KindCheckbox:
		return true
	}
	return false
}

// MultiChoice reports whether more than one option may be selected.
func (k Kind) MultiChoice() bool {
	return k == KindMultiSelect || k == KindCheckbox
}
