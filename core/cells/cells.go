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

package cells

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

var (
	ErrNotEditable      = errors.New("cell kind does not hold an editable value")
	ErrNotSelectable    = errors.New("cell kind has no options")
	ErrDisabled         = errors.New("cell is disabled")
	ErrOptionOutOfRange = errors.New("option index out of range")
)

const (
	DefaultHAlign = "center"
	DefaultVAlign = "middle"
)

// InvalidText is shown in place of a cell whose kind is not recognised.
const InvalidText = "Invalid cell type"

// Series is one data series of a chart cell.
type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartSpec carries the options of a chart cell. Drawing the chart is left
// to the page; the table only stores and emits them.
type ChartSpec struct {
	Type       string   `json:"type"`
	Title      string   `json:"title,omitempty"`
	TitleAlign string   `json:"titleAlign,omitempty"`
	Zoom       bool     `json:"zoom"`
	Series     []Series `json:"series"`
}

// Spec describes a cell as supplied by the host while building a table.
type Spec struct {
	Kind     Kind
	Data     string
	Options  []string
	Disabled bool
	HAlign   string
	VAlign   string
	Chart    *ChartSpec
}

// Text is shorthand for a plain text cell spec.
func Text(s string) Spec {
	return Spec{Kind: KindText, Data: s}
}

// Cell is one (row, column) content unit. Row and Col are assigned when the
// cell is appended and never change afterwards, even when rows are reordered.
type Cell struct {
	Row      int
	Col      int
	Kind     Kind
	Data     string
	Options  []string
	Disabled bool
	HAlign   string
	VAlign   string
	Chart    *ChartSpec

	// live control state
	current  string
	selected []int
}

// New creates the cell at (row, col) from spec.
func New(row, col int, spec Spec) *Cell {
	c := &Cell{
		Row:      row,
		Col:      col,
		Kind:     spec.Kind,
		Data:     spec.Data,
		Options:  append([]string(nil), spec.Options...),
		Disabled: spec.Disabled && spec.Kind.Interactive(),
		HAlign:   spec.HAlign,
		VAlign:   spec.VAlign,
		Chart:    spec.Chart,
	}
	if c.HAlign == "" {
		c.HAlign = DefaultHAlign
	}
	if c.VAlign == "" {
		c.VAlign = DefaultVAlign
	}
	if c.Kind.Editable() {
		c.current = c.Data
	}
	// a single select always shows its first option
	if c.Kind == KindSelect && len(c.Options) > 0 {
		c.selected = []int{0}
	}
	return c
}

// ID returns the stable identifier of the cell, e.g. "cell-3-1".
func (c *Cell) ID() string {
	return fmt.Sprintf("cell-%d-%d", c.Row, c.Col)
}

// DisplayText returns the static text a reader sees in the rendered cell:
// the text of embedded markup with tags dropped, the option labels of a
// select or choice group run together, or the invalid marker. Kinds whose
// content lives in a control or in media have none.
func (c *Cell) DisplayText() string {
	switch c.Kind {
	case KindText:
		return c.Data
	case KindEmbeddedHTML:
		return markupText(c.Data)
	case KindSelect, KindRadio, KindCheckbox:
		return strings.Join(c.Options, "")
	case KindInput, KindInputEditable, KindTextarea, KindMultiSelect,
		KindImage, KindVideo, KindChart, KindYouTube:
		return ""
	}
	return InvalidText
}

// markupText returns the character data of an HTML fragment with entities
// decoded, in document order.
func markupText(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// Current returns the current value of an editable control.
func (c *Cell) Current() string {
	return c.current
}

// Selected returns the indices of the selected options in option order.
func (c *Cell) Selected() []int {
	return append([]int(nil), c.selected...)
}

// SelectedOptions returns the labels of the selected options.
func (c *Cell) SelectedOptions() []string {
	out := make([]string, 0, len(c.selected))
	for _, i := range c.selected {
		out = append(out, c.Options[i])
	}
	return out
}

// IsSelected reports whether option i is selected.
func (c *Cell) IsSelected(i int) bool {
	for _, s := range c.selected {
		if s == i {
			return true
		}
	}
	return false
}

// SortValue returns the string the sort engine compares for this cell:
// DisplayText when non-empty, otherwise the value of an editable single-line
// input, otherwise the value of a multi-line input, otherwise "".
func (c *Cell) SortValue() string {
	if c == nil {
		return ""
	}
	if text := c.DisplayText(); text != "" {
		return text
	}
	switch c.Kind {
	case KindInputEditable:
		if c.current != "" {
			return c.current
		}
	case KindTextarea:
		if c.current != "" {
			return c.current
		}
	}
	return ""
}

// Value returns the value a host reads back from the cell. Kinds without a
// scalar value (charts, invalid cells) report false.
func (c *Cell) Value() (string, bool) {
	switch c.Kind {
	case KindText, KindEmbeddedHTML:
		return c.Data, true
	case KindInput, KindInputEditable, KindTextarea:
		return c.current, true
	case KindSelect, KindRadio:
		if len(c.selected) == 0 {
			return "", true
		}
		return c.Options[c.selected[0]], true
	case KindMultiSelect, KindCheckbox:
		return strings.Join(c.SelectedOptions(), ","), true
	case KindImage, KindVideo, KindYouTube:
		return c.Data, true
	}
	return "", false
}

// SetInput records the current value of an editable control.
func (c *Cell) SetInput(value string) error {
	if !c.Kind.Editable() {
		return fmt.Errorf("%s: %w", c.Kind, ErrNotEditable)
	}
	if c.Disabled {
		return fmt.Errorf("%s: %w", c.ID(), ErrDisabled)
	}
	c.current = value
	return nil
}

// Select records the selected options of a choice control. Single-choice
// kinds accept at most one index; an empty call clears the selection.
func (c *Cell) Select(indices ...int) error {
	if !c.Kind.HasOptions() {
		return fmt.Errorf("%s: %w", c.Kind, ErrNotSelectable)
	}
	if c.Disabled {
		return fmt.Errorf("%s: %w", c.ID(), ErrDisabled)
	}
	if !c.Kind.MultiChoice() && len(indices) > 1 {
		return fmt.Errorf("%s accepts a single option, got %d", c.Kind, len(indices))
	}
	seen := make(map[int]bool, len(indices))
	selected := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(c.Options) {
			return fmt.Errorf("option %d of %d: %w", i, len(c.Options), ErrOptionOutOfRange)
		}
		if !seen[i] {
			seen[i] = true
			selected = append(selected, i)
		}
	}
	slices.Sort(selected)
	c.selected = selected
	return nil
}
