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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"text", KindText},
		{"input", KindInput},
		{"input-editable", KindInputEditable},
		{"input-ss", KindInputEditable},
		{"textarea", KindTextarea},
		{"select", KindSelect},
		{"multiselect", KindMultiSelect},
		{"radio", KindRadio},
		{"checkbox", KindCheckbox},
		{"image", KindImage},
		{"img", KindImage},
		{"video", KindVideo},
		{"chart", KindChart},
		{"embedded-html", KindEmbeddedHTML},
		{"html", KindEmbeddedHTML},
		{"youtube-embed", KindYouTube},
		{"youtube", KindYouTube},
		{" Text ", KindText},
		{"spreadsheet", KindInvalid},
		{"", KindInvalid},
		{"invalid", KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.name))
		})
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for k := KindText; k <= KindYouTube; k++ {
		assert.True(t, k.Valid())
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.False(t, KindInvalid.Valid())
	assert.Equal(t, "invalid", Kind(99).String())
}

func TestNewDefaults(t *testing.T) {
	c := New(2, 1, Spec{Kind: KindText, Data: "X"})
	assert.Equal(t, "cell-2-1", c.ID())
	assert.Equal(t, DefaultHAlign, c.HAlign)
	assert.Equal(t, DefaultVAlign, c.VAlign)

	// disabled has no meaning for static kinds
	img := New(1, 0, Spec{Kind: KindImage, Data: "a.png", Disabled: true})
	assert.False(t, img.Disabled)

	sel := New(1, 0, Spec{Kind: KindSelect, Options: []string{"a", "b"}})
	assert.Equal(t, []int{0}, sel.Selected())
}

func TestSortValue(t *testing.T) {
	tests := []struct {
		name  string
		cell  *Cell
		input string
		want  string
	}{
		{"text", New(1, 0, Text("abc")), "", "abc"},
		{"empty text", New(1, 0, Text("")), "", ""},
		{"editable input", New(1, 0, Spec{Kind: KindInputEditable, Data: "7"}), "", "7"},
		{"edited input", New(1, 0, Spec{Kind: KindInputEditable, Data: "7"}), "12", "12"},
		{"textarea", New(1, 0, Spec{Kind: KindTextarea, Data: "notes"}), "", "notes"},
		{"plain input is not read", New(1, 0, Spec{Kind: KindInput, Data: "5"}), "", ""},
		{"embedded html drops tags", New(1, 0, Spec{Kind: KindEmbeddedHTML, Data: "<b>10</b> <i>px</i>"}), "", "10 px"},
		{"embedded html decodes entities", New(1, 0, Spec{Kind: KindEmbeddedHTML, Data: "a &amp; b<!-- note -->"}), "", "a & b"},
		{"embedded html without text", New(1, 0, Spec{Kind: KindEmbeddedHTML, Data: "<br>"}), "", ""},
		{"select joins labels", New(1, 0, Spec{Kind: KindSelect, Options: []string{"a", "b"}}), "", "ab"},
		{"radio joins labels", New(1, 0, Spec{Kind: KindRadio, Options: []string{"x", "y"}}), "", "xy"},
		{"multiselect", New(1, 0, Spec{Kind: KindMultiSelect, Options: []string{"a"}}), "", ""},
		{"image", New(1, 0, Spec{Kind: KindImage, Data: "x.png"}), "", ""},
		{"invalid shows marker", New(1, 0, Spec{Kind: KindInvalid, Data: "x"}), "", InvalidText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.input != "" {
				require.NoError(t, tt.cell.SetInput(tt.input))
			}
			assert.Equal(t, tt.want, tt.cell.SortValue())
		})
	}

	var nilCell *Cell
	assert.Equal(t, "", nilCell.SortValue())
}

func TestValue(t *testing.T) {
	text := New(1, 0, Text("X"))
	v, ok := text.Value()
	assert.True(t, ok)
	assert.Equal(t, "X", v)

	in := New(1, 1, Spec{Kind: KindInput, Data: "start"})
	require.NoError(t, in.SetInput("typed"))
	v, ok = in.Value()
	assert.True(t, ok)
	assert.Equal(t, "typed", v)

	sel := New(1, 2, Spec{Kind: KindSelect, Options: []string{"red", "green"}})
	require.NoError(t, sel.Select(1))
	v, ok = sel.Value()
	assert.True(t, ok)
	assert.Equal(t, "green", v)

	radio := New(1, 3, Spec{Kind: KindRadio, Options: []string{"y", "n"}})
	v, ok = radio.Value()
	assert.True(t, ok)
	assert.Equal(t, "", v)

	multi := New(1, 4, Spec{Kind: KindMultiSelect, Options: []string{"a", "b", "c"}})
	require.NoError(t, multi.Select(2, 0, 2))
	v, ok = multi.Value()
	assert.True(t, ok)
	assert.Equal(t, "a,c", v)

	img := New(1, 5, Spec{Kind: KindImage, Data: "https://example.com/a.png"})
	v, ok = img.Value()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a.png", v)

	chart := New(1, 6, Spec{Kind: KindChart, Chart: &ChartSpec{Type: "bar"}})
	_, ok = chart.Value()
	assert.False(t, ok)
}

func TestSetInputErrors(t *testing.T) {
	err := New(1, 0, Text("x")).SetInput("y")
	assert.ErrorIs(t, err, ErrNotEditable)

	disabled := New(1, 0, Spec{Kind: KindInputEditable, Data: "x", Disabled: true})
	assert.ErrorIs(t, disabled.SetInput("y"), ErrDisabled)
	assert.Equal(t, "x", disabled.Current())
}

func TestSelectErrors(t *testing.T) {
	assert.ErrorIs(t, New(1, 0, Text("x")).Select(0), ErrNotSelectable)

	sel := New(1, 0, Spec{Kind: KindSelect, Options: []string{"a", "b"}})
	assert.ErrorIs(t, sel.Select(2), ErrOptionOutOfRange)
	assert.Error(t, sel.Select(0, 1))
	assert.Equal(t, []int{0}, sel.Selected())

	check := New(1, 0, Spec{Kind: KindCheckbox, Options: []string{"a", "b"}})
	require.NoError(t, check.Select(1, 0))
	assert.Equal(t, []string{"a", "b"}, check.SelectedOptions())
	assert.True(t, check.IsSelected(1))
	require.NoError(t, check.Select())
	assert.Empty(t, check.Selected())
}
