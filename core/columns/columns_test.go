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

package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortDirection(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, Ascending, Descending.Toggle())
	assert.Equal(t, "▲", Ascending.Arrow())
	assert.Equal(t, "▼", Descending.Arrow())

	for _, s := range []string{"asc", "ASC", "ascending"} {
		d, err := ParseSortDirection(s)
		require.NoError(t, err)
		assert.Equal(t, Ascending, d)
	}
	d, err := ParseSortDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	_, err = ParseSortDirection("sideways")
	assert.Error(t, err)
}

func TestWidthNeverNegative(t *testing.T) {
	cv := NewColumnView("amount", Descending)
	cv.IncreaseWidth(15)
	assert.Equal(t, 15, cv.Width)

	for i := 0; i < 10; i++ {
		cv.DecreaseWidth(10)
		assert.GreaterOrEqual(t, cv.Width, 0)
	}
	assert.Equal(t, 0, cv.Width)

	cv.DecreaseWidth(-5)
	assert.Equal(t, 0, cv.Width)
	cv.IncreaseWidth(-5)
	assert.Equal(t, 5, cv.Width)

	cv.SetWidth(-100)
	assert.Equal(t, 0, cv.Width)
}

func TestToggleDirectionIsPerColumn(t *testing.T) {
	a := NewColumnView("a", Descending)
	b := NewColumnView("b", Descending)

	assert.Equal(t, Descending, a.ToggleDirection())
	assert.Equal(t, Ascending, a.Direction)
	assert.Equal(t, Descending, b.Direction)

	assert.Equal(t, Ascending, a.ToggleDirection())
	assert.Equal(t, Descending, a.Direction)
}
