// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Validate_Ok(t *testing.T) {
	require.NoError(t, Validate(10, NewRange("src", 0, 10)))
	require.NoError(t, Validate(10, NewRange("src", 9, 10)))
	require.NoError(t, Validate(10, NewRange("a", 0, 5), NewRange("b", 5, 10)))
}

func Test_Validate_NegativeBegin(t *testing.T) {
	checkRangeError(t, Validate(10, NewRange("src", -1, 5)), "src")
}

func Test_Validate_EmptyRange(t *testing.T) {
	// An empty range is rejected, not silently accepted.
	checkRangeError(t, Validate(10, NewRange("src", 5, 5)), "src")
}

func Test_Validate_InvertedRange(t *testing.T) {
	checkRangeError(t, Validate(10, NewRange("src", 7, 3)), "src")
}

func Test_Validate_EndBeyondTotal(t *testing.T) {
	checkRangeError(t, Validate(10, NewRange("dst", 5, 11)), "dst")
}

func Test_Validate_SecondRange(t *testing.T) {
	// The error identifies which range failed.
	checkRangeError(t, Validate(10, NewRange("a", 0, 5), NewRange("b", 5, 20)), "b")
}

func Test_ValidatePoint(t *testing.T) {
	require.NoError(t, ValidatePoint(10, "insert-at", 0))
	// The total itself is a valid insertion point (append at end).
	require.NoError(t, ValidatePoint(10, "insert-at", 10))
	checkRangeError(t, ValidatePoint(10, "insert-at", -1), "insert-at")
	checkRangeError(t, ValidatePoint(10, "insert-at", 11), "insert-at")
}

func Test_Range_Overlaps(t *testing.T) {
	assert.True(t, NewRange("a", 0, 5).Overlaps(NewRange("b", 4, 9)))
	assert.True(t, NewRange("a", 4, 9).Overlaps(NewRange("b", 0, 5)))
	assert.True(t, NewRange("a", 2, 4).Overlaps(NewRange("b", 0, 9)))
	assert.False(t, NewRange("a", 0, 5).Overlaps(NewRange("b", 5, 9)))
	assert.False(t, NewRange("a", 5, 9).Overlaps(NewRange("b", 0, 5)))
}

func Test_Range_Contains(t *testing.T) {
	r := NewRange("a", 2, 5)
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
}

func checkRangeError(t *testing.T, err error, label string) {
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, label, rangeErr.Label)
}
