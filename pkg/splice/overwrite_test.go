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

	"github.com/stretchr/testify/require"
)

func Test_Overwrite_Basic(t *testing.T) {
	ips := runOverwrite(t, 8, NewRange("src", 0, 3), 5)
	require.Equal(t, []uint64{0, 1, 2, 3, 4, 0, 1, 2}, ips)
}

func Test_Overwrite_LengthInvariant(t *testing.T) {
	// Overwrite never changes the record count.
	for _, dstBegin := range []int64{0, 3, 11} {
		ips := runOverwrite(t, 16, NewRange("src", 4, 9), dstBegin)
		require.Len(t, ips, 16)
	}
}

func Test_Overwrite_OutsideWindowUntouched(t *testing.T) {
	ips := runOverwrite(t, 10, NewRange("src", 0, 2), 4)
	// Records outside [4, 6) are byte-identical to the input
	require.Equal(t, []uint64{0, 1, 2, 3, 0, 1, 6, 7, 8, 9}, ips)
}

func Test_Overwrite_SelfIdempotent(t *testing.T) {
	// Overwriting a range with itself reproduces the input exactly.
	input := newTestTrace(t, 12)
	defer input.Close()
	//
	plan, err := PlanOverwrite(input, NewRange("src", 3, 7), 3)
	require.NoError(t, err)
	//
	output := newOutput(t)
	require.NoError(t, plan.Run(input, output))
	require.NoError(t, output.Close())
	//
	require.Equal(t, readBytes(t, input.Path()), readBytes(t, output.Path()))
}

func Test_Overwrite_OverlappingRanges(t *testing.T) {
	// Overlap is legal: the source is captured before any output is
	// written, so the copied data cannot be corrupted.
	ips := runOverwrite(t, 10, NewRange("src", 2, 6), 4)
	require.Equal(t, []uint64{0, 1, 2, 3, 2, 3, 4, 5, 8, 9}, ips)
}

func Test_Overwrite_WindowBeyondTotalRejected(t *testing.T) {
	input := newTestTrace(t, 8)
	defer input.Close()
	//
	_, err := PlanOverwrite(input, NewRange("src", 0, 4), 6)
	checkRangeError(t, err, "dst")
}

// runOverwrite executes a full overwrite over a fresh index-tagged trace and
// returns the instruction pointers of the output.
func runOverwrite(t *testing.T, n int64, src Range, dstBegin int64) []uint64 {
	input := newTestTrace(t, n)
	defer input.Close()
	//
	plan, err := PlanOverwrite(input, src, dstBegin)
	require.NoError(t, err)
	//
	output := newOutput(t)
	require.NoError(t, plan.Run(input, output))
	require.Equal(t, n, output.Count())
	require.NoError(t, output.Close())
	//
	return readIps(t, output.Path())
}
