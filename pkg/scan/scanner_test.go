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
package scan

import (
	"path/filepath"
	"testing"

	"github.com/consensys/go-tracedit/pkg/trace"
	"github.com/stretchr/testify/require"
)

func Test_Scan_SingleHit(t *testing.T) {
	const base = uint64(0x7000_0000)
	// One record accessing base+7 inside a 64-byte window
	records := []trace.Record{
		{Ip: 0x400000},
		{Ip: 0x400004, SourceMemory: [trace.NUM_SOURCES]uint64{base + 7, 0, 0, 0}},
		{Ip: 0x400008},
	}
	//
	hits := collectHits(t, records, base, 64, 0)
	require.Len(t, hits, 1)
	require.Equal(t, Hit{1, LOAD, 0x400004, base + 7, 7}, hits[0])
}

func Test_Scan_ZeroSentinel(t *testing.T) {
	// The zero address marks an empty slot and is never a hit, even when
	// the window itself starts at address zero.
	records := []trace.Record{
		{Ip: 0x400000, SourceMemory: [trace.NUM_SOURCES]uint64{0, 0, 0, 0}},
		{Ip: 0x400004, DestinationMemory: [trace.NUM_DESTINATIONS]uint64{0, 0}},
		{Ip: 0x400008, SourceMemory: [trace.NUM_SOURCES]uint64{3, 0, 0, 0}},
	}
	//
	hits := collectHits(t, records, 0, 64, 0)
	require.Len(t, hits, 1)
	require.Equal(t, Hit{2, LOAD, 0x400008, 3, 3}, hits[0])
}

func Test_Scan_SlotOrdering(t *testing.T) {
	const base = uint64(0x1000)
	// Within one record, source slots (loads) precede destination slots
	// (stores), each in slot order.
	records := []trace.Record{{
		Ip:                0x400000,
		SourceMemory:      [trace.NUM_SOURCES]uint64{base + 8, 0, base + 16, 0},
		DestinationMemory: [trace.NUM_DESTINATIONS]uint64{base + 24, 0},
	}}
	//
	hits := collectHits(t, records, base, 64, 0)
	require.Len(t, hits, 3)
	require.Equal(t, []Hit{
		{0, LOAD, 0x400000, base + 8, 8},
		{0, LOAD, 0x400000, base + 16, 16},
		{0, STORE, 0x400000, base + 24, 24},
	}, hits)
}

func Test_Scan_WindowBounds(t *testing.T) {
	const base = uint64(0x1000)
	// End of the window is exclusive
	records := []trace.Record{
		{Ip: 1, SourceMemory: [trace.NUM_SOURCES]uint64{base - 1, 0, 0, 0}},
		{Ip: 2, SourceMemory: [trace.NUM_SOURCES]uint64{base, 0, 0, 0}},
		{Ip: 3, SourceMemory: [trace.NUM_SOURCES]uint64{base + 63, 0, 0, 0}},
		{Ip: 4, SourceMemory: [trace.NUM_SOURCES]uint64{base + 64, 0, 0, 0}},
	}
	//
	hits := collectHits(t, records, base, 64, 0)
	require.Len(t, hits, 2)
	require.Equal(t, uint64(0), hits[0].Offset)
	require.Equal(t, uint64(63), hits[1].Offset)
}

func Test_Scan_MaxHits(t *testing.T) {
	const base = uint64(0x1000)
	//
	var records []trace.Record
	for i := 0; i < 10; i++ {
		records = append(records, trace.Record{
			Ip:           uint64(i),
			SourceMemory: [trace.NUM_SOURCES]uint64{base + uint64(i), 0, 0, 0},
		})
	}
	// Scanning stops early once the limit is reached
	hits := collectHits(t, records, base, 64, 3)
	require.Len(t, hits, 3)
	require.Equal(t, int64(2), hits[2].Index)
}

// collectHits writes the given records to a fresh trace file, scans it with
// the given window, and returns all emitted hits.
func collectHits(t *testing.T, records []trace.Record, base, size, maxHits uint64) []Hit {
	path := filepath.Join(t.TempDir(), "trace.bin")
	//
	writer, err := trace.Create(path)
	require.NoError(t, err)
	require.NoError(t, writer.AppendAll(records))
	require.NoError(t, writer.Close())
	//
	input, err := trace.Open(path)
	require.NoError(t, err)
	//
	defer input.Close()
	//
	var (
		scanner = New(input, base, size, maxHits)
		hits    []Hit
	)
	//
	for {
		hit, ok, err := scanner.Next()
		require.NoError(t, err)
		//
		if !ok {
			break
		}
		//
		hits = append(hits, hit)
	}
	//
	return hits
}
