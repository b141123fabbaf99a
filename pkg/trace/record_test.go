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
package trace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_Record_Size(t *testing.T) {
	// The wire format is fixed by the upstream tracer.
	require.Equal(t, 64, RECORD_SIZE)
}

func Test_Record_RoundTrip_01(t *testing.T) {
	checkRoundTrip(t, Record{})
}

func Test_Record_RoundTrip_02(t *testing.T) {
	checkRoundTrip(t, Record{
		Ip:                   0xdeadbeefcafe,
		IsBranch:             1,
		BranchTaken:          1,
		DestinationRegisters: [NUM_DESTINATIONS]uint8{3, 9},
		SourceRegisters:      [NUM_SOURCES]uint8{1, 2, 4, 8},
		DestinationMemory:    [NUM_DESTINATIONS]uint64{0x7000_0000, 0},
		SourceMemory:         [NUM_SOURCES]uint64{0x7000_1000, 0x7000_2000, 0, 0},
	})
}

func Test_Record_Layout(t *testing.T) {
	var (
		record = Record{Ip: 0x0102030405060708, SourceMemory: [NUM_SOURCES]uint64{0x11, 0, 0, 0}}
		bytes  [RECORD_SIZE]byte
	)
	//
	record.PutBytes(bytes[:])
	// Little-endian instruction pointer at offset 0
	require.Equal(t, byte(0x08), bytes[0])
	require.Equal(t, byte(0x01), bytes[7])
	// First source memory slot at offset 32
	require.Equal(t, byte(0x11), bytes[32])
}

func checkRoundTrip(t *testing.T, record Record) {
	var (
		bytes   [RECORD_SIZE]byte
		decoded Record
	)
	//
	record.PutBytes(bytes[:])
	decoded.SetBytes(bytes[:])
	//
	if diff := cmp.Diff(record, decoded); diff != "" {
		t.Errorf("record round trip mismatch (-want +got):\n%s", diff)
	}
}
