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
	"encoding/binary"
)

// NUM_DESTINATIONS gives the number of destination operand slots held by every
// record.  This is fixed by the upstream tracer and cannot change without
// breaking the wire format.
const NUM_DESTINATIONS = 2

// NUM_SOURCES gives the number of source operand slots held by every record.
const NUM_SOURCES = 4

// RECORD_SIZE gives the exact byte size of one encoded record.  Every trace
// file must be an exact multiple of this, and the layout must match the
// tracer which produced the file bit-for-bit.
const RECORD_SIZE = 8 + 1 + 1 + NUM_DESTINATIONS + NUM_SOURCES +
	(8 * NUM_DESTINATIONS) + (8 * NUM_SOURCES)

// Record is a programmatic representation of one traced instruction.  Aside
// from the memory operand slots, all fields are opaque to this toolbox: they
// are carried through splicing operations byte-for-byte but never interpreted.
// A memory address of zero marks an empty operand slot, not a real address.
type Record struct {
	// Instruction pointer of the traced instruction.
	Ip uint64
	// Branch flag (opaque).
	IsBranch uint8
	// Branch outcome flag (opaque).
	BranchTaken uint8
	// Destination register identifiers (opaque).
	DestinationRegisters [NUM_DESTINATIONS]uint8
	// Source register identifiers (opaque).
	SourceRegisters [NUM_SOURCES]uint8
	// Destination memory addresses (stores), zero meaning empty.
	DestinationMemory [NUM_DESTINATIONS]uint64
	// Source memory addresses (loads), zero meaning empty.
	SourceMemory [NUM_SOURCES]uint64
}

// PutBytes encodes this record into the given buffer, which must hold at
// least RECORD_SIZE bytes.  Encoding is total: every record encodes, and
// decoding the result yields an identical record.
func (p *Record) PutBytes(bytes []byte) {
	binary.LittleEndian.PutUint64(bytes[0:8], p.Ip)
	bytes[8] = p.IsBranch
	bytes[9] = p.BranchTaken
	//
	offset := 10
	// Encode register slots
	for i := 0; i < NUM_DESTINATIONS; i++ {
		bytes[offset] = p.DestinationRegisters[i]
		offset++
	}
	//
	for i := 0; i < NUM_SOURCES; i++ {
		bytes[offset] = p.SourceRegisters[i]
		offset++
	}
	// Encode memory slots
	for i := 0; i < NUM_DESTINATIONS; i++ {
		binary.LittleEndian.PutUint64(bytes[offset:offset+8], p.DestinationMemory[i])
		offset += 8
	}
	//
	for i := 0; i < NUM_SOURCES; i++ {
		binary.LittleEndian.PutUint64(bytes[offset:offset+8], p.SourceMemory[i])
		offset += 8
	}
}

// SetBytes decodes this record from the given buffer, which must hold at
// least RECORD_SIZE bytes.  This should match exactly the encoding above.
func (p *Record) SetBytes(bytes []byte) {
	p.Ip = binary.LittleEndian.Uint64(bytes[0:8])
	p.IsBranch = bytes[8]
	p.BranchTaken = bytes[9]
	//
	offset := 10
	// Decode register slots
	for i := 0; i < NUM_DESTINATIONS; i++ {
		p.DestinationRegisters[i] = bytes[offset]
		offset++
	}
	//
	for i := 0; i < NUM_SOURCES; i++ {
		p.SourceRegisters[i] = bytes[offset]
		offset++
	}
	// Decode memory slots
	for i := 0; i < NUM_DESTINATIONS; i++ {
		p.DestinationMemory[i] = binary.LittleEndian.Uint64(bytes[offset : offset+8])
		offset += 8
	}
	//
	for i := 0; i < NUM_SOURCES; i++ {
		p.SourceMemory[i] = binary.LittleEndian.Uint64(bytes[offset : offset+8])
		offset += 8
	}
}
