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
	"github.com/consensys/go-tracedit/pkg/trace"
)

// Kind distinguishes the memory operand class a hit was found in.
type Kind uint8

const (
	// LOAD indicates a hit in a source memory slot.
	LOAD Kind = iota
	// STORE indicates a hit in a destination memory slot.
	STORE
)

func (k Kind) String() string {
	if k == LOAD {
		return "load"
	}
	//
	return "store"
}

// Hit records one memory access falling within the scanned address window.
type Hit struct {
	// Index of the record the access belongs to.
	Index int64
	// Whether the access was a load or a store.
	Kind Kind
	// Instruction pointer of the accessing record.
	Ip uint64
	// Accessed address.
	Addr uint64
	// Offset of the address from the base of the scanned window.
	Offset uint64
}

// Scanner streams a trace once, testing every non-zero memory operand of
// every record for membership in the half-open address window
// [base, base+size), and emitting a hit per matching slot.  Hits are emitted
// in record order, and within a record source slots (loads) precede
// destination slots (stores).  Scanning is read-only and restartable by
// constructing a fresh scanner.
type Scanner struct {
	reader *trace.Reader
	base   uint64
	size   uint64
	// Maximum hits to emit (0 = unlimited).
	maxHits uint64
	// Hits emitted so far.
	emitted uint64
	// Hits decoded from the current record but not yet emitted.
	pending []Hit
	// Records scanned so far.
	scanned int64
}

// New constructs a scanner over the given trace for the address window
// [base, base+size), emitting at most maxHits hits (0 = unlimited).
func New(input *trace.Trace, base uint64, size uint64, maxHits uint64) *Scanner {
	return &Scanner{reader: input.Records(), base: base, size: size, maxHits: maxHits}
}

// Scanned returns the number of records examined so far.
func (p *Scanner) Scanned() int64 {
	return p.scanned
}

// Next returns the next hit, or false once the trace is exhausted or the hit
// limit has been reached.
func (p *Scanner) Next() (Hit, bool, error) {
	for {
		if p.maxHits > 0 && p.emitted >= p.maxHits {
			return Hit{}, false, nil
		}
		// Drain hits from the current record first
		if len(p.pending) > 0 {
			hit := p.pending[0]
			p.pending = p.pending[1:]
			p.emitted++
			//
			return hit, true, nil
		}
		//
		record, ok, err := p.reader.Next()
		//
		if err != nil || !ok {
			return Hit{}, false, err
		}
		//
		p.match(p.scanned, &record)
		p.scanned++
	}
}

// match collects the hits of a single record, source slots first.
func (p *Scanner) match(index int64, record *trace.Record) {
	for _, addr := range record.SourceMemory {
		if p.inWindow(addr) {
			p.pending = append(p.pending, Hit{index, LOAD, record.Ip, addr, addr - p.base})
		}
	}
	//
	for _, addr := range record.DestinationMemory {
		if p.inWindow(addr) {
			p.pending = append(p.pending, Hit{index, STORE, record.Ip, addr, addr - p.base})
		}
	}
}

// inWindow checks window membership, always excluding the zero sentinel
// (which marks an empty operand slot, even when the window itself starts at
// address zero).
func (p *Scanner) inWindow(addr uint64) bool {
	return addr != 0 && addr >= p.base && addr-p.base < p.size
}
