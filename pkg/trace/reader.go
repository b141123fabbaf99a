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
	"bufio"
	"io"
)

// Reader provides buffered, forward-only streaming over the records of a
// trace using O(1) memory.  Each reader maintains its own position, hence
// several readers (or out-of-band ReadRange calls) can be in flight over the
// same trace without interfering.
type Reader struct {
	src *bufio.Reader
	// Index of the next record to be returned.
	index   int64
	scratch [RECORD_SIZE]byte
}

func newReader(trace *Trace) *Reader {
	section := io.NewSectionReader(trace.file, 0, trace.records*RECORD_SIZE)
	//
	return &Reader{src: bufio.NewReaderSize(section, 1<<16)}
}

// Index returns the index of the next record Next would return, which equals
// the number of records read so far.
func (p *Reader) Index() int64 {
	return p.index
}

// Next returns the next record in the trace, or false once the trace is
// exhausted.  A file truncated mid-record surfaces as a ShortReadError.
func (p *Reader) Next() (Record, bool, error) {
	var record Record
	//
	n, err := io.ReadFull(p.src, p.scratch[:])
	//
	if err == io.EOF {
		return record, false, nil
	} else if err == io.ErrUnexpectedEOF {
		return record, false, &ShortReadError{1, int64(n) / RECORD_SIZE}
	} else if err != nil {
		return record, false, err
	}
	//
	record.SetBytes(p.scratch[:])
	p.index++
	//
	return record, true, nil
}
