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
	"fmt"
	"io"
	"os"
)

// CorruptError indicates that a file cannot be a trace file, because its byte
// length is not an exact multiple of the record size.  Trace files carry no
// header or magic number, hence this is the only structural validity check
// available.
type CorruptError struct {
	// Path of the offending file.
	Path string
	// Byte length of the offending file.
	Size int64
}

func (p *CorruptError) Error() string {
	return fmt.Sprintf("%s: file size (%d bytes) is not a multiple of the record size (%d bytes)",
		p.Path, p.Size, RECORD_SIZE)
}

// ShortReadError indicates that fewer records were available than requested,
// meaning the underlying file was truncated whilst being read.
type ShortReadError struct {
	// Number of records requested.
	Requested int64
	// Number of records actually read.
	Read int64
}

func (p *ShortReadError) Error() string {
	return fmt.Sprintf("expected to read %d records, got %d", p.Requested, p.Read)
}

// Trace is an ordered, zero-indexed sequence of records backed by a file
// opened read-only.  The total record count is fixed at open time from the
// file size.  A Trace supports both random access reads (ReadRange) and
// forward-only streaming (Records); the two do not disturb each other, which
// is what allows a splicer to fetch source ranges out-of-band whilst
// streaming the same file.
type Trace struct {
	path    string
	file    *os.File
	records int64
}

// Open opens the given file as a trace, rejecting files whose length is not
// an exact multiple of the record size.
func Open(path string) (*Trace, error) {
	file, err := os.Open(path)
	//
	if err != nil {
		return nil, err
	}
	// Determine file size
	info, err := file.Stat()
	//
	if err != nil {
		file.Close()
		return nil, err
	}
	// Sanity check record alignment
	if info.Size()%RECORD_SIZE != 0 {
		file.Close()
		return nil, &CorruptError{path, info.Size()}
	}
	//
	return &Trace{path, file, info.Size() / RECORD_SIZE}, nil
}

// Path returns the path this trace was opened from.
func (p *Trace) Path() string {
	return p.path
}

// TotalRecords returns the number of records held by this trace.
func (p *Trace) TotalRecords() int64 {
	return p.records
}

// ReadRange reads all records in the half-open index range [begin, end) into
// memory.  The caller is responsible for ensuring the range is within bounds;
// a truncated file surfaces as a ShortReadError.  ReadRange does not disturb
// any in-progress streaming read of the same trace.
func (p *Trace) ReadRange(begin int64, end int64) ([]Record, error) {
	n := end - begin
	buffer := make([]byte, n*RECORD_SIZE)
	// Read underlying bytes
	m, err := p.file.ReadAt(buffer, begin*RECORD_SIZE)
	//
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, &ShortReadError{n, int64(m) / RECORD_SIZE}
	} else if err != nil {
		return nil, err
	}
	// Decode records
	records := make([]Record, n)
	//
	for i := range records {
		records[i].SetBytes(buffer[i*RECORD_SIZE:])
	}
	//
	return records, nil
}

// Records returns a forward-only streaming reader over the entire trace,
// suited to files far larger than memory.  The reader is single pass:
// restarting means calling Records again, which begins a fresh pass from
// record zero.
func (p *Trace) Records() *Reader {
	return newReader(p)
}

// Close releases the underlying file handle.
func (p *Trace) Close() error {
	return p.file.Close()
}
