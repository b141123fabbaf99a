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
	"os"
)

// Writer provides buffered, append-only writing of records to a fresh trace
// file.  Writes are strictly ordered; no operation in this toolbox requires
// random-access writes.  A writer must be closed for its buffer to be
// flushed; a writer abandoned after a write error leaves a truncated file
// behind (no atomic replace is attempted).
type Writer struct {
	path string
	file *os.File
	dst  *bufio.Writer
	// Number of records appended so far.
	count   int64
	scratch [RECORD_SIZE]byte
}

// Create opens a fresh trace file for writing, truncating any existing file
// at the given path.
func Create(path string) (*Writer, error) {
	file, err := os.Create(path)
	//
	if err != nil {
		return nil, err
	}
	//
	return &Writer{path: path, file: file, dst: bufio.NewWriterSize(file, 1<<16)}, nil
}

// Path returns the path this writer is writing to.
func (p *Writer) Path() string {
	return p.path
}

// Count returns the number of records appended so far.
func (p *Writer) Count() int64 {
	return p.count
}

// Append encodes and appends a single record.
func (p *Writer) Append(record Record) error {
	record.PutBytes(p.scratch[:])
	//
	if _, err := p.dst.Write(p.scratch[:]); err != nil {
		return err
	}
	//
	p.count++
	//
	return nil
}

// AppendAll encodes and appends a sequence of records in order.
func (p *Writer) AppendAll(records []Record) error {
	for _, record := range records {
		if err := p.Append(record); err != nil {
			return err
		}
	}
	//
	return nil
}

// Close flushes any buffered records and releases the underlying file.
func (p *Writer) Close() error {
	if err := p.dst.Flush(); err != nil {
		p.file.Close()
		return err
	}
	//
	return p.file.Close()
}
