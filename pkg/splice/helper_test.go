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
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-tracedit/pkg/trace"
	"github.com/stretchr/testify/require"
)

// newTestTrace creates a trace of n records whose instruction pointers equal
// their indices, and opens it for reading.
func newTestTrace(t *testing.T, n int64) *trace.Trace {
	path := filepath.Join(t.TempDir(), "in.bin")
	//
	writer, err := trace.Create(path)
	require.NoError(t, err)
	//
	for i := int64(0); i < n; i++ {
		require.NoError(t, writer.Append(trace.Record{Ip: uint64(i)}))
	}
	//
	require.NoError(t, writer.Close())
	//
	input, err := trace.Open(path)
	require.NoError(t, err)
	//
	return input
}

// newOutput allocates a fresh output path and writer in a temporary
// directory.
func newOutput(t *testing.T) *trace.Writer {
	writer, err := trace.Create(filepath.Join(t.TempDir(), "out.bin"))
	require.NoError(t, err)
	//
	return writer
}

// readIps reopens the given output file and returns the instruction pointers
// of all its records.
func readIps(t *testing.T, path string) []uint64 {
	output, err := trace.Open(path)
	require.NoError(t, err)
	//
	defer output.Close()
	//
	records, err := output.ReadRange(0, output.TotalRecords())
	require.NoError(t, err)
	//
	ips := make([]uint64, len(records))
	for i, record := range records {
		ips[i] = record.Ip
	}
	//
	return ips
}

// readBytes returns the raw contents of the given file.
func readBytes(t *testing.T, path string) []byte {
	bytes, err := os.ReadFile(path)
	require.NoError(t, err)
	//
	return bytes
}
