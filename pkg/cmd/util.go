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
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/go-tracedit/pkg/trace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exit if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt64 gets an expected int64 flag, or exit if an error arises.
func GetInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint64 gets an expected uint64 flag, or exit if an error arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetFloat64 gets an expected float64 flag, or exit if an error arises.
func GetFloat64(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetAddress gets an expected string flag holding an address, accepting both
// decimal and 0x-prefixed hexadecimal forms.
func GetAddress(cmd *cobra.Command, flag string) uint64 {
	r, err := strconv.ParseUint(GetString(cmd, flag), 0, 64)
	if err != nil {
		fail("invalid --%s: %s", flag, err)
	}

	return r
}

// configureLogging sets the logging level, where the default is info.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// fail reports a fatal error and exits with status one, as every validation
// or I/O failure does.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// openTraceFile opens the given file as a trace, reporting its record count,
// and failing outright when the file is missing or corrupt.
func openTraceFile(path string) *trace.Trace {
	input, err := trace.Open(path)
	//
	if err != nil {
		fail("%s", err)
	}
	//
	fmt.Fprintf(os.Stderr, "# Input file: %s\n", path)
	fmt.Fprintf(os.Stderr, "# Total input records: %d\n", input.TotalRecords())
	fmt.Fprintf(os.Stderr, "# Record size: %d bytes\n", trace.RECORD_SIZE)
	//
	return input
}

// createTraceFile opens a fresh output trace file, failing outright when it
// cannot be created.  This must only happen after all validation succeeded,
// so a validation failure never leaves an output artifact behind.
func createTraceFile(path string) *trace.Writer {
	output, err := trace.Create(path)
	//
	if err != nil {
		fail("%s", err)
	}
	//
	fmt.Fprintf(os.Stderr, "# Writing output to: %s\n", path)
	//
	return output
}

// closeTraceFile flushes and closes an output trace, failing outright when
// the final flush fails (e.g. disk full).
func closeTraceFile(output *trace.Writer) {
	if err := output.Close(); err != nil {
		fail("%s: %s", output.Path(), err)
	}
}

// requireOut ensures an output path was supplied whenever one will be
// written, before any file is touched.
func requireOut(out string, dryRun bool) {
	if out == "" && !dryRun {
		fail("--out is required (or use --dry-run)")
	}
}
