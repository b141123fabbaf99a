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
	"strings"

	"github.com/consensys/go-tracedit/pkg/trace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// inspectCmd streams the leading records of a trace file and renders each as
// a human-readable line.  Purely diagnostic.
var inspectCmd = &cobra.Command{
	Use:   "inspect [flags]",
	Short: "Dump the leading records of a trace file.",
	Long: `Dump a human-readable rendering of the leading records of a binary
	trace file: record index, instruction pointer, and the non-zero source
	and destination memory addresses.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			path = GetString(cmd, "trace")
			max  = GetInt64(cmd, "max")
		)
		// Clip long lines when dumping straight into a terminal
		width := 0
		if term.IsTerminal(1) {
			width, _, _ = term.GetSize(1)
		}
		//
		input, err := trace.Open(path)
		//
		if err != nil {
			fail("%s", err)
		}
		//
		defer input.Close()
		//
		fmt.Printf("# Trace file: %s\n", path)
		fmt.Printf("# Record size: %d bytes\n", trace.RECORD_SIZE)
		fmt.Printf("# Displaying up to %d records\n", max)
		fmt.Printf("#\n")
		//
		reader := input.Records()
		//
		for reader.Index() < max {
			record, ok, err := reader.Next()
			//
			if err != nil {
				fail("%s", err)
			} else if !ok {
				break
			}
			//
			line := renderRecord(reader.Index()-1, &record)
			//
			if width > 0 && len(line) > width {
				line = line[:width]
			}
			//
			fmt.Println(line)
		}
		//
		fmt.Printf("#\n")
		fmt.Printf("# Read %d records\n", reader.Index())
		//
		if reader.Index() < input.TotalRecords() {
			fmt.Printf("# Stopped at --max limit\n")
		} else {
			fmt.Printf("# Reached end of file\n")
		}
	},
}

// renderRecord renders one record as a single line, listing only the
// non-zero memory addresses.
func renderRecord(index int64, record *trace.Record) string {
	return fmt.Sprintf("idx=%d ip=0x%x src_mem=%s dst_mem=%s", index, record.Ip,
		renderAddresses(record.SourceMemory[:]), renderAddresses(record.DestinationMemory[:]))
}

func renderAddresses(addresses []uint64) string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	first := true
	//
	for _, addr := range addresses {
		if addr != 0 {
			if !first {
				builder.WriteString(",")
			}
			//
			fmt.Fprintf(&builder, "0x%x", addr)
			first = false
		}
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("trace", "", "path to raw binary trace file")
	inspectCmd.Flags().Int64("max", 100, "maximum number of records to display")
	inspectCmd.MarkFlagRequired("trace")
}
