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

	"github.com/consensys/go-tracedit/pkg/splice"
	"github.com/spf13/cobra"
)

// insertCmd copies a source range of records and inserts it at a given
// position, preserving every original record (the output grows by the range
// length).
var insertCmd = &cobra.Command{
	Use:   "insert [flags]",
	Short: "Insert a range of trace records at a given position.",
	Long: `Copy the records of [src-begin, src-end) and insert them
	immediately before index insert-at.  All original records are
	preserved, so the output grows by the source range length.  With
	--dry-run, validation runs and the output index mapping is printed,
	but nothing is written.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			out      = GetString(cmd, "out")
			dryRun   = GetFlag(cmd, "dry-run")
			src      = splice.NewRange("src", GetInt64(cmd, "src-begin"), GetInt64(cmd, "src-end"))
			insertAt = GetInt64(cmd, "insert-at")
		)
		//
		requireOut(out, dryRun)
		//
		input := openTraceFile(GetString(cmd, "in"))
		defer input.Close()
		//
		plan, err := splice.PlanInsert(input, src, insertAt)
		//
		if err != nil {
			fail("%s", err)
		}
		//
		fmt.Fprintf(os.Stderr, "# Source range: %s (%d records)\n", plan.Src, plan.Src.Len())
		fmt.Fprintf(os.Stderr, "# Insert at: %d (records inserted before this index)\n", plan.InsertAt)
		fmt.Fprintf(os.Stderr, "# Output records: %d (input + %d)\n", plan.OutputRecords(), plan.Src.Len())
		fmt.Fprintf(os.Stderr, "#\n")
		//
		if dryRun {
			printMapping(plan.Mapping())
			return
		}
		//
		output := createTraceFile(out)
		//
		if err := plan.Run(input, output); err != nil {
			fail("%s", err)
		}
		//
		closeTraceFile(output)
		//
		fmt.Fprintf(os.Stderr, "# Wrote %d output records\n", plan.OutputRecords())
		fmt.Fprintf(os.Stderr, "# Done.\n")
	},
}

// printMapping prints a dry-run's output index mapping to stderr.
func printMapping(mapping []string) {
	fmt.Fprintf(os.Stderr, "# Dry run: validation passed, no output written.\n")
	fmt.Fprintf(os.Stderr, "#\n")
	fmt.Fprintf(os.Stderr, "# Output index mapping:\n")
	//
	for _, line := range mapping {
		fmt.Fprintf(os.Stderr, "#   %s\n", line)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(insertCmd)
	insertCmd.Flags().String("in", "", "input trace file")
	insertCmd.Flags().String("out", "", "output trace file (required unless --dry-run)")
	insertCmd.Flags().Int64("src-begin", 0, "source range start index, inclusive")
	insertCmd.Flags().Int64("src-end", 0, "source range end index, exclusive")
	insertCmd.Flags().Int64("insert-at", 0, "insertion point (records are inserted before this index)")
	insertCmd.Flags().Bool("dry-run", false, "validate ranges without writing output")
	insertCmd.MarkFlagRequired("in")
	insertCmd.MarkFlagRequired("src-begin")
	insertCmd.MarkFlagRequired("src-end")
	insertCmd.MarkFlagRequired("insert-at")
}
