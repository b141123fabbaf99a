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

// overwriteCmd copies a source range of records over a destination window of
// the same length, leaving the trace length unchanged.
var overwriteCmd = &cobra.Command{
	Use:   "overwrite [flags]",
	Short: "Overwrite a range of trace records in place.",
	Long: `Copy the records of [src-begin, src-end) over the window starting
	at dst-begin.  The total trace length is unchanged (overwrite, not
	insert).  Source and destination may overlap; the source is captured
	before any output is written.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			out      = GetString(cmd, "out")
			dryRun   = GetFlag(cmd, "dry-run")
			src      = splice.NewRange("src", GetInt64(cmd, "src-begin"), GetInt64(cmd, "src-end"))
			dstBegin = GetInt64(cmd, "dst-begin")
		)
		//
		requireOut(out, dryRun)
		//
		input := openTraceFile(GetString(cmd, "in"))
		defer input.Close()
		//
		plan, err := splice.PlanOverwrite(input, src, dstBegin)
		//
		if err != nil {
			fail("%s", err)
		}
		//
		fmt.Fprintf(os.Stderr, "# Source range: %s (%d records)\n", plan.Src, plan.Src.Len())
		fmt.Fprintf(os.Stderr, "# Destination range: %s\n", plan.Dst())
		fmt.Fprintf(os.Stderr, "# Output records: %d (unchanged)\n", plan.Total)
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
		fmt.Fprintf(os.Stderr, "# Wrote %d output records\n", plan.Total)
		fmt.Fprintf(os.Stderr, "# Done.\n")
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(overwriteCmd)
	overwriteCmd.Flags().String("in", "", "input trace file")
	overwriteCmd.Flags().String("out", "", "output trace file (required unless --dry-run)")
	overwriteCmd.Flags().Int64("src-begin", 0, "source range start index, inclusive")
	overwriteCmd.Flags().Int64("src-end", 0, "source range end index, exclusive")
	overwriteCmd.Flags().Int64("dst-begin", 0, "destination start index")
	overwriteCmd.Flags().Bool("dry-run", false, "validate ranges without writing output")
	overwriteCmd.MarkFlagRequired("in")
	overwriteCmd.MarkFlagRequired("src-begin")
	overwriteCmd.MarkFlagRequired("src-end")
	overwriteCmd.MarkFlagRequired("dst-begin")
}
