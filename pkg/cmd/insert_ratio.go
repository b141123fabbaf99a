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

// insertRatioCmd inserts a fraction of a B interval at a fractional position
// of an A interval, sparing the operator the index arithmetic.
var insertRatioCmd = &cobra.Command{
	Use:   "insert-ratio [flags]",
	Short: "Insert a fraction of B at a fractional position of A.",
	Long: `Insert the first b-ratio fraction of the B interval at the a-pos
	fraction point of the A interval (0.0 = start of A, 0.5 = middle,
	1.0 = end).  Positions are resolved with truncating arithmetic; at
	least one record is always inserted.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			out    = GetString(cmd, "out")
			dryRun = GetFlag(cmd, "dry-run")
			a      = splice.NewRange("A", GetInt64(cmd, "a-begin"), GetInt64(cmd, "a-end"))
			b      = splice.NewRange("B", GetInt64(cmd, "b-begin"), GetInt64(cmd, "b-end"))
			aPos   = GetFloat64(cmd, "a-pos")
			bRatio = GetFloat64(cmd, "b-ratio")
		)
		//
		requireOut(out, dryRun)
		//
		input := openTraceFile(GetString(cmd, "in"))
		defer input.Close()
		//
		plan, err := splice.PlanRatioInsert(input, a, b, aPos, bRatio)
		//
		if err != nil {
			fail("%s", err)
		}
		//
		fmt.Fprintf(os.Stderr, "# A range: %s (%d records)\n", a, a.Len())
		fmt.Fprintf(os.Stderr, "# B range: %s (%d records)\n", b, b.Len())
		fmt.Fprintf(os.Stderr, "# Parameters: a-pos = %.4f, b-ratio = %.4f\n", aPos, bRatio)
		fmt.Fprintf(os.Stderr, "#\n")
		fmt.Fprintf(os.Stderr, "# Resolved insert: %s at %d\n", plan.Src, plan.InsertAt)
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

//nolint:errcheck
func init() {
	rootCmd.AddCommand(insertRatioCmd)
	insertRatioCmd.Flags().String("in", "", "input trace file")
	insertRatioCmd.Flags().String("out", "", "output trace file (required unless --dry-run)")
	insertRatioCmd.Flags().Int64("a-begin", 0, "A interval start index, inclusive")
	insertRatioCmd.Flags().Int64("a-end", 0, "A interval end index, exclusive")
	insertRatioCmd.Flags().Int64("b-begin", 0, "B interval start index, inclusive")
	insertRatioCmd.Flags().Int64("b-end", 0, "B interval end index, exclusive")
	insertRatioCmd.Flags().Float64("a-pos", 0, "position within A to insert at (0.0-1.0)")
	insertRatioCmd.Flags().Float64("b-ratio", 0, "fraction of B to insert (0.0-1.0)")
	insertRatioCmd.Flags().Bool("dry-run", false, "validate and show resolved values without writing")
	insertRatioCmd.MarkFlagRequired("in")
	insertRatioCmd.MarkFlagRequired("a-begin")
	insertRatioCmd.MarkFlagRequired("a-end")
	insertRatioCmd.MarkFlagRequired("b-begin")
	insertRatioCmd.MarkFlagRequired("b-end")
	insertRatioCmd.MarkFlagRequired("a-pos")
	insertRatioCmd.MarkFlagRequired("b-ratio")
}
