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

// insertItersCmd repeats a ratio-addressed insertion across every active
// iteration of a regular A/B trace structure.
var insertItersCmd = &cobra.Command{
	Use:   "insert-iters [flags]",
	Short: "Insert B chunks at A positions across all iterations.",
	Long: `Apply the same ratio-addressed insertion (a-pos, b-ratio) to every
	every-th iteration of a regular trace structure: iterations
	repetitions of an A-segment of a-len records followed by a B-segment
	of b-len records, starting at first-a-begin.  Memory use is bounded
	by one iteration's insert payload regardless of the iteration count.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			out    = GetString(cmd, "out")
			dryRun = GetFlag(cmd, "dry-run")
			aPos   = GetFloat64(cmd, "a-pos")
			bRatio = GetFloat64(cmd, "b-ratio")
			layout = splice.Layout{
				FirstABegin: GetInt64(cmd, "first-a-begin"),
				ALen:        GetInt64(cmd, "a-len"),
				BLen:        GetInt64(cmd, "b-len"),
				Iterations:  GetInt64(cmd, "iterations"),
				Every:       GetInt64(cmd, "every"),
			}
		)
		//
		requireOut(out, dryRun)
		//
		input := openTraceFile(GetString(cmd, "in"))
		defer input.Close()
		//
		plan, err := splice.PlanPeriodic(input, layout, aPos, bRatio)
		//
		if err != nil {
			fail("%s", err)
		}
		//
		fmt.Fprintf(os.Stderr, "# Structure:\n")
		fmt.Fprintf(os.Stderr, "#   first-a-begin = %d\n", layout.FirstABegin)
		fmt.Fprintf(os.Stderr, "#   a-len = %d, b-len = %d (iter-len = %d)\n",
			layout.ALen, layout.BLen, layout.IterLen())
		fmt.Fprintf(os.Stderr, "#   iterations = %d\n", layout.Iterations)
		fmt.Fprintf(os.Stderr, "# Parameters: a-pos = %.4f, b-ratio = %.4f, every = %d\n",
			aPos, bRatio, layout.Every)
		fmt.Fprintf(os.Stderr, "#\n")
		fmt.Fprintf(os.Stderr, "# Per-iteration insert: %d records at A+%d\n", plan.InsertLen, plan.AOffset)
		fmt.Fprintf(os.Stderr, "# Active iterations: %d of %d\n", plan.ActiveIterations(), layout.Iterations)
		fmt.Fprintf(os.Stderr, "# Total insertions: %d x %d = %d records\n",
			plan.ActiveIterations(), plan.InsertLen, plan.TotalInserted())
		fmt.Fprintf(os.Stderr, "# Output records: %d + %d = %d\n",
			plan.Total, plan.TotalInserted(), plan.OutputRecords())
		fmt.Fprintf(os.Stderr, "#\n")
		//
		if dryRun {
			printPoints(plan)
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

// printPoints prints the first few computed insertion points of a dry-run.
func printPoints(plan *splice.PeriodicPlan) {
	fmt.Fprintf(os.Stderr, "# Dry run: validation passed, no output written.\n")
	fmt.Fprintf(os.Stderr, "#\n")
	fmt.Fprintf(os.Stderr, "# First insertion points (input indices):\n")
	//
	points := plan.Points(5)
	//
	for _, point := range points {
		fmt.Fprintf(os.Stderr, "#   iter %d: insert-at=%d, src=%s\n",
			point.Iteration, point.InsertAt, point.Src)
	}
	//
	if remaining := plan.ActiveIterations() - int64(len(points)); remaining > 0 {
		fmt.Fprintf(os.Stderr, "#   ... (%d more)\n", remaining)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(insertItersCmd)
	insertItersCmd.Flags().String("in", "", "input trace file")
	insertItersCmd.Flags().String("out", "", "output trace file (required unless --dry-run)")
	insertItersCmd.Flags().Int64("first-a-begin", 0, "first A-segment start index")
	insertItersCmd.Flags().Int64("a-len", 0, "length of each A-segment in records")
	insertItersCmd.Flags().Int64("b-len", 0, "length of each B-segment in records")
	insertItersCmd.Flags().Int64("iterations", 0, "total number of iterations")
	insertItersCmd.Flags().Float64("a-pos", 0, "position within A to insert at (0.0-1.0)")
	insertItersCmd.Flags().Float64("b-ratio", 0, "fraction of B to insert (0.0-1.0)")
	insertItersCmd.Flags().Int64("every", 1, "insert every Nth iteration (0 = validation only)")
	insertItersCmd.Flags().Bool("dry-run", false, "validate and show plan without writing")
	insertItersCmd.MarkFlagRequired("in")
	insertItersCmd.MarkFlagRequired("first-a-begin")
	insertItersCmd.MarkFlagRequired("a-len")
	insertItersCmd.MarkFlagRequired("b-len")
	insertItersCmd.MarkFlagRequired("iterations")
	insertItersCmd.MarkFlagRequired("a-pos")
	insertItersCmd.MarkFlagRequired("b-ratio")
}
