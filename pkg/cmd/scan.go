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

	"github.com/consensys/go-tracedit/pkg/scan"
	"github.com/consensys/go-tracedit/pkg/trace"
	"github.com/spf13/cobra"
)

// scanCmd reports all memory accesses falling within a given address window,
// as CSV on stdout (diagnostics go to stderr).
var scanCmd = &cobra.Command{
	Use:   "scan [flags]",
	Short: "Find memory accesses within an address window.",
	Long: `Scan a binary trace file and report, as CSV, every memory access
	falling within the address window [base, base+size).  Addresses accept
	both decimal and 0x-prefixed hexadecimal forms.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		var (
			path    = GetString(cmd, "trace")
			base    = GetAddress(cmd, "base")
			size    = GetAddress(cmd, "size")
			maxHits = GetUint64(cmd, "max-hits")
		)
		//
		input, err := trace.Open(path)
		//
		if err != nil {
			fail("%s", err)
		}
		//
		defer input.Close()
		//
		fmt.Fprintf(os.Stderr, "# Trace file: %s\n", path)
		fmt.Fprintf(os.Stderr, "# Window: [0x%x, 0x%x) (%d bytes)\n", base, base+size, size)
		//
		if maxHits > 0 {
			fmt.Fprintf(os.Stderr, "# Max hits: %d\n", maxHits)
		}
		//
		fmt.Fprintf(os.Stderr, "#\n")
		// CSV header
		fmt.Println("idx,kind,ip,addr,offset")
		//
		var (
			scanner = scan.New(input, base, size, maxHits)
			hits    = uint64(0)
		)
		//
		for {
			hit, ok, err := scanner.Next()
			//
			if err != nil {
				fail("%s", err)
			} else if !ok {
				break
			}
			//
			fmt.Printf("%d,%s,0x%x,0x%x,0x%x\n", hit.Index, hit.Kind, hit.Ip, hit.Addr, hit.Offset)
			hits++
		}
		//
		fmt.Fprintf(os.Stderr, "#\n")
		fmt.Fprintf(os.Stderr, "# Scanned %d records\n", scanner.Scanned())
		fmt.Fprintf(os.Stderr, "# Found %d accesses\n", hits)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("trace", "", "path to raw binary trace file")
	scanCmd.Flags().String("base", "", "base address of the window (hex or decimal)")
	scanCmd.Flags().String("size", "", "size of the window in bytes (hex or decimal)")
	scanCmd.Flags().Uint64("max-hits", 0, "maximum number of hits to report (0 = unlimited)")
	scanCmd.MarkFlagRequired("trace")
	scanCmd.MarkFlagRequired("base")
	scanCmd.MarkFlagRequired("size")
}
