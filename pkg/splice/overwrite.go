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
	"fmt"

	"github.com/consensys/go-tracedit/pkg/trace"
	log "github.com/sirupsen/logrus"
)

// OverwritePlan describes a validated in-range overwrite: the records of Src
// replace those in the destination window [DstBegin, DstBegin+Src.Len()),
// leaving the output with exactly the same record count as the input.  The
// fixed length is the property distinguishing overwrite from insert.
type OverwritePlan struct {
	// Total record count of the input trace the plan was validated against.
	Total int64
	// Source range to be buffered and copied.
	Src Range
	// First index of the destination window.
	DstBegin int64
}

// PlanOverwrite validates a requested overwrite against the given input
// trace.  Source and destination windows may overlap: the source is captured
// into memory before any output is written, so self-overlap cannot corrupt
// the copied data.  Overlap is still flagged as an advisory.
func PlanOverwrite(input *trace.Trace, src Range, dstBegin int64) (OverwritePlan, error) {
	var (
		plan  OverwritePlan
		total = input.TotalRecords()
	)
	//
	if err := Validate(total, src); err != nil {
		return plan, err
	}
	//
	dst := NewRange("dst", dstBegin, dstBegin+src.Len())
	//
	if err := Validate(total, dst); err != nil {
		return plan, err
	}
	// Advise on (legal but surprising) overlap, ignoring the degenerate
	// case of overwriting a range with itself
	if src.Overlaps(dst) && src.Begin != dst.Begin {
		log.Warnf("source range %s overlaps destination range %s", src, dst)
	}
	//
	return OverwritePlan{total, src, dstBegin}, nil
}

// Dst returns the destination window of this plan.
func (p *OverwritePlan) Dst() Range {
	return NewRange("dst", p.DstBegin, p.DstBegin+p.Src.Len())
}

// Mapping describes how output index ranges map back onto the input, in the
// form printed by a dry-run.
func (p *OverwritePlan) Mapping() []string {
	dst := p.Dst()
	//
	return []string{
		fmt.Sprintf("[0, %d) -> original [0, %d)", dst.Begin, dst.Begin),
		fmt.Sprintf("%s -> copied from %s", dst, p.Src),
		fmt.Sprintf("[%d, %d) -> original [%d, %d)", dst.End, p.Total, dst.End, p.Total),
	}
}

// Run executes the plan: the source range is loaded fully into memory, then
// the input is streamed forward with records inside the destination window
// substituted by the buffered source records.
func (p *OverwritePlan) Run(input *trace.Trace, output *trace.Writer) error {
	// Capture source range up front
	buffered, err := input.ReadRange(p.Src.Begin, p.Src.End)
	//
	if err != nil {
		return err
	}
	//
	var (
		reader = input.Records()
		dst    = p.Dst()
	)
	//
	for {
		record, ok, err := reader.Next()
		//
		if err != nil {
			return err
		} else if !ok {
			break
		}
		// Substitute records within the destination window
		if index := reader.Index() - 1; dst.Contains(index) {
			record = buffered[index-dst.Begin]
		}
		//
		if err := output.Append(record); err != nil {
			return err
		}
	}
	//
	return nil
}
