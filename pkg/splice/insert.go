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

// InsertPlan describes a validated single-range insertion: the records of Src
// will appear once in the output, immediately before input index InsertAt,
// with every input record preserved in its original order.  Plans are built
// before any output file exists, so a dry-run (or a validation failure) never
// leaves an output artifact behind.
type InsertPlan struct {
	// Total record count of the input trace the plan was validated against.
	Total int64
	// Source range to be buffered and inserted.
	Src Range
	// Input index the source range is inserted before.  May equal Total, in
	// which case the range is appended at end-of-file.
	InsertAt int64
}

// PlanInsert validates a requested insertion against the given input trace,
// returning a plan on success.  An insertion point falling inside the source
// range is permitted (the source is captured into memory before any output is
// written), but flagged as an advisory since it is a surprising
// configuration.
func PlanInsert(input *trace.Trace, src Range, insertAt int64) (InsertPlan, error) {
	var (
		plan  InsertPlan
		total = input.TotalRecords()
	)
	//
	if err := Validate(total, src); err != nil {
		return plan, err
	}
	//
	if err := ValidatePoint(total, "insert-at", insertAt); err != nil {
		return plan, err
	}
	// Advise on (legal but surprising) self-overlap
	if src.Contains(insertAt) {
		log.Warnf("insertion point (%d) lies within source range %s", insertAt, src)
	}
	//
	return InsertPlan{total, src, insertAt}, nil
}

// OutputRecords returns the record count the output trace will have.
func (p *InsertPlan) OutputRecords() int64 {
	return p.Total + p.Src.Len()
}

// Mapping describes how output index ranges map back onto the input, in the
// form printed by a dry-run.
func (p *InsertPlan) Mapping() []string {
	n := p.Src.Len()
	//
	return []string{
		fmt.Sprintf("[0, %d) -> original [0, %d)", p.InsertAt, p.InsertAt),
		fmt.Sprintf("[%d, %d) -> inserted from %s", p.InsertAt, p.InsertAt+n, p.Src),
		fmt.Sprintf("[%d, %d) -> original [%d, %d)", p.InsertAt+n, p.OutputRecords(),
			p.InsertAt, p.Total),
	}
}

// Run executes the plan: the source range is loaded fully into memory (this
// bounds the memory footprint by the range length, not the file size), then
// the input is streamed forward with the buffered range emitted at the
// insertion point.
func (p *InsertPlan) Run(input *trace.Trace, output *trace.Writer) error {
	// Capture source range up front
	buffered, err := input.ReadRange(p.Src.Begin, p.Src.End)
	//
	if err != nil {
		return err
	}
	//
	reader := input.Records()
	//
	for {
		record, ok, err := reader.Next()
		//
		if err != nil {
			return err
		} else if !ok {
			break
		}
		// Emit buffered range upon reaching the insertion point
		if reader.Index()-1 == p.InsertAt {
			if err := output.AppendAll(buffered); err != nil {
				return err
			}
		}
		//
		if err := output.Append(record); err != nil {
			return err
		}
	}
	// End-of-file insertion
	if p.InsertAt == p.Total {
		if err := output.AppendAll(buffered); err != nil {
			return err
		}
	}
	//
	return nil
}
