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

// Progress interval (in records) for streaming over very large traces.
const progressInterval = 50_000_000

// Layout describes the regular shape of a trace produced by a known
// iterative workload: Iterations repetitions, each consisting of an A-segment
// of ALen records followed by a B-segment of BLen records, the first
// A-segment beginning at FirstABegin.  Every attributes insertions to every
// Every-th iteration, with zero meaning "validate only, insert nothing".
// This is purely a derived addressing scheme over the input trace, not a
// stored entity.
type Layout struct {
	// Index at which the first A-segment begins.
	FirstABegin int64
	// Number of records in each A-segment.
	ALen int64
	// Number of records in each B-segment.
	BLen int64
	// Number of repetitions of the A/B structure.
	Iterations int64
	// Insert on every Every-th iteration (0 = none, 1 = all).
	Every int64
}

// IterLen returns the record length of one full iteration.
func (p *Layout) IterLen() int64 {
	return p.ALen + p.BLen
}

// End returns the index just beyond the last iteration.
func (p *Layout) End() int64 {
	return p.FirstABegin + (p.Iterations * p.IterLen())
}

// active checks whether the given iteration receives an insertion.
func (p *Layout) active(iteration int64) bool {
	return p.Every > 0 && iteration%p.Every == 0
}

// InsertionPoint identifies one pending insertion of the periodic splicer:
// upon the forward cursor reaching InsertAt, the records of Src are fetched
// out-of-band from the input and emitted.
type InsertionPoint struct {
	// Iteration this insertion belongs to.
	Iteration int64
	// Input index the source records are inserted before.
	InsertAt int64
	// Per-iteration source range within the B-segment.
	Src Range
}

// PeriodicPlan describes a validated periodic splice: the ratio-addressed
// insertion (APos, BRatio) of the single-range splicer, repeated across every
// active iteration of the layout.  Memory use is bounded by one iteration's
// insert payload regardless of the iteration count.
type PeriodicPlan struct {
	Layout
	// Fractional position within each A-segment to insert at.
	APos float64
	// Fraction of each B-segment to insert.
	BRatio float64
	// Total record count of the input trace the plan was validated against.
	Total int64
	// Number of records inserted per active iteration.
	InsertLen int64
	// Offset of the insertion point within each A-segment.
	AOffset int64
}

// PlanPeriodic validates a requested periodic splice against the given input
// trace.  Beyond ratio and structural-parameter checks, the whole addressed
// region (through the end of the last iteration) must lie inside the file.
func PlanPeriodic(input *trace.Trace, layout Layout, aPos float64, bRatio float64) (*PeriodicPlan, error) {
	total := input.TotalRecords()
	//
	if err := ValidateRatios(aPos, bRatio); err != nil {
		return nil, err
	}
	//
	switch {
	case layout.FirstABegin < 0:
		return nil, &RangeError{"first-a-begin",
			fmt.Sprintf("index (%d) must be non-negative", layout.FirstABegin)}
	case layout.ALen <= 0 || layout.BLen <= 0:
		return nil, &RangeError{"layout",
			fmt.Sprintf("segment lengths (%d, %d) must be positive", layout.ALen, layout.BLen)}
	case layout.Iterations <= 0:
		return nil, &RangeError{"iterations",
			fmt.Sprintf("count (%d) must be positive", layout.Iterations)}
	case layout.Every < 0:
		return nil, &RangeError{"every",
			fmt.Sprintf("period (%d) must be non-negative", layout.Every)}
	case layout.End() > total:
		return nil, &RangeError{"layout",
			fmt.Sprintf("structure exceeds trace bounds (last iteration ends at %d, total records %d)",
				layout.End(), total)}
	}
	//
	return &PeriodicPlan{
		Layout:    layout,
		APos:      aPos,
		BRatio:    bRatio,
		Total:     total,
		InsertLen: insertLength(layout.BLen, bRatio),
		AOffset:   int64(float64(layout.ALen) * aPos),
	}, nil
}

// ActiveIterations returns the number of iterations receiving an insertion.
func (p *PeriodicPlan) ActiveIterations() int64 {
	if p.Every == 0 {
		return 0
	}
	// Ceiling division over the selected iterations
	return ((p.Iterations - 1) / p.Every) + 1
}

// TotalInserted returns the total number of records added to the output.
func (p *PeriodicPlan) TotalInserted() int64 {
	return p.ActiveIterations() * p.InsertLen
}

// OutputRecords returns the record count the output trace will have.
func (p *PeriodicPlan) OutputRecords() int64 {
	return p.Total + p.TotalInserted()
}

// point resolves the insertion point of the given iteration.
func (p *PeriodicPlan) point(iteration int64) InsertionPoint {
	var (
		aBegin = p.FirstABegin + (iteration * p.IterLen())
		bBegin = aBegin + p.ALen
	)
	//
	return InsertionPoint{
		Iteration: iteration,
		InsertAt:  aBegin + p.AOffset,
		Src:       NewRange("src", bBegin, bBegin+p.InsertLen),
	}
}

// nextPoint finds the first active insertion point at or after the given
// iteration, or false when none remain.
func (p *PeriodicPlan) nextPoint(iteration int64) (InsertionPoint, bool) {
	for ; iteration < p.Iterations; iteration++ {
		if p.active(iteration) {
			return p.point(iteration), true
		}
	}
	//
	return InsertionPoint{}, false
}

// Points returns the first max active insertion points (all of them when max
// is negative).  A dry-run prints a handful of these so a configuration can
// be sanity-checked against a multi-gigabyte trace before committing to the
// full rewrite.
func (p *PeriodicPlan) Points(max int) []InsertionPoint {
	var points []InsertionPoint
	//
	point, ok := p.nextPoint(0)
	//
	for ok && (max < 0 || len(points) < max) {
		points = append(points, point)
		point, ok = p.nextPoint(point.Iteration + 1)
	}
	//
	return points
}

// Run executes the plan as a single forward pass over the input combined with
// out-of-band fetches: a single pending insertion point is held as lookahead;
// when the forward cursor reaches it, that iteration's source records are
// fetched from the (immutable) input, emitted, and streaming resumes.  Only
// one iteration's payload is buffered at a time.  Because source records are
// always fetched from the input file rather than the partially written
// output, a source range can never observe earlier insertions.
func (p *PeriodicPlan) Run(input *trace.Trace, output *trace.Writer) error {
	var (
		reader     = input.Records()
		insertions = int64(0)
	)
	// First pending insertion
	pending, ok := p.nextPoint(0)
	//
	for {
		record, more, err := reader.Next()
		//
		if err != nil {
			return err
		} else if !more {
			break
		}
		// Emit pending payload upon reaching its insertion point
		if index := reader.Index() - 1; ok && index == pending.InsertAt {
			buffered, err := input.ReadRange(pending.Src.Begin, pending.Src.End)
			//
			if err != nil {
				return err
			}
			//
			if err := output.AppendAll(buffered); err != nil {
				return err
			}
			//
			insertions++
			pending, ok = p.nextPoint(pending.Iteration + 1)
		}
		//
		if err := output.Append(record); err != nil {
			return err
		}
		//
		if index := reader.Index(); index%progressInterval == 0 {
			log.Debugf("processed %dM records, %d insertions", index/1_000_000, insertions)
		}
	}
	//
	log.Debugf("performed %d insertions", insertions)
	//
	return nil
}
