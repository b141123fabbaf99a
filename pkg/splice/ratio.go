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

// RatioError indicates that a fractional parameter fell outside its permitted
// interval.  Ratios are checked before any file is touched.
type RatioError struct {
	// Name of the offending parameter (e.g. "a-pos").
	Name string
	// Offending value.
	Value float64
	// Permitted interval, in interval notation.
	Interval string
}

func (p *RatioError) Error() string {
	return fmt.Sprintf("%s (%.4f) must be in range %s", p.Name, p.Value, p.Interval)
}

// ValidateRatios checks the two fractional parameters of ratio-addressed
// insertion: aPos must lie in [0, 1] and bRatio in (0, 1].
func ValidateRatios(aPos float64, bRatio float64) error {
	if aPos < 0.0 || aPos > 1.0 {
		return &RatioError{"a-pos", aPos, "[0.0, 1.0]"}
	}
	//
	if bRatio <= 0.0 || bRatio > 1.0 {
		return &RatioError{"b-ratio", bRatio, "(0.0, 1.0]"}
	}
	//
	return nil
}

// insertLength computes the number of records addressed by a fractional
// length, truncating towards zero but inserting at least one record.  The
// minimum-of-one floor is a deliberate policy carried over from the original
// experiment tooling, and must be preserved for output parity.
func insertLength(length int64, ratio float64) int64 {
	n := int64(float64(length) * ratio)
	//
	if n == 0 {
		n = 1
	}
	//
	return n
}

// PlanRatioInsert builds an insertion plan from fractional positions: the
// first bRatio fraction of the B interval is inserted at the aPos fraction
// point of the A interval.  This lets an operator express e.g. "insert half
// of B at the middle of A" without manual index arithmetic.  Truncating
// (floor) arithmetic is used throughout.
func PlanRatioInsert(input *trace.Trace, a Range, b Range, aPos float64, bRatio float64) (InsertPlan, error) {
	var (
		plan  InsertPlan
		total = input.TotalRecords()
	)
	//
	if err := ValidateRatios(aPos, bRatio); err != nil {
		return plan, err
	}
	//
	if err := Validate(total, a, b); err != nil {
		return plan, err
	}
	// Resolve fractional addressing
	var (
		insertAt = a.Begin + int64(float64(a.Len())*aPos)
		src      = NewRange("src", b.Begin, b.Begin+insertLength(b.Len(), bRatio))
	)
	// Advise when the insertion point escapes A (possible when aPos == 1.0)
	if insertAt < a.Begin || insertAt > a.End {
		log.Warnf("insertion point (%d) is outside A range %s", insertAt, a)
	}
	//
	return PlanInsert(input, src, insertAt)
}
