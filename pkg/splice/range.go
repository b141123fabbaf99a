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
)

// Range is a labelled, half-open interval [Begin, End) over record indices.
// The label only serves error reporting, so a caller can tell which of
// several ranges a diagnostic refers to.
type Range struct {
	// Label identifying this range in diagnostics (e.g. "src", "A").
	Label string
	// First index included in the range.
	Begin int64
	// First index beyond the range.
	End int64
}

// NewRange constructs a new labelled range.
func NewRange(label string, begin int64, end int64) Range {
	return Range{label, begin, end}
}

// Len returns the number of indices covered by this range.
func (p Range) Len() int64 {
	return p.End - p.Begin
}

// Contains checks whether the given index lies within this range.
func (p Range) Contains(index int64) bool {
	return index >= p.Begin && index < p.End
}

// Overlaps checks whether this range and the given range intersect.
func (p Range) Overlaps(other Range) bool {
	return p.Begin < other.End && p.End > other.Begin
}

func (p Range) String() string {
	return fmt.Sprintf("[%d, %d)", p.Begin, p.End)
}

// RangeError indicates that a range (or insertion point) failed validation
// against the total record count of the trace it was drawn from.  The message
// identifies both the offending range and the violated bound.
type RangeError struct {
	// Label of the offending range.
	Label string
	// Description of the violated bound.
	Message string
}

func (p *RangeError) Error() string {
	return fmt.Sprintf("%s: %s", p.Label, p.Message)
}

// Validate checks every given range against the total record count, returning
// a RangeError for the first violation encountered (begin < 0, begin >= end,
// or end > total).  Validation is pure: it performs no I/O.
func Validate(total int64, ranges ...Range) error {
	for _, r := range ranges {
		switch {
		case r.Begin < 0:
			return &RangeError{r.Label,
				fmt.Sprintf("begin (%d) must be non-negative", r.Begin)}
		case r.Begin >= r.End:
			return &RangeError{r.Label,
				fmt.Sprintf("begin (%d) must be less than end (%d)", r.Begin, r.End)}
		case r.End > total:
			return &RangeError{r.Label,
				fmt.Sprintf("end (%d) exceeds total records (%d)", r.End, total)}
		}
	}
	//
	return nil
}

// ValidatePoint checks that a single index (e.g. an insertion point) lies
// within [0, total].  Note total itself is permitted, since inserting at the
// very end of a trace is a valid operation.
func ValidatePoint(total int64, label string, index int64) error {
	switch {
	case index < 0:
		return &RangeError{label, fmt.Sprintf("index (%d) must be non-negative", index)}
	case index > total:
		return &RangeError{label, fmt.Sprintf("index (%d) exceeds total records (%d)", index, total)}
	}
	//
	return nil
}
