// SPDX-License-Identifier: MIT
//
// errors.go — sentinel errors and the InputError type for the model package.
//
// Error policy (explicit and strict):
//   - Only sentinel variables (package-level) are exposed for error classes.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Every validation failure is wrapped in *InputError, which carries the
//     offending file, row, column and value so a caller can report it
//     without re-deriving context.
package model

import (
	"errors"
	"fmt"
)

// ErrRecruiterSetMismatch indicates the recruiter set derived from one input
// file disagrees with the set derived from another (Invariant 1, spec §3).
// Builder.Build does not return it: Build takes the union of the recruiters
// named in every input and reports only those that belong to no group
// (ErrUngroupedRecruiter).
var ErrRecruiterSetMismatch = errors.New("model: recruiter set mismatch across inputs")

// ErrNegativePanelCount indicates a panel-capacity cell was negative.
var ErrNegativePanelCount = errors.New("model: panel count is negative")

// ErrBadPanelCount indicates a panel-capacity cell was not an integer.
var ErrBadPanelCount = errors.New("model: panel count is not an integer")

// ErrPreferenceOutOfRange indicates a raw preference rank fell outside [1, |C|].
var ErrPreferenceOutOfRange = errors.New("model: preference rank out of range")

// ErrMissingPreference indicates a non-excluded candidate has no preference row.
var ErrMissingPreference = errors.New("model: candidate missing from preferences")

// ErrDuplicateGroupMembership indicates a recruiter appears in more than one
// panel group (Invariant 4, spec §3: groups partition the recruiter set).
var ErrDuplicateGroupMembership = errors.New("model: recruiter listed in more than one group")

// ErrUngroupedRecruiter indicates a recruiter present in the shortlist/panel
// data never appears in any panel group.
var ErrUngroupedRecruiter = errors.New("model: recruiter is not a member of any group")

// ErrEmptySlots indicates the slot list is empty; position defines order and
// at least one slot is required to schedule anything.
var ErrEmptySlots = errors.New("model: slot list is empty")

// ErrUnknownPreFixedTriple indicates a pre-fixed (slot, recruiter, candidate)
// triple references a recruiter, slot, or candidate absent from the model.
var ErrUnknownPreFixedTriple = errors.New("model: pre-fixed triple references unknown recruiter, slot, or candidate")

// InputError annotates a sentinel error with the offending source location.
type InputError struct {
	File   string      // logical source file, e.g. "Shortlists.csv"
	Row    int         // 1-based row number, 0 if not row-scoped
	Column string      // column/header name, "" if not column-scoped
	Value  interface{} // the offending value, nil if not applicable
	Err    error        // the sentinel this wraps
}

// Error renders a deterministic, single-line message: "<file>:<row> [<col>]: <err> (value=<value>)".
func (e *InputError) Error() string {
	loc := e.File
	if e.Row > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Row)
	}
	if e.Column != "" {
		loc = fmt.Sprintf("%s [%s]", loc, e.Column)
	}
	if e.Value != nil {
		return fmt.Sprintf("%s: %v (value=%v)", loc, e.Err, e.Value)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

// Unwrap exposes the wrapped sentinel for errors.Is/errors.As.
func (e *InputError) Unwrap() error { return e.Err }

// newInputError builds an *InputError, the only constructor validation code
// in this package should use.
func newInputError(file string, row int, column string, value interface{}, sentinel error) *InputError {
	return &InputError{File: file, Row: row, Column: column, Value: value, Err: sentinel}
}
