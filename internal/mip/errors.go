package mip

import "errors"

// ErrUnknownVar is returned when a caller references a variable index that
// was never created by AddBinaryVar.
var ErrUnknownVar = errors.New("mip: unknown variable index")

// ErrConflictingFix is returned when Fix is called twice on the same
// variable with two different values.
var ErrConflictingFix = errors.New("mip: conflicting fixed value for variable")

// ErrNoVariables names the zero-variable case, in which every constraint
// spec §4.3 describes collapses to 0 ≤ 0 and the only feasible "solution"
// is the empty assignment. Solve does not return it: it reports such a
// model as StatusOptimal with no values.
var ErrNoVariables = errors.New("mip: model has no variables")
