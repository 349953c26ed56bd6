// SPDX-License-Identifier: MIT
package mip

import "fmt"

// VarKey names one decision variable. mip is domain-agnostic; the ILP
// builder (internal/ilp) is responsible for giving Key meaningful content.
// The solver only ever compares keys for identity via the index map.
type VarKey struct {
	Slot, Recruiter, Candidate string
}

// Relation is the comparison operator a Constraint enforces. Spec §4.3's
// seven constraint families use only ≤ and =; there is deliberately no ≥
// variant since none of them need one (a ≥ b is -a ≤ -b).
type Relation int

const (
	LE Relation = iota
	EQ
)

func (r Relation) String() string {
	if r == EQ {
		return "="
	}
	return "<="
}

// Constraint is one linear row Σ Terms[i]·x[i] Rel RHS.
type Constraint struct {
	Label string
	Terms map[int]float64
	Rel   Relation
	RHS   float64
}

type variable struct {
	key   VarKey
	fixed bool
	value int
}

// Model is a sparse, binary-variable ILP: never materialize a dense
// variable cube, only the (s,c,n) triples that are actually reachable
// (spec §9 "Sparse variable construction").
type Model struct {
	vars      []variable
	index     map[VarKey]int
	objective []float64
	cons      []Constraint

	// varCons[i] lists the indices into cons that reference variable i,
	// precomputed once so Solve's DFS can check only affected constraints
	// when a variable is branched on, instead of rescanning the whole model.
	varCons [][]int
}

// NewModel returns an empty model ready to accept variables and constraints.
func NewModel() *Model {
	return &Model{index: make(map[VarKey]int)}
}

// AddBinaryVar registers a fresh binary variable and returns its index.
// Keys are never deduplicated here — the ILP builder is the sole authority
// on which (s,c,n) triples exist, so a duplicate Add is a builder bug, not
// something mip should silently paper over.
func (m *Model) AddBinaryVar(key VarKey) int {
	idx := len(m.vars)
	m.vars = append(m.vars, variable{key: key})
	m.objective = append(m.objective, 0)
	m.index[key] = idx
	m.varCons = append(m.varCons, nil)
	return idx
}

// NumVars returns the number of registered variables.
func (m *Model) NumVars() int { return len(m.vars) }

// Lookup returns the index of the variable registered under key, if any.
func (m *Model) Lookup(key VarKey) (int, bool) {
	idx, ok := m.index[key]
	return idx, ok
}

// VarKey returns the key a variable index was registered with.
func (m *Model) VarKey(idx int) VarKey { return m.vars[idx].key }

// SetObjective sets the minimization coefficient for variable idx.
func (m *Model) SetObjective(idx int, coeff float64) {
	m.objective[idx] = coeff
}

// AddConstraint appends one linear constraint. terms maps variable index to
// coefficient; zero coefficients may be omitted.
func (m *Model) AddConstraint(label string, terms map[int]float64, rel Relation, rhs float64) {
	cidx := len(m.cons)
	m.cons = append(m.cons, Constraint{Label: label, Terms: terms, Rel: rel, RHS: rhs})
	for i := range terms {
		m.varCons[i] = append(m.varCons[i], cidx)
	}
}

// Fix pins a variable to a required value (spec §4.3 constraints 6 and 7:
// pre-fixed pinning, skip-initial). Fixing the same variable twice with
// different values is a caller bug (ErrConflictingFix); fixing it twice
// with the same value is a no-op.
func (m *Model) Fix(idx int, value int) error {
	if idx < 0 || idx >= len(m.vars) {
		return fmt.Errorf("%w: %d", ErrUnknownVar, idx)
	}
	v := &m.vars[idx]
	if v.fixed && v.value != value {
		return fmt.Errorf("%w: var %v already fixed to %d, requested %d", ErrConflictingFix, v.key, v.value, value)
	}
	v.fixed = true
	v.value = value
	return nil
}
