// SPDX-License-Identifier: MIT
//
// solve.go — exact branch-and-bound search over a sparse binary ILP.
//
// Rationale (succinct), mirrored from the teacher's TSPBranchAndBound:
//  1. A dedicated engine struct (bbEngine) instead of closures keeps search
//     state explicit and the hot path predictable.
//  2. Branching order: free variables are visited in ascending objective
//     coefficient (index tiebreak) — every objective coefficient spec §4.3
//     produces is non-negative, so cheap variables are tried first and tend
//     to tighten the incumbent quickly.
//  3. Lower bound: LB = costSoFar (the cost already committed by fixed and
//     branched-true variables). This is admissible because no remaining
//     variable can contribute negative cost, mirroring the teacher's
//     "LB = costSoFar + LB_extra" shape with LB_extra = 0 — a valid, if
//     weak, bound. Pruning additionally comes from constraint bounds
//     propagation (constraintFeasible), which is what actually keeps the
//     search tractable on this model's sparse, mostly-disjoint constraints.
//  4. Soft time limit: deadline checked every 4096 node events.
//
// Complexity: worst case exponential (exact search); per node, O(terms) per
// affected constraint for the newly branched variable.
package mip

import (
	"math"
	"sort"
	"time"
)

const eps = 1e-9

// Status is the terminal outcome of a Solve call.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusTimeLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeLimit:
		return "time_limit"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Solve call.
type Result struct {
	Status Status
	// Values holds the 0/1 assignment per variable index; valid only when
	// Status == StatusOptimal.
	Values    []int8
	Objective float64
}

// Options configures the search.
type Options struct {
	// TimeLimit bounds wall-clock search time; zero means unlimited.
	TimeLimit time.Duration
}

// bbEngine holds all search state and policy, analogous to tsp.bbEngine.
type bbEngine struct {
	m *Model
	n int

	assigned []int8 // -1 unassigned, else 0/1, indexed by variable index
	order    []int  // branch order over free (unfixed) variable indices

	useDeadline bool
	deadline    time.Time
	steps       int
	timedOut    bool

	best     []int8
	bestCost float64
	foundAny bool
}

func (e *bbEngine) deadlineCheck() bool {
	e.steps++
	if !e.useDeadline || (e.steps&4095) != 0 {
		return false
	}
	if time.Now().After(e.deadline) {
		e.timedOut = true
		return true
	}
	return false
}

// constraintFeasible reports whether constraint cidx can still be satisfied
// given the current (possibly partial) assignment, via interval bounds
// propagation: every unassigned variable contributes its most favorable
// extreme (0 or 1, whichever the coefficient's sign prefers) to minSum/maxSum.
func (e *bbEngine) constraintFeasible(cidx int) bool {
	c := &e.m.cons[cidx]
	var minSum, maxSum float64
	for idx, coeff := range c.Terms {
		a := e.assigned[idx]
		if a >= 0 {
			v := coeff * float64(a)
			minSum += v
			maxSum += v
			continue
		}
		if coeff > 0 {
			maxSum += coeff
		} else {
			minSum += coeff
		}
	}
	if c.Rel == EQ {
		return minSum <= c.RHS+eps && maxSum >= c.RHS-eps
	}
	return minSum <= c.RHS+eps
}

func (e *bbEngine) feasibleAfterAssign(idx int) bool {
	for _, cidx := range e.m.varCons[idx] {
		if !e.constraintFeasible(cidx) {
			return false
		}
	}
	return true
}

func (e *bbEngine) dfs(pos int, costSoFar float64) {
	if e.timedOut || e.deadlineCheck() {
		return
	}
	if costSoFar >= e.bestCost-eps {
		return
	}
	if pos == len(e.order) {
		e.bestCost = costSoFar
		copy(e.best, e.assigned)
		e.foundAny = true
		return
	}

	idx := e.order[pos]
	for _, val := range [2]int8{1, 0} {
		e.assigned[idx] = val
		var delta float64
		if val == 1 {
			delta = e.m.objective[idx]
		}
		if e.feasibleAfterAssign(idx) {
			e.dfs(pos+1, costSoFar+delta)
		}
		e.assigned[idx] = -1
	}
}

// Solve runs exact branch-and-bound search over m and returns the optimal
// assignment, or StatusInfeasible / StatusTimeLimit.
func Solve(m *Model, opts Options) Result {
	n := m.NumVars()
	if n == 0 {
		return Result{Status: StatusOptimal}
	}

	e := &bbEngine{m: m, n: n}
	e.assigned = make([]int8, n)
	for i := range e.assigned {
		e.assigned[i] = -1
	}
	e.best = make([]int8, n)
	e.bestCost = math.Inf(1)

	var free []int
	var fixedCost float64
	for i, v := range m.vars {
		if v.fixed {
			e.assigned[i] = int8(v.value)
			if v.value == 1 {
				fixedCost += m.objective[i]
			}
			continue
		}
		free = append(free, i)
	}

	// Verify the fixed assignment alone does not already violate a
	// constraint (e.g. two conflicting pre-fixed triples sharing a slot).
	checked := make(map[int]bool)
	for i, v := range m.vars {
		if !v.fixed {
			continue
		}
		for _, cidx := range m.varCons[i] {
			if checked[cidx] {
				continue
			}
			checked[cidx] = true
			if !e.constraintFeasible(cidx) {
				return Result{Status: StatusInfeasible}
			}
		}
	}

	sort.Slice(free, func(a, b int) bool {
		ca, cb := m.objective[free[a]], m.objective[free[b]]
		if ca != cb {
			return ca < cb
		}
		return free[a] < free[b]
	})
	e.order = free

	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}

	e.dfs(0, fixedCost)

	if e.timedOut {
		return Result{Status: StatusTimeLimit}
	}
	if !e.foundAny {
		return Result{Status: StatusInfeasible}
	}
	return Result{Status: StatusOptimal, Values: e.best, Objective: e.bestCost}
}
