// SPDX-License-Identifier: MIT
package ilp

import (
	"fmt"
	"sort"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/mip"
	"github.com/campusched/campusched/internal/model"
	"github.com/campusched/campusched/internal/prefrescale"
)

// Build assembles the full sparse binary ILP for one frozen problem: the
// decision variables, the two-branch objective, and all seven constraint
// families of spec §4.3. pref may be nil or empty when in.HasPreferences()
// is false, in which case the cost-only objective branch is used.
func Build(in *model.Input, d *deriv.Derived, pref *prefrescale.Result, opts Options) (*mip.Model, error) {
	m := mip.NewModel()

	active := activeCandidates(in, d)
	slots := in.Slots()
	recruiters := in.Recruiters()

	for _, s := range slots {
		for _, c := range recruiters {
			for _, n := range active {
				if in.Shortlisted(c, n) {
					m.AddBinaryVar(mip.VarKey{Slot: s, Recruiter: c, Candidate: n})
				}
			}
		}
	}

	// A pre-fixed triple may pin a candidate outside Active (e.g. a Buffer
	// candidate with a manual override); constraint 6 is unconditional, so
	// such a variable must still exist to be pinned even though it never
	// entered the sparse Active×shortlist construction above.
	preFixed := append([]model.PreFixedTriple(nil), in.PreFixedTriples()...)
	sort.Slice(preFixed, func(i, j int) bool {
		if preFixed[i].Slot != preFixed[j].Slot {
			return preFixed[i].Slot < preFixed[j].Slot
		}
		if preFixed[i].Recruiter != preFixed[j].Recruiter {
			return preFixed[i].Recruiter < preFixed[j].Recruiter
		}
		return preFixed[i].Candidate < preFixed[j].Candidate
	})
	for _, t := range preFixed {
		key := mip.VarKey{Slot: t.Slot, Recruiter: t.Recruiter, Candidate: t.Candidate}
		if _, ok := m.Lookup(key); !ok {
			m.AddBinaryVar(key)
		}
	}

	setObjective(m, in, d, pref, opts, active)

	addPanelCapacity(m, in, slots, recruiters, active)
	addShortlistGate(m, in, active)
	addMutualExclusion(m, in, slots, recruiters, active)
	addThroughput(m, in, d, opts, active)
	for _, c := range recruiters {
		addContiguityConstraints(m, in, active, c)
	}
	if err := addPreFixedPinning(m, preFixed); err != nil {
		return nil, err
	}
	if err := addSkipInitial(m, in); err != nil {
		return nil, err
	}

	return m, nil
}

// activeCandidates returns in.Candidates() filtered to d.Active, preserving
// the input's sorted order (spec §5 determinism).
func activeCandidates(in *model.Input, d *deriv.Derived) []string {
	var active []string
	for _, n := range in.Candidates() {
		if d.Active[n] {
			active = append(active, n)
		}
	}
	return active
}

// setObjective implements spec §4.3's two-branch objective.
func setObjective(m *mip.Model, in *model.Input, d *deriv.Derived, pref *prefrescale.Result, opts Options, active []string) {
	hasPrefs := in.HasPreferences()
	slots := in.Slots()
	numSlots := len(slots)
	recruiters := in.Recruiters()

	for _, s := range slots {
		cost := d.Cost[s]
		for _, c := range recruiters {
			c0 := in.GroupHead(c)
			for _, n := range active {
				idx, ok := m.Lookup(mip.VarKey{Slot: s, Recruiter: c, Candidate: n})
				if !ok {
					continue
				}
				if !hasPrefs {
					m.SetObjective(idx, float64(cost))
					continue
				}

				denom := float64(d.Crit[n])
				if opts.CritDenominatorPlusOne {
					denom++
				}
				if denom == 0 {
					denom = 1
				}

				rPrime, ok := pref.Of(n, c)
				var w float64
				switch {
				case !ok:
					// Should not happen: Build validation guarantees every
					// non-excluded candidate has a preference row. Fall back
					// to the cost-only weight rather than let an unranked
					// candidate silently vanish from the objective.
					w = float64(cost)
				case d.Oversubscribed[c0]:
					w = (float64(rPrime) / denom) * float64(numSlots+1-cost)
				default:
					w = (1 - float64(rPrime)/denom) * float64(cost)
				}
				m.SetObjective(idx, w)
			}
		}
	}
}

// addPanelCapacity: constraint family 1 — Σ_n x[s,c,n] ≤ P(s,c).
func addPanelCapacity(m *mip.Model, in *model.Input, slots, recruiters, active []string) {
	for _, s := range slots {
		for _, c := range recruiters {
			terms := make(map[int]float64)
			for _, n := range active {
				if idx, ok := m.Lookup(mip.VarKey{Slot: s, Recruiter: c, Candidate: n}); ok {
					terms[idx] = 1
				}
			}
			if len(terms) == 0 {
				continue
			}
			m.AddConstraint(fmt.Sprintf("panel-capacity[%s,%s]", s, c), terms, mip.LE, float64(in.Panels(s, c)))
		}
	}
}

// addShortlistGate: constraint family 2 — Σ_{s,c∈g} x[s,c,n] ≤ SL(c0,n)·L(c0).
func addShortlistGate(m *mip.Model, in *model.Input, active []string) {
	slots := in.Slots()
	for _, n := range active {
		for _, g := range in.Groups() {
			c0 := g.Head
			terms := make(map[int]float64)
			for _, c := range g.Members {
				for _, s := range slots {
					if idx, ok := m.Lookup(mip.VarKey{Slot: s, Recruiter: c, Candidate: n}); ok {
						terms[idx] = 1
					}
				}
			}
			if len(terms) == 0 {
				continue
			}
			rhs := 0.0
			if in.Shortlisted(c0, n) {
				rhs = float64(in.MultiSlotLen(c0))
			}
			m.AddConstraint(fmt.Sprintf("shortlist-gate[%s,%s]", n, c0), terms, mip.LE, rhs)
		}
	}
}

// addMutualExclusion: constraint family 3 — Σ_c x[s,c,n] ≤ 1.
func addMutualExclusion(m *mip.Model, in *model.Input, slots, recruiters, active []string) {
	for _, s := range slots {
		for _, n := range active {
			terms := make(map[int]float64)
			for _, c := range recruiters {
				if idx, ok := m.Lookup(mip.VarKey{Slot: s, Recruiter: c, Candidate: n}); ok {
					terms[idx] = 1
				}
			}
			if len(terms) == 0 {
				continue
			}
			m.AddConstraint(fmt.Sprintf("mutual-exclusion[%s,%s]", s, n), terms, mip.LE, 1)
		}
	}
}

// addThroughput: constraint family 4 — Σ_{s,c∈g,n} x[s,c,n] REL target(c0).
func addThroughput(m *mip.Model, in *model.Input, d *deriv.Derived, opts Options, active []string) {
	slots := in.Slots()
	for _, g := range in.Groups() {
		c0 := g.Head
		terms := make(map[int]float64)
		for _, c := range g.Members {
			for _, s := range slots {
				for _, n := range active {
					if idx, ok := m.Lookup(mip.VarKey{Slot: s, Recruiter: c, Candidate: n}); ok {
						terms[idx] = 1
					}
				}
			}
		}
		if len(terms) == 0 {
			continue
		}
		rel := mip.EQ
		if opts.Throughput == ThroughputAtMost {
			rel = mip.LE
		}
		m.AddConstraint(fmt.Sprintf("throughput[%s]", c0), terms, rel, float64(d.Target[c0]))
	}
}

// addContiguityConstraints: constraint family 5, for one recruiter c with
// L(c) > 1. Locates start(c), the first slot with positive panel capacity,
// then enforces x[slots[i],c,n] = x[slots[j],c,n] for every pair within each
// length-L(c) window ending at start(c)+L(c)·k−1.
func addContiguityConstraints(m *mip.Model, in *model.Input, active []string, c string) {
	l := in.MultiSlotLen(c)
	if l <= 1 {
		return
	}
	slots := in.Slots()
	start := -1
	for i, s := range slots {
		if in.Panels(s, c) > 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}

	for wEnd := start + l - 1; wEnd < len(slots); wEnd += l {
		for _, n := range active {
			if !in.Shortlisted(c, n) {
				continue
			}
			iVar, ok := m.Lookup(mip.VarKey{Slot: slots[wEnd], Recruiter: c, Candidate: n})
			if !ok {
				continue
			}
			for j := wEnd - l + 1; j < wEnd; j++ {
				jVar, ok := m.Lookup(mip.VarKey{Slot: slots[j], Recruiter: c, Candidate: n})
				if !ok {
					continue
				}
				label := fmt.Sprintf("contiguity[%s,%s,%d,%d]", c, n, wEnd, j)
				m.AddConstraint(label, map[int]float64{iVar: 1, jVar: -1}, mip.EQ, 0)
			}
		}
	}
}

// addPreFixedPinning: constraint family 6 — x[s,c,n] = 1 for every supplied
// pre-fixed triple.
func addPreFixedPinning(m *mip.Model, preFixed []model.PreFixedTriple) error {
	for _, t := range preFixed {
		idx, ok := m.Lookup(mip.VarKey{Slot: t.Slot, Recruiter: t.Recruiter, Candidate: t.Candidate})
		if !ok {
			continue
		}
		if err := m.Fix(idx, 1); err != nil {
			return fmt.Errorf("pre-fixed %s/%s/%s: %w", t.Slot, t.Recruiter, t.Candidate, err)
		}
	}
	return nil
}

// addSkipInitial: constraint family 7 — x[slots[0],c,n] = 0 for every
// n ∈ SkipInitial and every c.
func addSkipInitial(m *mip.Model, in *model.Input) error {
	slots := in.Slots()
	if len(slots) == 0 {
		return nil
	}
	s0 := slots[0]
	for _, c := range in.Recruiters() {
		for _, n := range in.Candidates() {
			if !in.InSkipInitial(n) {
				continue
			}
			idx, ok := m.Lookup(mip.VarKey{Slot: s0, Recruiter: c, Candidate: n})
			if !ok {
				continue
			}
			if err := m.Fix(idx, 0); err != nil {
				return fmt.Errorf("skip-initial %s/%s: %w", s0, n, err)
			}
		}
	}
	return nil
}
