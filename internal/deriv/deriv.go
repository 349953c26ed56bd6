// SPDX-License-Identifier: MIT
package deriv

import "github.com/campusched/campusched/internal/model"

// ActiveThreshold is the policy constant separating Active candidates
// (crit(n) > ActiveThreshold, enter the ILP) from Buffer candidates
// (0 < crit(n) <= ActiveThreshold, emitted as a standby list). Spec §4.1
// requires this threshold be a single named constant, not hard-coded at
// each call site.
const ActiveThreshold = 2

// Derived holds every quantity spec §4.1 defines in terms of a frozen Input.
type Derived struct {
	MaxPanels map[string]int // maxPanels(c)  = max_s P(s, c)
	Cost      map[string]int // cost(s)       = index_of(s) + 1
	Crit      map[string]int // crit(n)       = Σ_c SL(c, n)

	Active map[string]bool // crit(n) > ActiveThreshold && n not in LeftProcess
	Buffer map[string]bool // 0 < crit(n) <= ActiveThreshold && n not in LeftProcess

	CompSL         map[string]int  // compSL(c0)     = Σ_{n in Active} SL(c0, n)
	CompPanels     map[string]int  // compPanels(c0) = floor(Σ_{s,c in g} P(s,c) / L(c0))
	Target         map[string]int  // target(c0)     = min(compSL, compPanels) * L(c0)
	Oversubscribed map[string]bool // compSL(c0) > compPanels(c0): warn, don't fail
}

// Compute derives every §4.1 quantity from in.
func Compute(in *model.Input) *Derived {
	d := &Derived{
		MaxPanels:      make(map[string]int),
		Cost:           make(map[string]int),
		Crit:           make(map[string]int),
		Active:         make(map[string]bool),
		Buffer:         make(map[string]bool),
		CompSL:         make(map[string]int),
		CompPanels:     make(map[string]int),
		Target:         make(map[string]int),
		Oversubscribed: make(map[string]bool),
	}

	slots := in.Slots()
	for i, s := range slots {
		d.Cost[s] = i + 1
	}

	recruiters := in.Recruiters()
	for _, c := range recruiters {
		max := 0
		for _, s := range slots {
			if p := in.Panels(s, c); p > max {
				max = p
			}
		}
		d.MaxPanels[c] = max
	}

	for _, n := range in.Candidates() {
		crit := 0
		for _, c := range recruiters {
			if in.Shortlisted(c, n) {
				crit++
			}
		}
		d.Crit[n] = crit

		if in.InLeftProcess(n) {
			continue
		}
		switch {
		case crit > ActiveThreshold:
			d.Active[n] = true
		case crit > 0:
			d.Buffer[n] = true
		}
	}

	for _, g := range in.Groups() {
		c0 := g.Head
		l := in.MultiSlotLen(c0)

		// compSL is evaluated at the group head only: tail members share the
		// head's shortlist by construction (spec §3/§9 "group-indexed
		// constraints"), so summing over every member would overcount by a
		// factor of the group size.
		compSL := 0
		for n := range d.Active {
			if in.Shortlisted(c0, n) {
				compSL++
			}
		}
		d.CompSL[c0] = compSL

		totalPanels := 0
		for _, c := range g.Members {
			for _, s := range slots {
				totalPanels += in.Panels(s, c)
			}
		}
		compPanels := totalPanels / l
		d.CompPanels[c0] = compPanels

		target := compSL
		if compPanels < target {
			target = compPanels
		}
		d.Target[c0] = target * l

		if compSL > compPanels {
			d.Oversubscribed[c0] = true
		}
	}

	return d
}
