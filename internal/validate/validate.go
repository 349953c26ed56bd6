// SPDX-License-Identifier: MIT
package validate

import (
	"sort"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/extract"
	"github.com/campusched/campusched/internal/model"
	"github.com/campusched/campusched/internal/prefrescale"
)

// Report collects every post-solve diagnostic spec §4.6 asks for. None of
// these cause a run to fail; they are surfaced to the operator.
type Report struct {
	// PreferenceOrderViolations lists candidates whose R'(n,c) sequence
	// (walked in slot order) is not monotonically non-decreasing.
	PreferenceOrderViolations []string
	// ContiguityViolations lists "recruiter/candidate" pairs whose assigned
	// block length with that recruiter is not a multiple of L(recruiter).
	ContiguityViolations []string
	// OversubscribedGroups lists group heads with compSL(c0) > compPanels(c0).
	OversubscribedGroups []string
}

// Validate runs every spec §4.6 check against a solved schedule.
func Validate(in *model.Input, d *deriv.Derived, pref *prefrescale.Result, names *extract.NamesTable) *Report {
	r := &Report{}

	var heads []string
	for c0 := range d.Oversubscribed {
		if d.Oversubscribed[c0] {
			heads = append(heads, c0)
		}
	}
	sort.Strings(heads)
	r.OversubscribedGroups = heads

	if in.HasPreferences() && pref != nil {
		for _, n := range in.Candidates() {
			if violatesPreferenceOrder(in, pref, names, n) {
				r.PreferenceOrderViolations = append(r.PreferenceOrderViolations, n)
			}
		}
	}

	for _, c := range in.Recruiters() {
		r.ContiguityViolations = append(r.ContiguityViolations, contiguityViolations(in, names, c)...)
	}

	return r
}

func violatesPreferenceOrder(in *model.Input, pref *prefrescale.Result, names *extract.NamesTable, n string) bool {
	prevRank := -1
	for _, s := range in.Slots() {
		c := names.Cell[s][n]
		if c == "" {
			continue
		}
		rank, ok := pref.Of(n, c)
		if !ok {
			continue
		}
		if rank < prevRank {
			return true
		}
		prevRank = rank
	}
	return false
}

func contiguityViolations(in *model.Input, names *extract.NamesTable, c string) []string {
	l := in.MultiSlotLen(c)
	if l <= 1 {
		return nil
	}

	var out []string
	slots := in.Slots()
	seen := make(map[string]bool)
	for _, n := range in.Candidates() {
		runLen := 0
		flush := func() {
			if runLen > 0 && runLen%l != 0 && !seen[n] {
				out = append(out, c+"/"+n)
				seen[n] = true
			}
			runLen = 0
		}
		for _, s := range slots {
			if names.Cell[s][n] == c {
				runLen++
			} else {
				flush()
			}
		}
		flush()
	}
	return out
}
