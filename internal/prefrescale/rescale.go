// SPDX-License-Identifier: MIT
package prefrescale

import (
	"sort"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/model"
)

// Result holds the dense-rescaled preference R'(n, c).
type Result struct {
	// Rank[candidate][recruiter] = dense rank in [1, k]; recruiters not
	// shortlisted for candidate are absent.
	Rank map[string]map[string]int
}

// Rescaled reports whether candidate has at least one dense-ranked
// recruiter.
func (r *Result) Rescaled(candidate string) bool {
	m, ok := r.Rank[candidate]
	return ok && len(m) > 0
}

// Row is one dense-ranked (candidate, recruiter, rank) triple, used by the
// standalone prefupload transform (spec §4.5).
type Row struct {
	Candidate, Recruiter string
	Rank                 int
}

// ToRows flattens Rank into a deterministically sorted slice (candidate,
// then recruiter), for the prefupload CLI command to write out directly.
func (r *Result) ToRows() []Row {
	var candidates []string
	for n := range r.Rank {
		candidates = append(candidates, n)
	}
	sort.Strings(candidates)

	var rows []Row
	for _, n := range candidates {
		var recruiters []string
		for c := range r.Rank[n] {
			recruiters = append(recruiters, c)
		}
		sort.Strings(recruiters)
		for _, c := range recruiters {
			rows = append(rows, Row{Candidate: n, Recruiter: c, Rank: r.Rank[n][c]})
		}
	}
	return rows
}

// Of looks up R'(n, c).
func (r *Result) Of(candidate, recruiter string) (int, bool) {
	m, ok := r.Rank[candidate]
	if !ok {
		return 0, false
	}
	rank, ok := m[recruiter]
	return rank, ok
}

// Rescale computes R' for every Active candidate with raw preference data.
// Candidates without preference rows are simply absent from the result,
// which drives the ILP builder into cost-only objective mode when no
// candidate has a rescaled ranking at all.
func Rescale(in *model.Input, d *deriv.Derived) *Result {
	res := &Result{Rank: make(map[string]map[string]int)}
	if !in.HasPreferences() {
		return res
	}

	for n := range d.Active {
		type candRank struct {
			recruiter string
			raw       int
		}
		var actual []candRank
		for _, c := range in.Recruiters() {
			if !in.Shortlisted(c, n) {
				continue
			}
			raw, ok := in.Preference(n, c)
			if !ok {
				continue
			}
			actual = append(actual, candRank{recruiter: c, raw: raw})
		}
		if len(actual) == 0 {
			continue
		}

		sort.Slice(actual, func(i, j int) bool {
			if actual[i].raw != actual[j].raw {
				return actual[i].raw < actual[j].raw
			}
			return actual[i].recruiter < actual[j].recruiter
		})

		m := make(map[string]int, len(actual))
		for i, cr := range actual {
			m[cr.recruiter] = i + 1
		}
		res.Rank[n] = m
	}
	return res
}
