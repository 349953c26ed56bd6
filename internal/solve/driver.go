// SPDX-License-Identifier: MIT
package solve

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/mip"
	"github.com/campusched/campusched/internal/model"
)

// ErrNonOptimal is wrapped into the returned error whenever the solver
// terminates with a status other than optimal, carrying the status string
// so callers and logs can report it.
var ErrNonOptimal = errors.New("solve: solver did not reach an optimal solution")

// Run submits m to mip.Solve, logging "Creating IPLP", "Optimising", and the
// terminal status at Info level, plus start/end timestamps and the variable
// count at Debug level. It returns a non-nil error (wrapping
// ErrNonOptimal) whenever the solver status is not optimal.
//
// Before search starts, it runs the per-group max-flow feasibility
// diagnostic (mip.GroupFeasibility) and logs a refined Warn-level warning
// for any group whose flow-bounded capacity falls short of its target,
// a tighter check than the plain compSL(c0) > compPanels(c0) comparison
// since it accounts for how panel capacity is distributed across slots.
func Run(log hclog.Logger, in *model.Input, d *deriv.Derived, m *mip.Model, opts mip.Options) (mip.Result, error) {
	warnGroupFeasibility(log, in, d)

	log.Info("Creating IPLP")
	log.Debug("model size", "variables", m.NumVars())

	log.Info("Optimising")
	start := time.Now()
	res := mip.Solve(m, opts)
	end := time.Now()
	log.Debug("optimize timing", "start", start.Format(time.RFC3339Nano), "end", end.Format(time.RFC3339Nano), "elapsed", end.Sub(start).String())

	log.Info("solver terminal status", "status", res.Status.String())
	if res.Status != mip.StatusOptimal {
		return res, fmt.Errorf("%w: %s", ErrNonOptimal, res.Status)
	}
	return res, nil
}

// warnGroupFeasibility builds a FlowGroup for every panel group (head's
// Active shortlist against per-slot capacity summed across the group's
// members), runs mip.GroupFeasibility, and logs a Warn when the resulting
// flow bound is short of the group's target.
func warnGroupFeasibility(log hclog.Logger, in *model.Input, d *deriv.Derived) {
	slots := in.Slots()
	for _, g := range in.Groups() {
		c0 := g.Head

		var candidates []string
		for n := range d.Active {
			if in.Shortlisted(c0, n) {
				candidates = append(candidates, n)
			}
		}
		sort.Strings(candidates)

		slotCapacity := make([]int, len(slots))
		for i, s := range slots {
			total := 0
			for _, c := range g.Members {
				total += in.Panels(s, c)
			}
			slotCapacity[i] = total
		}

		bound := mip.GroupFeasibility(mip.FlowGroup{Candidates: candidates, SlotCapacity: slotCapacity})
		if bound < d.Target[c0] {
			log.Warn("group feasibility below target", "group", c0, "flow_bound", bound, "target", d.Target[c0])
		}
	}
}
