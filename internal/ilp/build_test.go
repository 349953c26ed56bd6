package ilp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/mip"
	"github.com/campusched/campusched/internal/model"
	"github.com/campusched/campusched/internal/prefrescale"
)

// threeRecruiterInput shortlists alice by three distinct recruiters so her
// crit(n) clears ActiveThreshold (a single recruiter's shortlist alone never
// does, by design — see deriv.ActiveThreshold). Throughput equality gives
// each recruiter a target of one interview with alice, and she can be in
// only one interview per slot, so the fixture needs three slots.
func threeRecruiterInput(t *testing.T) *model.Input {
	t.Helper()
	b := model.NewBuilder()
	b.SetSlots([]string{"s0", "s1", "s2"})
	b.AddShortlist("acme", "alice")
	b.AddShortlist("globex", "alice")
	b.AddShortlist("initech", "alice")
	b.SetPanels("s0", "acme", 1)
	b.SetPanels("s1", "acme", 1)
	b.SetPanels("s2", "acme", 1)
	b.SetPanels("s0", "globex", 1)
	b.SetPanels("s1", "globex", 1)
	b.SetPanels("s2", "globex", 1)
	b.SetPanels("s0", "initech", 1)
	b.SetPanels("s1", "initech", 1)
	b.SetPanels("s2", "initech", 1)
	b.SetMultiSlot("acme", 1)
	b.SetMultiSlot("globex", 1)
	b.SetMultiSlot("initech", 1)
	b.AddGroup([]string{"acme"})
	b.AddGroup([]string{"globex"})
	b.AddGroup([]string{"initech"})
	in, err := b.Build()
	require.NoError(t, err)
	return in
}

func TestBuild_CostOnlyObjectiveFavorsEarlierSlot(t *testing.T) {
	in := threeRecruiterInput(t)
	d := deriv.Compute(in)
	m, err := Build(in, d, nil, DefaultOptions())
	require.NoError(t, err)

	idxS0, ok := m.Lookup(mip.VarKey{Slot: "s0", Recruiter: "acme", Candidate: "alice"})
	require.True(t, ok)
	idxS1, ok := m.Lookup(mip.VarKey{Slot: "s1", Recruiter: "acme", Candidate: "alice"})
	require.True(t, ok)

	res := mip.Solve(m, mip.Options{})
	require.Equal(t, mip.StatusOptimal, res.Status)
	// acme alone must supply target(acme) = min(compSL,compPanels)*L interviews;
	// cost-only objective prefers the cheaper (earlier) slot when it has a
	// free choice of which slot to fill.
	assert.True(t, res.Values[idxS0] == 1 || res.Values[idxS1] == 1)
}

func TestBuild_PanelCapacityRespected(t *testing.T) {
	b := model.NewBuilder()
	b.SetSlots([]string{"s0", "s1", "s2"})
	b.AddShortlist("acme", "alice")
	b.AddShortlist("acme", "bob")
	b.AddShortlist("globex", "alice")
	b.AddShortlist("globex", "bob")
	b.AddShortlist("initech", "alice")
	b.AddShortlist("initech", "bob")
	b.SetPanels("s0", "acme", 1) // capacity 1, but both alice and bob are shortlisted
	b.SetPanels("s1", "acme", 1)
	b.SetPanels("s2", "acme", 1)
	b.SetPanels("s0", "globex", 1)
	b.SetPanels("s1", "globex", 1)
	b.SetPanels("s2", "globex", 1)
	b.SetPanels("s0", "initech", 1)
	b.SetPanels("s1", "initech", 1)
	b.SetPanels("s2", "initech", 1)
	b.SetMultiSlot("acme", 1)
	b.SetMultiSlot("globex", 1)
	b.SetMultiSlot("initech", 1)
	b.AddGroup([]string{"acme"})
	b.AddGroup([]string{"globex"})
	b.AddGroup([]string{"initech"})
	in, err := b.Build()
	require.NoError(t, err)

	d := deriv.Compute(in)
	m, err := Build(in, d, nil, DefaultOptions())
	require.NoError(t, err)

	res := mip.Solve(m, mip.Options{})
	require.Equal(t, mip.StatusOptimal, res.Status)

	for _, s := range in.Slots() {
		for _, c := range in.Recruiters() {
			count := 0
			for _, n := range []string{"alice", "bob"} {
				if idx, ok := m.Lookup(mip.VarKey{Slot: s, Recruiter: c, Candidate: n}); ok {
					count += int(res.Values[idx])
				}
			}
			assert.LessOrEqual(t, count, in.Panels(s, c))
		}
	}
}

func TestBuild_PreFixedPinning(t *testing.T) {
	b := model.NewBuilder()
	b.SetSlots([]string{"s0", "s1", "s2"})
	b.AddShortlist("acme", "alice")
	b.AddShortlist("globex", "alice")
	b.AddShortlist("initech", "alice")
	b.SetPanels("s0", "acme", 1)
	b.SetPanels("s1", "acme", 1)
	b.SetPanels("s2", "acme", 1)
	b.SetPanels("s0", "globex", 1)
	b.SetPanels("s1", "globex", 1)
	b.SetPanels("s2", "globex", 1)
	b.SetPanels("s0", "initech", 1)
	b.SetPanels("s1", "initech", 1)
	b.SetPanels("s2", "initech", 1)
	b.SetMultiSlot("acme", 1)
	b.SetMultiSlot("globex", 1)
	b.SetMultiSlot("initech", 1)
	b.AddGroup([]string{"acme"})
	b.AddGroup([]string{"globex"})
	b.AddGroup([]string{"initech"})
	b.AddPreFixed("s1", "acme", "alice")
	in, err := b.Build()
	require.NoError(t, err)

	d := deriv.Compute(in)
	m, err := Build(in, d, nil, DefaultOptions())
	require.NoError(t, err)

	res := mip.Solve(m, mip.Options{})
	require.Equal(t, mip.StatusOptimal, res.Status)

	idx, ok := m.Lookup(mip.VarKey{Slot: "s1", Recruiter: "acme", Candidate: "alice"})
	require.True(t, ok)
	assert.EqualValues(t, 1, res.Values[idx])
}

func TestBuild_SkipInitialForbidsFirstSlot(t *testing.T) {
	// alice may not use s0 and needs one slot per recruiter: s1..s3.
	b := model.NewBuilder()
	b.SetSlots([]string{"s0", "s1", "s2", "s3"})
	b.AddShortlist("acme", "alice")
	b.AddShortlist("globex", "alice")
	b.AddShortlist("initech", "alice")
	for _, s := range []string{"s0", "s1", "s2", "s3"} {
		b.SetPanels(s, "acme", 1)
		b.SetPanels(s, "globex", 1)
		b.SetPanels(s, "initech", 1)
	}
	b.SetMultiSlot("acme", 1)
	b.SetMultiSlot("globex", 1)
	b.SetMultiSlot("initech", 1)
	b.AddGroup([]string{"acme"})
	b.AddGroup([]string{"globex"})
	b.AddGroup([]string{"initech"})
	b.AddSkipInitial("alice")
	in, err := b.Build()
	require.NoError(t, err)

	d := deriv.Compute(in)
	m, err := Build(in, d, nil, DefaultOptions())
	require.NoError(t, err)

	for _, c := range in.Recruiters() {
		idx, ok := m.Lookup(mip.VarKey{Slot: "s0", Recruiter: c, Candidate: "alice"})
		if !ok {
			continue
		}
		res := mip.Solve(m, mip.Options{})
		require.Equal(t, mip.StatusOptimal, res.Status)
		assert.EqualValues(t, 0, res.Values[idx])
	}
}

func TestBuild_ContiguityForcesWholeWindow(t *testing.T) {
	b := model.NewBuilder()
	b.SetSlots([]string{"s0", "s1", "s2", "s3"})
	b.AddShortlist("acme", "alice")
	b.AddShortlist("globex", "alice")
	b.AddShortlist("initech", "alice")
	for _, s := range []string{"s0", "s1", "s2", "s3"} {
		b.SetPanels(s, "acme", 1)
	}
	b.SetPanels("s2", "globex", 1)
	b.SetPanels("s3", "initech", 1)
	b.SetMultiSlot("acme", 2)
	b.SetMultiSlot("globex", 1)
	b.SetMultiSlot("initech", 1)
	b.AddGroup([]string{"acme"})
	b.AddGroup([]string{"globex"})
	b.AddGroup([]string{"initech"})
	b.AddPreFixed("s0", "acme", "alice")
	in, err := b.Build()
	require.NoError(t, err)

	d := deriv.Compute(in)
	m, err := Build(in, d, nil, DefaultOptions())
	require.NoError(t, err)

	res := mip.Solve(m, mip.Options{})
	require.Equal(t, mip.StatusOptimal, res.Status)

	idxS0, ok := m.Lookup(mip.VarKey{Slot: "s0", Recruiter: "acme", Candidate: "alice"})
	require.True(t, ok)
	idxS1, ok := m.Lookup(mip.VarKey{Slot: "s1", Recruiter: "acme", Candidate: "alice"})
	require.True(t, ok)
	assert.EqualValues(t, 1, res.Values[idxS0])
	assert.EqualValues(t, 1, res.Values[idxS1])
}

func TestBuild_PreferenceWeightedObjectiveUsesRescaledRanks(t *testing.T) {
	in := threeRecruiterInput(t)
	b := model.NewBuilder()
	b.SetSlots([]string{"s0", "s1", "s2"})
	b.AddShortlist("acme", "alice")
	b.AddShortlist("globex", "alice")
	b.AddShortlist("initech", "alice")
	b.SetPanels("s0", "acme", 1)
	b.SetPanels("s1", "acme", 1)
	b.SetPanels("s2", "acme", 1)
	b.SetPanels("s0", "globex", 1)
	b.SetPanels("s1", "globex", 1)
	b.SetPanels("s2", "globex", 1)
	b.SetPanels("s0", "initech", 1)
	b.SetPanels("s1", "initech", 1)
	b.SetPanels("s2", "initech", 1)
	b.SetMultiSlot("acme", 1)
	b.SetMultiSlot("globex", 1)
	b.SetMultiSlot("initech", 1)
	b.AddGroup([]string{"acme"})
	b.AddGroup([]string{"globex"})
	b.AddGroup([]string{"initech"})
	b.SetPreference("alice", "acme", 1)
	b.SetPreference("alice", "globex", 2)
	b.SetPreference("alice", "initech", 3)
	in, err := b.Build()
	require.NoError(t, err)

	d := deriv.Compute(in)
	pref := prefrescale.Rescale(in, d)
	m, err := Build(in, d, pref, DefaultOptions())
	require.NoError(t, err)

	res := mip.Solve(m, mip.Options{})
	require.Equal(t, mip.StatusOptimal, res.Status)

	// No group is oversubscribed, so w = (1 - R'/(crit+1))·cost with crit = 3:
	// 0.75·cost for acme (R'=1), 0.5·cost for globex, 0.25·cost for initech.
	// The cheapest placement is acme s0, globex s1, initech s2 = 0.75+1.0+0.75.
	idx, ok := m.Lookup(mip.VarKey{Slot: "s0", Recruiter: "acme", Candidate: "alice"})
	require.True(t, ok)
	assert.EqualValues(t, 1, res.Values[idx])
	assert.InDelta(t, 2.5, res.Objective, 1e-9)
}
