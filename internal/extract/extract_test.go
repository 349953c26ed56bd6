package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/ilp"
	"github.com/campusched/campusched/internal/mip"
	"github.com/campusched/campusched/internal/model"
	"github.com/campusched/campusched/internal/prefrescale"
)

func buildSolvedFixture(t *testing.T) (*model.Input, *deriv.Derived, *prefrescale.Result, *mip.Model, mip.Result) {
	t.Helper()
	b := model.NewBuilder()
	// Three slots: alice must meet each of her three recruiters once
	// (throughput equality) and can only be in one interview per slot.
	b.SetSlots([]string{"s0", "s1", "s2"})
	b.AddShortlist("acme", "alice")
	b.AddShortlist("acme", "bob")
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

	d := deriv.Compute(in)
	pref := prefrescale.Rescale(in, d)
	m, err := ilp.Build(in, d, pref, ilp.DefaultOptions())
	require.NoError(t, err)
	res := mip.Solve(m, mip.Options{})
	require.Equal(t, mip.StatusOptimal, res.Status)
	return in, d, pref, m, res
}

func TestExtract_BufferListHoldsLowCritCandidate(t *testing.T) {
	in, d, pref, m, res := buildSolvedFixture(t)
	_, _, buff, _ := Extract(in, d, pref, m, res)

	// bob is shortlisted only by acme (crit=1): Buffer, held under acme.
	assert.Contains(t, buff.Entries["acme"], "bob")
	assert.NotContains(t, buff.Entries["globex"], "bob")
}

func TestExtract_ScheduleGridWidthMatchesMaxPanels(t *testing.T) {
	in, d, pref, m, res := buildSolvedFixture(t)
	grid, _, _, _ := Extract(in, d, pref, m, res)

	for _, c := range in.Recruiters() {
		for _, s := range in.Slots() {
			assert.Len(t, grid.Cell[s][c], d.MaxPanels[c])
		}
	}
}

func TestExtract_NamesTableAgreesWithScheduleGrid(t *testing.T) {
	in, d, pref, m, res := buildSolvedFixture(t)
	grid, names, _, _ := Extract(in, d, pref, m, res)

	for _, s := range in.Slots() {
		for _, c := range in.Recruiters() {
			for _, cell := range grid.Cell[s][c] {
				if cell == "" {
					continue
				}
				candidate := firstToken(cell)
				assert.Equal(t, c, names.Cell[s][candidate])
			}
		}
	}
}

func TestExtract_StaticUploadOnlyFirstSlotAndSortedByCompanyPanel(t *testing.T) {
	in, d, pref, m, res := buildSolvedFixture(t)
	_, names, _, upload := Extract(in, d, pref, m, res)

	for i := 1; i < len(upload); i++ {
		prev, cur := upload[i-1], upload[i]
		if prev.Company == cur.Company {
			assert.LessOrEqual(t, prev.Panel, cur.Panel)
		} else {
			assert.Less(t, prev.Company, cur.Company)
		}
		assert.Equal(t, 1, cur.Round)
	}
	s0 := in.Slots()[0]
	for _, row := range upload {
		assert.Equal(t, row.Company, in.GroupHead(names.Cell[s0][row.Name]))
	}
}

func firstToken(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
