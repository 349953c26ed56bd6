// SPDX-License-Identifier: MIT
package extract

import (
	"fmt"
	"sort"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/mip"
	"github.com/campusched/campusched/internal/model"
	"github.com/campusched/campusched/internal/prefrescale"
)

// ScheduleGrid is the `sche` artifact: rows by slot, one column group per
// recruiter with maxPanels(c) columns.
type ScheduleGrid struct {
	Slots      []string
	Recruiters []string
	MaxPanels  map[string]int
	// Cell[slot][recruiter] holds one entry per panel column, "" when empty.
	Cell map[string]map[string][]string
}

// NamesTable is the `names` artifact: rows by slot, columns by candidate.
type NamesTable struct {
	Slots      []string
	Candidates []string
	// Cell[slot][candidate] is the assigned recruiter, "" if unassigned.
	Cell map[string]map[string]string
}

// BufferList is the `buff` artifact: group head -> its held-ready candidates.
type BufferList struct {
	GroupOrder []string
	Entries    map[string][]string
}

// StaticUploadRow is one row of the `staticupload` artifact.
type StaticUploadRow struct {
	Name, Company string
	Round, Panel  int
}

// Extract decomposes a solved model's assignment into the four output
// artifacts. res.Status must be mip.StatusOptimal; callers are responsible
// for aborting before calling Extract otherwise (spec §5/§7: no partial
// writes on non-optimal status).
func Extract(in *model.Input, d *deriv.Derived, pref *prefrescale.Result, m *mip.Model, res mip.Result) (*ScheduleGrid, *NamesTable, *BufferList, []StaticUploadRow) {
	assignedBySC := make(map[string]map[string][]string) // slot -> recruiter -> candidates
	assignedRecruiter := make(map[string]map[string]string) // slot -> candidate -> recruiter

	for idx, v := range res.Values {
		if v != 1 {
			continue
		}
		key := m.VarKey(idx)
		if assignedBySC[key.Slot] == nil {
			assignedBySC[key.Slot] = make(map[string][]string)
		}
		assignedBySC[key.Slot][key.Recruiter] = append(assignedBySC[key.Slot][key.Recruiter], key.Candidate)

		if assignedRecruiter[key.Slot] == nil {
			assignedRecruiter[key.Slot] = make(map[string]string)
		}
		assignedRecruiter[key.Slot][key.Candidate] = key.Recruiter
	}
	for _, byRec := range assignedBySC {
		for c := range byRec {
			sort.Strings(byRec[c])
		}
	}

	grid := buildScheduleGrid(in, d, pref, assignedBySC)
	names := buildNamesTable(in, assignedRecruiter)
	buff := buildBufferList(in, d)
	upload := buildStaticUpload(in, assignedBySC)

	return grid, names, buff, upload
}

func cellText(n string, c string, d *deriv.Derived, pref *prefrescale.Result, hasPrefs bool) string {
	if !hasPrefs || pref == nil {
		return n
	}
	rank, ok := pref.Of(n, c)
	if !ok {
		return n
	}
	return fmt.Sprintf("%s %d_%d", n, rank, d.Crit[n])
}

func buildScheduleGrid(in *model.Input, d *deriv.Derived, pref *prefrescale.Result, assignedBySC map[string]map[string][]string) *ScheduleGrid {
	g := &ScheduleGrid{
		Slots:      in.Slots(),
		Recruiters: in.Recruiters(),
		MaxPanels:  d.MaxPanels,
		Cell:       make(map[string]map[string][]string),
	}
	hasPrefs := in.HasPreferences()
	for _, s := range in.Slots() {
		g.Cell[s] = make(map[string][]string)
		for _, c := range in.Recruiters() {
			width := d.MaxPanels[c]
			col := make([]string, width)
			assigned := assignedBySC[s][c]
			for i := 0; i < width; i++ {
				if i < len(assigned) {
					col[i] = cellText(assigned[i], c, d, pref, hasPrefs)
				}
			}
			g.Cell[s][c] = col
		}
	}
	return g
}

func buildNamesTable(in *model.Input, assignedRecruiter map[string]map[string]string) *NamesTable {
	t := &NamesTable{
		Slots:      in.Slots(),
		Candidates: in.Candidates(),
		Cell:       make(map[string]map[string]string),
	}
	for _, s := range in.Slots() {
		t.Cell[s] = make(map[string]string)
		for _, n := range in.Candidates() {
			t.Cell[s][n] = assignedRecruiter[s][n]
		}
	}
	return t
}

func buildBufferList(in *model.Input, d *deriv.Derived) *BufferList {
	bl := &BufferList{Entries: make(map[string][]string)}
	for _, g := range in.Groups() {
		c0 := g.Head
		bl.GroupOrder = append(bl.GroupOrder, c0)
		var members []string
		for _, n := range in.Candidates() {
			if d.Buffer[n] && in.Shortlisted(c0, n) {
				members = append(members, n)
			}
		}
		bl.Entries[c0] = members
	}
	return bl
}

func buildStaticUpload(in *model.Input, assignedBySC map[string]map[string][]string) []StaticUploadRow {
	slots := in.Slots()
	if len(slots) == 0 {
		return nil
	}
	s0 := slots[0]

	var rows []StaticUploadRow
	for _, g := range in.Groups() {
		for i, c := range g.Members {
			for _, n := range assignedBySC[s0][c] {
				rows = append(rows, StaticUploadRow{Name: n, Company: g.Head, Round: 1, Panel: i + 1})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Company != rows[j].Company {
			return rows[i].Company < rows[j].Company
		}
		if rows[i].Panel != rows[j].Panel {
			return rows[i].Panel < rows[j].Panel
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
