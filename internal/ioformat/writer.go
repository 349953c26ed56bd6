// SPDX-License-Identifier: MIT
package ioformat

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/campusched/campusched/internal/extract"
	"github.com/campusched/campusched/internal/prefrescale"
)

// WriteSchedule writes the `sche` artifact: header "Slot, <recruiter-panel
// columns…>", one row per slot, no index column beyond Slot itself.
func WriteSchedule(dir string, g *extract.ScheduleGrid) error {
	f, w, err := createCSV(dir, "sche.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	header := []string{"Slot"}
	for _, c := range g.Recruiters {
		for p := 0; p < g.MaxPanels[c]; p++ {
			header = append(header, fmt.Sprintf("%s%d", c, p+1))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range g.Slots {
		row := []string{s}
		for _, c := range g.Recruiters {
			row = append(row, g.Cell[s][c]...)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteNames writes the `names` artifact: slot→candidate matrix, indexed by
// slot in the first column.
func WriteNames(dir string, t *extract.NamesTable) error {
	f, w, err := createCSV(dir, "names.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	header := append([]string{"Slot"}, t.Candidates...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range t.Slots {
		row := make([]string, 0, len(t.Candidates)+1)
		row = append(row, s)
		for _, n := range t.Candidates {
			row = append(row, t.Cell[s][n])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteBuffer writes the `buff` artifact: one row per group, the group head
// followed by its held-ready Buffer candidates.
func WriteBuffer(dir string, bl *extract.BufferList) error {
	f, w, err := createCSV(dir, "buff.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	for _, c0 := range bl.GroupOrder {
		row := append([]string{c0}, bl.Entries[c0]...)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteStaticUpload writes the `staticupload` artifact: header "Name,
// Company, Round, Panel", pre-sorted by (Company, Panel) in extract.Extract.
func WriteStaticUpload(dir string, rows []extract.StaticUploadRow) error {
	f, w, err := createCSV(dir, "staticupload.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	if err := w.Write([]string{"Name", "Company", "Round", "Panel"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Name, r.Company, fmt.Sprintf("%d", r.Round), fmt.Sprintf("%d", r.Panel)}); err != nil {
			return err
		}
	}
	return w.Error()
}

// WritePrefUpload writes the standalone preference-rescale transform's
// output (spec §4.5's prefupload auxiliary routine): one row per
// (candidate, recruiter, dense rank) triple.
func WritePrefUpload(dir, name string, rows []prefrescale.Row) error {
	f, w, err := createCSV(dir, name)
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	if err := w.Write([]string{"Candidate", "Recruiter", "Rank"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Candidate, r.Recruiter, fmt.Sprintf("%d", r.Rank)}); err != nil {
			return err
		}
	}
	return w.Error()
}

func createCSV(dir, name string) (*os.File, *csv.Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, nil, err
	}
	return f, csv.NewWriter(f), nil
}
