// SPDX-License-Identifier: MIT
package ioformat

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/campusched/campusched/internal/model"
)

// openCSV opens path and returns a csv.Reader configured to tolerate ragged
// rows (shortlist columns have differing candidate counts per spec §6).
func openCSV(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return f, r, nil
}

// ReadShortlists parses Shortlists.csv: one column per recruiter, cells are
// the candidates that recruiter has shortlisted.
func ReadShortlists(path string, b *model.Builder) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := r.Read()
	if err != nil {
		return err
	}
	recruiters := make([]string, len(header))
	for i, h := range header {
		recruiters[i] = model.Normalize(h)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for i, cell := range row {
			if i >= len(recruiters) {
				continue
			}
			n := model.Normalize(cell)
			if n == "" {
				continue
			}
			b.AddShortlist(recruiters[i], n)
		}
	}
	return nil
}

// ReadSlotsPanels parses SlotsPanels.csv: first column is the slot
// identifier (order-defining), remaining columns are per-recruiter panel
// counts.
func ReadSlotsPanels(path string, b *model.Builder) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := r.Read()
	if err != nil {
		return err
	}
	if len(header) < 1 {
		return model.ErrEmptySlots
	}
	recruiters := make([]string, len(header)-1)
	for i := 1; i < len(header); i++ {
		recruiters[i-1] = model.Normalize(header[i])
	}

	var errs *multierror.Error
	var slots []string
	rowNum := 1
	for {
		row, err := r.Read()
		rowNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		slot := model.Normalize(row[0])
		slots = append(slots, slot)
		for i := 1; i < len(row) && i-1 < len(recruiters); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				b.SetPanels(slot, recruiters[i-1], 0)
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				errs = multierror.Append(errs, &model.InputError{File: "SlotsPanels.csv", Row: rowNum, Column: recruiters[i-1], Value: cell, Err: model.ErrBadPanelCount})
				continue
			}
			b.SetPanels(slot, recruiters[i-1], v)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	b.SetSlots(slots)
	return nil
}

// ReadSlotsInterview parses SlotsInterview.csv: header is recruiter
// identifiers, the single data row is L(c).
func ReadSlotsInterview(path string, b *model.Builder) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := r.Read()
	if err != nil {
		return err
	}
	row, err := r.Read()
	if err != nil {
		return err
	}

	var errs *multierror.Error
	for i, h := range header {
		if i >= len(row) {
			break
		}
		recruiter := model.Normalize(h)
		cell := strings.TrimSpace(row[i])
		v, err := strconv.Atoi(cell)
		if err != nil || v < 1 {
			errs = multierror.Append(errs, &model.InputError{File: "SlotsInterview.csv", Row: 2, Column: recruiter, Value: cell, Err: model.ErrBadPanelCount})
			continue
		}
		b.SetMultiSlot(recruiter, v)
	}
	return errs.ErrorOrNil()
}

// ReadGDPanels parses GDPanels.csv: each row (no header) is a panel-group
// tuple of recruiter identifiers.
func ReadGDPanels(path string, b *model.Builder) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		var members []string
		for _, cell := range row {
			n := model.Normalize(cell)
			if n != "" {
				members = append(members, n)
			}
		}
		if len(members) > 0 {
			b.AddGroup(members)
		}
	}
	return nil
}

// ReadPreferences parses Preferences.csv: first column is the candidate,
// remaining columns one per recruiter, cells are integer ranks.
func ReadPreferences(path string, b *model.Builder) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := r.Read()
	if err != nil {
		return err
	}
	recruiters := make([]string, len(header)-1)
	for i := 1; i < len(header); i++ {
		recruiters[i-1] = model.Normalize(header[i])
	}

	var errs *multierror.Error
	rowNum := 1
	for {
		row, err := r.Read()
		rowNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		candidate := model.Normalize(row[0])
		for i := 1; i < len(row) && i-1 < len(recruiters); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				errs = multierror.Append(errs, &model.InputError{File: "Preferences.csv", Row: rowNum, Column: recruiters[i-1], Value: cell, Err: model.ErrPreferenceOutOfRange})
				continue
			}
			b.SetPreference(candidate, recruiters[i-1], v)
		}
	}
	return errs.ErrorOrNil()
}

// ReadFixed parses a Fixed.csv shaped like a schedule output: header
// "Slot,<recruiter><panel#>,...", one row per slot, cells holding a
// candidate identifier (optionally annotated "<name> <rank>_<crit>" as
// sche.csv emits, to support the round-trip property in spec §8).
func ReadFixed(path string, b *model.Builder) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := r.Read()
	if err != nil {
		return err
	}
	columnRecruiter := make([]string, len(header))
	for i, h := range header {
		columnRecruiter[i] = model.Normalize(stripTrailingDigits(h))
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		slot := model.Normalize(row[0])
		for i := 1; i < len(row) && i < len(columnRecruiter); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			name := firstToken(cell)
			candidate := model.Normalize(name)
			if candidate == "" {
				continue
			}
			b.AddPreFixed(slot, columnRecruiter[i], candidate)
		}
	}
	return nil
}

// ReadCandidateList parses a free-form comma-separated candidate list
// spread across any number of lines (used for LeftProcess.csv and
// SkipInitial.csv).
func ReadCandidateList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		for _, cell := range strings.Split(line, ",") {
			n := model.Normalize(cell)
			if n != "" {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func firstToken(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}

func stripTrailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i]
}
