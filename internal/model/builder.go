// SPDX-License-Identifier: MIT
//
// builder.go — Builder assembles and validates an Input (Component A).
//
// Loaders (internal/ioformat) normalize every identifier (model.Normalize)
// before calling these setters; Builder itself does not re-normalize, so it
// can also be driven directly by tests with literal identifiers.
package model

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Builder accumulates raw scheduling data and produces a validated Input.
type Builder struct {
	slots []string

	shortlist map[string]map[string]bool
	panels    map[string]map[string]int
	multiSlot map[string]int

	groups        []Group
	groupHead     map[string]string
	groupFileName string // for error messages

	prefs    map[string]map[string]int
	hasPrefs bool

	preFixed    map[PreFixedTriple]bool
	leftProcess map[string]bool
	skipInitial map[string]bool
}

// NewBuilder returns an empty Builder ready to accept input rows.
func NewBuilder() *Builder {
	return &Builder{
		shortlist:   make(map[string]map[string]bool),
		panels:      make(map[string]map[string]int),
		multiSlot:   make(map[string]int),
		groupHead:   make(map[string]string),
		prefs:       make(map[string]map[string]int),
		preFixed:    make(map[PreFixedTriple]bool),
		leftProcess: make(map[string]bool),
		skipInitial: make(map[string]bool),
	}
}

// SetSlots records the ordered slot list. Later calls replace earlier ones.
func (b *Builder) SetSlots(slots []string) {
	b.slots = append([]string(nil), slots...)
}

// AddShortlist records that recruiter has shortlisted candidate.
func (b *Builder) AddShortlist(recruiter, candidate string) {
	if b.shortlist[recruiter] == nil {
		b.shortlist[recruiter] = make(map[string]bool)
	}
	b.shortlist[recruiter][candidate] = true
}

// SetPanels records P(slot, recruiter) = count.
func (b *Builder) SetPanels(slot, recruiter string, count int) {
	if b.panels[slot] == nil {
		b.panels[slot] = make(map[string]int)
	}
	b.panels[slot][recruiter] = count
}

// SetMultiSlot records L(recruiter) = length.
func (b *Builder) SetMultiSlot(recruiter string, length int) {
	b.multiSlot[recruiter] = length
}

// AddGroup records one panel-group tuple (first member is the head).
func (b *Builder) AddGroup(members []string) {
	if len(members) == 0 {
		return
	}
	cp := append([]string(nil), members...)
	b.groups = append(b.groups, Group{Head: cp[0], Members: cp})
	for _, m := range cp {
		b.groupHead[m] = cp[0]
	}
}

// SetPreference records R(candidate, recruiter) = rank.
func (b *Builder) SetPreference(candidate, recruiter string, rank int) {
	if b.prefs[candidate] == nil {
		b.prefs[candidate] = make(map[string]int)
	}
	b.prefs[candidate][recruiter] = rank
	b.hasPrefs = true
}

// AddPreFixed records a required (slot, recruiter, candidate) assignment.
func (b *Builder) AddPreFixed(slot, recruiter, candidate string) {
	b.preFixed[PreFixedTriple{slot, recruiter, candidate}] = true
}

// AddLeftProcess excludes a candidate from consideration entirely.
func (b *Builder) AddLeftProcess(candidate string) {
	b.leftProcess[candidate] = true
}

// AddSkipInitial forbids a candidate from being assigned in slots[0].
func (b *Builder) AddSkipInitial(candidate string) {
	b.skipInitial[candidate] = true
}

// Build validates the accumulated data against spec §3's invariants and
// returns a frozen Input. All detected violations are collected via
// go-multierror rather than returning on the first one, so a caller sees
// the complete list of offending rows in one pass.
func (b *Builder) Build() (*Input, error) {
	var errs *multierror.Error

	if len(b.slots) == 0 {
		errs = multierror.Append(errs, newInputError("SlotsPanels.csv", 0, "", nil, ErrEmptySlots))
	}

	recruiterSet := make(map[string]bool)
	for c := range b.shortlist {
		recruiterSet[c] = true
	}
	for _, row := range b.panels {
		for c := range row {
			recruiterSet[c] = true
		}
	}
	for c := range b.multiSlot {
		recruiterSet[c] = true
	}
	groupRecruiters := make(map[string]int) // recruiter -> count of groups containing it
	for _, g := range b.groups {
		for _, m := range g.Members {
			groupRecruiters[m]++
			recruiterSet[m] = true
		}
	}

	for c, n := range groupRecruiters {
		if n > 1 {
			errs = multierror.Append(errs, newInputError("GDPanels.csv", 0, "", c, ErrDuplicateGroupMembership))
		}
	}
	for c := range recruiterSet {
		if groupRecruiters[c] == 0 {
			errs = multierror.Append(errs, newInputError("GDPanels.csv", 0, "", c, ErrUngroupedRecruiter))
		}
	}

	for _, row := range b.panels {
		for c, v := range row {
			if v < 0 {
				errs = multierror.Append(errs, newInputError("SlotsPanels.csv", 0, c, v, ErrNegativePanelCount))
			}
		}
	}

	candidateSet := make(map[string]bool)
	for _, row := range b.shortlist {
		for n := range row {
			candidateSet[n] = true
		}
	}
	numRecruiters := len(recruiterSet)
	for n, row := range b.prefs {
		for _, rank := range row {
			if rank < 1 || rank > numRecruiters {
				errs = multierror.Append(errs, newInputError("Preferences.csv", 0, n, rank, ErrPreferenceOutOfRange))
			}
		}
	}
	if b.hasPrefs {
		for n := range candidateSet {
			if b.leftProcess[n] {
				continue
			}
			if _, ok := b.prefs[n]; !ok {
				errs = multierror.Append(errs, newInputError("Preferences.csv", 0, "", n, ErrMissingPreference))
			}
		}
	}

	for k := range b.preFixed {
		if !recruiterSet[k.Recruiter] || !candidateSet[k.Candidate] || !containsStr(b.slots, k.Slot) {
			errs = multierror.Append(errs, newInputError("Fixed.csv", 0, "", fmt.Sprintf("%s/%s/%s", k.Slot, k.Recruiter, k.Candidate), ErrUnknownPreFixedTriple))
		}
	}

	if errs.ErrorOrNil() != nil {
		return nil, errs
	}

	in := &Input{
		recruiters:  sortedKeys(recruiterSet),
		candidates:  sortedKeys(candidateSet),
		slots:       append([]string(nil), b.slots...),
		groups:      append([]Group(nil), b.groups...),
		groupHead:   copyStringMap(b.groupHead),
		shortlist:   deepCopyBoolMap(b.shortlist),
		panels:      deepCopyIntMap(b.panels),
		multiSlot:   copyIntMap(b.multiSlot),
		prefs:       deepCopyIntMap(b.prefs),
		hasPrefs:    b.hasPrefs,
		preFixed:    copyTripleMap(b.preFixed),
		leftProcess: copyBoolSet(b.leftProcess),
		skipInitial: copyBoolSet(b.skipInitial),
	}
	return in, nil
}

func containsStr(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyBoolSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func deepCopyBoolMap(m map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(m))
	for k, v := range m {
		out[k] = copyBoolSet(v)
	}
	return out
}

func deepCopyIntMap(m map[string]map[string]int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(m))
	for k, v := range m {
		out[k] = copyIntMap(v)
	}
	return out
}

func copyTripleMap(m map[PreFixedTriple]bool) map[PreFixedTriple]bool {
	out := make(map[PreFixedTriple]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
