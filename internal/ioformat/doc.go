// Package ioformat implements the CSV external interfaces described in
// spec §6: the six input readers (Shortlists, SlotsPanels, SlotsInterview,
// GDPanels, Preferences, Fixed, plus the LeftProcess/SkipInitial lists) and
// the five output writers (sche.csv, names.csv, buff.csv,
// staticupload.csv, and the prefupload command's dense-rank file). Every identifier read from a file is passed through
// model.Normalize before it is stored, so cross-file joins always succeed.
//
// This package is deliberately thin: spec §1 scopes CSV parsing as an
// external collaborator, so readers here do the minimum work of turning
// rows into model.Builder calls or internal/extract output rows, with
// input-validation errors aggregated via go-multierror (spec §7).
package ioformat
