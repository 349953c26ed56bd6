// Package model defines the frozen Input Model (Component A, spec §3):
// recruiters, candidates, slots, shortlists, panel capacities, multi-slot
// lengths, panel groups, pre-fixed assignments, the left-process and
// skip-initial sets, and candidate preferences.
//
// Build a model with Builder, then call Build once; the returned *Input is
// read-only for the rest of the pipeline. Loaders under internal/ioformat
// populate a Builder from CSV; tests may drive a Builder directly.
package model
