// Package deriv computes the Derived Quantities (Component B, spec §4.1)
// from a frozen model.Input: per-recruiter max panel count, slot cost
// vector, per-candidate shortlist count, the Active/Buffer candidate
// partition, per-group shortlist and panel totals, and per-group
// throughput targets.
package deriv
