// Package prefrescale implements the Preference Rescaler (Component C,
// spec §4.2): for every Active candidate with raw preferences, restrict to
// recruiters that actually shortlisted them, sort ascending by raw rank
// (ties broken by recruiter identifier), and emit a dense rank 1..k. The
// result feeds both the ILP objective (internal/ilp) and the validator's
// preference-order reference (internal/validate).
//
// §4.5 of spec.md additionally asks for this same dense-rescale logic to be
// exposed as a standalone transform (the "preference-upload" helper from
// original_source/GenPrefUpload.py); the prefupload command in cmd/campusched
// calls Rescale directly for that purpose.
package prefrescale
