// Package validate implements the post-solve Validator (Component G, spec
// §4.6): preference-order monotonicity per candidate, multi-slot
// contiguity-block-length sanity, and oversubscription warnings. All
// findings are diagnostics — none of them cause Validate to fail the run;
// the caller decides what to do with the returned Report.
package validate
