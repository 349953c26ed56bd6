// Package solve implements the Solver Driver (Component E, spec §4.4): it
// submits a built *mip.Model to mip.Solve, logs the required lifecycle
// lines ("Creating IPLP", "Optimising", terminal status) via hclog, and
// timestamps the optimize call's start and end. On any non-optimal status
// it returns an error so the caller aborts output extraction — no partial
// writes, per spec §5/§7.
package solve
