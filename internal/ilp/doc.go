// Package ilp implements the ILP Builder (Component D, spec §4.3): the
// sparse binary decision variables, the two-branch preference-weighted
// objective, and all seven constraint families, assembled into a
// *mip.Model ready for mip.Solve.
package ilp
