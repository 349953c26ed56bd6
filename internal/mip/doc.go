// Package mip is the "external collaborator" spec §4.4 describes: a
// minimal, pluggable binary-ILP solving capability (add binary variables,
// add linear equality/inequality constraints, set a linear objective,
// optimize, read back values). No example repo in the retrieval pack
// vendors an off-the-shelf MIP solver, so this package is a from-scratch
// implementation grounded on the teacher's exact-search idiom
// (tsp.TSPBranchAndBound in tsp/bb.go): a dedicated engine struct (not
// closures), deterministic DFS branching with an admissible lower bound,
// and a soft, rarely-checked time budget.
//
// flow.go additionally provides a Dinic-style (flow/dinic.go) max-flow
// computation used only as a pre-solve, per-group feasibility diagnostic —
// never to seed the branch-and-bound's incumbent, since the simplified
// bipartite relaxation it solves ignores contiguity, cross-group slot
// exclusion, skip-initial, and pre-fixed pinning and so cannot certify a
// numerically sound bound against the full constraint set.
package mip
