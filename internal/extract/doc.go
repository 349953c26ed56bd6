// Package extract implements the Schedule Extractor (Component F, spec
// §4.5): it decomposes a solved *mip.Model's variable assignment into the
// four output artifacts — schedule grid, name-indexed table, buffer list,
// and static-upload rows.
package extract
