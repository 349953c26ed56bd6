// SPDX-License-Identifier: MIT
package main

import (
	"flag"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/ioformat"
	"github.com/campusched/campusched/internal/model"
	"github.com/campusched/campusched/internal/prefrescale"
)

// PrefUploadCommand exposes the standalone preference-rescale transform
// (spec §4.5, grounded on original_source/GenPrefUpload.py) without running
// the rest of the scheduling pipeline: it loads the input files, computes
// the Active partition, and dense-rescales preferences restricted to each
// candidate's actual shortlists.
type PrefUploadCommand struct {
	Log hclog.Logger
}

func (c *PrefUploadCommand) Synopsis() string {
	return "Rank-normalize preferences restricted to shortlists"
}

func (c *PrefUploadCommand) Help() string {
	return strings.TrimSpace(`
Usage: campusched prefupload [options] SHORTLISTS SLOTSPANELS SLOTSINTERVIEW GDPANELS PREFERENCES

  Computes the dense preference rescale R'(n,c) for every Active candidate
  and writes it as a standalone CSV, without building or solving the ILP.

Options:

  -left-process=PATH   optional LeftProcess.csv
  -out=DIR             output directory (default: out)
  -name=FILE            output filename (default: prefupload.csv)
`)
}

func (c *PrefUploadCommand) Run(args []string) int {
	fs := flag.NewFlagSet("prefupload", flag.ContinueOnError)
	var leftProcess, outDir, name string
	fs.StringVar(&leftProcess, "left-process", "", "optional LeftProcess.csv")
	fs.StringVar(&outDir, "out", "out", "output directory")
	fs.StringVar(&name, "name", "prefupload.csv", "output filename")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()
	if len(positional) != 5 {
		color.Red("expected 5 positional arguments (SHORTLISTS SLOTSPANELS SLOTSINTERVIEW GDPANELS PREFERENCES), got %d", len(positional))
		return 1
	}

	b := model.NewBuilder()
	loaders := []func() error{
		func() error { return ioformat.ReadShortlists(positional[0], b) },
		func() error { return ioformat.ReadSlotsPanels(positional[1], b) },
		func() error { return ioformat.ReadSlotsInterview(positional[2], b) },
		func() error { return ioformat.ReadGDPanels(positional[3], b) },
		func() error { return ioformat.ReadPreferences(positional[4], b) },
	}
	if leftProcess != "" {
		loaders = append(loaders, func() error {
			names, err := ioformat.ReadCandidateList(leftProcess)
			if err != nil {
				return err
			}
			for _, n := range names {
				b.AddLeftProcess(n)
			}
			return nil
		})
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			color.Red("input error: %v", err)
			return 1
		}
	}

	in, err := b.Build()
	if err != nil {
		color.Red("input validation failed: %v", err)
		return 1
	}

	d := deriv.Compute(in)
	res := prefrescale.Rescale(in, d)

	if err := ioformat.WritePrefUpload(outDir, name, res.ToRows()); err != nil {
		color.Red("failed to write %s: %v", name, err)
		return 1
	}

	color.Green("preference rescale written to %s/%s", outDir, name)
	return 0
}
