// SPDX-License-Identifier: MIT
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/ryanuber/columnize"

	"github.com/campusched/campusched/internal/deriv"
	"github.com/campusched/campusched/internal/extract"
	"github.com/campusched/campusched/internal/ilp"
	"github.com/campusched/campusched/internal/ioformat"
	"github.com/campusched/campusched/internal/mip"
	"github.com/campusched/campusched/internal/model"
	"github.com/campusched/campusched/internal/prefrescale"
	"github.com/campusched/campusched/internal/solve"
	"github.com/campusched/campusched/internal/validate"
)

// RunCommand solves one scheduling problem end-to-end: load, derive,
// build the ILP, solve, extract, validate, and write the four output
// artifacts.
type RunCommand struct {
	Log hclog.Logger
}

func (c *RunCommand) Synopsis() string {
	return "Solve a campus-placement interview schedule"
}

func (c *RunCommand) Help() string {
	return strings.TrimSpace(`
Usage: campusched run [options] SHORTLISTS SLOTSPANELS SLOTSINTERVIEW GDPANELS

  Reads the four required input CSVs, builds and solves the scheduling ILP,
  and writes sche.csv, names.csv, buff.csv, and staticupload.csv to the
  output directory.

Options:

  -preferences=PATH     optional Preferences.csv
  -fixed=PATH           optional Fixed.csv (pre-fixed assignments)
  -left-process=PATH    optional LeftProcess.csv
  -skip-initial=PATH    optional SkipInitial.csv
  -out=DIR              output directory (default: out)
`)
}

func (c *RunCommand) Run(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var preferences, fixed, leftProcess, skipInitial, outDir string
	fs.StringVar(&preferences, "preferences", "", "optional Preferences.csv")
	fs.StringVar(&fixed, "fixed", "", "optional Fixed.csv")
	fs.StringVar(&leftProcess, "left-process", "", "optional LeftProcess.csv")
	fs.StringVar(&skipInitial, "skip-initial", "", "optional SkipInitial.csv")
	fs.StringVar(&outDir, "out", "out", "output directory")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()
	if len(positional) != 4 {
		color.Red("expected 4 positional arguments (SHORTLISTS SLOTSPANELS SLOTSINTERVIEW GDPANELS), got %d", len(positional))
		return 1
	}
	shortlistsPath, slotsPanelsPath, slotsInterviewPath, gdPanelsPath := positional[0], positional[1], positional[2], positional[3]

	b := model.NewBuilder()
	loaders := []func() error{
		func() error { return ioformat.ReadShortlists(shortlistsPath, b) },
		func() error { return ioformat.ReadSlotsPanels(slotsPanelsPath, b) },
		func() error { return ioformat.ReadSlotsInterview(slotsInterviewPath, b) },
		func() error { return ioformat.ReadGDPanels(gdPanelsPath, b) },
	}
	if preferences != "" {
		loaders = append(loaders, func() error { return ioformat.ReadPreferences(preferences, b) })
	}
	if fixed != "" {
		loaders = append(loaders, func() error { return ioformat.ReadFixed(fixed, b) })
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
	if skipInitial != "" {
		loaders = append(loaders, func() error {
			names, err := ioformat.ReadCandidateList(skipInitial)
			if err != nil {
				return err
			}
			for _, n := range names {
				b.AddSkipInitial(n)
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
		color.Red("input validation failed:")
		fmt.Println(err)
		return 1
	}
	c.Log.Info("input loaded", "recruiters", len(in.Recruiters()), "candidates", len(in.Candidates()), "slots", len(in.Slots()))

	d := deriv.Compute(in)
	for c0 := range d.Oversubscribed {
		if d.Oversubscribed[c0] {
			c.Log.Warn("group oversubscribed", "group", c0, "compSL", d.CompSL[c0], "compPanels", d.CompPanels[c0])
			color.Yellow("warning: group %q is oversubscribed (shortlist demand exceeds panel throughput)", c0)
		}
	}

	var pref *prefrescale.Result
	if in.HasPreferences() {
		pref = prefrescale.Rescale(in, d)
	}

	m, err := ilp.Build(in, d, pref, ilp.DefaultOptions())
	if err != nil {
		color.Red("failed to build ILP: %v", err)
		return 1
	}

	res, err := solve.Run(c.Log, in, d, m, mip.Options{})
	if err != nil {
		color.Red("solver did not reach an optimal solution: %v", err)
		return 1
	}

	grid, names, buff, upload := extract.Extract(in, d, pref, m, res)
	report := validate.Validate(in, d, pref, names)
	printReport(report)

	if err := ioformat.WriteSchedule(outDir, grid); err != nil {
		color.Red("failed to write sche.csv: %v", err)
		return 1
	}
	if err := ioformat.WriteNames(outDir, names); err != nil {
		color.Red("failed to write names.csv: %v", err)
		return 1
	}
	if err := ioformat.WriteBuffer(outDir, buff); err != nil {
		color.Red("failed to write buff.csv: %v", err)
		return 1
	}
	if err := ioformat.WriteStaticUpload(outDir, upload); err != nil {
		color.Red("failed to write staticupload.csv: %v", err)
		return 1
	}

	color.Green("schedule written to %s (objective = %.2f)", outDir, res.Objective)
	return 0
}

func printReport(r *validate.Report) {
	var lines []string
	lines = append(lines, "Check | Result")
	lines = append(lines, fmt.Sprintf("Preference-order violations | %d", len(r.PreferenceOrderViolations)))
	lines = append(lines, fmt.Sprintf("Contiguity violations | %d", len(r.ContiguityViolations)))
	lines = append(lines, fmt.Sprintf("Oversubscribed groups | %d", len(r.OversubscribedGroups)))
	fmt.Println(columnize.SimpleFormat(lines))

	for _, n := range r.PreferenceOrderViolations {
		color.Yellow("preference-order regression for candidate %q", n)
	}
	for _, cn := range r.ContiguityViolations {
		color.Yellow("contiguity violation: %s", cn)
	}
}
