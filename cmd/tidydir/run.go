package main

import (
	"errors"
	"log/slog"

	"github.com/fenilsonani/tidydir/internal/cleaner"
	"github.com/fenilsonani/tidydir/internal/config"
	"github.com/fenilsonani/tidydir/internal/organizer"
	"github.com/fenilsonani/tidydir/internal/reporter"
	"github.com/fenilsonani/tidydir/internal/scanner"
)

// pass selects which passes a run performs
type pass int

const (
	passOrganize pass = 1 << iota
	passEmpty
	passDupes

	passAll = passOrganize | passEmpty | passDupes
)

// errNoPasses is returned when a runner is asked to run nothing
var errNoPasses = errors.New("no pass selected")

// runner performs the selected passes in order over one root
type runner struct {
	cfg          *config.Config
	root         string
	logger       *slog.Logger
	decider      cleaner.Decider
	progress     scanner.ProgressFunc
	progressDone func()
}

func (r *runner) run(passes pass) (*reporter.RunReport, error) {
	if passes&passAll == 0 {
		return nil, errNoPasses
	}

	report := reporter.NewRunReport(r.root, r.cfg.DryRun)
	logger := r.logger.With("run", report.ID)

	if r.cfg.DryRun {
		logger.Info("Dry run, nothing will be changed")
	}

	if passes&passOrganize != 0 {
		logger.Info("Organizing files", "root", r.root)
		res, err := organizer.New(r.cfg, logger).Organize(r.root)
		if err != nil {
			return nil, err
		}
		report.Organize = res
	}

	clnr := cleaner.New(r.cfg, r.decider, logger)

	if passes&passEmpty != 0 {
		logger.Info("Looking for empty folders", "root", r.root)
		res, err := clnr.ReapEmptyFolders(r.root)
		if err != nil {
			return nil, err
		}
		report.Folders = res
	}

	if passes&passDupes != 0 {
		logger.Info("Looking for duplicate files", "root", r.root)
		scnr := scanner.New(r.cfg, logger)
		if r.progress != nil {
			scnr.SetProgress(r.progress)
		}
		scan, err := scnr.FindDuplicates(r.root)
		if r.progressDone != nil {
			r.progressDone()
		}
		if err != nil {
			return nil, err
		}
		report.Scan = scan
		report.Duplicates = clnr.ResolveDuplicates(scan.Pairs)
	}

	return report, nil
}
