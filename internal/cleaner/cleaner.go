package cleaner

import (
	"log/slog"

	"github.com/fenilsonani/tidydir/internal/config"
	"github.com/fenilsonani/tidydir/internal/fileops"
	"github.com/fenilsonani/tidydir/internal/scanner"
)

// Deletion records one removed item, or one that would be removed in dry-run mode
type Deletion struct {
	Kind     RequestKind
	Path     string
	Original string
	Size     int64
	DryRun   bool
}

// Result represents the result of a cleanup pass
type Result struct {
	Found       int
	Deleted     []Deletion
	DeletedSize int64
	Declined    []string
	// Skipped holds items left alone without asking: changed since the
	// scan or already gone
	Skipped []string
	// Aborted is set when a "skip all" answer ended the pass
	Aborted bool
	DryRun  bool
	Errors  []*fileops.OpError
}

// Cleaner deletes empty folders and duplicate files after asking a Decider
type Cleaner struct {
	decider Decider
	logger  *slog.Logger
	rules   scanner.Rules
	dryRun  bool
}

// New creates a new Cleaner
func New(cfg *config.Config, decider Decider, logger *slog.Logger) *Cleaner {
	if decider == nil {
		decider = Always(DecisionNo)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		decider: decider,
		logger:  logger,
		rules:   scanner.NewRules(cfg),
		dryRun:  cfg.DryRun,
	}
}

// pass holds the prompt state of one cleanup pass. It never outlives the
// pass that created it.
type pass struct {
	decider Decider
	sticky  bool // an "all" answer was given
	stopped bool // a "skip all" answer was given
}

// approve asks for a decision unless an earlier answer already settled it
func (p *pass) approve(req Request) bool {
	if p.stopped {
		return false
	}
	if p.sticky {
		return true
	}

	switch p.decider.Decide(req) {
	case DecisionYes:
		return true
	case DecisionAll:
		p.sticky = true
		return true
	case DecisionSkipAll:
		p.stopped = true
		return false
	default:
		return false
	}
}

func (r *Result) addDeletion(d Deletion) {
	r.Deleted = append(r.Deleted, d)
	r.DeletedSize += d.Size
}
