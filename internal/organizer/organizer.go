// Package organizer sorts files into category folders at the root of a tree.
package organizer

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fenilsonani/tidydir/internal/config"
	"github.com/fenilsonani/tidydir/internal/fileops"
	"github.com/fenilsonani/tidydir/internal/scanner"
)

// Move records one file moved into its category folder
type Move struct {
	Source      string
	Destination string
	Category    string
	DryRun      bool
}

// Result represents the result of an organize pass
type Result struct {
	Scanned int
	Moves   []Move
	// InPlace counts files already sitting in their category folder
	InPlace int
	Skipped []string
	DryRun  bool
	Errors  []*fileops.OpError
}

// CategoryCounts returns the number of moves per category
func (r *Result) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, m := range r.Moves {
		counts[m.Category]++
	}
	return counts
}

// Categories returns the categories that received files, sorted
func (r *Result) Categories() []string {
	counts := r.CategoryCounts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Organizer moves every file of a tree into <root>/<category>
type Organizer struct {
	categories config.Categories
	rules      scanner.Rules
	logger     *slog.Logger
	dryRun     bool
}

// New creates a new Organizer
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Organizer{
		categories: cfg.Categories,
		rules:      scanner.NewRules(cfg),
		logger:     logger,
		dryRun:     cfg.DryRun,
	}
}

// Organize walks root depth-first and moves each file into the folder of
// its category directly under root. Bundle directories and excluded names
// are left untouched. Nothing already present at a destination is ever
// overwritten.
func (o *Organizer) Organize(root string) (*Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fileops.CategorizeError(fileops.OpRead, root, err)
	}

	w := &walk{
		Organizer: o,
		root:      root,
		result:    &Result{DryRun: o.dryRun},
		planned:   make(map[string]bool),
	}
	w.entries(root, entries)

	r := w.result
	o.logger.Info("Organize finished",
		"scanned", r.Scanned,
		"moved", len(r.Moves),
		"in_place", r.InPlace,
		"errors", len(r.Errors))

	return r, nil
}

// walk holds the state of one Organize call
type walk struct {
	*Organizer
	root   string
	result *Result
	// planned holds destinations reserved by a dry run
	planned map[string]bool
}

func (w *walk) dir(path string) {
	entries, err := os.ReadDir(path)
	if err != nil {
		opErr := fileops.CategorizeError(fileops.OpRead, path, err)
		w.result.Errors = append(w.result.Errors, opErr)
		w.logger.Warn("Cannot read directory, skipping", "path", path, "error", opErr.Reason.String())
		return
	}
	w.entries(path, entries)
}

func (w *walk) entries(dir string, entries []os.DirEntry) {
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if w.rules.IsBundle(name) {
				w.logger.Info("Skipping bundle directory", "path", path)
				w.result.Skipped = append(w.result.Skipped, path)
				continue
			}
			if w.rules.IsExcluded(name) {
				w.logger.Info("Skipping excluded directory", "path", path)
				w.result.Skipped = append(w.result.Skipped, path)
				continue
			}
			w.dir(path)
			continue
		}

		if w.rules.IsExcluded(name) {
			w.logger.Debug("Skipping excluded file", "path", path)
			w.result.Skipped = append(w.result.Skipped, path)
			continue
		}

		w.file(dir, path, name)
	}
}

func (w *walk) file(dir, path, name string) {
	w.result.Scanned++

	category := w.categories.Lookup(scanner.Extension(name))
	destDir := filepath.Join(w.root, category)

	if dir == destDir {
		w.result.InPlace++
		return
	}

	if w.dryRun {
		dst, err := fileops.FreeNameExcept(destDir, name, func(p string) bool { return w.planned[p] })
		if err != nil {
			w.fail(fileops.CategorizeError(fileops.OpMove, path, err))
			return
		}
		w.planned[dst] = true
		w.result.Moves = append(w.result.Moves, Move{Source: path, Destination: dst, Category: category, DryRun: true})
		w.logger.Info("Would move file", "from", path, "to", dst, "category", category, "dry-run", true)
		return
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		w.fail(fileops.CategorizeError(fileops.OpMkdir, destDir, err))
		return
	}

	dst, opErr := fileops.MoveInto(path, destDir)
	if opErr != nil {
		w.fail(opErr)
		return
	}

	w.result.Moves = append(w.result.Moves, Move{Source: path, Destination: dst, Category: category})
	w.logger.Info("Moved file", "from", path, "to", dst, "category", category)
}

func (w *walk) fail(opErr *fileops.OpError) {
	w.result.Errors = append(w.result.Errors, opErr)
	w.logger.Warn("Cannot move file, skipping", "path", opErr.Path, "error", opErr.Reason.String())
}
