package cleaner

import (
	"os"
	"path/filepath"

	"github.com/fenilsonani/tidydir/internal/fileops"
)

// ReapEmptyFolders walks root bottom-up and offers every empty folder for
// deletion. Children are settled before their parent is inspected, so a
// parent emptied during the pass is offered too. The root itself, bundle
// directories and excluded names are never offered.
func (c *Cleaner) ReapEmptyFolders(root string) (*Result, error) {
	if _, err := os.ReadDir(root); err != nil {
		return nil, fileops.CategorizeError(fileops.OpRead, root, err)
	}

	result := &Result{DryRun: c.dryRun}
	p := &pass{decider: c.decider}

	// Folders removed in dry-run mode, so parents see them as gone
	gone := make(map[string]bool)

	c.reapDir(root, root, p, result, gone)

	if result.Found == 0 {
		c.logger.Info("No empty folders found")
	}
	return result, nil
}

func (c *Cleaner) reapDir(root, dir string, p *pass, result *Result, gone map[string]bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		opErr := fileops.CategorizeError(fileops.OpRead, dir, err)
		result.Errors = append(result.Errors, opErr)
		c.logger.Warn("Cannot read directory, skipping", "path", dir, "error", opErr.Reason.String())
		return
	}

	for _, entry := range entries {
		if p.stopped {
			return
		}
		// Symlinked directories report !IsDir and are never followed
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		path := filepath.Join(dir, name)
		if c.rules.IsBundle(name) {
			c.logger.Debug("Skipping bundle directory", "path", path)
			continue
		}
		if c.rules.IsExcluded(name) {
			c.logger.Debug("Skipping excluded directory", "path", path)
			continue
		}

		c.reapDir(root, path, p, result, gone)
	}

	if p.stopped || dir == root {
		return
	}

	if !c.isEmpty(dir, gone) {
		return
	}

	result.Found++
	c.logger.Info("Empty folder found", "path", dir)

	if !p.approve(Request{Kind: RequestEmptyFolder, Path: dir}) {
		if p.stopped {
			result.Aborted = true
			c.logger.Info("Skipping all remaining empty folders")
			return
		}
		result.Declined = append(result.Declined, dir)
		c.logger.Info("Skipped folder", "path", dir)
		return
	}

	if c.dryRun {
		gone[dir] = true
		result.addDeletion(Deletion{Kind: RequestEmptyFolder, Path: dir, DryRun: true})
		c.logger.Info("Would delete folder", "path", dir, "dry-run", true)
		return
	}

	// os.Remove fails on a folder that gained an entry since inspection
	if opErr := fileops.RemoveEmptyDir(dir); opErr != nil {
		result.Errors = append(result.Errors, opErr)
		c.logger.Warn("Cannot delete folder, skipping", "path", dir, "error", opErr.Reason.String())
		return
	}

	result.addDeletion(Deletion{Kind: RequestEmptyFolder, Path: dir})
	c.logger.Info("Deleted folder", "path", dir)
}

// isEmpty reports whether dir has no direct entries left, ignoring the
// ones already removed by a dry run
func (c *Cleaner) isEmpty(dir string, gone map[string]bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Debug("Cannot inspect folder", "path", dir, "error", err)
		return false
	}

	for _, entry := range entries {
		if !gone[filepath.Join(dir, entry.Name())] {
			return false
		}
	}
	return true
}
