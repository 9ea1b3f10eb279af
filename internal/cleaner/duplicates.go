package cleaner

import (
	"os"

	"github.com/fenilsonani/tidydir/internal/fileops"
	"github.com/fenilsonani/tidydir/internal/scanner"
	"github.com/fenilsonani/tidydir/pkg/utils"
)

// ResolveDuplicates offers the duplicate side of every pair for deletion,
// in the order given. The original side is never deleted.
//
// Pairs sharing a file are rebased on the copy kept by an earlier deletion,
// so a run over three identical files leaves exactly one and never deletes
// a file an earlier prompt said would be kept.
func (c *Cleaner) ResolveDuplicates(pairs []scanner.DuplicatePair) *Result {
	result := &Result{DryRun: c.dryRun}
	if len(pairs) == 0 {
		c.logger.Info("No duplicate files found")
		return result
	}

	c.logger.Info("Duplicate files found", "pairs", len(pairs))

	p := &pass{decider: c.decider}
	deleted := make(map[string]bool)
	// Surviving copy per hash, set after a deletion
	kept := make(map[string]string)

	for _, pair := range pairs {
		if p.stopped {
			break
		}

		pair, ok := rebase(pair, deleted, kept)
		if !ok {
			result.Skipped = append(result.Skipped, pair.Duplicate)
			c.logger.Info("Already deleted, skipping", "path", pair.Duplicate)
			continue
		}
		result.Found++

		c.logger.Info("Duplicate found", "original", pair.Original, "duplicate", pair.Duplicate)
		req := Request{Kind: RequestDuplicate, Path: pair.Duplicate, Original: pair.Original}
		if !p.approve(req) {
			if p.stopped {
				result.Aborted = true
				c.logger.Info("Skipping all remaining duplicates")
				break
			}
			result.Declined = append(result.Declined, pair.Duplicate)
			c.logger.Info("Skipped duplicate", "path", pair.Duplicate)
			continue
		}

		if reason := c.verify(pair); reason != "" {
			result.Skipped = append(result.Skipped, pair.Duplicate)
			c.logger.Warn("Duplicate changed since scan, skipping", "path", pair.Duplicate, "reason", reason)
			continue
		}

		deletion := Deletion{
			Kind:     RequestDuplicate,
			Path:     pair.Duplicate,
			Original: pair.Original,
			Size:     pair.Size,
			DryRun:   c.dryRun,
		}

		if c.dryRun {
			c.logger.Info("Would delete duplicate", "path", pair.Duplicate, "dry-run", true)
		} else {
			if opErr := fileops.RemoveFile(pair.Duplicate); opErr != nil {
				result.Errors = append(result.Errors, opErr)
				c.logger.Warn("Cannot delete duplicate, skipping", "path", pair.Duplicate, "error", opErr.Reason.String())
				continue
			}
			c.logger.Info("Deleted duplicate", "path", pair.Duplicate)
		}

		deleted[pair.Duplicate] = true
		kept[pair.Hash] = pair.Original
		result.addDeletion(deletion)
	}

	return result
}

// rebase keeps the pair consistent with earlier answers. A member deleted
// earlier in the pass is replaced by the surviving copy of the same content,
// and a surviving copy is always the kept side. It returns false when the
// pair cannot be rebased and must be skipped.
func rebase(pair scanner.DuplicatePair, deleted map[string]bool, kept map[string]string) (scanner.DuplicatePair, bool) {
	survivor, hasSurvivor := kept[pair.Hash]

	if !deleted[pair.Original] && !deleted[pair.Duplicate] {
		if hasSurvivor && pair.Duplicate == survivor {
			pair.Original, pair.Duplicate = survivor, pair.Original
		}
		return pair, true
	}

	if !hasSurvivor || deleted[survivor] {
		return pair, false
	}

	// The member that is still on disk
	other := pair.Original
	if deleted[other] {
		other = pair.Duplicate
	}
	if deleted[other] || other == survivor {
		return pair, false
	}

	return scanner.DuplicatePair{
		Original:  survivor,
		Duplicate: other,
		Hash:      pair.Hash,
		Size:      pair.Size,
	}, true
}

// verify re-checks a pair right before deletion. It returns an empty string
// when both files still hold the scanned content.
func (c *Cleaner) verify(pair scanner.DuplicatePair) string {
	if _, err := os.Stat(pair.Original); err != nil {
		return "original missing"
	}

	hash, err := utils.HashFile(pair.Duplicate)
	if err != nil {
		return "duplicate unreadable"
	}
	if hash != pair.Hash {
		return "duplicate content changed"
	}

	if hash, err = utils.HashFile(pair.Original); err != nil || hash != pair.Hash {
		return "original content changed"
	}
	return ""
}
