package scanner

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/tidydir/internal/config"
	"github.com/fenilsonani/tidydir/internal/fileops"
	"github.com/fenilsonani/tidydir/pkg/utils"
)

// ProgressFunc is called after every hashed file
type ProgressFunc func(path string, filesHashed int, bytesHashed int64)

// Scanner walks a tree and finds files with identical content
type Scanner struct {
	rules    Rules
	logger   *slog.Logger
	progress ProgressFunc
}

// New creates a new Scanner
func New(cfg *config.Config, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		rules:  NewRules(cfg),
		logger: logger,
	}
}

// SetProgress registers a callback reporting hashing progress
func (s *Scanner) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// FindDuplicates hashes every regular file under root and pairs each file
// with the first file seen with the same content. Pairs are returned in
// discovery order. Bundle directories and excluded names are skipped.
func (s *Scanner) FindDuplicates(root string) (*DuplicateResult, error) {
	result := &DuplicateResult{}

	// Map of hash to the first path seen with it
	firstSeen := make(map[string]string)
	var bytesHashed int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			opErr := fileops.CategorizeError(fileops.OpRead, path, err)
			result.Errors = append(result.Errors, opErr)
			s.logger.Warn("Cannot read directory, skipping", "path", path, "error", opErr.Reason.String())
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if s.rules.IsBundle(name) {
				s.logger.Info("Skipping bundle directory", "path", path)
				result.Skipped = append(result.Skipped, path)
				return filepath.SkipDir
			}
			if s.rules.IsExcluded(name) {
				s.logger.Debug("Skipping excluded directory", "path", path)
				result.Skipped = append(result.Skipped, path)
				return filepath.SkipDir
			}
			return nil
		}

		if s.rules.IsExcluded(name) {
			s.logger.Debug("Skipping excluded file", "path", path)
			result.Skipped = append(result.Skipped, path)
			return nil
		}

		// Symlinks, sockets and devices are never hashed
		if !d.Type().IsRegular() {
			s.logger.Debug("Skipping non-regular file", "path", path)
			return nil
		}

		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}

		hash, hashErr := utils.HashFile(path)
		if hashErr != nil {
			opErr := fileops.CategorizeError(fileops.OpHash, path, hashErr)
			result.Errors = append(result.Errors, opErr)
			s.logger.Warn("Cannot hash file, skipping", "path", path, "error", opErr.Reason.String())
			return nil
		}
		result.FilesHashed++
		bytesHashed += size
		if s.progress != nil {
			s.progress(path, result.FilesHashed, bytesHashed)
		}

		original, seen := firstSeen[hash]
		if !seen {
			firstSeen[hash] = path
			return nil
		}

		pair := OrderPair(original, path)
		pair.Hash = hash
		pair.Size = size
		result.Pairs = append(result.Pairs, pair)
		s.logger.Debug("Duplicate content", "original", pair.Original, "duplicate", pair.Duplicate)

		return nil
	})
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) || errors.Is(err, fs.ErrPermission) {
			return result, fileops.CategorizeError(fileops.OpRead, root, err)
		}
		return result, err
	}

	return result, nil
}

// OrderPair decides which of two identical files is kept.
// first is the path seen first, later the one seen after it. If first's name
// contains "copy" or later's name does not, later is kept and first is
// offered for deletion; otherwise first is kept. The second half of the
// condition means two names without "copy" also swap.
func OrderPair(first, later string) DuplicatePair {
	if nameHasCopy(first) || !nameHasCopy(later) {
		return DuplicatePair{Original: later, Duplicate: first}
	}
	return DuplicatePair{Original: first, Duplicate: later}
}

func nameHasCopy(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), "copy")
}
