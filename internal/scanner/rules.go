package scanner

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fenilsonani/tidydir/internal/config"
)

// Rules decides which directory entries a walk must leave alone
type Rules struct {
	BundleSuffixes  []string
	ExcludePatterns []string
}

// NewRules builds walk rules from the configuration
func NewRules(cfg *config.Config) Rules {
	suffixes := cfg.BundleSuffixes
	if len(suffixes) == 0 {
		suffixes = config.DefaultBundleSuffixes()
	}
	return Rules{
		BundleSuffixes:  suffixes,
		ExcludePatterns: cfg.ExcludePatterns,
	}
}

// IsBundle reports whether a directory name marks an opaque bundle
func (r Rules) IsBundle(name string) bool {
	for _, suffix := range r.BundleSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether name matches one of the exclude patterns.
// Patterns may use {a,b} alternatives.
func (r Rules) IsExcluded(name string) bool {
	for _, pattern := range r.ExcludePatterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// Extension returns the lowercased last extension of name.
// Dotfiles such as ".bashrc" and names ending in a dot have none.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}
