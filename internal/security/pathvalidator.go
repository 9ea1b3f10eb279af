package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathValidator refuses to organize system directories
type PathValidator struct {
	protectedPaths []string
	// exactPaths are refused themselves, their children are allowed
	exactPaths []string
}

// NewPathValidator creates a new PathValidator with default protected paths
func NewPathValidator() *PathValidator {
	pv := &PathValidator{
		protectedPaths: []string{
			// Unix system directories
			"/",
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/lib",
			"/lib64",
			"/proc",
			"/sbin",
			"/sys",
			"/usr",
			"/var",
			// macOS system directories
			"/System",
			"/Applications",
			"/Library",
		},
	}

	// Organizing the whole home directory would flatten dotfile folders
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		pv.exactPaths = append(pv.exactPaths, filepath.Clean(home))
	}

	return pv
}

// ValidateRoot checks that path can be used as the root of an organize run.
// The path must be absolute, resolve to an existing directory and must not
// be a protected system location.
func (pv *PathValidator) ValidateRoot(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	// Resolve symlinks so /tmp style links are checked by their target
	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	cleanPath := filepath.Clean(resolvedPath)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}

	if err := pv.checkProtectedPaths(filepath.Clean(path)); err != nil {
		return err
	}
	return pv.checkProtectedPaths(cleanPath)
}

// checkProtectedPaths validates that a path is not a protected directory
// or a direct child of one
func (pv *PathValidator) checkProtectedPaths(cleanPath string) error {
	for _, exact := range pv.exactPaths {
		if cleanPath == exact {
			return fmt.Errorf("refusing to organize protected path: %s", cleanPath)
		}
	}

	for _, protected := range pv.protectedPaths {
		if cleanPath == protected {
			return fmt.Errorf("refusing to organize protected path: %s", cleanPath)
		}

		// /usr/share is refused, /usr/local/share/foo is not
		prefix := protected
		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
		if protected != "/" && strings.HasPrefix(cleanPath, prefix) {
			rel, _ := filepath.Rel(protected, cleanPath)
			if !strings.Contains(rel, string(filepath.Separator)) {
				return fmt.Errorf("refusing to organize critical system path: %s", cleanPath)
			}
		}
	}

	return nil
}

// AddProtectedPath refuses path and its direct children as roots
func (pv *PathValidator) AddProtectedPath(path string) {
	cleanPath := filepath.Clean(path)
	pv.protectedPaths = append(pv.protectedPaths, cleanPath)
}

// ValidateGlobPattern validates that a glob pattern is safe
func ValidateGlobPattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("glob pattern is empty")
	}

	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}

	// Patterns match base names only
	if strings.ContainsAny(pattern, `/\`) {
		return fmt.Errorf("glob pattern must not contain path separators: %s", pattern)
	}

	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern: %w", doublestar.ErrBadPattern)
	}

	return nil
}
