// Package testutil provides test helpers and fixtures for tidydir tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
)

// TestFixture holds the root of a throwaway directory tree
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)
}

// NewFixture creates a new test fixture rooted in a fresh temp directory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		T:       t,
		RootDir: t.TempDir(),
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file with specified content and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFiles creates every file in the map (relative path -> content)
func (f *TestFixture) CreateFiles(files map[string]string) {
	f.T.Helper()
	for rel, content := range files {
		f.CreateFile(rel, []byte(content))
	}
}

// CreateFileWithMode creates a file with specific permissions
func (f *TestFixture) CreateFileWithMode(relPath string, content []byte, mode os.FileMode) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	if err := os.Chmod(fullPath, mode); err != nil {
		f.T.Fatalf("failed to chmod file %s: %v", fullPath, err)
	}

	f.T.Cleanup(func() {
		os.Chmod(fullPath, 0644)
	})

	return fullPath
}

// =============================================================================
// Directory Helpers
// =============================================================================

// CreateDir creates a directory and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateUnreadableDir creates a directory holding one file and then
// removes all permissions from it
func (f *TestFixture) CreateUnreadableDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	f.CreateFile(filepath.Join(relPath, "locked.txt"), []byte("locked"))
	if err := os.Chmod(dirPath, 0000); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	// Restore permissions so TempDir cleanup works
	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// CreateSymlink creates a symbolic link at linkPath pointing to target
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := f.Path(linkPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}
	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s: %v", fullLinkPath, err)
	}

	return fullLinkPath
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the absolute path of relPath inside the fixture
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, filepath.FromSlash(relPath))
}

// RelPath returns fullPath relative to the fixture root, slash separated
func (f *TestFixture) RelPath(fullPath string) string {
	rel, err := filepath.Rel(f.RootDir, fullPath)
	if err != nil {
		return fullPath
	}
	return filepath.ToSlash(rel)
}

// Files returns every non-directory entry under the fixture root as sorted
// slash-separated relative paths
func (f *TestFixture) Files() []string {
	f.T.Helper()

	var files []string
	err := filepath.WalkDir(f.RootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, f.RelPath(path))
		}
		return nil
	})
	if err != nil {
		f.T.Fatalf("failed to walk fixture: %v", err)
	}

	sort.Strings(files)
	return files
}

// Dirs returns every directory under the fixture root (root excluded)
func (f *TestFixture) Dirs() []string {
	f.T.Helper()

	var dirs []string
	err := filepath.WalkDir(f.RootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != f.RootDir {
			dirs = append(dirs, f.RelPath(path))
		}
		return nil
	})
	if err != nil {
		f.T.Fatalf("failed to walk fixture: %v", err)
	}

	sort.Strings(dirs)
	return dirs
}

// =============================================================================
// Assertions
// =============================================================================

// Exists checks if a path exists (symlinks are not followed)
func (f *TestFixture) Exists(relPath string) bool {
	_, err := os.Lstat(f.Path(relPath))
	return err == nil
}

// AssertExists fails the test if the path doesn't exist
func (f *TestFixture) AssertExists(relPath string) {
	f.T.Helper()
	if !f.Exists(relPath) {
		f.T.Errorf("expected %s to exist", relPath)
	}
}

// AssertNotExists fails the test if the path exists
func (f *TestFixture) AssertNotExists(relPath string) {
	f.T.Helper()
	if f.Exists(relPath) {
		f.T.Errorf("expected %s to not exist", relPath)
	}
}

// AssertContent fails if the file content differs from want
func (f *TestFixture) AssertContent(relPath, want string) {
	f.T.Helper()
	data, err := os.ReadFile(f.Path(relPath))
	if err != nil {
		f.T.Errorf("failed to read %s: %v", relPath, err)
		return
	}
	if string(data) != want {
		f.T.Errorf("%s has content %q, want %q", relPath, data, want)
	}
}

// =============================================================================
// Logging Helpers
// =============================================================================

// LogBuffer collects log output of a test logger
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Count returns how many log lines contain substr
func (b *LogBuffer) Count(substr string) int {
	n := 0
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

// NewLogger returns a debug level text logger writing into a LogBuffer
func NewLogger() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}

// =============================================================================
// Environment Helpers
// =============================================================================

// IsRoot returns true if running as root/admin
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}

// SkipOnWindows skips tests that rely on POSIX permissions or symlinks
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on windows")
	}
}
