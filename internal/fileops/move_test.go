package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fenilsonani/tidydir/internal/testutil"
)

func TestFreeName(t *testing.T) {
	f := testutil.NewFixture(t)
	dir := f.CreateDir("dest")
	f.CreateFile("dest/a.txt", []byte("1"))
	f.CreateFile("dest/a (1).txt", []byte("2"))
	f.CreateFile("dest/.bashrc", []byte("3"))
	f.CreateFile("dest/README", []byte("4"))

	tests := []struct {
		name string
		want string
	}{
		{"new.txt", "new.txt"},
		{"a.txt", "a (2).txt"},
		{".bashrc", ".bashrc (1)"},
		{"README", "README (1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FreeName(dir, tt.name)
			if err != nil {
				t.Fatalf("FreeName failed: %v", err)
			}
			if filepath.Base(got) != tt.want {
				t.Errorf("FreeName(%q) = %q, want %q", tt.name, filepath.Base(got), tt.want)
			}
		})
	}
}

func TestFreeNameExceptReserved(t *testing.T) {
	f := testutil.NewFixture(t)
	dir := f.CreateDir("dest")
	f.CreateFile("dest/a.txt", []byte("1"))

	reserved := map[string]bool{filepath.Join(dir, "a (1).txt"): true}
	got, err := FreeNameExcept(dir, "a.txt", func(path string) bool { return reserved[path] })
	if err != nil {
		t.Fatalf("FreeNameExcept failed: %v", err)
	}
	if filepath.Base(got) != "a (2).txt" {
		t.Errorf("FreeNameExcept = %q, want %q", filepath.Base(got), "a (2).txt")
	}
}

func TestMoveIntoDoesNotOverwrite(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("dest/photo.jpg", []byte("existing"))
	src := f.CreateFile("sub/photo.jpg", []byte("incoming"))

	dst, opErr := MoveInto(src, f.Path("dest"))
	if opErr != nil {
		t.Fatalf("MoveInto failed: %v", opErr)
	}

	if f.RelPath(dst) != "dest/photo (1).jpg" {
		t.Errorf("moved to %s, want dest/photo (1).jpg", f.RelPath(dst))
	}
	f.AssertContent("dest/photo.jpg", "existing")
	f.AssertContent("dest/photo (1).jpg", "incoming")
	f.AssertNotExists("sub/photo.jpg")
}

func TestMoveIntoMissingSource(t *testing.T) {
	f := testutil.NewFixture(t)
	dir := f.CreateDir("dest")

	_, opErr := MoveInto(f.Path("gone.txt"), dir)
	if opErr == nil {
		t.Fatal("expected error for missing source")
	}
	if opErr.Reason != ErrorFileNotFound {
		t.Errorf("Reason = %v, want %v", opErr.Reason, ErrorFileNotFound)
	}
}

func TestCopyAcrossPreservesContent(t *testing.T) {
	f := testutil.NewFixture(t)
	src := f.CreateFile("src.txt", []byte("payload"))
	dst := f.Path("dst.txt")

	if err := copyAcross(src, dst); err != nil {
		t.Fatalf("copyAcross failed: %v", err)
	}
	f.AssertContent("dst.txt", "payload")
	f.AssertNotExists("src.txt")
}

func TestRemoveEmptyDirRefusesContent(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFile("full/keep.txt", []byte("x"))
	empty := f.CreateDir("empty")

	if opErr := RemoveEmptyDir(f.Path("full")); opErr == nil {
		t.Error("expected error removing non-empty directory")
	} else if opErr.Reason != ErrorNotEmpty {
		t.Errorf("Reason = %v, want %v", opErr.Reason, ErrorNotEmpty)
	}
	f.AssertExists("full/keep.txt")

	if opErr := RemoveEmptyDir(empty); opErr != nil {
		t.Errorf("RemoveEmptyDir failed: %v", opErr)
	}
	f.AssertNotExists("empty")
}

func TestRemoveFile(t *testing.T) {
	testutil.SkipOnWindows(t)

	f := testutil.NewFixture(t)
	target := f.CreateFile("a.txt", []byte("x"))
	link := f.CreateSymlink(target, "link.txt")
	dir := f.CreateDir("dir")

	if opErr := RemoveFile(link); opErr == nil || opErr.Reason != ErrorInvalidPath {
		t.Errorf("expected invalid path for symlink, got %v", opErr)
	}
	if opErr := RemoveFile(dir); opErr == nil || opErr.Reason != ErrorInvalidPath {
		t.Errorf("expected invalid path for directory, got %v", opErr)
	}
	if opErr := RemoveFile(f.Path("missing.txt")); opErr == nil || opErr.Reason != ErrorFileNotFound {
		t.Errorf("expected not found, got %v", opErr)
	}
	if opErr := RemoveFile(target); opErr != nil {
		t.Errorf("RemoveFile failed: %v", opErr)
	}
	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		t.Error("file should be gone")
	}
}
