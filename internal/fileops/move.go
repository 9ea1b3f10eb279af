package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// maxNameAttempts bounds the search for a free destination name
const maxNameAttempts = 10000

// FreeName returns a path inside dir for name that does not exist yet.
// "a.txt" becomes "a (1).txt", "a (2).txt" and so on.
func FreeName(dir, name string) (string, error) {
	return FreeNameExcept(dir, name, nil)
}

// FreeNameExcept works like FreeName but also treats every path for which
// taken returns true as occupied. Dry runs use it to reserve names they
// never create.
func FreeNameExcept(dir, name string, taken func(path string) bool) (string, error) {
	free := func(candidate string) (bool, error) {
		if taken != nil && taken(candidate) {
			return false, nil
		}
		_, err := os.Lstat(candidate)
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	candidate := filepath.Join(dir, name)
	if ok, err := free(candidate); ok {
		return candidate, nil
	} else if err != nil {
		return "", err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// dotfiles like ".bashrc" keep the whole name as stem
		stem, ext = name, ""
	}

	for i := 1; i < maxNameAttempts; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if ok, err := free(candidate); ok {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("no free name for %s in %s", name, dir)
}

// MoveInto moves src into dir without overwriting anything there.
// It returns the final path of the moved entry.
func MoveInto(src, dir string) (string, *OpError) {
	dst, err := FreeName(dir, filepath.Base(src))
	if err != nil {
		return "", CategorizeError(OpMove, src, err)
	}

	if err := os.Rename(src, dst); err != nil {
		var errno syscall.Errno
		if errors.As(err, &errno) && errno == syscall.EXDEV {
			if cerr := copyAcross(src, dst); cerr != nil {
				return "", CategorizeError(OpMove, src, cerr)
			}
			return dst, nil
		}
		return "", CategorizeError(OpMove, src, err)
	}

	return dst, nil
}

// copyAcross copies a regular file to dst and removes src.
// Used when rename fails because src and dst are on different filesystems.
func copyAcross(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EXDEV}
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	os.Chtimes(dst, info.ModTime(), info.ModTime())

	return os.Remove(src)
}
