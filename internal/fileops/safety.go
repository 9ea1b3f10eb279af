package fileops

import (
	"errors"
	"fmt"
	"os"
)

// errSymlink is returned when a path that should be a regular file is a link
var errSymlink = errors.New("path is a symlink")

// IsSpecialFile checks if a path is a special file (device, socket, pipe).
// Symlinks are not followed.
func IsSpecialFile(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}

	mode := info.Mode()

	switch {
	case mode&os.ModeDevice != 0:
		return true, fmt.Errorf("is a device file")
	case mode&os.ModeCharDevice != 0:
		return true, fmt.Errorf("is a character device")
	case mode&os.ModeSocket != 0:
		return true, fmt.Errorf("is a socket")
	case mode&os.ModeNamedPipe != 0:
		return true, fmt.Errorf("is a named pipe (FIFO)")
	}

	return false, nil
}

// IsSafeToDelete checks that path is still a regular file right before removal
func IsSafeToDelete(path string) error {
	if isSpecial, err := IsSpecialFile(path); isSpecial {
		return fmt.Errorf("refusing to delete special file: %w", err)
	} else if err != nil {
		return err
	}

	// Lstat so a file swapped for a symlink is caught
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return errSymlink
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to delete directory as file: %s", path)
	}

	return nil
}

// RemoveFile deletes a single regular file after re-checking it
func RemoveFile(path string) *OpError {
	if err := IsSafeToDelete(path); err != nil {
		if os.IsNotExist(err) {
			return CategorizeError(OpRemove, path, err)
		}
		return &OpError{Op: OpRemove, Path: path, Reason: ErrorInvalidPath, Original: err}
	}

	if err := os.Remove(path); err != nil {
		return CategorizeError(OpRemove, path, err)
	}
	return nil
}

// RemoveEmptyDir deletes a directory only if it has no entries.
// It never removes content recursively.
func RemoveEmptyDir(path string) *OpError {
	info, err := os.Lstat(path)
	if err != nil {
		return CategorizeError(OpRemove, path, err)
	}
	if !info.IsDir() {
		return &OpError{Op: OpRemove, Path: path, Reason: ErrorInvalidPath, Original: fmt.Errorf("not a directory")}
	}

	if err := os.Remove(path); err != nil {
		return CategorizeError(OpRemove, path, err)
	}
	return nil
}
