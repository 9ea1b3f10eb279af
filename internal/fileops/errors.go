package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// ErrorReason categorizes why a filesystem operation failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileNotFound
	ErrorNotEmpty
	ErrorInvalidPath
	ErrorCrossDevice
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorNotEmpty:
		return "Directory not empty"
	case ErrorInvalidPath:
		return "Invalid path"
	case ErrorCrossDevice:
		return "Cross-device move"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// Op names the filesystem operation that failed
type Op string

const (
	OpRead   Op = "read"
	OpHash   Op = "hash"
	OpMkdir  Op = "mkdir"
	OpMove   Op = "move"
	OpRemove Op = "remove"
)

// OpError represents a recoverable failure on a single path.
// Passes log it and continue with the next item.
type OpError struct {
	Op       Op
	Path     string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %s (%v)", e.Op, e.Path, e.Reason, e.Original)
}

// Unwrap returns the underlying error
func (e *OpError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *OpError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("⚠️  Permission denied (%s): %s", e.Op, e.Path)
	case ErrorFileNotFound:
		return fmt.Sprintf("ℹ️  Disappeared before %s: %s", e.Op, e.Path)
	case ErrorNotEmpty:
		return fmt.Sprintf("⚠️  No longer empty, left in place: %s", e.Path)
	case ErrorInvalidPath:
		return fmt.Sprintf("❌ Refusing unsafe path: %s", e.Path)
	case ErrorCrossDevice:
		return fmt.Sprintf("⚠️  Cannot move across devices: %s", e.Path)
	default:
		return fmt.Sprintf("❌ Error during %s of %s: %v", e.Op, e.Path, e.Original)
	}
}

// CategorizeError analyzes an error and returns a categorized OpError
func CategorizeError(op Op, path string, err error) *OpError {
	if err == nil {
		return nil
	}

	opErr := &OpError{
		Op:       op,
		Path:     path,
		Original: err,
		Reason:   ErrorUnknown,
	}

	var errno syscall.Errno
	switch {
	case errors.Is(err, fs.ErrNotExist):
		opErr.Reason = ErrorFileNotFound
	case errors.Is(err, fs.ErrPermission):
		opErr.Reason = ErrorPermissionDenied
	case errors.As(err, &errno):
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			opErr.Reason = ErrorPermissionDenied
		case syscall.ENOENT:
			opErr.Reason = ErrorFileNotFound
		case syscall.ENOTEMPTY, syscall.EEXIST:
			// rmdir reports a non-empty directory as EEXIST on some systems
			opErr.Reason = ErrorNotEmpty
		case syscall.EXDEV:
			opErr.Reason = ErrorCrossDevice
		}
	}

	return opErr
}

// IsPermission reports whether err is a permission failure
func IsPermission(err error) bool {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Reason == ErrorPermissionDenied
	}
	return errors.Is(err, fs.ErrPermission)
}

// GroupErrors groups operation errors by reason
func GroupErrors(errs []*OpError) map[ErrorReason][]*OpError {
	grouped := make(map[ErrorReason][]*OpError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*OpError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	var b strings.Builder
	b.WriteString("\n⚠️  Issues encountered:\n")

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		fmt.Fprintf(&b, "   ├─ Permission denied: %d items\n", len(perms))
		b.WriteString("   │  └─ Tip: check ownership of the listed paths\n")
	}

	if gone, ok := grouped[ErrorFileNotFound]; ok {
		fmt.Fprintf(&b, "   ├─ Changed during run: %d items\n", len(gone))
	}

	if busy, ok := grouped[ErrorNotEmpty]; ok {
		fmt.Fprintf(&b, "   ├─ Folders no longer empty: %d\n", len(busy))
	}

	if invalid, ok := grouped[ErrorInvalidPath]; ok {
		fmt.Fprintf(&b, "   ├─ Unsafe paths refused: %d\n", len(invalid))
	}

	if xdev, ok := grouped[ErrorCrossDevice]; ok {
		fmt.Fprintf(&b, "   ├─ Cross-device moves failed: %d\n", len(xdev))
	}

	if unknown, ok := grouped[ErrorUnknown]; ok {
		fmt.Fprintf(&b, "   └─ Other errors: %d items\n", len(unknown))
	}

	return b.String()
}
