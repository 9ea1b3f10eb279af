package fileops

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason ErrorReason
	}{
		{"EACCES", syscall.EACCES, ErrorPermissionDenied},
		{"EPERM", syscall.EPERM, ErrorPermissionDenied},
		{"ENOENT", syscall.ENOENT, ErrorFileNotFound},
		{"ENOTEMPTY", syscall.ENOTEMPTY, ErrorNotEmpty},
		{"EXDEV", syscall.EXDEV, ErrorCrossDevice},
		{"wrapped EACCES", fmt.Errorf("failed to move: %w", syscall.EACCES), ErrorPermissionDenied},
		{"os.PathError with EACCES", &os.PathError{Op: "rename", Path: "/x", Err: syscall.EACCES}, ErrorPermissionDenied},
		{"os.PathError with ENOTEMPTY", &os.PathError{Op: "remove", Path: "/x", Err: syscall.ENOTEMPTY}, ErrorNotEmpty},
		{"os.ErrNotExist", os.ErrNotExist, ErrorFileNotFound},
		{"os.ErrPermission", os.ErrPermission, ErrorPermissionDenied},
		{"generic error", errors.New("something went wrong"), ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opErr := CategorizeError(OpMove, "/test/path", tt.err)
			if opErr == nil {
				t.Fatal("unexpected nil result")
			}
			if opErr.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", opErr.Reason, tt.reason)
			}
			if opErr.Path != "/test/path" {
				t.Errorf("Path = %q, want /test/path", opErr.Path)
			}
			if opErr.Op != OpMove {
				t.Errorf("Op = %q, want %q", opErr.Op, OpMove)
			}
			if !errors.Is(opErr, tt.err) {
				t.Error("original error should be reachable through Unwrap")
			}
		})
	}
}

func TestCategorizeErrorNil(t *testing.T) {
	if got := CategorizeError(OpRemove, "/x", nil); got != nil {
		t.Errorf("CategorizeError(nil) = %v, want nil", got)
	}
}

func TestErrorReasonString(t *testing.T) {
	tests := []struct {
		reason ErrorReason
		want   string
	}{
		{ErrorPermissionDenied, "Permission denied"},
		{ErrorFileNotFound, "File not found"},
		{ErrorNotEmpty, "Directory not empty"},
		{ErrorInvalidPath, "Invalid path"},
		{ErrorCrossDevice, "Cross-device move"},
		{ErrorUnknown, "Unknown error"},
		{ErrorReason(999), "Unspecified error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.reason.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpErrorMessages(t *testing.T) {
	err := &OpError{Op: OpRemove, Path: "/data/a.txt", Reason: ErrorPermissionDenied, Original: os.ErrPermission}

	if !strings.Contains(err.Error(), "/data/a.txt") || !strings.Contains(err.Error(), "remove") {
		t.Errorf("Error() = %q, should contain op and path", err.Error())
	}
	if !strings.Contains(err.UserMessage(), "Permission denied") {
		t.Errorf("UserMessage() = %q", err.UserMessage())
	}
	if !IsPermission(err) {
		t.Error("IsPermission should be true")
	}
	if IsPermission(errors.New("other")) {
		t.Error("IsPermission should be false for unrelated errors")
	}
}

func TestFormatErrorSummary(t *testing.T) {
	if FormatErrorSummary(nil) != "" {
		t.Error("empty error list should produce empty summary")
	}

	errs := []*OpError{
		{Path: "/a", Reason: ErrorPermissionDenied},
		{Path: "/b", Reason: ErrorPermissionDenied},
		{Path: "/c", Reason: ErrorNotEmpty},
		{Path: "/d", Reason: ErrorUnknown},
	}

	summary := FormatErrorSummary(errs)
	for _, want := range []string{"Permission denied: 2", "no longer empty: 1", "Other errors: 1"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	grouped := GroupErrors(errs)
	if len(grouped[ErrorPermissionDenied]) != 2 {
		t.Errorf("expected 2 permission errors, got %d", len(grouped[ErrorPermissionDenied]))
	}
}
