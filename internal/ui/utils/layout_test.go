package utils

import (
	"strings"
	"testing"
)

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"fits", "/home/u/a.txt", 40, "/home/u/a.txt"},
		{"tiny width", "/home/user/Downloads/file.txt", 5, "..."},
		{"keeps first and last dir", "/home/user/very/deep/tree/Downloads/file.txt", 32, "/home/.../Downloads/file.txt"},
		{"long file name", "/a/" + strings.Repeat("x", 30) + ".txt", 20, "..." + strings.Repeat("x", 12) + ".txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncatePath(%q, %d) = %q, want %q", tt.path, tt.maxWidth, got, tt.want)
			}
			if len(got) > tt.maxWidth && tt.maxWidth >= 10 {
				t.Errorf("result %q longer than %d", got, tt.maxWidth)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := TruncateMiddle("short", 10); got != "short" {
		t.Errorf("TruncateMiddle kept = %q", got)
	}
	if got := TruncateMiddle("abcdefghijklmnopqrstuvwxyz", 13); got != "abcde...vwxyz" {
		t.Errorf("TruncateMiddle = %q", got)
	}
	if got := TruncateMiddle("abcdefghijkl", 6); got != "abc..." {
		t.Errorf("TruncateMiddle small = %q", got)
	}
}
