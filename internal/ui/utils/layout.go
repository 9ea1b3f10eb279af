package utils

import (
	"path/filepath"
	"strings"
)

// TruncatePath truncates a file path to fit within maxWidth.
// It keeps the first directory and the file name, dropping the middle.
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}

	if maxWidth < 10 {
		return "..."
	}

	dir, file := filepath.Split(path)

	// Filename alone is too long
	if len(file) > maxWidth-4 {
		return "..." + file[len(file)-(maxWidth-4):]
	}

	availableForDir := maxWidth - len(file) - 3
	if availableForDir < 10 {
		return ".../" + file
	}

	dir = filepath.Clean(dir)
	parts := strings.Split(dir, string(filepath.Separator))
	if len(parts) <= 2 {
		return "..." + dir[len(dir)-availableForDir:] + string(filepath.Separator) + file
	}

	firstPart := parts[0]
	if firstPart == "" {
		firstPart = string(filepath.Separator) + parts[1]
	}
	lastPart := parts[len(parts)-1]

	// firstPart/.../lastPart/file
	if len(firstPart)+len(lastPart)+5 <= availableForDir {
		return strings.Join([]string{firstPart, "...", lastPart, file}, string(filepath.Separator))
	}

	return strings.Join([]string{"...", lastPart, file}, string(filepath.Separator))
}

// TruncateMiddle truncates a string from the middle, preserving start and end
func TruncateMiddle(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 10 {
		if maxLen < 3 {
			return "..."
		}
		return s[:maxLen-3] + "..."
	}

	sideLen := (maxLen - 3) / 2
	return s[:sideLen] + "..." + s[len(s)-sideLen:]
}
