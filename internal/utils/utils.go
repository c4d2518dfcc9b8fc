// Package utils contains general helper functions shared by the dirtree and project2txt tools.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept. Blank patterns are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{}, len(patterns))
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == EmptyString {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the relative path from root to fullPath using
// the host separator. Returns the cleaned fullPath if relative calculation fails
// and "." if both resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)
	if cleanPath == cleanRoot {
		return "."
	}
	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return relativePath
}

// SplitExtension returns the extension of name including its leading dot.
// Leading dots of the name itself are not treated as an extension separator,
// so ".bashrc" has no extension while "archive.tar.gz" has ".gz".
func SplitExtension(name string) string {
	base := filepath.Base(name)
	stem := strings.TrimLeft(base, ".")
	if stem == EmptyString {
		return EmptyString
	}
	return filepath.Ext(stem)
}

// NormalizeExtension lower-cases extension and guarantees a leading dot.
func NormalizeExtension(extension string) string {
	trimmed := strings.ToLower(strings.TrimSpace(extension))
	if trimmed == EmptyString {
		return EmptyString
	}
	if !strings.HasPrefix(trimmed, ".") {
		trimmed = "." + trimmed
	}
	return trimmed
}

// FenceLabel derives the fenced block label for a file name: its extension
// without the dot, or DefaultTextLabel when there is none.
func FenceLabel(name string) string {
	extension := strings.TrimPrefix(SplitExtension(name), ".")
	if extension == EmptyString {
		return DefaultTextLabel
	}
	return extension
}
