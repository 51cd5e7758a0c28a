package watcher

import (
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns returns the default folder-name patterns excluded
// from watching: hidden folders and in-progress copies.
func DefaultIgnorePatterns() []string {
	return []string{
		".*",
		"*.tmp",
		"*.part",
		"*.partial",
	}
}

// FolderFilter filters newly created folders by name pattern.
type FolderFilter struct {
	patterns []string
}

// NewFolderFilter creates a FolderFilter with the given glob patterns.
// If patterns is empty, defaults are used.
func NewFolderFilter(patterns []string) *FolderFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FolderFilter{patterns: patterns}
}

// ShouldIgnore reports whether a folder name matches any ignore pattern.
func (f *FolderFilter) ShouldIgnore(name string) bool {
	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
		// Bare extension patterns like ".tmp" match as a suffix too
		if strings.HasPrefix(pattern, ".") && !strings.Contains(pattern, "*") {
			if strings.HasSuffix(strings.ToLower(name), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// Patterns returns a copy of the current ignore patterns.
func (f *FolderFilter) Patterns() []string {
	result := make([]string, len(f.patterns))
	copy(result, f.patterns)
	return result
}
