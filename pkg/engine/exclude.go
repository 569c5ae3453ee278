package engine

import (
	"fmt"
	"path"
	"strings"

	"github.com/sdejongh/dirdiff/pkg/storage"
)

// shouldExclude checks if a listed entry should be dropped based on the given patterns
// Patterns support:
//   - Simple glob patterns: *.tmp, Thumbs.db
//   - Directory patterns: .git/, node_modules/ (match directories only)
//   - Any-depth prefix: **/*.bak behaves like *.bak
//
// Entries are base names, so patterns containing other separators never match.
func shouldExclude(entry storage.Entry, patterns []string) bool {
	for _, pattern := range patterns {
		glob, dirOnly, ok := normalizePattern(pattern)
		if !ok {
			continue
		}
		if dirOnly && !entry.IsDir {
			continue
		}
		if matched, _ := path.Match(glob, entry.Name); matched {
			return true
		}
	}
	return false
}

// normalizePattern reduces a pattern to a base-name glob
func normalizePattern(pattern string) (glob string, dirOnly bool, ok bool) {
	glob = strings.ReplaceAll(strings.TrimSpace(pattern), "\\", "/")
	if glob == "" {
		return "", false, false
	}

	if strings.HasSuffix(glob, "/") {
		dirOnly = true
		glob = strings.TrimSuffix(glob, "/")
	}

	for strings.HasPrefix(glob, "**/") {
		glob = strings.TrimPrefix(glob, "**/")
	}

	if glob == "" || strings.Contains(glob, "/") {
		return "", false, false
	}
	return glob, dirOnly, true
}

// ValidatePatterns reports the first malformed exclude pattern
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		glob, _, ok := normalizePattern(pattern)
		if !ok {
			continue
		}
		if _, err := path.Match(glob, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}
