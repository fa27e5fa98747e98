// Package glob expands dependency patterns into concrete file lists.
package glob

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// Expand resolves pattern relative to cwd and returns the matching regular
// files, sorted lexicographically. Returned paths are relative to cwd.
//
// Patterns without a recursive marker follow ordinary shell-glob semantics.
// Patterns containing ** match the remainder against the path structure below
// the base, so **/go.mod matches a/b/go.mod but not a/go.mod/b. Enumeration
// is best-effort: unreadable directories are skipped, directories are dropped
// from the matches, and a pattern matching nothing yields an empty list.
//
// The only error Expand returns is a syntactically invalid pattern.
func Expand(pattern, cwd string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid dependency pattern %q", pattern)
	}
	if cwd == "" {
		cwd = "."
	}

	matches, err := doublestar.Glob(os.DirFS(cwd), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand pattern %q", pattern)
	}

	// Walk order depends on the filesystem. Sort so the tag is reproducible
	// across machines.
	sort.Strings(matches)

	files := matches[:0]
	for _, m := range matches {
		info, err := os.Lstat(filepath.Join(cwd, m))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}

	return files, nil
}
