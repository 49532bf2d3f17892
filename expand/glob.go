package expand

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Glob matches pattern against fsys relative to cwd.  Relative patterns
// produce relative paths; matches are sorted lexicographically for
// deterministic argument order.  No matches is not an error: the result is
// simply empty.
func Glob(fsys afero.Fs, cwd, pattern string) []string {
	full := pattern
	rel := !filepath.IsAbs(pattern)
	if rel {
		full = filepath.Join(cwd, pattern)
	}

	matches, err := afero.Glob(fsys, full)
	if err != nil || len(matches) == 0 {
		// filepath.ErrBadPattern or nothing matched; the caller keeps the
		// literal pattern text either way.
		return nil
	}

	if rel {
		// A relative pattern yields relative paths, even when it climbs out
		// of the working directory (‘../f*’).
		for i, m := range matches {
			if r, err := filepath.Rel(cwd, m); err == nil {
				matches[i] = r
			}
		}
	}

	sort.Strings(matches)
	return matches
}
