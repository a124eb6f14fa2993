package paths

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"parakeet-stt/internal/fileutil"
)

const globMeta = "*?["

// IsGlob reports whether spec contains a glob metacharacter.
func IsGlob(spec string) bool {
	return strings.ContainsAny(spec, globMeta)
}

// Expand resolves each spec in order. Glob specs contribute their matches in
// lexical order (possibly none); literal specs contribute exactly one absolute
// path whether or not it exists. Results are concatenated without
// de-duplication.
//
// Wildcards do not match dot-files unless the pattern's final element starts
// with a dot. A malformed pattern is taken as a literal name and contributes
// it only when it exists.
func Expand(specs []string) ([]string, error) {
	resolved := make([]string, 0, len(specs))
	for _, spec := range specs {
		if !IsGlob(spec) {
			abs, err := absolute(spec)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, abs)
			continue
		}

		matches, err := filepath.Glob(spec)
		if err != nil {
			matches = nil
			if fileutil.Exists(spec) {
				matches = []string{spec}
			}
		}
		sort.Strings(matches)
		wantHidden := strings.HasPrefix(filepath.Base(spec), ".")
		for _, match := range matches {
			if !wantHidden && strings.HasPrefix(filepath.Base(match), ".") {
				continue
			}
			abs, err := absolute(match)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, abs)
		}
	}
	return resolved, nil
}

// absolute returns the cleaned absolute form of path with symlinks resolved
// when the path exists.
func absolute(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
