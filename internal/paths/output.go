package paths

import (
	"fmt"
	"path/filepath"
	"strings"

	"parakeet-stt/internal/fileutil"
	"parakeet-stt/internal/transcript"
)

// Extension returns the output file extension for format, falling back to
// ".txt" for unknown formats.
func Extension(format transcript.Format) string {
	return format.Extension()
}

// ResolveOutput returns a fresh transcript path for input.
//
//	no override:          <input dir>/<input stem><ext>
//	override is a dir:    <override>/<input stem><ext>
//	override otherwise:   <override> verbatim
//
// The candidate is then uniquified.
func ResolveOutput(input, override string, format transcript.Format) string {
	ext := Extension(format)
	stem, _ := SplitStem(filepath.Base(input))

	var candidate string
	switch {
	case override == "":
		candidate = filepath.Join(filepath.Dir(input), stem+ext)
	case fileutil.IsDir(override):
		candidate = filepath.Join(override, stem+ext)
	default:
		candidate = override
	}
	return Uniquify(candidate)
}

// Uniquify returns candidate when nothing exists there, otherwise the first
// "<stem>-<n><ext>" sibling (n = 1, 2, ...) that does not exist. The check is
// made against the filesystem at call time only.
func Uniquify(candidate string) string {
	if !fileutil.Exists(candidate) {
		return candidate
	}
	dir := filepath.Dir(candidate)
	stem, ext := SplitStem(filepath.Base(candidate))
	for counter := 1; ; counter++ {
		next := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, counter, ext))
		if !fileutil.Exists(next) {
			return next
		}
	}
}

// SplitStem splits a file name into stem and final extension. Dot-files
// without a further extension keep their full name as the stem.
func SplitStem(name string) (string, string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" || strings.Trim(stem, ".") == "" {
		return name, ""
	}
	return stem, ext
}
