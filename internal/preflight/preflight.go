package preflight

import (
	"path/filepath"

	"parakeet-stt/internal/config"
	"parakeet-stt/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Directory checks are only run when the corresponding feature is enabled.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := CheckBinaries([]deps.Requirement{deps.UVX(cfg.Model.UVXCommand)})

	results = append(results, CheckCreatableDirectory("Model cache", cfg.Model.CacheDir))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckCreatableDirectory("Log directory", cfg.Paths.LogDir))
	}

	if cfg.Cache.Enabled {
		results = append(results, CheckCreatableDirectory("Transcript cache", filepath.Dir(cfg.Cache.Path)))
	}

	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
