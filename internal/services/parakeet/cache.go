package parakeet

import (
	"path/filepath"
	"strings"
)

// RepoDir returns the hub cache directory for modelID.
func RepoDir(cacheDir, modelID string) string {
	return filepath.Join(cacheDir, "models--"+strings.ReplaceAll(strings.TrimSpace(modelID), "/", "--"))
}

// IsCached reports whether a snapshot of the model with a config file exists locally.
func (s *Service) IsCached() bool {
	_, ok := s.SnapshotPath()
	return ok
}

// SnapshotPath returns the newest local snapshot directory for the model.
func (s *Service) SnapshotPath() (string, bool) {
	if s.cfg.CacheDir == "" {
		return "", false
	}
	pattern := filepath.Join(RepoDir(s.cfg.CacheDir, s.ModelID()), "snapshots", "*", ModelConfigFile)
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return filepath.Dir(matches[len(matches)-1]), true
}

func (s *Service) lockPath() string {
	name := strings.NewReplacer("/", "--", " ", "_").Replace(s.ModelID())
	return filepath.Join(s.cfg.CacheDir, ".stt-"+name+".lock")
}
