package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parakeet-stt/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The transcript cache stays disabled unless WithCacheEnabled is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Model.CacheDir = filepath.Join(base, "hf-cache")
	cfgVal.Cache.Path = filepath.Join(cfgVal.Paths.StateDir, "transcripts.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCacheEnabled turns on the SQLite transcript cache.
func WithCacheEnabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = true
	}
}

// WithModelID overrides the model identifier on the test config.
func WithModelID(id string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Model.ID = id
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, uvx is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"uvx"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// SeedModelCache lays out a Hugging Face hub snapshot for the configured
// model so it reports as cached.
func SeedModelCache(t testing.TB, cfg *config.Config) string {
	t.Helper()

	repo := "models--" + strings.ReplaceAll(cfg.Model.ID, "/", "--")
	snapshot := filepath.Join(cfg.Model.CacheDir, repo, "snapshots", "main")
	WriteText(t, filepath.Join(snapshot, "config.json"), "{}\n")
	return snapshot
}
