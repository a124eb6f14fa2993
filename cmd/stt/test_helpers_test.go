package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"parakeet-stt/internal/batch"
	"parakeet-stt/internal/config"
	"parakeet-stt/internal/transcript"
)

type stubModel struct {
	calls []string
	fail  map[string]bool
}

func (m *stubModel) Transcribe(_ context.Context, path string) (transcript.Result, error) {
	m.calls = append(m.calls, path)
	name := filepath.Base(path)
	if m.fail[name] {
		return transcript.Result{}, errors.New("unsupported audio")
	}
	return transcript.Result{
		Text:      "Hello from " + name,
		Sentences: []transcript.Sentence{{Text: "Hello from " + name, Start: 0, End: 2}},
	}, nil
}

type stubLoader struct {
	model   *stubModel
	modelID string
	loads   int
}

func (l *stubLoader) ModelID() string { return l.modelID }

func (l *stubLoader) IsCached() bool { return true }

func (l *stubLoader) Load(context.Context) (batch.Transcriber, error) {
	l.loads++
	return l.model, nil
}

type cliTestEnv struct {
	baseDir    string
	configPath string
	audioDir   string
	model      *stubModel
	loader     *stubLoader
}

type envOption func(*config.Config)

func withCache() envOption {
	return func(cfg *config.Config) { cfg.Cache.Enabled = true }
}

func withUVX(command string) envOption {
	return func(cfg *config.Config) { cfg.Model.UVXCommand = command }
}

func withDefaultFormat(format string) envOption {
	return func(cfg *config.Config) { cfg.Output.DefaultFormat = format }
}

func setupCLITestEnv(t *testing.T, opts ...envOption) *cliTestEnv {
	t.Helper()

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")

	uvx := filepath.Join(base, "bin", "uvx")
	if err := os.MkdirAll(filepath.Dir(uvx), 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	if err := os.WriteFile(uvx, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write uvx stub: %v", err)
	}

	cfg := config.Default()
	cfg.Model.UVXCommand = uvx
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Model.CacheDir = filepath.Join(base, "hf-cache")
	cfg.Cache.Path = filepath.Join(base, "state", "transcripts.db")
	for _, opt := range opts {
		opt(&cfg)
	}

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, &cfg)

	audioDir := filepath.Join(base, "audio")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		t.Fatalf("mkdir audio: %v", err)
	}

	model := &stubModel{fail: map[string]bool{}}
	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		audioDir:   audioDir,
		model:      model,
		loader:     &stubLoader{model: model, modelID: cfg.Model.ID},
	}
}

func (e *cliTestEnv) audio(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.audioDir, name)
	if err := os.WriteFile(path, []byte("audio:"+name), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	factory := func(cfg *config.Config, _ *slog.Logger) batch.ModelLoader {
		e.loader.modelID = cfg.Model.ID
		return e.loader
	}
	return runCLI(t, factory, append([]string{"--config", e.configPath}, args...))
}

func runCLI(t *testing.T, factory loaderFactory, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommandWithLoader(factory)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
log_dir = %q
state_dir = %q

[model]
id = %q
uvx_command = %q
cache_dir = %q

[output]
default_format = %q

[cache]
enabled = %t
path = %q
`,
		cfg.Paths.LogDir,
		cfg.Paths.StateDir,
		cfg.Model.ID,
		cfg.Model.UVXCommand,
		cfg.Model.CacheDir,
		cfg.Output.DefaultFormat,
		cfg.Cache.Enabled,
		cfg.Cache.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
