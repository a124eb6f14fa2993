package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootTranscribesAndPrintsPaths(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.audio(t, "a.wav")
	b := env.audio(t, "b.wav")

	stdout, stderr, err := env.run(t, a, b)
	if err != nil {
		t.Fatalf("run: %v (stderr %q)", err, stderr)
	}
	want := filepath.Join(env.audioDir, "a.txt") + "\n" + filepath.Join(env.audioDir, "b.txt") + "\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "Processing a.wav...") || !strings.Contains(stderr, "Processing b.wav...") {
		t.Fatalf("expected progress notices, got %q", stderr)
	}
	data, err := os.ReadFile(filepath.Join(env.audioDir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Hello from a.wav" {
		t.Fatalf("unexpected transcript %q", data)
	}
	if env.loader.loads != 1 {
		t.Fatalf("expected one model load, got %d", env.loader.loads)
	}
}

func TestRootGlobInput(t *testing.T) {
	env := setupCLITestEnv(t)
	env.audio(t, "b.mp3")
	env.audio(t, "a.mp3")
	env.audio(t, "skip.wav")

	stdout, _, err := env.run(t, "-q", filepath.Join(env.audioDir, "*.mp3"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || filepath.Base(lines[0]) != "a.txt" || filepath.Base(lines[1]) != "b.txt" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRootPartialFailureExitCode(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.audio(t, "a.wav")
	b := env.audio(t, "b.wav")
	env.model.fail["a.wav"] = true

	stdout, stderr, err := env.run(t, a, b)
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("expected exit status 1, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Fatalf("exitCode = %d", exitCode(err))
	}
	if !strings.Contains(stderr, "Error: Transcription failed for a.wav: unsupported audio") {
		t.Fatalf("missing failure diagnostic in %q", stderr)
	}
	if strings.TrimSpace(stdout) != filepath.Join(env.audioDir, "b.txt") {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRootQuietSuppressesDiagnostics(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.audio(t, "a.wav")

	stdout, stderr, err := env.run(t, "--quiet", a, filepath.Join(env.audioDir, "missing.wav"))
	if exitCode(err) != 1 {
		t.Fatalf("expected failure, got %v", err)
	}
	if stdout != "" || stderr != "" {
		t.Fatalf("expected silent failure, got stdout %q stderr %q", stdout, stderr)
	}
	if len(env.model.calls) != 0 {
		t.Fatal("expected no transcription when an input is missing")
	}
}

func TestRootFormatFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.audio(t, "talk.wav")
	out := filepath.Join(env.baseDir, "captions.vtt")

	stdout, _, err := env.run(t, "-f", "VTT", "-o", out, a)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(stdout) != out {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "WEBVTT\n\n1\n00:00:00.000 --> 00:00:02.000\nHello from talk.wav\n\n"
	if string(data) != want {
		t.Fatalf("vtt = %q, want %q", data, want)
	}
}

func TestRootConfigDefaultFormat(t *testing.T) {
	env := setupCLITestEnv(t, withDefaultFormat("json"))
	a := env.audio(t, "talk.wav")

	stdout, _, err := env.run(t, a)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if filepath.Ext(strings.TrimSpace(stdout)) != ".json" {
		t.Fatalf("expected json output, got %q", stdout)
	}
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.audio(t, "talk.wav")

	_, _, err := env.run(t, "-f", "docx", a)
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Fatalf("expected invalid format error, got %v", err)
	}
	if env.loader.loads != 0 {
		t.Fatal("model must not load for invalid flags")
	}
}

func TestRootRequiresInput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := env.run(t); err == nil {
		t.Fatal("expected error without inputs")
	}
}

func TestRootModelFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	a := env.audio(t, "talk.wav")

	if _, _, err := env.run(t, "--model", "example/other-model", a); err != nil {
		t.Fatalf("run: %v", err)
	}
	if env.loader.modelID != "example/other-model" {
		t.Fatalf("expected model override, got %q", env.loader.modelID)
	}
}

func TestRootCacheReusesTranscripts(t *testing.T) {
	env := setupCLITestEnv(t, withCache())
	a := env.audio(t, "a.wav")

	for i := 0; i < 2; i++ {
		if _, stderr, err := env.run(t, a); err != nil {
			t.Fatalf("run %d: %v (stderr %q)", i, err, stderr)
		}
	}
	if len(env.model.calls) != 1 {
		t.Fatalf("expected cached second run, model called %d times", len(env.model.calls))
	}
	if _, err := os.Stat(filepath.Join(env.audioDir, "a-1.txt")); err != nil {
		t.Fatalf("expected second transcript written beside the first: %v", err)
	}

	stdout, _, err := env.run(t, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(stdout, "a.wav") || !strings.Contains(strings.ToUpper(stdout), "DIGEST") {
		t.Fatalf("unexpected cache listing %q", stdout)
	}

	stdout, _, err = env.run(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(stdout, "Removed 1 cached transcript(s)") {
		t.Fatalf("unexpected clear output %q", stdout)
	}
}

func TestRootNoCacheFlag(t *testing.T) {
	env := setupCLITestEnv(t, withCache())
	a := env.audio(t, "a.wav")

	for i := 0; i < 2; i++ {
		if _, _, err := env.run(t, "--no-cache", a); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(env.model.calls) != 2 {
		t.Fatalf("expected model called for every run, got %d", len(env.model.calls))
	}
}

func TestCacheListWhenEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, err := env.run(t, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(stdout, "disabled") || !strings.Contains(stdout, "No cached transcripts") {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestCacheClearPurge(t *testing.T) {
	env := setupCLITestEnv(t, withCache())
	a := env.audio(t, "a.wav")
	if _, _, err := env.run(t, a); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(env.baseDir, "state", "transcripts.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected cache database: %v", err)
	}
	if _, _, err := env.run(t, "cache", "clear", "--purge"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, err := os.Stat(dbPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected database removed, stat err=%v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated", "stt.toml")

	stdout, _, err := runCLI(t, newParakeetLoader, []string{"config", "init", "--path", target})
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Fatalf("expected target path in output, got %q", stdout)
	}
	if _, _, err := runCLI(t, newParakeetLoader, []string{"config", "init", "--path", target}); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}

	stdout, _, err = runCLI(t, newParakeetLoader, []string{"--config", target, "config", "validate"})
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(stdout, "Configuration valid") || !strings.Contains(stdout, "Config path: "+target) {
		t.Fatalf("unexpected validate output %q", stdout)
	}
}

func TestConfigValidateReportsErrors(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := filepath.Join(env.baseDir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[output]\ndefault_format = \"docx\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, newParakeetLoader, []string{"--config", bad, "config", "validate"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestModelStatusRendersSections(t *testing.T) {
	env := setupCLITestEnv(t)
	stdout, _, err := env.run(t, "model", "status")
	if err != nil {
		t.Fatalf("model status: %v", err)
	}
	for _, fragment := range []string{"== Model ==", "== Environment ==", "not downloaded", "Model cache:"} {
		if !strings.Contains(stdout, fragment) {
			t.Fatalf("expected %q in %q", fragment, stdout)
		}
	}
}

func TestModelStatusFailsWhenToolingMissing(t *testing.T) {
	env := setupCLITestEnv(t, withUVX("clearly-not-present-binary"))
	stdout, _, err := env.run(t, "model", "status")
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(stdout, "[ERROR]") || !strings.Contains(stdout, "clearly-not-present-binary") {
		t.Fatalf("expected failing uvx check in output, got %q", stdout)
	}
}

func TestModelFetchUsesCachedSnapshot(t *testing.T) {
	env := setupCLITestEnv(t)
	snapshot := filepath.Join(env.baseDir, "hf-cache", "models--mlx-community--parakeet-tdt-0.6b-v3", "snapshots", "rev1")
	if err := os.MkdirAll(snapshot, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(snapshot, "config.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := env.run(t, "model", "fetch")
	if err != nil {
		t.Fatalf("model fetch: %v", err)
	}
	if !strings.Contains(stdout, "Model already cached: "+snapshot) {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestExitCodeMapping(t *testing.T) {
	if exitCode(nil) != 0 {
		t.Fatal("nil error should exit 0")
	}
	if exitCode(&exitError{code: 1}) != 1 {
		t.Fatal("exitError should carry its code")
	}
}
