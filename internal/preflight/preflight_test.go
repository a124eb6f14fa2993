package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"parakeet-stt/internal/deps"
	"parakeet-stt/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDirectory_Missing(t *testing.T) {
	result := CheckCreatableDirectory("test", filepath.Join(t.TempDir(), "a", "b"))
	if !result.Passed {
		t.Fatalf("expected creatable dir to pass, got: %s", result.Detail)
	}
}

func TestCheckCreatableDirectory_FileInTheWay(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckCreatableDirectory("test", f); result.Passed {
		t.Fatal("expected failure when a file occupies the path")
	}
}

func TestCheckBinaries_Optional(t *testing.T) {
	results := CheckBinaries([]deps.Requirement{
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Optional", Command: "clearly-not-present-binary", Optional: true},
	})
	if results[0].Passed {
		t.Fatal("expected required missing binary to fail")
	}
	if !results[1].Passed {
		t.Fatal("expected optional missing binary to pass")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Paths.LogDir = ""

	results := RunAll(cfg)
	if len(results) != 2 {
		t.Fatalf("expected uvx and model cache checks, got %d: %+v", len(results), results)
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
}

func TestRunAll_IncludesCacheWhenEnabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithCacheEnabled())

	results := RunAll(cfg)
	found := false
	for _, r := range results {
		if r.Name == "Transcript cache" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected transcript cache check, got %+v", results)
	}
}
