package paths

import (
	"os"
	"path/filepath"
	"testing"

	"parakeet-stt/internal/testsupport"
	"parakeet-stt/internal/transcript"
)

func TestExpandGlobWithoutMatches(t *testing.T) {
	dir := t.TempDir()
	got, err := Expand([]string{filepath.Join(dir, "*.mp3")})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestExpandLiteralDoesNotRequireExistence(t *testing.T) {
	t.Chdir(t.TempDir())
	got, err := Expand([]string{"missing.wav"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one entry, got %v", got)
	}
	if !filepath.IsAbs(got[0]) {
		t.Fatalf("expected absolute path, got %q", got[0])
	}
	if filepath.Base(got[0]) != "missing.wav" {
		t.Fatalf("unexpected path %q", got[0])
	}
}

func TestExpandOrdering(t *testing.T) {
	dir := resolvedTempDir(t)
	for _, name := range []string{"c.wav", "a.wav", "b.wav", "z.mp3"} {
		testsupport.Touch(t, filepath.Join(dir, name))
	}

	specs := []string{
		filepath.Join(dir, "z.mp3"),
		filepath.Join(dir, "*.wav"),
		filepath.Join(dir, "a.wav"),
	}
	got, err := Expand(specs)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{
		filepath.Join(dir, "z.mp3"),
		filepath.Join(dir, "a.wav"),
		filepath.Join(dir, "b.wav"),
		filepath.Join(dir, "c.wav"),
		filepath.Join(dir, "a.wav"),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandSkipsDotFiles(t *testing.T) {
	dir := resolvedTempDir(t)
	for _, name := range []string{".draft.wav", "talk.wav"} {
		testsupport.Touch(t, filepath.Join(dir, name))
	}

	got, err := Expand([]string{filepath.Join(dir, "*.wav")})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(dir, "talk.wav") {
		t.Fatalf("expected only talk.wav, got %v", got)
	}

	got, err = Expand([]string{filepath.Join(dir, ".*.wav")})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(dir, ".draft.wav") {
		t.Fatalf("expected dot pattern to match .draft.wav, got %v", got)
	}
}

func TestExpandMalformedPatternIsLiteral(t *testing.T) {
	dir := resolvedTempDir(t)
	t.Chdir(dir)

	got, err := Expand([]string{"[unclosed"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}

	testsupport.Touch(t, filepath.Join(dir, "[unclosed"))
	got, err = Expand([]string{"[unclosed"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join(dir, "[unclosed") {
		t.Fatalf("expected literal match, got %v", got)
	}
}

func TestIsGlob(t *testing.T) {
	cases := map[string]bool{
		"a.wav":      false,
		"*.wav":      true,
		"take?.wav":  true,
		"[ab].wav":   true,
		"dir/x.flac": false,
	}
	for spec, want := range cases {
		if got := IsGlob(spec); got != want {
			t.Errorf("IsGlob(%q) = %v, want %v", spec, got, want)
		}
	}
}

func TestResolveOutputSibling(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "talk.mp3")
	got := ResolveOutput(input, "", transcript.FormatSRT)
	if want := filepath.Join(dir, "talk.srt"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveOutputDirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got := ResolveOutput(filepath.Join(dir, "talk.mp3"), outDir, transcript.FormatJSON)
	if want := filepath.Join(outDir, "talk.json"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveOutputLiteralOverrideKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "notes.md")
	got := ResolveOutput(filepath.Join(dir, "talk.mp3"), override, transcript.FormatVTT)
	if got != override {
		t.Fatalf("got %q want %q", got, override)
	}
}

func TestResolveOutputLiteralOverrideIsUniquified(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "notes.md")
	testsupport.Touch(t, override)
	got := ResolveOutput(filepath.Join(dir, "talk.mp3"), override, transcript.FormatTXT)
	if want := filepath.Join(dir, "notes-1.md"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveOutputUnknownFormatUsesTxt(t *testing.T) {
	dir := t.TempDir()
	got := ResolveOutput(filepath.Join(dir, "talk.mp3"), "", transcript.Format("docx"))
	if want := filepath.Join(dir, "talk.txt"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestUniquifyCleanDirectory(t *testing.T) {
	candidate := filepath.Join(t.TempDir(), "talk.txt")
	if got := Uniquify(candidate); got != candidate {
		t.Fatalf("expected unchanged path, got %q", got)
	}
	if got := Uniquify(candidate); got != candidate {
		t.Fatalf("expected idempotent result, got %q", got)
	}
}

func TestUniquifyCollisionSequence(t *testing.T) {
	dir := t.TempDir()
	testsupport.Touch(t, filepath.Join(dir, "talk.txt"))
	testsupport.Touch(t, filepath.Join(dir, "talk-1.txt"))

	got := Uniquify(filepath.Join(dir, "talk.txt"))
	if want := filepath.Join(dir, "talk-2.txt"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestUniquifyTreatsDirectoryAsCollision(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "talk.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got := Uniquify(filepath.Join(dir, "talk.txt"))
	if want := filepath.Join(dir, "talk-1.txt"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSplitStem(t *testing.T) {
	cases := []struct {
		name, stem, ext string
	}{
		{"talk.mp3", "talk", ".mp3"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".hidden", ".hidden", ""},
		{"noext", "noext", ""},
	}
	for _, tc := range cases {
		stem, ext := SplitStem(tc.name)
		if stem != tc.stem || ext != tc.ext {
			t.Errorf("SplitStem(%q) = (%q, %q), want (%q, %q)", tc.name, stem, ext, tc.stem, tc.ext)
		}
	}
}

func resolvedTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	return dir
}
