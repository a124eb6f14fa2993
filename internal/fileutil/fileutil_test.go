package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if Exists(file) {
		t.Fatal("expected missing file")
	}
	if err := WriteFile(file, []byte("x")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !Exists(file) || !IsFile(file) || IsDir(file) {
		t.Fatal("expected regular file")
	}
	if !IsDir(dir) || IsFile(dir) {
		t.Fatal("expected directory")
	}
}

func TestExistsCountsDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if !Exists(link) {
		t.Fatal("expected dangling symlink to count as existing")
	}
	if IsFile(link) {
		t.Fatal("dangling symlink should not resolve to a file")
	}
}

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteFile(path, []byte("longer content")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFile(path, []byte("short")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "short" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := WriteFile(path, []byte("abc")); err != nil {
		t.Fatalf("write: %v", err)
	}
	sum, n, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 bytes, got %d", n)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if sum != want {
		t.Fatalf("unexpected digest %s", sum)
	}
	if _, _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
