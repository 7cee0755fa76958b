package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !DirExists(dir) {
		t.Error("directory was not created")
	}
	// Second call is a no-op.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	write(t, file, "x")

	if !FileExists(file) {
		t.Error("FileExists = false for existing file")
	}
	if FileExists(dir) {
		t.Error("FileExists = true for directory")
	}
	if !DirExists(dir) {
		t.Error("DirExists = false for existing dir")
	}
	if DirExists(file) {
		t.Error("DirExists = true for file")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists = true for missing path")
	}
}

func TestListFilesWithSuffix(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "default.lay"), "")
	write(t, filepath.Join(dir, "cab.png"), "")
	if err := os.Mkdir(filepath.Join(dir, "sub.lay"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := ListFilesWithSuffix(dir, ".lay")
	if err != nil {
		t.Fatalf("ListFilesWithSuffix failed: %v", err)
	}
	if len(names) != 1 || names[0] != "default.lay" {
		t.Errorf("names = %v, want [default.lay]", names)
	}
}

func TestListSubdirNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"pacman", "galaga"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	write(t, filepath.Join(dir, "stray.txt"), "")

	names, err := ListSubdirNames(dir)
	if err != nil {
		t.Fatalf("ListSubdirNames failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("names = %v, want 2 directories", names)
	}
}

func TestRemoveFilesWithExt(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.png"), "")
	write(t, filepath.Join(dir, "b.PNG"), "")
	write(t, filepath.Join(dir, "keep.txt"), "")

	removed, err := RemoveFilesWithExt(dir, ".png")
	if err != nil {
		t.Fatalf("RemoveFilesWithExt failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if !FileExists(filepath.Join(dir, "keep.txt")) {
		t.Error("non-matching file was removed")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")
	write(t, src, "pixels")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pixels" {
		t.Errorf("copied content = %q", data)
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exceptions.txt")
	write(t, path, "pacman\n\n  galaga  \n")

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "pacman" || lines[1] != "galaga" {
		t.Errorf("lines = %v", lines)
	}
}
