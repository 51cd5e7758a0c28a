package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func TestListFoldersReturnsSortedChildDirectories(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "Zeta"))
	mkdir(t, filepath.Join(root, "Alpha"))
	mkdir(t, filepath.Join(root, "Middle"))
	touch(t, filepath.Join(root, "loose-file.jpg"))

	folders, err := ListFolders(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folders) != 3 {
		t.Fatalf("expected 3 folders, got %d", len(folders))
	}
	wantNames := []string{"Alpha", "Middle", "Zeta"}
	for i, want := range wantNames {
		if folders[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, folders[i].Name)
		}
		if !filepath.IsAbs(folders[i].Path) {
			t.Errorf("%q: expected an absolute path, got %q", want, folders[i].Path)
		}
	}
}

func TestListFoldersSkipsNestedDirectories(t *testing.T) {
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "Event", "subdir"))

	folders, err := ListFolders(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Event" {
		t.Errorf("expected only the immediate child, got %v", folders)
	}
}

func TestListFoldersMissingRoot(t *testing.T) {
	_, err := ListFolders(filepath.Join(t.TempDir(), "nope"))
	serr, ok := err.(*ScanError)
	if !ok || serr.Type != DirectoryNotFound {
		t.Errorf("expected DIRECTORY_NOT_FOUND, got %v", err)
	}
}

func TestListFoldersRejectsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	touch(t, file)

	_, err := ListFolders(file)
	serr, ok := err.(*ScanError)
	if !ok || serr.Type != NotADirectory {
		t.Errorf("expected NOT_A_DIRECTORY, got %v", err)
	}
}

func TestListFilesRecursesAndIncludesHidden(t *testing.T) {
	folder := t.TempDir()
	touch(t, filepath.Join(folder, "a.jpg"))
	touch(t, filepath.Join(folder, ".hidden.jpg"))
	mkdir(t, filepath.Join(folder, "sub"))
	touch(t, filepath.Join(folder, "sub", "b.jpg"))

	files, err := ListFiles(folder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(files), files)
	}

	names := make(map[string]bool, len(files))
	for _, f := range files {
		names[f.Name] = true
	}
	for _, want := range []string{"a.jpg", ".hidden.jpg", "b.jpg"} {
		if !names[want] {
			t.Errorf("expected %q in listing", want)
		}
	}
}

func TestListFilesSkipsSymlinks(t *testing.T) {
	folder := t.TempDir()
	touch(t, filepath.Join(folder, "real.jpg"))
	if err := os.Symlink(filepath.Join(folder, "real.jpg"), filepath.Join(folder, "link.jpg")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := ListFiles(folder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "real.jpg" {
		t.Errorf("expected only the real file, got %v", files)
	}
}

func TestListFilesEmptyFolder(t *testing.T) {
	files, err := ListFiles(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestListFilesMissingFolder(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "gone"))
	serr, ok := err.(*ScanError)
	if !ok || serr.Type != DirectoryNotFound {
		t.Errorf("expected DIRECTORY_NOT_FOUND, got %v", err)
	}
}
