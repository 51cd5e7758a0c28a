// Package scanner handles folder and file enumeration for photoflow.
package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
	// NotADirectory indicates the path exists but is not a directory.
	NotADirectory ScanErrorType = "NOT_A_DIRECTORY"
)

// ScanError represents an error that occurred during enumeration.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// FolderEntry represents one media-event folder: an immediate child
// directory of the library root.
type FolderEntry struct {
	Name string // Directory name only
	Path string // Absolute path
}

// FileEntry represents a file found inside a media-event folder.
type FileEntry struct {
	Name string // Filename only
	Path string // Absolute path
}

// ListFolders enumerates the immediate child directories of the library root,
// sorted by name. Symlinks are not followed.
func ListFolders(root string) ([]FolderEntry, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return nil, classifyStatError(root, err)
	}
	if !info.IsDir() {
		return nil, &ScanError{
			Type: NotADirectory,
			Path: root,
			Err:  errors.New("path is not a directory"),
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, classifyStatError(root, err)
	}

	var folders []FolderEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		fullPath := filepath.Join(root, entry.Name())
		absPath, err := filepath.Abs(fullPath)
		if err != nil {
			absPath = fullPath
		}
		folders = append(folders, FolderEntry{
			Name: entry.Name(),
			Path: absPath,
		})
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})

	return folders, nil
}

// ListFiles enumerates every file under the given folder recursively,
// including hidden files. Directories themselves are not returned and
// symlinks are skipped.
func ListFiles(folder string) ([]FileEntry, error) {
	if _, err := os.Lstat(folder); err != nil {
		return nil, classifyStatError(folder, err)
	}

	var files []FileEntry
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable subtrees rather than aborting the folder
			if os.IsPermission(err) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		absPath, aerr := filepath.Abs(path)
		if aerr != nil {
			absPath = path
		}
		files = append(files, FileEntry{
			Name: d.Name(),
			Path: absPath,
		})
		return nil
	})
	if err != nil {
		return nil, classifyStatError(folder, err)
	}

	return files, nil
}

// classifyStatError maps filesystem errors to typed scan errors.
func classifyStatError(path string, err error) error {
	if os.IsNotExist(err) {
		return &ScanError{Type: DirectoryNotFound, Path: path, Err: err}
	}
	if os.IsPermission(err) {
		return &ScanError{Type: PermissionDenied, Path: path, Err: err}
	}
	return err
}
