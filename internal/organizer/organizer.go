// Package organizer executes folder rename decisions for photoflow.
package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TsoliasPN/photo-library-workflow/internal/naming"
)

// RenameErrorType represents the type of rename failure.
type RenameErrorType string

const (
	// DestinationExists indicates a folder already exists under the new name.
	DestinationExists RenameErrorType = "DESTINATION_EXISTS"
	// InvalidName indicates the new name contains characters the filesystem
	// rejects.
	InvalidName RenameErrorType = "INVALID_NAME"
	// SourceNotFound indicates the folder vanished before the rename.
	SourceNotFound RenameErrorType = "SOURCE_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions for the rename.
	PermissionDenied RenameErrorType = "PERMISSION_DENIED"
	// IOError covers any other filesystem failure.
	IOError RenameErrorType = "IO_ERROR"
)

// RenameError represents a failed rename. Neither collision nor invalid-name
// failures are retried; the folder's operation aborts and the run continues.
type RenameError struct {
	Type RenameErrorType
	Path string
	Err  error
}

func (e *RenameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// invalidNameChars are characters rejected in folder names. The set is the
// portable-filesystem one so a library synced to Windows stays consistent.
const invalidNameChars = `<>:"/\|?*`

// Rename executes a rename decision in place, within the folder's parent
// directory, and returns the new absolute path.
func Rename(d naming.Decision) (string, error) {
	if d.Action != naming.ActionRename {
		return "", &RenameError{
			Type: IOError,
			Path: d.FolderPath,
			Err:  fmt.Errorf("decision for %q is not a rename", d.OldName),
		}
	}

	if strings.ContainsAny(d.NewName, invalidNameChars) {
		return "", &RenameError{Type: InvalidName, Path: d.NewName}
	}

	if _, err := os.Lstat(d.FolderPath); err != nil {
		if os.IsNotExist(err) {
			return "", &RenameError{Type: SourceNotFound, Path: d.FolderPath, Err: err}
		}
		return "", &RenameError{Type: IOError, Path: d.FolderPath, Err: err}
	}

	newPath := filepath.Join(filepath.Dir(d.FolderPath), d.NewName)
	if _, err := os.Lstat(newPath); err == nil {
		return "", &RenameError{Type: DestinationExists, Path: newPath}
	}

	if err := os.Rename(d.FolderPath, newPath); err != nil {
		if os.IsPermission(err) {
			return "", &RenameError{Type: PermissionDenied, Path: d.FolderPath, Err: err}
		}
		return "", &RenameError{Type: IOError, Path: d.FolderPath, Err: err}
	}

	return newPath, nil
}
