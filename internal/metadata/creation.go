package metadata

import (
	"os"
	"time"
)

// CreationTimer reports a file's creation timestamp.
type CreationTimer interface {
	CreationTime(path string) (time.Time, error)
}

// StatCreationTimer reads the timestamp from os.Stat. Go exposes no portable
// birth time, so the modification time stands in for it; for camera imports
// the two coincide.
type StatCreationTimer struct{}

// CreationTime implements CreationTimer.
func (StatCreationTimer) CreationTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
