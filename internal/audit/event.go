// Package audit provides an append-only JSONL log of executed folder
// renames. The log is diagnostic output only; the pipelines never read it
// back, and idempotency is detected from folder names alone.
package audit

import (
	"encoding/json"
	"time"
)

// ISO8601Format is the time format used for event timestamps.
const ISO8601Format = time.RFC3339

// RunID is a unique identifier for each program execution, UUID v4 format.
type RunID string

// Pass identifies which pipeline produced an event.
type Pass string

const (
	PassPrefix Pass = "PREFIX"
	PassTag    Pass = "TAG"
)

// Status represents the outcome of a rename.
type Status string

const (
	StatusRenamed Status = "RENAMED"
	StatusFailed  Status = "FAILED"
)

// Event is one rename attempt.
type Event struct {
	Timestamp  string `json:"timestamp"`
	RunID      RunID  `json:"runId"`
	Pass       Pass   `json:"pass"`
	FolderPath string `json:"folderPath"`
	OldName    string `json:"oldName"`
	NewName    string `json:"newName"`
	Status     Status `json:"status"`
	Error      string `json:"error,omitempty"`
}

// NewEvent builds an event stamped with the current time.
func NewEvent(runID RunID, pass Pass, folderPath, oldName, newName string, status Status, opErr error) Event {
	e := Event{
		Timestamp:  time.Now().Format(ISO8601Format),
		RunID:      runID,
		Pass:       pass,
		FolderPath: folderPath,
		OldName:    oldName,
		NewName:    newName,
		Status:     status,
	}
	if opErr != nil {
		e.Error = opErr.Error()
	}
	return e
}

// MarshalJSONLine marshals an Event to one JSON line (no trailing newline).
func (e Event) MarshalJSONLine() ([]byte, error) {
	return json.Marshal(e)
}
