package audit

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// logFilename is the fixed name of the rename log within the log directory.
const logFilename = "photoflow-renames.jsonl"

// Config holds audit log settings.
type Config struct {
	LogDirectory string `json:"logDirectory,omitempty"`
	Disabled     bool   `json:"disabled,omitempty"`
}

// DefaultConfig returns the default audit configuration. The log lives
// under the user's home directory so it never appears inside the library
// being normalized.
func DefaultConfig() Config {
	dir := ".photoflow"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".photoflow")
	}
	return Config{LogDirectory: dir}
}

// Writer appends rename events to the log with append-only semantics.
// Every event is flushed immediately; a crash mid-run loses at most the
// event being written.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	logPath string
	runID   RunID
}

// NewWriter creates the log directory if needed, opens the log for
// appending, and assigns a fresh run ID.
func NewWriter(config Config) (*Writer, error) {
	if err := os.MkdirAll(config.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(config.LogDirectory, logFilename)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open rename log: %w", err)
	}

	runID, err := GenerateRunID()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Writer{
		file:    file,
		logPath: logPath,
		runID:   runID,
	}, nil
}

// RunID returns the identifier assigned to this writer's run.
func (w *Writer) RunID() RunID {
	return w.runID
}

// LogPath returns the path of the log file.
func (w *Writer) LogPath() string {
	return w.logPath
}

// Append writes one event as a JSON line and syncs it to disk.
func (w *Writer) Append(e Event) error {
	line, err := e.MarshalJSONLine()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return w.file.Sync()
}

// Close closes the underlying log file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// GenerateRunID generates a new UUID v4 format run ID.
func GenerateRunID() (RunID, error) {
	uuid := make([]byte, 16)
	if _, err := rand.Read(uuid); err != nil {
		return "", fmt.Errorf("failed to generate run ID: %w", err)
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // Variant RFC 4122

	return RunID(fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uuid[0:4],
		uuid[4:6],
		uuid[6:8],
		uuid[8:10],
		uuid[10:16],
	)), nil
}
