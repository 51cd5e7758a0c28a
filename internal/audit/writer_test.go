package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func TestWriterAppendsJSONLines(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(Config{LogDirectory: dir})
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	runID := w.RunID()
	events := []Event{
		NewEvent(runID, PassPrefix, "/lib/Trip", "Trip", "2019-11 - Trip", StatusRenamed, nil),
		NewEvent(runID, PassTag, "/lib/2019-11 - Trip", "2019-11 - Trip", "2019-11 - [BIRTHDAY 2019] - Trip", StatusFailed, errors.New("destination exists")),
	}
	for _, e := range events {
		if err := w.Append(e); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	f, err := os.Open(w.LogPath())
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	defer f.Close()

	var read []Event
	s := bufio.NewScanner(f)
	for s.Scan() {
		var e Event
		if err := json.Unmarshal(s.Bytes(), &e); err != nil {
			t.Fatalf("malformed line %q: %v", s.Text(), err)
		}
		read = append(read, e)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if len(read) != 2 {
		t.Fatalf("expected 2 events, got %d", len(read))
	}
	if read[0].Pass != PassPrefix || read[0].Status != StatusRenamed || read[0].NewName != "2019-11 - Trip" {
		t.Errorf("unexpected first event: %+v", read[0])
	}
	if read[1].Status != StatusFailed || read[1].Error != "destination exists" {
		t.Errorf("unexpected second event: %+v", read[1])
	}
	for _, e := range read {
		if e.RunID != runID {
			t.Errorf("expected run ID %s, got %s", runID, e.RunID)
		}
		if _, err := time.Parse(ISO8601Format, e.Timestamp); err != nil {
			t.Errorf("bad timestamp %q: %v", e.Timestamp, err)
		}
	}
}

func TestWriterAppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 2; i++ {
		w, err := NewWriter(Config{LogDirectory: dir})
		if err != nil {
			t.Fatalf("run %d: failed to create writer: %v", i, err)
		}
		e := NewEvent(w.RunID(), PassPrefix, "/lib/Trip", "Trip", "2019-11 - Trip", StatusRenamed, nil)
		if err := w.Append(e); err != nil {
			t.Fatalf("run %d: append failed: %v", i, err)
		}
		w.Close()
	}

	data, err := os.ReadFile(filepath.Join(dir, logFilename))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("expected 2 lines across runs, got %d", lines)
	}
}

func TestGenerateRunIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	seen := make(map[RunID]bool)
	for i := 0; i < 10; i++ {
		id, err := GenerateRunID()
		if err != nil {
			t.Fatalf("failed to generate run ID: %v", err)
		}
		if !pattern.MatchString(string(id)) {
			t.Errorf("run ID %q is not UUID v4 format", id)
		}
		if seen[id] {
			t.Errorf("duplicate run ID %q", id)
		}
		seen[id] = true
	}
}

func TestEventErrorOmittedWhenNil(t *testing.T) {
	e := NewEvent("run", PassPrefix, "/lib/Trip", "Trip", "2019-11 - Trip", StatusRenamed, nil)
	line, err := e.MarshalJSONLine()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, present := raw["error"]; present {
		t.Error("error field must be omitted for successful events")
	}
}
