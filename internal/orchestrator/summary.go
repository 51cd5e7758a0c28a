package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/TsoliasPN/photo-library-workflow/internal/naming"
)

// FolderError records a folder whose processing failed.
type FolderError struct {
	FolderPath string
	Err        error
}

// Summary contains the results of one pass over the library.
type Summary struct {
	Pass     PassName
	Mode     Mode
	Renamed  int
	Skipped  int
	Failed   int
	Duration time.Duration

	SkippedByReason map[naming.SkipReason]int
	Decisions       []naming.Decision
	Errors          []FolderError
}

// NewSummary creates an empty summary for a pass.
func NewSummary(pass PassName, mode Mode) *Summary {
	return &Summary{
		Pass:            pass,
		Mode:            mode,
		SkippedByReason: make(map[naming.SkipReason]int),
	}
}

// RecordRename records an executed (or previewed) rename decision.
func (s *Summary) RecordRename(d naming.Decision) {
	s.Renamed++
	s.Decisions = append(s.Decisions, d)
}

// RecordSkip records a skipped folder.
func (s *Summary) RecordSkip(d naming.Decision) {
	s.Skipped++
	s.SkippedByReason[d.Reason]++
	s.Decisions = append(s.Decisions, d)
}

// RecordError records a folder whose processing failed.
func (s *Summary) RecordError(folderPath string, err error) {
	s.Failed++
	s.Errors = append(s.Errors, FolderError{FolderPath: folderPath, Err: err})
}

// HasErrors reports whether any folder failed.
func (s *Summary) HasErrors() bool {
	return s.Failed > 0
}

// String formats the summary for console output.
func (s *Summary) String() string {
	verb := "renamed"
	if s.Mode == ModePreview {
		verb = "would rename"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s pass: %s %d, skipped %d, failed %d (%s)",
		s.Pass, verb, s.Renamed, s.Skipped, s.Failed, s.Duration.Round(time.Millisecond))

	if len(s.SkippedByReason) > 0 {
		reasons := make([]string, 0, len(s.SkippedByReason))
		for reason := range s.SkippedByReason {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		parts := make([]string, 0, len(reasons))
		for _, reason := range reasons {
			parts = append(parts, fmt.Sprintf("%s=%d", reason, s.SkippedByReason[naming.SkipReason(reason)]))
		}
		fmt.Fprintf(&b, "\n  skipped: %s", strings.Join(parts, ", "))
	}

	return b.String()
}
