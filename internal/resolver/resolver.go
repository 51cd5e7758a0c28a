// Package resolver derives the representative date of a media-event folder
// from its files.
package resolver

import (
	"fmt"
	"strings"
	"time"

	"github.com/TsoliasPN/photo-library-workflow/internal/dateparser"
	"github.com/TsoliasPN/photo-library-workflow/internal/metadata"
	"github.com/TsoliasPN/photo-library-workflow/internal/scanner"
)

// Source records where a resolved date came from.
type Source string

const (
	SourceEmbeddedMetadata Source = "embedded-metadata"
	SourceCreationTime     Source = "creation-time"
)

// Resolved is the representative date of a folder: the oldest date found
// across its files. Immutable once computed.
type Resolved struct {
	Year   int
	Month  time.Month
	Source Source
}

// ResolveErrorType represents why a folder yielded no date.
type ResolveErrorType string

const (
	// NoFiles indicates the folder contains no files at all.
	NoFiles ResolveErrorType = "NO_FILES"
	// NoDate indicates files exist but none yielded a usable date.
	NoDate ResolveErrorType = "NO_DATE"
)

// ResolveError represents a failure to resolve a folder date.
type ResolveError struct {
	Type   ResolveErrorType
	Folder string
}

func (e *ResolveError) Error() string {
	switch e.Type {
	case NoFiles:
		return fmt.Sprintf("folder has no files: %s", e.Folder)
	case NoDate:
		return fmt.Sprintf("no resolvable dates in folder: %s", e.Folder)
	default:
		return fmt.Sprintf("date resolution failed: %s", e.Folder)
	}
}

// IsNoFiles reports whether err is a ResolveError of type NoFiles.
func IsNoFiles(err error) bool {
	re, ok := err.(*ResolveError)
	return ok && re.Type == NoFiles
}

// IsNoDate reports whether err is a ResolveError of type NoDate.
func IsNoDate(err error) bool {
	re, ok := err.(*ResolveError)
	return ok && re.Type == NoDate
}

// WarnFunc receives non-fatal per-file diagnostics.
type WarnFunc func(format string, args ...interface{})

// Options configures diagnostic behavior. The preview pipeline runs with
// VerboseDiagnostics so every parse failure is reported with the raw
// offending text; the live pipeline falls back silently.
type Options struct {
	VerboseDiagnostics bool
	Warn               WarnFunc
}

// Resolver resolves folder dates from metadata with creation-time fallback.
type Resolver struct {
	meta    metadata.Reader
	created metadata.CreationTimer
	parser  *dateparser.Parser
	opts    Options
}

// New creates a Resolver over the given collaborators.
func New(meta metadata.Reader, created metadata.CreationTimer, parser *dateparser.Parser, opts Options) *Resolver {
	return &Resolver{
		meta:    meta,
		created: created,
		parser:  parser,
		opts:    opts,
	}
}

// Resolve computes the oldest date among the folder's files. Ties are broken
// arbitrarily; only year and month granularity is emitted, so ties never
// affect the output.
func (r *Resolver) Resolve(folder string, files []scanner.FileEntry) (*Resolved, error) {
	if len(files) == 0 {
		return nil, &ResolveError{Type: NoFiles, Folder: folder}
	}

	var (
		oldest       time.Time
		oldestSource Source
		resolvedAny  bool
	)

	for _, file := range files {
		t, source, ok := r.resolveFile(file)
		if !ok {
			continue
		}
		if !resolvedAny || t.Before(oldest) {
			oldest = t
			oldestSource = source
			resolvedAny = true
		}
	}

	if !resolvedAny {
		return nil, &ResolveError{Type: NoDate, Folder: folder}
	}

	return &Resolved{
		Year:   oldest.Year(),
		Month:  oldest.Month(),
		Source: oldestSource,
	}, nil
}

// resolveFile resolves a single file's date: embedded metadata first, then
// the creation timestamp. A false return means the file contributes nothing.
func (r *Resolver) resolveFile(file scanner.FileEntry) (time.Time, Source, bool) {
	text, present, err := r.meta.ReadDateTaken(file.Path)
	if err == nil && present && strings.TrimSpace(text) != "" {
		t, perr := r.parser.Parse(text)
		if perr == nil {
			return t, SourceEmbeddedMetadata, true
		}
		if r.opts.VerboseDiagnostics && r.opts.Warn != nil {
			r.opts.Warn("unparsable date taken for %s: %q", file.Path, text)
		}
	}

	created, cerr := r.created.CreationTime(file.Path)
	if cerr != nil {
		return time.Time{}, "", false
	}
	return created, SourceCreationTime, true
}
