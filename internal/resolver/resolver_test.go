package resolver

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/TsoliasPN/photo-library-workflow/internal/dateparser"
	"github.com/TsoliasPN/photo-library-workflow/internal/scanner"
)

// fakeReader serves date-taken text from a map keyed by path.
type fakeReader struct {
	texts map[string]string
	reads int
}

func (f *fakeReader) ReadDateTaken(path string) (string, bool, error) {
	f.reads++
	text, ok := f.texts[path]
	return text, ok, nil
}

// fakeCreated serves creation times from a map keyed by path.
type fakeCreated struct {
	times map[string]time.Time
}

func (f *fakeCreated) CreationTime(path string) (time.Time, error) {
	t, ok := f.times[path]
	if !ok {
		return time.Time{}, errors.New("stat failed")
	}
	return t, nil
}

func newTestResolver(t *testing.T, reader *fakeReader, created *fakeCreated, opts Options) *Resolver {
	t.Helper()
	parser, err := dateparser.New("en_US", nil)
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}
	return New(reader, created, parser, opts)
}

func files(paths ...string) []scanner.FileEntry {
	entries := make([]scanner.FileEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, scanner.FileEntry{Name: p, Path: p})
	}
	return entries
}

func TestResolveOldestDateWins(t *testing.T) {
	reader := &fakeReader{texts: map[string]string{
		"a.jpg": "2020:05:03 10:00:00",
		"b.jpg": "2019:11:01 09:00:00",
		"c.jpg": "2020:01:15 12:00:00",
	}}
	created := &fakeCreated{times: map[string]time.Time{}}

	r := newTestResolver(t, reader, created, Options{})
	resolved, err := r.Resolve("folder", files("a.jpg", "b.jpg", "c.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Year != 2019 || resolved.Month != time.November {
		t.Errorf("expected 2019-11, got %04d-%02d", resolved.Year, int(resolved.Month))
	}
	if resolved.Source != SourceEmbeddedMetadata {
		t.Errorf("expected embedded-metadata provenance, got %s", resolved.Source)
	}
}

func TestResolveUnparsableFallsBackToCreationTime(t *testing.T) {
	reader := &fakeReader{texts: map[string]string{
		"a.jpg": "definitely not a date",
	}}
	created := &fakeCreated{times: map[string]time.Time{
		"a.jpg": time.Date(2018, time.March, 10, 0, 0, 0, 0, time.Local),
	}}

	r := newTestResolver(t, reader, created, Options{})
	resolved, err := r.Resolve("folder", files("a.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Year != 2018 || resolved.Month != time.March {
		t.Errorf("expected 2018-03, got %04d-%02d", resolved.Year, int(resolved.Month))
	}
	if resolved.Source != SourceCreationTime {
		t.Errorf("expected creation-time provenance, got %s", resolved.Source)
	}
}

func TestResolveAbsentMetadataFallsBackSilently(t *testing.T) {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	reader := &fakeReader{texts: map[string]string{}}
	created := &fakeCreated{times: map[string]time.Time{
		"a.mp4": time.Date(2017, time.July, 1, 0, 0, 0, 0, time.Local),
	}}

	r := newTestResolver(t, reader, created, Options{VerboseDiagnostics: true, Warn: warn})
	resolved, err := r.Resolve("folder", files("a.mp4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Year != 2017 {
		t.Errorf("expected 2017, got %d", resolved.Year)
	}
	if len(warnings) != 0 {
		t.Errorf("absent metadata must not warn, got %v", warnings)
	}
}

func TestResolveVerboseDiagnosticsCarryRawText(t *testing.T) {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	reader := &fakeReader{texts: map[string]string{
		"a.jpg": "garbled ¤ date",
	}}
	created := &fakeCreated{times: map[string]time.Time{
		"a.jpg": time.Date(2018, time.March, 10, 0, 0, 0, 0, time.Local),
	}}

	r := newTestResolver(t, reader, created, Options{VerboseDiagnostics: true, Warn: warn})
	if _, err := r.Resolve("folder", files("a.jpg")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0], "garbled ¤ date") {
		t.Errorf("warning must carry the raw offending text, got %q", warnings[0])
	}
}

func TestResolveQuietModeSuppressesPerFileDiagnostics(t *testing.T) {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	reader := &fakeReader{texts: map[string]string{
		"a.jpg": "not a date",
	}}
	created := &fakeCreated{times: map[string]time.Time{
		"a.jpg": time.Date(2018, time.March, 10, 0, 0, 0, 0, time.Local),
	}}

	r := newTestResolver(t, reader, created, Options{VerboseDiagnostics: false, Warn: warn})
	if _, err := r.Resolve("folder", files("a.jpg")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("quiet mode must not emit per-file diagnostics, got %v", warnings)
	}
}

func TestResolveEmptyFolder(t *testing.T) {
	r := newTestResolver(t, &fakeReader{}, &fakeCreated{}, Options{})
	_, err := r.Resolve("folder", nil)
	if !IsNoFiles(err) {
		t.Errorf("expected NO_FILES, got %v", err)
	}
}

func TestResolveNoDateResolvable(t *testing.T) {
	// No metadata and stat failures for every file
	r := newTestResolver(t, &fakeReader{}, &fakeCreated{times: map[string]time.Time{}}, Options{})
	_, err := r.Resolve("folder", files("a.jpg", "b.jpg"))
	if !IsNoDate(err) {
		t.Errorf("expected NO_DATE, got %v", err)
	}
}

func TestResolveMixedSourcesPickOldest(t *testing.T) {
	// Metadata date is newer than another file's creation time; the
	// creation time must win the aggregation.
	reader := &fakeReader{texts: map[string]string{
		"a.jpg": "2020:05:03 10:00:00",
	}}
	created := &fakeCreated{times: map[string]time.Time{
		"b.mov": time.Date(2016, time.February, 2, 0, 0, 0, 0, time.Local),
	}}

	r := newTestResolver(t, reader, created, Options{})
	resolved, err := r.Resolve("folder", files("a.jpg", "b.mov"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Year != 2016 || resolved.Source != SourceCreationTime {
		t.Errorf("expected 2016 from creation-time, got %d from %s", resolved.Year, resolved.Source)
	}
}
