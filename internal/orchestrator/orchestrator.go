// Package orchestrator coordinates the folder normalization passes for
// photoflow.
package orchestrator

import (
	"fmt"
	"time"

	"github.com/TsoliasPN/photo-library-workflow/internal/audit"
	"github.com/TsoliasPN/photo-library-workflow/internal/config"
	"github.com/TsoliasPN/photo-library-workflow/internal/dateparser"
	"github.com/TsoliasPN/photo-library-workflow/internal/metadata"
	"github.com/TsoliasPN/photo-library-workflow/internal/naming"
	"github.com/TsoliasPN/photo-library-workflow/internal/organizer"
	"github.com/TsoliasPN/photo-library-workflow/internal/output"
	"github.com/TsoliasPN/photo-library-workflow/internal/prefix"
	"github.com/TsoliasPN/photo-library-workflow/internal/resolver"
	"github.com/TsoliasPN/photo-library-workflow/internal/scanner"
)

// Mode selects whether rename decisions are executed or only reported.
type Mode string

const (
	ModePreview Mode = "preview"
	ModeApply   Mode = "apply"
)

// Orchestrator runs the date-prefix and keyword-tag passes over the library
// root, one folder at a time. Folders are fully processed in sequence; the
// only state shared between them is the read-only metadata cache.
type Orchestrator struct {
	cfg     *config.Configuration
	out     *output.Output
	mode    Mode
	cache   *metadata.Cache
	created metadata.CreationTimer
	parser  *dateparser.Parser
	audit   *audit.Writer // nil in preview mode or when disabled
}

// New builds an Orchestrator from configuration. In apply mode it also opens
// the rename log; failure to do so is fatal, unlike any per-folder error.
// Callers must Close the returned Orchestrator to release the metadata
// cache and the log.
func New(cfg *config.Configuration, out *output.Output, mode Mode) (*Orchestrator, error) {
	parser, err := dateparser.New(cfg.Locale, cfg.DateLayouts)
	if err != nil {
		return nil, fmt.Errorf("failed to build date parser: %w", err)
	}

	o := &Orchestrator{
		cfg:     cfg,
		out:     out,
		mode:    mode,
		cache:   metadata.NewCache(metadata.NewExifReader(cfg.MetadataExtensions)),
		created: metadata.StatCreationTimer{},
		parser:  parser,
	}

	if mode == ModeApply && cfg.Audit != nil && !cfg.Audit.Disabled {
		writer, err := audit.NewWriter(*cfg.Audit)
		if err != nil {
			return nil, fmt.Errorf("failed to open rename log: %w", err)
		}
		o.audit = writer
	}

	return o, nil
}

// Close releases the metadata cache and the rename log.
func (o *Orchestrator) Close() {
	o.cache.Close()
	if o.audit != nil {
		o.audit.Close()
	}
}

// ResetCache drops all cached metadata. Watch mode calls this between
// triggered runs so a re-scan never sees stale date-taken text.
func (o *Orchestrator) ResetCache() {
	o.cache.Close()
}

// newResolver builds the pass's date resolver. Preview runs report every
// per-file parse failure with the raw offending text; apply runs fall back
// silently.
func (o *Orchestrator) newResolver() *resolver.Resolver {
	return resolver.New(o.cache, o.created, o.parser, resolver.Options{
		VerboseDiagnostics: o.mode == ModePreview,
		Warn:               o.out.Error,
	})
}

// tagStyle returns the bracketing convention for the current mode.
func (o *Orchestrator) tagStyle() naming.Style {
	if o.mode == ModePreview {
		return naming.Parens
	}
	return naming.Brackets
}

// RunPrefixPass runs the date-prefix pipeline over every folder in the
// library root.
func (o *Orchestrator) RunPrefixPass() (*Summary, error) {
	return o.runPass(PassPrefix, o.decidePrefix)
}

// RunTagPass runs the keyword-tag pipeline over every folder in the library
// root. It only touches folders that already carry a date prefix, so it is
// safe to run in any order relative to RunPrefixPass within one invocation;
// tagging picks up prefixed names on the next pass over the directory.
func (o *Orchestrator) RunTagPass() (*Summary, error) {
	return o.runPass(PassTag, o.decideTag)
}

// PassName identifies a pipeline for summaries and progress labels.
type PassName string

const (
	PassPrefix PassName = "prefix"
	PassTag    PassName = "tag"
)

// progressLabels maps passes to their progress-line label.
var progressLabels = map[PassName]string{
	PassPrefix: "Prefixing folder",
	PassTag:    "Tagging folder",
}

// auditPasses maps passes to their rename-log identifier.
var auditPasses = map[PassName]audit.Pass{
	PassPrefix: audit.PassPrefix,
	PassTag:    audit.PassTag,
}

// runPass enumerates the library's folders and applies decide to each one.
// A folder's failure never aborts the pass; only failure to enumerate the
// root itself is returned as an error.
func (o *Orchestrator) runPass(pass PassName, decide func(scanner.FolderEntry) (naming.Decision, error)) (*Summary, error) {
	start := time.Now()

	folders, err := scanner.ListFolders(o.cfg.LibraryRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to scan library root: %w", err)
	}

	summary := NewSummary(pass, o.mode)
	o.out.StartProgress(len(folders))
	for i, folder := range folders {
		o.out.UpdateProgress(i+1, progressLabels[pass])
		decision, derr := decide(folder)
		if derr != nil {
			summary.RecordError(folder.Path, derr)
			o.out.Error("error processing %s: %v", folder.Name, derr)
			continue
		}
		o.execute(pass, decision, summary)
	}
	o.out.EndProgress()

	summary.Duration = time.Since(start)
	return summary, nil
}

// decidePrefix produces the date-prefix decision for one folder. The
// already-prefixed guard runs before any file is read so that re-runs over
// a processed library cost no metadata reads.
func (o *Orchestrator) decidePrefix(folder scanner.FolderEntry) (naming.Decision, error) {
	if prefix.HasDatePrefix(folder.Name) {
		return naming.Skip(folder.Path, folder.Name, naming.SkipAlreadyPrefixed), nil
	}

	files, err := scanner.ListFiles(folder.Path)
	if err != nil {
		return naming.Decision{}, err
	}

	resolved, err := o.newResolver().Resolve(folder.Path, files)
	if err != nil {
		switch {
		case resolver.IsNoFiles(err):
			// Expected case, skipped silently
			return naming.Skip(folder.Path, folder.Name, naming.SkipEmptyFolder), nil
		case resolver.IsNoDate(err):
			o.out.Error("no resolvable dates in %s, folder skipped", folder.Name)
			return naming.Skip(folder.Path, folder.Name, naming.SkipNoDate), nil
		default:
			return naming.Decision{}, err
		}
	}

	return naming.DecidePrefix(folder.Path, folder.Name, *resolved), nil
}

// decideTag produces the keyword-tag decision for one folder. Date
// resolution is deferred behind the fallback closure; it only runs when no
// year is discoverable in the folder name or its prefix.
func (o *Orchestrator) decideTag(folder scanner.FolderEntry) (naming.Decision, error) {
	fallback := func() (int, bool) {
		files, err := scanner.ListFiles(folder.Path)
		if err != nil {
			return 0, false
		}
		resolved, err := o.newResolver().Resolve(folder.Path, files)
		if err != nil {
			if resolver.IsNoDate(err) {
				o.out.Error("no resolvable dates in %s, no fallback year", folder.Name)
			}
			return 0, false
		}
		return resolved.Year, true
	}

	return naming.DecideTag(folder.Path, folder.Name, fallback, o.tagStyle()), nil
}

// execute carries out a decision according to the mode and records it.
func (o *Orchestrator) execute(pass PassName, d naming.Decision, summary *Summary) {
	if d.Action == naming.ActionSkip {
		summary.RecordSkip(d)
		o.out.Verbose("skip %q: %s", d.OldName, d.Reason)
		return
	}

	if o.mode == ModePreview {
		summary.RecordRename(d)
		o.out.Info("would rename %q -> %q", d.OldName, d.NewName)
		return
	}

	if _, err := organizer.Rename(d); err != nil {
		summary.RecordError(d.FolderPath, err)
		o.out.Error("failed to rename %q: %v", d.OldName, err)
		o.logEvent(pass, d, audit.StatusFailed, err)
		return
	}

	summary.RecordRename(d)
	o.out.Verbose("renamed %q -> %q", d.OldName, d.NewName)
	o.logEvent(pass, d, audit.StatusRenamed, nil)
}

// logEvent appends a rename event when a log is open. Log write failures
// are surfaced but never abort the run.
func (o *Orchestrator) logEvent(pass PassName, d naming.Decision, status audit.Status, opErr error) {
	if o.audit == nil {
		return
	}
	event := audit.NewEvent(o.audit.RunID(), auditPasses[pass], d.FolderPath, d.OldName, d.NewName, status, opErr)
	if err := o.audit.Append(event); err != nil {
		o.out.Error("failed to write rename log: %v", err)
	}
}
