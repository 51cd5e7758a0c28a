package naming

import (
	"github.com/TsoliasPN/photo-library-workflow/internal/classifier"
	"github.com/TsoliasPN/photo-library-workflow/internal/prefix"
	"github.com/TsoliasPN/photo-library-workflow/internal/resolver"
)

// Action is what a Decision proposes.
type Action string

const (
	ActionRename Action = "RENAME"
	ActionSkip   Action = "SKIP"
)

// SkipReason explains why a folder was left untouched.
type SkipReason string

const (
	SkipAlreadyPrefixed SkipReason = "ALREADY_PREFIXED"
	SkipAlreadyTagged   SkipReason = "ALREADY_TAGGED"
	SkipNoPrefix        SkipReason = "NO_PREFIX"
	SkipNoChange        SkipReason = "NO_CHANGE"
	SkipNoYear          SkipReason = "NO_YEAR"
	SkipEmptyFolder     SkipReason = "EMPTY_FOLDER"
	SkipNoDate          SkipReason = "NO_DATE"
)

// Decision is a proposed rename for one folder. It is mode-agnostic: the
// caller decides whether to execute it or only report it.
type Decision struct {
	FolderPath string
	OldName    string
	NewName    string
	Action     Action
	Reason     SkipReason
}

// Skip builds a skip decision for the given reason.
func Skip(folderPath, name string, reason SkipReason) Decision {
	return Decision{
		FolderPath: folderPath,
		OldName:    name,
		Action:     ActionSkip,
		Reason:     reason,
	}
}

// DecidePrefix produces the date-prefix pipeline's decision for a folder.
// A rename is proposed only if the name does not already start with a
// four-digit-dash-two-digit pattern and the composed name differs from the
// current one. Re-running the pipeline on processed folders is a no-op.
func DecidePrefix(folderPath, name string, date resolver.Resolved) Decision {
	if prefix.HasDatePrefix(name) {
		return Skip(folderPath, name, SkipAlreadyPrefixed)
	}

	newName := ComposePrefixName(date, name)
	if newName == name {
		return Skip(folderPath, name, SkipNoChange)
	}

	return Decision{
		FolderPath: folderPath,
		OldName:    name,
		NewName:    newName,
		Action:     ActionRename,
	}
}

// DecideTag produces the keyword pipeline's decision for a folder. Folders
// already carrying a category tag, or lacking the leading "YYYY-MM - "
// prefix, are left untouched; the two passes are strictly sequential and
// this pipeline only operates on the other's output.
func DecideTag(folderPath, name string, fallback classifier.FallbackYear, style Style) Decision {
	if HasCategoryTag(name) {
		return Skip(folderPath, name, SkipAlreadyTagged)
	}

	m := prefix.Extract(name)
	if !m.Matched {
		return Skip(folderPath, name, SkipNoPrefix)
	}

	rule, ok := classifier.Classify(m.Remainder, m.Year, true, fallback)
	if !ok {
		return Skip(folderPath, name, SkipNoYear)
	}

	newName := ComposeTagName(m.Prefix, rule, style)
	if newName == name {
		return Skip(folderPath, name, SkipNoChange)
	}

	return Decision{
		FolderPath: folderPath,
		OldName:    name,
		NewName:    newName,
		Action:     ActionRename,
	}
}
