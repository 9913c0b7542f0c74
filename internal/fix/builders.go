package fix

import (
	"fmt"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

// Applicability says whether a fix can be applied without review.
type Applicability uint8

const (
	// ApplicabilityAlwaysSafe fixes only touch the flagged text.
	ApplicabilityAlwaysSafe Applicability = iota
	// ApplicabilityUnsafe fixes change a name that may be referenced
	// elsewhere; other references are left as they are.
	ApplicabilityUnsafe
)

func (a Applicability) String() string {
	switch a {
	case ApplicabilityAlwaysSafe:
		return "always-safe"
	case ApplicabilityUnsafe:
		return "unsafe"
	}
	return "unknown"
}

// ApplicabilityOf classifies the fixes a rule produces.
func ApplicabilityOf(code diag.Code) Applicability {
	switch code {
	case diag.ScrBooleanNaming:
		// переименование не трогает остальные ссылки
		return ApplicabilityUnsafe
	default:
		return ApplicabilityAlwaysSafe
	}
}

// Edit is a byte-offset replacement inside one file. OldText guards
// against applying an edit to content that changed since analysis.
type Edit struct {
	File    source.FileID
	Start   int
	End     int
	NewText string
	OldText string
}

// ReplaceRange converts a composite range into a guarded byte edit.
func ReplaceRange(file *source.File, rng source.Range, newText string) (Edit, error) {
	if file == nil {
		return Edit{}, fmt.Errorf("fix: nil file")
	}
	doc := file.Document()
	if !doc.Contains(rng) {
		return Edit{}, fmt.Errorf("fix: range %s outside %s", rng, file.Path)
	}
	start, end := doc.OffsetAt(rng.Start), doc.OffsetAt(rng.End)
	if end < start {
		return Edit{}, fmt.Errorf("fix: inverted range %s", rng)
	}
	return Edit{
		File:    file.ID,
		Start:   start,
		End:     end,
		NewText: newText,
		OldText: string(file.Content[start:end]),
	}, nil
}
