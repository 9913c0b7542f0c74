// Package fix applies the fixes attached to diagnostics to files on disk.
package fix

// todo: интеграция с git:
// По умолчанию создавать .bak только для незатрекинных файлов.
// Флаг --staged-only (работать по git diff --name-only --staged).

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// Unsafe lets ApplyModeAll include fixes that are not always safe.
	Unsafe bool
	// DryRun computes the new contents without writing them.
	DryRun bool
}

// FileDiagnostics pairs a loaded file with the diagnostics of its pass.
type FileDiagnostics struct {
	File        source.FileID
	Diagnostics []diag.Diagnostic
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability Applicability
	Path          string
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	// Content is the new file content; set only for dry runs.
	Content []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	id            string
	title         string
	diag          diag.Diagnostic
	edit          Edit
	applicability Applicability
	order         int
}

// Apply collects fixes from diagnostics, selects a subset according to opts, and applies them.
func Apply(fs *source.FileSet, targets []FileDiagnostics, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(fs, targets)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// FixID is the stable identifier of the fix attached to d in file:
// code, file id and the 1-based start position.
func FixID(file source.FileID, d diag.Diagnostic) string {
	return fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), file, d.Range.Start.Line+1, d.Range.Start.Character+1)
}

// gatherCandidates turns every diagnostic fix into a guarded byte edit.
// Fixes whose range does not fit the file and duplicate ids are skipped.
func gatherCandidates(fs *source.FileSet, targets []FileDiagnostics) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]struct{})

	order := 0
	for _, target := range targets {
		file := fs.Get(target.File)
		for _, d := range target.Diagnostics {
			if d.Fix == nil {
				continue
			}
			id := FixID(target.File, d)
			if _, dup := seen[id]; dup {
				skips = append(skips, SkippedFix{ID: id, Title: d.Fix.Title, Reason: "duplicate fix id"})
				continue
			}
			edit, err := ReplaceRange(file, d.Range, d.Fix.NewText)
			if err != nil {
				skips = append(skips, SkippedFix{
					ID:     id,
					Title:  d.Fix.Title,
					Reason: fmt.Sprintf("failed to build fix: %v", err),
				})
				continue
			}
			seen[id] = struct{}{}
			cands = append(cands, candidate{
				id:            id,
				title:         d.Fix.Title,
				diag:          d,
				edit:          edit,
				applicability: ApplicabilityOf(d.Code),
				order:         order,
			})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders by file, start offset, end offset, insertion
// order and code, so selection is deterministic.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ei, ej := candidates[i].edit, candidates[j].edit
		if ei.File != ej.File {
			return ei.File < ej.File
		}
		if ei.Start != ej.Start {
			return ei.Start < ej.Start
		}
		if ei.End != ej.End {
			return ei.End < ej.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		return candidates[i].diag.Code < candidates[j].diag.Code
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.id == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.applicability == ApplicabilityAlwaysSafe || opts.Unsafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.id,
				Title:  cand.title,
				Reason: fmt.Sprintf("applicability is %s", cand.applicability),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		// первый безопасный, иначе первый вообще
		for _, cand := range candidates {
			if cand.applicability == ApplicabilityAlwaysSafe {
				return []candidate{cand}, nil
			}
		}
		return []candidate{candidates[0]}, nil
	default:
		return nil, nil
	}
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	buffers := make(map[source.FileID][]byte)
	appliedEdits := make(map[source.FileID][]Edit)
	fileEditCount := make(map[source.FileID]int)

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	baseDir := fs.BaseDir()

	for _, cand := range selected {
		edit := cand.edit
		file := fs.Get(edit.File)
		if file == nil {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.title, Reason: "unknown file"})
			continue
		}
		if file.Flags&source.FileVirtual != 0 && !dryRun {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.title, Reason: "target file is virtual"})
			continue
		}
		if conflictsWithExisting(appliedEdits[edit.File], edit) {
			skipped = append(skipped, SkippedFix{
				ID:     cand.id,
				Title:  cand.title,
				Reason: fmt.Sprintf("conflicts with previously applied edits in %s", file.FormatPath("auto", baseDir)),
			})
			continue
		}

		working := buffers[edit.File]
		if working == nil {
			working = append([]byte(nil), file.Content...)
		}
		existing := appliedEdits[edit.File]
		start := edit.Start + cumulativeDelta(existing, edit.Start)
		end := edit.End + cumulativeDelta(existing, edit.End)
		if start < 0 || end < start || end > len(working) {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.title, Reason: "edit span out of range"})
			continue
		}
		if string(working[start:end]) != edit.OldText {
			skipped = append(skipped, SkippedFix{ID: cand.id, Title: cand.title, Reason: "existing text does not match expected content"})
			continue
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], edit.NewText...), suffix...)

		buffers[edit.File] = working
		appliedEdits[edit.File] = insertEditSorted(existing, edit)
		fileEditCount[edit.File]++

		applied = append(applied, AppliedFix{
			ID:            cand.id,
			Title:         cand.title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.applicability,
			Path:          file.FormatPath("auto", baseDir),
		})
	}

	if len(applied) == 0 {
		return applied, skipped, nil, nil
	}

	fileChanges := make([]FileChange, 0, len(buffers))
	for fileID, buf := range buffers {
		file := fs.Get(fileID)
		out := restoreEncoding(buf, file.Flags)
		change := FileChange{
			Path:      file.FormatPath("relative", baseDir),
			EditCount: fileEditCount[fileID],
		}
		if dryRun {
			change.Content = out
		} else {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, out, mode); err != nil {
				return applied, skipped, fileChanges, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		fileChanges = append(fileChanges, change)
	}

	sort.SliceStable(fileChanges, func(i, j int) bool {
		return fileChanges[i].Path < fileChanges[j].Path
	})

	return applied, skipped, fileChanges, nil
}

// restoreEncoding undoes the BOM and CRLF normalization done on load.
func restoreEncoding(buf []byte, flags source.FileFlags) []byte {
	out := buf
	if flags&source.FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if flags&source.FileHadBOM != 0 {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out
}

func conflictsWithExisting(existing []Edit, edit Edit) bool {
	for _, prev := range existing {
		if spansConflict(prev, edit) {
			return true
		}
	}
	return false
}

// spansConflict reports whether two edits overlap. Spans are half-open
// [Start, End); two insertions never conflict, an insertion conflicts with
// a span that strictly contains its position.
func spansConflict(a, b Edit) bool {
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// cumulativeDelta is the length change caused by applied edits that end
// at or before pos (original offsets).
func cumulativeDelta(edits []Edit, pos int) int {
	delta := 0
	for _, e := range edits {
		if e.Start > pos {
			break
		}
		if e.End <= pos {
			delta += len(e.NewText) - (e.End - e.Start)
		}
	}
	return delta
}

func insertEditSorted(edits []Edit, edit Edit) []Edit {
	insertIdx := sort.Search(len(edits), func(i int) bool {
		if edits[i].Start == edit.Start {
			return edits[i].End >= edit.End
		}
		return edits[i].Start > edit.Start
	})
	out := make([]Edit, 0, len(edits)+1)
	out = append(out, edits[:insertIdx]...)
	out = append(out, edit)
	return append(out, edits[insertIdx:]...)
}
