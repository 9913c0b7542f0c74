package lsp

import "sfclint/internal/source"

// applyChanges applies content changes in order. A change without range
// replaces the whole text; ranged changes use UTF-16 positions against
// the text as left by the previous change.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		doc := source.NewDocument(text)
		start := doc.OffsetAt(fromLSPPosition(change.Range.Start))
		end := doc.OffsetAt(fromLSPPosition(change.Range.End))
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

func fromLSPPosition(p position) source.Position {
	return source.Position{Line: p.Line, Character: p.Character}
}

func toLSPPosition(p source.Position) position {
	return position{Line: p.Line, Character: p.Character}
}

func toLSPRange(r source.Range) lspRange {
	return lspRange{Start: toLSPPosition(r.Start), End: toLSPPosition(r.End)}
}

func fromLSPRange(r lspRange) source.Range {
	return source.Range{Start: fromLSPPosition(r.Start), End: fromLSPPosition(r.End)}
}
