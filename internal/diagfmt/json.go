package diagfmt

import (
	"encoding/json"
	"io"

	"sfclint/internal/fix"
	"sfclint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON.
// Строки и колонки 0-based, колонки в UTF-16 code units, как в LSP.
type LocationJSON struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	NewText       string `json:"new_text"`
	OldText       string `json:"old_text,omitempty"`
	Applicability string `json:"applicability"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Rule     string       `json:"rule"`
	Message  string       `json:"message"`
	Source   string       `json:"source,omitempty"`
	Location LocationJSON `json:"location"`
	Fix      *FixJSON     `json:"fix,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Files       int              `json:"files"`
}

func makeLocation(path string, r source.Range) LocationJSON {
	return LocationJSON{
		File:      path,
		StartLine: r.Start.Line,
		StartCol:  r.Start.Character,
		EndLine:   r.End.Line,
		EndCol:    r.End.Character,
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(fs *source.FileSet, reports []FileReport, opts JSONOpts) DiagnosticsOutput {
	total := countDiagnostics(reports)
	if opts.Max > 0 && opts.Max < total {
		total = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, total)

outer:
	for _, r := range reports {
		f := fs.Get(r.File)
		if f == nil {
			continue
		}
		path := formatPath(fs, f, opts.PathMode)
		for _, d := range r.Diagnostics {
			if len(diagnostics) >= total {
				break outer
			}
			dj := DiagnosticJSON{
				Severity: d.Severity.Label(),
				Code:     d.Code.ID(),
				Rule:     d.Code.Name(),
				Message:  d.Message,
				Source:   d.Source,
				Location: makeLocation(path, d.Range),
			}
			if opts.IncludeFixes && d.Fix != nil {
				dj.Fix = &FixJSON{
					ID:            fix.FixID(r.File, d),
					Title:         d.Fix.Title,
					NewText:       d.Fix.NewText,
					OldText:       f.Document().Slice(d.Range),
					Applicability: fix.ApplicabilityOf(d.Code).String(),
				}
			}
			diagnostics = append(diagnostics, dj)
		}
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Files:       len(reports),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, fs *source.FileSet, reports []FileReport, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(fs, reports, opts)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
