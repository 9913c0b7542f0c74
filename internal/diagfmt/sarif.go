package diagfmt

import (
	"encoding/json"
	"io"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// sarifRegion 1-based; колонки в UTF-16 code units (columnKind по умолчанию).
type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func toSarifRegion(r source.Range) sarifRegion {
	return sarifRegion{
		StartLine:   r.Start.Line + 1,
		StartColumn: r.Start.Character + 1,
		EndLine:     r.End.Line + 1,
		EndColumn:   r.End.Character + 1,
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Правила перечисляются все, ruleIndex ссылается на них.
func Sarif(w io.Writer, fs *source.FileSet, reports []FileReport, meta SarifRunMeta) error {
	codes := diag.AllCodes()
	rules := make([]sarifRule, 0, len(codes))
	index := make(map[diag.Code]int, len(codes))
	for i, c := range codes {
		index[c] = i
		rules = append(rules, sarifRule{
			ID:               c.ID(),
			Name:             c.Name(),
			ShortDescription: sarifMessage{Text: c.Title()},
		})
	}

	results := make([]sarifResult, 0, countDiagnostics(reports))
	for _, r := range reports {
		f := fs.Get(r.File)
		if f == nil {
			continue
		}
		artifact := sarifArtifact{URI: formatPath(fs, f, PathModeRelative)}
		for _, d := range r.Diagnostics {
			ruleIndex, ok := index[d.Code]
			if !ok {
				ruleIndex = -1
			}
			res := sarifResult{
				RuleID:    d.Code.ID(),
				RuleIndex: ruleIndex,
				Level:     sarifLevel(d.Severity),
				Message:   sarifMessage{Text: d.Message},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysical{
						ArtifactLocation: artifact,
						Region:           toSarifRegion(d.Range),
					},
				}},
			}
			if d.Fix != nil {
				title := d.Fix.Title
				if title == "" {
					title = d.Code.Title()
				}
				res.Fixes = []sarifFix{{
					Description: sarifMessage{Text: title},
					ArtifactChanges: []sarifArtifactChange{{
						ArtifactLocation: artifact,
						Replacements: []sarifReplacement{{
							DeletedRegion:   toSarifRegion(d.Range),
							InsertedContent: sarifMessage{Text: d.Fix.NewText},
						}},
					}},
				}}
			}
			results = append(results, res)
		}
	}

	name := meta.ToolName
	if name == "" {
		name = "sfclint"
	}
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           name,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: true,
		}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs:    []sarifRun{run},
	})
}
