package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"sfclint/internal/diag"
)

func TestSarif(t *testing.T) {
	fs, reports := newReport(t)
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolVersion: "0.1.0", InvocationArgs: []string{"diag", "src"}}
	if err := Sarif(&buf, fs, reports, meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "sfclint" || run.Tool.Driver.Version != "0.1.0" {
		t.Fatalf("driver = %+v", run.Tool.Driver)
	}
	if len(run.Tool.Driver.Rules) != len(diag.AllCodes()) {
		t.Fatalf("rules = %d, want %d", len(run.Tool.Driver.Rules), len(diag.AllCodes()))
	}
	if len(run.Invocations) != 1 || run.Invocations[0].Arguments[1] != "src" {
		t.Fatalf("invocations = %+v", run.Invocations)
	}
	if len(run.Results) != 1 {
		t.Fatalf("results = %d", len(run.Results))
	}

	res := run.Results[0]
	if res.RuleID != "TPL002" || res.Level != "warning" {
		t.Fatalf("result = %+v", res)
	}
	if run.Tool.Driver.Rules[res.RuleIndex].ID != "TPL002" {
		t.Fatalf("ruleIndex %d points at %s", res.RuleIndex, run.Tool.Driver.Rules[res.RuleIndex].ID)
	}
	loc := res.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "src/App.vue" {
		t.Fatalf("uri = %q", loc.ArtifactLocation.URI)
	}
	want := sarifRegion{StartLine: 2, StartColumn: 8, EndLine: 2, EndColumn: 15}
	if loc.Region != want {
		t.Fatalf("region = %+v, want %+v", loc.Region, want)
	}
	if len(res.Fixes) != 1 || res.Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text != "on-click" {
		t.Fatalf("fixes = %+v", res.Fixes)
	}
}
