package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs, reports := newReport(t)

	var buf bytes.Buffer
	if err := JSON(&buf, fs, reports, JSONOpts{PathMode: PathModeBasename, IncludeFixes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || output.Files != 1 {
		t.Fatalf("count=%d files=%d", output.Count, output.Files)
	}

	d := output.Diagnostics[0]
	if d.Severity != "warning" || d.Code != "TPL002" || d.Rule != "attribute-naming" {
		t.Fatalf("unexpected header fields: %+v", d)
	}
	if d.Source != "sfclint" {
		t.Fatalf("source = %q", d.Source)
	}
	want := LocationJSON{File: "App.vue", StartLine: 1, StartCol: 7, EndLine: 1, EndCol: 14}
	if d.Location != want {
		t.Fatalf("location = %+v, want %+v", d.Location, want)
	}
	if d.Fix == nil {
		t.Fatal("expected fix")
	}
	if d.Fix.ID != "TPL002-0-2-8" {
		t.Fatalf("fix id = %q", d.Fix.ID)
	}
	if d.Fix.NewText != "on-click" || d.Fix.OldText != "onClick" || d.Fix.Applicability != "always-safe" {
		t.Fatalf("fix = %+v", d.Fix)
	}
}

func TestJSONWithoutFixes(t *testing.T) {
	fs, reports := newReport(t)
	out := BuildDiagnosticsOutput(fs, reports, JSONOpts{})
	if out.Diagnostics[0].Fix != nil {
		t.Fatalf("fix should be omitted: %+v", out.Diagnostics[0].Fix)
	}
}

// TestJSONMax проверяет обрезку вывода через несколько файлов
func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("a.vue", []byte("<template></template>\n"))
	b := fs.AddVirtual("b.vue", []byte("<template></template>\n"))
	mk := func(msg string) diag.Diagnostic {
		return diag.NewWarning(diag.ScrMagicNumber, source.Range{}, msg)
	}
	reports := []FileReport{
		{File: a, Diagnostics: []diag.Diagnostic{mk("a1"), mk("a2")}},
		{File: b, Diagnostics: []diag.Diagnostic{mk("b1")}},
	}

	out := BuildDiagnosticsOutput(fs, reports, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	if out.Diagnostics[1].Message != "a2" {
		t.Fatalf("order broken: %+v", out.Diagnostics)
	}

	out = BuildDiagnosticsOutput(fs, reports, JSONOpts{})
	if out.Count != 3 || out.Diagnostics[2].Location.File != "b.vue" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestJSONUnsafeApplicability(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.vue", []byte("<script>\nlet enabled = true;\n</script>\n"))
	d := diag.NewWarning(diag.ScrBooleanNaming, source.Range{
		Start: source.Position{Line: 1, Character: 4},
		End:   source.Position{Line: 1, Character: 11},
	}, "boolean").WithFix("rename to isEnabled", "isEnabled")
	out := BuildDiagnosticsOutput(fs, []FileReport{{File: id, Diagnostics: []diag.Diagnostic{d}}}, JSONOpts{IncludeFixes: true})
	if got := out.Diagnostics[0].Fix.Applicability; got != "unsafe" {
		t.Fatalf("applicability = %q", got)
	}
	if got := out.Diagnostics[0].Fix.OldText; got != "enabled" {
		t.Fatalf("old text = %q", got)
	}
}
