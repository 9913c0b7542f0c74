package diag

import (
	"testing"

	"sfclint/internal/source"
)

func rng(line, start, end int) source.Range {
	return source.Range{Start: source.Position{Line: line, Character: start}, End: source.Position{Line: line, Character: end}}
}

func TestCodeIDsAndParse(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{ScrArgumentCount, "SCR001"},
		{ScrSafeAccess, "SCR006"},
		{TplAttributeOrder, "TPL001"},
		{TplAttributeNaming, "TPL002"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Fatalf("%v.ID() = %q, want %q", tt.code, got, tt.id)
		}
		parsed, ok := ParseCode(tt.id)
		if !ok || parsed != tt.code {
			t.Fatalf("ParseCode(%q) = %v, %v", tt.id, parsed, ok)
		}
		byName, ok := ParseCode(tt.code.Name())
		if !ok || byName != tt.code {
			t.Fatalf("ParseCode(%q) = %v, %v", tt.code.Name(), byName, ok)
		}
	}
	if _, ok := ParseCode("nope"); ok {
		t.Fatal("expected unknown rule to fail")
	}
	if !ScrBooleanNaming.Fixable() || ScrMagicNumber.Fixable() {
		t.Fatal("unexpected fixability")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rep := BagReporter{Bag: bag, Source: "sfclint"}

	b := ReportWarning(rep, ScrBooleanNaming, rng(3, 2, 9), "bad name").WithFix("", "isEnabled")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Source != "sfclint" || d.Severity != SevWarning {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Fix == nil || d.Fix.NewText != "isEnabled" || d.Fix.Title != ScrBooleanNaming.Title() {
		t.Fatalf("unexpected fix %+v", d.Fix)
	}
}

func TestBagLimitAndMerge(t *testing.T) {
	a := NewBag(1)
	if !a.Add(NewWarning(ScrMagicNumber, rng(0, 0, 1), "one")) {
		t.Fatal("first add must succeed")
	}
	if a.Add(NewWarning(ScrMagicNumber, rng(1, 0, 1), "two")) {
		t.Fatal("second add must hit the limit")
	}
	b := NewBag(0)
	b.Add(NewWarning(TplAttributeNaming, rng(2, 0, 1), "three"))
	a.Merge(b)
	if a.Len() != 2 || a.Items()[1].Message != "three" {
		t.Fatalf("unexpected merge result %+v", a.Items())
	}
	if !a.HasWarnings() || a.HasErrors() {
		t.Fatal("expected warnings only")
	}
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		NewWarning(TplAttributeNaming, rng(4, 10, 17), "first line\nsecond"),
		NewWarning(ScrMagicNumber, rng(12, 6, 14), "another"),
	}
	expected := "warning TPL002 src/App.vue:5:11 first line second\n" +
		"warning SCR005 src/App.vue:13:7 another"
	if got := FormatShort("./src/App.vue", diags); got != expected {
		t.Fatalf("unexpected short output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestSeverityLSPRoundTrip(t *testing.T) {
	for _, sev := range []Severity{SevInfo, SevWarning, SevError} {
		if got := SeverityFromLSP(sev.LSP()); got != sev {
			t.Fatalf("SeverityFromLSP(%d) = %v, want %v", sev.LSP(), got, sev)
		}
	}
}
