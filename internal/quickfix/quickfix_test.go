package quickfix

import (
	"testing"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

func rng(line, from, to int) source.Range {
	return source.Range{
		Start: source.Position{Line: line, Character: from},
		End:   source.Position{Line: line, Character: to},
	}
}

func TestActionFor(t *testing.T) {
	withFix := diag.NewWarning(diag.TplAttributeNaming, rng(1, 7, 14), "attribute \"onClick\" should be lower-case with dashes").
		WithFix("rename to kebab", "on-click")
	untitled := diag.NewWarning(diag.ScrBooleanNaming, rng(2, 2, 9), "boolean").WithFix("", "isEnabled")
	untitled.Fix.Title = ""
	legacy := diag.NewWarning(diag.UnknownCode, rng(3, 0, 6), "prefer : over v-bind")
	plain := diag.NewWarning(diag.ScrMagicNumber, rng(4, 0, 6), "magic number")
	info := diag.New(diag.SevInfo, diag.TplAttributeNaming, rng(1, 7, 14), "info").WithFix("x", "y")

	tests := []struct {
		name    string
		in      diag.Diagnostic
		ok      bool
		title   string
		newText string
	}{
		{"fix data", withFix, true, "rename to kebab", "on-click"},
		{"empty title falls back to rule title", untitled, true, diag.ScrBooleanNaming.Title(), "isEnabled"},
		{"legacy v-bind", legacy, true, LegacyBindTitle, ""},
		{"nothing to offer", plain, false, "", ""},
		{"not a warning", info, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := ActionFor("file:///a.vue", tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if a.Title != tt.title || a.Edit.NewText != tt.newText {
				t.Fatalf("got %q/%q, want %q/%q", a.Title, a.Edit.NewText, tt.title, tt.newText)
			}
			if a.Edit.Range != tt.in.Range {
				t.Fatalf("edit range %v, want the diagnostic range %v", a.Edit.Range, tt.in.Range)
			}
		})
	}
}

func TestGroupByURI(t *testing.T) {
	d1 := diag.NewWarning(diag.TplAttributeNaming, rng(1, 7, 14), "a").WithFix("t", "on-click")
	d2 := diag.NewWarning(diag.ScrBooleanNaming, rng(5, 2, 9), "b").WithFix("t", "isEnabled")

	actions := append(Actions("file:///b.vue", []diag.Diagnostic{d1}), Actions("file:///a.vue", []diag.Diagnostic{d1, d2})...)
	groups := Group(actions)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %+v", groups)
	}
	if groups[0].URI != "file:///b.vue" || len(groups[0].Edits) != 1 {
		t.Fatalf("unexpected first group %+v", groups[0])
	}
	if groups[1].URI != "file:///a.vue" || len(groups[1].Edits) != 2 || groups[1].Edits[1].NewText != "isEnabled" {
		t.Fatalf("unexpected second group %+v", groups[1])
	}
}

func TestGroupEmpty(t *testing.T) {
	if got := Group(Actions("file:///a.vue", nil)); len(got) != 0 {
		t.Fatalf("expected no edits, got %+v", got)
	}
}
