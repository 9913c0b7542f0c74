package lint

import (
	"context"
	"strings"
	"testing"

	"sfclint/internal/config"
	"sfclint/internal/diag"
	"sfclint/internal/script"
	"sfclint/internal/source"
)

func TestArgumentCount(t *testing.T) {
	_, diags := lintScript(t, "class A {\n  save(a, b, c) {}\n  load(a, b) {}\n}\n", config.Default())
	got := withCode(diags, diag.ScrArgumentCount)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %+v", len(got), diags)
	}
	want := source.Range{Start: pos(2, 7), End: pos(2, 14)}
	if got[0].Range != want {
		t.Fatalf("range = %v, want %v", got[0].Range, want)
	}
	if got[0].Severity != diag.SevWarning || got[0].Fix != nil {
		t.Fatalf("unexpected diagnostic %+v", got[0])
	}
}

func TestFunctionLength(t *testing.T) {
	build := func(bodyLines int) string {
		var b strings.Builder
		b.WriteString("class A {\n  run() {\n")
		for i := 0; i < bodyLines; i++ {
			b.WriteString("    step();\n")
		}
		b.WriteString("  }\n}\n")
		return b.String()
	}
	// end line - start line equals bodyLines + 1
	_, diags := lintScript(t, build(79), config.Default())
	if n := len(withCode(diags, diag.ScrFunctionLength)); n != 0 {
		t.Fatalf("80-line span must not trigger, got %d", n)
	}
	_, diags = lintScript(t, build(80), config.Default())
	got := withCode(diags, diag.ScrFunctionLength)
	if len(got) != 1 {
		t.Fatalf("81-line span must trigger, got %d", len(got))
	}
	if got[0].Range.Start != pos(2, 2) {
		t.Fatalf("expected declaration range, got %v", got[0].Range)
	}
}

func TestBooleanNaming(t *testing.T) {
	tests := []struct {
		name string
		body string
		fix  string
	}{
		{"allowed field", "class A {\n  visible = true;\n}\n", ""},
		{"allowed anywhere in name", "class A {\n  pageLoading = false;\n}\n", ""},
		{"field", "class A {\n  enabled = true;\n}\n", "isEnabled"},
		{"single letter", "class A {\n  x = true;\n}\n", "isX"},
		{"variable", "const done = false;\n", "isDone"},
		{"property", "const o = { open: true };\n", "isOpen"},
		{"not a literal", "class A {\n  enabled = flag;\n}\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := lintScript(t, tt.body, config.Default())
			got := withCode(diags, diag.ScrBooleanNaming)
			if tt.fix == "" {
				if len(got) != 0 {
					t.Fatalf("expected no diagnostic, got %+v", got)
				}
				return
			}
			if len(got) != 1 || got[0].Fix == nil {
				t.Fatalf("expected one diagnostic with fix, got %+v", got)
			}
			if got[0].Fix.NewText != tt.fix {
				t.Fatalf("fix = %q, want %q", got[0].Fix.NewText, tt.fix)
			}
		})
	}
}

func TestBooleanNamingRangeAndIdempotence(t *testing.T) {
	text, diags := lintScript(t, "class A {\n  enabled = true;\n}\n", config.Default())
	got := withCode(diags, diag.ScrBooleanNaming)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(got))
	}
	if want := (source.Range{Start: pos(2, 2), End: pos(2, 9)}); got[0].Range != want {
		t.Fatalf("range = %v, want %v", got[0].Range, want)
	}

	fixed := applyFix(t, text, got[0])
	if !strings.Contains(fixed, "isEnabled = true;") {
		t.Fatalf("fix not applied: %q", fixed)
	}
	again := withCode(lintScriptText(t, context.Background(), fixed, config.Default()), diag.ScrBooleanNaming)
	if len(again) != 0 {
		t.Fatalf("fix re-triggered: %+v", again)
	}
}

func TestBooleanNameEmpty(t *testing.T) {
	if _, ok := booleanName(""); ok {
		t.Fatal("empty name must not get a fix")
	}
	if got, _ := booleanName("ok"); got != "isOk" {
		t.Fatalf("booleanName(ok) = %q", got)
	}
}

func nestedMethod(levels int) string {
	var b strings.Builder
	b.WriteString("class A {\n  run(a) {\n")
	for i := 0; i < levels; i++ {
		b.WriteString(strings.Repeat("  ", i+2) + "if (a) {\n")
	}
	for i := levels - 1; i >= 0; i-- {
		b.WriteString(strings.Repeat("  ", i+2) + "}\n")
	}
	b.WriteString("  }\n}\n")
	return b.String()
}

func TestNestingDepth(t *testing.T) {
	_, diags := lintScript(t, nestedMethod(4), config.Default())
	if n := len(withCode(diags, diag.ScrNestingDepth)); n != 0 {
		t.Fatalf("4 levels must not trigger, got %d", n)
	}
	_, diags = lintScript(t, nestedMethod(5), config.Default())
	got := withCode(diags, diag.ScrNestingDepth)
	if len(got) != 1 {
		t.Fatalf("5 levels must trigger once, got %d", len(got))
	}
	if got[0].Range.Start != pos(2, 2) {
		t.Fatalf("expected declaration range, got %v", got[0].Range)
	}
}

func TestNestingCountsCallbacks(t *testing.T) {
	body := "class A {\n  run(xs) {\n    xs.forEach(x => {\n      if (x) {\n        while (x) {\n          for (;;) {\n            try {\n            } catch (e) {}\n          }\n        }\n      }\n    })\n  }\n}\n"
	_, diags := lintScript(t, body, config.Default())
	if n := len(withCode(diags, diag.ScrNestingDepth)); n != 1 {
		t.Fatalf("expected callback nesting to count, got %d", n)
	}
}

func TestMagicNumber(t *testing.T) {
	tests := []struct {
		expr string
		want int
	}{
		{"age > 18", 1},
		{"a + b", 0},
		{"a + (b * 2)", 2}, // outer via recursion, inner directly
		{"name + 'px'", 0},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, diags := lintScript(t, "const r = "+tt.expr+";\n", config.Default())
			if got := len(withCode(diags, diag.ScrMagicNumber)); got != tt.want {
				t.Fatalf("got %d diagnostics, want %d", got, tt.want)
			}
		})
	}
}

func TestMagicNumberOuterRange(t *testing.T) {
	_, diags := lintScript(t, "const r = a + (b * 2);\n", config.Default())
	got := withCode(diags, diag.ScrMagicNumber)
	if len(got) == 0 {
		t.Fatal("expected a diagnostic")
	}
	if want := (source.Range{Start: pos(1, 10), End: pos(1, 21)}); got[0].Range != want {
		t.Fatalf("outer range = %v, want %v", got[0].Range, want)
	}
}

func TestSafeAccess(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want int
	}{
		{"chain", "user.profile.name", 1},
		{"single access", "user.name", 0},
		{"through this", "this.user.name", 0},
		{"optional", "user.profile?.name", 0},
		{"computed", "user.profile[key]", 0},
		{"long chain", "a.b.c.d", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := lintScript(t, "const v = "+tt.expr+";\n", config.Default())
			if got := len(withCode(diags, diag.ScrSafeAccess)); got != tt.want {
				t.Fatalf("got %d diagnostics, want %d", got, tt.want)
			}
		})
	}
}

func TestScriptRangesMapToComposite(t *testing.T) {
	text := strings.Repeat("<!-- filler -->\n", 10) + "<script>\nclass A {\n  enabled = true;\n}\n</script>\n"
	diags := lintScriptText(t, context.Background(), text, config.Default())
	got := withCode(diags, diag.ScrBooleanNaming)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	// region starts at line 10; local line 3 maps to 3 - 1 + 10
	if got[0].Range.Start.Line != 12 {
		t.Fatalf("expected composite line 12, got %d", got[0].Range.Start.Line)
	}
	lineCount := source.NewDocument(text).LineCount()
	for _, d := range diags {
		if d.Range.Start.Line < 10 || d.Range.End.Line >= lineCount {
			t.Fatalf("range %v outside region or document", d.Range)
		}
	}
}

func TestDisabledScriptRule(t *testing.T) {
	cfg := config.Default()
	cfg.Disabled = []diag.Code{diag.ScrMagicNumber}
	_, diags := lintScript(t, "const r = age > 18;\n", cfg)
	if len(withCode(diags, diag.ScrMagicNumber)) != 0 {
		t.Fatal("disabled rule must not report")
	}
}

type panicRule struct{}

func (panicRule) Code() diag.Code                  { return diag.ScrSafeAccess }
func (panicRule) Check(*regionContext, script.Node) { panic("boom") }

func TestRulePanicIsRecovered(t *testing.T) {
	ctx, ring := withRing(context.Background())
	prog, err := script.Parse(ctx, "const r = age > 18;\n", "ts")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := &ScriptAnalyzer{rules: []scriptRule{panicRule{}, magicNumber{}}}
	bag := diag.NewBag(0)
	a.Analyze(ctx, prog, 0, source.NewDocument("const r = age > 18;\n"), diag.BagReporter{Bag: bag})

	if len(withCode(bag.Items(), diag.ScrMagicNumber)) != 1 {
		t.Fatalf("other rules must keep reporting, got %+v", bag.Items())
	}
	if len(ring.Snapshot()) == 0 {
		t.Fatal("expected the panic to be traced")
	}
}

func TestHasAllowedPrefix(t *testing.T) {
	allowed := []string{"is", "Visible"}
	for name, want := range map[string]bool{
		"IsReady":      true,
		"panelVISIBLE": true,
		"ÉtatVisible":  true,
		"enabled":      false,
		"":             false,
	} {
		if got := hasAllowedPrefix(name, allowed); got != want {
			t.Fatalf("hasAllowedPrefix(%q) = %v, want %v", name, got, want)
		}
	}
}
