package lint

import (
	"context"
	"testing"

	"sfclint/internal/config"
	"sfclint/internal/diag"
	"sfclint/internal/script"
	"sfclint/internal/sfc"
	"sfclint/internal/source"
	"sfclint/internal/template"
	"sfclint/internal/trace"
)

func lintScriptText(t *testing.T, ctx context.Context, text string, cfg config.Config) []diag.Diagnostic {
	t.Helper()
	doc, err := sfc.Split(ctx, text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if doc.Script == nil {
		t.Fatal("no script region")
	}
	prog, err := script.Parse(ctx, doc.Script.Content, doc.Script.Lang)
	if err != nil {
		t.Fatalf("script.Parse: %v", err)
	}
	bag := diag.NewBag(0)
	NewScriptAnalyzer(cfg).Analyze(ctx, prog, doc.Script.StartLine, source.NewDocument(text), diag.BagReporter{Bag: bag})
	return bag.Items()
}

// lintScript wraps body in a TypeScript block starting on line 0.
func lintScript(t *testing.T, body string, cfg config.Config) (string, []diag.Diagnostic) {
	t.Helper()
	text := "<script lang=\"ts\">\n" + body + "</script>\n"
	return text, lintScriptText(t, context.Background(), text, cfg)
}

func lintTemplate(t *testing.T, markup string, cfg config.Config) (string, []diag.Diagnostic) {
	t.Helper()
	text := "<template>\n" + markup + "</template>\n"
	ctx := context.Background()
	doc, err := sfc.Split(ctx, text)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	root, err := template.Parse(ctx, doc.Template)
	if err != nil {
		t.Fatalf("template.Parse: %v", err)
	}
	bag := diag.NewBag(0)
	NewTemplateAnalyzer(cfg).Analyze(ctx, root, doc.Template.StartLine, source.NewDocument(text), diag.BagReporter{Bag: bag})
	return text, bag.Items()
}

func withCode(diags []diag.Diagnostic, code diag.Code) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// applyFix replaces the diagnostic range with the fix text.
func applyFix(t *testing.T, text string, d diag.Diagnostic) string {
	t.Helper()
	if d.Fix == nil {
		t.Fatalf("diagnostic %s has no fix", d.Code.ID())
	}
	doc := source.NewDocument(text)
	start, end := doc.OffsetAt(d.Range.Start), doc.OffsetAt(d.Range.End)
	return text[:start] + d.Fix.NewText + text[end:]
}

func pos(line, char int) source.Position {
	return source.Position{Line: line, Character: char}
}

func withRing(ctx context.Context) (context.Context, *trace.RingTracer) {
	ring := trace.NewRingTracer(16, trace.LevelError)
	return trace.WithTracer(ctx, ring), ring
}
