// Package driver runs the analyzers over whole components: one text at a
// time for the language server, many files in parallel for the CLI.
package driver

import (
	"context"
	"fmt"

	"sfclint/internal/config"
	"sfclint/internal/diag"
	"sfclint/internal/lint"
	"sfclint/internal/observ"
	"sfclint/internal/script"
	"sfclint/internal/sfc"
	"sfclint/internal/source"
	"sfclint/internal/template"
	"sfclint/internal/trace"
)

// Options tune an Analyzer beyond the rule configuration.
type Options struct {
	// Style checks the style region; nil means NopStyleAnalyzer.
	Style lint.StyleAnalyzer
	// MaxDiagnostics caps the diagnostics of one pass; <= 0 means no cap.
	MaxDiagnostics int
}

// Analyzer is the diagnostic aggregator. It holds only the rule set built
// from the configuration and is safe for concurrent use: every pass owns
// its parse trees.
type Analyzer struct {
	cfg      config.Config
	script   *lint.ScriptAnalyzer
	template *lint.TemplateAnalyzer
	style    lint.StyleAnalyzer
	max      int
}

// NewAnalyzer builds the rule set for cfg.
func NewAnalyzer(cfg config.Config, opts Options) *Analyzer {
	style := opts.Style
	if style == nil {
		style = lint.NopStyleAnalyzer{}
	}
	cfg = cfg.Clone()
	return &Analyzer{
		cfg:      cfg,
		script:   lint.NewScriptAnalyzer(cfg),
		template: lint.NewTemplateAnalyzer(cfg),
		style:    style,
		max:      opts.MaxDiagnostics,
	}
}

// Config returns a copy of the configuration the analyzer was built with.
func (a *Analyzer) Config() config.Config {
	return a.cfg.Clone()
}

// Analyze returns template diagnostics, then script diagnostics, then style
// diagnostics, each group in emission order. A region whose parse fails is
// traced and skipped. An error is returned only when the component itself
// cannot be split.
func (a *Analyzer) Analyze(ctx context.Context, text string) ([]diag.Diagnostic, error) {
	return a.AnalyzeTimed(ctx, text, nil)
}

// AnalyzeTimed is Analyze with per-phase timings recorded into timer.
func (a *Analyzer) AnalyzeTimed(ctx context.Context, text string, timer *observ.Timer) ([]diag.Diagnostic, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDocument, "analyze", 0)
	defer span.End("")

	idx := timer.Begin("split")
	parts, err := sfc.Split(ctx, text)
	timer.End(idx, "")
	if err != nil {
		trace.Error(tracer, trace.ScopeDocument, "split", err, nil)
		return nil, fmt.Errorf("analyze: %w", err)
	}
	doc := source.NewDocument(text)

	idx = timer.Begin("template")
	templateBag := a.analyzeTemplate(ctx, parts.Template, doc)
	timer.End(idx, noteFor(templateBag))

	idx = timer.Begin("script")
	scriptBag := a.analyzeScript(ctx, parts.Script, doc)
	timer.End(idx, noteFor(scriptBag))

	idx = timer.Begin("style")
	styleBag := diag.NewBag(0)
	a.style.Analyze(ctx, parts.Style, a.reporter(styleBag))
	timer.End(idx, noteFor(styleBag))

	out := diag.NewBag(a.max)
	for _, bag := range []*diag.Bag{templateBag, scriptBag, styleBag} {
		for _, d := range bag.Items() {
			if !out.Add(d) {
				break
			}
		}
	}
	span.WithExtra("diagnostics", fmt.Sprint(out.Len()))
	return out.Items(), nil
}

func (a *Analyzer) analyzeTemplate(ctx context.Context, region *sfc.Region, doc *source.Document) *diag.Bag {
	bag := diag.NewBag(0)
	if region == nil {
		return bag
	}
	root, err := template.Parse(ctx, region)
	if err != nil {
		regionFailed(ctx, region, err)
		return bag
	}
	a.template.Analyze(ctx, root, region.StartLine, doc, a.reporter(bag))
	return bag
}

func (a *Analyzer) analyzeScript(ctx context.Context, region *sfc.Region, doc *source.Document) *diag.Bag {
	bag := diag.NewBag(0)
	if region == nil {
		return bag
	}
	prog, err := script.Parse(ctx, region.Content, region.Lang)
	if err != nil {
		regionFailed(ctx, region, err)
		return bag
	}
	a.script.Analyze(ctx, prog, region.StartLine, doc, a.reporter(bag))
	return bag
}

func (a *Analyzer) reporter(bag *diag.Bag) diag.Reporter {
	return diag.BagReporter{Bag: bag, Source: a.cfg.Source}
}

// regionFailed records a skipped region; the other regions still run.
func regionFailed(ctx context.Context, region *sfc.Region, err error) {
	trace.Error(trace.FromContext(ctx), trace.ScopeRegion, "parse:"+region.Kind.String(), err, map[string]string{
		"lang":  region.Lang,
		"start": region.Range.Start.String(),
	})
}

func noteFor(bag *diag.Bag) string {
	return fmt.Sprintf("diags=%d", bag.Len())
}
