package lint

import (
	"context"

	"sfclint/internal/config"
	"sfclint/internal/diag"
	"sfclint/internal/source"
	"sfclint/internal/template"
	"sfclint/internal/trace"
)

type templateRule interface {
	Code() diag.Code
	Check(c *regionContext, n *template.Node)
}

// TemplateAnalyzer runs the template rules over every element that has
// attributes.
type TemplateAnalyzer struct {
	rules []templateRule
}

// NewTemplateAnalyzer builds the rule set for cfg. Disabled rules are left out.
func NewTemplateAnalyzer(cfg config.Config) *TemplateAnalyzer {
	all := []templateRule{
		attributeOrder{table: newOrderTable(cfg.AttributeOrder)},
		attributeNaming{},
	}
	a := &TemplateAnalyzer{}
	for _, r := range all {
		if cfg.Enabled(r.Code()) {
			a.rules = append(a.rules, r)
		}
	}
	return a
}

// Analyze walks the children of the <template> root in pre-order.
func (a *TemplateAnalyzer) Analyze(ctx context.Context, root *template.Node, startLine int, doc *source.Document, rep diag.Reporter) {
	if root == nil {
		return
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeRegion, "analyze:template", 0)
	defer span.End("")

	c := newRegionContext(ctx, startLine, doc, rep)
	template.Walk(root.Children, func(n *template.Node) {
		if len(n.Attrs) == 0 {
			return
		}
		for _, rule := range a.rules {
			c.guard(rule.Code(), n.Range, func() { rule.Check(c, n) })
		}
	})
}
