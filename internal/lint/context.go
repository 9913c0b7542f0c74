// Package lint holds the rule catalogue: six script rules, two template
// rules and the style analyzer hook.
package lint

import (
	"context"
	"fmt"

	"sfclint/internal/diag"
	"sfclint/internal/source"
	"sfclint/internal/trace"
)

// regionContext is what a rule sees besides the node it checks.
type regionContext struct {
	startLine int
	doc       *source.Document
	rep       diag.Reporter
	tracer    trace.Tracer
}

func newRegionContext(ctx context.Context, startLine int, doc *source.Document, rep diag.Reporter) *regionContext {
	return &regionContext{
		startLine: startLine,
		doc:       doc,
		rep:       rep,
		tracer:    trace.FromContext(ctx),
	}
}

// compositeRange maps a region-local range into the composite document.
func (c *regionContext) compositeRange(r source.LocalRange) source.Range {
	return source.ToCompositeRange(r, c.startLine)
}

// warn is the only way rules emit; it maps the range exactly once.
func (c *regionContext) warn(code diag.Code, r source.LocalRange, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(c.rep, code, c.compositeRange(r), msg)
}

// text returns the composite-document text under a local range.
func (c *regionContext) text(r source.LocalRange) string {
	if c.doc == nil {
		return ""
	}
	return c.doc.Slice(c.compositeRange(r))
}

// guard runs one rule on one node. A panic is traced and swallowed so the
// traversal and the other rules continue.
func (c *regionContext) guard(code diag.Code, at source.LocalRange, check func()) {
	defer func() {
		if r := recover(); r != nil {
			pos := c.compositeRange(at).Start
			trace.Error(c.tracer, trace.ScopeRule, "rule:"+code.ID(), fmt.Errorf("panic: %v", r), map[string]string{
				"at": pos.String(),
			})
		}
	}()
	check()
}
