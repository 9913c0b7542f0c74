package lint

import (
	"context"

	"sfclint/internal/config"
	"sfclint/internal/diag"
	"sfclint/internal/script"
	"sfclint/internal/source"
	"sfclint/internal/trace"
)

// scriptRule checks one node. Rules keep no state between nodes.
type scriptRule interface {
	Code() diag.Code
	Check(c *regionContext, n script.Node)
}

// ScriptAnalyzer runs the script rules over every node of a program.
type ScriptAnalyzer struct {
	rules []scriptRule
}

// NewScriptAnalyzer builds the rule set for cfg. Disabled rules are left out.
func NewScriptAnalyzer(cfg config.Config) *ScriptAnalyzer {
	all := []scriptRule{
		argumentCount{max: cfg.MaxParams},
		functionLength{max: cfg.MaxFunctionLines},
		booleanNaming{allowed: append([]string(nil), cfg.BooleanPrefixes...)},
		nestingDepth{max: cfg.MaxNestingDepth},
		magicNumber{},
		safeAccess{},
	}
	a := &ScriptAnalyzer{}
	for _, r := range all {
		if cfg.Enabled(r.Code()) {
			a.rules = append(a.rules, r)
		}
	}
	return a
}

// Analyze walks prog in pre-order and evaluates every rule at every node.
// startLine is the composite line of the region's first line; doc is the
// composite document used for textual checks.
func (a *ScriptAnalyzer) Analyze(ctx context.Context, prog *script.Program, startLine int, doc *source.Document, rep diag.Reporter) {
	if prog == nil {
		return
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeRegion, "analyze:script", 0)
	defer span.End("")

	c := newRegionContext(ctx, startLine, doc, rep)
	script.Walk(prog, func(n script.Node) bool {
		for _, rule := range a.rules {
			c.guard(rule.Code(), n.Range(), func() { rule.Check(c, n) })
		}
		return true
	})
}
