package lint

import (
	"context"

	"sfclint/internal/diag"
	"sfclint/internal/sfc"
)

// StyleAnalyzer checks the style region. Implementations report composite
// ranges and must tolerate a nil region.
type StyleAnalyzer interface {
	Analyze(ctx context.Context, region *sfc.Region, rep diag.Reporter)
}

// NopStyleAnalyzer reports nothing.
type NopStyleAnalyzer struct{}

func (NopStyleAnalyzer) Analyze(context.Context, *sfc.Region, diag.Reporter) {}
