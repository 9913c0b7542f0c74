package diag

import "sfclint/internal/source"

// Reporter — минимальный контракт получения диагностик от анализаторов.
// Реализация по умолчанию: BagReporter (кладёт в Bag).
type Reporter interface {
	Report(code Code, sev Severity, rng source.Range, msg string, fix *Fix)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, rng source.Range, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, rng, msg),
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, rng source.Range, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, rng, msg)
}

// WithFix attaches a replacement for the diagnostic range.
func (b *ReportBuilder) WithFix(title, newText string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithFix(title, newText)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Range, b.diag.Message, b.diag.Fix)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter — адаптер, который пишет в *Bag и проставляет Source.
type BagReporter struct {
	Bag    *Bag
	Source string
}

func (r BagReporter) Report(code Code, sev Severity, rng source.Range, msg string, fix *Fix) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Source: r.Source, Range: rng, Fix: fix,
	})
}
