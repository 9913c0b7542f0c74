package diag

import "sfclint/internal/source"

func New(sev Severity, code Code, rng source.Range, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Range:    rng,
		Message:  msg,
	}
}

func NewWarning(code Code, rng source.Range, msg string) Diagnostic {
	return New(SevWarning, code, rng, msg)
}

// WithFix attaches a fix; an empty title falls back to the rule title.
func (d Diagnostic) WithFix(title, newText string) Diagnostic {
	if title == "" {
		title = d.Code.Title()
	}
	d.Fix = &Fix{Title: title, NewText: newText}
	return d
}
