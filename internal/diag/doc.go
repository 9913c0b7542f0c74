// Package diag defines the diagnostic model shared by the analyzers, the CLI
// and the language server.
//
// A Diagnostic carries a severity, a stable rule Code, a message, a source
// tag and a Range in composite-document coordinates. Rules that can repair
// the problem attach a Fix: a title plus the text that replaces the whole
// range. Fixes are data only; internal/fix and internal/quickfix turn them
// into edits.
//
// Analyzers never build Diagnostic values by hand. They emit through a
// Reporter, usually via ReportWarning(...).WithFix(...).Emit(). BagReporter
// stamps the source tag and collects into a Bag.
//
// Package diag does not format or do IO. Rendering lives in internal/diagfmt;
// FormatShort is kept here because tests and the short CLI format share it.
package diag
