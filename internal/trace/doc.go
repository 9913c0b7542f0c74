// Package trace provides a tracing subsystem for sfclint.
//
// It records command, document, region and rule events so slow files, parse
// failures and recovered rule panics can be inspected after the fact.
//
// # Usage
//
//	sfclint diag --trace=- --trace-level=detail src/
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer kept in memory (dumped by the LSP server on exit)
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only KindError events (region parse failures, rule panics)
//   - LevelPhase: commands and documents
//   - LevelDetail: regions
//   - LevelDebug: everything including single rules
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeDocument, "analyze", parentID)
//	defer span.End("")
package trace
