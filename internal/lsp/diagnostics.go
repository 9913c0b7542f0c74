package lsp

import (
	"sort"

	"sfclint/internal/diag"
	"sfclint/internal/trace"
)

// analyzeAndPublish runs one pass over the current text of uri and
// publishes the result. A pass that cannot split the component publishes
// an empty list.
func (s *Server) analyzeAndPublish(uri string) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return
	}
	text, version := doc.text, doc.version
	s.mu.Unlock()

	analyzer := s.analyzerFor(uriToPath(uri))
	span := trace.Begin(s.opts.Tracer, trace.ScopeDocument, "lsp:analyze", 0).WithExtra("uri", uri)
	diags, err := analyzer.Analyze(s.baseCtx, text)
	span.End("")
	if err != nil {
		s.logf("analyze %s: %v", uri, err)
		diags = nil
	}

	s.mu.Lock()
	current, ok := s.docs[uri]
	if !ok || current.version != version || current.text != text {
		// документ успел измениться или закрыться
		s.mu.Unlock()
		return
	}
	current.diags = diags
	s.published[uri] = struct{}{}
	traceOn := s.traceLSP
	s.mu.Unlock()

	list := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		list = append(list, toLSPDiagnostic(d))
	}
	v := version
	if err := s.sendPublish(uri, &v, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
	if traceOn {
		s.logf("publishDiagnostics: uri=%s version=%d count=%d", uri, version, len(list))
	}
}

// reanalyzeOpen re-runs every open document, in URI order.
func (s *Server) reanalyzeOpen() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	sort.Strings(uris)
	for _, uri := range uris {
		s.analyzeAndPublish(uri)
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	if len(s.published) == 0 {
		s.mu.Unlock()
		return
	}
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()

	uris := make([]string, 0, len(prev))
	for uri := range prev {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

func toLSPDiagnostic(d diag.Diagnostic) lspDiagnostic {
	out := lspDiagnostic{
		Range:    toLSPRange(d.Range),
		Severity: d.Severity.LSP(),
		Source:   d.Source,
		Message:  d.Message,
	}
	if d.Code != diag.UnknownCode {
		out.Code = d.Code.ID()
	}
	if d.Fix != nil {
		fix := *d.Fix
		out.Data = &fix
	}
	return out
}

// fromLSPDiagnostic rebuilds a diagnostic echoed back by the client.
func fromLSPDiagnostic(d lspDiagnostic) diag.Diagnostic {
	code, _ := diag.ParseCode(d.Code)
	out := diag.Diagnostic{
		Severity: diag.SeverityFromLSP(d.Severity),
		Code:     code,
		Message:  d.Message,
		Source:   d.Source,
		Range:    fromLSPRange(d.Range),
	}
	if d.Data != nil {
		fix := *d.Data
		out.Fix = &fix
	}
	return out
}
