package lsp

import "sfclint/internal/diag"

// document is an open editor buffer and the result of its last pass.
type document struct {
	text    string
	version int
	// diags are the diagnostics last published for this version.
	diags []diag.Diagnostic
}

func (s *Server) currentTrace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traceLSP
}

func (s *Server) lastDiagnostics(uri string) []diag.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok {
		return doc.diags
	}
	return nil
}
