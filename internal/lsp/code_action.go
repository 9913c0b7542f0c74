package lsp

import (
	"encoding/json"
	"strings"

	"sfclint/internal/diag"
	"sfclint/internal/quickfix"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := canonicalURI(params.TextDocument.URI)
	if !wantsQuickFix(params.Context.Only) {
		return s.sendResponse(msg.ID, []codeAction{})
	}

	known := s.lastDiagnostics(uri)
	selected := make([]diag.Diagnostic, 0, len(params.Context.Diagnostics))
	for _, echoed := range params.Context.Diagnostics {
		d := fromLSPDiagnostic(echoed)
		if d.Fix == nil {
			// клиент мог отбросить data: ищем среди опубликованных
			if prev, ok := findPublished(known, d); ok {
				d.Fix = prev.Fix
			}
		}
		selected = append(selected, d)
	}

	fixes := quickfix.Actions(params.TextDocument.URI, selected)
	actions := make([]codeAction, 0, len(fixes))
	for _, a := range fixes {
		actions = append(actions, codeAction{
			Title:       a.Title,
			Kind:        codeActionKindQuickFix,
			Diagnostics: []lspDiagnostic{toLSPDiagnostic(a.Diagnostic)},
			IsPreferred: a.Diagnostic.Fix != nil,
			Edit:        toWorkspaceEdit(quickfix.Group([]quickfix.Action{a})),
		})
	}
	return s.sendResponse(msg.ID, actions)
}

func toWorkspaceEdit(docs []quickfix.DocumentEdits) *workspaceEdit {
	changes := make(map[string][]textEdit, len(docs))
	for _, doc := range docs {
		edits := make([]textEdit, 0, len(doc.Edits))
		for _, e := range doc.Edits {
			edits = append(edits, textEdit{Range: toLSPRange(e.Range), NewText: e.NewText})
		}
		changes[doc.URI] = append(changes[doc.URI], edits...)
	}
	return &workspaceEdit{Changes: changes}
}

func wantsQuickFix(only []string) bool {
	if len(only) == 0 {
		return true
	}
	for _, kind := range only {
		if kind == codeActionKindQuickFix || strings.HasPrefix(kind, codeActionKindQuickFix+".") {
			return true
		}
	}
	return false
}

func findPublished(known []diag.Diagnostic, d diag.Diagnostic) (diag.Diagnostic, bool) {
	for _, k := range known {
		if k.Range == d.Range && k.Code == d.Code && k.Message == d.Message {
			return k, true
		}
	}
	return diag.Diagnostic{}, false
}
