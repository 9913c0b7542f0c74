// Package quickfix turns diagnostics echoed back by an editor into text
// edits.
package quickfix

import (
	"strings"

	"sfclint/internal/diag"
	"sfclint/internal/source"
)

// LegacyBindTitle titles the empty edit offered for diagnostics that
// mention v-bind but carry no fix of their own.
const LegacyBindTitle = "change v-bind"

// TextEdit replaces Range with NewText.
type TextEdit struct {
	Range   source.Range `json:"range"`
	NewText string       `json:"newText"`
}

// Action is one quick fix: a title, the diagnostic it resolves and the
// edit to apply to the document at URI.
type Action struct {
	Title      string
	URI        string
	Diagnostic diag.Diagnostic
	Edit       TextEdit
}

// DocumentEdits groups the edits for one document.
type DocumentEdits struct {
	URI   string     `json:"uri"`
	Edits []TextEdit `json:"edits"`
}

// Actions returns one action per warning in diags that has something to
// offer. Order follows diags.
func Actions(uri string, diags []diag.Diagnostic) []Action {
	out := make([]Action, 0, len(diags))
	for _, d := range diags {
		if a, ok := ActionFor(uri, d); ok {
			out = append(out, a)
		}
	}
	return out
}

// ActionFor translates a single diagnostic. Only warnings qualify. A
// diagnostic with fix data yields its edit; one without fix data whose
// message mentions v-bind yields an empty replacement; anything else
// yields nothing.
func ActionFor(uri string, d diag.Diagnostic) (Action, bool) {
	if d.Severity != diag.SevWarning {
		return Action{}, false
	}
	a := Action{URI: uri, Diagnostic: d, Edit: TextEdit{Range: d.Range}}
	switch {
	case d.Fix != nil:
		a.Title = d.Fix.Title
		if a.Title == "" {
			a.Title = d.Code.Title()
		}
		a.Edit.NewText = d.Fix.NewText
	case strings.Contains(d.Message, "v-bind"):
		a.Title = LegacyBindTitle
	default:
		return Action{}, false
	}
	return a, true
}

// Group collects the edits of actions per URI, in first-seen URI order.
func Group(actions []Action) []DocumentEdits {
	var out []DocumentEdits
	index := make(map[string]int)
	for _, a := range actions {
		i, ok := index[a.URI]
		if !ok {
			i = len(out)
			index[a.URI] = i
			out = append(out, DocumentEdits{URI: a.URI})
		}
		out[i].Edits = append(out[i].Edits, a.Edit)
	}
	return out
}
