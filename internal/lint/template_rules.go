package lint

import (
	"fmt"
	"strings"

	"sfclint/internal/diag"
	"sfclint/internal/source"
	"sfclint/internal/template"
)

type attributeOrder struct{ table orderTable }

func (attributeOrder) Code() diag.Code { return diag.TplAttributeOrder }

func (r attributeOrder) Check(c *regionContext, n *template.Node) {
	sorted, before, after := r.table.canonical(n.Attrs)
	if sameSequence(before, after) {
		return
	}
	rng := n.Attrs[0].Range.Cover(n.Attrs[len(n.Attrs)-1].Range)
	b := c.warn(r.Code(), rng, fmt.Sprintf("attributes of <%s> are out of order; expected %s", n.Tag, strings.Join(after, ", ")))
	if text, ok := reorderedSource(n, sorted); ok {
		b.WithFix("reorder attributes", text)
	}
	b.Emit()
}

// reorderedSource joins the attribute sources with the start tag's first
// whitespace run. Any failure means no fix.
func reorderedSource(n *template.Node, sorted []template.Attribute) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()
	sep, found := n.Separator()
	if !found {
		return "", false
	}
	parts := make([]string, len(sorted))
	for i, a := range sorted {
		if a.Source == "" {
			return "", false
		}
		parts[i] = a.Source
	}
	return strings.Join(parts, sep), true
}

type attributeNaming struct{}

func (attributeNaming) Code() diag.Code { return diag.TplAttributeNaming }

func (r attributeNaming) Check(c *regionContext, n *template.Node) {
	for _, a := range n.Attrs {
		var name string
		var rng source.LocalRange
		switch {
		case !a.Bound:
			name, rng = a.Name, a.NameRange
		case a.Name == "bind" && a.Arg != "":
			name, rng = a.Arg, a.ArgRange
		default:
			continue
		}
		if !hasUpperASCII(name) {
			continue
		}
		fixed := kebabCase(name)
		c.warn(r.Code(), rng, fmt.Sprintf("attribute %q should be lower-case with dashes", name)).
			WithFix("rename to "+fixed, fixed).
			Emit()
	}
}
