// Package template builds the element tree of a component's <template>
// region, with directive-aware attributes.
package template

import "sfclint/internal/source"

// Node is one element. The tree is strict: every node has one parent.
type Node struct {
	Tag      string
	Attrs    []Attribute
	Children []*Node
	Range    source.LocalRange
	// StartTag is the exact source of the start tag, used to recover the
	// separator between attributes.
	StartTag string
}

// Attribute is one attribute or directive as written in the source.
//
//	class="a"        Name "class"
//	v-if="ok"        Name "if", Bound
//	:key="id"        Name "bind", Bound, Arg "key"
//	@click.stop="f"  Name "on", Bound, Arg "click"
//	#header          Name "slot", Bound, Arg "header"
type Attribute struct {
	Name      string
	Bound     bool
	Arg       string
	Value     *string
	Range     source.LocalRange
	NameRange source.LocalRange
	ArgRange  source.LocalRange
	Source    string
}

// HasValue reports whether the attribute was written with "=".
func (a Attribute) HasValue() bool {
	return a.Value != nil
}

// Walk visits the nodes in pre-order, parents before children.
func Walk(nodes []*Node, visit func(*Node)) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		visit(n)
		Walk(n.Children, visit)
	}
}

// Separator returns the first whitespace run of the start tag.
func (n *Node) Separator() (string, bool) {
	start := -1
	for i, r := range n.StartTag {
		isSpace := r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
		switch {
		case isSpace && start < 0:
			start = i
		case !isSpace && start >= 0:
			return n.StartTag[start:i], true
		}
	}
	if start >= 0 {
		return n.StartTag[start:], true
	}
	return "", false
}
