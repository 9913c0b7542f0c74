package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sfclint/internal/sfc"
	"sfclint/internal/source"
	"sfclint/internal/syntax"
)

// ErrSyntax reports a template region the grammar could not parse cleanly.
var ErrSyntax = errors.New("template: syntax error")

// Parse parses the template region and returns its <template> root element.
// The analyzers walk the root's children. Interpolation bodies are masked
// before parsing; expressions like {{ a < b }} are not markup.
func Parse(ctx context.Context, region *sfc.Region) (*Node, error) {
	if region == nil {
		return nil, errors.New("template: nil region")
	}
	tree, err := syntax.Parse(ctx, syntax.HTML, []byte(maskInterpolations(region.Content)))
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	defer tree.Close()

	root := tree.Root()
	if bad := syntax.FirstError(root); bad != nil {
		loc := tree.Range(bad).Start
		return nil, fmt.Errorf("%w at %d:%d", ErrSyntax, loc.Line, loc.Column)
	}
	for _, child := range syntax.NamedChildren(root) {
		if isElement(child) {
			b := builder{tree: tree}
			return b.element(child), nil
		}
	}
	return nil, fmt.Errorf("%w: no root element", ErrSyntax)
}

func isElement(n *sitter.Node) bool {
	switch n.Type() {
	case "element", "script_element", "style_element":
		return true
	}
	return false
}

type builder struct {
	tree *syntax.Tree
}

func (b *builder) element(n *sitter.Node) *Node {
	node := &Node{Range: b.tree.Range(n)}
	for _, child := range syntax.NamedChildren(n) {
		switch child.Type() {
		case "start_tag", "self_closing_tag":
			node.StartTag = b.tree.Text(child)
			for _, part := range syntax.NamedChildren(child) {
				switch part.Type() {
				case "tag_name":
					node.Tag = b.tree.Text(part)
				case "attribute":
					if attr, ok := b.attribute(part); ok {
						node.Attrs = append(node.Attrs, attr)
					}
				}
			}
		default:
			if isElement(child) {
				node.Children = append(node.Children, b.element(child))
			}
		}
	}
	return node
}

func (b *builder) attribute(n *sitter.Node) (Attribute, bool) {
	attr := Attribute{Range: b.tree.Range(n), Source: b.tree.Text(n)}
	var nameNode *sitter.Node
	for _, part := range syntax.NamedChildren(n) {
		switch part.Type() {
		case "attribute_name":
			nameNode = part
		case "attribute_value":
			v := b.tree.Text(part)
			attr.Value = &v
		case "quoted_attribute_value":
			v := strings.Trim(b.tree.Text(part), `"'`)
			attr.Value = &v
		}
	}
	if nameNode == nil {
		return Attribute{}, false
	}
	raw := b.tree.Text(nameNode)
	attr.NameRange = b.tree.Range(nameNode)

	name, bound, arg, argOffset := splitDirective(raw)
	attr.Name, attr.Bound, attr.Arg = name, bound, arg
	if argOffset >= 0 {
		start := attr.NameRange.Start
		start.Column += syntax.UTF16Len([]byte(raw[:argOffset]))
		end := start
		end.Column += syntax.UTF16Len([]byte(arg))
		attr.ArgRange = source.LocalRange{Start: start, End: end}
	}
	return attr, true
}
