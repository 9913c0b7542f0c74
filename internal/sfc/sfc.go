// Package sfc splits a single-file component into its template, script and
// style regions.
package sfc

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sfclint/internal/source"
	"sfclint/internal/syntax"
)

// Kind identifies a region.
type Kind uint8

const (
	KindTemplate Kind = iota
	KindScript
	KindStyle
)

func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindScript:
		return "script"
	case KindStyle:
		return "style"
	}
	return "unknown"
}

// Region is one sub-language block of the component.
//
// Content is what the region parser sees. Its first line is padded with
// spaces up to the region's starting column, so columns reported by the
// parser are already composite columns and only lines need mapping.
type Region struct {
	Kind      Kind
	StartLine int
	Content   string
	Lang      string
	Range     source.Range
}

// Document is the result of Split. Absent regions are nil.
type Document struct {
	Template *Region
	Script   *Region
	Style    *Region
}

// Regions returns the regions in the fixed order template, script, style.
// Absent regions are included as nil.
func (d *Document) Regions() [3]*Region {
	return [3]*Region{d.Template, d.Script, d.Style}
}

// Split parses text with the HTML grammar and extracts the first top-level
// <template> element, the first <script> block and the first <style> block.
func Split(ctx context.Context, text string) (*Document, error) {
	src := []byte(text)
	tree, err := syntax.Parse(ctx, syntax.HTML, src)
	if err != nil {
		return nil, fmt.Errorf("split component: %w", err)
	}
	defer tree.Close()

	doc := &Document{}
	for _, node := range syntax.NamedChildren(tree.Root()) {
		switch node.Type() {
		case "element":
			if doc.Template != nil || tagName(tree, node) != "template" {
				continue
			}
			doc.Template = newRegion(tree, KindTemplate, node, node)
		case "script_element":
			if doc.Script != nil {
				continue
			}
			doc.Script = newRegion(tree, KindScript, node, rawText(node))
		case "style_element":
			if doc.Style != nil {
				continue
			}
			doc.Style = newRegion(tree, KindStyle, node, rawText(node))
		}
	}
	return doc, nil
}

// newRegion builds a region from body; a block without body yields an
// empty region positioned after the start tag.
func newRegion(tree *syntax.Tree, kind Kind, block, body *sitter.Node) *Region {
	region := &Region{Kind: kind, Lang: attrValue(tree, startTag(block), "lang")}
	if body == nil {
		tag := startTag(block)
		if tag == nil {
			tag = block
		}
		end := composite(tree, tag.EndPoint(), tag.EndByte())
		region.StartLine = end.Line
		region.Content = strings.Repeat(" ", end.Character)
		region.Range = source.Range{Start: end, End: end}
		return region
	}
	start := composite(tree, body.StartPoint(), body.StartByte())
	region.StartLine = start.Line
	region.Content = strings.Repeat(" ", start.Character) + tree.Text(body)
	region.Range = source.Range{Start: start, End: composite(tree, body.EndPoint(), body.EndByte())}
	return region
}

// composite converts a point of the whole-document tree; rows there are
// already composite lines.
func composite(tree *syntax.Tree, p sitter.Point, offset uint32) source.Position {
	loc := tree.Loc(p, offset)
	return source.Position{Line: loc.Line - 1, Character: loc.Column}
}

func startTag(n *sitter.Node) *sitter.Node {
	for _, child := range syntax.NamedChildren(n) {
		if child.Type() == "start_tag" || child.Type() == "self_closing_tag" {
			return child
		}
	}
	return nil
}

func rawText(n *sitter.Node) *sitter.Node {
	for _, child := range syntax.NamedChildren(n) {
		if child.Type() == "raw_text" {
			return child
		}
	}
	return nil
}

func tagName(tree *syntax.Tree, element *sitter.Node) string {
	tag := startTag(element)
	if tag == nil {
		return ""
	}
	for _, child := range syntax.NamedChildren(tag) {
		if child.Type() == "tag_name" {
			return strings.ToLower(tree.Text(child))
		}
	}
	return ""
}

func attrValue(tree *syntax.Tree, tag *sitter.Node, name string) string {
	if tag == nil {
		return ""
	}
	for _, attr := range syntax.NamedChildren(tag) {
		if attr.Type() != "attribute" {
			continue
		}
		var attrName, value string
		for _, part := range syntax.NamedChildren(attr) {
			switch part.Type() {
			case "attribute_name":
				attrName = tree.Text(part)
			case "attribute_value":
				value = tree.Text(part)
			case "quoted_attribute_value":
				value = strings.Trim(tree.Text(part), `"'`)
			}
		}
		if strings.EqualFold(attrName, name) {
			return value
		}
	}
	return ""
}
