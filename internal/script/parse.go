package script

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"sfclint/internal/syntax"
)

var (
	// ErrSyntax reports a script region the grammar could not parse cleanly.
	ErrSyntax = errors.New("script: syntax error")
	// ErrLang reports an unsupported lang attribute.
	ErrLang = errors.New("script: unsupported lang")
)

// Parse parses content written in lang ("", "ts", "js", "tsx", ...).
// Any ERROR or MISSING node fails the whole region with ErrSyntax.
func Parse(ctx context.Context, content, lang string) (*Program, error) {
	language, ok := syntax.ScriptLanguage(lang)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrLang, lang)
	}
	tree, err := syntax.Parse(ctx, language, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer tree.Close()

	root := tree.Root()
	if bad := syntax.FirstError(root); bad != nil {
		loc := tree.Range(bad).Start
		return nil, fmt.Errorf("%w at %d:%d", ErrSyntax, loc.Line, loc.Column)
	}

	b := builder{tree: tree}
	return &Program{span: span{tree.Range(root)}, Body: b.list(syntax.NamedChildren(root))}, nil
}

type builder struct {
	tree *syntax.Tree
}

func (b *builder) list(nodes []*sitter.Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if conv := b.node(n); conv != nil {
			out = append(out, conv)
		}
	}
	return out
}

func (b *builder) field(n *sitter.Node, name string) Node {
	child := n.ChildByFieldName(name)
	if child == nil {
		return nil
	}
	return b.node(child)
}

func (b *builder) node(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	sp := span{b.tree.Range(n)}
	switch n.Type() {
	case "comment":
		return nil
	case "method_definition":
		m := &MethodDecl{span: sp, Name: b.field(n, "name")}
		if params := n.ChildByFieldName("parameters"); params != nil {
			m.Params = b.list(syntax.NamedChildren(params))
		}
		if body, ok := b.field(n, "body").(*Block); ok {
			m.Body = body
		}
		return m
	case "public_field_definition":
		return &FieldDecl{span: sp, Name: b.field(n, "name"), Value: b.field(n, "value")}
	case "field_definition":
		return &FieldDecl{span: sp, Name: b.field(n, "property"), Value: b.field(n, "value")}
	case "variable_declarator":
		return &VarDeclarator{span: sp, Name: b.field(n, "name"), Init: b.field(n, "value")}
	case "pair":
		return &Property{span: sp, Key: b.field(n, "key"), Value: b.field(n, "value")}
	case "member_expression":
		return &MemberAccess{
			span:     sp,
			Object:   b.field(n, "object"),
			Property: b.field(n, "property"),
			Optional: hasOptionalChain(n),
		}
	case "binary_expression":
		op := ""
		if opNode := n.ChildByFieldName("operator"); opNode != nil {
			op = opNode.Type()
		}
		return &BinaryExpr{span: sp, Operator: op, Left: b.field(n, "left"), Right: b.field(n, "right")}
	case "statement_block":
		return &Block{span: sp, Stmts: b.list(syntax.NamedChildren(n))}
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return &Identifier{span: sp, Name: b.tree.Text(n)}
	case "number":
		return &NumberLit{span: sp, Raw: b.tree.Text(n)}
	case "string":
		return &StringLit{span: sp, Raw: b.tree.Text(n)}
	case "true", "false":
		return &BoolLit{span: sp, Value: n.Type() == "true"}
	case "this":
		return &ThisExpr{span: sp}
	}
	return &Other{span: sp, Kind: n.Type(), Kids: b.list(syntax.NamedChildren(n))}
}

func hasOptionalChain(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if t := child.Type(); t == "optional_chain" || strings.HasPrefix(t, "?.") {
			return true
		}
	}
	return false
}
