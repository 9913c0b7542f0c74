// Package script builds a small typed syntax tree for the script region of
// a component.
package script

import "sfclint/internal/source"

// Node is one syntax tree node. Ranges are region-local.
type Node interface {
	Range() source.LocalRange
	// Children lists the structural children in source order.
	Children() []Node
}

type span struct {
	Rng source.LocalRange
}

func (s span) Range() source.LocalRange { return s.Rng }

type (
	// Program is the root of a script region.
	Program struct {
		span
		Body []Node
	}

	// MethodDecl covers class methods, accessors and object-literal methods.
	MethodDecl struct {
		span
		Name   Node
		Params []Node
		Body   *Block
	}

	// FieldDecl is a class field, `enabled = true`.
	FieldDecl struct {
		span
		Name  Node
		Value Node
	}

	// VarDeclarator is one declarator of a let/const/var statement.
	VarDeclarator struct {
		span
		Name Node
		Init Node
	}

	// Property is a key/value pair of an object literal.
	Property struct {
		span
		Key   Node
		Value Node
	}

	// MemberAccess is `object.property` or `object?.property`.
	MemberAccess struct {
		span
		Object   Node
		Property Node
		Optional bool
	}

	BinaryExpr struct {
		span
		Operator string
		Left     Node
		Right    Node
	}

	// Block is a `{ ... }` statement block.
	Block struct {
		span
		Stmts []Node
	}

	Identifier struct {
		span
		Name string
	}

	NumberLit struct {
		span
		Raw string
	}

	StringLit struct {
		span
		Raw string
	}

	BoolLit struct {
		span
		Value bool
	}

	ThisExpr struct {
		span
	}

	// Other is any syntax kind without a dedicated variant.
	Other struct {
		span
		Kind string
		Kids []Node
	}
)

func (n *Program) Children() []Node { return n.Body }

func (n *MethodDecl) Children() []Node {
	out := make([]Node, 0, len(n.Params)+2)
	out = appendNonNil(out, n.Name)
	out = append(out, n.Params...)
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

func (n *FieldDecl) Children() []Node     { return appendNonNil(nil, n.Name, n.Value) }
func (n *VarDeclarator) Children() []Node { return appendNonNil(nil, n.Name, n.Init) }
func (n *Property) Children() []Node      { return appendNonNil(nil, n.Key, n.Value) }
func (n *MemberAccess) Children() []Node  { return appendNonNil(nil, n.Object, n.Property) }
func (n *BinaryExpr) Children() []Node    { return appendNonNil(nil, n.Left, n.Right) }
func (n *Block) Children() []Node         { return n.Stmts }
func (n *Identifier) Children() []Node    { return nil }
func (n *NumberLit) Children() []Node     { return nil }
func (n *StringLit) Children() []Node     { return nil }
func (n *BoolLit) Children() []Node       { return nil }
func (n *ThisExpr) Children() []Node      { return nil }
func (n *Other) Children() []Node         { return n.Kids }

func appendNonNil(out []Node, nodes ...Node) []Node {
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Walk visits n and its descendants in pre-order. When visit returns false
// the children of that node are skipped.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, visit)
	}
}

// IdentName returns the name of n when it is a plain identifier.
func IdentName(n Node) (string, bool) {
	id, ok := n.(*Identifier)
	if !ok {
		return "", false
	}
	return id.Name, true
}
