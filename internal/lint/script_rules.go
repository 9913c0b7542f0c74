package lint

import (
	"fmt"
	"strings"

	"sfclint/internal/diag"
	"sfclint/internal/script"
)

// selfToken marks accesses through the component instance; such chains are
// treated as already guarded.
const selfToken = "this"

type argumentCount struct{ max int }

func (argumentCount) Code() diag.Code { return diag.ScrArgumentCount }

func (r argumentCount) Check(c *regionContext, n script.Node) {
	m, ok := n.(*script.MethodDecl)
	if !ok || len(m.Params) <= r.max {
		return
	}
	rng := m.Params[0].Range().Cover(m.Params[len(m.Params)-1].Range())
	c.warn(r.Code(), rng, fmt.Sprintf("function takes %d parameters; with more than %d pass one object and destructure it", len(m.Params), r.max)).Emit()
}

type functionLength struct{ max int }

func (functionLength) Code() diag.Code { return diag.ScrFunctionLength }

func (r functionLength) Check(c *regionContext, n script.Node) {
	m, ok := n.(*script.MethodDecl)
	if !ok {
		return
	}
	rng := m.Range()
	if lines := rng.End.Line - rng.Start.Line; lines > r.max {
		c.warn(r.Code(), rng, fmt.Sprintf("function spans %d lines; keep functions within %d lines", lines, r.max)).Emit()
	}
}

type booleanNaming struct{ allowed []string }

func (booleanNaming) Code() diag.Code { return diag.ScrBooleanNaming }

func (r booleanNaming) Check(c *regionContext, n script.Node) {
	var name, value script.Node
	switch v := n.(type) {
	case *script.FieldDecl:
		name, value = v.Name, v.Value
	case *script.Property:
		name, value = v.Key, v.Value
	case *script.VarDeclarator:
		name, value = v.Name, v.Init
	default:
		return
	}
	if _, isBool := value.(*script.BoolLit); !isBool {
		return
	}
	ident, ok := script.IdentName(name)
	if !ok || hasAllowedPrefix(ident, r.allowed) {
		return
	}
	b := c.warn(r.Code(), name.Range(), fmt.Sprintf("boolean %q should start with is, has or can", ident))
	if fixed, ok := booleanName(ident); ok {
		b.WithFix("rename to "+fixed, fixed)
	}
	b.Emit()
}

type nestingDepth struct{ max int }

func (nestingDepth) Code() diag.Code { return diag.ScrNestingDepth }

func (r nestingDepth) Check(c *regionContext, n script.Node) {
	m, ok := n.(*script.MethodDecl)
	if !ok || m.Body == nil {
		return
	}
	// the body itself is depth 0
	for _, stmt := range m.Body.Children() {
		if blockDepthExceeds(stmt, 0, r.max) {
			c.warn(r.Code(), m.Range(), fmt.Sprintf("blocks are nested deeper than %d levels (if/else, loops, callbacks)", r.max)).Emit()
			return
		}
	}
}

// blockDepthExceeds descends into every child of every node and stops at the
// first block whose depth is above max.
func blockDepthExceeds(n script.Node, depth, max int) bool {
	if _, ok := n.(*script.Block); ok {
		depth++
		if depth > max {
			return true
		}
	}
	for _, child := range n.Children() {
		if blockDepthExceeds(child, depth, max) {
			return true
		}
	}
	return false
}

type magicNumber struct{}

func (magicNumber) Code() diag.Code { return diag.ScrMagicNumber }

func (r magicNumber) Check(c *regionContext, n script.Node) {
	bin, ok := n.(*script.BinaryExpr)
	if !ok {
		return
	}
	if containsNumber(bin.Left) || containsNumber(bin.Right) {
		c.warn(r.Code(), bin.Range(), "numeric literal in expression; give it a named constant").Emit()
	}
}

// containsNumber reports whether n is or contains a numeric literal.
// String literals never count.
func containsNumber(n script.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*script.NumberLit); ok {
		return true
	}
	for _, child := range n.Children() {
		if containsNumber(child) {
			return true
		}
	}
	return false
}

type safeAccess struct{}

func (safeAccess) Code() diag.Code { return diag.ScrSafeAccess }

// Check flags a.b.c when the chain text does not mention the instance.
// The guard test is textual.
func (r safeAccess) Check(c *regionContext, n script.Node) {
	access, ok := n.(*script.MemberAccess)
	if !ok || access.Optional {
		return
	}
	if _, chained := access.Object.(*script.MemberAccess); !chained {
		return
	}
	if _, plain := access.Property.(*script.Identifier); !plain {
		return
	}
	text := c.text(access.Range())
	if strings.Contains(text, selfToken) {
		return
	}
	c.warn(r.Code(), access.Range(), fmt.Sprintf("%s may read a property of undefined; guard it or use optional chaining", text)).Emit()
}
