// Package syntax wraps the tree-sitter grammars used for component files and
// converts tree-sitter points into region-local locations.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"sfclint/internal/source"
)

// Language selects a grammar.
type Language uint8

const (
	HTML Language = iota
	TypeScript
	TSX
	JavaScript
)

func (l Language) String() string {
	switch l {
	case HTML:
		return "html"
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	case JavaScript:
		return "javascript"
	}
	return "unknown"
}

// ErrInvalidUTF8 is returned for content tree-sitter cannot index reliably.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// ScriptLanguage maps the lang attribute of a script block onto a grammar.
// The empty lang parses as TypeScript, which accepts plain JavaScript classes
// with field declarations.
func ScriptLanguage(lang string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "ts", "typescript":
		return TypeScript, true
	case "tsx":
		return TSX, true
	case "js", "javascript", "mjs":
		return JavaScript, true
	case "jsx":
		return TSX, true
	}
	return 0, false
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	case JavaScript:
		return javascript.GetLanguage()
	default:
		return html.GetLanguage()
	}
}

// Tree is a parsed region. It must be closed when the pass ends.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse runs the grammar over src.
func Parse(ctx context.Context, lang Language, src []byte) (*Tree, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidUTF8
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter %s parse failed: %w", lang, err)
	}
	return &Tree{tree: tree, src: src}, nil
}

// Root returns the root node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Close releases the tree-sitter tree.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Source returns the parsed bytes.
func (t *Tree) Source() []byte {
	return t.src
}

// Text returns the source covered by n.
func (t *Tree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.src)
}

// Loc converts a node boundary into a region-local location: tree-sitter
// rows become 1-based lines and byte columns become UTF-16 columns.
func (t *Tree) Loc(p sitter.Point, offset uint32) source.Loc {
	lineStart := int(offset) - int(p.Column)
	if lineStart < 0 {
		lineStart = 0
	}
	end := int(offset)
	if end > len(t.src) {
		end = len(t.src)
	}
	return source.Loc{Line: int(p.Row) + 1, Column: UTF16Len(t.src[lineStart:end])}
}

// Range returns the local range of n.
func (t *Tree) Range(n *sitter.Node) source.LocalRange {
	return source.LocalRange{
		Start: t.Loc(n.StartPoint(), n.StartByte()),
		End:   t.Loc(n.EndPoint(), n.EndByte()),
	}
}

// UTF16Len counts UTF-16 code units in b.
func UTF16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
		b = b[size:]
	}
	return n
}

// NamedChildren returns the named children of n, skipping comments.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// FirstError returns the first ERROR or MISSING node below n in pre-order.
func FirstError(n *sitter.Node) *sitter.Node {
	if n == nil || !n.HasError() {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := FirstError(n.Child(i)); found != nil {
			return found
		}
	}
	return n
}
