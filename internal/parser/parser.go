// Package parser turns Python source into the pyast tree using the
// tree-sitter python grammar. Constructs outside the modeled statement and
// expression sets are mapped to BadStmt/BadExpr rather than reported as
// errors, so a file with unusual syntax still yields a usable tree.
package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/pylin-dev/pylin/internal/pyast"
	tt "github.com/pylin-dev/pylin/internal/types"
)

// ParseFile parses the Python file at path.
func ParseFile(path string) (*pyast.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return ParseSource(path, src)
}

// ParseSource parses in-memory Python source. The filename is only used for
// positions and may be empty.
func ParseSource(filename string, src []byte) (*pyast.Module, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("error parsing source: %w", err)
	}
	defer tree.Close()

	c := &converter{filename: filename, src: src}
	root := tree.RootNode()

	mod := &pyast.Module{Span: c.span(root)}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		mod.Body = append(mod.Body, c.stmt(child))
	}
	c.collectComments(root, mod)
	return mod, nil
}

type converter struct {
	filename string
	src      []byte
}

func (c *converter) pos(point sitter.Point, offset uint32) tt.Position {
	return tt.Position{
		Filename: c.filename,
		Offset:   int(offset),
		Line:     int(point.Row) + 1,
		Column:   int(point.Column) + 1,
	}
}

func (c *converter) span(node *sitter.Node) pyast.Span {
	return pyast.Span{
		StartPos: c.pos(node.StartPoint(), node.StartByte()),
		EndPos:   c.pos(node.EndPoint(), node.EndByte()),
	}
}

func (c *converter) collectComments(node *sitter.Node, mod *pyast.Module) {
	if node.Type() == "comment" {
		mod.Comments = append(mod.Comments, pyast.Comment{
			Span: c.span(node),
			Text: node.Content(c.src),
		})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c.collectComments(node.Child(i), mod)
	}
}

func (c *converter) stmt(node *sitter.Node) pyast.Stmt {
	switch node.Type() {
	case "class_definition":
		return c.classDef(node, nil)
	case "function_definition":
		return c.funcDef(node, nil)
	case "decorated_definition":
		return c.decorated(node)
	case "assert_statement":
		return c.assertStmt(node)
	case "expression_statement":
		return c.exprStmt(node)
	case "return_statement":
		return c.returnStmt(node)
	case "if_statement", "for_statement", "while_statement",
		"try_statement", "with_statement":
		return c.compound(node)
	default:
		return &pyast.BadStmt{Span: c.span(node)}
	}
}

// decorated unwraps a decorated_definition into its class or function with
// the decorator expressions attached.
func (c *converter) decorated(node *sitter.Node) pyast.Stmt {
	var decorators []pyast.Expr
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		if inner := child.NamedChild(0); inner != nil {
			decorators = append(decorators, c.expr(inner))
		}
	}

	def := node.ChildByFieldName("definition")
	if def == nil {
		return &pyast.BadStmt{Span: c.span(node)}
	}
	switch def.Type() {
	case "class_definition":
		return c.classDef(def, decorators)
	case "function_definition":
		return c.funcDef(def, decorators)
	default:
		return &pyast.BadStmt{Span: c.span(node)}
	}
}

func (c *converter) classDef(node *sitter.Node, decorators []pyast.Expr) pyast.Stmt {
	def := &pyast.ClassDef{Span: c.span(node), Decorators: decorators}
	if name := node.ChildByFieldName("name"); name != nil {
		def.Name = name.Content(c.src)
	}
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			arg := supers.NamedChild(i)
			if arg.Type() == "keyword_argument" {
				def.Keywords = append(def.Keywords, c.keyword(arg))
				continue
			}
			def.Bases = append(def.Bases, c.expr(arg))
		}
	}
	def.Body = c.body(node.ChildByFieldName("body"))
	return def
}

func (c *converter) funcDef(node *sitter.Node, decorators []pyast.Expr) pyast.Stmt {
	def := &pyast.FunctionDef{Span: c.span(node), Decorators: decorators}
	if name := node.ChildByFieldName("name"); name != nil {
		def.Name = name.Content(c.src)
	}
	def.Body = c.body(node.ChildByFieldName("body"))
	return def
}

func (c *converter) body(block *sitter.Node) []pyast.Stmt {
	if block == nil {
		return nil
	}
	var stmts []pyast.Stmt
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		stmts = append(stmts, c.stmt(child))
	}
	return stmts
}

func (c *converter) assertStmt(node *sitter.Node) pyast.Stmt {
	stmt := &pyast.Assert{Span: c.span(node)}
	exprs := make([]pyast.Expr, 0, 2)
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		exprs = append(exprs, c.expr(child))
	}
	if len(exprs) > 0 {
		stmt.Test = exprs[0]
	}
	if len(exprs) > 1 {
		stmt.Msg = exprs[1]
	}
	if stmt.Test == nil {
		return &pyast.BadStmt{Span: c.span(node)}
	}
	return stmt
}

func (c *converter) exprStmt(node *sitter.Node) pyast.Stmt {
	inner := node.NamedChild(0)
	if inner == nil {
		return &pyast.BadStmt{Span: c.span(node)}
	}
	if inner.Type() == "assignment" {
		assign := &pyast.Assign{Span: c.span(node)}
		if left := inner.ChildByFieldName("left"); left != nil {
			assign.Targets = append(assign.Targets, c.expr(left))
		}
		if right := inner.ChildByFieldName("right"); right != nil {
			assign.Value = c.expr(right)
		}
		return assign
	}
	return &pyast.ExprStmt{Span: c.span(node), X: c.expr(inner)}
}

func (c *converter) returnStmt(node *sitter.Node) pyast.Stmt {
	stmt := &pyast.Return{Span: c.span(node)}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		stmt.Value = c.expr(child)
		break
	}
	return stmt
}

// compound flattens an if/for/while/try/with statement: header expressions
// and the statements of every suite are collected in source order so nested
// asserts and calls stay reachable.
func (c *converter) compound(node *sitter.Node) pyast.Stmt {
	stmt := &pyast.Compound{Span: c.span(node)}
	c.collectSuites(node, stmt)
	return stmt
}

func (c *converter) collectSuites(node *sitter.Node, stmt *pyast.Compound) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "comment":
		case "block":
			stmt.Body = append(stmt.Body, c.body(child)...)
		case "elif_clause", "else_clause", "except_clause",
			"except_group_clause", "finally_clause",
			"with_clause", "with_item", "as_pattern", "case_clause":
			c.collectSuites(child, stmt)
		default:
			stmt.Exprs = append(stmt.Exprs, c.expr(child))
		}
	}
}

func (c *converter) keyword(node *sitter.Node) pyast.Keyword {
	kw := pyast.Keyword{Span: c.span(node)}
	if name := node.ChildByFieldName("name"); name != nil {
		kw.Arg = name.Content(c.src)
	}
	if value := node.ChildByFieldName("value"); value != nil {
		kw.Value = c.expr(value)
	}
	return kw
}

func (c *converter) expr(node *sitter.Node) pyast.Expr {
	switch node.Type() {
	case "identifier":
		return &pyast.Name{Span: c.span(node), ID: node.Content(c.src)}
	case "attribute":
		attr := &pyast.Attribute{Span: c.span(node)}
		if obj := node.ChildByFieldName("object"); obj != nil {
			attr.Value = c.expr(obj)
		} else {
			attr.Value = &pyast.BadExpr{Span: c.span(node)}
		}
		if name := node.ChildByFieldName("attribute"); name != nil {
			attr.Attr = name.Content(c.src)
		}
		return attr
	case "call":
		return c.call(node)
	case "string":
		return c.stringLiteral(node)
	case "concatenated_string":
		return c.concatenatedString(node)
	case "integer":
		return &pyast.Constant{Span: c.span(node), Kind: pyast.ConstInt, Value: node.Content(c.src)}
	case "float":
		return &pyast.Constant{Span: c.span(node), Kind: pyast.ConstFloat, Value: node.Content(c.src)}
	case "true", "false":
		return &pyast.Constant{Span: c.span(node), Kind: pyast.ConstBool, Value: node.Content(c.src)}
	case "none":
		return &pyast.Constant{Span: c.span(node), Kind: pyast.ConstNone, Value: node.Content(c.src)}
	case "parenthesized_expression":
		if inner := node.NamedChild(0); inner != nil {
			return c.expr(inner)
		}
		return &pyast.BadExpr{Span: c.span(node)}
	default:
		return &pyast.BadExpr{Span: c.span(node)}
	}
}

func (c *converter) call(node *sitter.Node) pyast.Expr {
	call := &pyast.Call{Span: c.span(node)}
	if fn := node.ChildByFieldName("function"); fn != nil {
		call.Func = c.expr(fn)
	} else {
		call.Func = &pyast.BadExpr{Span: c.span(node)}
	}
	if args := node.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			arg := args.NamedChild(i)
			switch arg.Type() {
			case "comment":
			case "keyword_argument":
				call.Keywords = append(call.Keywords, c.keyword(arg))
			default:
				call.Args = append(call.Args, c.expr(arg))
			}
		}
	}
	return call
}

// stringLiteral converts a single string token. Plain strings become a
// Constant; strings carrying interpolations become a JoinedStr whose parts
// alternate between constant text runs and FormattedValue nodes.
//
// Constant text is sliced out of the raw token between the opening and
// closing quotes, which works across grammar versions regardless of whether
// string_content nodes are present.
func (c *converter) stringLiteral(node *sitter.Node) pyast.Expr {
	raw := node.Content(c.src)
	prefix, quote := stringDelims(raw)
	contentStart := node.StartByte() + uint32(len(prefix)+len(quote))
	contentEnd := node.EndByte()
	if n := uint32(len(quote)); contentEnd >= contentStart+n {
		contentEnd -= n
	}

	kind := pyast.ConstStr
	if strings.ContainsAny(prefix, "bB") {
		kind = pyast.ConstBytes
	}

	var interpolations []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "interpolation" {
			interpolations = append(interpolations, child)
		}
	}

	if len(interpolations) == 0 {
		value := ""
		if contentEnd > contentStart {
			value = string(c.src[contentStart:contentEnd])
		}
		return &pyast.Constant{Span: c.span(node), Kind: kind, Value: value}
	}

	joined := &pyast.JoinedStr{Span: c.span(node)}
	cursor := contentStart
	for _, interp := range interpolations {
		if interp.StartByte() > cursor {
			joined.Parts = append(joined.Parts, &pyast.Constant{
				Span:  c.span(node),
				Kind:  kind,
				Value: string(c.src[cursor:interp.StartByte()]),
			})
		}
		fv := &pyast.FormattedValue{Span: c.span(interp)}
		if inner := interp.NamedChild(0); inner != nil {
			fv.Value = c.expr(inner)
		} else {
			fv.Value = &pyast.BadExpr{Span: c.span(interp)}
		}
		joined.Parts = append(joined.Parts, fv)
		cursor = interp.EndByte()
	}
	if contentEnd > cursor {
		joined.Parts = append(joined.Parts, &pyast.Constant{
			Span:  c.span(node),
			Kind:  kind,
			Value: string(c.src[cursor:contentEnd]),
		})
	}
	return joined
}

// concatenatedString flattens adjacent literals ("a" "b" or "a" f"{x}") into
// one JoinedStr so content classification sees every segment.
func (c *converter) concatenatedString(node *sitter.Node) pyast.Expr {
	joined := &pyast.JoinedStr{Span: c.span(node)}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "string" {
			continue
		}
		switch part := c.stringLiteral(child).(type) {
		case *pyast.JoinedStr:
			joined.Parts = append(joined.Parts, part.Parts...)
		default:
			joined.Parts = append(joined.Parts, part)
		}
	}
	return joined
}

// stringDelims reports the prefix letters and the quote sequence of a raw
// string token, e.g. f'''…''' -> ("f", "'''").
func stringDelims(raw string) (prefix, quote string) {
	i := 0
	for i < len(raw) && raw[i] != '"' && raw[i] != '\'' {
		i++
	}
	prefix = raw[:i]
	rest := raw[i:]
	switch {
	case strings.HasPrefix(rest, `"""`):
		quote = `"""`
	case strings.HasPrefix(rest, "'''"):
		quote = "'''"
	case strings.HasPrefix(rest, `"`):
		quote = `"`
	case strings.HasPrefix(rest, "'"):
		quote = "'"
	}
	return prefix, quote
}
