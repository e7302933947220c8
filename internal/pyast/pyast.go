// Package pyast defines the typed Python syntax tree consumed by the lint
// rules. The tree is immutable after construction and every node carries its
// source range. Expression and statement variants form closed sets; shapes
// the frontend does not model become BadExpr/BadStmt, which every consumer
// treats as a silent non-match.
package pyast

import (
	tt "github.com/pylin-dev/pylin/internal/types"
)

// Span carries the source range of a node.
type Span struct {
	StartPos tt.Position
	EndPos   tt.Position
}

func (s Span) Pos() tt.Position { return s.StartPos }
func (s Span) End() tt.Position { return s.EndPos }

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() tt.Position
	End() tt.Position
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Module is the root of a parsed file.
type Module struct {
	Span
	Body     []Stmt
	Comments []Comment
}

// Comment is a single '#' comment, kept for suppression handling.
type Comment struct {
	Span
	Text string
}

// ----------------------------------------------------------------------------
// Expressions

// Name is a bare identifier.
type Name struct {
	Span
	ID string
}

// Attribute is a dotted access, e.g. abc.ABC.
type Attribute struct {
	Span
	Value Expr
	Attr  string
}

// ConstKind discriminates Constant values.
type ConstKind int

const (
	ConstStr ConstKind = iota
	ConstBytes
	ConstInt
	ConstFloat
	ConstBool
	ConstNone
)

// Constant is a literal whose value is known at parse time. For ConstStr and
// ConstBytes, Value holds the literal content without quotes or prefix.
type Constant struct {
	Span
	Kind  ConstKind
	Value string
}

// JoinedStr is an f-string or an adjacent-literal concatenation. Parts holds
// Constant segments and FormattedValue interpolations in source order.
type JoinedStr struct {
	Span
	Parts []Expr
}

// FormattedValue is a single {expr} interpolation inside a JoinedStr.
type FormattedValue struct {
	Span
	Value Expr
}

// Keyword is a name=value argument in a call or class header.
type Keyword struct {
	Span
	Arg   string
	Value Expr
}

// Call is a call expression.
type Call struct {
	Span
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

// BadExpr stands in for any expression shape the frontend does not model.
type BadExpr struct {
	Span
}

func (*Name) exprNode()           {}
func (*Attribute) exprNode()      {}
func (*Constant) exprNode()       {}
func (*JoinedStr) exprNode()      {}
func (*FormattedValue) exprNode() {}
func (*Call) exprNode()           {}
func (*BadExpr) exprNode()        {}

// ----------------------------------------------------------------------------
// Statements

// ClassDef is a class definition, with base expressions in declaration order
// and class-header keywords (e.g. metaclass=abc.ABCMeta) kept separately.
type ClassDef struct {
	Span
	Name       string
	Bases      []Expr
	Keywords   []Keyword
	Decorators []Expr
	Body       []Stmt
}

// FunctionDef is a function or method definition.
type FunctionDef struct {
	Span
	Name       string
	Decorators []Expr
	Body       []Stmt
}

// Assert is an assert statement with an optional message.
type Assert struct {
	Span
	Test Expr
	Msg  Expr
}

// Assign is a plain assignment.
type Assign struct {
	Span
	Targets []Expr
	Value   Expr
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Span
	X Expr
}

// Return is a return statement with an optional value.
type Return struct {
	Span
	Value Expr
}

// Compound is a statement carrying nested suites (if, for, while, try,
// with). The branching structure is not modeled: header expressions and the
// statements of every suite are kept flat, in source order, so walkers still
// reach everything nested inside.
type Compound struct {
	Span
	Exprs []Expr
	Body  []Stmt
}

// BadStmt stands in for any statement shape the frontend does not model.
type BadStmt struct {
	Span
}

func (*ClassDef) stmtNode()    {}
func (*FunctionDef) stmtNode() {}
func (*Assert) stmtNode()      {}
func (*Assign) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*Compound) stmtNode()    {}
func (*BadStmt) stmtNode()     {}

// DottedName renders a Name or Attribute chain as its dotted source text,
// e.g. "ABC" or "abc.ABC". The second result is false when the expression
// contains any non-name shape, in which case the caller must treat the
// reference as unresolvable.
func DottedName(expr Expr) (string, bool) {
	switch e := expr.(type) {
	case *Name:
		return e.ID, true
	case *Attribute:
		prefix, ok := DottedName(e.Value)
		if !ok {
			return "", false
		}
		return prefix + "." + e.Attr, true
	default:
		return "", false
	}
}
