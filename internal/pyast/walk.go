package pyast

// Inspect traverses the tree in depth-first pre-order, calling f for each
// node. If f returns false the children of the node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Module:
		for _, stmt := range n.Body {
			Inspect(stmt, f)
		}
	case *ClassDef:
		for _, dec := range n.Decorators {
			Inspect(dec, f)
		}
		for _, base := range n.Bases {
			Inspect(base, f)
		}
		for _, kw := range n.Keywords {
			Inspect(kw.Value, f)
		}
		for _, stmt := range n.Body {
			Inspect(stmt, f)
		}
	case *FunctionDef:
		for _, dec := range n.Decorators {
			Inspect(dec, f)
		}
		for _, stmt := range n.Body {
			Inspect(stmt, f)
		}
	case *Assert:
		Inspect(n.Test, f)
		if n.Msg != nil {
			Inspect(n.Msg, f)
		}
	case *Assign:
		for _, target := range n.Targets {
			Inspect(target, f)
		}
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *ExprStmt:
		Inspect(n.X, f)
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *Compound:
		for _, expr := range n.Exprs {
			Inspect(expr, f)
		}
		for _, stmt := range n.Body {
			Inspect(stmt, f)
		}
	case *Attribute:
		Inspect(n.Value, f)
	case *JoinedStr:
		for _, part := range n.Parts {
			Inspect(part, f)
		}
	case *FormattedValue:
		Inspect(n.Value, f)
	case *Call:
		Inspect(n.Func, f)
		for _, arg := range n.Args {
			Inspect(arg, f)
		}
		for _, kw := range n.Keywords {
			Inspect(kw.Value, f)
		}
	case *Name, *Constant, *BadExpr, *BadStmt:
		// leaves
	}
}
