package lints

import (
	"github.com/pylin-dev/pylin/internal/pyast"
)

// LiteralKind is the tri-state content classification of a string literal.
// "Unknown" means the expression is a literal shape whose runtime content
// cannot be determined statically (it has interpolated segments); it is
// distinct from "not a literal at all", which ClassifyStringLiteral reports
// through its second result.
type LiteralKind int

const (
	LiteralEmpty LiteralKind = iota
	LiteralNonEmpty
	LiteralUnknown
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralEmpty:
		return "empty"
	case LiteralNonEmpty:
		return "non-empty"
	case LiteralUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// ClassifyStringLiteral classifies the content of a string or bytes literal
// expression. The second result is false when the expression is not a
// literal shape; callers must treat that as a non-match rather than as an
// unknown-valued literal.
//
// A joined literal (f-string or adjacent-literal concatenation) is Unknown
// as soon as any segment is not a compile-time constant, even if another
// segment guarantees a non-empty result: the classifier only speaks for
// values it can fully see.
func ClassifyStringLiteral(expr pyast.Expr) (LiteralKind, bool) {
	switch e := expr.(type) {
	case *pyast.Constant:
		switch e.Kind {
		case pyast.ConstStr, pyast.ConstBytes:
			if len(e.Value) == 0 {
				return LiteralEmpty, true
			}
			return LiteralNonEmpty, true
		default:
			return 0, false
		}
	case *pyast.JoinedStr:
		anyNonEmpty := false
		for _, part := range e.Parts {
			c, ok := part.(*pyast.Constant)
			if !ok || (c.Kind != pyast.ConstStr && c.Kind != pyast.ConstBytes) {
				return LiteralUnknown, true
			}
			if len(c.Value) > 0 {
				anyNonEmpty = true
			}
		}
		if anyNonEmpty {
			return LiteralNonEmpty, true
		}
		return LiteralEmpty, true
	default:
		return 0, false
	}
}
