package lints

import (
	"fmt"

	"github.com/pylin-dev/pylin/internal/pyast"
	"github.com/pylin-dev/pylin/internal/registry"
	tt "github.com/pylin-dev/pylin/internal/types"
)

const AssertOnStringLiteralRule = "assert-on-string-literal"

// assertOnStringLiteral holds the structured fields of one violation; the
// message is rendered only when the violation is turned into an issue.
type assertOnStringLiteral struct {
	kind LiteralKind
}

func (v assertOnStringLiteral) message() string {
	switch v.kind {
	case LiteralEmpty:
		return "asserting on an empty string literal will never pass"
	case LiteralNonEmpty:
		return "asserting on a non-empty string literal is always true"
	default:
		return "asserting on a string literal may have unintended results"
	}
}

// DetectAssertOnStringLiteral reports assert statements whose tested
// expression is a string or bytes literal. Only syntactically guaranteed
// literal shapes are in scope; asserting on a dynamic expression is never
// reported.
func DetectAssertOnStringLiteral(
	filename string,
	mod *pyast.Module,
	_ *registry.Registry,
	severity tt.Severity,
) ([]tt.Issue, error) {
	var issues []tt.Issue
	pyast.Inspect(mod, func(n pyast.Node) bool {
		stmt, ok := n.(*pyast.Assert)
		if !ok {
			return true
		}
		checkAssertTest(filename, stmt.Test, severity, &issues)
		return true
	})
	return issues, nil
}

func checkAssertTest(filename string, test pyast.Expr, severity tt.Severity, issues *[]tt.Issue) {
	if test == nil {
		return
	}
	kind, ok := ClassifyStringLiteral(test)
	if !ok {
		return
	}
	v := assertOnStringLiteral{kind: kind}
	*issues = append(*issues, tt.Issue{
		Rule:     AssertOnStringLiteralRule,
		Category: "asserts",
		Filename: filename,
		Message:  v.message(),
		Note:     fmt.Sprintf("literal content classified as %s", kind),
		Start:    test.Pos(),
		End:      test.End(),
		Severity: severity,
	})
}
