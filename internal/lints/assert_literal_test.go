package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pylin-dev/pylin/internal/pyast"
	tt "github.com/pylin-dev/pylin/internal/types"
)

func assertStmt(test pyast.Expr) *pyast.Assert {
	return &pyast.Assert{Test: test}
}

func TestDetectAssertOnStringLiteral(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		module        *pyast.Module
		expectedCount int
		expectedNote  string
	}{
		{
			name:          "assert on empty string",
			module:        &pyast.Module{Body: []pyast.Stmt{assertStmt(str(""))}},
			expectedCount: 1,
			expectedNote:  "literal content classified as empty",
		},
		{
			name:          "assert on non-empty string",
			module:        &pyast.Module{Body: []pyast.Stmt{assertStmt(str("msg"))}},
			expectedCount: 1,
			expectedNote:  "literal content classified as non-empty",
		},
		{
			name: "assert on f-string with interpolation",
			module: &pyast.Module{Body: []pyast.Stmt{
				assertStmt(&pyast.JoinedStr{Parts: []pyast.Expr{interp(&pyast.Name{ID: "x"})}}),
			}},
			expectedCount: 1,
			expectedNote:  "literal content classified as unknown",
		},
		{
			name:          "assert on identifier is silent",
			module:        &pyast.Module{Body: []pyast.Stmt{assertStmt(&pyast.Name{ID: "x"})}},
			expectedCount: 0,
		},
		{
			name: "assert on comparison is silent",
			module: &pyast.Module{Body: []pyast.Stmt{
				assertStmt(&pyast.BadExpr{}),
			}},
			expectedCount: 0,
		},
		{
			name: "assert message literal is not inspected",
			module: &pyast.Module{Body: []pyast.Stmt{
				&pyast.Assert{Test: &pyast.Name{ID: "cond"}, Msg: str("failure reason")},
			}},
			expectedCount: 0,
		},
		{
			name: "multiple asserts each reported",
			module: &pyast.Module{Body: []pyast.Stmt{
				assertStmt(str("")),
				assertStmt(str("x")),
			}},
			expectedCount: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues, err := DetectAssertOnStringLiteral("test.py", tc.module, nil, tt.SeverityWarning)
			require.NoError(t, err)
			require.Len(t, issues, tc.expectedCount)

			if tc.expectedNote != "" {
				assert.Equal(t, AssertOnStringLiteralRule, issues[0].Rule)
				assert.Equal(t, tc.expectedNote, issues[0].Note)
				assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
			}
		})
	}
}

func TestAssertIssueCoversTestExpression(t *testing.T) {
	t.Parallel()
	test := str("")
	test.Span = pyast.Span{
		StartPos: tt.Position{Line: 3, Column: 8},
		EndPos:   tt.Position{Line: 3, Column: 10},
	}
	mod := &pyast.Module{Body: []pyast.Stmt{
		&pyast.Assert{
			Span: pyast.Span{
				StartPos: tt.Position{Line: 3, Column: 1},
				EndPos:   tt.Position{Line: 3, Column: 10},
			},
			Test: test,
		},
	}}

	issues, err := DetectAssertOnStringLiteral("test.py", mod, nil, tt.SeverityWarning)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	assert.Equal(t, 8, issues[0].Start.Column)
	assert.Equal(t, 10, issues[0].End.Column)
}
