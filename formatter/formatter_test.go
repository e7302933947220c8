package formatter

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/pylin-dev/pylin/internal"
	tt "github.com/pylin-dev/pylin/internal/types"
)

func init() {
	// keep expected output free of ANSI escapes
	color.NoColor = true
}

func TestGenerateFormattedIssueGeneral(t *testing.T) {
	issue := tt.Issue{
		Rule:     AbstractClassInstantiated,
		Filename: "test.py",
		Message:  `class "Animal" is abstract and should not be instantiated`,
		Start:    tt.Position{Filename: "test.py", Line: 4, Column: 5},
		End:      tt.Position{Filename: "test.py", Line: 4, Column: 12},
		Severity: tt.SeverityError,
	}
	snippet := &internal.SourceCode{Lines: []string{
		"class Animal(abc.ABC):",
		"    def make_sound(self):",
		"        ...",
		"x = Animal()",
	}}

	expected := `error: abstract-class-instantiated
 --> test.py:4:5
  |
4 | x = Animal()
  |     ~~~~~~~~
  = class "Animal" is abstract and should not be instantiated

`
	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)
	assert.Equal(t, expected, output)
}

func TestGenerateFormattedIssueAssertNote(t *testing.T) {
	issue := tt.Issue{
		Rule:     AssertOnStringLiteral,
		Filename: "test.py",
		Message:  "asserting on an empty string literal will never pass",
		Note:     "literal content classified as empty",
		Start:    tt.Position{Filename: "test.py", Line: 1, Column: 8},
		End:      tt.Position{Filename: "test.py", Line: 1, Column: 9},
		Severity: tt.SeverityWarning,
	}
	snippet := &internal.SourceCode{Lines: []string{`assert ""`}}

	expected := `warning: assert-on-string-literal
 --> test.py:1:8
  |
1 | assert ""
  |        ~~
  = asserting on an empty string literal will never pass
Note: literal content classified as empty

`
	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)
	assert.Equal(t, expected, output)
}

func TestGenerateFormattedIssueStripsCommonIndent(t *testing.T) {
	issue := tt.Issue{
		Rule:     AbstractClassInstantiated,
		Filename: "test.py",
		Message:  `class "Animal" is abstract and should not be instantiated`,
		Start:    tt.Position{Filename: "test.py", Line: 4, Column: 9},
		End:      tt.Position{Filename: "test.py", Line: 4, Column: 16},
		Severity: tt.SeverityError,
	}
	snippet := &internal.SourceCode{Lines: []string{
		"class Zoo:",
		"    def fill(self):",
		"        pass",
		"    x = Animal()",
	}}

	expected := `error: abstract-class-instantiated
 --> test.py:4:9
  |
4 | x = Animal()
  |     ~~~~~~~~
  = class "Animal" is abstract and should not be instantiated

`
	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)
	assert.Equal(t, expected, output)
}

func TestGenerateFormattedIssueWithSuggestion(t *testing.T) {
	issue := tt.Issue{
		Rule:       AbstractClassInstantiated,
		Filename:   "test.py",
		Message:    `class "Animal" is abstract and should not be instantiated`,
		Suggestion: "x = Dog()",
		Start:      tt.Position{Filename: "test.py", Line: 1, Column: 5},
		End:        tt.Position{Filename: "test.py", Line: 1, Column: 12},
		Severity:   tt.SeverityError,
	}
	snippet := &internal.SourceCode{Lines: []string{"x = Animal()"}}

	expected := `error: abstract-class-instantiated
 --> test.py:1:5
  |
1 | x = Animal()
  |     ~~~~~~~~
  = class "Animal" is abstract and should not be instantiated
Suggestion:
  |
1 | x = Dog()
  |

`
	output := GenerateFormattedIssue([]tt.Issue{issue}, snippet)
	assert.Equal(t, expected, output)
}

func TestGenerateFormattedIssueMultiple(t *testing.T) {
	issues := []tt.Issue{
		{
			Rule:     AssertOnStringLiteral,
			Filename: "test.py",
			Message:  "asserting on a non-empty string literal is always true",
			Note:     "literal content classified as non-empty",
			Start:    tt.Position{Filename: "test.py", Line: 1, Column: 8},
			End:      tt.Position{Filename: "test.py", Line: 1, Column: 12},
			Severity: tt.SeverityWarning,
		},
		{
			Rule:     AbstractClassInstantiated,
			Filename: "test.py",
			Message:  `class "Animal" is abstract and should not be instantiated`,
			Start:    tt.Position{Filename: "test.py", Line: 2, Column: 5},
			End:      tt.Position{Filename: "test.py", Line: 2, Column: 12},
			Severity: tt.SeverityError,
		},
	}
	snippet := &internal.SourceCode{Lines: []string{
		`assert "ok"`,
		"x = Animal()",
	}}

	output := GenerateFormattedIssue(issues, snippet)
	assert.Contains(t, output, "warning: assert-on-string-literal")
	assert.Contains(t, output, "error: abstract-class-instantiated")
	assert.Contains(t, output, "Note: literal content classified as non-empty")
}

func TestGetIssueFormatter(t *testing.T) {
	_, ok := getIssueFormatter(AssertOnStringLiteral).(*AssertOnStringLiteralFormatter)
	assert.True(t, ok)

	_, ok = getIssueFormatter(AbstractClassInstantiated).(*GeneralIssueFormatter)
	assert.True(t, ok)

	_, ok = getIssueFormatter("unknown-rule").(*GeneralIssueFormatter)
	assert.True(t, ok)
}

func TestCalculateVisualColumn(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		column   int
		expected int
	}{
		{"plain text", "x = Animal()", 5, 4},
		{"leading tab", "\tx = 1", 2, 8},
		{"negative column", "x", -1, 0},
		{"column past end", "ab", 10, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, calculateVisualColumn(tc.line, tc.column))
		})
	}
}

func TestFindCommonIndent(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{"no indent", []string{"a", "b"}, ""},
		{"shared spaces", []string{"    a", "    b"}, "    "},
		{"mixed depth", []string{"    a", "        b"}, "    "},
		{"empty lines ignored", []string{"    a", "", "    b"}, "    "},
		{"no lines", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, findCommonIndent(tc.lines))
		})
	}
}
