// Package nolint parses suppression comments and decides whether an issue
// at a given position is silenced. A comment of the form "# nolint" applies
// to all rules; "# nolint: rule1, rule2" only to the named ones. A trailing
// comment covers its statement, a standalone comment covers the statement on
// the following line, and a comment before the first statement covers the
// whole file.
package nolint

import (
	"fmt"
	"strings"

	"github.com/pylin-dev/pylin/internal/pyast"
	tt "github.com/pylin-dev/pylin/internal/types"
)

const nolintPrefix = "nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope represents a line range in the code where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start tt.Position
	end   tt.Position
}

// ParseComments scans the module's comments and returns a Manager holding
// every valid nolint scope. Invalid nolint comments are ignored.
func ParseComments(mod *pyast.Module) *Manager {
	manager := &Manager{
		scopes: make(map[string][]nolintScope, len(mod.Comments)),
	}
	stmtMap := indexStatementsByLine(mod)
	firstStmtLine := firstStatementLine(mod)

	for _, comment := range mod.Comments {
		ns, err := parseComment(comment, mod, stmtMap, firstStmtLine)
		if err != nil {
			continue
		}
		filename := ns.start.Filename
		manager.scopes[filename] = append(manager.scopes[filename], ns)
	}
	return manager
}

func parseComment(
	comment pyast.Comment,
	mod *pyast.Module,
	stmtMap map[int]pyast.Stmt,
	firstStmtLine int,
) (nolintScope, error) {
	var ns nolintScope

	text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "#"))
	if !strings.HasPrefix(text, nolintPrefix) {
		return ns, fmt.Errorf("not a nolint comment")
	}

	rest := text[len(nolintPrefix):]

	// Either a bare "nolint" (all rules) or "nolint:" followed by a
	// non-empty rule list.
	if rest != "" && rest[0] != ':' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}
	if rest != "" {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if rest == "" {
			return ns, fmt.Errorf("no rules specified after colon")
		}
	}
	ns.rules = parseIgnoreRuleNames(rest)
	pos := comment.Pos()

	// A comment above the first statement silences the entire file.
	if firstStmtLine > 0 && pos.Line < firstStmtLine {
		ns.start = mod.Pos()
		ns.end = mod.End()
		ns.start.Filename = pos.Filename
		ns.end.Filename = pos.Filename
		return ns, nil
	}

	// Trailing comment: covers the statement it shares a line with.
	if stmt, exists := stmtMap[pos.Line]; exists {
		if pos.Offset > stmt.Pos().Offset {
			ns.start = stmt.Pos()
			ns.end = stmt.End()
			return ns, nil
		}
	}

	// Standalone comment: covers the statement starting on the next line.
	if stmt, exists := stmtMap[pos.Line+1]; exists {
		ns.start = pos
		ns.end = stmt.End()
		return ns, nil
	}

	// Otherwise the comment only covers its own line.
	ns.start = pos
	ns.end = pos
	return ns, nil
}

func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// indexStatementsByLine maps each line to the first statement starting on it.
func indexStatementsByLine(mod *pyast.Module) map[int]pyast.Stmt {
	stmtMap := make(map[int]pyast.Stmt)
	pyast.Inspect(mod, func(n pyast.Node) bool {
		stmt, ok := n.(pyast.Stmt)
		if !ok {
			return true
		}
		line := stmt.Pos().Line
		if _, exists := stmtMap[line]; !exists {
			stmtMap[line] = stmt
		}
		return true
	})
	return stmtMap
}

func firstStatementLine(mod *pyast.Module) int {
	if len(mod.Body) == 0 {
		return 0
	}
	return mod.Body[0].Pos().Line
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos tt.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start.Line || pos.Line > ns.end.Line {
			continue
		}
		// An empty rule set means the comment applies to every rule.
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
