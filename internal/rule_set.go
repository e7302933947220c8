package internal

import (
	"github.com/pylin-dev/pylin/internal/lints"
	"github.com/pylin-dev/pylin/internal/pyast"
	"github.com/pylin-dev/pylin/internal/registry"
	tt "github.com/pylin-dev/pylin/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given module and returns a slice of
	// Issues. The registry is shared read-only context built before any
	// rule runs.
	Check(filename string, mod *pyast.Module, reg *registry.Registry) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity of the rule.
	Severity() tt.Severity

	// SetSeverity overrides the severity of the rule.
	SetSeverity(tt.Severity)
}

const (
	AbstractClassInstantiatedRuleName = lints.AbstractClassInstantiatedRule
	AssertOnStringLiteralRuleName     = lints.AssertOnStringLiteralRule
)

type AbstractClassInstantiatedRule struct {
	severity tt.Severity
}

func NewAbstractClassInstantiatedRule() LintRule {
	return &AbstractClassInstantiatedRule{severity: tt.SeverityError}
}

func (r *AbstractClassInstantiatedRule) Check(filename string, mod *pyast.Module, reg *registry.Registry) ([]tt.Issue, error) {
	return lints.DetectAbstractClassInstantiated(filename, mod, reg, r.severity)
}

func (r *AbstractClassInstantiatedRule) Name() string {
	return AbstractClassInstantiatedRuleName
}

func (r *AbstractClassInstantiatedRule) Severity() tt.Severity {
	return r.severity
}

func (r *AbstractClassInstantiatedRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}

type AssertOnStringLiteralRule struct {
	severity tt.Severity
}

func NewAssertOnStringLiteralRule() LintRule {
	return &AssertOnStringLiteralRule{severity: tt.SeverityWarning}
}

func (r *AssertOnStringLiteralRule) Check(filename string, mod *pyast.Module, reg *registry.Registry) ([]tt.Issue, error) {
	return lints.DetectAssertOnStringLiteral(filename, mod, reg, r.severity)
}

func (r *AssertOnStringLiteralRule) Name() string {
	return AssertOnStringLiteralRuleName
}

func (r *AssertOnStringLiteralRule) Severity() tt.Severity {
	return r.severity
}

func (r *AssertOnStringLiteralRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
