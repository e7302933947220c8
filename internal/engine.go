package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/pylin-dev/pylin/internal/nolint"
	"github.com/pylin-dev/pylin/internal/parser"
	"github.com/pylin-dev/pylin/internal/pyast"
	"github.com/pylin-dev/pylin/internal/registry"
	tt "github.com/pylin-dev/pylin/internal/types"
)

// Engine manages the linting process. Per file the pipeline is strictly
// two-phase: the class registry is fully built before any rule runs, then
// every enabled rule gets the parsed module plus a read-only registry handle.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths map[string]bool
	nolintMgr    *nolint.Manager
	rules        map[string]LintRule

	watchDirs  []string
	watcher    *fsnotify.Watcher
	isWatching atomic.Bool
}

// NewEngine creates a new lint engine with the default rule set adjusted by
// the given configuration.
func NewEngine(rootDir string, source []byte, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	engine.applyRules(rules)
	return engine, nil
}

type ruleConstructor func() LintRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	AbstractClassInstantiatedRuleName: NewAbstractClassInstantiatedRule,
	AssertOnStringLiteralRuleName:     NewAssertOnStringLiteralRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			newRule := newRuleCstr()
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
		} else {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	mod, err := parser.ParseFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	return e.runRules(filename, mod)
}

// RunSource applies all lint rules to in-memory source.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	mod, err := parser.ParseSource("", source)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}

	return e.runRules("", mod)
}

func (e *Engine) runRules(filename string, mod *pyast.Module) ([]tt.Issue, error) {
	e.nolintMgr = nolint.ParseComments(mod)
	reg := registry.Build(mod)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] {
				return
			}
			issues, err := r.Check(filename, mod, reg)
			if err != nil {
				return
			}

			nolinted := e.filterNolintIssues(issues)

			mu.Lock()
			allIssues = append(allIssues, nolinted...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	return allIssues, nil
}

// IgnoreRule disables a rule by name for this engine.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath excludes a file path from linting.
func (e *Engine) IgnorePath(path string) {
	if e.ignoredPaths == nil {
		e.ignoredPaths = make(map[string]bool)
	}
	e.ignoredPaths[filepath.Clean(path)] = true
}

func (e *Engine) isIgnoredPath(path string) bool {
	if e.ignoredPaths == nil {
		return false
	}
	clean := filepath.Clean(path)
	if e.ignoredPaths[clean] {
		return true
	}
	for ignored := range e.ignoredPaths {
		if strings.HasPrefix(clean, ignored+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// filterNolintIssues filters issues based on nolint comments.
func (e *Engine) filterNolintIssues(issues []tt.Issue) []tt.Issue {
	if e.nolintMgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		pos := tt.Position{
			Filename: issue.Filename,
			Line:     issue.Start.Line,
		}
		if !e.nolintMgr.IsNolint(pos, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a SourceCode.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
