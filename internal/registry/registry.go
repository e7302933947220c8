// Package registry builds the per-module class registry the rules consult.
// The registry is filled by a single pass over a module's statements before
// any rule runs, and is read-only afterwards.
package registry

import (
	"github.com/pylin-dev/pylin/internal/pyast"
)

// Well-known abstract markers from the standard library. The lists are
// configuration data: extending them does not change any algorithm.
var abstractBaseMarkers = map[string]struct{}{
	"ABC":         {},
	"ABCMeta":     {},
	"abc.ABC":     {},
	"abc.ABCMeta": {},
}

var abstractMethodMarkers = map[string]struct{}{
	"abstractmethod":           {},
	"abc.abstractmethod":       {},
	"abstractproperty":         {},
	"abc.abstractproperty":     {},
	"abstractclassmethod":      {},
	"abc.abstractclassmethod":  {},
	"abstractstaticmethod":     {},
	"abc.abstractstaticmethod": {},
}

// ClassFacts records what a single class definition declares. Facts are
// immutable once the registry build pass completes.
type ClassFacts struct {
	Name string

	// BaseRefs holds base-class references as written, in declaration
	// order. A metaclass= keyword value counts as a base ref, matching how
	// abc.ABCMeta is conventionally attached.
	BaseRefs []string

	// Decorators holds the dotted names of class decorators.
	Decorators map[string]struct{}

	// Members holds the names of directly defined member functions;
	// AbstractMembers the subset carrying an abstract-method decorator.
	Members         map[string]struct{}
	AbstractMembers map[string]struct{}

	Def *pyast.ClassDef
}

// HasAbstractMember reports whether any direct member carries an
// abstract-method decorator.
func (f *ClassFacts) HasAbstractMember() bool {
	return len(f.AbstractMembers) > 0
}

// Registry maps class names visible in one module to their facts.
type Registry struct {
	classes map[string]*ClassFacts
}

// Build collects class facts from all module-level class definitions,
// including classes nested directly inside other class bodies. Function
// bodies are not descended into. Build never fails: missing syntax simply
// yields zero-value facts.
func Build(mod *pyast.Module) *Registry {
	reg := &Registry{classes: make(map[string]*ClassFacts)}
	if mod == nil {
		return reg
	}
	reg.collect(mod.Body)
	return reg
}

func (r *Registry) collect(stmts []pyast.Stmt) {
	for _, stmt := range stmts {
		class, ok := stmt.(*pyast.ClassDef)
		if !ok {
			continue
		}
		r.classes[class.Name] = factsFor(class)
		r.collect(class.Body)
	}
}

func factsFor(class *pyast.ClassDef) *ClassFacts {
	facts := &ClassFacts{
		Name:            class.Name,
		Decorators:      make(map[string]struct{}),
		Members:         make(map[string]struct{}),
		AbstractMembers: make(map[string]struct{}),
		Def:             class,
	}

	for _, base := range class.Bases {
		if name, ok := pyast.DottedName(base); ok {
			facts.BaseRefs = append(facts.BaseRefs, name)
		}
	}
	for _, kw := range class.Keywords {
		if kw.Arg != "metaclass" {
			continue
		}
		if name, ok := pyast.DottedName(kw.Value); ok {
			facts.BaseRefs = append(facts.BaseRefs, name)
		}
	}
	for _, dec := range class.Decorators {
		if name, ok := pyast.DottedName(dec); ok {
			facts.Decorators[name] = struct{}{}
		}
	}

	for _, stmt := range class.Body {
		member, ok := stmt.(*pyast.FunctionDef)
		if !ok {
			continue
		}
		facts.Members[member.Name] = struct{}{}
		for _, dec := range member.Decorators {
			name, ok := pyast.DottedName(dec)
			if !ok {
				continue
			}
			if _, marked := abstractMethodMarkers[name]; marked {
				facts.AbstractMembers[member.Name] = struct{}{}
			}
		}
	}

	return facts
}

// Lookup returns the facts for a class name visible in this module.
func (r *Registry) Lookup(name string) (*ClassFacts, bool) {
	facts, ok := r.classes[name]
	return facts, ok
}

// Len reports the number of registered classes.
func (r *Registry) Len() int {
	return len(r.classes)
}

// IsAbstract reports whether the named class is abstract: it defines an
// abstract member, carries a recognized marker among its decorators or base
// refs, or has a base registered in this module that is itself abstract.
// Names that resolve neither in the registry nor as a marker count as
// concrete, so unknown external classes never justify a report. A base
// chain cycle terminates as concrete for the revisited name.
func (r *Registry) IsAbstract(name string) bool {
	return r.isAbstract(name, make(map[string]bool))
}

func (r *Registry) isAbstract(name string, visited map[string]bool) bool {
	if visited[name] {
		return false
	}
	visited[name] = true

	facts, ok := r.classes[name]
	if !ok {
		return false
	}
	if facts.HasAbstractMember() {
		return true
	}
	for dec := range facts.Decorators {
		if _, marked := abstractBaseMarkers[dec]; marked {
			return true
		}
	}
	for _, base := range facts.BaseRefs {
		if _, marked := abstractBaseMarkers[base]; marked {
			return true
		}
	}
	for _, base := range facts.BaseRefs {
		if _, known := r.classes[base]; !known {
			continue
		}
		if r.isAbstract(base, visited) {
			return true
		}
	}
	return false
}
