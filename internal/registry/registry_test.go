package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pylin-dev/pylin/internal/pyast"
)

func classDef(name string, opts ...func(*pyast.ClassDef)) *pyast.ClassDef {
	def := &pyast.ClassDef{Name: name}
	for _, opt := range opts {
		opt(def)
	}
	return def
}

func withBase(parts ...string) func(*pyast.ClassDef) {
	return func(def *pyast.ClassDef) {
		var expr pyast.Expr = &pyast.Name{ID: parts[0]}
		for _, attr := range parts[1:] {
			expr = &pyast.Attribute{Value: expr, Attr: attr}
		}
		def.Bases = append(def.Bases, expr)
	}
}

func withMetaclass(parts ...string) func(*pyast.ClassDef) {
	return func(def *pyast.ClassDef) {
		var expr pyast.Expr = &pyast.Name{ID: parts[0]}
		for _, attr := range parts[1:] {
			expr = &pyast.Attribute{Value: expr, Attr: attr}
		}
		def.Keywords = append(def.Keywords, pyast.Keyword{Arg: "metaclass", Value: expr})
	}
}

func withAbstractMethod(name string) func(*pyast.ClassDef) {
	return func(def *pyast.ClassDef) {
		def.Body = append(def.Body, &pyast.FunctionDef{
			Name: name,
			Decorators: []pyast.Expr{
				&pyast.Attribute{Value: &pyast.Name{ID: "abc"}, Attr: "abstractmethod"},
			},
		})
	}
}

func withMethod(name string) func(*pyast.ClassDef) {
	return func(def *pyast.ClassDef) {
		def.Body = append(def.Body, &pyast.FunctionDef{Name: name})
	}
}

func moduleOf(stmts ...pyast.Stmt) *pyast.Module {
	return &pyast.Module{Body: stmts}
}

func TestBuild(t *testing.T) {
	t.Parallel()
	mod := moduleOf(
		classDef("Animal", withBase("abc", "ABC"), withAbstractMethod("make_sound")),
		classDef("Sheep", withBase("Animal"), withMethod("make_sound")),
		&pyast.ExprStmt{X: &pyast.Call{Func: &pyast.Name{ID: "Animal"}}},
	)

	reg := Build(mod)
	require.Equal(t, 2, reg.Len())

	animal, ok := reg.Lookup("Animal")
	require.True(t, ok)
	assert.Equal(t, []string{"abc.ABC"}, animal.BaseRefs)
	assert.True(t, animal.HasAbstractMember())
	assert.Contains(t, animal.AbstractMembers, "make_sound")

	sheep, ok := reg.Lookup("Sheep")
	require.True(t, ok)
	assert.Equal(t, []string{"Animal"}, sheep.BaseRefs)
	assert.False(t, sheep.HasAbstractMember())
	assert.Contains(t, sheep.Members, "make_sound")
}

func TestBuildNestedClasses(t *testing.T) {
	t.Parallel()
	inner := classDef("Inner", withBase("abc", "ABC"))
	outer := classDef("Outer")
	outer.Body = append(outer.Body, inner)

	reg := Build(moduleOf(outer))
	assert.Equal(t, 2, reg.Len())

	_, ok := reg.Lookup("Inner")
	assert.True(t, ok)
}

func TestBuildDefaultsForBareClass(t *testing.T) {
	t.Parallel()
	reg := Build(moduleOf(classDef("Plain")))

	facts, ok := reg.Lookup("Plain")
	require.True(t, ok)
	assert.Empty(t, facts.BaseRefs)
	assert.Empty(t, facts.Decorators)
	assert.Empty(t, facts.Members)
	assert.False(t, facts.HasAbstractMember())
}

func TestIsAbstract(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		module   *pyast.Module
		class    string
		abstract bool
	}{
		{
			name:     "no bases, no decorators, no abstract members",
			module:   moduleOf(classDef("Plain")),
			class:    "Plain",
			abstract: false,
		},
		{
			name:     "inherits abc.ABC",
			module:   moduleOf(classDef("Vehicle", withBase("abc", "ABC"))),
			class:    "Vehicle",
			abstract: true,
		},
		{
			name:     "inherits bare ABC",
			module:   moduleOf(classDef("Vehicle", withBase("ABC"))),
			class:    "Vehicle",
			abstract: true,
		},
		{
			name:     "metaclass abc.ABCMeta",
			module:   moduleOf(classDef("Mammal", withMetaclass("abc", "ABCMeta"), withAbstractMethod("make_sound"))),
			class:    "Mammal",
			abstract: true,
		},
		{
			name:     "abstract member without marker base",
			module:   moduleOf(classDef("Animal", withAbstractMethod("make_sound"))),
			class:    "Animal",
			abstract: true,
		},
		{
			name: "transitively abstract through local base",
			module: moduleOf(
				classDef("Animal", withBase("abc", "ABC"), withAbstractMethod("make_sound")),
				classDef("Mammal", withBase("Animal")),
				classDef("Dog", withBase("Mammal")),
			),
			class:    "Dog",
			abstract: true,
		},
		{
			name:     "unknown external base assumed concrete",
			module:   moduleOf(classDef("Widget", withBase("framework", "Base"))),
			class:    "Widget",
			abstract: false,
		},
		{
			name:     "unknown class name",
			module:   moduleOf(classDef("Known")),
			class:    "Missing",
			abstract: false,
		},
		{
			name:     "self cycle terminates",
			module:   moduleOf(classDef("Ouroboros", withBase("Ouroboros"))),
			class:    "Ouroboros",
			abstract: false,
		},
		{
			name: "mutual cycle terminates",
			module: moduleOf(
				classDef("A", withBase("B")),
				classDef("B", withBase("A")),
			),
			class:    "A",
			abstract: false,
		},
		{
			name: "cycle with independent abstract evidence",
			module: moduleOf(
				classDef("A", withBase("B")),
				classDef("B", withBase("A"), withAbstractMethod("run")),
			),
			class:    "A",
			abstract: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := Build(tt.module)
			assert.Equal(t, tt.abstract, reg.IsAbstract(tt.class))
		})
	}
}

func TestIsAbstractIsDeterministic(t *testing.T) {
	t.Parallel()
	mod := moduleOf(
		classDef("Animal", withBase("abc", "ABC"), withAbstractMethod("make_sound")),
		classDef("Sheep", withBase("Animal")),
	)
	reg := Build(mod)

	first := reg.IsAbstract("Sheep")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, reg.IsAbstract("Sheep"))
	}
	assert.True(t, first)
}
