package pyast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDottedName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expr     Expr
		expected string
		ok       bool
	}{
		{
			name:     "bare name",
			expr:     &Name{ID: "Animal"},
			expected: "Animal",
			ok:       true,
		},
		{
			name:     "single attribute",
			expr:     &Attribute{Value: &Name{ID: "abc"}, Attr: "ABC"},
			expected: "abc.ABC",
			ok:       true,
		},
		{
			name: "nested attribute",
			expr: &Attribute{
				Value: &Attribute{Value: &Name{ID: "a"}, Attr: "b"},
				Attr:  "c",
			},
			expected: "a.b.c",
			ok:       true,
		},
		{
			name: "call in the chain",
			expr: &Attribute{Value: &Call{Func: &Name{ID: "f"}}, Attr: "cls"},
			ok:   false,
		},
		{
			name: "bad expression",
			expr: &BadExpr{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := DottedName(tt.expr)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()
	mod := &Module{
		Body: []Stmt{
			&ClassDef{
				Name:  "Animal",
				Bases: []Expr{&Attribute{Value: &Name{ID: "abc"}, Attr: "ABC"}},
				Body: []Stmt{
					&FunctionDef{
						Name:       "make_sound",
						Decorators: []Expr{&Name{ID: "abstractmethod"}},
					},
				},
			},
			&ExprStmt{X: &Call{Func: &Name{ID: "Animal"}}},
		},
	}

	var calls int
	var names []string
	Inspect(mod, func(n Node) bool {
		if name, ok := n.(*Name); ok {
			names = append(names, name.ID)
		}
		if call, ok := n.(*Call); ok {
			_ = call
			calls++
		}
		return true
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"abstractmethod", "abc", "Animal"}, names)
}

func TestInspectPrune(t *testing.T) {
	t.Parallel()
	mod := &Module{
		Body: []Stmt{
			&ClassDef{
				Name: "Outer",
				Body: []Stmt{&ExprStmt{X: &Call{Func: &Name{ID: "hidden"}}}},
			},
		},
	}

	var visited []string
	Inspect(mod, func(n Node) bool {
		if class, ok := n.(*ClassDef); ok {
			visited = append(visited, class.Name)
			return false
		}
		if name, ok := n.(*Name); ok {
			visited = append(visited, name.ID)
		}
		return true
	})

	assert.Equal(t, []string{"Outer"}, visited)
}
