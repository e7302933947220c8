package lints

import (
	"fmt"

	"github.com/pylin-dev/pylin/internal/pyast"
	"github.com/pylin-dev/pylin/internal/registry"
	tt "github.com/pylin-dev/pylin/internal/types"
)

const AbstractClassInstantiatedRule = "abstract-class-instantiated"

type abstractClassInstantiated struct {
	name string
}

func (v abstractClassInstantiated) message() string {
	return fmt.Sprintf("class %q is abstract and should not be instantiated", v.name)
}

// DetectAbstractClassInstantiated reports call expressions that instantiate
// a class the registry knows to be abstract. Callees that do not resolve to
// a registered class (imported names, aliases, dynamic expressions) are
// skipped: abstractness cannot be established for them, and a missed report
// is preferred over a false one.
func DetectAbstractClassInstantiated(
	filename string,
	mod *pyast.Module,
	reg *registry.Registry,
	severity tt.Severity,
) ([]tt.Issue, error) {
	if reg == nil {
		return nil, nil
	}
	var issues []tt.Issue
	pyast.Inspect(mod, func(n pyast.Node) bool {
		call, ok := n.(*pyast.Call)
		if !ok {
			return true
		}
		checkCall(filename, call, reg, severity, &issues)
		return true
	})
	return issues, nil
}

func checkCall(filename string, call *pyast.Call, reg *registry.Registry, severity tt.Severity, issues *[]tt.Issue) {
	name, ok := pyast.DottedName(call.Func)
	if !ok {
		return
	}
	if _, known := reg.Lookup(name); !known {
		return
	}
	if !reg.IsAbstract(name) {
		return
	}
	v := abstractClassInstantiated{name: name}
	*issues = append(*issues, tt.Issue{
		Rule:     AbstractClassInstantiatedRule,
		Category: "classes",
		Filename: filename,
		Message:  v.message(),
		Start:    call.Pos(),
		End:      call.End(),
		Severity: severity,
	})
}
