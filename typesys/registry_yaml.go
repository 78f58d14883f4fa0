package typesys

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExtensionTable is the YAML form of user-declared generic ancestry.
// Each entry declares a shape, its formal parameters and the generic
// parents it supplies arguments for:
//
//	types:
//	  - name: StringMap
//	    params: [V]
//	    parents:
//	      - base: Mapping
//	        args: [str, V]
type ExtensionTable struct {
	Types []ExtensionType `yaml:"types"`
}

// ExtensionType declares one shape of the table.
type ExtensionType struct {
	Name    string            `yaml:"name"`
	Params  []string          `yaml:"params"`
	Parents []ExtensionParent `yaml:"parents"`
}

// ExtensionParent names one generic parent and the arguments supplied
// for its parameters. Arguments are type expressions; a bare name that
// matches one of the declaring shape's params refers to that parameter.
type ExtensionParent struct {
	Base string   `yaml:"base"`
	Args []string `yaml:"args"`
}

// ParseExtensionTable decodes and validates a YAML extension table.
func ParseExtensionTable(data []byte) (*ExtensionTable, error) {
	var t ExtensionTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse extension table: %w", err)
	}
	for i, et := range t.Types {
		if et.Name == "" {
			return nil, fmt.Errorf("extension table: type %d has no name", i)
		}
		seen := map[string]bool{}
		for _, p := range et.Params {
			if p == "" {
				return nil, fmt.Errorf("extension table: type %q has an empty param", et.Name)
			}
			if seen[p] {
				return nil, fmt.Errorf("extension table: type %q repeats param %q", et.Name, p)
			}
			seen[p] = true
		}
		for _, parent := range et.Parents {
			if parent.Base == "" {
				return nil, fmt.Errorf("extension table: type %q has a parent with no base", et.Name)
			}
		}
	}
	return &t, nil
}

// Resolve materializes the table against a namespace: every declared
// shape becomes a class with its own generic base, bound into the
// namespace under its name so siblings can reference each other, and
// the result plugs straight into Registry.WithExtension.
func (t *ExtensionTable) Resolve(ns *Namespace) (map[Type][]Ancestor, error) {
	if ns == nil {
		ns = NewNamespace("extension")
	}

	type declared struct {
		base   *GenericBase
		params map[string]*TypeVar
	}
	shapes := make(map[string]declared, len(t.Types))

	// First pass: declare every shape so parent expressions can refer
	// to any of them regardless of order.
	for _, et := range t.Types {
		params := make([]*TypeVar, len(et.Params))
		byName := make(map[string]*TypeVar, len(et.Params))
		for i, name := range et.Params {
			v := NewTypeVar(name)
			params[i] = v
			byName[name] = v
		}
		cls := NewClass(et.Name, Object)
		base := &GenericBase{Name: et.Name, Class: cls, declared: params}
		cls.generic = base
		shapes[et.Name] = declared{base: base, params: byName}
		ns.Bind(et.Name, base)
	}

	out := make(map[Type][]Ancestor, len(t.Types))
	res := &resolver{ns: ns, mode: ModeExpr, strict: true}
	for _, et := range t.Types {
		shape := shapes[et.Name]
		ancestors := make([]Ancestor, 0, len(et.Parents))
		for _, parent := range et.Parents {
			baseType, err := res.resolveRef(Ref(parent.Base, ns))
			if err != nil {
				return nil, fmt.Errorf("extension table: type %q: %w", et.Name, err)
			}
			ident, _, ok := splitIdent(baseType)
			if !ok {
				return nil, fmt.Errorf("extension table: type %q: parent %q is not a generic", et.Name, parent.Base)
			}
			args := make([]Type, len(parent.Args))
			for i, src := range parent.Args {
				if v, isParam := shape.params[src]; isParam {
					args[i] = v
					continue
				}
				arg, err := res.resolveRef(Ref(src, ns))
				if err != nil {
					return nil, fmt.Errorf("extension table: type %q: %w", et.Name, err)
				}
				args[i] = arg
			}
			ancestors = append(ancestors, Ancestor{Base: ident, Args: args})
		}
		out[shape.base] = ancestors
	}
	return out, nil
}
