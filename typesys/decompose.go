package typesys

import "errors"

// GenericBaseOf returns the generic base of a parameterized type. A
// union whose arguments collapse to a single non-null alternative is
// reported as optional-of so that base and argument reporting stay
// mutually consistent. Nested unions are flattened and duplicates
// removed before the null type is stripped.
func GenericBaseOf(t Type) (*GenericBase, error) {
	p, ok := t.(Parameterized)
	if !ok {
		return nil, &NotAParameterizedGenericError{Type: t}
	}
	if p.Base == Union {
		if _, collapses := collapseUnionArgs(p.Args); collapses {
			return Optional, nil
		}
	}
	return p.Base, nil
}

// TypeArgumentsOf returns the ordered type arguments of a parameterized
// type, applying the same null-collapsing rule as GenericBaseOf. For
// callable shapes the result is the pair (parameter-list-or-ellipsis,
// return type).
func TypeArgumentsOf(t Type) ([]Type, error) {
	p, ok := t.(Parameterized)
	if !ok {
		return nil, &NotAParameterizedGenericError{Type: t}
	}
	if p.Base == Union {
		if rest, collapses := collapseUnionArgs(p.Args); collapses {
			return rest, nil
		}
	}
	return append([]Type{}, p.Args...), nil
}

// TypeParametersOf returns the formal type parameters of a generic
// against the default registry. See Registry.TypeParameters.
func TypeParametersOf(t Type) ([]*TypeVar, error) {
	return DefaultRegistry().TypeParameters(t)
}

// TypeParameters returns the type parameters of a generic. For a generic
// base the registry entry is consulted first and the shape's own declared
// metadata second. For a parameterized generic the result is the
// arguments' still-free variables, deduplicated in first-occurrence order,
// threading through nested shapes. Non-generic input is a
// NotAGenericError.
func (r *Registry) TypeParameters(t Type) ([]*TypeVar, error) {
	switch tt := t.(type) {
	case *GenericBase:
		if params, ok := r.params(tt); ok {
			return params, nil
		}
		if tt.declared != nil {
			return append([]*TypeVar{}, tt.declared...), nil
		}
		return nil, &NotAGenericError{Type: t}
	case *Class:
		if params, ok := r.params(tt); ok {
			return params, nil
		}
		if tt.generic != nil {
			return r.TypeParameters(tt.generic)
		}
		return nil, &NotAGenericError{Type: t}
	case Parameterized:
		params := []*TypeVar{}
		for _, arg := range tt.Args {
			for _, v := range freeTypeVars(arg) {
				dup := false
				for _, p := range params {
					if p.id == v.id {
						dup = true
						break
					}
				}
				if !dup {
					params = append(params, v)
				}
			}
		}
		return params, nil
	default:
		return nil, &NotAGenericError{Type: t}
	}
}

// ParentTypes returns the immediate structural ancestors of a type
// against the default registry. See Registry.Parents.
func ParentTypes(t Type) ([]Type, error) {
	return DefaultRegistry().Parents(t)
}

// Parents returns the immediate structural ancestors of a type. Generic
// ancestors that the input doesn't itself parameterize are synthesized
// fully parameterized with Any: inheriting from a generic without
// supplying arguments is equivalent to supplying Any for every slot.
func (r *Registry) Parents(t Type) ([]Type, error) {
	links, err := r.parentLinks(t, false)
	if err != nil {
		return nil, err
	}
	out := make([]Type, 0, len(links))
	for _, link := range links {
		base, isBase := link.base.(*GenericBase)
		if !isBase || len(link.args) == 0 {
			out = append(out, link.base)
			continue
		}
		args := make([]Type, len(link.args))
		for i, arg := range link.args {
			if arg == nil {
				arg = Any
			}
			args[i] = arg
		}
		out = append(out, Apply(base, args...))
	}
	return out, nil
}

// parentLink is one edge of the ancestry walk: the ancestor identity,
// its formal parameters and the arguments the child supplies for them.
// A nil argument means the child supplied nothing for that slot.
type parentLink struct {
	base   Type
	params []*TypeVar
	args   []Type
}

// parentLinks computes the immediate ancestor edges of a type. When
// forTrace is set, an unparameterized generic base forwards its own
// formal variables instead of collapsing them to Any, so that a tracer
// can chain substitutions across frames.
func (r *Registry) parentLinks(t Type, forTrace bool) ([]parentLink, error) {
	ident, supplied, ok := splitIdent(t)
	if !ok {
		return nil, &NotAGenericError{Type: t}
	}

	entries, found := r.lookup(ident)
	if !found {
		if cls, isClass := ident.(*Class); isClass {
			if cls.generic != nil {
				if e, ok := r.lookup(cls.generic); ok {
					ident, entries, found = cls.generic, e, true
				}
			}
			if !found {
				links := make([]parentLink, 0, len(cls.Bases))
				for _, base := range cls.Bases {
					links = append(links, parentLink{base: base})
				}
				return links, nil
			}
		}
	}
	if !found {
		return nil, nil
	}

	params, err := r.TypeParameters(ident)
	if err != nil {
		var notGeneric *NotAGenericError
		if !errors.As(err, &notGeneric) {
			return nil, err
		}
	}

	subst := Subst{}
	for i, p := range params {
		switch {
		case supplied != nil && i < len(supplied):
			subst[p.id] = supplied[i]
		case !forTrace:
			subst[p.id] = Any
		}
	}

	links := make([]parentLink, 0, len(entries))
	for _, anc := range entries {
		ancParams, perr := r.TypeParameters(anc.Base)
		if perr != nil {
			ancParams = nil
		}
		args := make([]Type, len(anc.Args))
		for i, arg := range anc.Args {
			args[i] = applySubst(arg, subst)
		}
		// Pad slots the child never filled.
		for len(args) < len(ancParams) {
			if forTrace {
				args = append(args, nil)
			} else {
				args = append(args, Any)
			}
		}
		links = append(links, parentLink{base: anc.Base, params: ancParams, args: args})
	}
	return links, nil
}

// splitIdent splits a type into its nominal identity and any supplied
// arguments.
func splitIdent(t Type) (Type, []Type, bool) {
	switch tt := t.(type) {
	case Parameterized:
		return tt.Base, tt.Args, true
	case *GenericBase:
		return tt, nil, true
	case *Class:
		return tt, nil, true
	default:
		return nil, nil, false
	}
}
