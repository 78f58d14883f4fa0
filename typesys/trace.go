package typesys

import "fmt"

// unsetVar marks an ancestor slot the traced type never filled. It only
// exists inside a trace; callers never see it.
type unsetVar struct {
	v *TypeVar
}

func (u unsetVar) String() string { return fmt.Sprintf("<unset %s>", u.v) }
func (u unsetVar) Equal(other Type) bool {
	o, ok := other.(unsetVar)
	return ok && o.v == u.v
}
func (u unsetVar) isType() {}

type traceOptions struct {
	param     *TypeVar
	assumeAny bool
	allowFree bool
}

// TraceOption adjusts how TypeArgumentFor reports its result.
type TraceOption func(*traceOptions)

// WithParameter selects which of the ancestor's type parameters to
// trace. Required when the ancestor declares more than one.
func WithParameter(v *TypeVar) TraceOption {
	return func(o *traceOptions) { o.param = v }
}

// WithoutAssumeAny makes slots the input never filled an error instead
// of Any.
func WithoutAssumeAny() TraceOption {
	return func(o *traceOptions) { o.assumeAny = false }
}

// AllowFreeParameter permits the traced argument to still be a type
// variable of the input itself.
func AllowFreeParameter() TraceOption {
	return func(o *traceOptions) { o.allowFree = true }
}

// TypeArgumentFor walks t's ancestry up to the given generic ancestor,
// chaining substitutions hop by hop, and returns the type argument t
// effectively supplies for the ancestor's chosen parameter. The input
// must actually descend from the ancestor.
func TypeArgumentFor(t Type, ancestor Type, opts ...TraceOption) (Type, error) {
	return DefaultRegistry().TypeArgumentFor(t, ancestor, opts...)
}

// TypeArgumentFor is the registry-aware form, for ancestry extended
// beyond the built-in table.
func (r *Registry) TypeArgumentFor(t Type, ancestor Type, opts ...TraceOption) (Type, error) {
	o := traceOptions{assumeAny: true}
	for _, opt := range opts {
		opt(&o)
	}

	ancestorIdent, _, ok := splitIdent(ancestor)
	if !ok {
		return nil, &NotAGenericError{Type: ancestor}
	}

	reaches, err := r.nominalSubclass(t, ancestorIdent)
	if err != nil {
		return nil, err
	}
	if !reaches {
		return nil, &SubtypeRequiredError{Type: t, Ancestor: ancestorIdent}
	}

	params, err := r.TypeParameters(ancestorIdent)
	if err != nil {
		return nil, err
	}
	idx, err := chooseParameter(params, o.param, ancestorIdent)
	if err != nil {
		return nil, err
	}

	args, err := r.traceAscent(t, ancestorIdent)
	if err != nil {
		return nil, err
	}

	var arg Type
	if idx < len(args) {
		arg = args[idx]
	} else {
		arg = unsetVar{v: params[idx]}
	}
	return finishTrace(arg, t, o)
}

func chooseParameter(params []*TypeVar, want *TypeVar, ancestor Type) (int, error) {
	if want == nil {
		if len(params) == 1 {
			return 0, nil
		}
		return 0, &ArgumentRequiredError{
			Argument: "parameter",
			Reason:   fmt.Sprintf("%s declares %d type parameters", ancestor, len(params)),
		}
	}
	for i, p := range params {
		if p.id == want.id {
			return i, nil
		}
	}
	return 0, &ArgumentRequiredError{
		Argument: "parameter",
		Reason:   fmt.Sprintf("%s is not a type parameter of %s", want, ancestor),
	}
}

// traceAscent climbs from t to the ancestor, substituting each hop's
// supplied arguments into the next, and returns the argument list as
// seen at the ancestor. Unfilled slots come back as unset markers.
func (r *Registry) traceAscent(t Type, ancestorIdent Type) ([]Type, error) {
	cur := t
	for hops := 0; ; hops++ {
		if hops > 1000 {
			return nil, &UnsupportedError{Ident: t}
		}
		ident, args, ok := splitIdent(cur)
		if !ok {
			return nil, &NotAGenericError{Type: cur}
		}
		if sameIdent(ident, ancestorIdent) {
			return args, nil
		}
		links, err := r.parentLinks(cur, true)
		if err != nil {
			return nil, err
		}
		next, found, err := r.pickLink(links, ancestorIdent)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, &SubtypeRequiredError{Type: t, Ancestor: ancestorIdent}
		}
		cur = next
	}
}

// pickLink selects the parent edge that still reaches the ancestor and
// materializes it as the next type to climb from.
func (r *Registry) pickLink(links []parentLink, ancestorIdent Type) (Type, bool, error) {
	for _, link := range links {
		if ok, err := r.nominalSubclass(link.base, ancestorIdent); err != nil {
			return nil, false, err
		} else if !ok {
			continue
		}
		base, isBase := link.base.(*GenericBase)
		if !isBase || len(link.args) == 0 {
			return link.base, true, nil
		}
		args := make([]Type, len(link.args))
		for i, arg := range link.args {
			if arg == nil {
				var v *TypeVar
				if i < len(link.params) {
					v = link.params[i]
				} else {
					v = NewTypeVar("_")
				}
				arg = unsetVar{v: v}
			}
			args[i] = arg
		}
		return Parameterized{Base: base, Args: args}, true, nil
	}
	return nil, false, nil
}

// finishTrace applies the reporting options: unset slots become Any or
// an error, free variables are an error unless permitted.
func finishTrace(arg Type, input Type, o traceOptions) (Type, error) {
	if u, ok := arg.(unsetVar); ok {
		if o.assumeAny {
			return Any, nil
		}
		return nil, &TypeVarNotSetError{Var: u.v, Type: input}
	}
	if u := firstUnset(arg); u != nil {
		if !o.assumeAny {
			return nil, &TypeVarNotSetError{Var: u.v, Type: input}
		}
		arg = replaceUnset(arg)
	}
	if v, ok := arg.(*TypeVar); ok && !o.allowFree {
		return nil, &NoConcreteTypeForTypeVarError{Var: v}
	}
	if !o.allowFree {
		if free := freeTypeVars(arg); len(free) > 0 {
			return nil, &NoConcreteTypeForTypeVarError{Var: free[0]}
		}
	}
	return arg, nil
}

func firstUnset(t Type) *unsetVar {
	switch tt := t.(type) {
	case unsetVar:
		return &tt
	case Parameterized:
		for _, arg := range tt.Args {
			if u := firstUnset(arg); u != nil {
				return u
			}
		}
	case ParamList:
		for _, p := range tt.Params {
			if u := firstUnset(p); u != nil {
				return u
			}
		}
	}
	return nil
}

func replaceUnset(t Type) Type {
	switch tt := t.(type) {
	case unsetVar:
		return Any
	case Parameterized:
		args := make([]Type, len(tt.Args))
		for i, arg := range tt.Args {
			args[i] = replaceUnset(arg)
		}
		return Parameterized{Base: tt.Base, Args: args}
	case ParamList:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = replaceUnset(p)
		}
		return ParamList{Params: params}
	default:
		return t
	}
}
