package typesys

// The two vocabularies render the same shapes differently; this file
// converts between them. Special forms (Union, Optional, Literal and
// the qualifiers) exist only in the verbose vocabulary: converting them
// to native fails in strict mode and otherwise passes them through with
// their constituents converted.

// nameToBase maps the textual rendering of a generic base to the base
// itself, per vocabulary, so that name-form input converts too.
var nameToBase map[Vocabulary]map[string]*GenericBase

func init() {
	nameToBase = map[Vocabulary]map[string]*GenericBase{
		Native:  {},
		Verbose: {},
	}
	for _, pair := range counterpartPairs {
		native, verbose := pair[0], pair[1]
		nameToBase[Native][native.Name] = native
		nameToBase[Native][verbose.Name] = native
		nameToBase[Verbose][verbose.Name] = verbose
		nameToBase[Verbose][native.Name] = verbose
	}
	// "Set" names both the mutable set and the abstract set; the
	// builtin container wins, same as a bare name lookup would.
	nameToBase[Native]["Set"] = NativeSet
	nameToBase[Verbose]["Set"] = Set
}

// ToNative rewrites every verbose generic in t into its native
// counterpart, recursing through type arguments and parameter lists.
// Shapes with no native rendering fail when strict is set.
func ToNative(t Type, strict bool) (Type, error) {
	return convertVocab(t, Native, strict)
}

// ToVerbose rewrites every native generic in t into its verbose
// counterpart. It also accepts name-form input, so a forward reference
// like "list" converts to the List shape.
func ToVerbose(t Type, strict bool) (Type, error) {
	return convertVocab(t, Verbose, strict)
}

func convertVocab(t Type, target Vocabulary, strict bool) (Type, error) {
	switch tt := t.(type) {
	case *GenericBase:
		return convertBase(tt, target, strict)
	case Parameterized:
		if tt.Base == Literal {
			if target == Native && strict {
				return nil, noEquivalentErr(tt, target)
			}
			return tt, nil
		}
		base, err := convertBase(tt.Base, target, strict)
		if err != nil {
			return nil, err
		}
		args := make([]Type, len(tt.Args))
		for i, arg := range tt.Args {
			conv, err := convertVocab(arg, target, strict)
			if err != nil {
				return nil, err
			}
			args[i] = conv
		}
		newBase, isBase := base.(*GenericBase)
		if !isBase {
			return tt, nil
		}
		if redundantArgs(newBase, args) {
			return newBase, nil
		}
		return Apply(newBase, args...), nil
	case ParamList:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			conv, err := convertVocab(p, target, strict)
			if err != nil {
				return nil, err
			}
			params[i] = conv
		}
		return ParamList{Params: params}, nil
	case ForwardRef:
		if base, ok := nameToBase[target][tt.Code]; ok {
			return base, nil
		}
		if strict {
			return nil, noEquivalentErr(tt, target)
		}
		return tt, nil
	default:
		return t, nil
	}
}

// convertBase converts a single generic base. Special forms have no
// counterpart: converting to native is an error in strict mode and a
// passthrough otherwise; they are already verbose.
func convertBase(b *GenericBase, target Vocabulary, strict bool) (Type, error) {
	if b.Vocab == target {
		return b, nil
	}
	if cp := b.Counterpart(); cp != nil {
		return cp, nil
	}
	if strict {
		return nil, noEquivalentErr(b, target)
	}
	return b, nil
}

// redundantArgs reports whether a converted argument list constrains
// nothing, so the bare base renders the same shape: all-Any arguments
// for fixed-arity containers, an unconstrained parameter list and
// return for callables, the universal or root type for type-of.
func redundantArgs(base *GenericBase, args []Type) bool {
	switch base {
	case Callable, NativeCallable:
		return len(args) == 2 && args[0] == Ellipsis && isUnconstrained(args[1])
	case TypeOf, NativeType:
		return len(args) == 1 && isUnconstrained(args[0])
	}
	if base.Variadic || len(args) == 0 {
		return false
	}
	for _, a := range args {
		if _, ok := a.(anyType); !ok {
			return false
		}
	}
	return true
}

func noEquivalentErr(t Type, target Vocabulary) error {
	if target == Native {
		return &NoNativeEquivalentError{Type: t}
	}
	return &NoVerboseEquivalentError{Type: t}
}
