package typesys

// IsSubtype reports whether every inhabitant of sub is an inhabitant of
// super. Forward references are resolved one level first. The universal
// type and the root class accept everything; parameterized containers
// compare their arguments covariantly after ascending the ancestry,
// callables contravariantly in their parameters.
func IsSubtype(sub, super Type) (bool, error) {
	var err error
	if sub, err = ResolveOuter(sub, nil); err != nil {
		return false, err
	}
	if super, err = ResolveOuter(super, nil); err != nil {
		return false, err
	}
	sub = unwrapAnnotated(sub)
	super = unwrapAnnotated(super)

	if _, ok := sub.(anyType); ok {
		return true, nil
	}
	if _, ok := super.(anyType); ok {
		return true, nil
	}
	if super == Object {
		return true, nil
	}

	// Bare special forms constrain nothing.
	if b, ok := super.(*GenericBase); ok {
		switch b {
		case Union, Optional, Literal, Generic, ClassVar, Final, Annotated:
			return true, nil
		}
	}

	// A union on the left must be covered member by member.
	if p, ok := sub.(Parameterized); ok && p.Base == Union {
		for _, alt := range p.Args {
			match, err := IsSubtype(alt, super)
			if err != nil {
				return false, err
			}
			if !match {
				return false, nil
			}
		}
		return true, nil
	}

	if p, ok := super.(Parameterized); ok {
		switch p.Base {
		case Union:
			return subtypeOfAny(sub, p.Args)
		case Literal:
			return subtypeOfLiteral(sub, p.Args)
		case ClassVar, Final:
			return IsSubtype(sub, p.Args[0])
		case TypeOf, NativeType:
			return subtypeOfTypeOf(sub, p.Args[0])
		case Callable, NativeCallable:
			return subtypeOfCallable(sub, p)
		}
	}

	// Literal values on the left reduce to instance checks.
	if p, ok := sub.(Parameterized); ok && p.Base == Literal {
		for _, arg := range p.Args {
			v, isValue := arg.(Value)
			if !isValue {
				if arg == NoneType {
					if match, err := IsSubtype(NoneType, super); err != nil || !match {
						return match, err
					}
					continue
				}
				return false, &UnsupportedError{Ident: arg}
			}
			match, err := IsInstance(v.V, super)
			if err != nil {
				return false, err
			}
			if !match {
				return false, nil
			}
		}
		return true, nil
	}

	if v, ok := sub.(*TypeVar); ok {
		if typesEqual(sub, super) {
			return true, nil
		}
		if v.Bound != nil {
			return IsSubtype(v.Bound, super)
		}
		for _, c := range v.Constraints {
			match, err := IsSubtype(c, super)
			if err != nil {
				return false, err
			}
			if !match {
				return false, nil
			}
		}
		return len(v.Constraints) > 0, nil
	}
	if _, ok := super.(*TypeVar); ok {
		return typesEqual(sub, super), nil
	}

	switch sp := super.(type) {
	case *Class, *GenericBase:
		return nominalSubclass(sub, super)
	case Parameterized:
		return subtypeOfParameterized(sub, sp)
	default:
		return false, &UnsupportedError{Ident: super}
	}
}

func unwrapAnnotated(t Type) Type {
	for {
		p, ok := t.(Parameterized)
		if !ok || p.Base != Annotated || len(p.Args) == 0 {
			return t
		}
		t = p.Args[0]
	}
}

func subtypeOfAny(sub Type, alts []Type) (bool, error) {
	var deferred error
	for _, alt := range alts {
		match, err := IsSubtype(sub, alt)
		if err != nil {
			if deferred == nil {
				deferred = err
			}
			continue
		}
		if match {
			return true, nil
		}
	}
	return false, deferred
}

// subtypeOfLiteral: only a literal set can sit below a literal set, and
// its values must all be members.
func subtypeOfLiteral(sub Type, values []Type) (bool, error) {
	p, ok := sub.(Parameterized)
	if !ok || p.Base != Literal {
		return false, nil
	}
	for _, arg := range p.Args {
		found := false
		for _, want := range values {
			if typesEqual(arg, want) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

func subtypeOfTypeOf(sub Type, inner Type) (bool, error) {
	switch st := sub.(type) {
	case Parameterized:
		if st.Base == TypeOf || st.Base == NativeType {
			return IsSubtype(st.Args[0], inner)
		}
		return false, nil
	case *GenericBase:
		if st == TypeOf || st == NativeType {
			return isUnconstrained(inner), nil
		}
		return false, nil
	case *Class:
		if st == TypeClass {
			return isUnconstrained(inner), nil
		}
		return false, nil
	default:
		return false, nil
	}
}

func isUnconstrained(t Type) bool {
	if _, ok := t.(anyType); ok {
		return true
	}
	return t == Object
}

// subtypeOfCallable compares callable shapes: parameters are
// contravariant, the return type covariant. An unconstrained parameter
// list on the right accepts any parameters on the left; on the left it
// fits any requirement.
func subtypeOfCallable(sub Type, super Parameterized) (bool, error) {
	var sp Parameterized
	switch st := sub.(type) {
	case Parameterized:
		if st.Base != Callable && st.Base != NativeCallable {
			return nominalCallable(sub, super)
		}
		sp = st
	case *GenericBase:
		if st == Callable || st == NativeCallable {
			// Bare callable: parameters and return unknown, so only an
			// unconstrained requirement is satisfied.
			return len(super.Args) == 2 && super.Args[0] == Ellipsis && isUnconstrained(super.Args[1]), nil
		}
		return nominalCallable(sub, super)
	default:
		return nominalCallable(sub, super)
	}
	return callableSubtype(sp, super)
}

// nominalCallable covers classes whose instances are callable, like the
// function class, against an unconstrained requirement.
func nominalCallable(sub Type, super Parameterized) (bool, error) {
	ok, err := nominalSubclass(sub, super.Base)
	if err != nil || !ok {
		return false, err
	}
	return len(super.Args) == 2 && super.Args[0] == Ellipsis, nil
}

func callableSubtype(sub, super Parameterized) (bool, error) {
	if len(sub.Args) != 2 || len(super.Args) != 2 {
		return false, nil
	}
	// Covariant return.
	match, err := IsSubtype(sub.Args[1], super.Args[1])
	if err != nil || !match {
		return false, err
	}
	if super.Args[0] == Ellipsis {
		return true, nil
	}
	if sub.Args[0] == Ellipsis {
		return true, nil
	}
	subParams, okSub := sub.Args[0].(ParamList)
	superParams, okSuper := super.Args[0].(ParamList)
	if !okSub || !okSuper {
		return false, nil
	}
	if len(subParams.Params) != len(superParams.Params) {
		return false, nil
	}
	// Contravariant parameters.
	for i, sp := range subParams.Params {
		match, err := IsSubtype(superParams.Params[i], sp)
		if err != nil || !match {
			return false, err
		}
	}
	return true, nil
}

// subtypeOfParameterized ascends sub's ancestry to the right-hand base
// and compares the arguments it carries there.
func subtypeOfParameterized(sub Type, super Parameterized) (bool, error) {
	if super.Base == Tuple || super.Base == NativeTuple {
		return subtypeOfTuple(sub, super)
	}
	args, ok, err := argumentsAt(sub, super.Base)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	n := len(super.Args)
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		match, err := IsSubtype(args[i], super.Args[i])
		if err != nil || !match {
			return false, err
		}
	}
	return true, nil
}

func subtypeOfTuple(sub Type, super Parameterized) (bool, error) {
	sp, ok := sub.(Parameterized)
	if !ok || sp.Base != Tuple && sp.Base != NativeTuple {
		// An unparameterized tuple only fits the homogeneous-Any form.
		nominal, err := nominalSubclass(sub, super.Base)
		if err != nil || !nominal {
			return false, err
		}
		return len(super.Args) == 2 && super.Args[1] == Ellipsis && isUnconstrained(super.Args[0]), nil
	}
	subHomo := len(sp.Args) == 2 && sp.Args[1] == Ellipsis
	superHomo := len(super.Args) == 2 && super.Args[1] == Ellipsis
	switch {
	case superHomo && subHomo:
		return IsSubtype(sp.Args[0], super.Args[0])
	case superHomo:
		for _, arg := range sp.Args {
			match, err := IsSubtype(arg, super.Args[0])
			if err != nil || !match {
				return false, err
			}
		}
		return true, nil
	case subHomo:
		return false, nil
	default:
		if len(sp.Args) != len(super.Args) {
			return false, nil
		}
		for i, arg := range sp.Args {
			match, err := IsSubtype(arg, super.Args[i])
			if err != nil || !match {
				return false, err
			}
		}
		return true, nil
	}
}

// argumentsAt walks sub's ancestry until it reaches target and returns
// the type arguments sub supplies there, with Any filled in for slots
// it never parameterizes.
func argumentsAt(sub Type, target Type) ([]Type, bool, error) {
	r := DefaultRegistry()
	if _, _, ok := splitIdent(sub); !ok {
		return nil, false, &UnsupportedError{Ident: sub}
	}
	seen := map[Type]bool{}
	frontier := []Type{sub}
	for len(frontier) > 0 {
		t := frontier[0]
		frontier = frontier[1:]
		ident, args, ok := splitIdent(t)
		if !ok {
			continue
		}
		if sameIdent(ident, target) {
			if args == nil {
				params, err := r.TypeParameters(ident)
				if err == nil {
					args = make([]Type, len(params))
					for i := range args {
						args[i] = Any
					}
				}
			}
			return args, true, nil
		}
		if seen[ident] {
			continue
		}
		seen[ident] = true
		parents, err := r.Parents(t)
		if err != nil {
			continue
		}
		frontier = append(frontier, parents...)
	}
	return nil, false, nil
}

// nominalSubclass walks sub's ancestry, vocabulary counterparts
// included, looking for super.
func nominalSubclass(sub Type, super Type) (bool, error) {
	return DefaultRegistry().nominalSubclass(sub, super)
}

func (r *Registry) nominalSubclass(sub Type, super Type) (bool, error) {
	if isUnconstrained(super) {
		return true, nil
	}
	// A sub with no nominal identity cannot be compared, only refused.
	if _, _, ok := splitIdent(sub); !ok {
		return false, &UnsupportedError{Ident: sub}
	}
	seen := map[Type]bool{}
	frontier := []Type{sub}
	for len(frontier) > 0 {
		t := frontier[0]
		frontier = frontier[1:]
		ident, _, ok := splitIdent(t)
		if !ok {
			continue
		}
		if sameIdent(ident, super) {
			return true, nil
		}
		if seen[ident] {
			continue
		}
		seen[ident] = true
		parents, err := r.Parents(t)
		if err != nil {
			continue
		}
		frontier = append(frontier, parents...)
	}
	return false, nil
}

// sameIdent says whether two nominal identities denote the same shape:
// a base equals its vocabulary counterpart and its concrete class.
func sameIdent(a, b Type) bool {
	for _, x := range identAliases(a) {
		for _, y := range identAliases(b) {
			if x == y {
				return true
			}
		}
	}
	return false
}

func identAliases(t Type) []Type {
	out := []Type{t}
	switch tt := t.(type) {
	case *GenericBase:
		if tt.counterpart != nil {
			out = append(out, tt.counterpart)
		}
		if tt.Class != nil {
			out = append(out, tt.Class)
		}
	case *Class:
		if tt.generic != nil {
			out = append(out, tt.generic)
			if tt.generic.counterpart != nil {
				out = append(out, tt.generic.counterpart)
			}
		}
	}
	return out
}
