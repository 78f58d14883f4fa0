package typesys

import "errors"

// AsType normalizes arbitrary input into a type description: Type values
// pass through, strings become forward references, nil is the null type.
// Anything else is a NotATypeError.
func AsType(x any) (Type, error) {
	switch v := x.(type) {
	case nil:
		return NoneType, nil
	case string:
		return ForwardRef{Code: v}, nil
	case Type:
		switch v.(type) {
		case Value, ParamList:
			// Argument payloads, not types in their own right.
			return nil, newNotAType(x)
		}
		return v, nil
	default:
		return nil, newNotAType(x)
	}
}

// IsType reports whether x is a type description. allowForwardRef
// controls whether deferred references count.
func IsType(x any, allowForwardRef bool) bool {
	switch x.(type) {
	case string, ForwardRef:
		return allowForwardRef
	}
	_, err := AsType(x)
	return err == nil
}

// IsForwardRef reports whether x is a forward reference. The error is
// non-nil when x isn't a type description at all; callers that want the
// non-raising behavior simply ignore it.
func IsForwardRef(x any) (bool, error) {
	switch x.(type) {
	case string, ForwardRef:
		return true, nil
	}
	if !IsType(x, true) {
		return false, newNotAType(x)
	}
	return false, nil
}

// IsGeneric reports whether x is any kind of generic type: a generic
// base, a parameterization that still has free parameters, or a
// parameter-less-but-subscriptable marker such as literal-of.
func IsGeneric(x any) (bool, error) {
	t, err := AsType(x)
	if err != nil {
		return false, err
	}
	params, err := TypeParametersOf(t)
	if err != nil {
		var notGeneric *NotAGenericError
		if errors.As(err, &notGeneric) {
			if base, ok := t.(*GenericBase); ok && base.paramless {
				return true, nil
			}
			return false, nil
		}
		return false, err
	}
	return len(params) > 0, nil
}

// IsVariadicGeneric reports whether x is a generic base that accepts an
// arbitrary number of type arguments (union-of, tuple-of, literal-of).
func IsVariadicGeneric(x any) (bool, error) {
	t, err := AsType(x)
	if err != nil {
		return false, err
	}
	base, ok := t.(*GenericBase)
	return ok && base.Variadic, nil
}

// IsGenericBase reports whether x is a generic base with no type
// arguments supplied.
func IsGenericBase(x any) (bool, error) {
	t, err := AsType(x)
	if err != nil {
		return false, err
	}
	if base, ok := t.(*GenericBase); ok && base.paramless {
		return true, nil
	}
	generic, err := IsGeneric(t)
	if err != nil || !generic {
		return false, err
	}
	switch tt := t.(type) {
	case *GenericBase:
		return true, nil
	case *Class:
		if tt.generic != nil {
			return true, nil
		}
		_, known := DefaultRegistry().lookup(tt)
		return known, nil
	default:
		return false, nil
	}
}

// IsParameterizedGeneric reports whether x is a generic with type
// arguments supplied, fully or not.
func IsParameterizedGeneric(x any) (bool, error) {
	t, err := AsType(x)
	if err != nil {
		return false, err
	}
	_, ok := t.(Parameterized)
	return ok, nil
}

// IsFullyParameterizedGeneric reports whether x was once generic but no
// longer accepts any type arguments. Unlike IsParameterizedGeneric this
// holds for shapes that were never subscripted yet require no arguments,
// such as a byte-string sequence.
func IsFullyParameterizedGeneric(x any) (bool, error) {
	t, err := AsType(x)
	if err != nil {
		return false, err
	}
	params, err := TypeParametersOf(t)
	if err != nil {
		var notGeneric *NotAGenericError
		if errors.As(err, &notGeneric) {
			return false, nil
		}
		return false, err
	}
	return len(params) == 0, nil
}

// TypeName returns the name of a scalar type, a generic base or a type
// variable. Forward references and parameterized generics have no name.
func TypeName(x any) (string, error) {
	t, err := AsType(x)
	if err != nil {
		return "", err
	}
	switch tt := t.(type) {
	case ForwardRef:
		return "", &ForwardRefsHaveNoNameError{Ref: tt}
	case Parameterized:
		return "", &MustNotBeParameterizedError{Type: tt}
	case *Class:
		return tt.Name, nil
	case *GenericBase:
		return tt.Name, nil
	case *TypeVar:
		return tt.Name, nil
	case anyType:
		return "Any", nil
	case ellipsisType:
		return "ellipsis", nil
	default:
		return "", newNotAType(x)
	}
}
