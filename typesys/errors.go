package typesys

import "fmt"

// NotATypeError indicates that an input isn't a type description at all.
type NotATypeError struct {
	Value any
}

func (e *NotATypeError) Error() string {
	return fmt.Sprintf("expected a class or type, not %v", e.Value)
}

func newNotAType(value any) *NotATypeError {
	return &NotATypeError{Value: value}
}

// NotAGenericError indicates a generic-only operation on a non-generic
// type.
type NotAGenericError struct {
	Type Type
}

func (e *NotAGenericError) Error() string {
	return fmt.Sprintf("%s is not a generic type and thus has no type parameters", e.Type)
}

// NotAParameterizedGenericError indicates a parameterized-only operation
// on an unparameterized input.
type NotAParameterizedGenericError struct {
	Type Type
}

func (e *NotAParameterizedGenericError) Error() string {
	return fmt.Sprintf("%s is not a parameterized generic", e.Type)
}

// ForwardRefsHaveNoNameError indicates a name query on a deferred
// reference.
type ForwardRefsHaveNoNameError struct {
	Ref ForwardRef
}

func (e *ForwardRefsHaveNoNameError) Error() string {
	return fmt.Sprintf("forward reference %s doesn't have a name", e.Ref)
}

// MustNotBeParameterizedError indicates an operation that only accepts
// unparameterized input.
type MustNotBeParameterizedError struct {
	Type Type
}

func (e *MustNotBeParameterizedError) Error() string {
	return fmt.Sprintf("%s must not be a parameterized generic", e.Type)
}

// CannotResolveNameError indicates that a forward reference could not be
// resolved in the given namespace chain.
type CannotResolveNameError struct {
	Name      string
	Namespace *Namespace
}

func (e *CannotResolveNameError) Error() string {
	if e.Namespace != nil {
		return fmt.Sprintf("cannot resolve name %q in namespace %q", e.Name, e.Namespace.Name())
	}
	return fmt.Sprintf("cannot resolve name %q", e.Name)
}

// CyclicReferenceError indicates a forward reference that resolves back
// to itself.
type CyclicReferenceError struct {
	Name string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("forward reference %q resolves back to itself", e.Name)
}

// SubtypeRequiredError indicates that an ancestry walk never reached the
// requested ancestor.
type SubtypeRequiredError struct {
	Type     Type
	Ancestor Type
}

func (e *SubtypeRequiredError) Error() string {
	return fmt.Sprintf("%s isn't a subtype of %s", e.Type, e.Ancestor)
}

// ArgumentRequiredError indicates a call that needs an argument it can't
// infer.
type ArgumentRequiredError struct {
	Argument string
	Reason   string
}

func (e *ArgumentRequiredError) Error() string {
	return fmt.Sprintf("because %s, the %q argument is required", e.Reason, e.Argument)
}

// TypeVarNotSetError indicates that a traced type parameter was never
// supplied an argument.
type TypeVarNotSetError struct {
	Var  *TypeVar
	Type Type
}

func (e *TypeVarNotSetError) Error() string {
	return fmt.Sprintf("type variable %s was never set in %s", e.Var, e.Type)
}

// NoConcreteTypeForTypeVarError indicates that a trace terminated on a
// still-free type variable.
type NoConcreteTypeForTypeVarError struct {
	Var *TypeVar
}

func (e *NoConcreteTypeForTypeVarError) Error() string {
	return fmt.Sprintf("no concrete type set for type variable %s", e.Var)
}

// UnsupportedError indicates that no structural test is registered for a
// generic base. The checker raises it instead of guessing.
type UnsupportedError struct {
	Ident Type
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("no structural test registered for %s", e.Ident)
}

// NoNativeEquivalentError indicates a verbose shape with no native
// vocabulary counterpart.
type NoNativeEquivalentError struct {
	Type Type
}

func (e *NoNativeEquivalentError) Error() string {
	return fmt.Sprintf("%s has no native equivalent", e.Type)
}

// NoVerboseEquivalentError indicates a native shape with no verbose
// vocabulary counterpart.
type NoVerboseEquivalentError struct {
	Type Type
}

func (e *NoVerboseEquivalentError) Error() string {
	return fmt.Sprintf("%s has no verbose equivalent", e.Type)
}

// NoSignatureError indicates a value whose callable signature can't be
// determined.
type NoSignatureError struct {
	Value any
}

func (e *NoSignatureError) Error() string {
	return fmt.Sprintf("can't determine signature of %v", e.Value)
}
