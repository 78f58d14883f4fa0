// Package typesys implements a reflection and algebra engine for type
// descriptions: classification, decomposition into structural parts,
// forward-reference resolution, canonical-form bridging between the native
// and the verbose generic vocabularies, structural subtype/instance checks
// and type-argument tracing through generic ancestry.
//
// Type descriptions are immutable values. All queries are pure functions
// over them plus a read-only ancestry registry that is fully built before
// the first query runs.
package typesys

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// Type is the interface for all type description variants.
type Type interface {
	String() string
	Equal(Type) bool
	isType()
}

// Variance is the variance tag carried by a type-parameter variable.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// Class is a concrete, non-generic type identity. Classes form a nominal
// hierarchy through Bases. Identity is pointer identity: two classes with
// the same name are still two distinct types.
type Class struct {
	Name   string
	Module string

	// Bases are the immediate nominal parents. The root class has none.
	Bases []*Class

	// generic links a class to the generic base it also acts as
	// (e.g. the list class and the list-of shape are one identity
	// split across the scalar and the generic worlds).
	generic *GenericBase
}

// NewClass creates a class with the given immediate bases. Classes with no
// bases implicitly descend from Object.
func NewClass(name string, bases ...*Class) *Class {
	return &Class{Name: name, Bases: bases}
}

func (c *Class) String() string {
	if c.Module != "" {
		return c.Module + "." + c.Name
	}
	return c.Name
}

func (c *Class) Equal(other Type) bool {
	o, ok := other.(*Class)
	return ok && o == c
}

func (c *Class) isType() {}

// Generic reports the generic base this class also acts as, if any.
func (c *Class) Generic() *GenericBase { return c.generic }

// TypeVar is a type-parameter variable: a named placeholder with an
// optional bound, an optional constraint set and a variance tag.
// Identity is a uuid so that two distinct variables may share a name
// without colliding in substitution maps.
type TypeVar struct {
	id          uuid.UUID
	Name        string
	Bound       Type
	Constraints []Type
	Variance    Variance
}

// TypeVarOption configures a new type variable.
type TypeVarOption func(*TypeVar)

// WithBound sets the variable's upper bound.
func WithBound(bound Type) TypeVarOption {
	return func(v *TypeVar) { v.Bound = bound }
}

// WithConstraints sets the variable's constraint set.
func WithConstraints(constraints ...Type) TypeVarOption {
	return func(v *TypeVar) { v.Constraints = constraints }
}

// WithVariance sets the variable's variance tag.
func WithVariance(variance Variance) TypeVarOption {
	return func(v *TypeVar) { v.Variance = variance }
}

// NewTypeVar creates a fresh type variable with a unique identity.
func NewTypeVar(name string, opts ...TypeVarOption) *TypeVar {
	v := &TypeVar{id: uuid.New(), Name: name}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *TypeVar) String() string {
	switch v.Variance {
	case Covariant:
		return "+" + v.Name
	case Contravariant:
		return "-" + v.Name
	default:
		return "~" + v.Name
	}
}

func (v *TypeVar) Equal(other Type) bool {
	o, ok := other.(*TypeVar)
	return ok && o.id == v.id
}

func (v *TypeVar) isType() {}

// ID returns the variable's unique identity.
func (v *TypeVar) ID() uuid.UUID { return v.id }

// Vocabulary distinguishes the two parallel generic vocabularies: the
// terse host-native one (list, dict, callable, ...) and the verbose
// qualifier-rich one (List, Dict, Callable, Union, Optional, ...).
type Vocabulary int

const (
	Native Vocabulary = iota
	Verbose
)

// GenericBase is an unparameterized generic shape identity.
type GenericBase struct {
	Name   string
	Module string
	Vocab  Vocabulary

	// Variadic marks shapes that accept an open-ended argument count
	// (union-of, tuple-of, literal-of).
	Variadic bool

	// Class is the runtime class underlying the shape, nil for special
	// forms that have no independent runtime identity (Union, Optional,
	// Literal, ClassVar, Final, Annotated).
	Class *Class

	// paramless marks shapes that are subscriptable despite declaring
	// no type parameters (literal-of).
	paramless bool

	// counterpart is the same shape in the other vocabulary, nil when
	// no mapping exists.
	counterpart *GenericBase

	// declared is the shape's own parameter metadata, consulted only
	// when the ancestry registry has no entry for the shape.
	declared []*TypeVar
}

func (b *GenericBase) String() string {
	if b.Module != "" {
		return b.Module + "." + b.Name
	}
	return b.Name
}

func (b *GenericBase) Equal(other Type) bool {
	o, ok := other.(*GenericBase)
	return ok && o == b
}

func (b *GenericBase) isType() {}

// Counterpart reports the shape's identity in the other vocabulary.
func (b *GenericBase) Counterpart() *GenericBase { return b.counterpart }

// Parameterized is a generic base plus an ordered sequence of type
// arguments. Built with Apply, which normalizes union arguments.
type Parameterized struct {
	Base *GenericBase
	Args []Type
}

func (p Parameterized) String() string {
	// Report a single-alternative union with a null member the way the
	// decomposer does: as an optional.
	if p.Base == Union {
		if rest, ok := collapseUnionArgs(p.Args); ok {
			return fmt.Sprintf("Optional[%s]", rest[0])
		}
	}
	parts := make([]string, len(p.Args))
	for i, arg := range p.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s[%s]", p.Base, strings.Join(parts, ", "))
}

func (p Parameterized) Equal(other Type) bool {
	o, ok := other.(Parameterized)
	if !ok || o.Base != p.Base || len(o.Args) != len(p.Args) {
		return false
	}
	for i, arg := range p.Args {
		if !typesEqual(arg, o.Args[i]) {
			return false
		}
	}
	return true
}

func (p Parameterized) isType() {}

// ForwardRef is a deferred, unresolved name standing in for a type,
// paired with the resolution context captured at authoring time.
type ForwardRef struct {
	Code    string
	Context *Namespace
}

// Ref creates a forward reference with an optional resolution context.
func Ref(code string, ctx *Namespace) ForwardRef {
	return ForwardRef{Code: code, Context: ctx}
}

func (r ForwardRef) String() string { return fmt.Sprintf("%q", r.Code) }

func (r ForwardRef) Equal(other Type) bool {
	o, ok := other.(ForwardRef)
	return ok && o.Code == r.Code && o.Context == r.Context
}

func (r ForwardRef) isType() {}

// Value wraps a literal payload used as an argument of a literal-of
// shape. Payloads are opaque and never reference-bearing.
type Value struct {
	V any
}

func (v Value) String() string {
	if s, ok := v.V.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v.V)
}

func (v Value) Equal(other Type) bool {
	o, ok := other.(Value)
	return ok && reflect.DeepEqual(o.V, v.V)
}

func (v Value) isType() {}

// ParamList is the parameter-list slot of a callable shape.
type ParamList struct {
	Params []Type
}

func (l ParamList) String() string {
	parts := make([]string, len(l.Params))
	for i, p := range l.Params {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l ParamList) Equal(other Type) bool {
	o, ok := other.(ParamList)
	if !ok || len(o.Params) != len(l.Params) {
		return false
	}
	for i, p := range l.Params {
		if !typesEqual(p, o.Params[i]) {
			return false
		}
	}
	return true
}

func (l ParamList) isType() {}

type anyType struct{}

func (anyType) String() string        { return "Any" }
func (anyType) Equal(other Type) bool { _, ok := other.(anyType); return ok }
func (anyType) isType()               {}

type ellipsisType struct{}

func (ellipsisType) String() string        { return "..." }
func (ellipsisType) Equal(other Type) bool { _, ok := other.(ellipsisType); return ok }
func (ellipsisType) isType()               {}

// Any is the universal type: a supertype of everything.
var Any Type = anyType{}

// Ellipsis is the marker used by variadic tuple shapes and by callable
// parameter-list slots.
var Ellipsis Type = ellipsisType{}

func typesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Apply parameterizes a generic base with the given type arguments.
// Union arguments are normalized at construction: nested unions are
// flattened, duplicates removed in first-occurrence order, and a union
// with a single distinct alternative collapses to that alternative.
// Optional-of is stored as union-of-(T, NoneType).
func Apply(base *GenericBase, args ...Type) Type {
	switch base {
	case Optional:
		return Apply(Union, append(append([]Type{}, args...), NoneType)...)
	case Union:
		flat := flattenUnionArgs(args)
		if len(flat) == 1 {
			return flat[0]
		}
		return Parameterized{Base: Union, Args: flat}
	default:
		return Parameterized{Base: base, Args: append([]Type{}, args...)}
	}
}

// Un builds a union of the given alternatives.
func Un(args ...Type) Type { return Apply(Union, args...) }

// Opt builds an optional of the given type.
func Opt(arg Type) Type { return Apply(Optional, arg) }

// Lit builds a literal-of shape over the given payload values.
func Lit(values ...any) Type {
	args := make([]Type, len(values))
	for i, v := range values {
		args[i] = Value{V: v}
	}
	return Parameterized{Base: Literal, Args: args}
}

// Fn builds a callable shape from positional parameter types and a
// return type. Pass Ellipsis via FnEllipsis for an unconstrained
// parameter list.
func Fn(params []Type, ret Type) Type {
	return Parameterized{Base: Callable, Args: []Type{ParamList{Params: params}, ret}}
}

// FnEllipsis builds a callable shape with an unconstrained parameter list.
func FnEllipsis(ret Type) Type {
	return Parameterized{Base: Callable, Args: []Type{Ellipsis, ret}}
}

// flattenUnionArgs flattens nested unions and removes duplicates in
// first-occurrence order. The null type is kept; collapsing it is the
// decomposer's job so base and argument reporting stay consistent.
func flattenUnionArgs(args []Type) []Type {
	flat := make([]Type, 0, len(args))
	for _, arg := range args {
		if p, ok := arg.(Parameterized); ok && p.Base == Union {
			flat = append(flat, flattenUnionArgs(p.Args)...)
			continue
		}
		flat = append(flat, arg)
	}
	unique := make([]Type, 0, len(flat))
	for _, arg := range flat {
		seen := false
		for _, u := range unique {
			if typesEqual(arg, u) {
				seen = true
				break
			}
		}
		if !seen {
			unique = append(unique, arg)
		}
	}
	return unique
}

// collapseUnionArgs strips null-type members from union arguments.
// It reports ok when exactly one alternative remains, which is the
// condition for the union to classify as an optional.
func collapseUnionArgs(args []Type) ([]Type, bool) {
	rest := make([]Type, 0, len(args))
	for _, arg := range args {
		if cls, ok := arg.(*Class); ok && cls == NoneType {
			continue
		}
		rest = append(rest, arg)
	}
	return rest, len(rest) == 1 && len(rest) != len(args)
}

// freeTypeVars collects the still-free type variables of a description in
// first-occurrence order, recursing through arguments and parameter
// lists but never into literal payloads.
func freeTypeVars(t Type) []*TypeVar {
	var out []*TypeVar
	seen := map[uuid.UUID]bool{}
	var walk func(Type)
	walk = func(t Type) {
		switch tt := t.(type) {
		case *TypeVar:
			if !seen[tt.id] {
				seen[tt.id] = true
				out = append(out, tt)
			}
		case Parameterized:
			if tt.Base == Literal {
				return
			}
			for _, arg := range tt.Args {
				walk(arg)
			}
		case ParamList:
			for _, p := range tt.Params {
				walk(p)
			}
		}
	}
	walk(t)
	return out
}

// Subst maps type-variable identities to types.
type Subst map[uuid.UUID]Type

// applySubst substitutes bound variables in a description. A per-call
// visited set breaks direct self-references.
func applySubst(t Type, s Subst) Type {
	return applySubstGuarded(t, s, map[uuid.UUID]bool{})
}

func applySubstGuarded(t Type, s Subst, visited map[uuid.UUID]bool) Type {
	switch tt := t.(type) {
	case *TypeVar:
		if visited[tt.id] {
			return tt
		}
		replacement, ok := s[tt.id]
		if !ok {
			return tt
		}
		if rv, ok := replacement.(*TypeVar); ok && rv.id == tt.id {
			return tt
		}
		inner := copyVisited(visited)
		inner[tt.id] = true
		return applySubstGuarded(replacement, s, inner)
	case Parameterized:
		if tt.Base == Literal {
			return tt
		}
		newArgs := make([]Type, len(tt.Args))
		for i, arg := range tt.Args {
			newArgs[i] = applySubstGuarded(arg, s, visited)
		}
		return Apply(tt.Base, newArgs...)
	case ParamList:
		newParams := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			newParams[i] = applySubstGuarded(p, s, visited)
		}
		return ParamList{Params: newParams}
	default:
		return t
	}
}

func copyVisited(m map[uuid.UUID]bool) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
