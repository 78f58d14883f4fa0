package typesys

import (
	"reflect"
)

// TupleValue is a heterogeneous fixed-length value, the runtime
// counterpart of the tuple shapes.
type TupleValue []any

// SetValue is a hashed collection of unique values, the runtime
// counterpart of the set shapes.
type SetValue map[any]struct{}

// NewSetValue builds a SetValue from its elements.
func NewSetValue(elems ...any) SetValue {
	s := make(SetValue, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Instance lets a value report which class it instantiates, overriding
// reflection.
type Instance interface {
	Class() *Class
}

// ClassOf returns the class a runtime value instantiates. Type values
// are instances of the type class; unknown Go values fall back to a
// per-Go-type synthesized class.
func ClassOf(v any) *Class {
	switch vv := v.(type) {
	case nil:
		return NoneType
	case Instance:
		return vv.Class()
	case Type:
		return TypeClass
	case bool:
		return BoolClass
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return IntClass
	case float32, float64:
		return FloatClass
	case complex64, complex128:
		return ComplexClass
	case string:
		return StrClass
	case []byte:
		return BytesClass
	case TupleValue:
		return TupleClass
	case SetValue:
		return SetClass
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return ListClass
	case reflect.Map:
		return DictClass
	case reflect.Func:
		return FunctionClass
	case reflect.Pointer:
		if rv.IsNil() {
			return NoneType
		}
		return ClassOf(rv.Elem().Interface())
	case reflect.Struct:
		return structClass(rv.Type())
	default:
		return Object
	}
}

// instanceChecker validates a value against the arguments of one
// parameterized shape, after the nominal part has already matched.
type instanceChecker func(v any, args []Type) (bool, error)

var instanceCheckers map[*GenericBase]instanceChecker

func init() {
	instanceCheckers = map[*GenericBase]instanceChecker{}

	elementBases := []*GenericBase{
		List, NativeList, Set, NativeSet, FrozenSet, NativeFrozenSet,
		Deque, NativeDeque, Sequence, NativeSequence,
		MutableSequence, NativeMutableSequence, Iterable, NativeIterable,
		Iterator, NativeIterator, Reversible, NativeReversible,
		Container, NativeContainer, Collection, NativeCollection,
		AbstractSet, NativeAbstractSet, MutableSet, NativeMutableSet,
		KeysView, NativeKeysView, ValuesView, NativeValuesView,
		ByteString, NativeByteString,
	}
	for _, b := range elementBases {
		instanceCheckers[b] = checkElements
	}

	mappingBases := []*GenericBase{
		Dict, NativeDict, DefaultDict, NativeDefaultDict,
		OrderedDict, NativeOrderedDict, Counter, NativeCounter,
		ChainMap, NativeChainMap, Mapping, NativeMapping,
		MutableMapping, NativeMutableMapping,
	}
	for _, b := range mappingBases {
		instanceCheckers[b] = checkMappingItems
	}

	instanceCheckers[Tuple] = checkTupleElements
	instanceCheckers[NativeTuple] = checkTupleElements
	instanceCheckers[TypeOf] = checkTypeOf
	instanceCheckers[NativeType] = checkTypeOf
	instanceCheckers[Callable] = checkCallableValue
	instanceCheckers[NativeCallable] = checkCallableValue
	instanceCheckers[Union] = checkUnionMember
	instanceCheckers[Literal] = checkLiteralMember
	instanceCheckers[Annotated] = checkFirstArg
	instanceCheckers[ClassVar] = checkFirstArg
	instanceCheckers[Final] = checkFirstArg
	instanceCheckers[Optional] = checkOptionalValue
}

// IsInstance reports whether a runtime value inhabits a type. Forward
// references are resolved first; shapes whose arguments cannot be
// checked against a value yield an UnsupportedError.
func IsInstance(v any, t Type) (bool, error) {
	resolved, err := ResolveOuter(t, nil)
	if err != nil {
		return false, err
	}
	switch tt := resolved.(type) {
	case anyType:
		return true, nil
	case *Class:
		return classSubclasses(ClassOf(v), tt), nil
	case *GenericBase:
		return isInstanceOfBase(v, tt)
	case *TypeVar:
		if tt.Bound != nil {
			return IsInstance(v, tt.Bound)
		}
		if len(tt.Constraints) > 0 {
			return checkUnionMember(v, tt.Constraints)
		}
		return true, nil
	case Parameterized:
		nominal, err := isInstanceOfBase(v, tt.Base)
		if err != nil {
			return false, err
		}
		if !nominal {
			return false, nil
		}
		checker, ok := instanceCheckers[tt.Base]
		if !ok {
			return false, &UnsupportedError{Ident: tt.Base}
		}
		return checker(v, tt.Args)
	case Value:
		return valueEqual(v, tt.V), nil
	default:
		return false, &UnsupportedError{Ident: resolved}
	}
}

// isInstanceOfBase checks the nominal part: the value's class must sit
// below the base in the ancestry. Special forms have no nominal part
// and accept anything.
func isInstanceOfBase(v any, b *GenericBase) (bool, error) {
	switch b {
	case Union, Optional, Literal, ClassVar, Final, Annotated, Generic, TypeOf, NativeType, Callable, NativeCallable:
		return true, nil
	}
	if b.Class != nil {
		return classSubclasses(ClassOf(v), b.Class), nil
	}
	ok, err := nominalSubclass(ClassOf(v), b)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// classSubclasses walks the class bases only.
func classSubclasses(sub, super *Class) bool {
	if super == Object {
		return true
	}
	seen := map[*Class]bool{}
	stack := []*Class{sub}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c == super {
			return true
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		stack = append(stack, c.Bases...)
	}
	return false
}

func checkElements(v any, args []Type) (bool, error) {
	if len(args) == 0 {
		return true, nil
	}
	elems, ok := elementsOf(v)
	if !ok {
		return false, nil
	}
	for _, e := range elems {
		match, err := IsInstance(e, args[0])
		if err != nil {
			return false, err
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}

func checkMappingItems(v any, args []Type) (bool, error) {
	if len(args) == 0 {
		return true, nil
	}
	items, ok := itemsOf(v)
	if !ok {
		return false, nil
	}
	for _, kv := range items {
		for i, t := range args {
			if i >= 2 {
				break
			}
			match, err := IsInstance(kv[i], t)
			if err != nil {
				return false, err
			}
			if !match {
				return false, nil
			}
		}
	}
	return true, nil
}

// checkTupleElements distinguishes the homogeneous form [T, ...] from a
// fixed arity.
func checkTupleElements(v any, args []Type) (bool, error) {
	tup, ok := v.(TupleValue)
	if !ok {
		return false, nil
	}
	if len(args) == 2 && args[1] == Ellipsis {
		for _, e := range tup {
			match, err := IsInstance(e, args[0])
			if err != nil {
				return false, err
			}
			if !match {
				return false, nil
			}
		}
		return true, nil
	}
	if len(tup) != len(args) {
		return false, nil
	}
	for i, e := range tup {
		match, err := IsInstance(e, args[i])
		if err != nil {
			return false, err
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}

// checkTypeOf: the value must itself be a type below the argument.
func checkTypeOf(v any, args []Type) (bool, error) {
	t, ok := v.(Type)
	if !ok {
		return false, nil
	}
	if len(args) == 0 {
		return true, nil
	}
	return IsSubtype(t, args[0])
}

func checkCallableValue(v any, args []Type) (bool, error) {
	sig, err := SignatureOf(v)
	if err != nil {
		if _, noSig := err.(*NoSignatureError); noSig {
			return false, nil
		}
		return false, err
	}
	if len(args) == 0 {
		return true, nil
	}
	if len(args) != 2 {
		return false, nil
	}
	return signatureSatisfies(sig, args[0], args[1])
}

// signatureSatisfies checks a concrete signature against a callable
// shape: the return type covariantly, then the required parameter types
// contravariantly against the declared parameters, one by one.
func signatureSatisfies(sig Signature, params, ret Type) (bool, error) {
	if sig.Return != nil {
		match, err := IsSubtype(sig.Return, ret)
		if err != nil || !match {
			return false, err
		}
	}
	if params == Ellipsis {
		// A keyword-only parameter never binds positionally, even with
		// a default.
		for _, p := range sig.Params {
			if p.Kind == KeywordOnly {
				return false, nil
			}
		}
		return true, nil
	}
	want, ok := params.(ParamList)
	if !ok {
		return false, nil
	}
	i := 0
	for _, required := range want.Params {
		if i >= len(sig.Params) {
			return false, nil
		}
		p := sig.Params[i]
		if p.Kind == KeywordOnly || p.Kind == VarKeyword {
			return false, nil
		}
		if p.Type != nil {
			match, err := IsSubtype(required, p.Type)
			if err != nil || !match {
				return false, err
			}
		}
		// A catch-all stays put and absorbs the remaining required
		// types.
		if p.Kind != VarPositional {
			i++
		}
	}
	// Every declared parameter left over must be able to go unbound.
	for _, p := range sig.Params[i:] {
		if !p.optional() {
			return false, nil
		}
	}
	return true, nil
}

// checkUnionMember defers member errors: a later member may still
// decide the answer.
func checkUnionMember(v any, args []Type) (bool, error) {
	var deferred error
	for _, alt := range args {
		match, err := IsInstance(v, alt)
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
	if deferred != nil {
		return false, deferred
	}
	return false, nil
}

func checkOptionalValue(v any, args []Type) (bool, error) {
	if v == nil {
		return true, nil
	}
	if len(args) == 0 {
		return true, nil
	}
	return IsInstance(v, args[0])
}

func checkLiteralMember(v any, args []Type) (bool, error) {
	for _, arg := range args {
		switch a := arg.(type) {
		case Value:
			if valueEqual(v, a.V) {
				return true, nil
			}
		case *Class:
			if a == NoneType && v == nil {
				return true, nil
			}
		}
	}
	return false, nil
}

func checkFirstArg(v any, args []Type) (bool, error) {
	if len(args) == 0 {
		return true, nil
	}
	return IsInstance(v, args[0])
}

// valueEqual compares runtime values with numeric widths normalized.
// Bools stay distinct from ints.
func valueEqual(a, b any) bool {
	na, nb := normalizeScalar(a), normalizeScalar(b)
	return reflect.DeepEqual(na, nb)
}

func normalizeScalar(v any) any {
	switch n := v.(type) {
	case bool:
		return n
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return v
	}
}

// elementsOf enumerates a container's elements: tuple and set values,
// slices, arrays and map keys.
func elementsOf(v any) ([]any, bool) {
	switch vv := v.(type) {
	case TupleValue:
		return []any(vv), true
	case SetValue:
		elems := make([]any, 0, len(vv))
		for e := range vv {
			elems = append(elems, e)
		}
		return elems, true
	case string:
		elems := make([]any, 0, len(vv))
		for _, r := range vv {
			elems = append(elems, string(r))
		}
		return elems, true
	case []byte:
		elems := make([]any, len(vv))
		for i, b := range vv {
			elems[i] = int(b)
		}
		return elems, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		return elems, true
	case reflect.Map:
		elems := make([]any, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			elems = append(elems, iter.Key().Interface())
		}
		return elems, true
	default:
		return nil, false
	}
}

// itemsOf enumerates a mapping's key/value pairs.
func itemsOf(v any) ([][2]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	items := make([][2]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		items = append(items, [2]any{iter.Key().Interface(), iter.Value().Interface()})
	}
	return items, true
}
