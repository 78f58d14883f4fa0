package typesys

import (
	"reflect"
	"sync"
)

var (
	reflectTypeCache sync.Map // reflect.Type -> Type
	structClassCache sync.Map // reflect.Type -> *Class

	tupleValueType = reflect.TypeOf(TupleValue(nil))
	setValueType   = reflect.TypeOf(SetValue(nil))
	errorType      = reflect.TypeOf((*error)(nil)).Elem()
)

// FromReflectType maps a Go type onto the type model: scalars onto the
// numeric tower, slices and maps onto the native container shapes,
// funcs onto callable shapes. Named struct types become classes, one
// per Go type.
func FromReflectType(rt reflect.Type) Type {
	if rt == nil {
		return Any
	}
	if cached, ok := reflectTypeCache.Load(rt); ok {
		return cached.(Type)
	}
	t := fromReflectType(rt)
	reflectTypeCache.Store(rt, t)
	return t
}

func fromReflectType(rt reflect.Type) Type {
	switch rt {
	case tupleValueType:
		return NativeTuple
	case setValueType:
		return NativeSet
	}
	switch rt.Kind() {
	case reflect.Bool:
		return BoolClass
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return IntClass
	case reflect.Float32, reflect.Float64:
		return FloatClass
	case reflect.Complex64, reflect.Complex128:
		return ComplexClass
	case reflect.String:
		return StrClass
	case reflect.Slice, reflect.Array:
		if rt.Elem().Kind() == reflect.Uint8 {
			return BytesClass
		}
		return Apply(NativeList, elemType(rt.Elem()))
	case reflect.Map:
		return Apply(NativeDict, elemType(rt.Key()), elemType(rt.Elem()))
	case reflect.Chan:
		return Apply(NativeIterator, elemType(rt.Elem()))
	case reflect.Func:
		return funcType(rt)
	case reflect.Pointer:
		return FromReflectType(rt.Elem())
	case reflect.Interface:
		return Any
	case reflect.Struct:
		return structClass(rt)
	default:
		return Any
	}
}

// elemType maps a container element. An interface{} element carries no
// information, so it stays Any.
func elemType(rt reflect.Type) Type {
	return FromReflectType(rt)
}

func funcType(rt reflect.Type) Type {
	if rt.IsVariadic() {
		return FnEllipsis(funcReturn(rt))
	}
	params := make([]Type, rt.NumIn())
	for i := range params {
		params[i] = FromReflectType(rt.In(i))
	}
	return Fn(params, funcReturn(rt))
}

// funcReturn folds a Go result list into a single return type: none is
// the null type, a trailing error is dropped, several results form a
// tuple.
func funcReturn(rt reflect.Type) Type {
	n := rt.NumOut()
	if n > 0 && rt.Out(n-1) == errorType {
		n--
	}
	switch n {
	case 0:
		return NoneType
	case 1:
		return FromReflectType(rt.Out(0))
	default:
		outs := make([]Type, n)
		for i := range outs {
			outs[i] = FromReflectType(rt.Out(i))
		}
		return Apply(NativeTuple, outs...)
	}
}

func structClass(rt reflect.Type) *Class {
	if cached, ok := structClassCache.Load(rt); ok {
		return cached.(*Class)
	}
	name := rt.Name()
	if name == "" {
		name = rt.String()
	}
	cls := &Class{Name: name, Module: rt.PkgPath(), Bases: []*Class{Object}}
	actual, _ := structClassCache.LoadOrStore(rt, cls)
	return actual.(*Class)
}
