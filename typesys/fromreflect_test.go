package typesys

import (
	"reflect"
	"testing"
)

func TestFromReflectType(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Type
	}{
		{"bool", true, BoolClass},
		{"int", 0, IntClass},
		{"uint16", uint16(0), IntClass},
		{"float", 0.0, FloatClass},
		{"complex", complex(0, 0), ComplexClass},
		{"string", "", StrClass},
		{"bytes", []byte(nil), BytesClass},
		{"slice", []string(nil), Apply(NativeList, StrClass)},
		{"array", [3]int{}, Apply(NativeList, IntClass)},
		{"map", map[string]int(nil), Apply(NativeDict, StrClass, IntClass)},
		{"chan", make(chan int), Apply(NativeIterator, IntClass)},
		{"pointer", (*int)(nil), IntClass},
		{"interface", []any{}, Apply(NativeList, Any)},
		{"nested", map[string][]int(nil), Apply(NativeDict, StrClass, Apply(NativeList, IntClass))},
		{"func", func(int) string { return "" }, Fn([]Type{IntClass}, StrClass)},
		{"variadic func", func(...int) {}, FnEllipsis(NoneType)},
		{"func with error", func() (int, error) { return 0, nil }, Fn(nil, IntClass)},
		{"multi return", func() (int, string) { return 0, "" }, Fn(nil, Apply(NativeTuple, IntClass, StrClass))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromReflectType(reflect.TypeOf(tt.v))
			if !typesEqual(got, tt.want) {
				t.Errorf("FromReflectType(%T) = %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestFromReflectTypeStructs(t *testing.T) {
	type point struct{ X, Y int }

	got := FromReflectType(reflect.TypeOf(point{}))
	cls, ok := got.(*Class)
	if !ok {
		t.Fatalf("got %s (%T), want a class", got, got)
	}
	if cls.Name != "point" {
		t.Errorf("class name = %q, want %q", cls.Name, "point")
	}

	// The same Go type always maps to the same class.
	again := FromReflectType(reflect.TypeOf(point{}))
	if again != got {
		t.Errorf("struct classes must be interned")
	}
}
