package typesys

import (
	"errors"
	"testing"
)

type fakeWidget struct{}

var widgetClass = NewClass("Widget", Object)

func (fakeWidget) Class() *Class { return widgetClass }

func TestClassOf(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want *Class
	}{
		{"nil", nil, NoneType},
		{"bool", true, BoolClass},
		{"int", 5, IntClass},
		{"int64", int64(5), IntClass},
		{"uint8", uint8(5), IntClass},
		{"float", 1.5, FloatClass},
		{"complex", complex(1, 2), ComplexClass},
		{"string", "x", StrClass},
		{"bytes", []byte("x"), BytesClass},
		{"slice", []int{1}, ListClass},
		{"map", map[string]int{}, DictClass},
		{"tuple value", TupleValue{1, "a"}, TupleClass},
		{"set value", NewSetValue(1, 2), SetClass},
		{"func", func() {}, FunctionClass},
		{"type value", IntClass, TypeClass},
		{"instance override", fakeWidget{}, widgetClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassOf(tt.v); got != tt.want {
				t.Errorf("ClassOf(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestIsInstanceClasses(t *testing.T) {
	tests := []struct {
		name string
		v    any
		t    Type
		want bool
	}{
		{"int instance", 5, IntClass, true},
		{"int below float", 5, FloatClass, true},
		{"int below complex", 5, ComplexClass, true},
		{"float not int", 1.5, IntClass, false},
		{"bool below int", true, IntClass, true},
		{"int not bool", 5, BoolClass, false},
		{"nil is none", nil, NoneType, true},
		{"nil not int", nil, IntClass, false},
		{"everything below object", "x", Object, true},
		{"everything below any", struct{ X int }{1}, Any, true},
		{"declared class", fakeWidget{}, widgetClass, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsInstance(tt.v, tt.t)
			if err != nil {
				t.Fatalf("IsInstance(%#v, %s) error: %v", tt.v, tt.t, err)
			}
			if got != tt.want {
				t.Errorf("IsInstance(%#v, %s) = %v, want %v", tt.v, tt.t, got, tt.want)
			}
		})
	}
}

func TestIsInstanceContainers(t *testing.T) {
	tests := []struct {
		name string
		v    any
		t    Type
		want bool
	}{
		{"slice vs list", []int{1, 2}, Apply(List, IntClass), true},
		{"slice element mismatch", []string{"a"}, Apply(List, IntClass), false},
		{"slice vs sequence", []int{1, 2}, Apply(Sequence, IntClass), true},
		{"slice vs iterable widened", []bool{true}, Apply(Iterable, IntClass), true},
		{"slice not a set", []int{1}, Apply(Set, IntClass), false},
		{"unparameterized list", []int{1}, List, true},
		{"map vs dict", map[string]int{"a": 1}, Apply(Dict, StrClass, IntClass), true},
		{"map key mismatch", map[int]int{1: 1}, Apply(Dict, StrClass, IntClass), false},
		{"map value mismatch", map[string]string{"a": "b"}, Apply(Dict, StrClass, IntClass), false},
		{"map vs mapping", map[string]int{"a": 1}, Apply(Mapping, StrClass, IntClass), true},
		{"set value vs set", NewSetValue(1, 2), Apply(Set, IntClass), true},
		{"set value element mismatch", NewSetValue("a"), Apply(Set, IntClass), false},
		{"string as sequence of str", "abc", Apply(Sequence, StrClass), true},
		{"string not sequence of int", "abc", Apply(Sequence, IntClass), false},
		{"bytes as sequence of int", []byte{1, 2}, Apply(Sequence, IntClass), true},
		{"tuple fixed", TupleValue{1, "a"}, Apply(Tuple, IntClass, StrClass), true},
		{"tuple fixed arity mismatch", TupleValue{1}, Apply(Tuple, IntClass, StrClass), false},
		{"tuple fixed element mismatch", TupleValue{"a", 1}, Apply(Tuple, IntClass, StrClass), false},
		{"tuple homogeneous", TupleValue{1, 2, 3}, Apply(Tuple, IntClass, Ellipsis), true},
		{"tuple homogeneous mismatch", TupleValue{1, "a"}, Apply(Tuple, IntClass, Ellipsis), false},
		{"not a tuple", []int{1, 2}, Apply(Tuple, IntClass, IntClass), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsInstance(tt.v, tt.t)
			if err != nil {
				t.Fatalf("IsInstance(%#v, %s) error: %v", tt.v, tt.t, err)
			}
			if got != tt.want {
				t.Errorf("IsInstance(%#v, %s) = %v, want %v", tt.v, tt.t, got, tt.want)
			}
		})
	}
}

func TestIsInstanceSpecialForms(t *testing.T) {
	tests := []struct {
		name string
		v    any
		t    Type
		want bool
	}{
		{"union first member", 5, Un(IntClass, StrClass), true},
		{"union second member", "x", Un(IntClass, StrClass), true},
		{"union no member", 1.5, Un(IntClass, StrClass), false},
		{"optional nil", nil, Opt(IntClass), true},
		{"optional value", 5, Opt(IntClass), true},
		{"optional mismatch", "x", Opt(IntClass), false},
		{"literal member", 1, Lit(1, 2), true},
		{"literal width normalized", int64(1), Lit(1, 2), true},
		{"literal non-member", 3, Lit(1, 2), false},
		{"literal bool stays bool", true, Lit(1), false},
		{"literal string", "x", Lit("x", "y"), true},
		{"type of match", IntClass, Apply(TypeOf, IntClass), true},
		{"type of covariant", BoolClass, Apply(TypeOf, IntClass), true},
		{"type of wrong direction", FloatClass, Apply(TypeOf, IntClass), false},
		{"type of non-type value", 5, Apply(TypeOf, IntClass), false},
		{"annotated delegates", 5, Apply(Annotated, IntClass, Value{V: "m"}), true},
		{"annotated mismatch", "x", Apply(Annotated, IntClass, Value{V: "m"}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsInstance(tt.v, tt.t)
			if err != nil {
				t.Fatalf("IsInstance(%#v, %s) error: %v", tt.v, tt.t, err)
			}
			if got != tt.want {
				t.Errorf("IsInstance(%#v, %s) = %v, want %v", tt.v, tt.t, got, tt.want)
			}
		})
	}
}

func TestIsInstanceCallables(t *testing.T) {
	tests := []struct {
		name string
		v    any
		t    Type
		want bool
	}{
		{"bare callable", func() {}, Callable, true},
		{"not callable", 5, Fn(nil, Any), false},
		{
			"exact signature",
			func(int) string { return "" },
			Fn([]Type{IntClass}, StrClass),
			true,
		},
		{
			"contravariant parameter",
			func(float64) int { return 0 },
			Fn([]Type{IntClass}, FloatClass),
			true,
		},
		{
			"covariant parameter rejected",
			func(int) int { return 0 },
			Fn([]Type{FloatClass}, IntClass),
			false,
		},
		{
			"unconstrained parameters",
			func(int, string) int { return 0 },
			FnEllipsis(FloatClass),
			true,
		},
		{
			"arity mismatch",
			func(int) int { return 0 },
			Fn([]Type{IntClass, IntClass}, IntClass),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsInstance(tt.v, tt.t)
			if err != nil {
				t.Fatalf("IsInstance(%#v, %s) error: %v", tt.v, tt.t, err)
			}
			if got != tt.want {
				t.Errorf("IsInstance func case %q = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// defaultedGreeting declares (name: str = ...) -> str.
type defaultedGreeting struct{}

func (defaultedGreeting) TypeSignature() Signature {
	return Signature{
		Params: []Parameter{
			{Name: "name", Type: StrClass, Kind: PositionalOrKeyword, HasDefault: true},
		},
		Return: StrClass,
	}
}

// keywordOnlyEmit declares (*, dest: str) -> None.
type keywordOnlyEmit struct{}

func (keywordOnlyEmit) TypeSignature() Signature {
	return Signature{
		Params: []Parameter{
			{Name: "dest", Type: StrClass, Kind: KeywordOnly},
		},
		Return: NoneType,
	}
}

// catchAllJoin declares (sep: str, **parts) -> str.
type catchAllJoin struct{}

func (catchAllJoin) TypeSignature() Signature {
	return Signature{
		Params: []Parameter{
			{Name: "sep", Type: StrClass, Kind: PositionalOrKeyword},
			{Name: "parts", Kind: VarKeyword},
		},
		Return: StrClass,
	}
}

func TestIsInstanceCallableParameterBinding(t *testing.T) {
	tests := []struct {
		name string
		v    any
		t    Type
		want bool
	}{
		{
			"defaulted parameter stays contravariant",
			defaultedGreeting{},
			Fn([]Type{IntClass}, Any),
			false,
		},
		{
			"defaulted parameter binds",
			defaultedGreeting{},
			Fn([]Type{StrClass}, StrClass),
			true,
		},
		{
			"defaulted parameter may go unbound",
			defaultedGreeting{},
			Fn(nil, StrClass),
			true,
		},
		{
			"keyword-only never binds positionally",
			keywordOnlyEmit{},
			Fn([]Type{StrClass}, Any),
			false,
		},
		{
			"keyword-only rejected by the unconstrained form",
			keywordOnlyEmit{},
			FnEllipsis(Any),
			false,
		},
		{
			"variadic absorbs the remaining types",
			func(...int) {},
			Fn([]Type{IntClass, IntClass}, NoneType),
			true,
		},
		{
			"variadic stays contravariant",
			func(...int) {},
			Fn([]Type{StrClass}, NoneType),
			false,
		},
		{
			"var-keyword tail goes unbound",
			catchAllJoin{},
			Fn([]Type{StrClass}, StrClass),
			true,
		},
		{
			"required parameter left over",
			catchAllJoin{},
			Fn(nil, StrClass),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsInstance(tt.v, tt.t)
			if err != nil {
				t.Fatalf("IsInstance(%#v, %s) error: %v", tt.v, tt.t, err)
			}
			if got != tt.want {
				t.Errorf("IsInstance callable case %q = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsInstanceUnsupportedBase(t *testing.T) {
	_, err := IsInstance(5, Apply(Generic, NewTypeVar("T")))
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("IsInstance against a bare Generic shape: error = %v, want UnsupportedError", err)
	}

	_, err = IsInstance(func() {}, Apply(Awaitable, IntClass))
	if err != nil {
		t.Fatalf("a nominal mismatch decides before the structural test: %v", err)
	}
}

func TestIsInstanceTypeVars(t *testing.T) {
	bounded := NewTypeVar("B", WithBound(IntClass))
	constrained := NewTypeVar("C", WithConstraints(IntClass, StrClass))
	free := NewTypeVar("F")

	tests := []struct {
		name string
		v    any
		t    Type
		want bool
	}{
		{"bound satisfied", 5, bounded, true},
		{"bound violated", "x", bounded, false},
		{"constraint satisfied", "x", constrained, true},
		{"constraint violated", 1.5, constrained, false},
		{"free accepts anything", 1.5, free, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsInstance(tt.v, tt.t)
			if err != nil {
				t.Fatalf("IsInstance(%#v, %s) error: %v", tt.v, tt.t, err)
			}
			if got != tt.want {
				t.Errorf("IsInstance(%#v, %s) = %v, want %v", tt.v, tt.t, got, tt.want)
			}
		})
	}
}

func TestIsInstanceUnionDefersErrors(t *testing.T) {
	// A failing member is ignored when another member matches.
	ok, err := IsInstance(5, Un(IntClass, Ref("no.such.name", nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("expected the matching member to decide")
	}

	// With no match the deferred error surfaces.
	_, err = IsInstance("x", Un(IntClass, Ref("no.such.name", nil)))
	if err == nil {
		t.Fatalf("expected the deferred resolution error")
	}
}
