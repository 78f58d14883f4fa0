package typesys

import "testing"

func TestFormatType(t *testing.T) {
	tests := []struct {
		name string
		t    Type
		want string
	}{
		{"nil", nil, "None"},
		{"class", IntClass, "int"},
		{"parameterized", Apply(List, IntClass), "List[int]"},
		{"nested", Apply(Dict, StrClass, Apply(List, IntClass)), "Dict[str, List[int]]"},
		{"union", Un(IntClass, StrClass), "Union[int, str]"},
		{"optional", Opt(IntClass), "Optional[int]"},
		{"literal", Lit(1, "a", true), `Literal[1, "a", true]`},
		{"callable", Fn([]Type{IntClass, StrClass}, FloatClass), "Callable[[int, str], float]"},
		{"unconstrained callable", FnEllipsis(IntClass), "Callable[..., int]"},
		{"homogeneous tuple", Apply(Tuple, IntClass, Ellipsis), "Tuple[int, ...]"},
		{"any", Any, "Any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatType(tt.t); got != tt.want {
				t.Errorf("FormatType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeOfCallable(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Type
	}{
		{
			"plain func",
			func(int, string) float64 { return 0 },
			Fn([]Type{IntClass, StrClass}, FloatClass),
		},
		{
			"no parameters",
			func() int { return 0 },
			Fn(nil, IntClass),
		},
		{
			"variadic degrades",
			func(...int) int { return 0 },
			FnEllipsis(IntClass),
		},
		{
			"trailing default becomes a union",
			greeter{},
			Un(
				Fn([]Type{StrClass}, StrClass),
				Fn([]Type{StrClass, StrClass}, StrClass),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeOfCallable(tt.v)
			if err != nil {
				t.Fatalf("TypeOfCallable error: %v", err)
			}
			if !typesEqual(got, tt.want) {
				t.Errorf("TypeOfCallable = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTypeOfCallableIrregularShapes(t *testing.T) {
	// A required keyword-only parameter cannot be expressed as a fixed
	// parameter list.
	kwOnly := declaredFunc{Signature{
		Params: []Parameter{{Name: "k", Type: IntClass, Kind: KeywordOnly}},
		Return: IntClass,
	}}
	got, err := TypeOfCallable(kwOnly)
	if err != nil {
		t.Fatalf("TypeOfCallable error: %v", err)
	}
	if !typesEqual(got, FnEllipsis(IntClass)) {
		t.Errorf("keyword-only = %s, want %s", got, FnEllipsis(IntClass))
	}

	// A required parameter after an optional one likewise.
	mixed := declaredFunc{Signature{
		Params: []Parameter{
			{Name: "a", Type: IntClass, Kind: PositionalOrKeyword, HasDefault: true},
			{Name: "b", Type: IntClass, Kind: PositionalOrKeyword},
		},
		Return: IntClass,
	}}
	got, err = TypeOfCallable(mixed)
	if err != nil {
		t.Fatalf("TypeOfCallable error: %v", err)
	}
	if !typesEqual(got, FnEllipsis(IntClass)) {
		t.Errorf("mixed defaults = %s, want %s", got, FnEllipsis(IntClass))
	}

	if _, err := TypeOfCallable(5); err == nil {
		t.Fatalf("expected an error for a non-callable")
	}
}

type declaredFunc struct{ sig Signature }

func (d declaredFunc) TypeSignature() Signature { return d.sig }
