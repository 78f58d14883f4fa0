package typesys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNameLookup(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Type
	}{
		{"builtin scalar", "int", IntClass},
		{"builtin container", "list", NativeList},
		{"verbose container", "List", List},
		{"null name", "None", NoneType},
		{"null class name", "NoneType", NoneType},
		{"ellipsis name", "ellipsis", Ellipsis},
		{"dotted module", "typing.Mapping", Mapping},
		{"dotted collections", "collections.deque", NativeDeque},
		{"deep dotted", "collections.abc.Sequence", NativeSequence},
		{"typing fallback", "Awaitable", Awaitable},
		{"dotted abc generator", "collections.abc.Generator", NativeGenerator},
		{"dotted contextlib", "contextlib.AbstractContextManager", NativeContextManager},
		{"dotted regex", "re.Pattern", RegexPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveForwardRefs(Ref(tt.code, nil), nil, ModeName, true)
			require.NoError(t, err)
			assert.True(t, typesEqual(got, tt.want), "resolve %q = %s, want %s", tt.code, got, tt.want)
		})
	}
}

func TestResolveExpressions(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Type
	}{
		{"subscripted native", "list[int]", Apply(NativeList, IntClass)},
		{"subscripted verbose", "List[int]", Apply(List, IntClass)},
		{"nested", "dict[str, list[int]]", Apply(NativeDict, StrClass, Apply(NativeList, IntClass))},
		{"pipe union", "int | None", Un(IntClass, NoneType)},
		{"chained pipe union", "int | str | bytes", Un(IntClass, StrClass, BytesClass)},
		{"optional form", "Optional[int]", Un(IntClass, NoneType)},
		{"explicit union", "Union[int, str]", Un(IntClass, StrClass)},
		{"single-member union collapses", "Union[int]", IntClass},
		{"callable", "Callable[[int, str], bool]", Fn([]Type{IntClass, StrClass}, BoolClass)},
		{"unconstrained callable", "Callable[..., int]", FnEllipsis(IntClass)},
		{"literal values", "Literal[1, 'a', True]", Lit(int64(1), "a", true)},
		{"literal none", "Literal[None]", Parameterized{Base: Literal, Args: []Type{NoneType}}},
		{"variadic tuple", "tuple[int, ...]", Apply(NativeTuple, IntClass, Ellipsis)},
		{"annotated qualifier", "Annotated[int, 'meta']", Apply(Annotated, IntClass, Value{V: "meta"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveForwardRefs(Ref(tt.code, nil), nil, ModeExpr, true)
			require.NoError(t, err)
			assert.True(t, typesEqual(got, tt.want), "resolve %q = %s, want %s", tt.code, got, tt.want)
		})
	}
}

func TestResolveNamespaces(t *testing.T) {
	ns := NewNamespace("app")
	node := NewClass("Node", Object)
	ns.Bind("Node", node)
	ns.Bind("Alias", "Node")

	got, err := ResolveForwardRefs(Ref("Node", ns), ns, ModeName, true)
	require.NoError(t, err)
	assert.Equal(t, Type(node), got)

	// A binding to a string is a further forward reference, resolved in
	// the same namespace.
	got, err = ResolveForwardRefs(Ref("Alias", ns), ns, ModeName, true)
	require.NoError(t, err)
	assert.Equal(t, Type(node), got)

	// The reference's own context wins over the argument namespace.
	other := NewNamespace("other")
	other.Bind("Node", StrClass)
	got, err = ResolveForwardRefs(Ref("Node", other), ns, ModeName, true)
	require.NoError(t, err)
	assert.Equal(t, Type(StrClass), got)

	// User bindings shadow builtins.
	ns.Bind("int", StrClass)
	got, err = ResolveForwardRefs(Ref("int", ns), ns, ModeName, true)
	require.NoError(t, err)
	assert.Equal(t, Type(StrClass), got)
}

func TestResolveRecursesIntoArguments(t *testing.T) {
	ns := NewNamespace("app")
	node := NewClass("Node", Object)
	ns.Bind("Node", node)

	got, err := ResolveForwardRefs(Apply(List, Ref("Node", ns)), ns, ModeExpr, true)
	require.NoError(t, err)
	assert.True(t, typesEqual(got, Apply(List, node)), "got %s", got)

	// Quoted names nested in expressions resolve too.
	got, err = ResolveForwardRefs(Ref(`list["Node"]`, ns), ns, ModeExpr, true)
	require.NoError(t, err)
	assert.True(t, typesEqual(got, Apply(NativeList, node)), "got %s", got)

	// Literal payloads are values, not references.
	lit := Lit("Node")
	got, err = ResolveForwardRefs(lit, ns, ModeExpr, true)
	require.NoError(t, err)
	assert.True(t, typesEqual(got, lit), "got %s", got)
}

func TestResolveStrictness(t *testing.T) {
	ref := Ref("Missing", nil)

	_, err := ResolveForwardRefs(ref, nil, ModeName, true)
	var cannot *CannotResolveNameError
	require.ErrorAs(t, err, &cannot)
	assert.Equal(t, "Missing", cannot.Name)

	got, err := ResolveForwardRefs(ref, nil, ModeName, false)
	require.NoError(t, err)
	assert.True(t, typesEqual(got, ref), "non-strict should leave the ref, got %s", got)

	// Non-strict resolution still fixes what it can reach.
	got, err = ResolveForwardRefs(Apply(List, ref), nil, ModeExpr, false)
	require.NoError(t, err)
	assert.True(t, typesEqual(got, Apply(List, ref)), "got %s", got)
}

func TestResolveCycles(t *testing.T) {
	ns := NewNamespace("app")
	ns.Bind("A", "B")
	ns.Bind("B", "A")

	_, err := ResolveForwardRefs(Ref("A", ns), ns, ModeName, true)
	var cyclic *CyclicReferenceError
	require.ErrorAs(t, err, &cyclic)

	got, err := ResolveForwardRefs(Ref("A", ns), ns, ModeName, false)
	require.NoError(t, err)
	_, isRef := got.(ForwardRef)
	assert.True(t, isRef, "non-strict cycle should come back as a ref, got %s", got)
}

func TestResolveOuter(t *testing.T) {
	ns := NewNamespace("app")
	ns.Bind("X", "int")

	// Only one level: the alias resolves to another reference.
	got, err := ResolveOuter(Ref("X", ns), ns)
	require.NoError(t, err)
	ref, ok := got.(ForwardRef)
	require.True(t, ok, "got %s", got)
	assert.Equal(t, "int", ref.Code)

	// Non-references pass through.
	got, err = ResolveOuter(IntClass, nil)
	require.NoError(t, err)
	assert.Equal(t, Type(IntClass), got)
}
