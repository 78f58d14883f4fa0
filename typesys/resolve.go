package typesys

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/typelens/typelens/internal/typeexpr"
)

// Namespace is a named symbol table that forward references resolve
// against. Symbols may be bound to types, to other namespaces (for
// dotted lookups) or to strings, which resolve as further forward
// references.
type Namespace struct {
	id      uuid.UUID
	name    string
	gen     atomic.Uint64
	mu      sync.RWMutex
	symbols map[string]any
}

// NewNamespace returns an empty namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		id:      uuid.New(),
		name:    name,
		symbols: map[string]any{},
	}
}

// Name returns the namespace's display name.
func (ns *Namespace) Name() string { return ns.name }

// Bind associates a name with a symbol, replacing any previous binding.
// It returns the namespace so bindings can be chained.
func (ns *Namespace) Bind(name string, v any) *Namespace {
	ns.mu.Lock()
	ns.symbols[name] = v
	ns.mu.Unlock()
	ns.gen.Add(1)
	return ns
}

func (ns *Namespace) lookupLocal(name string) (any, bool) {
	ns.mu.RLock()
	v, ok := ns.symbols[name]
	ns.mu.RUnlock()
	return v, ok
}

// Built-in namespaces. These back name resolution whenever a forward
// reference has no context of its own, and are always searched after
// the caller's namespace.
var (
	builtinsNamespace       = NewNamespace("builtins")
	typingNamespace         = NewNamespace("typing")
	collectionsNamespace    = NewNamespace("collections")
	collectionsABCNamespace = NewNamespace("collections.abc")
	contextlibNamespace     = NewNamespace("contextlib")
	regexNamespace          = NewNamespace("re")
)

func init() {
	for name, v := range map[string]any{
		"object":    Object,
		"int":       IntClass,
		"float":     FloatClass,
		"bool":      BoolClass,
		"complex":   ComplexClass,
		"str":       StrClass,
		"bytes":     BytesClass,
		"NoneType":  NoneType,
		"list":      NativeList,
		"dict":      NativeDict,
		"set":       NativeSet,
		"frozenset": NativeFrozenSet,
		"tuple":     NativeTuple,
		"type":      NativeType,
	} {
		builtinsNamespace.Bind(name, v)
	}
	builtinsNamespace.Bind("typing", typingNamespace)
	builtinsNamespace.Bind("collections", collectionsNamespace)
	builtinsNamespace.Bind("contextlib", contextlibNamespace)
	builtinsNamespace.Bind("re", regexNamespace)

	for name, v := range map[string]any{
		"Any":             Any,
		"List":            List,
		"Dict":            Dict,
		"Set":             Set,
		"FrozenSet":       FrozenSet,
		"Tuple":           Tuple,
		"Type":            TypeOf,
		"Callable":        Callable,
		"Iterable":        Iterable,
		"Iterator":        Iterator,
		"Reversible":      Reversible,
		"Container":       Container,
		"Sized":           Sized,
		"Collection":      Collection,
		"Sequence":        Sequence,
		"MutableSequence": MutableSequence,
		"Mapping":         Mapping,
		"MutableMapping":  MutableMapping,
		"AbstractSet":     AbstractSet,
		"MutableSet":      MutableSet,
		"MappingView":     MappingView,
		"KeysView":        KeysView,
		"ValuesView":      ValuesView,
		"ItemsView":       ItemsView,
		"ByteString":      ByteString,
		"Deque":           Deque,
		"DefaultDict":     DefaultDict,
		"OrderedDict":     OrderedDict,
		"Counter":         Counter,
		"ChainMap":        ChainMap,
		"Generic":         Generic,
		"Union":           Union,
		"Optional":        Optional,
		"Literal":         Literal,
		"ClassVar":        ClassVar,
		"Final":           Final,
		"Annotated":       Annotated,

		"Generator":           Generator,
		"Awaitable":           Awaitable,
		"Coroutine":           Coroutine,
		"AsyncIterable":       AsyncIterable,
		"AsyncIterator":       AsyncIterator,
		"AsyncGenerator":      AsyncGenerator,
		"ContextManager":      ContextManager,
		"AsyncContextManager": AsyncContextManager,
	} {
		typingNamespace.Bind(name, v)
	}

	for name, v := range map[string]any{
		"deque":       NativeDeque,
		"defaultdict": NativeDefaultDict,
		"OrderedDict": NativeOrderedDict,
		"Counter":     NativeCounter,
		"ChainMap":    NativeChainMap,
	} {
		collectionsNamespace.Bind(name, v)
	}
	collectionsNamespace.Bind("abc", collectionsABCNamespace)

	for name, v := range map[string]any{
		"Iterable":        NativeIterable,
		"Iterator":        NativeIterator,
		"Reversible":      NativeReversible,
		"Container":       NativeContainer,
		"Sized":           NativeSized,
		"Collection":      NativeCollection,
		"Sequence":        NativeSequence,
		"MutableSequence": NativeMutableSequence,
		"Mapping":         NativeMapping,
		"MutableMapping":  NativeMutableMapping,
		"Set":             NativeAbstractSet,
		"MutableSet":      NativeMutableSet,
		"MappingView":     NativeMappingView,
		"KeysView":        NativeKeysView,
		"ValuesView":      NativeValuesView,
		"ItemsView":       NativeItemsView,
		"ByteString":      NativeByteString,
		"Callable":        NativeCallable,

		"Generator":      NativeGenerator,
		"Awaitable":      NativeAwaitable,
		"Coroutine":      NativeCoroutine,
		"AsyncIterable":  NativeAsyncIterable,
		"AsyncIterator":  NativeAsyncIterator,
		"AsyncGenerator": NativeAsyncGenerator,
	} {
		collectionsABCNamespace.Bind(name, v)
	}

	contextlibNamespace.Bind("AbstractContextManager", NativeContextManager)
	contextlibNamespace.Bind("AbstractAsyncContextManager", NativeAsyncContextManager)
	regexNamespace.Bind("Pattern", RegexPattern)
	regexNamespace.Bind("Match", RegexMatch)
}

// ResolveMode controls how forward-reference source text is
// interpreted.
type ResolveMode int

const (
	// ModeName treats the whole source as a plain (possibly dotted)
	// name and looks it up directly.
	ModeName ResolveMode = iota
	// ModeExpr parses the source as a type expression, evaluating
	// subscriptions, | unions and literal values.
	ModeExpr
)

// ResolveForwardRefs replaces every forward reference reachable in t
// with the type it names, recursing through type arguments and
// parameter lists but leaving Literal values untouched. A reference
// carrying its own context resolves against that context; otherwise ns
// is used, with the typing and builtins namespaces always searched as
// fallbacks. When strict is false, names that cannot be resolved are
// left in place instead of failing.
func ResolveForwardRefs(t Type, ns *Namespace, mode ResolveMode, strict bool) (Type, error) {
	res := &resolver{ns: ns, mode: mode, strict: strict}
	return res.resolve(t, map[refKey]bool{})
}

// ResolveOuter resolves only the outermost forward reference of t, if
// any, leaving nested references for later. Unresolvable names fail.
func ResolveOuter(t Type, ns *Namespace) (Type, error) {
	ref, ok := t.(ForwardRef)
	if !ok {
		return t, nil
	}
	res := &resolver{ns: ns, mode: ModeExpr, strict: true}
	return res.resolveRef(ref)
}

type refKey struct {
	ns   uuid.UUID
	mode ResolveMode
	code string
}

type cacheKey struct {
	ns   uuid.UUID
	gen  uint64
	mode ResolveMode
	code string
}

// refCache memoizes successful single-reference resolutions. Keys carry
// the namespace generation so rebinding a symbol invalidates stale
// entries.
var refCache sync.Map

type resolver struct {
	ns     *Namespace
	mode   ResolveMode
	strict bool
}

func (res *resolver) resolve(t Type, visited map[refKey]bool) (Type, error) {
	switch tt := t.(type) {
	case ForwardRef:
		key := refKey{ns: res.contextID(tt), mode: res.mode, code: tt.Code}
		if visited[key] {
			if res.strict {
				return nil, &CyclicReferenceError{Name: tt.Code}
			}
			return tt, nil
		}
		resolved, err := res.resolveRef(tt)
		if err != nil {
			var unresolved *CannotResolveNameError
			if !res.strict && errors.As(err, &unresolved) {
				return tt, nil
			}
			return nil, err
		}
		visited[key] = true
		out, err := res.resolve(resolved, visited)
		delete(visited, key)
		return out, err
	case Parameterized:
		if tt.Base == Literal {
			return tt, nil
		}
		args := make([]Type, len(tt.Args))
		for i, arg := range tt.Args {
			// Annotated payloads are opaque values, only the annotated
			// type itself resolves.
			if tt.Base == Annotated && i > 0 {
				args[i] = arg
				continue
			}
			r, err := res.resolve(arg, visited)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return Apply(tt.Base, args...), nil
	case ParamList:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			r, err := res.resolve(p, visited)
			if err != nil {
				return nil, err
			}
			params[i] = r
		}
		return ParamList{Params: params}, nil
	default:
		return t, nil
	}
}

func (res *resolver) contextID(ref ForwardRef) uuid.UUID {
	if ref.Context != nil {
		return ref.Context.id
	}
	if res.ns != nil {
		return res.ns.id
	}
	return uuid.Nil
}

func (res *resolver) context(ref ForwardRef) *Namespace {
	if ref.Context != nil {
		return ref.Context
	}
	return res.ns
}

// resolveRef resolves a single reference's source text to a type,
// without recursing into the result.
func (res *resolver) resolveRef(ref ForwardRef) (Type, error) {
	ctx := res.context(ref)
	var gen uint64
	nsID := uuid.Nil
	if ctx != nil {
		nsID = ctx.id
		gen = ctx.gen.Load()
	}
	key := cacheKey{ns: nsID, gen: gen, mode: res.mode, code: ref.Code}
	if cached, ok := refCache.Load(key); ok {
		return cached.(Type), nil
	}

	var (
		out Type
		err error
	)
	switch res.mode {
	case ModeName:
		out, err = res.lookupDotted(ctx, ref.Code)
	default:
		var node typeexpr.Node
		node, err = typeexpr.Parse(ref.Code)
		if err != nil {
			err = &CannotResolveNameError{Name: ref.Code, Namespace: ctx}
		} else {
			out, err = res.eval(ctx, node)
		}
	}
	if err != nil {
		return nil, err
	}
	refCache.Store(key, out)
	return out, nil
}

// lookupDotted resolves a dotted name through the caller's namespace
// and the built-in fallbacks.
func (res *resolver) lookupDotted(ctx *Namespace, name string) (Type, error) {
	switch name {
	case "None", "NoneType":
		return NoneType, nil
	case "ellipsis", "...":
		return Ellipsis, nil
	}
	parts := strings.Split(name, ".")
	v, ok := res.lookupRoot(ctx, parts[0])
	if !ok {
		return nil, &CannotResolveNameError{Name: name, Namespace: ctx}
	}
	for _, part := range parts[1:] {
		inner, isNS := v.(*Namespace)
		if !isNS {
			return nil, &CannotResolveNameError{Name: name, Namespace: ctx}
		}
		v, ok = inner.lookupLocal(part)
		if !ok {
			return nil, &CannotResolveNameError{Name: name, Namespace: ctx}
		}
	}
	if _, isNS := v.(*Namespace); isNS {
		return nil, &CannotResolveNameError{Name: name, Namespace: ctx}
	}
	if s, isStr := v.(string); isStr {
		return Ref(s, ctx), nil
	}
	t, err := AsType(v)
	if err != nil {
		return nil, &CannotResolveNameError{Name: name, Namespace: ctx}
	}
	return t, nil
}

// lookupRoot searches a bare name in the caller's namespace first, then
// in typing and builtins.
func (res *resolver) lookupRoot(ctx *Namespace, name string) (any, bool) {
	roots := []*Namespace{ctx, typingNamespace, builtinsNamespace}
	for _, root := range roots {
		if root == nil {
			continue
		}
		if v, ok := root.lookupLocal(name); ok {
			return v, true
		}
	}
	return nil, false
}

// eval evaluates a parsed type expression to a type. A lookup may also
// yield a namespace mid-chain, so evaluation of names and attributes
// goes through evalSymbol and only the final value is coerced.
func (res *resolver) eval(ctx *Namespace, node typeexpr.Node) (Type, error) {
	v, err := res.evalSymbol(ctx, node)
	if err != nil {
		return nil, err
	}
	if _, isNS := v.(*Namespace); isNS {
		return nil, &CannotResolveNameError{Name: res.nodeName(node), Namespace: ctx}
	}
	if s, isStr := v.(string); isStr {
		v = Ref(s, ctx)
	}
	t, terr := AsType(v)
	if terr != nil {
		return nil, terr
	}
	return t, nil
}

func (res *resolver) evalSymbol(ctx *Namespace, node typeexpr.Node) (any, error) {
	switch n := node.(type) {
	case typeexpr.Name:
		switch n.Ident {
		case "ellipsis":
			return Ellipsis, nil
		}
		v, ok := res.lookupRoot(ctx, n.Ident)
		if !ok {
			return nil, &CannotResolveNameError{Name: n.Ident, Namespace: ctx}
		}
		return v, nil
	case typeexpr.Attr:
		base, err := res.evalSymbol(ctx, n.X)
		if err != nil {
			return nil, err
		}
		inner, isNS := base.(*Namespace)
		if !isNS {
			return nil, &CannotResolveNameError{Name: res.nodeName(node), Namespace: ctx}
		}
		v, ok := inner.lookupLocal(n.Ident)
		if !ok {
			return nil, &CannotResolveNameError{Name: res.nodeName(node), Namespace: ctx}
		}
		return v, nil
	case typeexpr.Index:
		return res.evalIndex(ctx, n)
	case typeexpr.BinOr:
		left, err := res.eval(ctx, n.X)
		if err != nil {
			return nil, err
		}
		right, err := res.eval(ctx, n.Y)
		if err != nil {
			return nil, err
		}
		return Un(left, right), nil
	case typeexpr.Str:
		// A string inside an expression is a nested forward reference.
		return Ref(n.Value, ctx), nil
	case typeexpr.None:
		return NoneType, nil
	case typeexpr.EllipsisLit:
		return Ellipsis, nil
	case typeexpr.Num, typeexpr.Bool, typeexpr.List:
		return nil, newNotAType(node)
	default:
		return nil, newNotAType(node)
	}
}

// evalIndex evaluates a subscription. Literal arguments become values
// instead of types; an expression list becomes a callable parameter
// list.
func (res *resolver) evalIndex(ctx *Namespace, n typeexpr.Index) (Type, error) {
	baseVal, err := res.evalSymbol(ctx, n.X)
	if err != nil {
		return nil, err
	}
	base, ok := baseVal.(*GenericBase)
	if !ok {
		return nil, newNotAType(baseVal)
	}
	if base == Literal {
		args := make([]Type, len(n.Args))
		for i, arg := range n.Args {
			v, err := literalValue(arg)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return Parameterized{Base: Literal, Args: args}, nil
	}
	if base == Annotated {
		args := make([]Type, 0, len(n.Args))
		for i, arg := range n.Args {
			if i > 0 {
				if v, err := literalValue(arg); err == nil {
					args = append(args, v)
					continue
				}
			}
			t, err := res.eval(ctx, arg)
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		return Parameterized{Base: Annotated, Args: args}, nil
	}
	args := make([]Type, len(n.Args))
	for i, arg := range n.Args {
		if list, isList := arg.(typeexpr.List); isList {
			params := make([]Type, len(list.Elems))
			for j, elem := range list.Elems {
				t, err := res.eval(ctx, elem)
				if err != nil {
					return nil, err
				}
				params[j] = t
			}
			args[i] = ParamList{Params: params}
			continue
		}
		t, err := res.eval(ctx, arg)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return Apply(base, args...), nil
}

// literalValue converts a literal expression node to its value type.
// Literal[None] means the null type itself.
func literalValue(node typeexpr.Node) (Type, error) {
	switch n := node.(type) {
	case typeexpr.Str:
		return Value{V: n.Value}, nil
	case typeexpr.Num:
		if n.IsFloat {
			return Value{V: n.Float}, nil
		}
		return Value{V: n.Int}, nil
	case typeexpr.Bool:
		return Value{V: n.Value}, nil
	case typeexpr.None:
		return NoneType, nil
	default:
		return nil, newNotAType(node)
	}
}

func (res *resolver) nodeName(node typeexpr.Node) string {
	switch n := node.(type) {
	case typeexpr.Name:
		return n.Ident
	case typeexpr.Attr:
		return res.nodeName(n.X) + "." + n.Ident
	default:
		return ""
	}
}
