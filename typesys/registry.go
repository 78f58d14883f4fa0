package typesys

import "github.com/google/uuid"

// Ancestor describes one immediate generic parent of a shape, together
// with the type arguments the shape supplies for it. Arguments containing
// type variables define the shape's own formal parameter list.
type Ancestor struct {
	Base Type
	Args []Type
}

// Registry is the generic ancestry table: synthetic parent-type and
// type-parameter information for shapes whose declared structure does not
// self-report it. The default registry is built once at package
// initialization and never mutated; callers extend it by merging their
// own table into a copy via WithExtension.
type Registry struct {
	entries map[Type][]Ancestor
}

var defaultRegistry *Registry

// DefaultRegistry returns the shared, read-only ancestry registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// WithExtension returns a new registry containing this registry's
// entries plus the given ones. Extension entries for an already-known
// shape replace the built-in entry. The receiver is left untouched.
func (r *Registry) WithExtension(ext map[Type][]Ancestor) *Registry {
	merged := make(map[Type][]Ancestor, len(r.entries)+len(ext))
	for k, v := range r.entries {
		merged[k] = v
	}
	for k, v := range ext {
		merged[k] = v
	}
	return &Registry{entries: merged}
}

func (r *Registry) lookup(ident Type) ([]Ancestor, bool) {
	ancestors, ok := r.entries[ident]
	return ancestors, ok
}

// params derives a shape's formal type-parameter list from its ancestry
// entry: the free variables of the substitution tuples, deduplicated in
// first-occurrence order. ok is false when the registry has no entry for
// the shape at all.
func (r *Registry) params(ident Type) ([]*TypeVar, bool) {
	ancestors, ok := r.lookup(ident)
	if !ok {
		return nil, false
	}
	out := []*TypeVar{}
	seen := map[uuid.UUID]bool{}
	for _, anc := range ancestors {
		for _, arg := range anc.Args {
			for _, v := range freeTypeVars(arg) {
				if !seen[v.id] {
					seen[v.id] = true
					out = append(out, v)
				}
			}
		}
	}
	return out, true
}

// Shared registry type variables, mirroring the variance the shapes
// declare for their slots.
var (
	tvT  = NewTypeVar("T")
	tvK  = NewTypeVar("K")
	tvV  = NewTypeVar("V")
	tvCo = NewTypeVar("T_co", WithVariance(Covariant))
	tvKC = NewTypeVar("K_co", WithVariance(Covariant))
	tvVC = NewTypeVar("V_co", WithVariance(Covariant))

	tvCT = NewTypeVar("CT_co", WithVariance(Covariant))
	tvAC = NewTypeVar("A_contra", WithVariance(Contravariant))
	tvRC = NewTypeVar("R_co", WithVariance(Covariant))

	tvYC  = NewTypeVar("Y_co", WithVariance(Covariant))
	tvSC  = NewTypeVar("S_contra", WithVariance(Contravariant))
	tvACo = NewTypeVar("A_co", WithVariance(Covariant))

	tvAnyStr = NewTypeVar("AnyStr", WithConstraints(StrClass, BytesClass))
)

func init() {
	entries := map[Type][]Ancestor{
		TypeOf:    {{Base: Generic, Args: []Type{tvCT}}},
		Annotated: {{Base: Generic, Args: []Type{tvCo}}},
		ClassVar:  {{Base: Generic, Args: []Type{tvCo}}},
		Final:     {{Base: Generic, Args: []Type{tvCo}}},
		Optional:  {{Base: Generic, Args: []Type{tvCo}}},
		Union:     {{Base: Generic, Args: []Type{tvCo}}},

		Callable: {{Base: Generic, Args: []Type{tvAC, tvRC}}},

		Dict:        {{Base: MutableMapping, Args: []Type{tvK, tvV}}},
		DefaultDict: {{Base: MutableMapping, Args: []Type{tvK, tvV}}},
		OrderedDict: {{Base: MutableMapping, Args: []Type{tvK, tvV}}},
		ChainMap:    {{Base: MutableMapping, Args: []Type{tvK, tvV}}},
		Counter:     {{Base: MutableMapping, Args: []Type{tvK, IntClass}}},

		Set:       {{Base: MutableSet, Args: []Type{tvT}}},
		FrozenSet: {{Base: AbstractSet, Args: []Type{tvCo}}},

		List:  {{Base: MutableSequence, Args: []Type{tvT}}},
		Deque: {{Base: MutableSequence, Args: []Type{tvT}}},
		Tuple: {{Base: Sequence, Args: []Type{tvCo}}},

		Collection: {
			{Base: Sized},
			{Base: Iterable, Args: []Type{tvCo}},
			{Base: Container, Args: []Type{tvCo}},
		},
		Container:  {{Base: Generic, Args: []Type{tvCo}}},
		Iterable:   {{Base: Generic, Args: []Type{tvCo}}},
		Iterator:   {{Base: Iterable, Args: []Type{tvCo}}},
		Reversible: {{Base: Iterable, Args: []Type{tvCo}}},

		Generator: {
			{Base: Iterator, Args: []Type{tvYC}},
			{Base: Generic, Args: []Type{tvYC, tvSC, tvRC}},
		},
		Awaitable: {{Base: Generic, Args: []Type{tvACo}}},
		Coroutine: {
			{Base: Awaitable, Args: []Type{tvACo}},
			{Base: Generic, Args: []Type{tvCo, tvSC, tvACo}},
		},
		AsyncIterable: {{Base: Generic, Args: []Type{tvCo}}},
		AsyncIterator: {{Base: AsyncIterable, Args: []Type{tvCo}}},
		AsyncGenerator: {
			{Base: AsyncIterator, Args: []Type{tvYC}},
			{Base: Generic, Args: []Type{tvYC, tvSC}},
		},
		ContextManager:      {{Base: Generic, Args: []Type{tvCo}}},
		AsyncContextManager: {{Base: Generic, Args: []Type{tvCo}}},

		RegexPattern: {{Base: Generic, Args: []Type{tvAnyStr}}},
		RegexMatch:   {{Base: Generic, Args: []Type{tvAnyStr}}},

		AbstractSet: {
			{Base: Sized},
			{Base: Collection, Args: []Type{tvCo}},
		},
		MutableSet: {{Base: AbstractSet, Args: []Type{tvT}}},
		ByteString: {{Base: Sequence, Args: []Type{IntClass}}},

		ItemsView: {
			{Base: MappingView, Args: []Type{Apply(Tuple, tvKC, tvVC)}},
			{Base: AbstractSet, Args: []Type{Apply(Tuple, tvKC, tvVC)}},
		},
		KeysView: {
			{Base: MappingView, Args: []Type{tvKC}},
			{Base: AbstractSet, Args: []Type{tvKC, tvVC}},
		},
		ValuesView: {{Base: MappingView, Args: []Type{tvVC}}},
		MappingView: {
			{Base: Sized},
			{Base: Iterable, Args: []Type{tvCo}},
		},
		Mapping: {
			{Base: Collection, Args: []Type{tvK}},
			{Base: Generic, Args: []Type{tvK, tvV}},
		},
		MutableMapping: {{Base: Mapping, Args: []Type{tvK, tvV}}},
		Sequence: {
			{Base: Reversible, Args: []Type{tvCo}},
			{Base: Collection, Args: []Type{tvCo}},
		},
		MutableSequence: {{Base: Sequence, Args: []Type{tvT}}},

		// Concrete classes whose generic ancestry the value level
		// doesn't record.
		StrClass:   {{Base: Sequence, Args: []Type{StrClass}}},
		BytesClass: {{Base: Sequence, Args: []Type{IntClass}}},
	}

	// The native vocabulary shares the verbose ancestor lists.
	native := map[Type]Type{
		NativeTuple:           Tuple,
		NativeList:            List,
		NativeDict:            Dict,
		NativeSet:             Set,
		NativeFrozenSet:       FrozenSet,
		NativeType:            TypeOf,
		NativeCallable:        Callable,
		NativeDeque:           Deque,
		NativeDefaultDict:     DefaultDict,
		NativeOrderedDict:     OrderedDict,
		NativeCounter:         Counter,
		NativeChainMap:        ChainMap,
		NativeIterable:        Iterable,
		NativeIterator:        Iterator,
		NativeReversible:      Reversible,
		NativeContainer:       Container,
		NativeCollection:      Collection,
		NativeSequence:        Sequence,
		NativeMutableSequence: MutableSequence,
		NativeMapping:         Mapping,
		NativeMutableMapping:  MutableMapping,
		NativeAbstractSet:     AbstractSet,
		NativeMutableSet:      MutableSet,
		NativeMappingView:     MappingView,
		NativeKeysView:        KeysView,
		NativeValuesView:      ValuesView,
		NativeItemsView:       ItemsView,
		NativeByteString:      ByteString,

		NativeGenerator:           Generator,
		NativeAwaitable:           Awaitable,
		NativeCoroutine:           Coroutine,
		NativeAsyncIterable:       AsyncIterable,
		NativeAsyncIterator:       AsyncIterator,
		NativeAsyncGenerator:      AsyncGenerator,
		NativeContextManager:      ContextManager,
		NativeAsyncContextManager: AsyncContextManager,
	}
	for nat, verb := range native {
		entries[nat] = entries[verb]
	}

	defaultRegistry = &Registry{entries: entries}
}
