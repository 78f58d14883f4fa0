package typesys

// Built-in classes. The numeric classes form a tower
// (bool < int < float < complex) so that numeric arguments participate in
// nominal comparisons the way annotations expect.
var (
	Object       = &Class{Name: "object"}
	NoneType     = &Class{Name: "NoneType", Bases: []*Class{Object}}
	ComplexClass = &Class{Name: "complex", Bases: []*Class{Object}}
	FloatClass   = &Class{Name: "float", Bases: []*Class{ComplexClass}}
	IntClass     = &Class{Name: "int", Bases: []*Class{FloatClass}}
	BoolClass    = &Class{Name: "bool", Bases: []*Class{IntClass}}
	StrClass     = &Class{Name: "str", Bases: []*Class{Object}}
	BytesClass   = &Class{Name: "bytes", Bases: []*Class{Object}}

	ListClass      = &Class{Name: "list", Bases: []*Class{Object}}
	DictClass      = &Class{Name: "dict", Bases: []*Class{Object}}
	SetClass       = &Class{Name: "set", Bases: []*Class{Object}}
	FrozenSetClass = &Class{Name: "frozenset", Bases: []*Class{Object}}
	TupleClass     = &Class{Name: "tuple", Bases: []*Class{Object}}
	TypeClass      = &Class{Name: "type", Bases: []*Class{Object}}
	FunctionClass  = &Class{Name: "function", Bases: []*Class{Object}}

	DequeClass       = &Class{Name: "deque", Module: "collections", Bases: []*Class{Object}}
	DefaultDictClass = &Class{Name: "defaultdict", Module: "collections", Bases: []*Class{DictClass}}
	OrderedDictClass = &Class{Name: "OrderedDict", Module: "collections", Bases: []*Class{DictClass}}
	CounterClass     = &Class{Name: "Counter", Module: "collections", Bases: []*Class{DictClass}}
	ChainMapClass    = &Class{Name: "ChainMap", Module: "collections", Bases: []*Class{Object}}
)

// Native vocabulary: the terse host-native generic shapes.
var (
	NativeList      = &GenericBase{Name: "list", Vocab: Native, Class: ListClass}
	NativeDict      = &GenericBase{Name: "dict", Vocab: Native, Class: DictClass}
	NativeSet       = &GenericBase{Name: "set", Vocab: Native, Class: SetClass}
	NativeFrozenSet = &GenericBase{Name: "frozenset", Vocab: Native, Class: FrozenSetClass}
	NativeTuple     = &GenericBase{Name: "tuple", Vocab: Native, Class: TupleClass, Variadic: true}
	NativeType      = &GenericBase{Name: "type", Vocab: Native, Class: TypeClass}
	NativeCallable  = &GenericBase{Name: "Callable", Module: "collections.abc", Vocab: Native, Class: FunctionClass}

	NativeIterable        = &GenericBase{Name: "Iterable", Module: "collections.abc", Vocab: Native}
	NativeIterator        = &GenericBase{Name: "Iterator", Module: "collections.abc", Vocab: Native}
	NativeReversible      = &GenericBase{Name: "Reversible", Module: "collections.abc", Vocab: Native}
	NativeContainer       = &GenericBase{Name: "Container", Module: "collections.abc", Vocab: Native}
	NativeSized           = &GenericBase{Name: "Sized", Module: "collections.abc", Vocab: Native}
	NativeCollection      = &GenericBase{Name: "Collection", Module: "collections.abc", Vocab: Native}
	NativeSequence        = &GenericBase{Name: "Sequence", Module: "collections.abc", Vocab: Native}
	NativeMutableSequence = &GenericBase{Name: "MutableSequence", Module: "collections.abc", Vocab: Native}
	NativeMapping         = &GenericBase{Name: "Mapping", Module: "collections.abc", Vocab: Native}
	NativeMutableMapping  = &GenericBase{Name: "MutableMapping", Module: "collections.abc", Vocab: Native}
	NativeAbstractSet     = &GenericBase{Name: "Set", Module: "collections.abc", Vocab: Native}
	NativeMutableSet      = &GenericBase{Name: "MutableSet", Module: "collections.abc", Vocab: Native}
	NativeMappingView     = &GenericBase{Name: "MappingView", Module: "collections.abc", Vocab: Native}
	NativeKeysView        = &GenericBase{Name: "KeysView", Module: "collections.abc", Vocab: Native}
	NativeValuesView      = &GenericBase{Name: "ValuesView", Module: "collections.abc", Vocab: Native}
	NativeItemsView       = &GenericBase{Name: "ItemsView", Module: "collections.abc", Vocab: Native}
	NativeByteString      = &GenericBase{Name: "ByteString", Module: "collections.abc", Vocab: Native, Class: BytesClass}

	NativeGenerator      = &GenericBase{Name: "Generator", Module: "collections.abc", Vocab: Native}
	NativeAwaitable      = &GenericBase{Name: "Awaitable", Module: "collections.abc", Vocab: Native}
	NativeCoroutine      = &GenericBase{Name: "Coroutine", Module: "collections.abc", Vocab: Native}
	NativeAsyncIterable  = &GenericBase{Name: "AsyncIterable", Module: "collections.abc", Vocab: Native}
	NativeAsyncIterator  = &GenericBase{Name: "AsyncIterator", Module: "collections.abc", Vocab: Native}
	NativeAsyncGenerator = &GenericBase{Name: "AsyncGenerator", Module: "collections.abc", Vocab: Native}

	NativeContextManager      = &GenericBase{Name: "AbstractContextManager", Module: "contextlib", Vocab: Native}
	NativeAsyncContextManager = &GenericBase{Name: "AbstractAsyncContextManager", Module: "contextlib", Vocab: Native}

	// Regex shapes live only in the native vocabulary.
	RegexPattern = &GenericBase{Name: "Pattern", Module: "re", Vocab: Native}
	RegexMatch   = &GenericBase{Name: "Match", Module: "re", Vocab: Native}

	NativeDeque       = &GenericBase{Name: "deque", Module: "collections", Vocab: Native, Class: DequeClass}
	NativeDefaultDict = &GenericBase{Name: "defaultdict", Module: "collections", Vocab: Native, Class: DefaultDictClass}
	NativeOrderedDict = &GenericBase{Name: "OrderedDict", Module: "collections", Vocab: Native, Class: OrderedDictClass}
	NativeCounter     = &GenericBase{Name: "Counter", Module: "collections", Vocab: Native, Class: CounterClass}
	NativeChainMap    = &GenericBase{Name: "ChainMap", Module: "collections", Vocab: Native, Class: ChainMapClass}
)

// Verbose vocabulary: the qualifier-rich shapes used by user-facing
// annotations, including the special forms that have no native
// counterpart.
var (
	List            = &GenericBase{Name: "List", Vocab: Verbose, Class: ListClass}
	Dict            = &GenericBase{Name: "Dict", Vocab: Verbose, Class: DictClass}
	Set             = &GenericBase{Name: "Set", Vocab: Verbose, Class: SetClass}
	FrozenSet       = &GenericBase{Name: "FrozenSet", Vocab: Verbose, Class: FrozenSetClass}
	Tuple           = &GenericBase{Name: "Tuple", Vocab: Verbose, Class: TupleClass, Variadic: true}
	TypeOf          = &GenericBase{Name: "Type", Vocab: Verbose, Class: TypeClass}
	Callable        = &GenericBase{Name: "Callable", Vocab: Verbose, Class: FunctionClass}
	Iterable        = &GenericBase{Name: "Iterable", Vocab: Verbose}
	Iterator        = &GenericBase{Name: "Iterator", Vocab: Verbose}
	Reversible      = &GenericBase{Name: "Reversible", Vocab: Verbose}
	Container       = &GenericBase{Name: "Container", Vocab: Verbose}
	Sized           = &GenericBase{Name: "Sized", Vocab: Verbose}
	Collection      = &GenericBase{Name: "Collection", Vocab: Verbose}
	Sequence        = &GenericBase{Name: "Sequence", Vocab: Verbose}
	MutableSequence = &GenericBase{Name: "MutableSequence", Vocab: Verbose}
	Mapping         = &GenericBase{Name: "Mapping", Vocab: Verbose}
	MutableMapping  = &GenericBase{Name: "MutableMapping", Vocab: Verbose}
	AbstractSet     = &GenericBase{Name: "AbstractSet", Vocab: Verbose}
	MutableSet      = &GenericBase{Name: "MutableSet", Vocab: Verbose}
	MappingView     = &GenericBase{Name: "MappingView", Vocab: Verbose}
	KeysView        = &GenericBase{Name: "KeysView", Vocab: Verbose}
	ValuesView      = &GenericBase{Name: "ValuesView", Vocab: Verbose}
	ItemsView       = &GenericBase{Name: "ItemsView", Vocab: Verbose}
	ByteString      = &GenericBase{Name: "ByteString", Vocab: Verbose, Class: BytesClass}

	Generator           = &GenericBase{Name: "Generator", Vocab: Verbose}
	Awaitable           = &GenericBase{Name: "Awaitable", Vocab: Verbose}
	Coroutine           = &GenericBase{Name: "Coroutine", Vocab: Verbose}
	AsyncIterable       = &GenericBase{Name: "AsyncIterable", Vocab: Verbose}
	AsyncIterator       = &GenericBase{Name: "AsyncIterator", Vocab: Verbose}
	AsyncGenerator      = &GenericBase{Name: "AsyncGenerator", Vocab: Verbose}
	ContextManager      = &GenericBase{Name: "ContextManager", Vocab: Verbose}
	AsyncContextManager = &GenericBase{Name: "AsyncContextManager", Vocab: Verbose}

	Deque           = &GenericBase{Name: "Deque", Vocab: Verbose, Class: DequeClass}
	DefaultDict     = &GenericBase{Name: "DefaultDict", Vocab: Verbose, Class: DefaultDictClass}
	OrderedDict     = &GenericBase{Name: "OrderedDict", Vocab: Verbose, Class: OrderedDictClass}
	Counter         = &GenericBase{Name: "Counter", Vocab: Verbose, Class: CounterClass}
	ChainMap        = &GenericBase{Name: "ChainMap", Vocab: Verbose, Class: ChainMapClass}

	Generic   = &GenericBase{Name: "Generic", Vocab: Verbose}
	Union     = &GenericBase{Name: "Union", Vocab: Verbose, Variadic: true}
	Optional  = &GenericBase{Name: "Optional", Vocab: Verbose}
	Literal   = &GenericBase{Name: "Literal", Vocab: Verbose, Variadic: true, paramless: true}
	ClassVar  = &GenericBase{Name: "ClassVar", Vocab: Verbose}
	Final     = &GenericBase{Name: "Final", Vocab: Verbose}
	Annotated = &GenericBase{Name: "Annotated", Vocab: Verbose}
)

// counterpartPairs links the two vocabularies. Special forms stay
// unlinked: they have no native rendering.
var counterpartPairs = [][2]*GenericBase{
	{NativeList, List},
	{NativeDict, Dict},
	{NativeSet, Set},
	{NativeFrozenSet, FrozenSet},
	{NativeTuple, Tuple},
	{NativeType, TypeOf},
	{NativeCallable, Callable},
	{NativeIterable, Iterable},
	{NativeIterator, Iterator},
	{NativeReversible, Reversible},
	{NativeContainer, Container},
	{NativeSized, Sized},
	{NativeCollection, Collection},
	{NativeSequence, Sequence},
	{NativeMutableSequence, MutableSequence},
	{NativeMapping, Mapping},
	{NativeMutableMapping, MutableMapping},
	{NativeAbstractSet, AbstractSet},
	{NativeMutableSet, MutableSet},
	{NativeMappingView, MappingView},
	{NativeKeysView, KeysView},
	{NativeValuesView, ValuesView},
	{NativeItemsView, ItemsView},
	{NativeByteString, ByteString},
	{NativeGenerator, Generator},
	{NativeAwaitable, Awaitable},
	{NativeCoroutine, Coroutine},
	{NativeAsyncIterable, AsyncIterable},
	{NativeAsyncIterator, AsyncIterator},
	{NativeAsyncGenerator, AsyncGenerator},
	{NativeContextManager, ContextManager},
	{NativeAsyncContextManager, AsyncContextManager},
	{NativeDeque, Deque},
	{NativeDefaultDict, DefaultDict},
	{NativeOrderedDict, OrderedDict},
	{NativeCounter, Counter},
	{NativeChainMap, ChainMap},
}

func init() {
	for _, pair := range counterpartPairs {
		native, verbose := pair[0], pair[1]
		native.counterpart = verbose
		verbose.counterpart = native
	}

	// Concrete-container classes double as the native generic shapes.
	ListClass.generic = NativeList
	DictClass.generic = NativeDict
	SetClass.generic = NativeSet
	FrozenSetClass.generic = NativeFrozenSet
	TupleClass.generic = NativeTuple
	TypeClass.generic = NativeType
	FunctionClass.generic = NativeCallable
	DequeClass.generic = NativeDeque
	DefaultDictClass.generic = NativeDefaultDict
	OrderedDictClass.generic = NativeOrderedDict
	CounterClass.generic = NativeCounter
	ChainMapClass.generic = NativeChainMap
}
