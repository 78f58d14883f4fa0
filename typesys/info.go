package typesys

// Info is a convenience wrapper around an annotation: it resolves the
// outermost forward reference, strips Annotated layers while keeping
// their payloads, peels parameterization down to the bare shape, and
// answers the common classification questions without error plumbing.
type Info struct {
	raw     Type
	typ     Type
	args    []Type
	payload []any
}

// NewInfo inspects an annotation against a namespace. The outermost
// forward reference must resolve; nested ones are kept for later. The
// resulting shape is reported in the native vocabulary, with the last
// peeled argument list kept alongside.
func NewInfo(t Type, ns *Namespace) (*Info, error) {
	info := &Info{raw: t}
	cur, err := ResolveOuter(t, ns)
	if err != nil {
		return nil, err
	}
	var args []Type
	for {
		p, ok := cur.(Parameterized)
		if !ok {
			break
		}
		if p.Base == Annotated && len(p.Args) > 0 {
			for _, extra := range p.Args[1:] {
				if v, isValue := extra.(Value); isValue {
					info.payload = append(info.payload, v.V)
				} else {
					info.payload = append(info.payload, extra)
				}
			}
			cur, err = ResolveOuter(p.Args[0], ns)
			if err != nil {
				return nil, err
			}
			args = nil
			continue
		}
		base, err := GenericBaseOf(cur)
		if err != nil {
			return nil, err
		}
		args, err = TypeArgumentsOf(cur)
		if err != nil {
			return nil, err
		}
		cur = base
	}
	typ, err := ToNative(cur, false)
	if err != nil {
		return nil, err
	}
	info.typ = typ
	info.args = args
	return info, nil
}

// Raw returns the annotation as given.
func (i *Info) Raw() Type { return i.raw }

// Type returns the bare shape: Annotated layers and type arguments
// stripped, rendered in the native vocabulary.
func (i *Info) Type() Type { return i.typ }

// Annotations returns the payloads collected from Annotated layers,
// outermost first.
func (i *Info) Annotations() []any { return i.payload }

// Arguments returns the type arguments the annotation supplied, nil
// when it was never parameterized.
func (i *Info) Arguments() []Type { return i.args }

// Parameters returns the formal type parameters of the bare shape.
func (i *Info) Parameters() ([]*TypeVar, error) {
	return TypeParametersOf(i.typ)
}

// IsGeneric reports whether the bare shape has a parameter list at all,
// even an empty one.
func (i *Info) IsGeneric() bool {
	_, err := TypeParametersOf(i.typ)
	return err == nil
}

// IsFullyParameterizedGeneric reports whether the bare shape is generic
// yet requires no further type arguments.
func (i *Info) IsFullyParameterizedGeneric() bool {
	params, err := TypeParametersOf(i.typ)
	return err == nil && len(params) == 0
}

func (i *Info) String() string {
	return i.typ.String()
}
