package typesys

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ParamKind says how a parameter binds. The ordering matters: a
// parameter list is well-formed only if kinds appear in this order.
type ParamKind int

const (
	PositionalOnly ParamKind = iota
	PositionalOrKeyword
	VarPositional
	KeywordOnly
	VarKeyword
)

func (k ParamKind) String() string {
	switch k {
	case PositionalOnly:
		return "positional-only"
	case PositionalOrKeyword:
		return "positional-or-keyword"
	case VarPositional:
		return "var-positional"
	case KeywordOnly:
		return "keyword-only"
	case VarKeyword:
		return "var-keyword"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Parameter is one formal parameter of a callable.
type Parameter struct {
	Name       string
	Type       Type
	Kind       ParamKind
	HasDefault bool
}

// optional reports whether a call may leave the parameter unbound: it
// has a default or absorbs a variable number of arguments.
func (p Parameter) optional() bool {
	return p.HasDefault || p.Kind == VarPositional || p.Kind == VarKeyword
}

// Signature is the full shape of a callable: its parameters in
// declaration order and its return type.
type Signature struct {
	Params []Parameter
	Return Type
}

// Func lets a value declare a richer signature than reflection could
// recover, keyword-only parameters and defaults included.
type Func interface {
	TypeSignature() Signature
}

// Type renders the signature as a callable shape. Anything beyond plain
// positional parameters cannot be expressed as a fixed parameter list,
// so it degrades to the unconstrained form.
func (s Signature) Type() Type {
	params := make([]Type, 0, len(s.Params))
	for _, p := range s.Params {
		if p.Kind != PositionalOnly && p.Kind != PositionalOrKeyword || p.HasDefault {
			return FnEllipsis(s.ret())
		}
		t := p.Type
		if t == nil {
			t = Any
		}
		params = append(params, t)
	}
	return Fn(params, s.ret())
}

func (s Signature) ret() Type {
	if s.Return == nil {
		return Any
	}
	return s.Return
}

func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		switch p.Kind {
		case VarPositional:
			b.WriteByte('*')
		case VarKeyword:
			b.WriteString("**")
		}
		b.WriteString(p.Name)
		if p.Type != nil {
			fmt.Fprintf(&b, ": %s", p.Type)
		}
		if p.HasDefault {
			b.WriteString(" = ...")
		}
	}
	b.WriteString(") -> ")
	b.WriteString(s.ret().String())
	return b.String()
}

var signatureCache sync.Map // reflect.Type -> Signature

// SignatureOf recovers the signature of a callable value. Values
// implementing Func report their own; plain funcs are reflected, their
// parameters positional-only and a trailing error result dropped.
func SignatureOf(v any) (Signature, error) {
	if f, ok := v.(Func); ok {
		return f.TypeSignature(), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Func {
		return Signature{}, &NoSignatureError{Value: v}
	}
	rt := rv.Type()
	if cached, ok := signatureCache.Load(rt); ok {
		return cached.(Signature), nil
	}
	sig := reflectSignature(rt)
	signatureCache.Store(rt, sig)
	return sig, nil
}

func reflectSignature(rt reflect.Type) Signature {
	params := make([]Parameter, rt.NumIn())
	for i := range params {
		in := rt.In(i)
		kind := PositionalOnly
		t := FromReflectType(in)
		if rt.IsVariadic() && i == rt.NumIn()-1 {
			kind = VarPositional
			t = FromReflectType(in.Elem())
		}
		params[i] = Parameter{
			Name: fmt.Sprintf("arg%d", i),
			Type: t,
			Kind: kind,
		}
	}
	return Signature{Params: params, Return: funcReturn(rt)}
}
