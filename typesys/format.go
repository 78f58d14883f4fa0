package typesys

// FormatType renders a type the way annotations are written.
func FormatType(t Type) string {
	if t == nil {
		return "None"
	}
	return t.String()
}

// TypeOfCallable derives the callable shape of a value from its
// signature. Parameters with defaults may be omitted by callers, so
// each optional trailing parameter contributes one shorter alternative
// and the result becomes a union. Signatures that a fixed parameter
// list cannot express degrade to the unconstrained form.
func TypeOfCallable(v any) (Type, error) {
	sig, err := SignatureOf(v)
	if err != nil {
		return nil, err
	}
	ret := sig.ret()

	params := make([]Type, 0, len(sig.Params))
	optional := 0
	for _, p := range sig.Params {
		switch p.Kind {
		case PositionalOnly, PositionalOrKeyword:
			t := p.Type
			if t == nil {
				t = Any
			}
			params = append(params, t)
			if p.HasDefault {
				optional++
			} else if optional > 0 {
				// A required parameter after an optional one breaks the
				// trailing-default pattern.
				return FnEllipsis(ret), nil
			}
		case VarPositional, VarKeyword:
			return FnEllipsis(ret), nil
		case KeywordOnly:
			if !p.HasDefault {
				return FnEllipsis(ret), nil
			}
		}
	}

	if optional == 0 {
		return Fn(params, ret), nil
	}
	alts := make([]Type, 0, optional+1)
	for n := len(params) - optional; n <= len(params); n++ {
		alts = append(alts, Fn(params[:n], ret))
	}
	return Un(alts...), nil
}
