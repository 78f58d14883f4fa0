// Package typeexpr parses textual type expressions of the kind that
// appear inside forward references: dotted names, subscriptions,
// literal lists, strings, numbers, None, Ellipsis and | unions.
package typeexpr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Node is a parsed expression node.
type Node interface {
	node()
}

// Name is a bare identifier.
type Name struct {
	Ident string
}

// Attr is a dotted attribute access, X.Ident.
type Attr struct {
	X     Node
	Ident string
}

// Index is a subscription, X[Args...].
type Index struct {
	X    Node
	Args []Node
}

// List is a bracketed list literal, [Elems...].
type List struct {
	Elems []Node
}

// Str is a quoted string literal.
type Str struct {
	Value string
}

// Num is a numeric literal.
type Num struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// Bool is True or False.
type Bool struct {
	Value bool
}

// None is the null literal.
type None struct{}

// EllipsisLit is the ... literal.
type EllipsisLit struct{}

// BinOr is an X | Y union expression.
type BinOr struct {
	X Node
	Y Node
}

func (Name) node()        {}
func (Attr) node()        {}
func (Index) node()       {}
func (List) node()        {}
func (Str) node()         {}
func (Num) node()         {}
func (Bool) node()        {}
func (None) node()        {}
func (EllipsisLit) node() {}
func (BinOr) node()       {}

// SyntaxError reports malformed input with the offending position.
type SyntaxError struct {
	Src string
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid type expression %q at offset %d: %s", e.Src, e.Pos, e.Msg)
}

// Parse parses a single type expression and requires it to consume the
// whole input.
func Parse(src string) (Node, error) {
	p := &parser{src: src}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return n, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Src: p.src, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// parseExpr handles the lowest-precedence level, | unions.
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.peek() != '|' {
			return left, nil
		}
		p.pos++
		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		left = BinOr{X: left, Y: right}
	}
}

// parsePostfix handles attribute access and subscription chains.
func (p *parser) parsePostfix() (Node, error) {
	n, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '.':
			p.pos++
			ident, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			n = Attr{X: n, Ident: ident}
		case '[':
			args, err := p.parseBracketed()
			if err != nil {
				return nil, err
			}
			n = Index{X: n, Args: args}
		default:
			return n, nil
		}
	}
}

func (p *parser) parseAtom() (Node, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == 0:
		return nil, p.errorf("unexpected end of input")
	case c == '(':
		p.pos++
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.errorf("expected )")
		}
		p.pos++
		return n, nil
	case c == '[':
		elems, err := p.parseBracketed()
		if err != nil {
			return nil, err
		}
		return List{Elems: elems}, nil
	case c == '\'' || c == '"':
		return p.parseString(c)
	case c == '.':
		if strings.HasPrefix(p.src[p.pos:], "...") {
			p.pos += 3
			return EllipsisLit{}, nil
		}
		return nil, p.errorf("unexpected .")
	case c == '-' || c >= '0' && c <= '9':
		return p.parseNumber()
	case isIdentStart(rune(c)):
		ident, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		switch ident {
		case "None":
			return None{}, nil
		case "True":
			return Bool{Value: true}, nil
		case "False":
			return Bool{Value: false}, nil
		case "Ellipsis":
			return EllipsisLit{}, nil
		}
		return Name{Ident: ident}, nil
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

// parseBracketed consumes a [...] group and returns its comma-separated
// elements. A trailing comma is permitted, an empty group is not.
func (p *parser) parseBracketed() ([]Node, error) {
	p.pos++ // consume [
	var elems []Node
	for {
		p.skipSpace()
		if p.peek() == ']' {
			if len(elems) == 0 {
				return nil, p.errorf("empty subscription")
			}
			p.pos++
			return elems, nil
		}
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, p.errorf("expected , or ]")
		}
	}
}

func (p *parser) parseString(quote byte) (Node, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return Str{Value: b.String()}, nil
		case '\\':
			if p.pos+1 >= len(p.src) {
				return nil, p.errorf("unterminated escape")
			}
			p.pos++
			b.WriteByte(p.src[p.pos])
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.errorf("unterminated string")
}

func (p *parser) parseNumber() (Node, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	isFloat := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !isFloat && !strings.HasPrefix(p.src[p.pos:], "...") {
			isFloat = true
			p.pos++
			continue
		}
		break
	}
	text := p.src[start:p.pos]
	if text == "" || text == "-" {
		return nil, p.errorf("malformed number")
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("malformed number %q", text)
		}
		return Num{Float: f, IsFloat: true}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf("malformed number %q", text)
	}
	return Num{Int: i}, nil
}

func (p *parser) parseIdent() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if p.pos == start && !isIdentStart(r) || p.pos > start && !isIdentPart(r) {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected identifier")
	}
	return p.src[start:p.pos], nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
