package frontend

import (
	"strconv"
	"strings"

	"github.com/keurnel/assembler/architecture/x86_64"
)

// syntaxError is frontend's own malformed-operand signal; assemble.go wraps
// it (and everything else) with line number and source text before it
// leaves the package, per spec §4.10's closing paragraph.
type syntaxError struct{ msg string }

func (e *syntaxError) Error() string { return e.msg }

func parseIntLiteral(text string) (int64, error) {
	return strconv.ParseInt(text, 0, 64)
}

// parser evaluates one operand's sub-expression against a namespace: every
// register name, every label seen so far, and any caller-supplied extra
// symbols (spec §4.10). Unrecognised identifiers are treated as forward
// label references — resolved later by codepage.Compile's symbol table, or
// reported as an undefined-symbol NameError at that point if never declared.
type parser struct {
	lex       *lexer
	tok       token
	namespace map[string]any
}

func newParser(text string, namespace map[string]any) (*parser, error) {
	p := &parser{lex: newLexer(text), namespace: namespace}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// parseExpr parses the full operand text and requires it be fully consumed.
func (p *parser) parseExpr() (any, error) {
	v, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &syntaxError{msg: "unexpected trailing token in operand"}
	}
	return v, nil
}

func (p *parser) expr() (any, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		neg := p.tok.kind == tokMinus
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if neg {
			right, err = negateValue(right)
			if err != nil {
				return nil, err
			}
		}
		left, err = addValues(left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) term() (any, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left, err = mulValues(left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) unary() (any, error) {
	if p.tok.kind == tokMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		return negateValue(v)
	}
	return p.primary()
}

func (p *parser) primary() (any, error) {
	switch p.tok.kind {
	case tokNumber:
		v := p.tok.num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return v, nil

	case tokLBracket:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRBracket {
			return nil, &syntaxError{msg: "unterminated '[' in operand"}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return toPointer(inner)

	case tokIdent:
		name := p.tok.literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.resolveIdent(name)

	default:
		return nil, &syntaxError{msg: "expected operand value"}
	}
}

func (p *parser) resolveIdent(name string) (any, error) {
	if reg, ok := registerAliases[strings.ToLower(name)]; ok {
		return reg, nil
	}
	if v, ok := p.namespace[name]; ok {
		return v, nil
	}
	if v, ok := p.namespace[strings.ToLower(name)]; ok {
		return v, nil
	}
	// Not a register and not a known symbol: treat as a forward label
	// reference, resolved by the code page once every label is placed.
	return x86_64.Label(name), nil
}

// toPointer coerces a bracket's inner expression value into a Pointer, per
// spec §4.10: "bracketed expressions parse as Pointer construction".
func toPointer(v any) (any, error) {
	switch t := v.(type) {
	case x86_64.Pointer:
		return t, nil
	case x86_64.Register:
		return x86_64.Of(t), nil
	case int64:
		return x86_64.Pointer{Disp: t, HasDisp: true}, nil
	case x86_64.Label:
		return t.Plus(0), nil
	default:
		return nil, &syntaxError{msg: "invalid effective-address expression"}
	}
}

// addValues implements spec §4.1's addition table over the dynamically
// typed operand values the parser produces.
func addValues(a, b any) (any, error) {
	switch av := a.(type) {
	case x86_64.Register:
		switch bv := b.(type) {
		case x86_64.Register:
			return x86_64.RegPlus(av, bv)
		case int64:
			return x86_64.Of(av).Plus(bv)
		case x86_64.Pointer, x86_64.Label:
			return x86_64.Of(av).Plus(bv)
		}
	case int64:
		switch bv := b.(type) {
		case x86_64.Register:
			return x86_64.Of(bv).Plus(av)
		case int64:
			return av + bv, nil
		case x86_64.Pointer:
			return bv.Plus(av)
		case x86_64.Label:
			return bv.Plus(av), nil
		}
	case x86_64.Pointer:
		return av.Plus(b)
	case x86_64.Label:
		switch bv := b.(type) {
		case int64:
			return av.Plus(bv), nil
		case x86_64.Register, x86_64.Pointer:
			return av.Plus(0).Plus(bv)
		case x86_64.Label:
			return nil, &syntaxError{msg: "pointer cannot reference more than one label"}
		}
	}
	return nil, &syntaxError{msg: "unsupported operand addition"}
}

func negateValue(v any) (any, error) {
	switch t := v.(type) {
	case int64:
		return -t, nil
	default:
		return nil, &syntaxError{msg: "cannot negate this operand value"}
	}
}

// mulValues implements spec §4.1's scale rule: a register times a constant
// in {1,2,4,8} yields a scaled-index Pointer; any other combination is an
// error ("reg * k other -> error").
func mulValues(a, b any) (any, error) {
	if reg, ok := a.(x86_64.Register); ok {
		if n, ok := b.(int64); ok {
			return x86_64.Scaled(reg, int(n))
		}
	}
	if reg, ok := b.(x86_64.Register); ok {
		if n, ok := a.(int64); ok {
			return x86_64.Scaled(reg, int(n))
		}
	}
	if an, ok := a.(int64); ok {
		if bn, ok := b.(int64); ok {
			return an * bn, nil
		}
	}
	return nil, &syntaxError{msg: "invalid scale expression: only register*{1,2,4,8} is valid"}
}
