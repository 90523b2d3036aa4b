package rule

import (
	"fmt"
	"unicode"
)

// Reason classifies a ParseError.
type Reason string

const (
	ReasonUnbalanced      Reason = "unbalanced parentheses"
	ReasonUnknownOperator Reason = "unknown operator"
	ReasonArity           Reason = "wrong arity"
	ReasonLiteral         Reason = "unrecognized literal"
	ReasonType            Reason = "type mismatch"
	ReasonSyntax          Reason = "syntax error"
)

// ParseError reports why a rule text could not be turned into a tree.
type ParseError struct {
	Input  string
	Pos    int // byte offset into Input
	Reason Reason
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("invalid rule at offset %d: %s", e.Pos, e.Reason)
	}
	return fmt.Sprintf("invalid rule at offset %d: %s: %s", e.Pos, e.Reason, e.Msg)
}

// Parse turns rule text into a type-checked boolean expression tree.
//
//	Expr ::= CardSlot | CardToken | BoolLit | RankLit | SuitLit | ColorLit
//	       | Op "(" Expr ("," Expr)* ")"
//
// Whitespace, including newlines, is ignored between tokens.
func Parse(text string) (Node, error) {
	p := &parser{input: text, toks: lex(text)}
	n, err := p.expr()
	if err != nil {
		return Node{}, err
	}
	switch t := p.peek(); t.typ {
	case tokEOF:
	case tokRParen:
		return Node{}, p.fail(t.pos, ReasonUnbalanced, "unexpected ')'")
	default:
		return Node{}, p.fail(t.pos, ReasonSyntax, fmt.Sprintf("unexpected %q after expression", t.text))
	}
	if n.kind != KindBool {
		return Node{}, p.fail(0, ReasonType, fmt.Sprintf("a rule must be boolean, got %s", n.kind))
	}
	return n, nil
}

// MustParse is like Parse but panics on invalid text.
func MustParse(text string) Node {
	n, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return n
}

type tokType uint8

const (
	tokEOF tokType = iota
	tokWord
	tokLParen
	tokRParen
	tokComma
	tokInvalid
)

type token struct {
	typ  tokType
	text string
	pos  int
}

func lex(s string) []token {
	var toks []token
	i := 0
	for i < len(s) {
		r := rune(s[i])
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{typ: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{typ: tokRParen, text: ")", pos: i})
			i++
		case r == ',':
			toks = append(toks, token{typ: tokComma, text: ",", pos: i})
			i++
		case isWordByte(s[i]):
			start := i
			for i < len(s) && isWordByte(s[i]) {
				i++
			}
			toks = append(toks, token{typ: tokWord, text: s[start:i], pos: start})
		default:
			toks = append(toks, token{typ: tokInvalid, text: s[i : i+1], pos: i})
			i++
		}
	}
	return append(toks, token{typ: tokEOF, pos: len(s)})
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

type parser struct {
	input string
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(pos int, reason Reason, msg string) *ParseError {
	return &ParseError{Input: p.input, Pos: pos, Reason: reason, Msg: msg}
}

func (p *parser) expr() (Node, error) {
	t := p.next()
	switch t.typ {
	case tokWord:
	case tokEOF:
		if p.depth > 0 {
			return Node{}, p.fail(t.pos, ReasonUnbalanced, "missing ')'")
		}
		return Node{}, p.fail(t.pos, ReasonSyntax, "unexpected end of input")
	case tokRParen:
		return Node{}, p.fail(t.pos, ReasonUnbalanced, "unexpected ')'")
	default:
		return Node{}, p.fail(t.pos, ReasonSyntax, fmt.Sprintf("unexpected %q", t.text))
	}

	if p.peek().typ != tokLParen {
		return p.leaf(t)
	}

	op, ok := LookupOp(t.text)
	if !ok {
		return Node{}, p.fail(t.pos, ReasonUnknownOperator, fmt.Sprintf("%q", t.text))
	}
	open := p.next()
	p.depth++
	defer func() { p.depth-- }()

	var args []Node
	if p.peek().typ == tokRParen {
		p.next()
		return Node{}, p.fail(t.pos, ReasonArity, fmt.Sprintf("%s expects %d operand(s), got 0", t.text, op.Arity()))
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return Node{}, err
		}
		args = append(args, arg)

		sep := p.next()
		if sep.typ == tokComma {
			continue
		}
		if sep.typ == tokRParen {
			break
		}
		if sep.typ == tokEOF {
			return Node{}, p.fail(open.pos, ReasonUnbalanced, fmt.Sprintf("missing ')' for %s", t.text))
		}
		return Node{}, p.fail(sep.pos, ReasonSyntax, fmt.Sprintf("expected ',' or ')', got %q", sep.text))
	}

	if want := op.Arity(); len(args) != want {
		return Node{}, p.fail(t.pos, ReasonArity, fmt.Sprintf("%s expects %d operand(s), got %d", t.text, want, len(args)))
	}
	n, err := Call(op, args...)
	if err != nil {
		return Node{}, p.fail(t.pos, ReasonType, err.Error())
	}
	return n, nil
}

func (p *parser) leaf(t token) (Node, error) {
	if s, ok := ParseSlot(t.text); ok {
		return Ref(s), nil
	}
	if v, ok := ParseLiteral(t.text); ok {
		return Lit(v), nil
	}
	if _, ok := LookupOp(t.text); ok {
		return Node{}, p.fail(t.pos, ReasonSyntax, fmt.Sprintf("operator %s used without operands", t.text))
	}
	return Node{}, p.fail(t.pos, ReasonLiteral, fmt.Sprintf("%q", t.text))
}
