package church

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"github.com/vic/tromp/pkg/lambda"
)

// Compiler translates arithmetic over naturals into Church-encoded lambda
// terms.
//
//	expr   ::= term (('+' | '-') term)*
//	term   ::= power ('*' power)*
//	power  ::= atom ('^' power)?
//	atom   ::= natural | '(' expr ')'
//
// Subtraction is truncated at zero. Literals above MaxNumeral are rejected,
// since a numeral's term grows with its value.
type Compiler struct {
	// Defs resolves the combinators the output refers to. Nil means the
	// standard prelude.
	Defs map[string]lambda.Term
	// KeepNames leaves plus, sub, mult and pow as free names instead of
	// expanding them.
	KeepNames bool
}

// Compile compiles src with the standard prelude.
func Compile(src string) (lambda.Term, error) {
	var c Compiler
	return c.Compile(src)
}

// Compile parses src and returns its Church encoding.
func (c *Compiler) Compile(src string) (lambda.Term, error) {
	p := &arithParser{src: []rune(src)}
	term, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	if c.KeepNames {
		return term, nil
	}
	defs := c.Defs
	if defs == nil {
		defs = Prelude()
	}
	return Expand(term, defs)
}

// MaxNumeral is the largest literal Compile accepts.
const MaxNumeral = 10000

type arithParser struct {
	src []rune
	pos int
}

func (p *arithParser) errorf(format string, args ...any) error {
	return &lambda.ParseError{Pos: p.offset(), Msg: fmt.Sprintf(format, args...)}
}

// offset converts the rune position to a byte offset.
func (p *arithParser) offset() int {
	return len(string(p.src[:p.pos]))
}

func (p *arithParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *arithParser) peek() rune {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func binary(op string, left, right lambda.Term) lambda.Term {
	return lambda.App{Fun: lambda.App{Fun: lambda.Var{Name: op}, Arg: left}, Arg: right}
}

func (p *arithParser) parseExpr() (lambda.Term, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op string
		switch p.peek() {
		case '+':
			op = "plus"
		case '-':
			op = "sub"
		default:
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binary(op, left, right)
	}
}

func (p *arithParser) parseTerm() (lambda.Term, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.peek() == '*' {
		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = binary("mult", left, right)
	}
	return left, nil
}

func (p *arithParser) parsePower() (lambda.Term, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return binary("pow", base, exp), nil
}

func (p *arithParser) parseAtom() (lambda.Term, error) {
	switch r := p.peek(); {
	case r == '(':
		p.pos++
		term, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("expected ')'")
		}
		p.pos++
		return term, nil
	case unicode.IsDigit(r):
		start := p.pos
		for p.pos < len(p.src) && unicode.IsDigit(p.src[p.pos]) {
			p.pos++
		}
		digits := string(p.src[start:p.pos])
		n, err := strconv.Atoi(digits)
		switch {
		case errors.Is(err, strconv.ErrRange) || (err == nil && n > MaxNumeral):
			p.pos = start
			return nil, p.errorf("numeral %s exceeds %d", digits, MaxNumeral)
		case err != nil:
			p.pos = start
			return nil, p.errorf("bad number: %v", err)
		}
		return Numeral(n), nil
	case r == 0:
		return nil, p.errorf("unexpected end of input")
	default:
		return nil, p.errorf("unexpected %q", r)
	}
}
