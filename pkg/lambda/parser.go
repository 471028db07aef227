package lambda

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenLambda
	TokenDot
	TokenEqual
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLet
	TokenIn
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenLambda:
		return "'λ'"
	case TokenDot:
		return "'.'"
	case TokenEqual:
		return "'='"
	case TokenSemicolon:
		return "';'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLet:
		return "'let'"
	case TokenIn:
		return "'in'"
	default:
		return "unknown token"
	}
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	if t.Type == TokenIdent {
		return fmt.Sprintf("identifier %q", t.Literal)
	}
	return t.Type.String()
}

type Parser struct {
	input   string
	pos     int
	current Token
	err     *ParseError
}

func NewParser(input string) *Parser {
	p := &Parser{input: input}
	p.next()
	return p
}

func (p *Parser) next() {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Pos: p.pos}
		return
	}

	start := p.pos
	ch, size := utf8.DecodeRuneInString(p.input[p.pos:])
	switch {
	case ch == 'λ' || ch == '\\':
		p.current = Token{Type: TokenLambda, Literal: string(ch), Pos: start}
		p.pos += size
	case isIdentRune(ch):
		for p.pos < len(p.input) {
			r, n := utf8.DecodeRuneInString(p.input[p.pos:])
			if !isIdentRune(r) {
				break
			}
			p.pos += n
		}
		lit := p.input[start:p.pos]
		switch lit {
		case "let":
			p.current = Token{Type: TokenLet, Literal: lit, Pos: start}
		case "in":
			p.current = Token{Type: TokenIn, Literal: lit, Pos: start}
		default:
			p.current = Token{Type: TokenIdent, Literal: lit, Pos: start}
		}
	case ch == '.':
		p.current = Token{Type: TokenDot, Literal: ".", Pos: start}
		p.pos++
	case ch == '=':
		p.current = Token{Type: TokenEqual, Literal: "=", Pos: start}
		p.pos++
	case ch == ';':
		p.current = Token{Type: TokenSemicolon, Literal: ";", Pos: start}
		p.pos++
	case ch == '(':
		p.current = Token{Type: TokenLParen, Literal: "(", Pos: start}
		p.pos++
	case ch == ')':
		p.current = Token{Type: TokenRParen, Literal: ")", Pos: start}
		p.pos++
	default:
		// Lexing stops at the first bad character; the parser reports it as
		// soon as it looks at the current token.
		if p.err == nil {
			p.err = &ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", ch)}
		}
		p.current = Token{Type: TokenEOF, Pos: start}
		p.pos = len(p.input)
	}
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) {
		r, n := utf8.DecodeRuneInString(p.input[p.pos:])
		if r == '#' {
			// Comments run to the end of the line.
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += n
	}
}

func isIdentRune(r rune) bool {
	if r == 'λ' {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

func (p *Parser) fail(tok Token, format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	return &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(typ TokenType) error {
	if p.current.Type != typ {
		return p.fail(p.current, "expected %s, found %s", typ, p.current)
	}
	p.next()
	return nil
}

// Parse parses a complete term; trailing input is an error.
func (p *Parser) Parse() (Term, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.current.Type != TokenEOF {
		return nil, p.fail(p.current, "unexpected %s", p.current)
	}
	return term, nil
}

// Term ::= Abs | Let | App
func (p *Parser) parseTerm() (Term, error) {
	switch p.current.Type {
	case TokenLambda:
		return p.parseAbs()
	case TokenLet:
		return p.parseLet()
	default:
		return p.parseApp()
	}
}

// Abs ::= 'λ' Ident+ '.' Term
//
// Several binders before the dot are sugar for nested abstractions.
func (p *Parser) parseAbs() (Term, error) {
	p.next() // consume λ

	var args []string
	for p.current.Type == TokenIdent {
		args = append(args, p.current.Literal)
		p.next()
	}
	if len(args) == 0 {
		return nil, p.fail(p.current, "expected parameter name after λ, found %s", p.current)
	}
	if err := p.expect(TokenDot); err != nil {
		return nil, err
	}

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for i := len(args) - 1; i >= 0; i-- {
		body = Abs{Arg: args[i], Body: body}
	}
	return body, nil
}

// App ::= Atom Atom* [Abs | Let]
//
// An abstraction extends as far right as possible, so `x λy.z a` parses as
// `x (λy.z a)` and ends the application chain.
func (p *Parser) parseApp() (Term, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TokenEOF, TokenRParen, TokenSemicolon, TokenIn:
			return left, nil
		case TokenLambda, TokenLet:
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			return App{Fun: left, Arg: right}, nil
		}

		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = App{Fun: left, Arg: right}
	}
}

// Atom ::= Ident | '(' Term ')'
func (p *Parser) parseAtom() (Term, error) {
	switch p.current.Type {
	case TokenIdent:
		name := p.current.Literal
		p.next()
		return Var{Name: name}, nil
	case TokenLParen:
		p.next()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return term, nil
	default:
		return nil, p.fail(p.current, "unexpected %s", p.current)
	}
}

// Let ::= 'let' Ident '=' Term (';' Ident '=' Term)* [';'] 'in' Term
func (p *Parser) parseLet() (Term, error) {
	p.next() // consume 'let'

	type binding struct {
		name string
		val  Term
	}
	var bindings []binding

	for {
		if p.current.Type != TokenIdent {
			return nil, p.fail(p.current, "expected identifier in let binding, found %s", p.current)
		}
		name := p.current.Literal
		p.next()

		if err := p.expect(TokenEqual); err != nil {
			return nil, err
		}

		val, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding{name, val})

		if p.current.Type == TokenSemicolon {
			p.next()
			if p.current.Type == TokenIn {
				p.next()
				break
			}
			continue
		}
		if p.current.Type == TokenIn {
			p.next()
			break
		}
		return nil, p.fail(p.current, "expected ';' or 'in', found %s", p.current)
	}

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	// Desugar: let x=M; y=N in B -> (λx. (λy. B) N) M
	term := body
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		term = App{
			Fun: Abs{Arg: b.name, Body: term},
			Arg: b.val,
		}
	}

	return term, nil
}

// Parse parses a lambda term from a string.
func Parse(input string) (Term, error) {
	p := NewParser(input)
	return p.Parse()
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level tables of known-good terms.
func MustParse(input string) Term {
	term, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return term
}
