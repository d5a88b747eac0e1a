// Package parser implements the recursive-descent parser of spec §4.4,
// emitting arena nodes directly rather than building an intermediate AST —
// mirroring the original C implementation's parse_expr/parse_primary/
// parse_fun, which write straight into the expression arena as they parse.
package parser

import (
	"lambdasoup/internal/arena"
	"lambdasoup/internal/errors"
	"lambdasoup/internal/lexer"
	"lambdasoup/internal/symbol"
	"lambdasoup/token"
)

// Binding is one `name = expr ;` source-file entry (spec §6's source file
// format).
type Binding struct {
	Name symbol.Symbol
	Expr arena.Index
}

// MaxParseDepth bounds recursive-descent nesting (parens, lambdas, chained
// Fun parameters) so pathologically deep source is rejected here rather
// than overflowing the Go call stack (spec §9's recursion-vs-iteration
// note). A left-associative application chain (`a b c ...`) is built in a
// loop and is not counted, so the depth of its App nodes is not bounded.
const MaxParseDepth = 512

// Parser turns lexer tokens into arena expressions. It buffers up to two
// tokens of lookahead, which parseFun needs to tell a chained parameter
// (`NAME '.'`) from the start of the Fun body.
type Parser struct {
	lex      *lexer.Lexer
	interner *symbol.Table
	arena    *arena.Arena
	file     string

	buf   []token.Token
	depth int
}

// New constructs a Parser over source, interning names through interner and
// allocating expression nodes into ar.
func New(file, source string, interner *symbol.Table, ar *arena.Arena) *Parser {
	return &Parser{lex: lexer.New(file, source), interner: interner, arena: ar, file: file}
}

// fill ensures at least n tokens are buffered.
func (p *Parser) fill(n int) {
	for len(p.buf) < n {
		p.buf = append(p.buf, p.lex.Next())
	}
}

// peek returns the token n positions ahead (0 = next unconsumed token)
// without consuming it.
func (p *Parser) peek(n int) token.Token {
	p.fill(n + 1)
	return p.buf[n]
}

// advance consumes and returns the next token.
func (p *Parser) advance() token.Token {
	p.fill(1)
	t := p.buf[0]
	p.buf = p.buf[1:]
	return t
}

func (p *Parser) errAt(pos token.Position, format string, args ...any) *errors.Error {
	return errors.NewParseError(errors.Position{File: pos.File, Row: pos.Row, Col: pos.Col}, format, args...)
}

// enterDepth increments the recursion counter, erroring once MaxParseDepth
// is exceeded; exitDepth (deferred by callers) decrements it back.
func (p *Parser) enterDepth(pos token.Position) error {
	p.depth++
	if p.depth > MaxParseDepth {
		return p.errAt(pos, "expression nested too deeply (max depth %d)", MaxParseDepth)
	}
	return nil
}

func (p *Parser) exitDepth() { p.depth-- }

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	t := p.advance()
	if t.Kind != k {
		return t, p.errAt(t.Position, "unexpected token %s, expected %s", t.Kind, k)
	}
	return t, nil
}

// ParseFile parses a complete bindings source file (spec §6: `(binding)*`,
// `binding := NAME '=' expr ';'`).
func (p *Parser) ParseFile() ([]Binding, error) {
	var bindings []Binding
	for p.peek(0).Kind != token.END {
		nameTok, err := p.expect(token.NAME)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.EQUALS); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		bindings = append(bindings, Binding{Name: p.interner.Symbol(nameTok.Text), Expr: expr})
	}
	return bindings, nil
}

// ParseExpr parses a single standalone expression, erroring if trailing
// input remains.
func (p *Parser) ParseExpr() (arena.Index, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return arena.NoIndex, err
	}
	if t := p.peek(0); t.Kind != token.END {
		return arena.NoIndex, p.errAt(t.Position, "unexpected trailing token %s", t.Kind)
	}
	return expr, nil
}

// parseExpr implements `expr := primary primary*`, left-associative
// application: `a b c` becomes App(App(a, b), c).
func (p *Parser) parseExpr() (arena.Index, error) {
	if err := p.enterDepth(p.peek(0).Position); err != nil {
		return arena.NoIndex, err
	}
	defer p.exitDepth()

	lhs, err := p.parsePrimary()
	if err != nil {
		return arena.NoIndex, err
	}
	for {
		switch p.peek(0).Kind {
		case token.CPAREN, token.END, token.SEMICOLON:
			return lhs, nil
		}
		rhs, err := p.parsePrimary()
		if err != nil {
			return arena.NoIndex, err
		}
		lhs = p.arena.NewApp(lhs, rhs)
	}
}

// parsePrimary implements `primary := '(' expr ')' | '\' param_list '.' expr | MAGIC | NAME`.
func (p *Parser) parsePrimary() (arena.Index, error) {
	if err := p.enterDepth(p.peek(0).Position); err != nil {
		return arena.NoIndex, err
	}
	defer p.exitDepth()

	t := p.advance()
	switch t.Kind {
	case token.OPAREN:
		e, err := p.parseExpr()
		if err != nil {
			return arena.NoIndex, err
		}
		if _, err := p.expect(token.CPAREN); err != nil {
			return arena.NoIndex, err
		}
		return e, nil
	case token.LAMBDA:
		return p.parseFun()
	case token.MAGIC:
		return p.arena.NewMagic(t.Text), nil
	case token.NAME:
		return p.arena.NewVar(p.interner.Symbol(t.Text)), nil
	default:
		return arena.NoIndex, p.errAt(t.Position, "unexpected token %s, expected a primary expression", t.Kind)
	}
}

// parseFun implements `param_list := NAME ('.' NAME)*` followed by the Fun
// body, desugaring a dot-chained parameter list into nested Fun nodes:
// `\x.y.e` parses the same as `\x.\y.e`. Two tokens of lookahead after the
// mandatory `NAME '.'` distinguish another chained parameter (NAME DOT)
// from the start of the body expression.
func (p *Parser) parseFun() (arena.Index, error) {
	if err := p.enterDepth(p.peek(0).Position); err != nil {
		return arena.NoIndex, err
	}
	defer p.exitDepth()

	nameTok, err := p.expect(token.NAME)
	if err != nil {
		return arena.NoIndex, err
	}
	if _, err := p.expect(token.DOT); err != nil {
		return arena.NoIndex, err
	}
	param := p.interner.Symbol(nameTok.Text)

	var body arena.Index
	if p.peek(0).Kind == token.NAME && p.peek(1).Kind == token.DOT {
		body, err = p.parseFun()
	} else {
		body, err = p.parseExpr()
	}
	if err != nil {
		return arena.NoIndex, err
	}
	return p.arena.NewFun(param, body), nil
}
