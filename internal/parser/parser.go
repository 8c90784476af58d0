// Package parser implements the recursive-descent, precedence-climbing
// grammar of spec.md §4.B over the lexer's token stream, producing a
// static ast.Node tree.
package parser

import (
	"fmt"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/lexer"
	"github.com/pcpkit/pmderive/internal/units"
)

// Parser is a Pratt-style parser: a prefix function per leaf/unary
// production, an infix function per binary operator, precedence-climbed
// in parseExpression — the same shape as the teacher compiler's
// expressions.go, cut down to this DSL's much smaller grammar.
//
// The lexer's unit-clause lookahead (LexUnitClause) scans raw characters
// straight off the Lexer's own cursor, so it only works immediately
// after the Lexer has produced a number token and before any further
// token has been requested. That rules out a buffered peek token: the
// Parser here holds only cur, fetched one token at a time, so parseNumber
// can call LexUnitClause before ever asking the lexer for what follows.
type Parser struct {
	lex     *lexer.Lexer
	channel *errors.Channel

	cur    lexer.Token
	failed bool

	prefixFns map[lexer.TokenType]func() *ast.Node
	infixFns  map[lexer.TokenType]func(*ast.Node) *ast.Node
}

// New creates a Parser over l, sharing l's diagnostic channel.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{lex: l, channel: l.Errors()}

	p.prefixFns = map[lexer.TokenType]func() *ast.Node{
		lexer.INTEGER: p.parseNumber,
		lexer.DOUBLE:  p.parseNumber,
		lexer.NAME:    p.parseName,
		lexer.MINUS:   p.parseUnaryMinus,
		lexer.NOT:     p.parseUnaryNot,
		lexer.LPAREN:  p.parseGrouped,
	}
	for _, ft := range []lexer.TokenType{
		lexer.AVG, lexer.COUNT, lexer.DELTA, lexer.MAX, lexer.MIN,
		lexer.SUM, lexer.RATE, lexer.INSTANT, lexer.ANON,
	} {
		p.prefixFns[ft] = p.parseFunctionCall
	}

	p.infixFns = map[lexer.TokenType]func(*ast.Node) *ast.Node{
		lexer.PLUS:     p.parseBinary,
		lexer.MINUS:    p.parseBinary,
		lexer.STAR:     p.parseBinary,
		lexer.SLASH:    p.parseBinary,
		lexer.LT:       p.parseBinary,
		lexer.LE:       p.parseBinary,
		lexer.EQ:       p.parseBinary,
		lexer.GE:       p.parseBinary,
		lexer.GT:       p.parseBinary,
		lexer.NE:       p.parseBinary,
		lexer.ANDAND:   p.parseBinary,
		lexer.OROR:     p.parseBinary,
		lexer.QUESTION: p.parseTernary,
	}

	p.next()
	return p
}

// Errors returns the parser's (shared) diagnostic channel.
func (p *Parser) Errors() *errors.Channel { return p.channel }

func (p *Parser) next() {
	p.cur = p.lex.NextToken()
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...any) *ast.Node {
	if p.failed {
		return nil
	}
	p.failed = true
	p.channel.Set(errors.New(tok.Pos, fmt.Sprintf(format, args...), p.lex.Source()))
	return nil
}

// ParseExpression parses the entry production `expr EOS` (spec.md
// §4.B). It returns nil if lexing, parsing, or the trailing-EOS check
// fails; the first error aborts the whole expression (spec.md §7).
func (p *Parser) ParseExpression() *ast.Node {
	if p.cur.Type == lexer.ILLEGAL {
		p.failed = true
		return nil
	}

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.failed {
		return nil
	}
	if p.cur.Type != lexer.EOS {
		return p.errorAt(p.cur, "Unexpected token %q", p.cur.Literal)
	}
	return expr
}

func (p *Parser) parseExpression(precedence int) *ast.Node {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		return p.errorAt(p.cur, "Unexpected initial %s", tokenText(p.cur))
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for p.cur.Type != lexer.EOS && precedence < precedenceOf(p.cur.Type) {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			break
		}
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func tokenText(tok lexer.Token) string {
	if tok.Literal != "" {
		return tok.Literal
	}
	return tok.Type.String()
}

func (p *Parser) parseNumber() *ast.Node {
	tok := p.cur
	kind := ast.Integer
	vt := units.U32
	if tok.Type == lexer.DOUBLE {
		kind = ast.Double
		vt = units.F64
	}
	node := ast.NewLeaf(kind, tok.Literal)
	// The lexer already rejects an Integer literal that does not fit an
	// unsigned 32-bit value (spec.md §4.A), so U32 is always safe here;
	// a Double literal carries an F64 value type (spec.md §4.D.5's
	// promotion table treats it the same as any other F64 operand).
	node.Descriptor.ValueType = vt

	// The lexer's raw cursor still sits exactly where NextToken() left it
	// after scanning tok — right before a units clause, if any — so the
	// lookahead must happen here, before p.next() asks for another token.
	if u, ok := p.lex.LexUnitClause(); ok {
		node.Descriptor.Units = u
	}
	p.next()
	return node
}

func (p *Parser) parseName() *ast.Node {
	node := ast.NewLeaf(ast.Name, p.cur.Literal)
	p.next()
	return node
}

// hasPrefix reports whether p.cur can start an expression at all,
// without consuming it — used so operators can report their own
// "X expected to follow OP" message instead of letting the recursive
// call fall through to the generic "Unexpected initial" diagnostic.
func (p *Parser) hasPrefix() bool {
	_, ok := p.prefixFns[p.cur.Type]
	return ok
}

func (p *Parser) parseUnaryMinus() *ast.Node {
	tok := p.cur
	p.next()
	if !p.hasPrefix() {
		return p.errorAt(tok, "Arithmetic expression expected to follow -")
	}
	operand := p.parseExpression(UNARY)
	if operand == nil {
		return nil
	}
	return ast.NewUnary(ast.Neg, operand)
}

func (p *Parser) parseUnaryNot() *ast.Node {
	tok := p.cur
	p.next()
	if !p.hasPrefix() {
		return p.errorAt(tok, "Boolean expression expected to follow !")
	}
	operand := p.parseExpression(NOTPREC)
	if operand == nil {
		return nil
	}
	return ast.NewUnary(ast.Not, operand)
}

func (p *Parser) parseGrouped() *ast.Node {
	lparen := p.cur
	p.next() // consume '('
	if !p.hasPrefix() {
		return p.errorAt(lparen, "Arithmetic expression expected to follow (")
	}
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.cur.Type != lexer.RPAREN {
		return p.errorAt(p.cur, "')' expected to close parenthesized expression")
	}
	p.next()
	return expr
}

var binaryKinds = map[lexer.TokenType]ast.Kind{
	lexer.PLUS:   ast.Add,
	lexer.MINUS:  ast.Sub,
	lexer.STAR:   ast.Mul,
	lexer.SLASH:  ast.Div,
	lexer.LT:     ast.Lt,
	lexer.LE:     ast.Le,
	lexer.EQ:     ast.Eq,
	lexer.NE:     ast.Ne,
	lexer.GE:     ast.Ge,
	lexer.GT:     ast.Gt,
	lexer.ANDAND: ast.And,
	lexer.OROR:   ast.Or,
}

func (p *Parser) parseBinary(left *ast.Node) *ast.Node {
	opTok := p.cur
	kind := binaryKinds[opTok.Type]
	precedence := precedenceOf(opTok.Type)
	p.next() // consume operator

	if !p.hasPrefix() {
		return p.errorAt(opTok, "Arithmetic expression expected to follow %s", tokenText(opTok))
	}
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return ast.NewBinary(kind, left, right)
}

func (p *Parser) parseTernary(cond *ast.Node) *ast.Node {
	qTok := p.cur
	p.next() // consume '?'

	if !p.hasPrefix() {
		return p.errorAt(qTok, "Arithmetic expression expected to follow ?")
	}
	then := p.parseExpression(LOWEST)
	if then == nil {
		return nil
	}
	if p.cur.Type != lexer.COLON {
		return p.errorAt(p.cur, "':' expected in ternary expression")
	}
	colonTok := p.cur
	p.next() // consume ':'

	if !p.hasPrefix() {
		return p.errorAt(colonTok, "Arithmetic expression expected to follow :")
	}
	// LOWEST, not TERNARY: ?: is right-associative (spec.md §4.B), so a
	// nested `? ... :` immediately following must be absorbed here rather
	// than left for the outer parseExpression loop to re-enter as a new
	// ternary over (cond?then:els-so-far).
	els := p.parseExpression(LOWEST)
	if els == nil {
		return nil
	}
	return ast.NewTernary(cond, then, els)
}

// anonValueTypes maps the closed set of type tags accepted by anon(T)
// onto the ValueType each one synthesises (spec.md §4.B). "64" arrives
// as an INTEGER token rather than a NAME, since it lexes like any other
// integer literal.
var anonValueTypes = map[string]units.ValueType{
	"PM_TYPE_32": units.I32,
	"U32":        units.U32,
	"64":         units.I64,
	"U64":        units.U64,
	"FLOAT":      units.F32,
	"DOUBLE":     units.F64,
}

func (p *Parser) parseAnonArgument(fnTok lexer.Token) *ast.Node {
	if p.cur.Type != lexer.NAME && p.cur.Type != lexer.INTEGER {
		return p.errorAt(p.cur, "Type tag expected to follow anon(")
	}
	tag := p.cur.Literal
	vt, ok := anonValueTypes[tag]
	if !ok {
		return p.errorAt(p.cur, "Unrecognised type tag %q in anon(", tag)
	}
	p.next()

	if p.cur.Type != lexer.RPAREN {
		return p.errorAt(p.cur, "')' expected to close anon(")
	}
	p.next()

	// The type tag is kept as the function's argument node purely so
	// String() can round-trip anon(TAG); it is never resolved as a
	// metric name. Like every function argument it carries SaveLast.
	arg := ast.NewLeaf(ast.Name, tag)
	arg.SaveLast = true
	node := ast.NewUnary(ast.FuncAnon, arg)
	node.Descriptor.ValueType = vt
	return node
}

func (p *Parser) parseFunctionCall() *ast.Node {
	fnTok := p.cur
	kind := functionKinds[fnTok.Type]

	// The lexer only emits a function token when '(' immediately
	// follows, so cur is guaranteed to be LPAREN after this next().
	p.next() // consume function keyword, cur = '('
	p.next() // consume '(', cur = argument

	if kind == ast.FuncAnon {
		return p.parseAnonArgument(fnTok)
	}

	if p.cur.Type != lexer.NAME {
		return p.errorAt(p.cur, "Metric name expected to follow %s(", fnTok.Literal)
	}
	arg := ast.NewLeaf(ast.Name, p.cur.Literal)
	arg.SaveLast = true
	p.next()

	if p.cur.Type != lexer.RPAREN {
		return p.errorAt(p.cur, "')' expected to close %s(", fnTok.Literal)
	}
	p.next()

	return ast.NewUnary(kind, arg)
}

var functionKinds = map[lexer.TokenType]ast.Kind{
	lexer.AVG:     ast.FuncAvg,
	lexer.COUNT:   ast.FuncCount,
	lexer.DELTA:   ast.FuncDelta,
	lexer.MAX:     ast.FuncMax,
	lexer.MIN:     ast.FuncMin,
	lexer.SUM:     ast.FuncSum,
	lexer.RATE:    ast.FuncRate,
	lexer.INSTANT: ast.FuncInstant,
	lexer.ANON:    ast.FuncAnon,
}
