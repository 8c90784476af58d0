package parser

import "github.com/pcpkit/pmderive/internal/lexer"

// Operator precedence, low to high (spec.md §4.B):
//
//	?: | || && | unary ! | relational | + - | * / | unary -
const (
	LOWEST int = iota
	TERNARY
	LOGICAL
	NOTPREC
	RELATIONAL
	SUM
	PRODUCT
	UNARY
)

var precedences = map[lexer.TokenType]int{
	lexer.QUESTION: TERNARY,
	lexer.ANDAND:   LOGICAL,
	lexer.OROR:     LOGICAL,
	lexer.LT:       RELATIONAL,
	lexer.LE:       RELATIONAL,
	lexer.EQ:       RELATIONAL,
	lexer.NE:       RELATIONAL,
	lexer.GE:       RELATIONAL,
	lexer.GT:       RELATIONAL,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.STAR:     PRODUCT,
	lexer.SLASH:    PRODUCT,
}

func precedenceOf(t lexer.TokenType) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}
