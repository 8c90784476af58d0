package lexer

import "github.com/pcpkit/pmderive/internal/errors"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOS

	INTEGER
	DOUBLE
	NAME

	PLUS
	MINUS
	STAR
	SLASH
	LPAREN
	RPAREN
	QUESTION
	COLON

	LT
	LE
	EQ
	GE
	GT
	NE

	ANDAND
	OROR
	NOT

	// Function keywords
	AVG
	COUNT
	DELTA
	MAX
	MIN
	SUM
	RATE
	INSTANT
	ANON
)

var tokenNames = map[TokenType]string{
	ILLEGAL:  "ILLEGAL",
	EOS:      "EOS",
	INTEGER:  "INTEGER",
	DOUBLE:   "DOUBLE",
	NAME:     "NAME",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	LPAREN:   "(",
	RPAREN:   ")",
	QUESTION: "?",
	COLON:    ":",
	LT:       "<",
	LE:       "<=",
	EQ:       "==",
	GE:       ">=",
	GT:       ">",
	NE:       "!=",
	ANDAND:   "&&",
	OROR:     "||",
	NOT:      "!",
	AVG:      "avg",
	COUNT:    "count",
	DELTA:    "delta",
	MAX:      "max",
	MIN:      "min",
	SUM:      "sum",
	RATE:     "rate",
	INSTANT:  "instant",
	ANON:     "anon",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "?"
}

// functionKeywords maps the lowercase spelling of each aggregate/time-
// derivative function to its token type (spec.md §4.A).
var functionKeywords = map[string]TokenType{
	"avg":     AVG,
	"count":   COUNT,
	"delta":   DELTA,
	"max":     MAX,
	"min":     MIN,
	"sum":     SUM,
	"rate":    RATE,
	"instant": INSTANT,
	"anon":    ANON,
}

// Token is a single lexical unit with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     errors.Position
}
