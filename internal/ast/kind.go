package ast

// Kind tags the shape and operation of a Node.
type Kind int

const (
	// Leaves
	Integer Kind = iota
	Double
	Name

	// Arithmetic
	Add
	Sub
	Mul
	Div

	// Relational
	Lt
	Le
	Eq
	Ne
	Ge
	Gt

	// Boolean
	And
	Or

	// Unary
	Neg
	Not

	// Ternary: Quest{Left: cond, Right: Colon{Left: then, Right: else}}
	Quest
	Colon

	// Aggregate / time-derivative functions, all unary over a Name.
	FuncAvg
	FuncCount
	FuncDelta
	FuncMax
	FuncMin
	FuncSum
	FuncRate
	FuncInstant
	FuncAnon
)

var kindNames = map[Kind]string{
	Integer:     "Integer",
	Double:      "Double",
	Name:        "Name",
	Add:         "+",
	Sub:         "-",
	Mul:         "*",
	Div:         "/",
	Lt:          "<",
	Le:          "<=",
	Eq:          "==",
	Ne:          "!=",
	Ge:          ">=",
	Gt:          ">",
	And:         "&&",
	Or:          "||",
	Neg:         "Neg",
	Not:         "!",
	Quest:       "?",
	Colon:       ":",
	FuncAvg:     "avg",
	FuncCount:   "count",
	FuncDelta:   "delta",
	FuncMax:     "max",
	FuncMin:     "min",
	FuncSum:     "sum",
	FuncRate:    "rate",
	FuncInstant: "instant",
	FuncAnon:    "anon",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

// IsLeaf reports whether k is a nullary node (Integer, Double, Name).
func (k Kind) IsLeaf() bool {
	return k == Integer || k == Double || k == Name
}

// IsUnary reports whether k takes exactly one child (Left only).
func (k Kind) IsUnary() bool {
	switch k {
	case Neg, Not, FuncAvg, FuncCount, FuncDelta, FuncMax, FuncMin, FuncSum, FuncRate, FuncInstant, FuncAnon:
		return true
	default:
		return false
	}
}

// IsFunction reports whether k is one of the aggregate/time-derivative
// function kinds that set save_last on their argument (spec.md §4.C).
func (k Kind) IsFunction() bool {
	switch k {
	case FuncAvg, FuncCount, FuncDelta, FuncMax, FuncMin, FuncSum, FuncRate, FuncInstant, FuncAnon:
		return true
	default:
		return false
	}
}

// IsRelational reports whether k is one of the six comparison operators.
func (k Kind) IsRelational() bool {
	switch k {
	case Lt, Le, Eq, Ne, Ge, Gt:
		return true
	default:
		return false
	}
}

// IsBoolean reports whether k is one of the two boolean connectives.
func (k Kind) IsBoolean() bool {
	return k == And || k == Or
}

// IsArithmetic reports whether k is one of the four arithmetic operators.
func (k Kind) IsArithmetic() bool {
	switch k {
	case Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}
