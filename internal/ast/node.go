package ast

import "time"

// Info is the evaluator-scratch block attached to every non-literal node
// of a bound (per-context) tree; it is nil on static trees (spec.md §3).
type Info struct {
	ResolvedID MetricID

	CurrentNumVal float64
	LastNumVal    float64

	CurrentSamples int64
	LastSamples    int64

	Timestamp     time.Time
	LastTimestamp time.Time

	// MulScale/DivScale are accumulated integer factors produced by unit
	// reconciliation (map_units); the runtime evaluator applies them as
	// result = raw * MulScale / DivScale. TimeScale is evaluator scratch;
	// the analyser and binder leave it zero.
	MulScale  int64
	DivScale  int64
	TimeScale int
}

// Node is a single AST node: a leaf literal/name or an operator/function
// application. The grammar guarantees Right is nil iff Kind is nullary or
// unary (spec.md §3).
type Node struct {
	Kind  Kind
	Left  *Node
	Right *Node

	// Value is the literal text for Integer/Double/Name nodes, shared
	// (never copied) between a static tree and its bound clones.
	Value string

	Descriptor Descriptor
	SaveLast   bool

	// Info is non-nil only on bound-tree nodes (other than literals).
	Info *Info
}

// NewLeaf constructs a Name/Integer/Double node.
func NewLeaf(kind Kind, value string) *Node {
	return &Node{Kind: kind, Value: value}
}

// NewUnary constructs a unary node (Neg, Not, or a function application).
func NewUnary(kind Kind, operand *Node) *Node {
	return &Node{Kind: kind, Left: operand}
}

// NewBinary constructs a binary operator node.
func NewBinary(kind Kind, left, right *Node) *Node {
	return &Node{Kind: kind, Left: left, Right: right}
}

// NewTernary constructs the Quest(cond, Colon(then, else)) shape the
// grammar produces for '?:' (spec.md §3).
func NewTernary(cond, then, els *Node) *Node {
	return &Node{Kind: Quest, Left: cond, Right: &Node{Kind: Colon, Left: then, Right: els}}
}

// IsBound reports whether n carries resolved per-context scratch state.
func (n *Node) IsBound() bool {
	return n.Info != nil
}

// Clone produces a structural copy of n suitable for binding: a new Info
// block per non-literal node, and the Value string shared (never copied)
// with the static original (spec.md §4.E.1).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Kind:       n.Kind,
		Value:      n.Value,
		Descriptor: n.Descriptor,
		SaveLast:   n.SaveLast,
		Left:       n.Left.Clone(),
		Right:      n.Right.Clone(),
	}
	if n.Kind != Integer && n.Kind != Double {
		// Name leaves get an Info block too: they are the operands
		// map_units most often rescales. MulScale/DivScale default to the multiplicative identity: the
		// evaluator applies them as raw*MulScale/DivScale, and most nodes
		// are never rescaled at all.
		clone.Info = &Info{MulScale: 1, DivScale: 1}
	}
	return clone
}

// Walk calls visit on n and recursively on its children, left then
// right, pre-order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	n.Left.Walk(visit)
	n.Right.Walk(visit)
}

// Equal reports whether n and other have the same shape, literal values,
// and descriptors — structural equality for the round-trip and binder-
// idempotence property tests of spec.md §8. Info scratch state is
// intentionally excluded.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Value != other.Value || n.SaveLast != other.SaveLast {
		return false
	}
	if !n.Descriptor.Equal(other.Descriptor) {
		return false
	}
	return n.Left.Equal(other.Left) && n.Right.Equal(other.Right)
}
