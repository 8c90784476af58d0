package semantic

import (
	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
)

// AnalyzeTree runs the unit/type analyser bottom-up over n's interior
// nodes (spec.md §4.D, invoked by the binder per §4.E step 3). It
// returns false as soon as any node fails, matching §7's "no error
// recovery inside a single expression".
func AnalyzeTree(n *ast.Node, ch *errors.Channel) bool {
	if n == nil || n.Kind.IsLeaf() {
		return true
	}

	if !AnalyzeTree(n.Left, ch) {
		return false
	}

	if n.Kind == ast.Quest {
		// n.Right is the Colon wrapper: it carries no descriptor of its
		// own (AnalyzeTernary assigns one after both branches are ready),
		// so recurse straight into its then/else children.
		colon := n.Right
		if !AnalyzeTree(colon.Left, ch) || !AnalyzeTree(colon.Right, ch) {
			return false
		}
	} else if !AnalyzeTree(n.Right, ch) {
		return false
	}

	return analyzeNode(n, ch)
}

func analyzeNode(n *ast.Node, ch *errors.Channel) bool {
	switch {
	case n.Kind == ast.Quest:
		return AnalyzeTernary(n, ch)
	case n.Kind == ast.Neg:
		return AnalyzeNeg(n, ch)
	case n.Kind == ast.Not:
		return AnalyzeNot(n, ch)
	case n.Kind.IsFunction():
		return AnalyzeFunction(n, ch)
	case n.Kind.IsArithmetic(), n.Kind.IsRelational(), n.Kind.IsBoolean():
		return AnalyzeBinary(n, ch)
	default:
		return true
	}
}
