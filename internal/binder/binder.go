// Package binder implements the per-context binding pass of spec.md
// §4.E: cloning a registration's static AST, resolving every Name leaf
// against a host.Context, and re-running the unit/type analyser
// bottom-up over the clone.
package binder

import (
	"fmt"
	"strings"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/host"
	"github.com/pcpkit/pmderive/internal/semantic"
)

// Result is the outcome of binding one registration in one context.
type Result struct {
	// Root is the bound clone, or nil if the registration is disabled in
	// this context (unresolved name, name-clash, or a semantic failure).
	Root *ast.Node
	// Disabled is true when Root is nil but the registration remains
	// valid elsewhere (spec.md §4.E's name-clash rule and §7's "disabled
	// for this context only" outcomes).
	Disabled bool
}

// Bind runs spec.md §4.E for one registration against one host context.
// name is the registration's own name (used for the name-clash check and
// for tagging diagnostics); id is the id to stamp onto the bound root on
// success. static is never mutated.
func Bind(static *ast.Node, name string, id ast.MetricID, ctx host.Context, ch *errors.Channel) Result {
	if ctx.IsNonDerivedName(name) {
		// spec.md §4.E: a derived registration whose own name collides
		// with a real, non-derived host metric is silently disabled in
		// this context only.
		return Result{Disabled: true}
	}

	root := static.Clone()

	if !resolveNames(root, ctx, ch) {
		return Result{Disabled: true}
	}

	if !semantic.AnalyzeTree(root, ch) {
		annotate(ch, name, static)
		return Result{Disabled: true}
	}

	root.Descriptor.ID = id
	return Result{Root: root}
}

// resolveNames walks the clone post-order, resolving every Name leaf
// (other than anon()'s synthetic type-tag child) against ctx. The first
// unresolved name stops the walk (spec.md §4.E step 2, §7's "no error
// recovery inside a single expression").
func resolveNames(n *ast.Node, ctx host.Context, ch *errors.Channel) bool {
	if n == nil {
		return true
	}
	if n.Kind == ast.Name {
		id, ok := ctx.LookupName(n.Value)
		if !ok {
			ch.Set(errors.New(errors.Position{}, fmt.Sprintf("Unknown metric name %q", n.Value), ""))
			return false
		}
		desc, ok := ctx.LookupDesc(id)
		if !ok {
			ch.Set(errors.New(errors.Position{}, fmt.Sprintf("Unknown metric name %q", n.Value), ""))
			return false
		}
		desc.ID = id
		n.Descriptor = desc
		return true
	}

	// anon()'s argument child is a Name leaf carrying a raw type tag, not
	// a metric reference; it was already fully analysed at parse time
	// and must never be resolved here.
	if n.Kind == ast.FuncAnon {
		return true
	}

	if n.Kind == ast.Quest {
		colon := n.Right
		return resolveNames(n.Left, ctx, ch) &&
			resolveNames(colon.Left, ctx, ch) &&
			resolveNames(colon.Right, ctx, ch)
	}

	return resolveNames(n.Left, ctx, ch) && resolveNames(n.Right, ctx, ch)
}

// annotate enriches a bare semantic-message diagnostic (internal/semantic
// errors carry no position of their own) with the registration name and
// a human-readable echo of the full expression, per spec.md §4.D's
// closing paragraph and §7's "header naming the registration" report
// format.
func annotate(ch *errors.Channel, name string, static *ast.Node) {
	last := ch.Last()
	if last == nil {
		return
	}
	var echo strings.Builder
	echo.WriteString(name)
	echo.WriteString(" = ")
	echo.WriteString(static.String())
	ch.Set(errors.New(last.Pos, fmt.Sprintf("%s: %s", echo.String(), last.Message), last.Source))
}
