// Package host declares the external oracle boundary the binder consumes
// (spec.md §6): name-to-id resolution, id-to-descriptor lookup, and a
// namespace probe used for name-clash detection. The core never talks to
// a live PCP namespace directly — it only ever sees these interfaces, so
// any embedder can plug in its own metric source.
package host

import (
	"github.com/pcpkit/pmderive/internal/ast"
)

// NameResolver maps a dotted metric name to its id within a given
// namespace context (spec.md §6's lookup_name).
type NameResolver interface {
	LookupName(name string) (ast.MetricID, bool)
}

// DescLookup maps a resolved id to its full descriptor (spec.md §6's
// lookup_desc).
type DescLookup interface {
	LookupDesc(id ast.MetricID) (ast.Descriptor, bool)
}

// NamespaceProber answers whether a name already exists as a *non-derived*
// entry in the host namespace — the binder's name-clash short-circuit
// (spec.md §4.E): a derived registration whose name collides with a real,
// non-derived metric is silently disabled for that context.
type NamespaceProber interface {
	IsNonDerivedName(name string) bool
}

// Context bundles the three oracle interfaces a single binding pass needs.
// Implementations are free to satisfy all three with one concrete type
// (as internal/host/demo does) or to compose them independently.
type Context struct {
	Resolver NameResolver
	Descs    DescLookup
	Prober   NamespaceProber
}

// LookupName resolves name to an id, or reports NotFound.
func (c Context) LookupName(name string) (ast.MetricID, bool) {
	return c.Resolver.LookupName(name)
}

// LookupDesc resolves id to its descriptor, or reports NotFound.
func (c Context) LookupDesc(id ast.MetricID) (ast.Descriptor, bool) {
	return c.Descs.LookupDesc(id)
}

// IsNonDerivedName reports whether name already names a real (non-derived)
// metric in this context's host namespace.
func (c Context) IsNonDerivedName(name string) bool {
	return c.Prober.IsNonDerivedName(name)
}
