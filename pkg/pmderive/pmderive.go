// Package pmderive is the public facade over the derived-metrics engine:
// the only package an embedder is expected to import (mirroring the
// teacher's pkg/dwscript split from its internal/* implementation).
package pmderive

import (
	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/host"
	"github.com/pcpkit/pmderive/internal/registry"
)

// Re-exported types an embedder needs without reaching into internal/.
type (
	MetricID       = ast.MetricID
	Descriptor     = ast.Descriptor
	CompilerError  = errors.CompilerError
	NameResolver   = host.NameResolver
	DescLookup     = host.DescLookup
	NamespaceProbe = host.NamespaceProber
	HostContext    = host.Context
	Child          = registry.Child
)

// Sentinel errors re-exported from internal/registry for callers that
// branch on Descriptor's outcome.
var (
	ErrNotFound = registry.ErrNotFound
	ErrDisabled = registry.ErrDisabled
)

// Engine is a derived-metrics registry: register expressions once,
// open/close per-context bindings against a host's metric namespace as
// often as needed.
type Engine struct {
	reg *registry.Registry
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{reg: registry.New()}
}

// Register parses and stores a derived metric named name with the given
// expression (spec.md §4.F's register).
func (e *Engine) Register(name, expr string) (MetricID, error) {
	return e.reg.Register(name, expr)
}

// RegisterAnonymous registers a derived metric whose expression is the
// synthetic anon(typeTag) placeholder (spec.md §4.F's register_anonymous).
func (e *Engine) RegisterAnonymous(name, typeTag string) (MetricID, error) {
	return e.reg.RegisterAnonymous(name, typeTag)
}

// LoadConfigStream registers every "name = expression" line of text,
// skipping comments and blank lines (spec.md §6). It returns the count
// of successfully registered metrics. Per-line failures are recorded in
// the error channel read by LastError, but each registration attempt
// clears it first, so after the call LastError holds only a failure
// recorded after the last registration attempt.
func (e *Engine) LoadConfigStream(text string) int {
	return e.reg.LoadConfigStream(text)
}

// LoadPathSpec loads every ':'-separated component of pathSpec, each a
// file or a one-level-recursive directory of configuration files
// (spec.md §4.F/§6).
func (e *Engine) LoadPathSpec(pathSpec string, tolerant bool) (int, error) {
	return e.reg.LoadPathSpec(pathSpec, tolerant)
}

// LoadFromEnvironment implements the DERIVED_CONFIG contract of
// spec.md §6.
func (e *Engine) LoadFromEnvironment() (int, error) {
	return e.reg.LoadFromEnvironment()
}

// LastError returns the most recent diagnostic recorded by this engine's
// registry (spec.md §4.G's error channel, published via last_error()).
func (e *Engine) LastError() *CompilerError {
	return e.reg.Errors().Last()
}

// Context is a bound snapshot of every registration against one host
// namespace (spec.md §4.F's open_context/close_context).
type Context struct {
	engine *Engine
	inner  *registry.Context
}

// OpenContext binds every registration against hc.
func (e *Engine) OpenContext(hc HostContext) *Context {
	return &Context{engine: e, inner: e.reg.OpenContext(hc)}
}

// Close releases c's bound trees. Static registrations are unaffected
// and may be reused by a later OpenContext call.
func (c *Context) Close() {
	c.engine.reg.CloseContext(c.inner)
}

// LookupID resolves a registered name to its id.
func (e *Engine) LookupID(name string) (MetricID, bool) {
	return e.reg.LookupID(name)
}

// LookupName resolves a registered id to its name.
func (e *Engine) LookupName(id MetricID) (string, bool) {
	return e.reg.LookupName(id)
}

// Descriptor returns id's bound descriptor within c, or ErrNotFound /
// ErrDisabled (spec.md §4.F's descriptor).
func (e *Engine) Descriptor(c *Context, id MetricID) (Descriptor, error) {
	return e.reg.Descriptor(c.inner, id)
}

// Traverse lists every enabled, fully qualified name in c matching
// prefix on a dot boundary.
func (e *Engine) Traverse(c *Context, prefix string) []string {
	return e.reg.Traverse(c.inner, prefix)
}

// Children lists the unique next dotted path segments past prefix among
// c's enabled entries.
func (e *Engine) Children(c *Context, prefix string) []Child {
	return e.reg.Children(c.inner, prefix)
}
