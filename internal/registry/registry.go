// Package registry implements the thread-safe derived-metric store of
// spec.md §4.F: registration, per-context binding, id/name lookup, and
// namespace traversal, plus the configuration-file and path-spec loaders
// of §6/§7.
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/binder"
	"github.com/pcpkit/pmderive/internal/errors"
	"github.com/pcpkit/pmderive/internal/host"
	"github.com/pcpkit/pmderive/internal/lexer"
	"github.com/pcpkit/pmderive/internal/parser"
)

// nameRegexp is the dotted-identifier grammar a registration or config
// name must match (spec.md §6): one or more dot-separated segments, each
// a letter/underscore followed by letters/digits/underscores.
var nameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// entry is one registered derived metric: its static (unbound) AST and
// registration metadata. Entries are never removed once registered.
type entry struct {
	name      string
	id        ast.MetricID
	static    *ast.Node
	anonymous bool
}

// Context is a set of bound trees, one per live registration, produced by
// OpenContext. It is exclusively owned by the caller that opened it and
// must not be touched after CloseContext (spec.md §5).
type Context struct {
	host  host.Context
	bound []binder.Result // parallel to Registry.entries at open time
}

// Registry is the thread-safe store of spec.md §4.F. mu is a plain,
// non-recursive sync.Mutex, and no operation acquires it while already
// holding it: Register and RegisterAnonymous share the lock-held
// registerLocked path, and LoadConfigStream does not hold mu itself but
// takes it once per line through Register.
type Registry struct {
	mu      sync.Mutex
	channel errors.Channel
	entries []entry
	byName  map[string]int // name -> index into entries
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Errors returns the registry's thread-local-equivalent diagnostic
// channel (spec.md §4.G).
func (r *Registry) Errors() *errors.Channel {
	return &r.channel
}

// Register validates name, parses expr, and appends a new entry
// (spec.md §4.F's register). On success it returns the synthesised id.
func (r *Registry) Register(name, expr string) (ast.MetricID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(name, expr, false)
}

// RegisterAnonymous wraps Register with a synthetic anon(T) expression
// (spec.md §4.F's register_anonymous).
func (r *Registry) RegisterAnonymous(name, typeTag string) (ast.MetricID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expr := fmt.Sprintf("anon(%s)", typeTag)
	return r.registerLocked(name, expr, true)
}

func (r *Registry) registerLocked(name, expr string, anonymous bool) (ast.MetricID, error) {
	r.channel.Clear()

	if !nameRegexp.MatchString(name) {
		err := errors.New(errors.Position{}, "Illegal metric name", name)
		r.channel.Set(err)
		return 0, err
	}
	if _, exists := r.byName[name]; exists {
		err := errors.New(errors.Position{Column: 1}, "Duplicate derived metric name", expr)
		r.channel.Set(err)
		return 0, err
	}

	ch := &errors.Channel{}
	l := lexer.New(expr, lexer.WithErrorChannel(ch))
	p := parser.New(l)
	static := p.ParseExpression()
	if static == nil {
		err := ch.Last()
		if err == nil {
			err = errors.New(errors.Position{}, "Parse failed", expr)
		}
		r.channel.Set(err)
		return 0, err
	}

	item := len(r.entries) + 1
	id := ast.NewDerivedID(item)
	r.entries = append(r.entries, entry{name: name, id: id, static: static, anonymous: anonymous})
	r.byName[name] = item - 1

	return id, nil
}

// LoadConfigStream parses a text configuration (spec.md §6's file
// format: "#" comments, blank lines, "name = expression" lines) and
// registers each entry. Per-line errors are reported through the
// registry's diagnostic channel and do not abort subsequent lines; the
// return value is the count of successfully registered metrics.
func (r *Registry) LoadConfigStream(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if isConfigComment(line) || strings.TrimSpace(line) == "" {
			continue
		}
		name, expr, ok := splitConfigLine(line)
		if !ok {
			r.Errors().Set(errors.New(errors.Position{}, "Missing '=' in configuration line", line))
			continue
		}
		if !nameRegexp.MatchString(name) {
			r.Errors().Set(errors.New(errors.Position{}, "Illegal metric name", line))
			continue
		}
		if _, err := r.Register(name, expr); err != nil {
			continue
		}
		count++
	}
	return count
}

// isConfigComment reports whether line's first byte is '#' (spec.md §9's
// resolved Open Question: only a literal first-byte '#' counts, leading
// whitespace before it does not).
func isConfigComment(line string) bool {
	return len(line) > 0 && line[0] == '#'
}

// splitConfigLine splits a configuration line on its first '=', trimming
// trailing whitespace from name and leading whitespace from expression
// (spec.md §6).
func splitConfigLine(line string) (name, expr string, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", false
	}
	name = strings.TrimRight(line[:i], " \t")
	expr = strings.TrimLeft(line[i+1:], " \t")
	return name, expr, true
}

// LookupID returns the id registered under name, if any.
func (r *Registry) LookupID(name string) (ast.MetricID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return r.entries[idx].id, true
}

// LookupName returns the name registered under id, if any.
func (r *Registry) LookupName(id ast.MetricID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.id == id {
			return e.name, true
		}
	}
	return "", false
}

// OpenContext binds every registration against hc (spec.md §4.F's
// open_context), producing a Context exclusively owned by the caller.
func (r *Registry) OpenContext(hc host.Context) *Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	bound := make([]binder.Result, len(r.entries))
	for i, e := range r.entries {
		ch := &errors.Channel{}
		bound[i] = binder.Bind(e.static, e.name, e.id, hc, ch)
		if ch.Last() != nil {
			r.channel.Set(ch.Last())
		}
	}
	return &Context{host: hc, bound: bound}
}

// CloseContext releases a Context's bound trees (spec.md §4.F's
// close_context). Static trees are never touched.
func (r *Registry) CloseContext(c *Context) {
	if c == nil {
		return
	}
	c.bound = nil
}

// NotFoundError and DisabledError let callers distinguish "no such
// registration" from "registered, but disabled in this context"
// (spec.md §4.F's descriptor's three-way return).
var (
	ErrNotFound = fmt.Errorf("not found")
	ErrDisabled = fmt.Errorf("disabled in this context")
)

// Descriptor returns id's bound descriptor within c (spec.md §4.F's
// descriptor operation).
func (r *Registry) Descriptor(c *Context, id ast.MetricID) (ast.Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.indexOfID(id)
	if !ok || idx >= len(c.bound) {
		return ast.Descriptor{}, ErrNotFound
	}
	res := c.bound[idx]
	if res.Root == nil {
		return ast.Descriptor{}, ErrDisabled
	}
	return res.Root.Descriptor, nil
}

func (r *Registry) indexOfID(id ast.MetricID) (int, bool) {
	for i, e := range r.entries {
		if e.id == id {
			return i, true
		}
	}
	return 0, false
}

// Traverse lists every fully qualified name in c whose entry is enabled
// (bound) and whose name matches prefix on a dot boundary (""  matches
// all); spec.md §4.F's traverse. Disabled entries are invisible.
func (r *Registry) Traverse(c *Context, prefix string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for i, e := range r.entries {
		if i >= len(c.bound) || c.bound[i].Root == nil {
			continue
		}
		if matchesPrefix(e.name, prefix) {
			names = append(names, e.name)
		}
	}
	sort.Strings(names)
	return names
}

// Child describes one result of Children: the next dotted path segment
// past the queried prefix, and whether it is itself a leaf (an exact
// registered name) or has further descendants.
type Child struct {
	Name   string
	IsLeaf bool
}

// Children implements spec.md §4.F's children: at each enabled entry
// matching prefix, carve the next dotted segment past prefix,
// de-duplicating; an entry whose name *is* the prefix short-circuits the
// whole call with no children (the prefix names a leaf).
func (r *Registry) Children(c *Context, prefix string) []Child {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	var out []Child
	for i, e := range r.entries {
		if i >= len(c.bound) || c.bound[i].Root == nil {
			continue
		}
		if !matchesPrefix(e.name, prefix) {
			continue
		}
		rest := e.name
		if prefix != "" {
			rest = strings.TrimPrefix(e.name[len(prefix):], ".")
		}
		if rest == "" {
			// prefix is itself a registered leaf name: no children.
			return nil
		}
		segment := rest
		isLeaf := true
		if dot := strings.IndexByte(rest, '.'); dot >= 0 {
			segment = rest[:dot]
			isLeaf = false
		}
		if seen[segment] {
			continue
		}
		seen[segment] = true
		out = append(out, Child{Name: segment, IsLeaf: isLeaf})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// matchesPrefix reports whether name has prefix as a dot-boundary
// prefix: either prefix is empty, name equals prefix exactly, or name
// continues with "." right after prefix.
func matchesPrefix(name, prefix string) bool {
	if prefix == "" {
		return true
	}
	if name == prefix {
		return true
	}
	return strings.HasPrefix(name, prefix+".")
}
