// Package demo supplies a small in-memory metric oracle implementing
// internal/host's interfaces, for tests and the CLI. Its metric names and
// shapes are patterned after PCP's real PMNS (kernel.*, disk.*, mem.*,
// network.*) rather than invented from scratch.
package demo

import (
	"sort"
	"strings"
	"sync"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/units"
)

// entry is one built-in metric's identity and descriptor.
type entry struct {
	id   ast.MetricID
	desc ast.Descriptor
}

// Namespace is a fixed, in-memory table of non-derived metrics, safe for
// concurrent use by multiple contexts. It implements host.NameResolver,
// host.DescLookup, and host.NamespaceProber.
type Namespace struct {
	mu     sync.RWMutex
	byName map[string]entry
	byID   map[ast.MetricID]string
}

// New builds the default demo namespace, seeded with a small PCP-style
// metric table.
func New() *Namespace {
	ns := &Namespace{
		byName: make(map[string]entry),
		byID:   make(map[ast.MetricID]string),
	}
	for i, m := range builtinMetrics {
		id := syntheticID(i + 1)
		ns.byName[m.name] = entry{id: id, desc: m.desc}
		ns.byID[id] = m.name
	}
	return ns
}

// syntheticID assigns PMNS-shaped non-derived ids: domain 60 ("PM_DOM" for
// a sample PMCD agent, chosen arbitrarily but distinct from the derived
// dynamic domain), cluster 0, item = registration index.
func syntheticID(item int) ast.MetricID {
	const sampleDomain = 60
	return ast.MetricID(sampleDomain<<22 | item)
}

// LookupName implements host.NameResolver.
func (ns *Namespace) LookupName(name string) (ast.MetricID, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	e, ok := ns.byName[name]
	return e.id, ok
}

// LookupDesc implements host.DescLookup.
func (ns *Namespace) LookupDesc(id ast.MetricID) (ast.Descriptor, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	name, ok := ns.byID[id]
	if !ok {
		return ast.Descriptor{}, false
	}
	return ns.byName[name].desc, true
}

// IsNonDerivedName implements host.NamespaceProber: every metric in this
// table is, by construction, non-derived.
func (ns *Namespace) IsNonDerivedName(name string) bool {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	_, ok := ns.byName[name]
	return ok
}

// Names returns every metric name in the table, sorted.
func (ns *Namespace) Names() []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	names := make([]string, 0, len(ns.byName))
	for name := range ns.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPrefix reports whether any metric name in the table starts with
// prefix on a dot boundary, for callers probing the namespace shape
// outside of a registered derived expression.
func (ns *Namespace) HasPrefix(prefix string) bool {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	for name := range ns.byName {
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			return true
		}
	}
	return false
}

var builtinMetrics = []struct {
	name string
	desc ast.Descriptor
}{
	{
		name: "kernel.all.cpu.user",
		desc: ast.Descriptor{
			ValueType: units.U64,
			Semantics: units.Counter,
			Units:     units.Units{DimTime: 1, ScaleTime: units.MSec},
		},
	},
	{
		name: "kernel.all.cpu.sys",
		desc: ast.Descriptor{
			ValueType: units.U64,
			Semantics: units.Counter,
			Units:     units.Units{DimTime: 1, ScaleTime: units.MSec},
		},
	},
	{
		name: "kernel.all.cpu.idle",
		desc: ast.Descriptor{
			ValueType: units.U64,
			Semantics: units.Counter,
			Units:     units.Units{DimTime: 1, ScaleTime: units.MSec},
		},
	},
	{
		name: "kernel.all.load",
		desc: ast.Descriptor{
			ValueType:      units.F64,
			Semantics:      units.Instant,
			InstanceDomain: "loadavg",
		},
	},
	{
		name: "disk.dev.read",
		desc: ast.Descriptor{
			ValueType:      units.U64,
			Semantics:      units.Counter,
			Units:          units.Units{DimCount: 1, ScaleCount: units.CountOnes},
			InstanceDomain: "disk",
		},
	},
	{
		name: "disk.dev.write",
		desc: ast.Descriptor{
			ValueType:      units.U64,
			Semantics:      units.Counter,
			Units:          units.Units{DimCount: 1, ScaleCount: units.CountOnes},
			InstanceDomain: "disk",
		},
	},
	{
		name: "disk.dev.total_bytes",
		desc: ast.Descriptor{
			ValueType:      units.U64,
			Semantics:      units.Counter,
			Units:          units.Units{DimSpace: 1, ScaleSpace: units.Byte},
			InstanceDomain: "disk",
		},
	},
	{
		name: "mem.physmem",
		desc: ast.Descriptor{
			ValueType: units.U64,
			Semantics: units.Discrete,
			Units:     units.Units{DimSpace: 1, ScaleSpace: units.KByte},
		},
	},
	{
		name: "mem.util.free",
		desc: ast.Descriptor{
			ValueType: units.U64,
			Semantics: units.Instant,
			Units:     units.Units{DimSpace: 1, ScaleSpace: units.KByte},
		},
	},
	{
		name: "network.interface.in.bytes",
		desc: ast.Descriptor{
			ValueType:      units.U64,
			Semantics:      units.Counter,
			Units:          units.Units{DimSpace: 1, ScaleSpace: units.Byte},
			InstanceDomain: "network",
		},
	},
	{
		name: "network.interface.out.bytes",
		desc: ast.Descriptor{
			ValueType:      units.U64,
			Semantics:      units.Counter,
			Units:          units.Units{DimSpace: 1, ScaleSpace: units.Byte},
			InstanceDomain: "network",
		},
	},
}
