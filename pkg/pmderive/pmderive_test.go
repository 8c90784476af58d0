package pmderive

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/pcpkit/pmderive/internal/host"
	"github.com/pcpkit/pmderive/internal/host/demo"
)

func demoHostContext() HostContext {
	ns := demo.New()
	return host.Context{Resolver: ns, Descs: ns, Prober: ns}
}

func TestEngineRegisterAndDescriptor(t *testing.T) {
	e := New()
	if _, err := e.Register("derived.cpu.busy", "kernel.all.cpu.user + kernel.all.cpu.sys"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := e.OpenContext(demoHostContext())
	defer ctx.Close()

	id, ok := e.LookupID("derived.cpu.busy")
	if !ok {
		t.Fatalf("expected lookup to succeed")
	}
	desc, err := e.Descriptor(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !desc.Semantics.IsCounter() {
		t.Fatalf("expected counter result, got %s", desc.Semantics)
	}
}

func TestEngineLoadConfigStreamAndTraverseSnapshot(t *testing.T) {
	e := New()
	config := strings.Join([]string{
		"# sample derived metrics",
		"derived.cpu.busy = kernel.all.cpu.user + kernel.all.cpu.sys",
		"derived.cpu.idle = instant(kernel.all.cpu.idle)",
		"derived.disk.throughput = disk.dev.read + disk.dev.write",
		"derived.bad = no.such.metric",
		"",
	}, "\n")

	count := e.LoadConfigStream(config)
	if count != 4 {
		t.Fatalf("expected 4 successful registrations, got %d", count)
	}

	ctx := e.OpenContext(demoHostContext())
	defer ctx.Close()

	names := e.Traverse(ctx, "derived")
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		id, _ := e.LookupID(name)
		desc, err := e.Descriptor(ctx, id)
		if err != nil {
			fmt.Fprintf(&sb, "%s: %v\n", name, err)
			continue
		}
		fmt.Fprintf(&sb, "%s: value_type=%s semantics=%s instance_domain=%q\n",
			name, desc.ValueType, desc.Semantics, desc.InstanceDomain)
	}

	snaps.MatchSnapshot(t, sb.String())
}

func TestEngineChildren(t *testing.T) {
	e := New()
	e.Register("derived.cpu.busy", "kernel.all.cpu.user + kernel.all.cpu.sys")
	e.Register("derived.mem.free", "mem.util.free")

	ctx := e.OpenContext(demoHostContext())
	defer ctx.Close()

	children := e.Children(ctx, "derived")
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %+v", children)
	}
}
