package registry

import (
	"testing"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/host"
	"github.com/pcpkit/pmderive/internal/host/demo"
)

func demoHostContext() host.Context {
	ns := demo.New()
	return host.Context{Resolver: ns, Descs: ns, Prober: ns}
}

func TestRegisterAssignsDenseDerivedIDs(t *testing.T) {
	r := New()
	id1, err := r.Register("derived.one", "kernel.all.cpu.user + kernel.all.cpu.sys")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, err := r.Register("derived.two", "kernel.all.cpu.user - kernel.all.cpu.sys")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !id1.IsDerived() || !id2.IsDerived() {
		t.Fatalf("expected both ids to carry the derived flag")
	}
	if id1.Item() != 1 || id2.Item() != 2 {
		t.Fatalf("expected dense 1-based item allocation, got %d, %d", id1.Item(), id2.Item())
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	r := New()
	if _, err := r.Register("derived.one", "kernel.all.cpu.user"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := r.Register("derived.one", "kernel.all.cpu.sys")
	if err == nil {
		t.Fatalf("expected duplicate-name error")
	}
}

func TestRegisterRejectsParseFailure(t *testing.T) {
	r := New()
	_, err := r.Register("derived.bad", "1 +")
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadConfigStreamSkipsCommentsAndBlankLines(t *testing.T) {
	r := New()
	text := "" +
		"# a comment\n" +
		"\n" +
		"derived.busy = kernel.all.cpu.user + kernel.all.cpu.sys\n" +
		"derived.idle = kernel.all.cpu.idle\n"

	count := r.LoadConfigStream(text)
	if count != 2 {
		t.Fatalf("expected 2 registrations, got %d", count)
	}
}

func TestLoadConfigStreamContinuesPastLineErrors(t *testing.T) {
	r := New()
	text := "" +
		"this line has no equals sign\n" +
		"derived.ok = kernel.all.cpu.user\n"

	count := r.LoadConfigStream(text)
	if count != 1 {
		t.Fatalf("expected 1 registration despite the bad line, got %d", count)
	}
}

func TestLoadConfigStreamLeadingWhitespaceBeforeHashIsNotAComment(t *testing.T) {
	r := New()
	// " #..." : the '#' is not the first byte of the line, so this must
	// be parsed as a name/expression pair and fail (the line has no '=').
	text := "   # not a comment because of leading space\n"
	count := r.LoadConfigStream(text)
	if count != 0 {
		t.Fatalf("expected 0 registrations, got %d", count)
	}
	if r.Errors().Last() == nil {
		t.Fatalf("expected a diagnostic for the malformed line")
	}
}

func TestTraverseHidesDisabledEntries(t *testing.T) {
	r := New()
	if _, err := r.Register("derived.ok", "kernel.all.cpu.user"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Register("derived.bad", "no.such.metric"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := r.OpenContext(demoHostContext())
	defer r.CloseContext(c)

	names := r.Traverse(c, "")
	if len(names) != 1 || names[0] != "derived.ok" {
		t.Fatalf("expected only the enabled entry to be visible, got %v", names)
	}
}

func TestLookupIDAndNameRemainVisibleForDisabledEntries(t *testing.T) {
	r := New()
	id, err := r.Register("derived.bad", "no.such.metric")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, ok := r.LookupID("derived.bad"); !ok || got != id {
		t.Fatalf("expected lookup_id to remain visible for a disabled entry")
	}
	if got, ok := r.LookupName(id); !ok || got != "derived.bad" {
		t.Fatalf("expected lookup_name to remain visible for a disabled entry")
	}
}

func TestDescriptorDistinguishesNotFoundAndDisabled(t *testing.T) {
	r := New()
	goodID, _ := r.Register("derived.ok", "kernel.all.cpu.user")
	badID, _ := r.Register("derived.bad", "no.such.metric")

	c := r.OpenContext(demoHostContext())
	defer r.CloseContext(c)

	if _, err := r.Descriptor(c, goodID); err != nil {
		t.Fatalf("unexpected error for enabled entry: %v", err)
	}
	if _, err := r.Descriptor(c, badID); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if _, err := r.Descriptor(c, ast.NewDerivedID(99)); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChildrenCarvesNextSegmentAndDedupes(t *testing.T) {
	r := New()
	r.Register("derived.cpu.busy", "kernel.all.cpu.user + kernel.all.cpu.sys")
	r.Register("derived.cpu.idle", "kernel.all.cpu.idle")
	r.Register("derived.mem.free", "mem.util.free")

	c := r.OpenContext(demoHostContext())
	defer r.CloseContext(c)

	children := r.Children(c, "derived")
	if len(children) != 2 {
		t.Fatalf("expected 2 unique children, got %+v", children)
	}
	for _, ch := range children {
		if ch.IsLeaf {
			t.Fatalf("expected cpu/mem to be non-leaf, got %+v", ch)
		}
	}
}

func TestChildrenOfExactLeafNameIsEmpty(t *testing.T) {
	r := New()
	r.Register("derived.solo", "kernel.all.cpu.user")

	c := r.OpenContext(demoHostContext())
	defer r.CloseContext(c)

	if children := r.Children(c, "derived.solo"); len(children) != 0 {
		t.Fatalf("expected no children of an exact leaf name, got %+v", children)
	}
}

func TestRegisterAnonymousWrapsSyntheticExpression(t *testing.T) {
	r := New()
	if _, err := r.Register("derived.a", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := r.RegisterAnonymous("derived.anon", "U64")
	if err != nil {
		t.Fatalf("unexpected error registering anon: %v", err)
	}

	c := r.OpenContext(demoHostContext())
	defer r.CloseContext(c)

	desc, err := r.Descriptor(c, mustLookupID(t, r, "derived.anon"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.ValueType.String() != "U64" {
		t.Fatalf("expected U64, got %s", desc.ValueType)
	}
}

// TestBindMetricPlusIntegerLiteral covers spec.md §8 scenario 4: a derived
// expression mixing a metric operand with a bare integer literal must bind
// successfully end to end (parser -> binder -> registry), not merely pass
// semantic analysis given hand-patched descriptors.
func TestBindMetricPlusIntegerLiteral(t *testing.T) {
	r := New()
	id, err := r.Register("derived.load_plus", "kernel.all.load + 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := r.OpenContext(demoHostContext())
	defer r.CloseContext(c)

	desc, err := r.Descriptor(c, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Semantics.String() != "instant" {
		t.Fatalf("expected instant semantics (operand not both Discrete), got %s", desc.Semantics)
	}
}

func mustLookupID(t *testing.T, r *Registry, name string) ast.MetricID {
	t.Helper()
	id, ok := r.LookupID(name)
	if !ok {
		t.Fatalf("expected %q to be registered", name)
	}
	return id
}
