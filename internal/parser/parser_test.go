package parser

import (
	"testing"

	"github.com/pcpkit/pmderive/internal/ast"
	"github.com/pcpkit/pmderive/internal/lexer"
	"github.com/pcpkit/pmderive/internal/units"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	l := lexer.New(src)
	p := New(l)
	node := p.ParseExpression()
	if node == nil {
		if err := p.Errors().Last(); err != nil {
			t.Fatalf("parse %q: unexpected error: %s", src, err.Message)
		}
		t.Fatalf("parse %q: got nil node with no recorded error", src)
	}
	return node
}

func parseErr(t *testing.T, src string) string {
	t.Helper()
	l := lexer.New(src)
	p := New(l)
	node := p.ParseExpression()
	if node != nil {
		t.Fatalf("parse %q: expected error, got node %s", src, node)
	}
	err := p.Errors().Last()
	if err == nil {
		t.Fatalf("parse %q: expected a recorded diagnostic", src)
	}
	return err.Message
}

func TestParseArithmeticPrecedence(t *testing.T) {
	node := parse(t, "1 + 2 * 3")
	want := "(1 + (2 * 3))"
	if got := node.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	node := parse(t, "1 - 2 - 3")
	want := "((1 - 2) - 3)"
	if got := node.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseUnaryMinusBindsTighter(t *testing.T) {
	node := parse(t, "-1 * 2")
	want := "((-1) * 2)"
	if got := node.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseTernaryRightAssociative(t *testing.T) {
	node := parse(t, "a ? b : c ? d : e")
	want := "(a ? b : (c ? d : e))"
	if got := node.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseGroupedExpression(t *testing.T) {
	node := parse(t, "(1 + 2) * 3")
	want := "((1 + 2) * 3)"
	if got := node.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseFunctionCallSetsSaveLast(t *testing.T) {
	node := parse(t, "rate(disk.dev.read)")
	if node.Kind != ast.FuncRate {
		t.Fatalf("expected FuncRate, got %s", node.Kind)
	}
	if node.Left == nil || node.Left.Kind != ast.Name {
		t.Fatalf("expected Name argument, got %+v", node.Left)
	}
	if !node.Left.SaveLast {
		t.Fatalf("expected argument to have SaveLast set")
	}
}

func TestParseAnonFunction(t *testing.T) {
	cases := map[string]units.ValueType{
		"anon(PM_TYPE_32)": units.I32,
		"anon(U32)":        units.U32,
		"anon(64)":         units.I64,
		"anon(U64)":        units.U64,
		"anon(FLOAT)":      units.F32,
		"anon(DOUBLE)":     units.F64,
	}
	for src, want := range cases {
		node := parse(t, src)
		if node.Kind != ast.FuncAnon {
			t.Fatalf("%s: expected FuncAnon, got %s", src, node.Kind)
		}
		if node.Descriptor.ValueType != want {
			t.Fatalf("%s: got value type %s, want %s", src, node.Descriptor.ValueType, want)
		}
	}
}

func TestParseAnonRejectsUnknownTag(t *testing.T) {
	msg := parseErr(t, "anon(BOGUS)")
	if msg != `Unrecognised type tag "BOGUS" in anon(` {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestParseNumberWithUnits(t *testing.T) {
	node := parse(t, "2 Kbyte")
	if node.Kind != ast.Integer {
		t.Fatalf("expected Integer, got %s", node.Kind)
	}
	if node.Descriptor.Units.DimSpace != 1 || node.Descriptor.Units.ScaleSpace != units.KByte {
		t.Fatalf("got units %+v", node.Descriptor.Units)
	}
}

func TestParseNumberWithPerSecondUnits(t *testing.T) {
	node := parse(t, "100 byte/sec + 1")
	want := "(100 byte /sec + 1)"
	if got := node.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseMissingRightOperand(t *testing.T) {
	msg := parseErr(t, "1 +")
	if msg != "Arithmetic expression expected to follow +" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestParseUnexpectedInitialToken(t *testing.T) {
	msg := parseErr(t, "* 1")
	if msg != "Unexpected initial *" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestParseFunctionRequiresMetricName(t *testing.T) {
	msg := parseErr(t, "rate(1 + 2)")
	if msg != "Metric name expected to follow rate(" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestParseTrailingTokensRejected(t *testing.T) {
	msg := parseErr(t, "1 + 2 3")
	if msg == "" {
		t.Fatalf("expected an error for trailing tokens")
	}
}

// TestRoundTripThroughString implements spec.md §8's round-trip
// property: parse, render via String, re-parse, and expect a
// structurally identical tree.
func TestRoundTripThroughString(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		"a ? b : c ? d : e",
		"(1 + 2) * 3",
		"rate(disk.dev.read) > 100 byte/sec",
		"-1 * 2",
		"!a && b || c",
		"anon(U64) + kernel.all.cpu.user",
		"2 Kbyte^2/sec",
	}
	for _, src := range sources {
		first := parse(t, src)
		rendered := first.String()
		second := parse(t, rendered)
		if !first.Equal(second) {
			t.Fatalf("round trip mismatch for %q: first=%s rendered=%q second=%s",
				src, first, rendered, second)
		}
		if second.String() != rendered {
			t.Fatalf("re-render mismatch for %q: %q != %q", src, second.String(), rendered)
		}
	}
}
