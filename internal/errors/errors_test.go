package errors

import "testing"

func TestFormatCaret(t *testing.T) {
	src := "kernel.all.load + "
	err := New(Position{Line: 1, Column: 19}, "Arithmetic expression expected to follow +", src)

	want := "kernel.all.load + \n                  ^\nArithmetic expression expected to follow +"
	if got := err.Format(false); got != want {
		t.Errorf("Format(false) =\n%q\nwant\n%q", got, want)
	}

	wantColor := "kernel.all.load + \n                  \033[1;31m^\033[0m\nArithmetic expression expected to follow +"
	if got := err.Format(true); got != wantColor {
		t.Errorf("Format(true) =\n%q\nwant\n%q", got, wantColor)
	}
}

func TestChannelClearedOnEachRegistration(t *testing.T) {
	var ch Channel
	ch.Set(New(Position{Line: 1, Column: 1}, "boom", "x"))
	if ch.Last() == nil {
		t.Fatalf("expected diagnostic after Set")
	}
	ch.Clear()
	if ch.Last() != nil {
		t.Fatalf("expected nil diagnostic after Clear")
	}
}
