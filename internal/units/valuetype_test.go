package units

import "testing"

func TestPromoteSymmetry(t *testing.T) {
	types := []ValueType{I32, U32, I64, U64, F32, F64}
	for _, a := range types {
		for _, b := range types {
			if got, want := Promote(a, b), Promote(b, a); got != want {
				t.Errorf("Promote(%s, %s) = %s, but Promote(%s, %s) = %s", a, b, got, b, a, want)
			}
		}
	}
}

func TestPromoteTable(t *testing.T) {
	cases := []struct {
		a, b, want ValueType
	}{
		{I32, I32, I32},
		{I32, U32, U32},
		{I32, I64, I64},
		{I32, U64, U64},
		{U32, U32, U32},
		{U32, I64, I64},
		{U32, U64, U64},
		{I64, I64, I64},
		{I64, U64, U64},
		{U64, U64, U64},
		{I32, F32, F32},
		{F32, F64, F64},
		{U64, F64, F64},
	}
	for _, c := range cases {
		if got := Promote(c.a, c.b); got != c.want {
			t.Errorf("Promote(%s, %s) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestNegate(t *testing.T) {
	cases := []struct {
		in, want ValueType
	}{
		{U32, I32},
		{U64, I64},
		{I32, I32},
		{F64, F64},
	}
	for _, c := range cases {
		if got := c.in.Negate(); got != c.want {
			t.Errorf("%s.Negate() = %s, want %s", c.in, got, c.want)
		}
	}
}
