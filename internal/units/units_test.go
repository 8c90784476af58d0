package units

import "testing"

func TestUnitsMulDiv(t *testing.T) {
	bytesPerSec := Units{DimSpace: 1, DimTime: -1}
	seconds := Units{DimTime: 1}

	if got := bytesPerSec.Mul(seconds); got.DimSpace != 1 || got.DimTime != 0 {
		t.Errorf("Mul dims = %+v, want space=1 time=0", got)
	}
	if got := bytesPerSec.Div(seconds); got.DimTime != -2 {
		t.Errorf("Div dims = %+v, want time=-2", got)
	}
}

func TestUnitsEqual(t *testing.T) {
	a := Units{DimSpace: 1, ScaleSpace: KByte}
	b := Units{DimSpace: 1, ScaleSpace: KByte}
	c := Units{DimSpace: 1, ScaleSpace: MByte}

	if !a.Equal(b) {
		t.Errorf("expected a.Equal(b)")
	}
	if a.Equal(c) {
		t.Errorf("expected !a.Equal(c), scales differ")
	}
	if !a.SameDimensions(c) {
		t.Errorf("expected a.SameDimensions(c)")
	}
}

func TestIndomUnify(t *testing.T) {
	if d, ok := Unify(NoIndom, "disk"); !ok || d != "disk" {
		t.Errorf("Unify(none, disk) = %q, %v; want disk, true", d, ok)
	}
	if d, ok := Unify("disk", NoIndom); !ok || d != "disk" {
		t.Errorf("Unify(disk, none) = %q, %v; want disk, true", d, ok)
	}
	if _, ok := Unify("disk", "cpu"); ok {
		t.Errorf("Unify(disk, cpu) should fail")
	}
	if d, ok := Unify(NoIndom, NoIndom); !ok || d != NoIndom {
		t.Errorf("Unify(none, none) = %q, %v; want none, true", d, ok)
	}
}
