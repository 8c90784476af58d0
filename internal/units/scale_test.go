package units

import "testing"

func TestSpaceFactor(t *testing.T) {
	if got := SpaceFactor(Byte, KByte); got != 1024 {
		t.Errorf("SpaceFactor(Byte, KByte) = %d, want 1024", got)
	}
	if got := SpaceFactor(KByte, MByte); got != 1024 {
		t.Errorf("SpaceFactor(KByte, MByte) = %d, want 1024", got)
	}
	if got := SpaceFactor(Byte, MByte); got != 1024*1024 {
		t.Errorf("SpaceFactor(Byte, MByte) = %d, want %d", got, 1024*1024)
	}
	if got := SpaceFactor(Byte, Byte); got != 1 {
		t.Errorf("SpaceFactor(Byte, Byte) = %d, want 1", got)
	}
}

func TestTimeFactor(t *testing.T) {
	cases := []struct {
		from, to TimeScale
		want     int64
	}{
		{NSec, USec, 1000},
		{USec, MSec, 1000},
		{MSec, Sec, 1000},
		{Sec, Min, 60},
		{Min, Hour, 60},
		{NSec, Sec, 1000 * 1000 * 1000},
		{Sec, Sec, 1},
	}
	for _, c := range cases {
		if got := TimeFactor(c.from, c.to); got != c.want {
			t.Errorf("TimeFactor(%s, %s) = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}

func TestCountFactor(t *testing.T) {
	if got := CountFactor(CountOnes, CountTens); got != 10 {
		t.Errorf("CountFactor(ones, tens) = %d, want 10", got)
	}
	if got := CountFactor(CountOnes, CountThousands); got != 1000 {
		t.Errorf("CountFactor(ones, thousands) = %d, want 1000", got)
	}
}
