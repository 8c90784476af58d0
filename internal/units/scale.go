package units

// SpaceScale enumerates the supported byte-count magnitudes. Adjacent
// scales differ by a constant factor of 1024 (spec.md §4.D).
type SpaceScale int

const (
	Byte SpaceScale = iota
	KByte
	MByte
	GByte
	TByte
	PByte
	EByte
)

func (s SpaceScale) String() string {
	switch s {
	case Byte:
		return "byte"
	case KByte:
		return "Kbyte"
	case MByte:
		return "Mbyte"
	case GByte:
		return "Gbyte"
	case TByte:
		return "Tbyte"
	case PByte:
		return "Pbyte"
	case EByte:
		return "Ebyte"
	default:
		return "?byte"
	}
}

// TimeScale enumerates the supported time magnitudes. Unlike space and
// count, the step factor between adjacent scales is not uniform.
type TimeScale int

const (
	NSec TimeScale = iota
	USec
	MSec
	Sec
	Min
	Hour
)

func (s TimeScale) String() string {
	switch s {
	case NSec:
		return "nsec"
	case USec:
		return "usec"
	case MSec:
		return "msec"
	case Sec:
		return "sec"
	case Min:
		return "min"
	case Hour:
		return "hour"
	default:
		return "?sec"
	}
}

// timeSteps[i] is the factor between TimeScale(i) and TimeScale(i+1).
var timeSteps = [...]int64{1000, 1000, 1000, 60, 60}

// CountScale enumerates decimal-magnitude counts: CountScale(n) means the
// value is expressed in units of 10^n. Adjacent scales differ by a
// constant factor of 10 (spec.md §4.D).
type CountScale int

const (
	CountOnes      CountScale = 0
	CountTens      CountScale = 1
	CountHundreds  CountScale = 2
	CountThousands CountScale = 3
	CountMillions  CountScale = 6
	CountBillions  CountScale = 9
)

func (s CountScale) String() string {
	switch s {
	case CountOnes:
		return "count"
	case CountTens:
		return "count x 10"
	case CountHundreds:
		return "count x 100"
	case CountThousands:
		return "count x 1000"
	case CountMillions:
		return "count x 1e6"
	case CountBillions:
		return "count x 1e9"
	default:
		return "count x 10^" + itoa(int(s))
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// SpaceFactor returns the multiplier that converts a value expressed in
// scale `from` into the equivalent value expressed in scale `to`. Only
// to >= from is supported, the only direction map_units ever requests.
func SpaceFactor(from, to SpaceScale) int64 {
	return pow(1024, int(to-from))
}

// TimeFactor is the TimeScale analogue of SpaceFactor, using the
// non-uniform timeSteps table. Only to >= from is supported: map_units
// only ever rescales the finer operand up to the coarser scale.
func TimeFactor(from, to TimeScale) int64 {
	factor := int64(1)
	for i := from; i < to; i++ {
		factor *= timeSteps[i]
	}
	return factor
}

// CountFactor is the CountScale analogue of SpaceFactor.
func CountFactor(from, to CountScale) int64 {
	return pow(10, int(to-from))
}

// pow computes base^exp for exp >= 0.
func pow(base int64, exp int) int64 {
	r := int64(1)
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
