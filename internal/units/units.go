package units

// Units is the dimensioned-scale descriptor carried by every value:
// three independent axes (space, time, count), each with an integer
// dimension (exponent) and a scale within that axis.
type Units struct {
	DimSpace int8
	DimTime  int8
	DimCount int8

	ScaleSpace SpaceScale
	ScaleTime  TimeScale
	ScaleCount CountScale
}

// None is the dimensionless, scaleless unit.
var None = Units{}

// IsDimensionless reports whether u carries no dimension on any axis.
func (u Units) IsDimensionless() bool {
	return u.DimSpace == 0 && u.DimTime == 0 && u.DimCount == 0
}

// SameDimensions reports whether u and other have identical exponents on
// all three axes, regardless of scale.
func (u Units) SameDimensions(other Units) bool {
	return u.DimSpace == other.DimSpace && u.DimTime == other.DimTime && u.DimCount == other.DimCount
}

// Equal reports whether u and other have identical dimensions and scales.
func (u Units) Equal(other Units) bool {
	return u.SameDimensions(other) && u.ScaleSpace == other.ScaleSpace &&
		u.ScaleTime == other.ScaleTime && u.ScaleCount == other.ScaleCount
}

// Mul returns the component-wise sum of dimensions, used for '*' typing
// (spec.md §4.D map_units).
func (u Units) Mul(other Units) Units {
	return Units{
		DimSpace: u.DimSpace + other.DimSpace,
		DimTime:  u.DimTime + other.DimTime,
		DimCount: u.DimCount + other.DimCount,
	}
}

// Div returns the component-wise difference of dimensions, used for '/'
// typing (spec.md §4.D map_units).
func (u Units) Div(other Units) Units {
	return Units{
		DimSpace: u.DimSpace - other.DimSpace,
		DimTime:  u.DimTime - other.DimTime,
		DimCount: u.DimCount - other.DimCount,
	}
}
