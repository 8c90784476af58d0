package ast

import "github.com/pcpkit/pmderive/internal/units"

// Descriptor is the semantic type of the value produced at a node:
// spec.md §3's {id, value_type, instance_domain, semantics, units}.
type Descriptor struct {
	ID             MetricID
	ValueType      units.ValueType
	InstanceDomain units.InstanceDomain
	Semantics      units.Semantics
	Units          units.Units
}

// Equal reports whether two descriptors describe the same semantic type,
// ignoring ID (used by the ternary-branch compatibility check and by
// property tests comparing bound trees).
func (d Descriptor) Equal(other Descriptor) bool {
	return d.ValueType == other.ValueType &&
		d.InstanceDomain == other.InstanceDomain &&
		d.Semantics == other.Semantics &&
		d.Units.Equal(other.Units)
}
