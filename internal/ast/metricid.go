package ast

import "fmt"

// MetricID is an opaque metric identifier. Derived metrics are tagged
// with a high-order flag bit, a reserved dynamic domain, cluster 0, and
// a 1-based item index equal to their registration order (spec.md §6).
type MetricID uint32

const (
	derivedFlag MetricID = 1 << 31

	domainBits  = 9
	clusterBits = 12
	itemBits    = 10

	domainShift  = clusterBits + itemBits
	clusterShift = itemBits

	domainMask  = (1 << domainBits) - 1
	clusterMask = (1 << clusterBits) - 1
	itemMask    = (1 << itemBits) - 1
)

// DynamicDomain is the reserved domain used for every derived metric.
const DynamicDomain = domainMask

// NoMetricID is the zero value, used for unresolved Name leaves in a
// static AST and for the synthesised type-tag child of an anon() node.
const NoMetricID MetricID = 0

// NewDerivedID synthesises the id for the item'th (1-based) registration.
func NewDerivedID(item int) MetricID {
	return derivedFlag |
		(MetricID(DynamicDomain&domainMask) << domainShift) |
		(MetricID(0&clusterMask) << clusterShift) |
		MetricID(item&itemMask)
}

// IsDerived reports whether id carries the derived/dynamic flag.
func (id MetricID) IsDerived() bool {
	return id&derivedFlag != 0
}

// Domain, Cluster, Item decompose id into its PMNS-style fields.
func (id MetricID) Domain() int  { return int((id >> domainShift) & domainMask) }
func (id MetricID) Cluster() int { return int((id >> clusterShift) & clusterMask) }
func (id MetricID) Item() int    { return int(id & itemMask) }

func (id MetricID) String() string {
	tag := ""
	if id.IsDerived() {
		tag = "derived."
	}
	return fmt.Sprintf("%s%d.%d.%d", tag, id.Domain(), id.Cluster(), id.Item())
}
