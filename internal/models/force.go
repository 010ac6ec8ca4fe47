package models

// ForceComponentCount is the number of end-force scalars per element: six
// degrees of freedom at node I and the mirrored six at node J.
const ForceComponentCount = 12

// ForceComponentNames lists the twelve components in wire order.
var ForceComponentNames = [ForceComponentCount]string{
	"N1", "Vy1", "Vz1", "T1", "My1", "Mz1",
	"N2", "Vy2", "Vz2", "T2", "My2", "Mz2",
}

// ForceVector12 holds the twelve end-force scalars of a single element for
// one combination: axial, shears, torsion and moments at each end node.
type ForceVector12 [ForceComponentCount]float64

// NewForceVector builds a ForceVector12 from a raw slice. Returns false when
// fewer than twelve values are available (insufficient-data signal).
func NewForceVector(values []float64) (ForceVector12, bool) {
	var fv ForceVector12
	if len(values) < ForceComponentCount {
		return fv, false
	}
	copy(fv[:], values[:ForceComponentCount])
	return fv, true
}

// AxialI and friends name the component slots for readers of the aggregate.
const (
	AxialI = iota
	ShearYI
	ShearZI
	TorsionI
	MomentYI
	MomentZI
	AxialJ
	ShearYJ
	ShearZJ
	TorsionJ
	MomentYJ
	MomentZJ
)
