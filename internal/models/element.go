package models

import "math"

// Coord is a node position in consistent length units.
type Coord struct {
	X float64
	Y float64
	Z float64
}

// Sub returns the displacement vector from other to c.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// Norm returns the Euclidean length of the vector.
func (c Coord) Norm() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// ElementGeometry captures an element's end nodes and their positions.
// Geometry is owned by the external model and read once per element per run.
type ElementGeometry struct {
	ElementID int
	NodeI     int
	NodeJ     int
	CoordI    Coord
	CoordJ    Coord
}

// Orientation classifies an element by its geometric axis.
type Orientation string

const (
	OrientationColumn     Orientation = "Column"
	OrientationBeamAlongX Orientation = "BeamAlongX"
	OrientationBeamAlongY Orientation = "BeamAlongY"
)
