package engine

import "github.com/framestack/envelope-engine/internal/models"

// columnRatio is the fraction of the element length the vertical projection
// must exceed for a column classification. Tolerant of minor lean; fixed
// contract together with the tie-break below.
const columnRatio = 0.7

// Classify determines an element's orientation from its end coordinates.
// |dz| > 0.7·length means Column; otherwise the larger of |dx| and |dy|
// decides the beam axis, with an exact tie resolving to BeamAlongX.
func Classify(coordI, coordJ models.Coord) models.Orientation {
	delta := coordJ.Sub(coordI)

	dz := delta.Z
	if dz < 0 {
		dz = -dz
	}
	if dz > columnRatio*delta.Norm() {
		return models.OrientationColumn
	}

	dx, dy := delta.X, delta.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return models.OrientationBeamAlongY
	}
	return models.OrientationBeamAlongX
}
