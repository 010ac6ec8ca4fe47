package models

// ComponentExtreme tracks the running extremes of one force component and
// the combination that produced each of them.
type ComponentExtreme struct {
	Max      float64
	MaxCombo string
	Min      float64
	MinCombo string
}

// EnvelopeRow is the finalized design envelope for one element: geometry,
// orientation and the max/min attribution of every force component.
type EnvelopeRow struct {
	ElementID   int
	Orientation Orientation
	NodeI       int
	NodeJ       int
	CoordI      Coord
	CoordJ      Coord
	Extremes    [ForceComponentCount]ComponentExtreme
}
