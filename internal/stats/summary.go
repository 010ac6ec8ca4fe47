// Package stats accumulates the raw per-combination force stream into the
// comparison and statistics tables that accompany the design envelope.
package stats

import (
	"math"
	"sort"

	"github.com/framestack/envelope-engine/internal/models"
)

// ComparisonRow is one (combination, element) record with the raw twelve
// forces and their absolute maxima per force family.
type ComparisonRow struct {
	CombinationID string
	ElementID     int
	Orientation   models.Orientation
	NodeI         int
	NodeJ         int
	Forces        models.ForceVector12
	AxialAbsMax   float64
	ShearAbsMax   float64
	MomentAbsMax  float64
}

// Summary aggregates one combination's force magnitudes across all
// extracted elements.
type Summary struct {
	CombinationID string
	Elements      int
	AxialMax      float64
	AxialMin      float64
	AxialMean     float64
	ShearMax      float64
	ShearMin      float64
	ShearMean     float64
	MomentMax     float64
	MomentMin     float64
	MomentMean    float64
}

// Collector implements the driver's sink interface and builds both tables.
type Collector struct {
	rows   []ComparisonRow
	combos map[string]*comboAccumulator
	order  []string
}

type comboAccumulator struct {
	elements int
	axial    magnitudes
	shear    magnitudes
	moment   magnitudes
}

type magnitudes struct {
	max   float64
	min   float64
	sum   float64
	count int
}

func (m *magnitudes) add(values ...float64) {
	for _, v := range values {
		v = math.Abs(v)
		if m.count == 0 {
			m.max = v
			m.min = v
		} else {
			if v > m.max {
				m.max = v
			}
			if v < m.min {
				m.min = v
			}
		}
		m.sum += v
		m.count++
	}
}

func (m magnitudes) mean() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// NewCollector constructs an empty statistics collector.
func NewCollector() *Collector {
	return &Collector{combos: make(map[string]*comboAccumulator)}
}

// Ingest records one combination's forces for an element.
func (c *Collector) Ingest(geometry models.ElementGeometry, orientation models.Orientation, combinationID string, forces models.ForceVector12) {
	row := ComparisonRow{
		CombinationID: combinationID,
		ElementID:     geometry.ElementID,
		Orientation:   orientation,
		NodeI:         geometry.NodeI,
		NodeJ:         geometry.NodeJ,
		Forces:        forces,
		AxialAbsMax:   absMax(forces[models.AxialI], forces[models.AxialJ]),
		ShearAbsMax: absMax(forces[models.ShearYI], forces[models.ShearYJ],
			forces[models.ShearZI], forces[models.ShearZJ]),
		MomentAbsMax: absMax(forces[models.MomentYI], forces[models.MomentYJ],
			forces[models.MomentZI], forces[models.MomentZJ]),
	}
	c.rows = append(c.rows, row)

	acc, ok := c.combos[combinationID]
	if !ok {
		acc = &comboAccumulator{}
		c.combos[combinationID] = acc
		c.order = append(c.order, combinationID)
	}
	acc.elements++
	acc.axial.add(forces[models.AxialI], forces[models.AxialJ])
	acc.shear.add(forces[models.ShearYI], forces[models.ShearYJ],
		forces[models.ShearZI], forces[models.ShearZJ])
	acc.moment.add(forces[models.MomentYI], forces[models.MomentYJ],
		forces[models.MomentZI], forces[models.MomentZJ])
}

// Comparison returns the per-record table ordered by combination,
// orientation and element id.
func (c *Collector) Comparison() []ComparisonRow {
	rows := append([]ComparisonRow(nil), c.rows...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CombinationID != rows[j].CombinationID {
			return rows[i].CombinationID < rows[j].CombinationID
		}
		if rows[i].Orientation != rows[j].Orientation {
			return rows[i].Orientation < rows[j].Orientation
		}
		return rows[i].ElementID < rows[j].ElementID
	})
	return rows
}

// Summaries returns one aggregate per combination, largest axial maximum
// first.
func (c *Collector) Summaries() []Summary {
	summaries := make([]Summary, 0, len(c.order))
	for _, id := range c.order {
		acc := c.combos[id]
		summaries = append(summaries, Summary{
			CombinationID: id,
			Elements:      acc.elements,
			AxialMax:      acc.axial.max,
			AxialMin:      acc.axial.min,
			AxialMean:     acc.axial.mean(),
			ShearMax:      acc.shear.max,
			ShearMin:      acc.shear.min,
			ShearMean:     acc.shear.mean(),
			MomentMax:     acc.moment.max,
			MomentMin:     acc.moment.min,
			MomentMean:    acc.moment.mean(),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AxialMax > summaries[j].AxialMax
	})
	return summaries
}

func absMax(values ...float64) float64 {
	max := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}
