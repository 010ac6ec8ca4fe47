package engine

import (
	"log/slog"
	"sort"

	"github.com/framestack/envelope-engine/internal/models"
)

// Aggregator folds per-element, per-combination force extractions into a
// running max/min table with governing-combination attribution. It is
// mutated only by the driver's sequential ingest calls.
type Aggregator struct {
	logger  *slog.Logger
	records map[int]*elementRecord
	ingests int
}

type elementRecord struct {
	geometry    models.ElementGeometry
	orientation models.Orientation
	extremes    [models.ForceComponentCount]models.ComponentExtreme
	observed    int
}

// NewAggregator constructs an empty envelope aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger, records: make(map[int]*elementRecord)}
}

// Ingest updates the envelope with one combination's forces for an element.
// The first observation seeds both extremes; afterwards a component extreme
// moves only on a strict improvement, so ties keep the first-seen governor.
func (a *Aggregator) Ingest(geometry models.ElementGeometry, orientation models.Orientation, combinationID string, forces models.ForceVector12) {
	a.ingests++

	rec, ok := a.records[geometry.ElementID]
	if !ok {
		rec = &elementRecord{geometry: geometry, orientation: orientation}
		for i := 0; i < models.ForceComponentCount; i++ {
			rec.extremes[i] = models.ComponentExtreme{
				Max:      forces[i],
				MaxCombo: combinationID,
				Min:      forces[i],
				MinCombo: combinationID,
			}
		}
		rec.observed = 1
		a.records[geometry.ElementID] = rec
		return
	}

	for i := 0; i < models.ForceComponentCount; i++ {
		ext := &rec.extremes[i]
		if forces[i] > ext.Max {
			ext.Max = forces[i]
			ext.MaxCombo = combinationID
		}
		if forces[i] < ext.Min {
			ext.Min = forces[i]
			ext.MinCombo = combinationID
		}
	}
	rec.observed++
}

// Elements returns the number of elements with at least one observation.
func (a *Aggregator) Elements() int {
	return len(a.records)
}

// Finalize returns the envelope rows ordered by orientation then element id.
// Elements that were registered but never observed are omitted with a
// warning rather than emitted with null data.
func (a *Aggregator) Finalize() []models.EnvelopeRow {
	rows := make([]models.EnvelopeRow, 0, len(a.records))
	for id, rec := range a.records {
		if rec.observed == 0 {
			a.logger.Warn("element has no envelope data, omitting",
				slog.Int("element_id", id))
			continue
		}
		rows = append(rows, models.EnvelopeRow{
			ElementID:   rec.geometry.ElementID,
			Orientation: rec.orientation,
			NodeI:       rec.geometry.NodeI,
			NodeJ:       rec.geometry.NodeJ,
			CoordI:      rec.geometry.CoordI,
			CoordJ:      rec.geometry.CoordJ,
			Extremes:    rec.extremes,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Orientation != rows[j].Orientation {
			return rows[i].Orientation < rows[j].Orientation
		}
		return rows[i].ElementID < rows[j].ElementID
	})

	return rows
}
