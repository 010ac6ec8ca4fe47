package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/framestack/envelope-engine/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGeometry(id int) models.ElementGeometry {
	return models.ElementGeometry{
		ElementID: id,
		NodeI:     id,
		NodeJ:     id + 100,
		CoordI:    models.Coord{},
		CoordJ:    models.Coord{Z: 3},
	}
}

func forcesOf(value float64) models.ForceVector12 {
	var fv models.ForceVector12
	for i := range fv {
		fv[i] = value
	}
	return fv
}

func TestAggregatorSingleObservationSeedsBothExtremes(t *testing.T) {
	agg := NewAggregator(testLogger())
	agg.Ingest(testGeometry(1), models.OrientationColumn, "U1", forcesOf(-12.5))

	rows := agg.Finalize()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	for i, ext := range rows[0].Extremes {
		if ext.Max != -12.5 || ext.Min != -12.5 {
			t.Fatalf("component %d: expected both extremes -12.5, got max=%v min=%v", i, ext.Max, ext.Min)
		}
		if ext.MaxCombo != "U1" || ext.MinCombo != "U1" {
			t.Fatalf("component %d: expected U1 attribution, got max=%s min=%s", i, ext.MaxCombo, ext.MinCombo)
		}
	}
}

func TestAggregatorTracksPerComponentExtremes(t *testing.T) {
	agg := NewAggregator(testLogger())

	first := forcesOf(0)
	first[models.AxialI] = 10
	first[models.MomentZJ] = -4
	agg.Ingest(testGeometry(7), models.OrientationBeamAlongX, "U1", first)

	second := forcesOf(0)
	second[models.AxialI] = -3
	second[models.MomentZJ] = 8
	agg.Ingest(testGeometry(7), models.OrientationBeamAlongX, "U2", second)

	rows := agg.Finalize()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	axial := rows[0].Extremes[models.AxialI]
	if axial.Max != 10 || axial.MaxCombo != "U1" {
		t.Fatalf("axial max: expected 10/U1, got %v/%s", axial.Max, axial.MaxCombo)
	}
	if axial.Min != -3 || axial.MinCombo != "U2" {
		t.Fatalf("axial min: expected -3/U2, got %v/%s", axial.Min, axial.MinCombo)
	}

	moment := rows[0].Extremes[models.MomentZJ]
	if moment.Max != 8 || moment.MaxCombo != "U2" {
		t.Fatalf("moment max: expected 8/U2, got %v/%s", moment.Max, moment.MaxCombo)
	}
	if moment.Min != -4 || moment.MinCombo != "U1" {
		t.Fatalf("moment min: expected -4/U1, got %v/%s", moment.Min, moment.MinCombo)
	}
}

func TestAggregatorTieKeepsFirstSeenGovernor(t *testing.T) {
	agg := NewAggregator(testLogger())
	agg.Ingest(testGeometry(3), models.OrientationColumn, "U1", forcesOf(5))
	agg.Ingest(testGeometry(3), models.OrientationColumn, "U2", forcesOf(5))

	rows := agg.Finalize()
	ext := rows[0].Extremes[models.AxialI]
	if ext.MaxCombo != "U1" || ext.MinCombo != "U1" {
		t.Fatalf("tie must keep the first-seen governor, got max=%s min=%s", ext.MaxCombo, ext.MinCombo)
	}
}

func TestAggregatorFinalizeOrdersByOrientationThenID(t *testing.T) {
	agg := NewAggregator(testLogger())

	beamY := testGeometry(9)
	agg.Ingest(beamY, models.OrientationBeamAlongY, "U1", forcesOf(1))
	column := testGeometry(4)
	agg.Ingest(column, models.OrientationColumn, "U1", forcesOf(1))
	beamX2 := testGeometry(8)
	agg.Ingest(beamX2, models.OrientationBeamAlongX, "U1", forcesOf(1))
	beamX1 := testGeometry(5)
	agg.Ingest(beamX1, models.OrientationBeamAlongX, "U1", forcesOf(1))

	rows := agg.Finalize()
	wantOrder := []int{5, 8, 9, 4}
	wantOrient := []models.Orientation{
		models.OrientationBeamAlongX,
		models.OrientationBeamAlongX,
		models.OrientationBeamAlongY,
		models.OrientationColumn,
	}
	if len(rows) != len(wantOrder) {
		t.Fatalf("expected %d rows, got %d", len(wantOrder), len(rows))
	}
	for i, row := range rows {
		if row.ElementID != wantOrder[i] || row.Orientation != wantOrient[i] {
			t.Fatalf("row %d: expected %s/%d, got %s/%d",
				i, wantOrient[i], wantOrder[i], row.Orientation, row.ElementID)
		}
	}
}

func TestAggregatorFinalizeIsDeterministic(t *testing.T) {
	build := func() []models.EnvelopeRow {
		agg := NewAggregator(testLogger())
		for _, id := range []int{12, 3, 7, 1, 9} {
			agg.Ingest(testGeometry(id), models.OrientationColumn, "U1", forcesOf(float64(id)))
			agg.Ingest(testGeometry(id), models.OrientationColumn, "U2", forcesOf(-float64(id)))
		}
		return agg.Finalize()
	}

	first := build()
	second := build()
	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ElementID != second[i].ElementID {
			t.Fatalf("row %d: element order differs, %d vs %d", i, first[i].ElementID, second[i].ElementID)
		}
		if first[i].Extremes != second[i].Extremes {
			t.Fatalf("row %d: extremes differ between identical runs", i)
		}
	}
}
