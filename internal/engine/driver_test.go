package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/framestack/envelope-engine/internal/aci"
	"github.com/framestack/envelope-engine/internal/models"
)

// fakeSolver is a scripted in-memory stand-in for the sidecar. Forces scale
// with the total applied load so envelope results are predictable.
type fakeSolver struct {
	elements  map[int][2]int
	coords    map[int]models.Coord
	loadLevel float64

	solveErr   error
	solveNotOK bool
	forcesErr  map[int]error
	listErr    error

	solveCalls    int
	endpointCalls int
}

func newFakeSolver() *fakeSolver {
	return &fakeSolver{
		elements: map[int][2]int{
			1: {1, 5},
			2: {5, 6},
		},
		coords: map[int]models.Coord{
			1: {},
			5: {Z: 3},
			6: {X: 5, Z: 3},
		},
		forcesErr: make(map[int]error),
	}
}

func (f *fakeSolver) ListElementIDs(context.Context) ([]int, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []int{1, 2}, nil
}

func (f *fakeSolver) NodeCoordinates(_ context.Context, nodeID int) (models.Coord, error) {
	coord, ok := f.coords[nodeID]
	if !ok {
		return models.Coord{}, errors.New("unknown node")
	}
	return coord, nil
}

func (f *fakeSolver) ElementEndpoints(_ context.Context, elementID int) (int, int, error) {
	f.endpointCalls++
	ends, ok := f.elements[elementID]
	if !ok {
		return 0, 0, errors.New("unknown element")
	}
	return ends[0], ends[1], nil
}

func (f *fakeSolver) ElementEndForces(_ context.Context, elementID int) (models.ForceVector12, error) {
	if err := f.forcesErr[elementID]; err != nil {
		return models.ForceVector12{}, err
	}
	var fv models.ForceVector12
	for i := range fv {
		fv[i] = f.loadLevel * float64(elementID)
	}
	return fv, nil
}

func (f *fakeSolver) Solve(_ context.Context, applied models.AppliedLoads) (bool, error) {
	f.solveCalls++
	if f.solveErr != nil {
		return false, f.solveErr
	}
	if f.solveNotOK {
		return false, nil
	}
	total := 0.0
	for _, v := range applied {
		total += v
	}
	f.loadLevel = total
	return true, nil
}

func mustCatalog(t *testing.T) *aci.Catalog {
	t.Helper()
	catalog, err := aci.NewCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return catalog
}

func TestDriverRunCombination(t *testing.T) {
	solver := newFakeSolver()
	agg := NewAggregator(testLogger())
	driver := NewDriver(testLogger(), mustCatalog(t), solver, agg)

	base := models.BaseLoads{models.LoadDead: 100}
	outcome := driver.RunCombination(context.Background(), "U1", base)

	if outcome.Status != models.StatusExtracted {
		t.Fatalf("expected %s, got %s (%s)", models.StatusExtracted, outcome.Status, outcome.Reason)
	}
	if outcome.ElementsExtracted != 2 || outcome.ElementsSkipped != 0 {
		t.Fatalf("expected 2 extracted, 0 skipped, got %d/%d",
			outcome.ElementsExtracted, outcome.ElementsSkipped)
	}

	rows := agg.Finalize()
	if len(rows) != 2 {
		t.Fatalf("expected 2 envelope rows, got %d", len(rows))
	}
	// Element 1 runs vertical, element 2 spans along X.
	if rows[0].Orientation != models.OrientationBeamAlongX || rows[0].ElementID != 2 {
		t.Fatalf("unexpected first row: %s/%d", rows[0].Orientation, rows[0].ElementID)
	}
	if rows[1].Orientation != models.OrientationColumn || rows[1].ElementID != 1 {
		t.Fatalf("unexpected second row: %s/%d", rows[1].Orientation, rows[1].ElementID)
	}
	// U1 applies 1.4 × 100, element 1 scales by its id.
	if got := rows[1].Extremes[models.AxialI].Max; got != 140 {
		t.Fatalf("expected axial max 140, got %v", got)
	}
}

func TestDriverUnknownCombination(t *testing.T) {
	solver := newFakeSolver()
	agg := NewAggregator(testLogger())
	driver := NewDriver(testLogger(), mustCatalog(t), solver, agg)

	outcome := driver.RunCombination(context.Background(), "U99", models.BaseLoads{models.LoadDead: 1})
	if outcome.Status != models.StatusInvalid {
		t.Fatalf("expected %s, got %s", models.StatusInvalid, outcome.Status)
	}
	if solver.solveCalls != 0 {
		t.Fatal("invalid combination must not reach the solver")
	}
	if agg.Elements() != 0 {
		t.Fatal("invalid combination must leave the envelope untouched")
	}
}

func TestDriverSolveFailureIngestsNothing(t *testing.T) {
	solver := newFakeSolver()
	solver.solveNotOK = true
	agg := NewAggregator(testLogger())
	driver := NewDriver(testLogger(), mustCatalog(t), solver, agg)

	outcome := driver.RunCombination(context.Background(), "U1", models.BaseLoads{models.LoadDead: 1})
	if outcome.Status != models.StatusSolveFailed {
		t.Fatalf("expected %s, got %s", models.StatusSolveFailed, outcome.Status)
	}
	if agg.Elements() != 0 {
		t.Fatal("failed solve must leave the envelope untouched")
	}
}

func TestDriverSolveErrorIngestsNothing(t *testing.T) {
	solver := newFakeSolver()
	solver.solveErr = errors.New("connection refused")
	agg := NewAggregator(testLogger())
	driver := NewDriver(testLogger(), mustCatalog(t), solver, agg)

	outcome := driver.RunCombination(context.Background(), "U1", models.BaseLoads{models.LoadDead: 1})
	if outcome.Status != models.StatusSolveFailed {
		t.Fatalf("expected %s, got %s", models.StatusSolveFailed, outcome.Status)
	}
	if outcome.Reason != "connection refused" {
		t.Fatalf("unexpected reason: %s", outcome.Reason)
	}
}

func TestDriverExtractionGapSkipsElementOnly(t *testing.T) {
	solver := newFakeSolver()
	solver.forcesErr[1] = errors.New("results not available")
	agg := NewAggregator(testLogger())
	driver := NewDriver(testLogger(), mustCatalog(t), solver, agg)

	outcome := driver.RunCombination(context.Background(), "U1", models.BaseLoads{models.LoadDead: 1})
	if outcome.Status != models.StatusExtracted {
		t.Fatalf("expected %s, got %s", models.StatusExtracted, outcome.Status)
	}
	if outcome.ElementsExtracted != 1 || outcome.ElementsSkipped != 1 {
		t.Fatalf("expected 1 extracted, 1 skipped, got %d/%d",
			outcome.ElementsExtracted, outcome.ElementsSkipped)
	}
	rows := agg.Finalize()
	if len(rows) != 1 || rows[0].ElementID != 2 {
		t.Fatalf("expected only element 2 in the envelope, got %v", rows)
	}
}

func TestDriverRunContinuesPastFailures(t *testing.T) {
	solver := newFakeSolver()
	agg := NewAggregator(testLogger())
	driver := NewDriver(testLogger(), mustCatalog(t), solver, agg)

	outcomes := driver.Run(context.Background(), []string{"U1", "BOGUS", "U2"},
		models.BaseLoads{models.LoadDead: 10, models.LoadLive: 5})

	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	wantStatus := []models.CombinationStatus{
		models.StatusExtracted, models.StatusInvalid, models.StatusExtracted,
	}
	for i, outcome := range outcomes {
		if outcome.Status != wantStatus[i] {
			t.Fatalf("outcome %d: expected %s, got %s", i, wantStatus[i], outcome.Status)
		}
	}
	if solver.solveCalls != 2 {
		t.Fatalf("expected 2 solver calls, got %d", solver.solveCalls)
	}
}

func TestDriverCachesGeometryAcrossCombinations(t *testing.T) {
	solver := newFakeSolver()
	agg := NewAggregator(testLogger())
	driver := NewDriver(testLogger(), mustCatalog(t), solver, agg)

	driver.Run(context.Background(), []string{"U1", "U2", "U5"},
		models.BaseLoads{models.LoadDead: 10})

	if solver.endpointCalls != len(solver.elements) {
		t.Fatalf("expected geometry fetched once per element, got %d endpoint calls",
			solver.endpointCalls)
	}
}
