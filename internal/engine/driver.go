package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/framestack/envelope-engine/internal/aci"
	"github.com/framestack/envelope-engine/internal/models"
)

// Solver is the external structural-model collaborator. Solve mutates the
// shared model state in place, which is why the driver runs combinations
// strictly one at a time.
type Solver interface {
	ListElementIDs(ctx context.Context) ([]int, error)
	NodeCoordinates(ctx context.Context, nodeID int) (models.Coord, error)
	ElementEndpoints(ctx context.Context, elementID int) (nodeI, nodeJ int, err error)
	ElementEndForces(ctx context.Context, elementID int) (models.ForceVector12, error)
	Solve(ctx context.Context, applied models.AppliedLoads) (bool, error)
}

// Sink consumes the driver's per-element, per-combination force stream.
type Sink interface {
	Ingest(geometry models.ElementGeometry, orientation models.Orientation, combinationID string, forces models.ForceVector12)
}

// Driver orchestrates the per-combination analysis loop: apply factors,
// solve, extract end forces, feed the sinks.
type Driver struct {
	logger  *slog.Logger
	catalog *aci.Catalog
	solver  Solver
	sinks   []Sink

	// Geometry is stable across combinations, so it is read once per
	// element per run and reused afterwards.
	geometry map[int]classifiedGeometry
}

type classifiedGeometry struct {
	geom        models.ElementGeometry
	orientation models.Orientation
}

// NewDriver constructs a Driver feeding the given sinks.
func NewDriver(logger *slog.Logger, catalog *aci.Catalog, solver Solver, sinks ...Sink) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		logger:   logger,
		catalog:  catalog,
		solver:   solver,
		sinks:    sinks,
		geometry: make(map[int]classifiedGeometry),
	}
}

// Run processes the selected combinations sequentially, in the order given.
// Every combination yields an outcome; failures never abort the run.
func (d *Driver) Run(ctx context.Context, selection []string, baseLoads models.BaseLoads) []models.CombinationOutcome {
	outcomes := make([]models.CombinationOutcome, 0, len(selection))
	for i, id := range selection {
		d.logger.Info("running combination",
			slog.String("combination", id),
			slog.Int("position", i+1),
			slog.Int("total", len(selection)))

		outcome := d.RunCombination(ctx, id, baseLoads)
		switch outcome.Status {
		case models.StatusExtracted:
			d.logger.Info("combination extracted",
				slog.String("combination", id),
				slog.Int("elements", outcome.ElementsExtracted),
				slog.Int("skipped", outcome.ElementsSkipped),
				slog.Duration("solve", outcome.SolveDuration))
		case models.StatusInvalid:
			d.logger.Error("combination not in catalog, skipping",
				slog.String("combination", id))
		default:
			d.logger.Warn("combination skipped",
				slog.String("combination", id),
				slog.String("reason", outcome.Reason))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// RunCombination drives a single combination through the state machine
// Pending → Applying → Solving → {Extracted | Skipped}. A failed solve
// leaves no partial envelope updates behind: nothing is ingested until the
// solver has reported success.
func (d *Driver) RunCombination(ctx context.Context, combinationID string, baseLoads models.BaseLoads) models.CombinationOutcome {
	outcome := models.CombinationOutcome{CombinationID: combinationID, Status: models.StatusPending}

	outcome.Status = models.StatusApplying
	combo, err := d.catalog.Lookup(combinationID)
	if err != nil {
		outcome.Status = models.StatusInvalid
		outcome.Reason = err.Error()
		return outcome
	}
	applied := aci.Apply(combo, baseLoads)
	d.logger.Debug("factors applied",
		slog.String("combination", combinationID),
		slog.String("name", combo.Name),
		slog.Int("load_cases", len(applied)))

	outcome.Status = models.StatusSolving
	start := time.Now()
	ok, err := d.solver.Solve(ctx, applied)
	outcome.SolveDuration = time.Since(start)
	if err != nil {
		outcome.Status = models.StatusSolveFailed
		outcome.Reason = err.Error()
		return outcome
	}
	if !ok {
		outcome.Status = models.StatusSolveFailed
		outcome.Reason = "solver reported failure"
		return outcome
	}

	elementIDs, err := d.solver.ListElementIDs(ctx)
	if err != nil {
		outcome.Status = models.StatusSolveFailed
		outcome.Reason = fmt.Sprintf("list elements: %v", err)
		return outcome
	}

	for _, elementID := range elementIDs {
		cg, err := d.classifiedGeometry(ctx, elementID)
		if err != nil {
			outcome.ElementsSkipped++
			d.logger.Warn("element geometry unavailable",
				slog.String("combination", combinationID),
				slog.Int("element_id", elementID),
				slog.Any("error", err))
			continue
		}

		forces, err := d.solver.ElementEndForces(ctx, elementID)
		if err != nil {
			outcome.ElementsSkipped++
			d.logger.Warn("element forces unavailable",
				slog.String("combination", combinationID),
				slog.Int("element_id", elementID),
				slog.Any("error", err))
			continue
		}

		for _, sink := range d.sinks {
			sink.Ingest(cg.geom, cg.orientation, combinationID, forces)
		}
		outcome.ElementsExtracted++
	}

	outcome.Status = models.StatusExtracted
	return outcome
}

func (d *Driver) classifiedGeometry(ctx context.Context, elementID int) (classifiedGeometry, error) {
	if cg, ok := d.geometry[elementID]; ok {
		return cg, nil
	}

	nodeI, nodeJ, err := d.solver.ElementEndpoints(ctx, elementID)
	if err != nil {
		return classifiedGeometry{}, fmt.Errorf("endpoints: %w", err)
	}
	coordI, err := d.solver.NodeCoordinates(ctx, nodeI)
	if err != nil {
		return classifiedGeometry{}, fmt.Errorf("node %d: %w", nodeI, err)
	}
	coordJ, err := d.solver.NodeCoordinates(ctx, nodeJ)
	if err != nil {
		return classifiedGeometry{}, fmt.Errorf("node %d: %w", nodeJ, err)
	}

	cg := classifiedGeometry{
		geom: models.ElementGeometry{
			ElementID: elementID,
			NodeI:     nodeI,
			NodeJ:     nodeJ,
			CoordI:    coordI,
			CoordJ:    coordJ,
		},
		orientation: Classify(coordI, coordJ),
	}
	d.geometry[elementID] = cg
	return cg, nil
}
