package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/framestack/envelope-engine/internal/aci"
	"github.com/framestack/envelope-engine/internal/config"
	"github.com/framestack/envelope-engine/internal/engine"
	"github.com/framestack/envelope-engine/internal/export"
	"github.com/framestack/envelope-engine/internal/metrics"
	"github.com/framestack/envelope-engine/internal/models"
	"github.com/framestack/envelope-engine/internal/repo"
	"github.com/framestack/envelope-engine/internal/stats"
	"github.com/framestack/envelope-engine/internal/utils"
)

// ErrEmptySelection signals a run request naming no combinations at all.
var ErrEmptySelection = errors.New("no combinations selected")

// EnvelopeService drives a full envelope run: sequential per-combination
// analysis, aggregation, artifact export and archiving.
type EnvelopeService struct {
	logger    *slog.Logger
	catalog   *aci.Catalog
	solver    engine.Solver
	exporter  *export.Exporter
	store     *repo.RunStore
	output    config.OutputConfig
	latencies *utils.LatencyTracker
}

// NewEnvelopeService constructs the service facade.
func NewEnvelopeService(logger *slog.Logger, catalog *aci.Catalog, solver engine.Solver, exporter *export.Exporter, store *repo.RunStore, output config.OutputConfig) *EnvelopeService {
	if logger == nil {
		logger = slog.Default()
	}
	if exporter == nil {
		exporter = export.NewExporter(output.Decimals)
	}
	return &EnvelopeService{
		logger:    logger,
		catalog:   catalog,
		solver:    solver,
		exporter:  exporter,
		store:     store,
		output:    output,
		latencies: utils.NewLatencyTracker(256),
	}
}

// Run processes the selection and writes the artifacts. The selection must
// be non-empty; combinations are analysed strictly in the order given.
func (s *EnvelopeService) Run(ctx context.Context, selection []string, baseLoads models.BaseLoads) (models.RunReport, error) {
	started := time.Now().UTC()
	report := models.RunReport{
		RunID:     utils.RunID(started),
		StartedAt: started,
		Selection: append([]string(nil), selection...),
	}

	if len(selection) == 0 {
		s.logger.Warn("empty selection, no envelope will be produced")
		return report, ErrEmptySelection
	}
	if s.solver == nil {
		return report, utils.NewAppError("run", "solver not configured", nil)
	}

	aggregator := engine.NewAggregator(s.logger)
	collector := stats.NewCollector()
	driver := engine.NewDriver(s.logger, s.catalog, s.solver, aggregator, collector)

	report.Outcomes = driver.Run(ctx, selection, baseLoads)
	report.Elements = aggregator.Elements()
	report.FinishedAt = time.Now().UTC()

	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case models.StatusExtracted:
			metrics.ObserveCombination(metrics.OutcomeExtracted, outcome.SolveDuration, outcome.ElementsSkipped)
			s.latencies.Observe(outcome.SolveDuration)
		case models.StatusInvalid:
			metrics.ObserveCombination(metrics.OutcomeInvalid, 0, 0)
		default:
			metrics.ObserveCombination(metrics.OutcomeSkipped, outcome.SolveDuration, 0)
		}
	}
	if count := s.latencies.Count(); count > 0 {
		s.logger.Info("solve latency",
			slog.Duration("p95", s.latencies.Percentile(95)),
			slog.Int("samples", count))
	}

	rows := aggregator.Finalize()
	if len(rows) == 0 {
		s.logger.Warn("no combination produced envelope data, skipping artifacts",
			slog.Int("combinations", len(selection)))
		s.archive(report)
		return report, nil
	}

	artifacts, err := s.writeArtifacts(rows, collector)
	if err != nil {
		return report, err
	}
	report.Artifacts = artifacts

	s.logger.Info("envelope run complete",
		slog.String("run_id", report.RunID),
		slog.Int("combinations_ok", report.Succeeded()),
		slog.Int("elements", len(rows)))

	s.archive(report)
	return report, nil
}

// SolveLatencyP95 returns the current p95 solve latency for this service.
func (s *EnvelopeService) SolveLatencyP95() time.Duration {
	if s.latencies == nil {
		return 0
	}
	return s.latencies.Percentile(95)
}

func (s *EnvelopeService) writeArtifacts(rows []models.EnvelopeRow, collector *stats.Collector) ([]string, error) {
	if s.output.Dir != "" {
		if err := os.MkdirAll(s.output.Dir, 0o755); err != nil {
			return nil, utils.NewAppError("export", "create output dir", err)
		}
	}

	targets := []struct {
		name  string
		write func(io.Writer) error
	}{
		{s.output.EnvelopeFile, func(w io.Writer) error { return s.exporter.WriteEnvelope(w, rows) }},
		{s.output.ComparisonFile, func(w io.Writer) error { return s.exporter.WriteComparison(w, collector.Comparison()) }},
		{s.output.StatisticsFile, func(w io.Writer) error { return s.exporter.WriteStatistics(w, collector.Summaries()) }},
	}

	artifacts := make([]string, 0, len(targets))
	for _, target := range targets {
		if target.name == "" {
			continue
		}
		path := filepath.Join(s.output.Dir, target.name)
		if err := export.WriteFile(path, target.write); err != nil {
			return nil, utils.NewAppError("export", fmt.Sprintf("write %s", target.name), err)
		}
		s.logger.Info("artifact written", slog.String("path", path))
		artifacts = append(artifacts, path)
	}
	return artifacts, nil
}

func (s *EnvelopeService) archive(report models.RunReport) {
	if !s.store.Enabled() {
		return
	}
	if err := s.store.SaveReport(report); err != nil {
		s.logger.Warn("failed to archive run report", slog.Any("error", err))
	}
}
