package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/framestack/envelope-engine/internal/aci"
	"github.com/framestack/envelope-engine/internal/cache"
	"github.com/framestack/envelope-engine/internal/config"
	"github.com/framestack/envelope-engine/internal/export"
	"github.com/framestack/envelope-engine/internal/metrics"
	"github.com/framestack/envelope-engine/internal/repo"
	"github.com/framestack/envelope-engine/internal/services"
	"github.com/framestack/envelope-engine/internal/utils"
)

var (
	runCombos []string
	runPreset string
	outputDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the selected load combinations and export the envelope",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if outputDir != "" {
			cfg.Output.Dir = outputDir
		}

		logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)

		if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		if cfg.Metrics.Address != "" {
			go serveMetrics(logger, cfg.Metrics.Address)
		}

		catalog, err := aci.NewCatalog()
		if err != nil {
			return fmt.Errorf("load combination catalog: %w", err)
		}

		selection, err := resolveSelection(cfg)
		if err != nil {
			return err
		}

		baseLoads, err := cfg.ParsedBaseLoads()
		if err != nil {
			return err
		}

		solver := repo.NewSolverClient(
			cfg.Solver.BaseURL,
			cfg.Solver.ElementsPath,
			cfg.Solver.NodesPath,
			cfg.Solver.EndpointsPath,
			cfg.Solver.ForcesPath,
			cfg.Solver.SolvePath,
			cfg.Solver.Timeout,
			cache.NewMemoryProvider(),
			cfg.Cache.GeometryTTL,
		)

		service := services.NewEnvelopeService(
			logger,
			catalog,
			solver,
			export.NewExporter(cfg.Output.Decimals),
			repo.NewRunStore(cfg.Archive.Dir),
			cfg.Output,
		)

		report, err := service.Run(cmd.Context(), selection, baseLoads)
		if err != nil {
			if errors.Is(err, services.ErrEmptySelection) {
				logger.Warn("nothing to do", slog.Any("error", err))
				return nil
			}
			return err
		}

		logger.Info("run finished",
			slog.String("run_id", report.RunID),
			slog.Int("combinations", len(report.Outcomes)),
			slog.Int("succeeded", report.Succeeded()),
			slog.Int("elements", report.Elements))
		return nil
	},
}

// resolveSelection orders the combination ids for this run: explicit
// --combos wins, then --preset, then the config file's selection.
func resolveSelection(cfg *config.Config) ([]string, error) {
	if len(runCombos) > 0 {
		return runCombos, nil
	}

	presets, err := aci.LoadPresets(cfg.Selection.PresetsPath)
	if err != nil {
		return nil, err
	}
	if runPreset != "" {
		return presets.Resolve(runPreset)
	}
	if len(cfg.Selection.Combinations) > 0 {
		return cfg.Selection.Combinations, nil
	}
	if cfg.Selection.Preset != "" {
		return presets.Resolve(cfg.Selection.Preset)
	}
	return nil, nil
}

func serveMetrics(logger *slog.Logger, address string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:         address,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	logger.Info("metrics server listening", slog.String("address", address))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("metrics server exited", slog.Any("error", err))
	}
}

func init() {
	runCmd.Flags().StringSliceVar(&runCombos, "combos", nil, "combination ids to run, in order (e.g. U1,U2,U5)")
	runCmd.Flags().StringVar(&runPreset, "preset", "", "selection preset name (design, strength, complete)")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "override the artifact output directory")
	rootCmd.AddCommand(runCmd)
}
