package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/framestack/envelope-engine/internal/models"
)

// Config captures the settings required to run the envelope engine.
type Config struct {
	Solver    SolverConfig       `yaml:"solver"`
	BaseLoads map[string]float64 `yaml:"baseLoads"`
	Selection SelectionConfig    `yaml:"selection"`
	Output    OutputConfig       `yaml:"output"`
	Archive   ArchiveConfig      `yaml:"archive"`
	Cache     CacheConfig        `yaml:"cache"`
	Logging   LoggingConfig      `yaml:"logging"`
	Metrics   MetricsConfig      `yaml:"metrics"`
}

// SolverConfig configures access to the structural-solver sidecar.
type SolverConfig struct {
	BaseURL       string        `yaml:"baseURL"`
	ElementsPath  string        `yaml:"elementsPath"`
	NodesPath     string        `yaml:"nodesPath"`
	EndpointsPath string        `yaml:"endpointsPath"`
	ForcesPath    string        `yaml:"forcesPath"`
	SolvePath     string        `yaml:"solvePath"`
	Timeout       time.Duration `yaml:"timeout"`
}

// SelectionConfig controls which combinations a run processes when no
// explicit flags are given.
type SelectionConfig struct {
	Preset       string   `yaml:"preset"`
	Combinations []string `yaml:"combinations"`
	PresetsPath  string   `yaml:"presetsPath"`
}

// OutputConfig controls artifact placement and formatting.
type OutputConfig struct {
	Dir            string `yaml:"dir"`
	EnvelopeFile   string `yaml:"envelopeFile"`
	ComparisonFile string `yaml:"comparisonFile"`
	StatisticsFile string `yaml:"statisticsFile"`
	Decimals       int    `yaml:"decimals"`
}

// ArchiveConfig controls run-report persistence.
type ArchiveConfig struct {
	Dir string `yaml:"dir"`
}

// CacheConfig controls caching of stable model geometry reads.
type CacheConfig struct {
	GeometryTTL time.Duration `yaml:"geometryTTL"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MetricsConfig controls the optional Prometheus listener during a run.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ENVELOPE_ENGINE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// ParsedBaseLoads converts the configured base loads into domain form,
// rejecting symbols outside the load-case catalog.
func (c *Config) ParsedBaseLoads() (models.BaseLoads, error) {
	loads := make(models.BaseLoads, len(c.BaseLoads))
	for symbol, magnitude := range c.BaseLoads {
		lc, err := models.ParseLoadCase(symbol)
		if err != nil {
			return nil, fmt.Errorf("baseLoads: %w", err)
		}
		loads[lc] = magnitude
	}
	return loads, nil
}

func defaultConfig() Config {
	return Config{
		Solver: SolverConfig{
			ElementsPath:  "/api/v1/model/elements",
			NodesPath:     "/api/v1/model/nodes",
			EndpointsPath: "/api/v1/model/endpoints",
			ForcesPath:    "/api/v1/model/forces",
			SolvePath:     "/api/v1/model/solve",
			Timeout:       30 * time.Second,
		},
		// Default intensities for a typical frame: slab dead/live in N/m²,
		// wind pressure in N/m², seismic as a base-shear coefficient.
		BaseLoads: map[string]float64{
			"D":  4000,
			"L":  2000,
			"Lr": 500,
			"S":  0,
			"W":  1000,
			"E":  0.2,
		},
		Selection: SelectionConfig{Preset: "design"},
		Output: OutputConfig{
			Dir:            "out",
			EnvelopeFile:   "maximum_demands_design.csv",
			ComparisonFile: "load_combinations_comparison.csv",
			StatisticsFile: "analysis_statistics.csv",
			Decimals:       4,
		},
		Cache:   CacheConfig{GeometryTTL: 10 * time.Minute},
		Logging: LoggingConfig{Level: "info", JSON: false},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENVELOPE_SOLVER_BASE_URL"); v != "" {
		cfg.Solver.BaseURL = v
	}
	if v := os.Getenv("ENVELOPE_SOLVER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Solver.Timeout = d
		}
	}
	if v := os.Getenv("ENVELOPE_SELECTION_PRESET"); v != "" {
		cfg.Selection.Preset = v
	}
	if v := os.Getenv("ENVELOPE_SELECTION_COMBINATIONS"); v != "" {
		cfg.Selection.Combinations = splitList(v)
	}
	if v := os.Getenv("ENVELOPE_PRESETS_PATH"); v != "" {
		cfg.Selection.PresetsPath = v
	}
	if v := os.Getenv("ENVELOPE_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("ENVELOPE_OUTPUT_DECIMALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Output.Decimals = n
		}
	}
	if v := os.Getenv("ENVELOPE_ARCHIVE_DIR"); v != "" {
		cfg.Archive.Dir = v
	}
	if v := os.Getenv("ENVELOPE_CACHE_GEOMETRY_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.GeometryTTL = d
		}
	}
	if v := os.Getenv("ENVELOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ENVELOPE_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("ENVELOPE_METRICS_ADDRESS"); v != "" {
		cfg.Metrics.Address = v
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
