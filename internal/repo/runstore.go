package repo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framestack/envelope-engine/internal/models"
)

// RunStore archives run reports on disk so past envelope runs can be listed
// and inspected after the process exits.
type RunStore struct {
	dir string
}

// NewRunStore creates a store rooted at dir. An empty dir disables
// archiving; every method becomes a no-op then.
func NewRunStore(dir string) *RunStore {
	return &RunStore{dir: dir}
}

// Enabled reports whether the store persists anything.
func (s *RunStore) Enabled() bool {
	return s != nil && s.dir != ""
}

// SaveReport persists one run report as JSON, keyed by the run id.
func (s *RunStore) SaveReport(report models.RunReport) error {
	if !s.Enabled() {
		return nil
	}
	if report.RunID == "" {
		return fmt.Errorf("run report without run id")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}
	target := s.reportPath(report.RunID)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}

// LoadReport reads one archived run report by id.
func (s *RunStore) LoadReport(runID string) (models.RunReport, error) {
	var report models.RunReport
	if !s.Enabled() {
		return report, fmt.Errorf("run archive not configured")
	}
	data, err := os.ReadFile(s.reportPath(runID))
	if err != nil {
		return report, fmt.Errorf("read run report: %w", err)
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("parse run report: %w", err)
	}
	return report, nil
}

// ListRuns returns archived run ids, newest first by lexical order (run ids
// are timestamp-prefixed).
func (s *RunStore) ListRuns() ([]string, error) {
	if !s.Enabled() {
		return nil, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || !strings.HasPrefix(name, "run-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, "run-"), ".json"))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

func (s *RunStore) reportPath(runID string) string {
	return filepath.Join(s.dir, "run-"+runID+".json")
}
