package models

import "time"

// CombinationStatus tracks a combination through the per-run state machine.
type CombinationStatus string

const (
	StatusPending     CombinationStatus = "pending"
	StatusApplying    CombinationStatus = "applying"
	StatusSolving     CombinationStatus = "solving"
	StatusExtracted   CombinationStatus = "extracted"
	StatusSolveFailed CombinationStatus = "solve-failed"
	StatusInvalid     CombinationStatus = "invalid"
)

// CombinationOutcome records how a single combination fared.
type CombinationOutcome struct {
	CombinationID     string            `json:"combination_id"`
	Status            CombinationStatus `json:"status"`
	Reason            string            `json:"reason,omitempty"`
	ElementsExtracted int               `json:"elements_extracted"`
	ElementsSkipped   int               `json:"elements_skipped"`
	SolveDuration     time.Duration     `json:"solve_duration_ns"`
}

// ElementForces is one combination's raw extraction for a single element.
type ElementForces struct {
	Geometry ElementGeometry
	Forces   ForceVector12
}

// RunReport aggregates the per-combination outcomes of an envelope run.
type RunReport struct {
	RunID      string               `json:"run_id"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt time.Time            `json:"finished_at"`
	Selection  []string             `json:"selection"`
	Outcomes   []CombinationOutcome `json:"outcomes"`
	Elements   int                  `json:"elements"`
	Artifacts  []string             `json:"artifacts,omitempty"`
}

// Succeeded counts combinations that produced envelope data.
func (r RunReport) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusExtracted {
			n++
		}
	}
	return n
}
