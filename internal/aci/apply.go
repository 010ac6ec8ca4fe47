package aci

import "github.com/framestack/envelope-engine/internal/models"

// Apply scales the base loads by the combination's factors. Only symbols
// with a strictly positive factor appear in the result; a symbol without a
// base magnitude contributes factor × 0 and stays present for diagnostics.
func Apply(combo Combination, baseLoads models.BaseLoads) models.AppliedLoads {
	applied := make(models.AppliedLoads, len(combo.Factors))
	for _, lc := range models.LoadCases {
		factor, ok := combo.Factors[lc]
		if !ok || factor <= 0 {
			continue
		}
		applied[lc] = factor * baseLoads[lc]
	}
	return applied
}
