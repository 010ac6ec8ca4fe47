package aci

import (
	"testing"

	"github.com/framestack/envelope-engine/internal/models"
)

func TestApplyScalesOnlyFactoredCases(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u1, err := catalog.Lookup("U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	applied := Apply(u1, models.BaseLoads{models.LoadDead: 100})
	if len(applied) != 1 {
		t.Fatalf("expected only the dead load, got %v", applied)
	}
	if got := applied[models.LoadDead]; got != 140 {
		t.Fatalf("expected 1.4 × 100 = 140, got %v", got)
	}
}

func TestApplyMissingBaseMagnitude(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u6, err := catalog.Lookup("U6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// U6 = 0.9D + 1.0W with no wind magnitude supplied. The wind entry
	// stays present at zero so the solver sees the full factor set.
	applied := Apply(u6, models.BaseLoads{models.LoadDead: 50})
	if got := applied[models.LoadDead]; got != 45 {
		t.Fatalf("expected 0.9 × 50 = 45, got %v", got)
	}
	wind, ok := applied[models.LoadWind]
	if !ok {
		t.Fatal("expected wind entry to be present")
	}
	if wind != 0 {
		t.Fatalf("expected zero wind magnitude, got %v", wind)
	}
}

func TestApplyExcludesZeroFactors(t *testing.T) {
	combo := Combination{
		ID:   "X1",
		Name: "test",
		Factors: map[models.LoadCase]float64{
			models.LoadDead: 1.0,
			models.LoadLive: 0,
		},
	}
	applied := Apply(combo, models.BaseLoads{
		models.LoadDead: 10,
		models.LoadLive: 20,
	})
	if _, ok := applied[models.LoadLive]; ok {
		t.Fatalf("zero-factor live load must be excluded, got %v", applied)
	}
	if got := applied[models.LoadDead]; got != 10 {
		t.Fatalf("expected dead load 10, got %v", got)
	}
}
