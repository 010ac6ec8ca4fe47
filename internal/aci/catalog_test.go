package aci

import (
	"errors"
	"testing"

	"github.com/framestack/envelope-engine/internal/models"
)

func TestCatalogEveryCombinationAppliesALoadCase(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, combo := range catalog.All() {
		total := 0.0
		for _, factor := range combo.Factors {
			total += factor
		}
		if total <= 0 {
			t.Fatalf("combination %s applies no load case", combo.ID)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	combo, err := catalog.Lookup("U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combo.Name != "1.4D" {
		t.Fatalf("unexpected U1 name: %s", combo.Name)
	}
	if got := combo.Factors[models.LoadDead]; got != 1.4 {
		t.Fatalf("expected U1 dead factor 1.4, got %v", got)
	}
	if len(combo.Factors) != 1 {
		t.Fatalf("U1 must carry only the dead-load factor, got %v", combo.Factors)
	}

	if _, err := catalog.Lookup("U99"); !errors.Is(err, ErrUnknownCombination) {
		t.Fatalf("expected ErrUnknownCombination, got %v", err)
	}
}

func TestCatalogListOrdering(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	strength := catalog.List(Strength)
	if len(strength) != 7 {
		t.Fatalf("expected 7 strength combinations, got %d", len(strength))
	}
	for i, combo := range strength {
		want := "U" + string(rune('1'+i))
		if combo.ID != want {
			t.Fatalf("strength position %d: expected %s, got %s", i, want, combo.ID)
		}
	}

	service := catalog.List(Service)
	if len(service) != 4 {
		t.Fatalf("expected 4 service combinations, got %d", len(service))
	}
	if service[0].ID != "S1" || service[3].ID != "S4" {
		t.Fatalf("unexpected service ordering: %v", service)
	}
}

func TestCatalogSeismicFactors(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u5, err := catalog.Lookup("U5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[models.LoadCase]float64{
		models.LoadDead:    1.2,
		models.LoadLive:    1.0,
		models.LoadSnow:    0.2,
		models.LoadSeismic: 1.0,
	}
	if len(u5.Factors) != len(want) {
		t.Fatalf("unexpected U5 factor count: %v", u5.Factors)
	}
	for lc, factor := range want {
		if got := u5.Factors[lc]; got != factor {
			t.Fatalf("U5 factor for %s: expected %v, got %v", lc, factor, got)
		}
	}
}
