// Package aci holds the ACI 318 load-combination tables and their
// application to base loads. The factor values are normative constants from
// the design code: they are data, reproduced exactly, never re-derived.
package aci

import (
	"errors"
	"fmt"

	"github.com/framestack/envelope-engine/internal/models"
)

// Classification separates strength-design from service-level combinations.
type Classification string

const (
	Strength Classification = "strength"
	Service  Classification = "service"
)

// Combination is one named load combination with its factor table. Absent
// symbols imply a factor of zero.
type Combination struct {
	ID             string
	Name           string
	Description    string
	Classification Classification
	Factors        map[models.LoadCase]float64
}

// ErrUnknownCombination signals a lookup for an id absent from the catalog.
var ErrUnknownCombination = errors.New("unknown load combination")

// ACI 318 strength-design combinations U1..U7.
var strengthCombinations = []Combination{
	{
		ID:             "U1",
		Name:           "1.4D",
		Description:    "Amplified dead load only",
		Classification: Strength,
		Factors:        map[models.LoadCase]float64{models.LoadDead: 1.4},
	},
	{
		ID:             "U2",
		Name:           "1.2D + 1.6L + 0.5(Lr or S)",
		Description:    "Primary gravity loads",
		Classification: Strength,
		Factors: map[models.LoadCase]float64{
			models.LoadDead: 1.2, models.LoadLive: 1.6,
			models.LoadRoofLive: 0.5, models.LoadSnow: 0.5,
		},
	},
	{
		ID:             "U3",
		Name:           "1.2D + 1.6(Lr or S) + (L or 0.5W)",
		Description:    "Primary roof loads",
		Classification: Strength,
		Factors: map[models.LoadCase]float64{
			models.LoadDead: 1.2, models.LoadLive: 1.0,
			models.LoadRoofLive: 1.6, models.LoadSnow: 1.6, models.LoadWind: 0.5,
		},
	},
	{
		ID:             "U4",
		Name:           "1.2D + 1.0W + L + 0.5(Lr or S)",
		Description:    "Primary wind load",
		Classification: Strength,
		Factors: map[models.LoadCase]float64{
			models.LoadDead: 1.2, models.LoadLive: 1.0,
			models.LoadRoofLive: 0.5, models.LoadSnow: 0.5, models.LoadWind: 1.0,
		},
	},
	{
		ID:             "U5",
		Name:           "1.2D + 1.0E + L + 0.2S",
		Description:    "Primary seismic load",
		Classification: Strength,
		Factors: map[models.LoadCase]float64{
			models.LoadDead: 1.2, models.LoadLive: 1.0,
			models.LoadSnow: 0.2, models.LoadSeismic: 1.0,
		},
	},
	{
		ID:             "U6",
		Name:           "0.9D + 1.0W",
		Description:    "Wind with minimum dead load",
		Classification: Strength,
		Factors:        map[models.LoadCase]float64{models.LoadDead: 0.9, models.LoadWind: 1.0},
	},
	{
		ID:             "U7",
		Name:           "0.9D + 1.0E",
		Description:    "Seismic with minimum dead load",
		Classification: Strength,
		Factors:        map[models.LoadCase]float64{models.LoadDead: 0.9, models.LoadSeismic: 1.0},
	},
}

// ACI 318 service-level combinations S1..S4.
var serviceCombinations = []Combination{
	{
		ID:             "S1",
		Name:           "1.0D",
		Description:    "Dead load only",
		Classification: Service,
		Factors:        map[models.LoadCase]float64{models.LoadDead: 1.0},
	},
	{
		ID:             "S2",
		Name:           "1.0D + 1.0L",
		Description:    "Gravity service loads",
		Classification: Service,
		Factors:        map[models.LoadCase]float64{models.LoadDead: 1.0, models.LoadLive: 1.0},
	},
	{
		ID:             "S3",
		Name:           "1.0D + 0.7W",
		Description:    "Service loads with wind",
		Classification: Service,
		Factors:        map[models.LoadCase]float64{models.LoadDead: 1.0, models.LoadWind: 0.7},
	},
	{
		ID:             "S4",
		Name:           "1.0D + 0.7E",
		Description:    "Service loads with seismic",
		Classification: Service,
		Factors:        map[models.LoadCase]float64{models.LoadDead: 1.0, models.LoadSeismic: 0.7},
	},
}

// Catalog exposes the combination tables by id and classification.
type Catalog struct {
	ordered []Combination
	byID    map[string]Combination
}

// NewCatalog builds the process-wide catalog. It validates the tables and
// fails fast on a malformed entry, before any combination can run.
func NewCatalog() (*Catalog, error) {
	ordered := make([]Combination, 0, len(strengthCombinations)+len(serviceCombinations))
	ordered = append(ordered, strengthCombinations...)
	ordered = append(ordered, serviceCombinations...)

	byID := make(map[string]Combination, len(ordered))
	for _, combo := range ordered {
		if combo.ID == "" {
			return nil, fmt.Errorf("combination with empty id in catalog")
		}
		if _, dup := byID[combo.ID]; dup {
			return nil, fmt.Errorf("duplicate combination id %s", combo.ID)
		}
		total := 0.0
		for lc, factor := range combo.Factors {
			if factor < 0 {
				return nil, fmt.Errorf("combination %s: negative factor for %s", combo.ID, lc)
			}
			total += factor
		}
		if total <= 0 {
			return nil, fmt.Errorf("combination %s applies no load case", combo.ID)
		}
		byID[combo.ID] = combo
	}

	return &Catalog{ordered: ordered, byID: byID}, nil
}

// Lookup returns the combination for id or ErrUnknownCombination.
func (c *Catalog) Lookup(id string) (Combination, error) {
	combo, ok := c.byID[id]
	if !ok {
		return Combination{}, fmt.Errorf("%w: %s", ErrUnknownCombination, id)
	}
	return combo, nil
}

// List returns the combinations of one classification in catalog order.
func (c *Catalog) List(class Classification) []Combination {
	out := make([]Combination, 0, len(c.ordered))
	for _, combo := range c.ordered {
		if combo.Classification == class {
			out = append(out, combo)
		}
	}
	return out
}

// All returns every combination, strength first, in catalog order.
func (c *Catalog) All() []Combination {
	return append([]Combination(nil), c.ordered...)
}
