package models

import (
	"fmt"
	"strings"
)

// LoadCase identifies a base load case used by the combination tables.
type LoadCase string

const (
	LoadDead     LoadCase = "D"
	LoadLive     LoadCase = "L"
	LoadRoofLive LoadCase = "Lr"
	LoadSnow     LoadCase = "S"
	LoadWind     LoadCase = "W"
	LoadSeismic  LoadCase = "E"
)

// LoadCases lists every load case in canonical order.
var LoadCases = []LoadCase{LoadDead, LoadLive, LoadRoofLive, LoadSnow, LoadWind, LoadSeismic}

// ParseLoadCase maps a symbol string onto a LoadCase.
func ParseLoadCase(value string) (LoadCase, error) {
	for _, lc := range LoadCases {
		if strings.EqualFold(string(lc), value) {
			return lc, nil
		}
	}
	return "", fmt.Errorf("unknown load case %q", value)
}

// BaseLoads maps load cases onto unfactored magnitudes.
type BaseLoads map[LoadCase]float64

// AppliedLoads holds the factored magnitudes actually sent to the solver.
// Only load cases with a strictly positive combination factor are present,
// so consumers can tell "not loaded" apart from "loaded with zero effect".
type AppliedLoads map[LoadCase]float64
