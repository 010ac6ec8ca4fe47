package aci

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset names an ordered set of combination ids for one run.
type Preset struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Combinations []string `yaml:"combinations"`
}

// presetFile is the YAML root structure for user-defined presets.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Built-in selections mirroring the common design workflows.
var builtinPresets = []Preset{
	{
		Name:         "design",
		Description:  "Dead, primary gravity and primary seismic combinations",
		Combinations: []string{"U1", "U2", "U5"},
	},
	{
		Name:         "strength",
		Description:  "All strength-design combinations",
		Combinations: []string{"U1", "U2", "U3", "U4", "U5", "U6", "U7"},
	},
	{
		Name:         "complete",
		Description:  "Strength and service combinations",
		Combinations: []string{"U1", "U2", "U3", "U4", "U5", "U6", "U7", "S1", "S2", "S3", "S4"},
	},
}

// Presets resolves selection presets by name, optionally extended from a
// YAML file. User presets shadow built-ins with the same name.
type Presets struct {
	ordered []Preset
	byName  map[string]Preset
}

// LoadPresets returns the built-in presets merged with the optional preset
// file at path. A missing file is not an error.
func LoadPresets(path string) (*Presets, error) {
	p := &Presets{byName: make(map[string]Preset)}
	for _, preset := range builtinPresets {
		p.ordered = append(p.ordered, preset)
		p.byName[preset.Name] = preset
	}

	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	for _, preset := range file.Presets {
		if preset.Name == "" || len(preset.Combinations) == 0 {
			return nil, fmt.Errorf("preset %q must name at least one combination", preset.Name)
		}
		if _, exists := p.byName[preset.Name]; !exists {
			p.ordered = append(p.ordered, preset)
		}
		p.byName[preset.Name] = preset
	}
	return p, nil
}

// Resolve returns the ordered combination ids for a preset name.
func (p *Presets) Resolve(name string) ([]string, error) {
	preset, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return append([]string(nil), preset.Combinations...), nil
}

// All returns every known preset in definition order.
func (p *Presets) All() []Preset {
	out := make([]Preset, 0, len(p.ordered))
	for _, preset := range p.ordered {
		out = append(out, p.byName[preset.Name])
	}
	return out
}
