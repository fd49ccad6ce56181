// Package preset ships the real-world engine reference table shown next to
// the calculator: named engines with typical reservoir temperatures and the
// efficiency they actually achieve, for comparison against the Carnot limit.
package preset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thermolab/carnot/pkg/carnot"
)

// Preset is one named engine with its typical operating temperatures.
type Preset struct {
	// Name is the human-readable engine identifier.
	Name string `yaml:"name" json:"name"`

	// HotC / ColdC are the reservoir temperatures in degrees Celsius, the
	// unit the reference literature quotes them in.
	HotC  float64 `yaml:"hot_c" json:"hot_c"`
	ColdC float64 `yaml:"cold_c" json:"cold_c"`

	// ActualEfficiency is the typical achieved efficiency in [0,1].
	ActualEfficiency float64 `yaml:"actual_efficiency" json:"actual_efficiency"`
}

// Comparison is a preset scored against its theoretical limit.
type Comparison struct {
	Preset
	CarnotEfficiency float64 `json:"carnot_efficiency"`

	// Gap is CarnotEfficiency - ActualEfficiency: the share lost to
	// friction, heat leaks and other irreversibilities.
	Gap float64 `json:"gap"`
}

// Defaults returns the built-in engine table.
func Defaults() []Preset {
	return []Preset{
		{Name: "Car Engine (Gasoline)", HotC: 600, ColdC: 60, ActualEfficiency: 0.25},
		{Name: "Power Plant (Steam)", HotC: 700, ColdC: 40, ActualEfficiency: 0.35},
		{Name: "Diesel Engine", HotC: 650, ColdC: 80, ActualEfficiency: 0.30},
	}
}

// Load reads a preset table from a YAML file. The file replaces the
// built-ins entirely; an empty path yields Defaults.
func Load(path string) ([]Preset, error) {
	if path == "" {
		return Defaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}

	var doc struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("preset: parse %s: %w", path, err)
	}
	if len(doc.Presets) == 0 {
		return nil, fmt.Errorf("preset: %s contains no presets", path)
	}
	return doc.Presets, nil
}

// Compare scores one preset against the Carnot limit at its temperatures.
// Presets with unphysical temperatures return the core validation error.
func Compare(p Preset) (Comparison, error) {
	eff, err := carnot.Efficiency(
		carnot.CelsiusToKelvin(p.HotC),
		carnot.CelsiusToKelvin(p.ColdC),
	)
	if err != nil {
		return Comparison{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return Comparison{
		Preset:           p,
		CarnotEfficiency: eff,
		Gap:              eff - p.ActualEfficiency,
	}, nil
}

// CompareAll scores every preset, silently skipping invalid entries the way
// the reference table in the UI does.
func CompareAll(presets []Preset) []Comparison {
	out := make([]Comparison, 0, len(presets))
	for _, p := range presets {
		c, err := Compare(p)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
