package proforma

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadConfig decodes a YAML parameter set. Keys that are absent keep their
// stock defaults, so a file only needs to list what it overrides.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	// maps and lists replace rather than merge, so start them empty
	cfg.Forms = nil
	cfg.ParkingRates = nil
	cfg.ParkingSqftD = nil
	cfg.ParkingCostD = nil
	cfg.Costs = nil
	cfg.ConstructionMonths = nil
	cfg.FormsToTest = nil

	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read parameter set: %w", err)
	}

	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return Config{}, &ConfigurationError{Field: "yaml", Reason: err.Error()}
	}
	defaults := DefaultConfig()

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, &ConfigurationError{Field: "yaml", Reason: err.Error()}
	}

	// restore defaults for maps the document never mentions
	if _, ok := probe["forms"]; !ok {
		cfg.Forms = defaults.Forms
	}
	if _, ok := probe["parking_rates"]; !ok {
		cfg.ParkingRates = defaults.ParkingRates
	}
	if _, ok := probe["parking_sqft_d"]; !ok {
		cfg.ParkingSqftD = defaults.ParkingSqftD
	}
	if _, ok := probe["parking_cost_d"]; !ok {
		cfg.ParkingCostD = defaults.ParkingCostD
	}
	if _, ok := probe["costs"]; !ok {
		cfg.Costs = defaults.Costs
	}
	if _, ok := probe["construction_months"]; !ok {
		cfg.ConstructionMonths = defaults.ConstructionMonths
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML parameter set from disk
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open parameter set: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// NewFromYAML builds a ProForma from a YAML parameter set
func NewFromYAML(r io.Reader, logger *zap.Logger) (*ProForma, error) {
	cfg, err := LoadConfig(r)
	if err != nil {
		return nil, err
	}
	return New(cfg, logger)
}

// Dump writes the engine's parameter set as YAML. Loading the output
// yields an equivalent engine.
func (p *ProForma) Dump(w io.Writer) error {
	return DumpConfig(w, p.Config())
}

// DumpConfig writes cfg as YAML
func DumpConfig(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode parameter set: %w", err)
	}
	return enc.Close()
}
