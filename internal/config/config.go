package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DriesVerstraete/openconcept/internal/components"
	"github.com/DriesVerstraete/openconcept/internal/graph"
)

const (
	DefaultEfficiency  = 1.0
	DefaultNodes       = 1
	DefaultPowerIn     = 100e3
	DefaultFraction    = 0.5
	DefaultSweepSteps  = 50
	DefaultSweepFactor = 2.0
)

type Config struct {
	Rule          string       `yaml:"rule"`
	Efficiency    float64      `yaml:"efficiency"`
	WeightPerWatt float64      `yaml:"weight_per_watt"`
	WeightBase    float64      `yaml:"weight_base"`
	CostPerWatt   float64      `yaml:"cost_per_watt"`
	CostBase      float64      `yaml:"cost_base"`
	Nodes         int          `yaml:"nodes"`
	Inputs        InputsConfig `yaml:"inputs"`
	Sweep         SweepConfig  `yaml:"sweep"`
}

// InputsConfig sets one uniform operating point: each value is broadcast
// across all nodes. PowerRating of zero means the unbounded default.
type InputsConfig struct {
	PowerIn       float64 `yaml:"power_in"`
	PowerRating   float64 `yaml:"power_rating"`
	SplitFraction float64 `yaml:"split_fraction"`
	SplitAmount   float64 `yaml:"split_amount"`
}

type SweepConfig struct {
	Input string  `yaml:"input"`
	Lo    float64 `yaml:"lo"`
	Hi    float64 `yaml:"hi"`
	Steps int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Rule:       "proportional",
		Efficiency: DefaultEfficiency,
		Nodes:      DefaultNodes,
		Inputs: InputsConfig{
			PowerIn:       DefaultPowerIn,
			SplitFraction: DefaultFraction,
		},
		Sweep: SweepConfig{
			Input: "power_in",
			Lo:    0,
			Hi:    DefaultPowerIn * DefaultSweepFactor,
			Steps: DefaultSweepSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SplitterConfig translates the file form into construction options.
// The rule string is the only field that can fail.
func (c *Config) SplitterConfig() (components.SplitterConfig, error) {
	rule, err := components.ParseRule(c.Rule)
	if err != nil {
		return components.SplitterConfig{}, err
	}
	return components.SplitterConfig{
		Rule:          rule,
		Efficiency:    c.Efficiency,
		WeightPerWatt: c.WeightPerWatt,
		WeightBase:    c.WeightBase,
		CostPerWatt:   c.CostPerWatt,
		CostBase:      c.CostBase,
		Nodes:         c.Nodes,
	}, nil
}

// BuildInputs materializes the configured operating point as component
// inputs, broadcasting each value across all nodes.
func (c *Config) BuildInputs(rule components.Rule) graph.Inputs {
	nn := c.Nodes
	if nn < 1 {
		nn = 1
	}

	in := graph.Inputs{
		"power_in": graph.Constant(nn, c.Inputs.PowerIn),
	}
	if c.Inputs.PowerRating > 0 {
		in["power_rating"] = graph.Vector{c.Inputs.PowerRating}
	}
	if rule == components.RuleFixedAmount {
		in["power_split_amount"] = graph.Constant(nn, c.Inputs.SplitAmount)
	} else {
		in["power_split_fraction"] = graph.Constant(nn, c.Inputs.SplitFraction)
	}
	return in
}
