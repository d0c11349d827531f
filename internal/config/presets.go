package config

var Presets = map[string]map[string]*Config{
	"proportional": {
		"lossless": {
			Rule: "proportional", Efficiency: 1.0, Nodes: 1,
			Inputs: InputsConfig{PowerIn: 100e3, SplitFraction: 0.5},
			Sweep:  SweepConfig{Input: "power_in", Lo: 0, Hi: 200e3, Steps: 50},
		},
		"turboelectric": {
			Rule: "proportional", Efficiency: 0.98, Nodes: 1,
			WeightPerWatt: 0.2e-3, WeightBase: 20, CostPerWatt: 0.05, CostBase: 10000,
			Inputs: InputsConfig{PowerIn: 100e3, PowerRating: 150e3, SplitFraction: 0.7},
			Sweep:  SweepConfig{Input: "power_split_fraction", Lo: 0, Hi: 1, Steps: 50},
		},
	},
	"fixed_amount": {
		"battery_assist": {
			Rule: "fixed_amount", Efficiency: 0.95, Nodes: 1,
			Inputs: InputsConfig{PowerIn: 100e3, SplitAmount: 30e3},
			Sweep:  SweepConfig{Input: "power_in", Lo: 0, Hi: 200e3, Steps: 50},
		},
		"starved": {
			Rule: "fixed_amount", Efficiency: 1.0, Nodes: 1,
			Inputs: InputsConfig{PowerIn: 50e3, SplitAmount: 80e3},
			Sweep:  SweepConfig{Input: "power_in", Lo: 0, Hi: 160e3, Steps: 50},
		},
	},
}

func GetPreset(rule, preset string) *Config {
	rulePresets, ok := Presets[rule]
	if !ok {
		return nil
	}
	cfg, ok := rulePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(rule string) []string {
	rulePresets, ok := Presets[rule]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(rulePresets))
	for name := range rulePresets {
		names = append(names, name)
	}
	return names
}
