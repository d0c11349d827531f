package components

import (
	"fmt"

	"github.com/DriesVerstraete/openconcept/internal/graph"
)

// DefaultPowerRating is the effectively-unbounded rating assumed when the
// host leaves power_rating unconnected.
const DefaultPowerRating = 9.9999999e7

// SplitterConfig holds the construction-time options of a PowerSplit.
// Efficiency is dimensionless in (0, 1]; weight coefficients are kg and
// kg/W, cost coefficients USD and USD/W. Only the rule is validated:
// physical plausibility of the numeric fields is the host's concern.
type SplitterConfig struct {
	Rule          Rule
	Efficiency    float64
	WeightPerWatt float64
	WeightBase    float64
	CostPerWatt   float64
	CostBase      float64
	Nodes         int
}

// DefaultSplitterConfig mirrors the permissive defaults of the component:
// lossless, weightless, free, single operating point.
func DefaultSplitterConfig() SplitterConfig {
	return SplitterConfig{
		Rule:       RuleProportional,
		Efficiency: 1.0,
		Nodes:      1,
	}
}

// PowerSplit apportions incoming power between two downstream sinks,
// accounting for conversion loss as waste heat and reporting cost, weight
// and a sizing margin. It is a pure component: Evaluate and Linearize carry
// no state between calls and may run concurrently on one instance.
type PowerSplit struct {
	cfg  SplitterConfig
	ctrl string
	spec graph.ComponentSpec

	// constant partials, fixed at construction
	dHeatDIn graph.Vector
}

// NewPowerSplit builds a splitter from cfg. A node count below one is
// raised to one. The rule must be a recognized value; with a Rule obtained
// from ParseRule this cannot fail.
func NewPowerSplit(cfg SplitterConfig) (*PowerSplit, error) {
	if cfg.Rule != RuleProportional && cfg.Rule != RuleFixedAmount {
		return nil, fmt.Errorf("%w: power split rule %v", graph.ErrConfiguration, cfg.Rule)
	}
	if cfg.Nodes < 1 {
		cfg.Nodes = 1
	}

	s := &PowerSplit{
		cfg:      cfg,
		ctrl:     cfg.Rule.ControlInput(),
		dHeatDIn: graph.Constant(cfg.Nodes, 1-cfg.Efficiency),
	}
	s.spec = s.buildSpec()
	return s, nil
}

func (s *PowerSplit) buildSpec() graph.ComponentSpec {
	nn := s.cfg.Nodes
	ctrlUnits := ""
	if s.cfg.Rule == RuleFixedAmount {
		ctrlUnits = "W"
	}
	return graph.ComponentSpec{
		Name:  "power_split",
		Nodes: nn,
		Inputs: []graph.VarSpec{
			{Name: "power_in", Size: nn, Units: "W"},
			{Name: "power_rating", Size: 1, Units: "W", Scalar: true,
				Default: graph.Vector{DefaultPowerRating}},
			{Name: s.ctrl, Size: nn, Units: ctrlUnits},
		},
		Outputs: []graph.VarSpec{
			{Name: "power_out_A", Size: nn, Units: "W"},
			{Name: "power_out_B", Size: nn, Units: "W"},
			{Name: "heat_out", Size: nn, Units: "W"},
			{Name: "component_cost", Size: 1, Units: "USD", Scalar: true},
			{Name: "component_weight", Size: 1, Units: "kg", Scalar: true},
			{Name: "component_sizing_margin", Size: nn},
		},
		Partials: []graph.PartialSpec{
			{Of: "power_out_A", WRT: "power_in", Kind: graph.BlockDiagonal},
			{Of: "power_out_A", WRT: s.ctrl, Kind: graph.BlockDiagonal},
			{Of: "power_out_B", WRT: "power_in", Kind: graph.BlockDiagonal},
			{Of: "power_out_B", WRT: s.ctrl, Kind: graph.BlockDiagonal},
			{Of: "heat_out", WRT: "power_in", Kind: graph.BlockDiagonal, Constant: true},
			{Of: "component_cost", WRT: "power_rating", Kind: graph.BlockScalar, Constant: true},
			{Of: "component_weight", WRT: "power_rating", Kind: graph.BlockScalar, Constant: true},
			{Of: "component_sizing_margin", WRT: "power_in", Kind: graph.BlockDiagonal},
			{Of: "component_sizing_margin", WRT: "power_rating", Kind: graph.BlockColumn},
		},
	}
}

// Spec reports the splitter's ports and Jacobian sparsity.
func (s *PowerSplit) Spec() graph.ComponentSpec { return s.spec }

// Rule reports the control law fixed at construction.
func (s *PowerSplit) Rule() Rule { return s.cfg.Rule }

// Evaluate computes the splitter outputs at one batched operating point.
// Zero or negative ratings and negative power are not guarded: they
// propagate into the outputs for the host to catch.
func (s *PowerSplit) Evaluate(in graph.Inputs) (graph.Outputs, error) {
	pin, rating, ctrl, err := s.gather(in)
	if err != nil {
		return nil, err
	}

	nn := s.cfg.Nodes
	eta := s.cfg.Efficiency
	outA := make(graph.Vector, nn)
	outB := make(graph.Vector, nn)
	heat := make(graph.Vector, nn)
	margin := make(graph.Vector, nn)

	for i := 0; i < nn; i++ {
		switch s.cfg.Rule {
		case RuleProportional:
			outA[i] = pin[i] * ctrl[i] * eta
			outB[i] = pin[i] * (1 - ctrl[i]) * eta
		case RuleFixedAmount:
			if pin[i] < ctrl[i] {
				// starved: everything available goes to A
				outA[i] = pin[i] * eta
				outB[i] = 0
			} else {
				outA[i] = ctrl[i] * eta
				outB[i] = (pin[i] - ctrl[i]) * eta
			}
		}
		heat[i] = pin[i] * (1 - eta)
		margin[i] = pin[i] / ratingAt(rating, i)
	}

	r0 := rating[0]
	return graph.Outputs{
		"power_out_A":             outA,
		"power_out_B":             outB,
		"heat_out":                heat,
		"component_cost":          graph.Vector{r0*s.cfg.CostPerWatt + s.cfg.CostBase},
		"component_weight":        graph.Vector{r0*s.cfg.WeightPerWatt + s.cfg.WeightBase},
		"component_sizing_margin": margin,
	}, nil
}

// Linearize computes the analytic partials at the same operating point
// Evaluate would see. Nothing is cached from prior calls; the Jacobian is
// derived solely from the given inputs.
func (s *PowerSplit) Linearize(in graph.Inputs) (graph.Jacobian, error) {
	pin, rating, ctrl, err := s.gather(in)
	if err != nil {
		return nil, err
	}

	nn := s.cfg.Nodes
	eta := s.cfg.Efficiency
	dAdIn := make(graph.Vector, nn)
	dAdCtrl := make(graph.Vector, nn)
	dBdIn := make(graph.Vector, nn)
	dBdCtrl := make(graph.Vector, nn)
	dMdIn := make(graph.Vector, nn)
	dMdRating := make(graph.Vector, nn)

	for i := 0; i < nn; i++ {
		switch s.cfg.Rule {
		case RuleProportional:
			dAdIn[i] = ctrl[i] * eta
			dAdCtrl[i] = pin[i] * eta
			dBdIn[i] = (1 - ctrl[i]) * eta
			dBdCtrl[i] = -pin[i] * eta
		case RuleFixedAmount:
			// piecewise constant on each side of pin == amount; the kink
			// itself belongs to the sufficient-supply branch
			if pin[i] < ctrl[i] {
				dAdIn[i] = eta
			} else {
				dAdCtrl[i] = eta
				dBdIn[i] = eta
				dBdCtrl[i] = -eta
			}
		}
		r := ratingAt(rating, i)
		dMdIn[i] = 1 / r
		dMdRating[i] = -pin[i] / (r * r)
	}

	jac := make(graph.Jacobian, len(s.spec.Partials))
	jac.Diag("power_out_A", "power_in", dAdIn)
	jac.Diag("power_out_A", s.ctrl, dAdCtrl)
	jac.Diag("power_out_B", "power_in", dBdIn)
	jac.Diag("power_out_B", s.ctrl, dBdCtrl)
	jac.Diag("heat_out", "power_in", s.dHeatDIn)
	jac.Scalar("component_cost", "power_rating", s.cfg.CostPerWatt)
	jac.Scalar("component_weight", "power_rating", s.cfg.WeightPerWatt)
	jac.Diag("component_sizing_margin", "power_in", dMdIn)
	if len(rating) == 1 {
		jac.Column("component_sizing_margin", "power_rating", dMdRating)
	} else {
		jac.Diag("component_sizing_margin", "power_rating", dMdRating)
	}
	return jac, nil
}

// gather pulls and shape-checks the three inputs the rule requires.
// power_rating may be scalar or per-node and falls back to its declared
// default when unconnected.
func (s *PowerSplit) gather(in graph.Inputs) (pin, rating, ctrl graph.Vector, err error) {
	nn := s.cfg.Nodes

	pin, ok := in["power_in"]
	if !ok || len(pin) != nn {
		return nil, nil, nil, fmt.Errorf("%w: power_in (want length %d, got %d)", graph.ErrMissingInput, nn, len(pin))
	}

	ctrl, ok = in[s.ctrl]
	if !ok || len(ctrl) != nn {
		return nil, nil, nil, fmt.Errorf("%w: %s (want length %d, got %d)", graph.ErrMissingInput, s.ctrl, nn, len(ctrl))
	}

	rating, ok = in["power_rating"]
	if !ok {
		rating = graph.Vector{DefaultPowerRating}
	} else if len(rating) != 1 && len(rating) != nn {
		return nil, nil, nil, fmt.Errorf("%w: power_rating (want length 1 or %d, got %d)", graph.ErrMissingInput, nn, len(rating))
	}
	return pin, rating, ctrl, nil
}

func ratingAt(rating graph.Vector, i int) float64 {
	if len(rating) == 1 {
		return rating[0]
	}
	return rating[i]
}
