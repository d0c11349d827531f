package metrics

import (
	"math"
	"testing"

	"github.com/DriesVerstraete/openconcept/internal/graph"
)

func TestBalanceConsistentOutputs(t *testing.T) {
	m := NewBalance()

	in := graph.Inputs{"power_in": {100, 50}}
	out := graph.Outputs{
		"power_out_A": {60, 20},
		"power_out_B": {38, 29},
		"heat_out":    {2, 1},
	}
	m.Observe(in, out)

	if m.Value() > 1e-12 {
		t.Errorf("residual = %e, want ~0", m.Value())
	}
}

func TestBalanceViolation(t *testing.T) {
	m := NewBalance()

	in := graph.Inputs{"power_in": {100}}
	out := graph.Outputs{
		"power_out_A": {60},
		"power_out_B": {30},
		"heat_out":    {2},
	}
	m.Observe(in, out)

	want := 8.0 / 100.0
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("residual = %f, want %f", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero residual after reset")
	}
}

func TestBalanceSkipsMismatchedShapes(t *testing.T) {
	m := NewBalance()
	m.Observe(graph.Inputs{"power_in": {1, 2}}, graph.Outputs{"power_out_A": {1}})
	if m.Value() != 0 {
		t.Error("mismatched shapes should be ignored")
	}
}

func TestSaturationFraction(t *testing.T) {
	m := NewSaturation()

	in := graph.Inputs{
		"power_in":           {20, 100, 25, 80},
		"power_split_amount": {30, 30, 30, 30},
	}
	m.Observe(in, graph.Outputs{})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("saturation = %f, want 0.5", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSaturationIgnoresProportionalInputs(t *testing.T) {
	m := NewSaturation()
	m.Observe(graph.Inputs{"power_in": {10}, "power_split_fraction": {0.5}}, graph.Outputs{})
	if m.Value() != 0 {
		t.Error("proportional inputs should not register saturation")
	}
}
