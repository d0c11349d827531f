package graph

import (
	"math"
	"testing"
)

// square is a toy component: y_i = x_i^2, total = gain * sum(x_i^2).
type square struct {
	skewDiag  float64
	omitPairs bool
}

func (s *square) Spec() ComponentSpec {
	return ComponentSpec{
		Name:  "square",
		Nodes: 3,
		Inputs: []VarSpec{
			{Name: "x", Size: 3},
			{Name: "gain", Size: 1, Scalar: true},
		},
		Outputs: []VarSpec{
			{Name: "y", Size: 3},
			{Name: "total", Size: 1, Scalar: true},
		},
		Partials: []PartialSpec{
			{Of: "y", WRT: "x", Kind: BlockDiagonal},
			{Of: "total", WRT: "gain", Kind: BlockScalar},
		},
	}
}

func (s *square) Evaluate(in Inputs) (Outputs, error) {
	x := in["x"]
	gain := in["gain"][0]
	y := make(Vector, len(x))
	sum := 0.0
	for i, v := range x {
		y[i] = v * v
		sum += v * v
	}
	return Outputs{"y": y, "total": Vector{gain * sum}}, nil
}

func (s *square) Linearize(in Inputs) (Jacobian, error) {
	x := in["x"]
	dy := make(Vector, len(x))
	sum := 0.0
	for i, v := range x {
		dy[i] = 2*v + s.skewDiag
		sum += v * v
	}
	jac := make(Jacobian)
	jac.Diag("y", "x", dy)
	if !s.omitPairs {
		jac.Scalar("total", "gain", sum)
	}
	return jac, nil
}

func TestCheckPartialsAgreement(t *testing.T) {
	c := &square{}
	in := Inputs{"x": {1, -2, 3}, "gain": {2.5}}

	result, err := CheckPartials(c, in, 1e-5)
	if err != nil {
		t.Fatalf("CheckPartials: %v", err)
	}
	if result.WorstError > 1e-6 {
		t.Errorf("worst error %e at %s, want near zero", result.WorstError, result.WorstPair)
	}
}

func TestCheckPartialsDetectsWrongDerivative(t *testing.T) {
	c := &square{skewDiag: 0.75}
	in := Inputs{"x": {1, -2, 3}, "gain": {2.5}}

	result, err := CheckPartials(c, in, 1e-5)
	if err != nil {
		t.Fatalf("CheckPartials: %v", err)
	}
	key := PartialKey{Of: "y", WRT: "x"}
	if math.Abs(result.MaxAbsError[key]-0.75) > 1e-5 {
		t.Errorf("MaxAbsError[%s] = %e, want ~0.75", key, result.MaxAbsError[key])
	}
	if result.WorstPair != key {
		t.Errorf("WorstPair = %s, want %s", result.WorstPair, key)
	}
}

func TestCheckPartialsMissingDeclaredPair(t *testing.T) {
	c := &square{omitPairs: true}
	in := Inputs{"x": {1, 2, 3}, "gain": {2.5}}

	if _, err := CheckPartials(c, in, 1e-5); err == nil {
		t.Error("expected error when a declared pair is not produced")
	}
}
