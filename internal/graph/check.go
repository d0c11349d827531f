package graph

import (
	"fmt"
	"math"
)

// CheckResult reports the worst disagreement between a component's analytic
// Jacobian and a finite-difference approximation, per declared pair.
type CheckResult struct {
	MaxAbsError map[PartialKey]float64
	WorstPair   PartialKey
	WorstError  float64
}

// CheckPartials compares Linearize against a central finite difference of
// Evaluate at the given operating point. The component itself is not
// modified; perturbed copies of the inputs are used for the differencing.
// Pairs whose true derivative is discontinuous at the chosen point (e.g. a
// saturation boundary) will legitimately disagree.
func CheckPartials(c Component, in Inputs, step float64) (*CheckResult, error) {
	if step <= 0 {
		step = 1e-6
	}
	spec := c.Spec()

	jac, err := c.Linearize(in)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{MaxAbsError: make(map[PartialKey]float64)}
	for _, ps := range spec.Partials {
		key := ps.Key()
		block, ok := jac[key]
		if !ok {
			return nil, fmt.Errorf("%w: declared pair %s not produced by Linearize", ErrUnknownVariable, key)
		}

		wrt, ok := in[ps.WRT]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingInput, ps.WRT)
		}

		result.MaxAbsError[key] = 0
		for col := range wrt {
			fwd, err := perturbedEvaluate(c, in, ps.WRT, col, +step)
			if err != nil {
				return nil, err
			}
			bwd, err := perturbedEvaluate(c, in, ps.WRT, col, -step)
			if err != nil {
				return nil, err
			}

			of := fwd[ps.Of]
			for row := range of {
				fd := (of[row] - bwd[ps.Of][row]) / (2 * step)
				diff := math.Abs(fd - block.At(row, col))
				if diff > result.MaxAbsError[key] {
					result.MaxAbsError[key] = diff
				}
			}
		}

		if result.MaxAbsError[key] > result.WorstError {
			result.WorstError = result.MaxAbsError[key]
			result.WorstPair = key
		}
	}
	return result, nil
}

func perturbedEvaluate(c Component, in Inputs, name string, idx int, delta float64) (Outputs, error) {
	pert := make(Inputs, len(in))
	for k, v := range in {
		pert[k] = v
	}
	v := in[name].Clone()
	v[idx] += delta
	pert[name] = v
	return c.Evaluate(pert)
}
