package sweep

import (
	"context"
	"fmt"

	"github.com/DriesVerstraete/openconcept/internal/graph"
	"github.com/DriesVerstraete/openconcept/internal/metrics"
)

// Sweep evaluates a component across a uniform grid of one input, holding
// every other input at its base value. All nodes of the varied input move
// together, so each grid point is one uniform operating condition.
type Sweep struct {
	Input string
	Lo    float64
	Hi    float64
	Steps int
}

func New(input string, lo, hi float64, steps int) *Sweep {
	return &Sweep{Input: input, Lo: lo, Hi: hi, Steps: steps}
}

// Result holds one output sample per grid point. Series carries the
// node-0 value of every output; vector outputs at other nodes can be
// recovered by re-evaluating at the point of interest.
type Result struct {
	Input   string
	Points  []float64
	Series  map[string][]float64
	Metrics map[string]float64
}

// Run evaluates c at each grid point, feeding every evaluation through the
// given metrics. Base inputs are not modified.
func (s *Sweep) Run(ctx context.Context, c graph.Component, base graph.Inputs, ms []metrics.Metric) (*Result, error) {
	if s.Steps < 2 {
		return nil, fmt.Errorf("sweep: need at least 2 steps, got %d", s.Steps)
	}
	spec := c.Spec()
	varied, ok := spec.Input(s.Input)
	if !ok {
		return nil, fmt.Errorf("%w: %q", graph.ErrUnknownVariable, s.Input)
	}

	result := &Result{
		Input:   s.Input,
		Points:  make([]float64, 0, s.Steps),
		Series:  make(map[string][]float64, len(spec.Outputs)),
		Metrics: make(map[string]float64, len(ms)),
	}

	step := (s.Hi - s.Lo) / float64(s.Steps-1)
	for k := 0; k < s.Steps; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		val := s.Lo + float64(k)*step
		in := make(graph.Inputs, len(base)+1)
		for name, v := range base {
			in[name] = v
		}
		in[s.Input] = graph.Constant(varied.Size, val)

		out, err := c.Evaluate(in)
		if err != nil {
			return nil, err
		}
		for _, m := range ms {
			m.Observe(in, out)
		}

		result.Points = append(result.Points, val)
		for name, v := range out {
			result.Series[name] = append(result.Series[name], v[0])
		}
	}

	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
