package metrics

import (
	"math"

	"github.com/DriesVerstraete/openconcept/internal/graph"
)

// Metric accumulates a scalar statistic over evaluated operating points.
type Metric interface {
	Name() string
	Observe(in graph.Inputs, out graph.Outputs)
	Value() float64
	Reset()
}

// Balance tracks the worst relative power-balance residual
// |A + B + heat - in| / max(1, |in|) across observed evaluations. For a
// correct splitter this stays at floating-point roundoff.
type Balance struct {
	name        string
	maxResidual float64
	samples     int
}

func NewBalance() *Balance {
	return &Balance{name: "power_balance"}
}

func (b *Balance) Name() string { return b.name }

func (b *Balance) Observe(in graph.Inputs, out graph.Outputs) {
	pin := in["power_in"]
	outA := out["power_out_A"]
	outB := out["power_out_B"]
	heat := out["heat_out"]
	if len(outA) != len(pin) || len(outB) != len(pin) || len(heat) != len(pin) {
		return
	}

	for i := range pin {
		residual := math.Abs(outA[i]+outB[i]+heat[i]-pin[i]) / math.Max(1, math.Abs(pin[i]))
		b.maxResidual = math.Max(b.maxResidual, residual)
		b.samples++
	}
}

func (b *Balance) Value() float64 {
	return b.maxResidual
}

func (b *Balance) Reset() {
	b.maxResidual = 0
	b.samples = 0
}
