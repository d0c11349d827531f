package metrics

import (
	"github.com/DriesVerstraete/openconcept/internal/graph"
)

// Saturation counts the fraction of observed nodes on the starved branch of
// a fixed-amount split (power_in below the requested amount, output B held
// at zero). A persistently high value signals an undersized supply.
type Saturation struct {
	name    string
	starved int
	samples int
}

func NewSaturation() *Saturation {
	return &Saturation{name: "saturation"}
}

func (s *Saturation) Name() string { return s.name }

func (s *Saturation) Observe(in graph.Inputs, out graph.Outputs) {
	pin := in["power_in"]
	amount, ok := in["power_split_amount"]
	if !ok || len(amount) != len(pin) {
		return
	}

	for i := range pin {
		s.samples++
		if pin[i] < amount[i] {
			s.starved++
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.starved) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.starved = 0
	s.samples = 0
}
