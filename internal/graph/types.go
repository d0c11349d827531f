package graph

import "math"

type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Fill(x float64) {
	for i := range v {
		v[i] = x
	}
}

func (v Vector) Scale(factor float64) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

// Constant returns a length-n vector with every element set to x.
func Constant(n int, x float64) Vector {
	v := make(Vector, n)
	v.Fill(x)
	return v
}

type Inputs map[string]Vector

type Outputs map[string]Vector

// VarSpec describes one named port of a component. Scalar ports carry a
// single value regardless of the component's node count.
type VarSpec struct {
	Name    string
	Size    int
	Units   string
	Scalar  bool
	Default Vector
}

// ComponentSpec is the setup-time declaration a component hands the host:
// its ports with shapes and units, and the sparsity structure of every
// nonzero Jacobian block. Pairs not listed in Partials are identically zero.
type ComponentSpec struct {
	Name     string
	Nodes    int
	Inputs   []VarSpec
	Outputs  []VarSpec
	Partials []PartialSpec
}

func (s ComponentSpec) Input(name string) (VarSpec, bool) {
	for _, vs := range s.Inputs {
		if vs.Name == name {
			return vs, true
		}
	}
	return VarSpec{}, false
}

func (s ComponentSpec) Output(name string) (VarSpec, bool) {
	for _, vs := range s.Outputs {
		if vs.Name == name {
			return vs, true
		}
	}
	return VarSpec{}, false
}

// Component is a differentiable node in a host solver's computational graph.
// Evaluate and Linearize are pure functions of the given inputs: no state is
// carried between calls, so one instance may be used from many goroutines.
type Component interface {
	Spec() ComponentSpec
	Evaluate(in Inputs) (Outputs, error)
	Linearize(in Inputs) (Jacobian, error)
}
