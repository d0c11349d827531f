package graph

import (
	"math"
	"testing"
)

func specForAssembly(nn int) ComponentSpec {
	return ComponentSpec{
		Name:  "assembly",
		Nodes: nn,
		Inputs: []VarSpec{
			{Name: "p", Size: nn},
			{Name: "r", Size: 1, Scalar: true},
		},
		Outputs: []VarSpec{
			{Name: "a", Size: nn},
			{Name: "c", Size: 1, Scalar: true},
			{Name: "m", Size: nn},
		},
		Partials: []PartialSpec{
			{Of: "a", WRT: "p", Kind: BlockDiagonal},
			{Of: "c", WRT: "r", Kind: BlockScalar},
			{Of: "m", WRT: "r", Kind: BlockColumn},
		},
	}
}

func TestAssemble(t *testing.T) {
	spec := specForAssembly(2)
	jac := make(Jacobian)
	jac.Diag("a", "p", Vector{1, 2})
	jac.Scalar("c", "r", 3)
	jac.Column("m", "r", Vector{4, 5})

	dense, layout, err := Assemble(spec, jac)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if layout.Rows != 5 || layout.Cols != 3 {
		t.Fatalf("layout = %dx%d, want 5x3", layout.Rows, layout.Cols)
	}
	if layout.RowOffset["m"] != 3 || layout.ColOffset["r"] != 2 {
		t.Errorf("offsets: m=%d r=%d, want 3 and 2", layout.RowOffset["m"], layout.ColOffset["r"])
	}

	checks := []struct {
		row, col int
		want     float64
	}{
		{0, 0, 1}, {1, 1, 2}, {0, 1, 0}, // diagonal a/p
		{2, 2, 3},                      // scalar c/r
		{3, 2, 4}, {4, 2, 5},           // column m/r
		{3, 0, 0},                      // undeclared pair stays zero
	}
	for _, c := range checks {
		if got := dense.At(c.row, c.col); math.Abs(got-c.want) > 1e-15 {
			t.Errorf("dense[%d,%d] = %f, want %f", c.row, c.col, got, c.want)
		}
	}
}

func TestAssembleWidensBroadcastInput(t *testing.T) {
	// a scalar-declared input supplied per-node produces a diagonal block
	// and must widen to node count in the flat view
	spec := specForAssembly(2)
	jac := make(Jacobian)
	jac.Diag("a", "p", Vector{1, 2})
	jac.Scalar("c", "r", 3)
	jac.Diag("m", "r", Vector{4, 5})

	dense, layout, err := Assemble(spec, jac)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if layout.Cols != 4 {
		t.Fatalf("cols = %d, want 4 (r widened to 2)", layout.Cols)
	}
	if got := dense.At(4, 3); got != 5 {
		t.Errorf("dense[4,3] = %f, want 5", got)
	}
}

func TestAssembleUnknownVariable(t *testing.T) {
	spec := specForAssembly(2)
	jac := make(Jacobian)
	jac.Diag("nope", "p", Vector{1, 2})

	if _, _, err := Assemble(spec, jac); err == nil {
		t.Error("expected error for undeclared output")
	}
}
