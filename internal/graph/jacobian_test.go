package graph

import "testing"

func TestBlockAt(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		row   int
		col   int
		want  float64
	}{
		{"diagonal on", Block{Kind: BlockDiagonal, Values: Vector{1, 2, 3}}, 1, 1, 2},
		{"diagonal off", Block{Kind: BlockDiagonal, Values: Vector{1, 2, 3}}, 1, 2, 0},
		{"column", Block{Kind: BlockColumn, Values: Vector{4, 5}}, 1, 0, 5},
		{"column off", Block{Kind: BlockColumn, Values: Vector{4, 5}}, 1, 1, 0},
		{"scalar", Block{Kind: BlockScalar, Values: Vector{7}}, 0, 0, 7},
		{"scalar off", Block{Kind: BlockScalar, Values: Vector{7}}, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.At(tt.row, tt.col); got != tt.want {
				t.Errorf("At(%d,%d) = %f, want %f", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestJacobianSetters(t *testing.T) {
	jac := make(Jacobian)
	jac.Diag("y", "x", Vector{1, 2})
	jac.Column("y", "s", Vector{3, 4})
	jac.Scalar("c", "s", 5)

	if b := jac[PartialKey{Of: "y", WRT: "x"}]; b.Kind != BlockDiagonal || b.At(1, 1) != 2 {
		t.Errorf("diag block wrong: %+v", b)
	}
	if b := jac[PartialKey{Of: "y", WRT: "s"}]; b.Kind != BlockColumn || b.At(1, 0) != 4 {
		t.Errorf("column block wrong: %+v", b)
	}
	if b := jac[PartialKey{Of: "c", WRT: "s"}]; b.Kind != BlockScalar || b.At(0, 0) != 5 {
		t.Errorf("scalar block wrong: %+v", b)
	}
}

func TestPartialKeyString(t *testing.T) {
	key := PartialKey{Of: "heat_out", WRT: "power_in"}
	if key.String() != "dheat_out/dpower_in" {
		t.Errorf("String() = %q", key.String())
	}
}
