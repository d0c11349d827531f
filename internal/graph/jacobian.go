package graph

import "fmt"

// BlockKind is the index structure of one Jacobian block.
type BlockKind int

const (
	// BlockDiagonal couples output node i only to input node i (N values).
	BlockDiagonal BlockKind = iota
	// BlockColumn couples a length-N output to a scalar input (N values).
	BlockColumn
	// BlockScalar couples a scalar output to a scalar input (1 value).
	BlockScalar
)

func (k BlockKind) String() string {
	switch k {
	case BlockDiagonal:
		return "diagonal"
	case BlockColumn:
		return "column"
	case BlockScalar:
		return "scalar"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

// PartialKey names one (output, input) derivative pair.
type PartialKey struct {
	Of  string
	WRT string
}

func (k PartialKey) String() string {
	return "d" + k.Of + "/d" + k.WRT
}

// PartialSpec declares the sparsity of one nonzero block. Constant marks
// blocks whose values never depend on the operating point, so a host may
// assemble them once and skip them on relinearization.
type PartialSpec struct {
	Of       string
	WRT      string
	Kind     BlockKind
	Constant bool
}

func (p PartialSpec) Key() PartialKey {
	return PartialKey{Of: p.Of, WRT: p.WRT}
}

// Block holds the nonzero values of one Jacobian block in the layout
// implied by Kind: diagonal and column blocks store one value per node,
// scalar blocks store exactly one.
type Block struct {
	Kind   BlockKind
	Values Vector
}

// Jacobian maps each declared derivative pair to its block at one
// operating point.
type Jacobian map[PartialKey]Block

// Diag records a diagonal block.
func (j Jacobian) Diag(of, wrt string, values Vector) {
	j[PartialKey{Of: of, WRT: wrt}] = Block{Kind: BlockDiagonal, Values: values}
}

// Column records a vector-versus-scalar block.
func (j Jacobian) Column(of, wrt string, values Vector) {
	j[PartialKey{Of: of, WRT: wrt}] = Block{Kind: BlockColumn, Values: values}
}

// Scalar records a 1x1 block.
func (j Jacobian) Scalar(of, wrt string, value float64) {
	j[PartialKey{Of: of, WRT: wrt}] = Block{Kind: BlockScalar, Values: Vector{value}}
}

// At returns the (row, col) entry of a block, interpreting the layout by
// kind. Entries outside the stored structure are zero.
func (b Block) At(row, col int) float64 {
	switch b.Kind {
	case BlockDiagonal:
		if row == col && row < len(b.Values) {
			return b.Values[row]
		}
	case BlockColumn:
		if col == 0 && row < len(b.Values) {
			return b.Values[row]
		}
	case BlockScalar:
		if row == 0 && col == 0 {
			return b.Values[0]
		}
	}
	return 0
}
