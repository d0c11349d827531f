package graph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Layout records where each variable's entries land in an assembled matrix.
type Layout struct {
	RowOffset map[string]int
	ColOffset map[string]int
	Rows      int
	Cols      int
}

// Assemble flattens a sparse Jacobian into a dense gonum matrix, for hosts
// that want a flat view instead of consuming blocks directly. Outputs map to
// row ranges and inputs to column ranges in declaration order. Column widths
// follow the blocks actually produced, so a scalar-declared input supplied
// as a per-node vector widens to node count.
func Assemble(spec ComponentSpec, jac Jacobian) (*mat.Dense, *Layout, error) {
	layout := &Layout{
		RowOffset: make(map[string]int, len(spec.Outputs)),
		ColOffset: make(map[string]int, len(spec.Inputs)),
	}

	for _, out := range spec.Outputs {
		layout.RowOffset[out.Name] = layout.Rows
		layout.Rows += out.Size
	}
	for _, inVar := range spec.Inputs {
		layout.ColOffset[inVar.Name] = layout.Cols
		layout.Cols += inputWidth(jac, inVar)
	}

	m := mat.NewDense(layout.Rows, layout.Cols, nil)
	for key, block := range jac {
		r0, ok := layout.RowOffset[key.Of]
		if !ok {
			return nil, nil, fmt.Errorf("%w: output %q", ErrUnknownVariable, key.Of)
		}
		c0, ok := layout.ColOffset[key.WRT]
		if !ok {
			return nil, nil, fmt.Errorf("%w: input %q", ErrUnknownVariable, key.WRT)
		}

		switch block.Kind {
		case BlockDiagonal:
			for i, v := range block.Values {
				m.Set(r0+i, c0+i, v)
			}
		case BlockColumn:
			for i, v := range block.Values {
				m.Set(r0+i, c0, v)
			}
		case BlockScalar:
			m.Set(r0, c0, block.Values[0])
		}
	}
	return m, layout, nil
}

// inputWidth is the column count an input occupies: blocks override the
// declared size so broadcast inputs assemble at their supplied length.
func inputWidth(jac Jacobian, inVar VarSpec) int {
	width := inVar.Size
	for key, block := range jac {
		if key.WRT != inVar.Name {
			continue
		}
		if block.Kind == BlockDiagonal && len(block.Values) > width {
			width = len(block.Values)
		}
	}
	return width
}
