// Package graph defines the contract between differentiable components and
// the host solver that owns the surrounding computational graph.
//
// A component declares its ports and Jacobian sparsity once via
// [ComponentSpec], then answers repeated [Component.Evaluate] and
// [Component.Linearize] calls during an iterative solve:
//
//   - [Vector]: batched values, one entry per operating point (node)
//   - [ComponentSpec]: setup-time port and sparsity declaration
//   - [Jacobian]: sparse analytic partials at one operating point
//   - [CheckPartials]: finite-difference verification of a Jacobian
//   - [Assemble]: flatten a sparse Jacobian into a gonum dense matrix
//
// # Purity
//
// Evaluate and Linearize must be pure functions of their inputs. Numeric
// degeneracies (division by zero, negative power) propagate as computed
// values rather than errors; the host's bounds and convergence checks are
// the place they get caught.
package graph
