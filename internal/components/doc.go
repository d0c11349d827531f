// Package components provides differentiable power-system elements for a
// gradient-based network solve.
//
// Each component implements [graph.Component], declaring its ports and
// Jacobian sparsity once and answering evaluate/linearize calls at any
// batched operating point:
//
//   - [PowerSplit]: splits incoming power between two sinks under a
//     [RuleProportional] or [RuleFixedAmount] control law, with conversion
//     loss reported as waste heat plus cost/weight/sizing-margin metrics
//
// # Energy Conservation
//
// For every node of a PowerSplit evaluation,
//
//	power_out_A + power_out_B + heat_out == power_in
//
// holds to floating-point tolerance under both rules.
package components
