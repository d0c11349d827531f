package graph

import "errors"

// Domain errors for component construction and evaluation.
var (
	// ErrConfiguration indicates an invalid component configuration,
	// detected at construction before any evaluation.
	ErrConfiguration = errors.New("graph: invalid configuration")

	// ErrMissingInput indicates a required input that is absent or has
	// the wrong shape at evaluate/linearize time.
	ErrMissingInput = errors.New("graph: missing or misshapen input")

	// ErrUnknownVariable indicates a name that matches no declared port.
	ErrUnknownVariable = errors.New("graph: unknown variable")
)
