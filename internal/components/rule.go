package components

import (
	"fmt"

	"github.com/DriesVerstraete/openconcept/internal/graph"
)

// Rule selects the control law of a power splitter. It is fixed at
// construction; there is no runtime rule switching.
type Rule int

const (
	// RuleProportional routes a fraction of the incoming power to output A.
	RuleProportional Rule = iota
	// RuleFixedAmount routes an absolute wattage to output A and the
	// remainder to output B, saturating when supply is short.
	RuleFixedAmount
)

func (r Rule) String() string {
	switch r {
	case RuleProportional:
		return "proportional"
	case RuleFixedAmount:
		return "fixed_amount"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ParseRule maps a configuration string to a Rule. Anything other than
// "proportional" or "fixed_amount" is a configuration error.
func ParseRule(s string) (Rule, error) {
	switch s {
	case "proportional":
		return RuleProportional, nil
	case "fixed_amount":
		return RuleFixedAmount, nil
	default:
		return 0, fmt.Errorf("%w: power split rule %q (want \"proportional\" or \"fixed_amount\")", graph.ErrConfiguration, s)
	}
}

// ControlInput is the name of the control port the rule selects.
func (r Rule) ControlInput() string {
	if r == RuleFixedAmount {
		return "power_split_amount"
	}
	return "power_split_fraction"
}
