package order

import (
	"fmt"
	"strings"

	"foodorder/internal/pkg/errs"
)

// TransitionPolicy decides whether stages of the lifecycle may be skipped.
type TransitionPolicy int

const (
	// Permissive allows any valid status from a non-terminal one, including skipping
	// and reversing stages. Terminal statuses stay terminal.
	Permissive TransitionPolicy = iota
	// Strict only allows the next stage of the sequence or Cancelled. Opt-in.
	Strict
)

func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, errs.NewValueIsInvalidErrorWithCause(
			"transition policy",
			fmt.Errorf("%q is neither strict nor permissive", s),
		)
	}
}

func (p TransitionPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// ValidateInitial checks the status an order may be created with.
// Strict only accepts Pending; Permissive accepts any valid status.
func (p TransitionPolicy) ValidateInitial(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == Pending || p == Permissive {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("orders cannot be created in status %s", s),
	)
}
