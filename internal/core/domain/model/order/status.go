package order

import (
	"fmt"
	"strings"

	"foodorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (strict policy):
//
//	Pending ─> Confirmed ─> WaitingForPickup ─> ProductPickedUp ─> ConfirmedByDelivery
//	   │           │               │                   │                    │
//	   │           │               │                   │                    v
//	   │           │               │                   │            ConfirmedByClient ─> Completed
//	   └───────────┴───────────────┴───────────────────┴────────────────────┴──> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota
	Pending
	Confirmed
	WaitingForPickup
	ProductPickedUp
	ConfirmedByDelivery
	ConfirmedByClient
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Pending:             "pending",
	Confirmed:           "confirmed",
	WaitingForPickup:    "waiting_for_pickup",
	ProductPickedUp:     "product_pickedup",
	ConfirmedByDelivery: "confirmed_by_delivery",
	ConfirmedByClient:   "confirmed_by_client",
	Completed:           "completed",
	Cancelled:           "cancelled",
}

// sequence is the happy path an order walks through. Cancelled is not part of it.
var sequence = []Status{
	Pending,
	Confirmed,
	WaitingForPickup,
	ProductPickedUp,
	ConfirmedByDelivery,
	ConfirmedByClient,
	Completed,
}

// strictTransitions lists, for each non-terminal status, the statuses it may move to
// under the strict policy.
var strictTransitions = map[Status][]Status{
	Pending:             {Confirmed, Cancelled},
	Confirmed:           {WaitingForPickup, Cancelled},
	WaitingForPickup:    {ProductPickedUp, Cancelled},
	ProductPickedUp:     {ConfirmedByDelivery, Cancelled},
	ConfirmedByDelivery: {ConfirmedByClient, Cancelled},
	ConfirmedByClient:   {Completed, Cancelled},
}

// ParseStatus converts the wire name of a status ("waiting_for_pickup") into a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == needle {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known order status", s))
}

// Sequence returns a copy of the ordered happy-path statuses.
func Sequence() []Status {
	out := make([]Status, len(sequence))
	copy(out, sequence)
	return out
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are accepted from s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Progress returns the completion ratio in [0, 1]: (index+1)/len(sequence) for statuses
// on the happy path, 0 for Cancelled and for anything not in the sequence.
func (s Status) Progress() float64 {
	for i, st := range sequence {
		if st == s {
			return float64(i+1) / float64(len(sequence))
		}
	}
	return 0
}

// ValidateTransition checks whether moving from s to next is allowed under policy.
// Staying in the same non-terminal status is always allowed and is a no-op.
func (s Status) ValidateTransition(next Status, policy TransitionPolicy) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order is %s, no further transitions are accepted", s),
		)
	}
	if s == next || policy == Permissive {
		return nil
	}
	for _, allowed := range strictTransitions[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("transition from %s to %s is not allowed", s, next),
	)
}

// AllowedNext returns the statuses reachable from s under policy, excluding s itself.
func (s Status) AllowedNext(policy TransitionPolicy) []Status {
	if s.IsTerminal() {
		return nil
	}
	if policy == Permissive {
		out := make([]Status, 0, len(statusNames)-1)
		for _, st := range append(Sequence(), Cancelled) {
			if st != s {
				out = append(out, st)
			}
		}
		return out
	}
	return append([]Status(nil), strictTransitions[s]...)
}
