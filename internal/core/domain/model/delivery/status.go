package delivery

import (
	"fmt"
	"strings"

	"foodorder/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Assigned
	PickedUp
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Assigned:  "assigned",
	PickedUp:  "picked_up",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

var transitions = map[Status][]Status{
	Assigned: {PickedUp, Cancelled},
	PickedUp: {Delivered, Cancelled},
}

func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if name == needle {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status",
		fmt.Errorf("%q is not a known delivery status", s),
	)
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsActive reports whether a courier is still working on the delivery.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp
}

func (s Status) canMoveTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
