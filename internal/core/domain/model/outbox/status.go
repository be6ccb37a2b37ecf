package outbox

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Status is the processing state of a message.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusDone, StatusFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("outbox status", fmt.Errorf("%q is not a known status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}
