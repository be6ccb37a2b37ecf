package commands

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrProcessOutboxCommandIsNotConstructed = errors.New(
	"ProcessOutboxCommand must be created via NewProcessOutboxCommand constructor",
)

// ProcessOutboxCommand claims and runs due outbox messages of the given kinds.
// Claimed messages are leased for the lease duration so concurrent workers skip them.
type ProcessOutboxCommand struct {
	kinds     []outbox.Kind
	batchSize int
	lease     time.Duration

	guard guard.ConstructorGuard
}

func NewProcessOutboxCommand(kinds []outbox.Kind, batchSize int, lease time.Duration) (ProcessOutboxCommand, error) {
	var errList []error
	if len(kinds) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("kinds"))
	}
	for _, k := range kinds {
		errList = append(errList, k.Validate())
	}
	if batchSize <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded"))
	}
	if lease <= 0 {
		errList = append(errList, errs.NewValueIsInvalidError("lease"))
	}
	if err := errors.Join(errList...); err != nil {
		return ProcessOutboxCommand{}, err
	}

	return ProcessOutboxCommand{
		kinds:     append([]outbox.Kind(nil), kinds...),
		batchSize: batchSize,
		lease:     lease,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessOutboxCommand) Validate() error {
	return c.guard.Validate(ErrProcessOutboxCommandIsNotConstructed)
}

func (c ProcessOutboxCommand) Kinds() []outbox.Kind {
	return append([]outbox.Kind(nil), c.kinds...)
}

func (c ProcessOutboxCommand) BatchSize() int {
	return c.batchSize
}

func (c ProcessOutboxCommand) Lease() time.Duration {
	return c.lease
}
