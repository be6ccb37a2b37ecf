package kernel

import (
	"fmt"
	"strconv"

	"foodorder/internal/pkg/errs"
)

// ID is a positive integer surrogate key. Foreign references into other services
// (customers, restaurants, items, couriers) are only checked for positivity.
type ID int64

// NewID validates that v is a positive identifier; name is used in the error.
func NewID(name string, v int64) (ID, error) {
	id := ID(v)
	if err := id.validate(name); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal string into an ID.
func ParseID(name, s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q is not an integer", s))
	}
	return NewID(name, v)
}

func (id ID) Validate() error {
	return id.validate("id")
}

func (id ID) validate(name string) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is not a positive integer", int64(id)))
	}
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
