package kernel

import (
	"strings"
	"unicode/utf8"

	"foodorder/internal/pkg/errs"
)

// MaxAddressLength is the maximum number of characters in a delivery address.
const MaxAddressLength = 255

// Address is an optional delivery address. The empty Address means "not provided".
type Address struct {
	value string
}

func NewAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n > MaxAddressLength {
		return Address{}, errs.NewValueIsOutOfRangeError("address length", n, 0, MaxAddressLength)
	}
	return Address{value: s}, nil
}

func (a Address) IsEmpty() bool {
	return a.value == ""
}

func (a Address) String() string {
	return a.value
}

// Ptr returns nil for an empty address, for nullable storage and JSON.
func (a Address) Ptr() *string {
	if a.IsEmpty() {
		return nil
	}
	v := a.value
	return &v
}
