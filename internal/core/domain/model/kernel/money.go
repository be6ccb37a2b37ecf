package kernel

import (
	"fmt"

	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fraction digits kept for amounts, matching numeric(12,2).
const moneyScale = 2

// Money is a non-negative decimal amount. The zero value is a valid amount of 0.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rejects negative amounts and rounds to two fraction digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"total price",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount.Round(moneyScale)}, nil
}

func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("total price", err)
	}
	return NewMoney(d)
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 is the wire representation; precision beyond two digits is not kept anyway.
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
