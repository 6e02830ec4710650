package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// Zero returns a zero amount in the given currency.
func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// Mul multiplies the amount by an integer quantity.
func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

// Add sums two amounts. A zero-value Money adopts the other operand's
// currency, so running totals can start from the zero value. Mixing two
// concrete currencies is a programming error and panics; cart and order
// lines always share one currency.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: mergeUnits(m, other)}
}

// Sub subtracts other from m, with the same currency rule as Add.
func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: mergeUnits(m, other)}
}

func mergeUnits(a, b Money) currency.Unit {
	var none currency.Unit
	switch {
	case a.Currency == b.Currency:
		return a.Currency
	case a.Currency == none:
		return b.Currency
	case b.Currency == none:
		return a.Currency
	}
	panic(fmt.Sprintf("money: currency mismatch %s vs %s", a.Currency, b.Currency))
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
