package models

import (
	"fmt"
	"math"
)

// Money is an immutable amount of money kept in cents.
// Order and ledger invariants require exact equality checks,
// so all arithmetic stays in integers.
type Money struct {
	cents int64
}

// ZeroMoney is zero amount of money
var ZeroMoney = Money{}

// NewMoney creates money from amount in cents
func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// MoneyFromFloat creates money from decimal amount, e.g. 50.00
func MoneyFromFloat(amount float64) Money {
	return Money{cents: int64(math.Round(amount * 100))}
}

// Cents returns amount in cents
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns decimal amount
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns sum of two amounts
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns difference of two amounts
func (m Money) Subtract(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Multiply returns amount multiplied by quantity
func (m Money) Multiply(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// IsGreaterThan reports whether amount is greater than other
func (m Money) IsGreaterThan(other Money) bool {
	return m.cents > other.cents
}

// IsGreaterThanZero reports whether amount is positive
func (m Money) IsGreaterThanZero() bool {
	return m.cents > 0
}

// String renders amount with two decimals, e.g. "250.00"
func (m Money) String() string {
	cents := m.cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
