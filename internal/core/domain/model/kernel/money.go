package kernel

import (
	"fmt"
	"math"
)

// Money is a value object representing a monetary amount in the operator's
// single settlement currency. Amounts are stored as integer cents so that
// pricing and settlement arithmetic is exact and deterministic; floating
// point is only touched at the boundaries (parsing and rendering).
//
// Money is immutable: all arithmetic methods return a new value. Negative
// amounts are valid — settlement balances use the sign to express who owes
// whom.
//
// Example usage:
//
//	base := kernel.MoneyFromFloat(150.00)
//	child := base.ApplyRate(0.75)       // 112.50
//	total := base.MulInt(2).Add(child)  // 412.50
type Money struct {
	cents int64
}

// MoneyFromCents creates a Money value from an amount expressed in cents.
func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// MoneyFromFloat creates a Money value from a decimal amount, rounding half
// away from zero to the nearest cent. Intended for boundary conversion only
// (configuration, HTTP payloads); internal arithmetic stays in cents.
func MoneyFromFloat(amount float64) Money {
	return Money{cents: int64(math.Round(amount * 100))}
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount as a decimal number. Use for display and
// serialization only.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{cents: -m.cents}
}

// MulInt returns the amount multiplied by an integer factor.
func (m Money) MulInt(factor int) Money {
	return Money{cents: m.cents * int64(factor)}
}

// ApplyRate returns the amount scaled by the given rate, rounding half away
// from zero to the nearest cent. A child fare at 25% discount is
// unit.ApplyRate(0.75).
func (m Money) ApplyRate(rate float64) Money {
	return Money{cents: int64(math.Round(float64(m.cents) * rate))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount with two decimal places, e.g. "412.50".
func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
