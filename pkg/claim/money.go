// Package claim holds the typed domain model for the claim integrity
// engine: claims, line items, policy coverage, findings, and scorecards.
// Values are constructed through validating constructors so that every
// invariant in the data model holds by the time a validator ever sees
// a ClaimData.
package claim

import (
	"github.com/shopspring/decimal"
)

// Money is a fixed-point decimal amount. Unless documented otherwise,
// money fields are non-negative. shopspring/decimal gives exact
// equality and addition, unlike float64.
type Money = decimal.Decimal

// Zero is the additive identity for Money.
var Zero = decimal.Zero

// NewMoney builds a Money value from a float64, primarily for literals
// in tests and sample data.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}
