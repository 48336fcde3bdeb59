package kernel

import "math"

// Money amounts flow through settlement as float64 yuan and must be rounded
// to cents at every computation boundary so that repeated arithmetic never
// accumulates sub-cent drift between the order, the account balance, and the
// collector commission.

// RoundCents rounds an amount to two decimal places (half away from zero).
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Percent applies a percentage to an amount and rounds the result to cents.
// The percent argument is expressed as 0..100, matching how impurity
// deductions and bonus tiers are stored.
func Percent(amount, percent float64) float64 {
	return RoundCents(amount * percent / 100)
}
