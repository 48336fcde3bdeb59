package services

import (
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// Settler is a domain service that turns a weigh-in into settlement figures.
//
// Calculation, in order:
//  1. base amount = measured weight x unit price snapshot
//  2. impurity deduction = base x impurity percent
//  3. tier bonus = post-deduction amount x the bonus rate of the single
//     highest-priority rule whose weight threshold the order reaches
//
// Every intermediate figure is rounded to cents, matching how the amounts
// are stored and displayed. The unit price always comes from the order's
// snapshot, so a price change between booking and pickup never shifts the
// payout.
type Settler struct{}

// NewSettler creates a new Settler instance.
func NewSettler() Settler {
	return Settler{}
}

// Settle computes the settlement for an order about to be completed.
//
// Parameters:
//   - o: the order being settled; must be valid and carry the price snapshot
//   - weight: actual weight measured at pickup, in kilograms, must be positive
//   - impurityPercent: contamination deduction rate, 0 to 100
//   - rules: the pricing rules of the order's material; only the matching
//     rule with the highest priority contributes a bonus
//
// Returns the settlement figures or a validation error. Settle does not
// mutate the order; callers pass the result to Order.CompleteBy.
func (s Settler) Settle(o *order.Order, weight, impurityPercent float64, rules []*material.PricingRule) (order.Settlement, error) {
	if err := o.Validate(); err != nil {
		return order.Settlement{}, err
	}
	if weight <= 0 {
		return order.Settlement{}, errs.NewValueIsInvalidError("weight")
	}
	if impurityPercent < 0 || impurityPercent > 100 {
		return order.Settlement{}, errs.NewValueIsOutOfRangeError("impurityPercent", impurityPercent, 0, 100)
	}

	base := kernel.RoundCents(weight * o.UnitPriceSnapshot())
	deduction := kernel.RoundCents(kernel.Percent(base, impurityPercent))
	afterDeduction := base - deduction

	var bonus float64
	if rule := material.TopRule(rules, weight); rule != nil {
		bonus = kernel.RoundCents(kernel.Percent(afterDeduction, rule.BonusPercent()))
	}

	return order.Settlement{
		Weight:          weight,
		ImpurityPercent: impurityPercent,
		Bonus:           bonus,
		Amount:          kernel.RoundCents(afterDeduction + bonus),
	}, nil
}
