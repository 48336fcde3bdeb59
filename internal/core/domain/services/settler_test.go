package services_test

import (
	"testing"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduledOrder(t *testing.T, unitPrice float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Riverside Rd", "Paper", "13800000000",
		unitPrice, time.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, o.Schedule(kernel.NewUUID()))
	return o
}

func mustRule(t *testing.T, minWeight, bonus float64, priority int) *material.PricingRule {
	t.Helper()
	r, err := material.NewPricingRule(kernel.NewUUID(), kernel.NewUUID(), "tier", minWeight, bonus, priority)
	require.NoError(t, err)
	return r
}

func TestSettlerSettle(t *testing.T) {
	settler := services.NewSettler()

	t.Run("plain weight times snapshot", func(t *testing.T) {
		o := newScheduledOrder(t, 1.50)

		s, err := settler.Settle(o, 10, 0, nil)

		require.NoError(t, err)
		assert.InDelta(t, 15.00, s.Amount, 1e-9)
		assert.Zero(t, s.Bonus)
	})

	t.Run("impurity deduction comes off the base", func(t *testing.T) {
		o := newScheduledOrder(t, 2.00)

		s, err := settler.Settle(o, 20, 10, nil)

		require.NoError(t, err)
		assert.InDelta(t, 36.00, s.Amount, 1e-9)
		assert.InDelta(t, 10.0, s.ImpurityPercent, 1e-9)
	})

	t.Run("tier bonus applies after deduction", func(t *testing.T) {
		o := newScheduledOrder(t, 5.00)
		rules := []*material.PricingRule{mustRule(t, 10, 5, 1)}

		s, err := settler.Settle(o, 15, 0, rules)

		require.NoError(t, err)
		assert.InDelta(t, 3.75, s.Bonus, 1e-9)
		assert.InDelta(t, 78.75, s.Amount, 1e-9)
	})

	t.Run("only the highest priority matching rule contributes", func(t *testing.T) {
		o := newScheduledOrder(t, 5.00)
		rules := []*material.PricingRule{
			mustRule(t, 5, 2, 1),
			mustRule(t, 10, 5, 10),
			mustRule(t, 100, 20, 20),
		}

		s, err := settler.Settle(o, 15, 0, rules)

		require.NoError(t, err)
		assert.InDelta(t, 78.75, s.Amount, 1e-9)
	})

	t.Run("rule below its weight threshold grants nothing", func(t *testing.T) {
		o := newScheduledOrder(t, 5.00)
		rules := []*material.PricingRule{mustRule(t, 50, 5, 1)}

		s, err := settler.Settle(o, 15, 0, rules)

		require.NoError(t, err)
		assert.Zero(t, s.Bonus)
		assert.InDelta(t, 75.00, s.Amount, 1e-9)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		o := newScheduledOrder(t, 5.00)

		_, err := settler.Settle(o, 0, 0, nil)
		assert.Error(t, err)

		_, err = settler.Settle(o, 10, -1, nil)
		assert.Error(t, err)

		_, err = settler.Settle(o, 10, 101, nil)
		assert.Error(t, err)
	})
}
