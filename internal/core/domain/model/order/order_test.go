package order_test

import (
	"testing"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Willow Lane", "Paper", "13800000001",
		1.50, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order without collector", func(t *testing.T) {
		o := newTestOrder(t)

		assert.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Collector())
		assert.Nil(t, o.Settlement())
		assert.Equal(t, "12 Willow Lane", o.Address())
		assert.InDelta(t, 1.50, o.UnitPriceSnapshot(), 1e-9)
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		var empty kernel.UUID
		_, err := order.NewOrder(empty, kernel.NewUUID(), kernel.NewUUID(),
			"addr", "Paper", "", 1.0, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects empty address", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", "Paper", "", 1.0, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects negative price snapshot", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"addr", "Paper", "", -0.01, time.Now())
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderSchedule(t *testing.T) {
	t.Run("binds the collector and transitions to scheduled", func(t *testing.T) {
		o := newTestOrder(t)
		collectorID := kernel.NewUUID()

		require.NoError(t, o.Schedule(collectorID))

		assert.Equal(t, order.Scheduled, o.Status())
		require.NotNil(t, o.Collector())
		assert.True(t, o.Collector().IsEqual(collectorID))
	})

	t.Run("rejects a second schedule", func(t *testing.T) {
		o := newTestOrder(t)
		winner := kernel.NewUUID()
		loser := kernel.NewUUID()

		require.NoError(t, o.Schedule(winner))
		err := o.Schedule(loser)

		assert.Error(t, err)
		assert.True(t, o.Collector().IsEqual(winner), "losing claim must not rebind the order")
	})

	t.Run("rejects invalid collector id", func(t *testing.T) {
		o := newTestOrder(t)
		var empty kernel.UUID

		assert.Error(t, o.Schedule(empty))
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrderCompleteBy(t *testing.T) {
	settlement := order.Settlement{Weight: 10, ImpurityPercent: 5, Bonus: 0, Amount: 14.25}

	t.Run("settles a scheduled order for its own collector", func(t *testing.T) {
		o := newTestOrder(t)
		collectorID := kernel.NewUUID()
		require.NoError(t, o.Schedule(collectorID))

		require.NoError(t, o.CompleteBy(collectorID, settlement))

		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.Settlement())
		assert.InDelta(t, 14.25, o.Settlement().Amount, 1e-9)
		assert.InDelta(t, 10.0, o.Settlement().Weight, 1e-9)
	})

	t.Run("rejects completion by a different collector", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Schedule(kernel.NewUUID()))

		err := o.CompleteBy(kernel.NewUUID(), settlement)

		assert.ErrorIs(t, err, order.ErrNotBoundToCollector)
		assert.Equal(t, order.Scheduled, o.Status())
		assert.Nil(t, o.Settlement())
	})

	t.Run("rejects completion of a pending order", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.CompleteBy(kernel.NewUUID(), settlement))
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		o := newTestOrder(t)
		collectorID := kernel.NewUUID()
		require.NoError(t, o.Schedule(collectorID))

		err := o.CompleteBy(collectorID, order.Settlement{Weight: 0, Amount: 0})
		assert.Error(t, err)
		assert.Equal(t, order.Scheduled, o.Status())
	})

	t.Run("completed is terminal", func(t *testing.T) {
		o := newTestOrder(t)
		collectorID := kernel.NewUUID()
		require.NoError(t, o.Schedule(collectorID))
		require.NoError(t, o.CompleteBy(collectorID, settlement))

		assert.Error(t, o.CompleteBy(collectorID, settlement))
		assert.Error(t, o.Cancel())
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.Collector())
	})

	t.Run("rejects cancelling a scheduled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Schedule(kernel.NewUUID()))

		assert.Error(t, o.Cancel())
		assert.Equal(t, order.Scheduled, o.Status())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())

		assert.Error(t, o.Cancel())
		assert.Error(t, o.Schedule(kernel.NewUUID()))
	})
}

func TestRestoreOrder(t *testing.T) {
	id, userID, materialID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	collectorID := kernel.NewUUID()
	createdAt := time.Now()

	t.Run("restores a scheduled order", func(t *testing.T) {
		o, err := order.RestoreOrder(id, userID, materialID, &collectorID,
			"addr", "Metal", "", 5.0, order.Scheduled, nil, createdAt)

		require.NoError(t, err)
		assert.NoError(t, o.Validate())
		assert.Equal(t, order.Scheduled, o.Status())
		assert.True(t, o.Collector().IsEqual(collectorID))
	})

	t.Run("restores a completed order with settlement", func(t *testing.T) {
		s := &order.Settlement{Weight: 15, Amount: 78.75, Bonus: 3.75}
		o, err := order.RestoreOrder(id, userID, materialID, &collectorID,
			"addr", "Metal", "", 5.0, order.Completed, s, createdAt)

		require.NoError(t, err)
		require.NotNil(t, o.Settlement())
		assert.InDelta(t, 78.75, o.Settlement().Amount, 1e-9)
	})

	t.Run("rejects pending order with collector", func(t *testing.T) {
		_, err := order.RestoreOrder(id, userID, materialID, &collectorID,
			"addr", "Metal", "", 5.0, order.Pending, nil, createdAt)
		assert.Error(t, err)
	})

	t.Run("rejects scheduled order without collector", func(t *testing.T) {
		_, err := order.RestoreOrder(id, userID, materialID, nil,
			"addr", "Metal", "", 5.0, order.Scheduled, nil, createdAt)
		assert.Error(t, err)
	})

	t.Run("rejects completed order without settlement", func(t *testing.T) {
		_, err := order.RestoreOrder(id, userID, materialID, &collectorID,
			"addr", "Metal", "", 5.0, order.Completed, nil, createdAt)
		assert.Error(t, err)
	})

	t.Run("rejects settlement on a non-completed order", func(t *testing.T) {
		s := &order.Settlement{Weight: 1, Amount: 1}
		_, err := order.RestoreOrder(id, userID, materialID, &collectorID,
			"addr", "Metal", "", 5.0, order.Scheduled, s, createdAt)
		assert.Error(t, err)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(id, userID, materialID, nil,
			"addr", "Metal", "", 5.0, order.Unknown, nil, createdAt)
		assert.Error(t, err)
	})
}
