package commands_test

import (
	"testing"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Riverside Rd", "Paper", "13800000000", 1.50, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func newActiveCollector(t *testing.T, id kernel.UUID) *collector.Collector {
	t.Helper()
	c, err := collector.NewCollector(id, "Lee", "13900000000", nil)
	require.NoError(t, err)
	return c
}

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	collectorID := kernel.NewUUID()
	pendingOrder := newPendingOrder(t)

	cmd, err := commands.NewClaimOrderCommand(pendingOrder.ID(), collectorID)
	require.NoError(t, err)

	mockOrderRepo := new(MockOrderRepository)
	mockCollectorRepo := new(MockCollectorRepository)
	mockAuditRepo := new(MockAuditRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockScheduleUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CollectorRepository").Return(mockCollectorRepo).Once(),
		mockCollectorRepo.On("Get", ctx, collectorID).Return(newActiveCollector(t, collectorID), nil).Once(),
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
		mockOrderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		mockOrderRepo.On("UpdateFromPending", ctx, pendingOrder).Return(nil).Once(),
		mockUoW.On("AuditRepository").Return(mockAuditRepo).Once(),
		mockAuditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewClaimOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockUoW.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)

	assert.Equal(t, order.Scheduled, pendingOrder.Status())
	require.NotNil(t, pendingOrder.Collector())
	assert.True(t, pendingOrder.Collector().IsEqual(collectorID))
}

func TestClaimOrderCommandHandler_Handle_LostRace(t *testing.T) {
	// The conditional write reports the conflict; nothing commits.
	ctx := t.Context()
	collectorID := kernel.NewUUID()
	pendingOrder := newPendingOrder(t)

	cmd, err := commands.NewClaimOrderCommand(pendingOrder.ID(), collectorID)
	require.NoError(t, err)

	conflict := errs.NewConflictError("order", pendingOrder.ID())

	mockOrderRepo := new(MockOrderRepository)
	mockCollectorRepo := new(MockCollectorRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockScheduleUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CollectorRepository").Return(mockCollectorRepo).Once(),
		mockCollectorRepo.On("Get", ctx, collectorID).Return(newActiveCollector(t, collectorID), nil).Once(),
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
		mockOrderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		mockOrderRepo.On("UpdateFromPending", ctx, pendingOrder).Return(conflict).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewClaimOrderCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrConflict)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}

func TestClaimOrderCommandHandler_Handle_InactiveCollector(t *testing.T) {
	ctx := t.Context()
	collectorID := kernel.NewUUID()
	pendingOrder := newPendingOrder(t)

	cmd, err := commands.NewClaimOrderCommand(pendingOrder.ID(), collectorID)
	require.NoError(t, err)

	inactive := newActiveCollector(t, collectorID)
	inactive.Deactivate()

	mockCollectorRepo := new(MockCollectorRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockScheduleUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CollectorRepository").Return(mockCollectorRepo).Once(),
		mockCollectorRepo.On("Get", ctx, collectorID).Return(inactive, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewClaimOrderCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, collector.ErrCollectorInactive)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}

func TestClaimOrderCommandHandler_Handle_AlreadyScheduled(t *testing.T) {
	// A stale read of a scheduled order fails in the domain before any write.
	ctx := t.Context()
	collectorID := kernel.NewUUID()
	scheduledOrder := newPendingOrder(t)
	require.NoError(t, scheduledOrder.Schedule(kernel.NewUUID()))

	cmd, err := commands.NewClaimOrderCommand(scheduledOrder.ID(), collectorID)
	require.NoError(t, err)

	mockOrderRepo := new(MockOrderRepository)
	mockCollectorRepo := new(MockCollectorRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockScheduleUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CollectorRepository").Return(mockCollectorRepo).Once(),
		mockCollectorRepo.On("Get", ctx, collectorID).Return(newActiveCollector(t, collectorID), nil).Once(),
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
		mockOrderRepo.On("Get", ctx, scheduledOrder.ID()).Return(scheduledOrder, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewClaimOrderCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	assert.Error(t, err)
	mockOrderRepo.AssertNotCalled(t, "UpdateFromPending", ctx, scheduledOrder)
}
