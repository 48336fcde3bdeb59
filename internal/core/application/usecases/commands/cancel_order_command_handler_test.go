package commands_test

import (
	"testing"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	pendingOrder := newPendingOrder(t)
	userID := pendingOrder.UserID()

	cmd, err := commands.NewCancelOrderCommand(pendingOrder.ID(), userID)
	require.NoError(t, err)

	mockOrderRepo := new(MockOrderRepository)
	mockAuditRepo := new(MockAuditRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockOrderUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
		mockOrderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		mockOrderRepo.On("UpdateFromPending", ctx, pendingOrder).Return(nil).Once(),
		mockUoW.On("AuditRepository").Return(mockAuditRepo).Once(),
		mockAuditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockUoW.AssertExpectations(t)
	assert.Equal(t, order.Cancelled, pendingOrder.Status())
}

func TestCancelOrderCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	pendingOrder := newPendingOrder(t)
	stranger := kernel.NewUUID()

	cmd, err := commands.NewCancelOrderCommand(pendingOrder.ID(), stranger)
	require.NoError(t, err)

	mockOrderRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockOrderUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
		mockOrderRepo.On("Get", ctx, pendingOrder.ID()).Return(pendingOrder, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelOrderCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, commands.ErrOrderNotOwned)
	assert.Equal(t, order.Pending, pendingOrder.Status())
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelOrderCommandHandler_Handle_AlreadyScheduled(t *testing.T) {
	// Once a collector is bound the user can no longer cancel.
	ctx := t.Context()
	scheduledOrder := newPendingOrder(t)
	require.NoError(t, scheduledOrder.Schedule(kernel.NewUUID()))

	cmd, err := commands.NewCancelOrderCommand(scheduledOrder.ID(), scheduledOrder.UserID())
	require.NoError(t, err)

	mockOrderRepo := new(MockOrderRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockOrderUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
		mockOrderRepo.On("Get", ctx, scheduledOrder.ID()).Return(scheduledOrder, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelOrderCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	assert.Error(t, err)
	assert.Equal(t, order.Scheduled, scheduledOrder.Status())
}
