package commands_test

import (
	"errors"
	"testing"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCardboard(t *testing.T, id kernel.UUID) *material.Material {
	t.Helper()
	m, err := material.NewMaterial(id, "Cardboard", "Paper", 1.50, 1.80)
	require.NoError(t, err)
	return m
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("creates a valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"12 Riverside Rd", "13800000000",
		)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "12 Riverside Rd", cmd.Address())
	})

	t.Run("requires an address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", "",
		)
		assert.ErrorIs(t, err, commands.ErrAddressIsRequired)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	orderID := kernel.NewUUID()
	userID := kernel.NewUUID()
	materialID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, userID, materialID, "12 Riverside Rd", "13800000000")
	require.NoError(t, err)

	cardboard := newTestCardboard(t, materialID)

	mockOrderRepo := new(MockOrderRepository)
	mockMaterialRepo := new(MockMaterialRepository)
	mockAuditRepo := new(MockAuditRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockOrderUoWFactory)

	var created *order.Order
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("MaterialRepository").Return(mockMaterialRepo).Once(),
		mockMaterialRepo.On("Get", ctx, materialID).Return(cardboard, nil).Once(),
		mockUoW.On("OrderRepository").Return(mockOrderRepo).Once(),
		mockOrderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*order.Order)
			}).Return(nil).Once(),
		mockUoW.On("AuditRepository").Return(mockAuditRepo).Once(),
		mockAuditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
	mockMaterialRepo.AssertExpectations(t)
	mockAuditRepo.AssertExpectations(t)

	require.NotNil(t, created)
	assert.Equal(t, order.Pending, created.Status())
	assert.InDelta(t, 1.50, created.UnitPriceSnapshot(), 1e-9)
	assert.Equal(t, "Paper", created.Category())
}

func TestCreateOrderCommandHandler_Handle_InvalidCommand(t *testing.T) {
	ctx := t.Context()
	var invalidCmd commands.CreateOrderCommand

	mockFactory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(mockFactory)

	err := handler.Handle(ctx, invalidCmd)

	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_MaterialLookupFails(t *testing.T) {
	ctx := t.Context()
	materialID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), materialID, "12 Riverside Rd", "",
	)
	require.NoError(t, err)

	wantErr := errors.New("material lookup failed")

	mockMaterialRepo := new(MockMaterialRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockOrderUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("MaterialRepository").Return(mockMaterialRepo).Once(),
		mockMaterialRepo.On("Get", ctx, materialID).Return(nil, wantErr).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateOrderCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, wantErr)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}
