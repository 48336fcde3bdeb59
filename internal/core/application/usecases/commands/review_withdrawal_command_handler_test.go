package commands_test

import (
	"testing"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/application/usecases/commands"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingWithdrawal(t *testing.T, accountID kernel.UUID, amount float64) *withdrawal.Withdrawal {
	t.Helper()
	w, err := withdrawal.NewWithdrawal(
		kernel.NewUUID(), accountID, nil, nil, amount, "wechat", time.Now(),
	)
	require.NoError(t, err)
	return w
}

func TestNewReviewWithdrawalCommand(t *testing.T) {
	t.Run("rejection requires a reason", func(t *testing.T) {
		_, err := commands.NewReviewWithdrawalCommand(kernel.NewUUID(), kernel.NewUUID(), false, "")
		assert.ErrorIs(t, err, commands.ErrRejectReasonIsRequired)
	})

	t.Run("approval needs no reason", func(t *testing.T) {
		cmd, err := commands.NewReviewWithdrawalCommand(kernel.NewUUID(), kernel.NewUUID(), true, "")
		require.NoError(t, err)
		assert.True(t, cmd.Approve())
	})
}

func TestReviewWithdrawalCommandHandler_Handle_Approve(t *testing.T) {
	// Arrange
	ctx := t.Context()
	accountID := kernel.NewUUID()
	pendingWithdrawal := newPendingWithdrawal(t, accountID, 30)

	cmd, err := commands.NewReviewWithdrawalCommand(pendingWithdrawal.ID(), kernel.NewUUID(), true, "")
	require.NoError(t, err)

	mockWithdrawalRepo := new(MockWithdrawalRepository)
	mockAuditRepo := new(MockAuditRepository)
	mockNotificationRepo := new(MockNotificationRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockWithdrawalUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("WithdrawalRepository").Return(mockWithdrawalRepo).Once(),
		mockWithdrawalRepo.On("Get", ctx, pendingWithdrawal.ID()).Return(pendingWithdrawal, nil).Once(),
		mockWithdrawalRepo.On("Update", ctx, pendingWithdrawal).Return(nil).Once(),
		mockUoW.On("AuditRepository").Return(mockAuditRepo).Once(),
		mockAuditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		mockUoW.On("NotificationRepository").Return(mockNotificationRepo).Once(),
		mockNotificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewReviewWithdrawalCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockUoW.AssertExpectations(t)
	assert.Equal(t, withdrawal.Approved, pendingWithdrawal.Status())
}

func TestReviewWithdrawalCommandHandler_Handle_RejectRefunds(t *testing.T) {
	// Rejection puts the reserved amount back on the owner's balance.
	ctx := t.Context()
	accountID := kernel.NewUUID()
	pendingWithdrawal := newPendingWithdrawal(t, accountID, 30)

	cmd, err := commands.NewReviewWithdrawalCommand(pendingWithdrawal.ID(), kernel.NewUUID(), false, "details mismatch")
	require.NoError(t, err)

	owner, err := account.RestoreAccount(accountID, "openid-1", "Chen", 70.00, 0)
	require.NoError(t, err)

	mockWithdrawalRepo := new(MockWithdrawalRepository)
	mockAccountRepo := new(MockAccountRepository)
	mockAuditRepo := new(MockAuditRepository)
	mockNotificationRepo := new(MockNotificationRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockWithdrawalUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("WithdrawalRepository").Return(mockWithdrawalRepo).Once(),
		mockWithdrawalRepo.On("Get", ctx, pendingWithdrawal.ID()).Return(pendingWithdrawal, nil).Once(),
		mockUoW.On("AccountRepository").Return(mockAccountRepo).Twice(),
		mockAccountRepo.On("Get", ctx, accountID).Return(owner, nil).Once(),
		mockAccountRepo.On("Update", ctx, owner).Return(nil).Once(),
		mockWithdrawalRepo.On("Update", ctx, pendingWithdrawal).Return(nil).Once(),
		mockUoW.On("AuditRepository").Return(mockAuditRepo).Once(),
		mockAuditRepo.On("Add", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		mockUoW.On("NotificationRepository").Return(mockNotificationRepo).Once(),
		mockNotificationRepo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewReviewWithdrawalCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, withdrawal.Rejected, pendingWithdrawal.Status())
	assert.Equal(t, "details mismatch", pendingWithdrawal.RejectReason())
	assert.InDelta(t, 100.00, owner.Balance(), 1e-9)
}

func TestReviewWithdrawalCommandHandler_Handle_AlreadyProcessed(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	processed := newPendingWithdrawal(t, accountID, 30)
	require.NoError(t, processed.Approve())

	cmd, err := commands.NewReviewWithdrawalCommand(processed.ID(), kernel.NewUUID(), true, "")
	require.NoError(t, err)

	mockWithdrawalRepo := new(MockWithdrawalRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockWithdrawalUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("WithdrawalRepository").Return(mockWithdrawalRepo).Once(),
		mockWithdrawalRepo.On("Get", ctx, processed.ID()).Return(processed, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewReviewWithdrawalCommandHandler(mockFactory)

	err = handler.Handle(ctx, cmd)

	assert.Error(t, err)
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}
