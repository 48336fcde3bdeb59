package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/notification"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"
)

// expiryRejectReason is recorded on requests the sweep auto-rejects.
const expiryRejectReason = "review window expired"

// ExpireWithdrawalsCommandHandler rejects and refunds payout requests that
// sat unreviewed past the cutoff.
type ExpireWithdrawalsCommandHandler struct {
	uowFactory ExpiryUoWFactory
}

// NewExpireWithdrawalsCommandHandler creates a new handler for the payout sweep.
func NewExpireWithdrawalsCommandHandler(uowFactory ExpiryUoWFactory) ExpireWithdrawalsCommandHandler {
	return ExpireWithdrawalsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ExpireWithdrawalsCommand within a transaction.
// Returns the number of requests rejected.
func (h *ExpireWithdrawalsCommandHandler) Handle(ctx context.Context, cmd ExpireWithdrawalsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	withdrawalRepo := uow.WithdrawalRepository()
	stale, err := withdrawalRepo.GetAllPendingBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	expired := 0
	now := time.Now().UTC()
	for _, withdrawalAggregate := range stale {
		if err = withdrawalAggregate.Reject(expiryRejectReason); err != nil {
			return 0, err
		}
		if err = h.refund(ctx, uow, withdrawalAggregate); err != nil {
			return 0, err
		}
		if err = withdrawalRepo.Update(ctx, withdrawalAggregate); err != nil {
			return 0, err
		}

		entry, auditErr := audit.NewEntry(
			kernel.NewUUID(), audit.EntityWithdrawal, withdrawalAggregate.ID(),
			audit.ActionRejected, withdrawal.Pending.String(), withdrawal.Rejected.String(),
			audit.OperatorSystem, nil, now,
		)
		if auditErr != nil {
			return 0, auditErr
		}
		if err = uow.AuditRepository().Add(ctx, entry); err != nil {
			return 0, err
		}

		withdrawalID := withdrawalAggregate.ID()
		note, noteErr := notification.NewNotification(
			kernel.NewUUID(), withdrawalAggregate.AccountID(),
			"Withdrawal returned",
			fmt.Sprintf("Your withdrawal of %.2f was not reviewed in time and has been returned to your balance.",
				withdrawalAggregate.Amount()),
			notification.KindWithdrawal, audit.EntityWithdrawal, &withdrawalID, now,
		)
		if noteErr != nil {
			return 0, noteErr
		}
		if err = uow.NotificationRepository().Add(ctx, note); err != nil {
			return 0, err
		}

		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return expired, nil
}

func (h *ExpireWithdrawalsCommandHandler) refund(ctx context.Context, uow ExpiryUoW, w *withdrawal.Withdrawal) error {
	if w.CollectorID() != nil {
		collectorAggregate, err := uow.CollectorRepository().Get(ctx, *w.CollectorID())
		if err != nil {
			return err
		}
		if err = collectorAggregate.CreditBalance(w.Amount()); err != nil {
			return err
		}
		return uow.CollectorRepository().Update(ctx, collectorAggregate)
	}

	accountAggregate, err := uow.AccountRepository().Get(ctx, w.AccountID())
	if err != nil {
		return err
	}
	if err = accountAggregate.Credit(w.Amount()); err != nil {
		return err
	}
	return uow.AccountRepository().Update(ctx, accountAggregate)
}
