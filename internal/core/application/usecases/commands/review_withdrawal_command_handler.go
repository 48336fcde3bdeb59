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

// ReviewWithdrawalCommandHandler handles admin approval and rejection of
// payout requests. A rejection refunds the reserved amount to whichever
// balance it was debited from. Either outcome notifies the owner.
type ReviewWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
}

// NewReviewWithdrawalCommandHandler creates a new handler for payout reviews.
func NewReviewWithdrawalCommandHandler(uowFactory WithdrawalUoWFactory) ReviewWithdrawalCommandHandler {
	return ReviewWithdrawalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ReviewWithdrawalCommand within a transaction.
func (h *ReviewWithdrawalCommandHandler) Handle(ctx context.Context, cmd ReviewWithdrawalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	withdrawalRepo := uow.WithdrawalRepository()
	withdrawalAggregate, err := withdrawalRepo.Get(ctx, cmd.WithdrawalID())
	if err != nil {
		return err
	}

	var action, title, content string
	if cmd.Approve() {
		if err = withdrawalAggregate.Approve(); err != nil {
			return err
		}
		action = audit.ActionApproved
		title = "Withdrawal approved"
		content = fmt.Sprintf("Your withdrawal of %.2f was approved and is on its way.",
			withdrawalAggregate.Amount())
	} else {
		if err = withdrawalAggregate.Reject(cmd.Reason()); err != nil {
			return err
		}
		if err = refundOwner(ctx, uow, withdrawalAggregate); err != nil {
			return err
		}
		action = audit.ActionRejected
		title = "Withdrawal rejected"
		content = fmt.Sprintf("Your withdrawal of %.2f was rejected: %s. The amount was returned to your balance.",
			withdrawalAggregate.Amount(), cmd.Reason())
	}

	if err = withdrawalRepo.Update(ctx, withdrawalAggregate); err != nil {
		return err
	}

	now := time.Now().UTC()
	adminID := cmd.AdminID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EntityWithdrawal, withdrawalAggregate.ID(),
		action, withdrawal.Pending.String(), withdrawalAggregate.Status().String(),
		audit.OperatorAdmin, &adminID, now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	withdrawalID := withdrawalAggregate.ID()
	note, err := notification.NewNotification(
		kernel.NewUUID(), withdrawalAggregate.AccountID(),
		title, content, notification.KindWithdrawal,
		audit.EntityWithdrawal, &withdrawalID, now,
	)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// refundOwner returns a rejected request's amount to the balance it was
// debited from at request time.
func refundOwner(ctx context.Context, uow WithdrawalUoW, w *withdrawal.Withdrawal) error {
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
