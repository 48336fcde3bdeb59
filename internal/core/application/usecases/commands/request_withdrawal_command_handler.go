package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

var (
	// ErrOrderNotSettled is returned when a payout references an order that
	// has not completed yet.
	ErrOrderNotSettled = errors.New("order is not completed")
)

// RequestWithdrawalCommandHandler handles payout requests.
//
// The requested amount is debited immediately so a pending request can never
// be double-spent; rejection later refunds it. For commission withdrawals
// the debit hits the collector's balance instead of the user's. A request
// tied to an order requires the order to be completed, owned by the
// requester, and not already withdrawn against.
type RequestWithdrawalCommandHandler struct {
	uowFactory WithdrawalUoWFactory
}

// NewRequestWithdrawalCommandHandler creates a new handler for payout requests.
func NewRequestWithdrawalCommandHandler(uowFactory WithdrawalUoWFactory) RequestWithdrawalCommandHandler {
	return RequestWithdrawalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the RequestWithdrawalCommand within a transaction.
func (h *RequestWithdrawalCommandHandler) Handle(ctx context.Context, cmd RequestWithdrawalCommand) error {
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

	if cmd.OrderID() != nil {
		if err := h.checkOrder(ctx, uow, cmd); err != nil {
			return err
		}
	}

	if err := h.debitOwner(ctx, uow, cmd); err != nil {
		return err
	}

	now := time.Now().UTC()
	withdrawalAggregate, err := withdrawal.NewWithdrawal(
		cmd.WithdrawalID(), cmd.AccountID(), cmd.CollectorID(), cmd.OrderID(),
		cmd.Amount(), cmd.Channel(), now,
	)
	if err != nil {
		return err
	}
	if err = uow.WithdrawalRepository().Add(ctx, withdrawalAggregate); err != nil {
		return err
	}

	operatorType := audit.OperatorUser
	operatorID := cmd.AccountID()
	if cmd.CollectorID() != nil {
		operatorType = audit.OperatorCollector
		operatorID = *cmd.CollectorID()
	}
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EntityWithdrawal, withdrawalAggregate.ID(),
		audit.ActionCreated, "", fmt.Sprintf("%.2f", cmd.Amount()),
		operatorType, &operatorID, now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// checkOrder enforces the order-linked payout rules: the order exists, is
// owned by the requester, has settled, and carries no prior withdrawal.
func (h *RequestWithdrawalCommandHandler) checkOrder(ctx context.Context, uow WithdrawalUoW, cmd RequestWithdrawalCommand) error {
	orderAggregate, err := uow.OrderRepository().Get(ctx, *cmd.OrderID())
	if err != nil {
		return err
	}
	if !orderAggregate.UserID().IsEqual(cmd.AccountID()) {
		return ErrOrderNotOwned
	}
	if orderAggregate.Status() != order.Completed {
		return ErrOrderNotSettled
	}

	_, err = uow.WithdrawalRepository().GetByOrderID(ctx, *cmd.OrderID())
	switch {
	case err == nil:
		return errs.NewConflictErrorWithCause("order", cmd.OrderID().String(),
			errors.New("order already has a withdrawal"))
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return err
	}
}

// debitOwner reserves the amount from whoever the payout belongs to.
func (h *RequestWithdrawalCommandHandler) debitOwner(ctx context.Context, uow WithdrawalUoW, cmd RequestWithdrawalCommand) error {
	if cmd.CollectorID() != nil {
		collectorAggregate, err := uow.CollectorRepository().Get(ctx, *cmd.CollectorID())
		if err != nil {
			return err
		}
		if err = collectorAggregate.EnsureActive(); err != nil {
			return err
		}
		if err = collectorAggregate.DebitBalance(cmd.Amount()); err != nil {
			return err
		}
		return uow.CollectorRepository().Update(ctx, collectorAggregate)
	}

	accountAggregate, err := uow.AccountRepository().Get(ctx, cmd.AccountID())
	if err != nil {
		return err
	}
	if err = accountAggregate.Debit(cmd.Amount()); err != nil {
		return err
	}
	return uow.AccountRepository().Update(ctx, accountAggregate)
}
