package commands

import (
	"context"
	"errors"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// ErrOrderNotOwned is returned when a user operates on someone else's order.
var ErrOrderNotOwned = errors.New("order does not belong to the user")

// CancelOrderCommandHandler handles user-side cancellation of pending orders.
// The conditional write guarantees a cancel that races with a claim cannot
// strand a collector: whichever lands first wins, the other gets a conflict.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a new handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the CancelOrderCommand within a transaction.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !orderAggregate.UserID().IsEqual(cmd.UserID()) {
		return ErrOrderNotOwned
	}

	// A cancel that arrives after a claim landed is a lost race, matching
	// the error the conditional write reports.
	if orderAggregate.Status() != order.Pending {
		return errs.NewConflictError("order", cmd.OrderID().String())
	}
	if err = orderAggregate.Cancel(); err != nil {
		return err
	}

	if err = orderRepo.UpdateFromPending(ctx, orderAggregate); err != nil {
		return err
	}

	userID := cmd.UserID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EntityOrder, orderAggregate.ID(),
		audit.ActionCancelled, order.Pending.String(), order.Cancelled.String(),
		audit.OperatorUser, &userID, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
