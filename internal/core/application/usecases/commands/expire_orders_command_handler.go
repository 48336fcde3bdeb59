package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/notification"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// ExpireOrdersCommandHandler cancels pending orders that outlived the cutoff.
//
// The sweep uses the same conditional write as claims: an order claimed
// between the sweep's read and its write loses nothing. Such conflicts are
// skipped, the rest of the batch proceeds.
type ExpireOrdersCommandHandler struct {
	uowFactory ExpiryUoWFactory
}

// NewExpireOrdersCommandHandler creates a new handler for the order sweep.
func NewExpireOrdersCommandHandler(uowFactory ExpiryUoWFactory) ExpireOrdersCommandHandler {
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ExpireOrdersCommand within a transaction.
// Returns the number of orders cancelled.
func (h *ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) (int, error) {
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

	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.GetAllPendingBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	expired := 0
	now := time.Now().UTC()
	for _, orderAggregate := range stale {
		if err = orderAggregate.Cancel(); err != nil {
			return 0, err
		}

		err = orderRepo.UpdateFromPending(ctx, orderAggregate)
		if errors.Is(err, errs.ErrConflict) {
			// Claimed while the sweep ran; leave it alone.
			continue
		}
		if err != nil {
			return 0, err
		}

		entry, auditErr := audit.NewEntry(
			kernel.NewUUID(), audit.EntityOrder, orderAggregate.ID(),
			audit.ActionCancelled, order.Pending.String(), order.Cancelled.String(),
			audit.OperatorSystem, nil, now,
		)
		if auditErr != nil {
			return 0, auditErr
		}
		if err = uow.AuditRepository().Add(ctx, entry); err != nil {
			return 0, err
		}

		orderID := orderAggregate.ID()
		note, noteErr := notification.NewNotification(
			kernel.NewUUID(), orderAggregate.UserID(),
			"Order cancelled",
			fmt.Sprintf("Your pickup at %s was not claimed in time and has been cancelled. You can book again.",
				orderAggregate.Address()),
			notification.KindOrder, audit.EntityOrder, &orderID, now,
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
