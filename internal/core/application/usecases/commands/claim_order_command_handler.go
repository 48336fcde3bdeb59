package commands

import (
	"context"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// ClaimOrderCommandHandler handles collector-side claims on pending orders.
//
// Claims are contended: when two collectors grab the same order, both load
// it as pending and both transition it in memory, but the conditional write
// lets only the first one through. The loser gets errs.ErrConflict, its
// transaction rolls back, and the order keeps the winner's binding.
type ClaimOrderCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

// NewClaimOrderCommandHandler creates a new handler for claims.
func NewClaimOrderCommandHandler(uowFactory ScheduleUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ClaimOrderCommand within a transaction.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	collectorEntity, err := uow.CollectorRepository().Get(ctx, cmd.CollectorID())
	if err != nil {
		return err
	}
	if err = collectorEntity.EnsureActive(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// An order that already left Pending reads as a lost race, the same
	// outcome the conditional write reports, so the caller sees one error
	// either way.
	if err = orderAggregate.Status().ValidateSchedule(); err != nil {
		return errs.NewConflictErrorWithCause("order", cmd.OrderID().String(), err)
	}
	if err = orderAggregate.Schedule(cmd.CollectorID()); err != nil {
		return err
	}

	if err = orderRepo.UpdateFromPending(ctx, orderAggregate); err != nil {
		return err
	}

	collectorID := cmd.CollectorID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EntityOrder, orderAggregate.ID(),
		audit.ActionClaimed, order.Pending.String(), order.Scheduled.String(),
		audit.OperatorCollector, &collectorID, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
