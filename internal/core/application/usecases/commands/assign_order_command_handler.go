package commands

import (
	"context"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

// AssignOrderCommandHandler handles dispatcher-side collector assignment.
//
// Assignment races with collector claims on the same pending order. The
// handler loads the order, transitions it in memory, and persists through
// UpdateFromPending: a conditional write that only lands if the stored row
// is still pending. A lost race surfaces as errs.ErrConflict and nothing
// is written.
type AssignOrderCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

// NewAssignOrderCommandHandler creates a new handler for assignments.
func NewAssignOrderCommandHandler(uowFactory ScheduleUoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the AssignOrderCommand within a transaction.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	// An order already taken by a claim reads as a lost race, matching the
	// error the conditional write reports.
	if err = orderAggregate.Status().ValidateSchedule(); err != nil {
		return errs.NewConflictErrorWithCause("order", cmd.OrderID().String(), err)
	}
	if err = orderAggregate.Schedule(cmd.CollectorID()); err != nil {
		return err
	}

	if err = orderRepo.UpdateFromPending(ctx, orderAggregate); err != nil {
		return err
	}

	adminID := cmd.AdminID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EntityOrder, orderAggregate.ID(),
		audit.ActionAssigned, order.Pending.String(), order.Scheduled.String(),
		audit.OperatorAdmin, &adminID, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
