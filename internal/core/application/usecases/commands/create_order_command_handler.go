package commands

import (
	"context"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for booking pickups.
// Snapshots the material's current price onto the new order and records the
// creation in the audit trail within one transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a new handler for booking pickups.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the CreateOrderCommand within a transaction.
// Resolves the material, books the order in Pending status with the price
// snapshot, and appends the audit entry the timeline's first step comes from.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	materialEntity, err := uow.MaterialRepository().Get(ctx, cmd.MaterialID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	orderAggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.UserID(), cmd.MaterialID(),
		cmd.Address(), materialEntity.Category(), cmd.ContactPhone(),
		materialEntity.CurrentPrice(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, orderAggregate); err != nil {
		return err
	}

	userID := cmd.UserID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EntityOrder, orderAggregate.ID(),
		audit.ActionCreated, "", order.Pending.String(),
		audit.OperatorUser, &userID, now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
