package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/notification"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/core/domain/services"
)

// CompleteOrderCommandHandler handles the settlement workflow when a
// collector finishes a pickup.
//
// Within one transaction the handler:
//  1. computes the settlement from the price snapshot, weight, impurity
//     deduction, and the material's tier rules
//  2. completes the order, which requires the acting collector to be the
//     one bound at scheduling time
//  3. credits the user's balance and points
//  4. credits the collector's commission cut
//  5. moves the measured weight into station inventory
//  6. appends the audit entry and notifies the user
type CompleteOrderCommandHandler struct {
	uowFactory SettlementUoWFactory
	settler    services.Settler
}

// NewCompleteOrderCommandHandler creates a new handler for completions.
func NewCompleteOrderCommandHandler(uowFactory SettlementUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		settler:    services.NewSettler(),
	}
}

// Handle processes the CompleteOrderCommand within a transaction.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	materialRepo := uow.MaterialRepository()
	rules, err := materialRepo.GetPricingRules(ctx, orderAggregate.MaterialID())
	if err != nil {
		return err
	}

	settlement, err := h.settler.Settle(orderAggregate, cmd.ActualWeight(), cmd.ImpurityPercent(), rules)
	if err != nil {
		return err
	}

	if err = orderAggregate.CompleteBy(cmd.CollectorID(), settlement); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	accountAggregate, err := uow.AccountRepository().Get(ctx, orderAggregate.UserID())
	if err != nil {
		return err
	}
	if err = accountAggregate.CreditSettlement(settlement.Amount, settlement.Weight); err != nil {
		return err
	}
	if err = uow.AccountRepository().Update(ctx, accountAggregate); err != nil {
		return err
	}

	collectorAggregate, err := uow.CollectorRepository().Get(ctx, cmd.CollectorID())
	if err != nil {
		return err
	}
	commission := kernel.RoundCents(kernel.Percent(settlement.Amount, collector.CommissionPercent))
	if err = collectorAggregate.CreditCommission(commission); err != nil {
		return err
	}
	if err = uow.CollectorRepository().Update(ctx, collectorAggregate); err != nil {
		return err
	}

	materialAggregate, err := materialRepo.Get(ctx, orderAggregate.MaterialID())
	if err != nil {
		return err
	}
	if err = materialAggregate.AddInventory(settlement.Weight); err != nil {
		return err
	}
	if err = materialRepo.Update(ctx, materialAggregate); err != nil {
		return err
	}

	now := time.Now().UTC()
	collectorID := cmd.CollectorID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(), audit.EntityOrder, orderAggregate.ID(),
		audit.ActionCompleted, order.Scheduled.String(), order.Completed.String(),
		audit.OperatorCollector, &collectorID, now,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	orderID := orderAggregate.ID()
	note, err := notification.NewNotification(
		kernel.NewUUID(), orderAggregate.UserID(),
		"Order completed",
		fmt.Sprintf("Your pickup settled at %.2fkg for %.2f, credited to your balance.",
			settlement.Weight, settlement.Amount),
		notification.KindOrder, audit.EntityOrder, &orderID, now,
	)
	if err != nil {
		return err
	}
	if err = uow.NotificationRepository().Add(ctx, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
