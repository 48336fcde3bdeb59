package memory

import (
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/notification"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"

	"github.com/google/uuid"
)

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func orderToRecord(aggregate *order.Order) orderRecord {
	rec := orderRecord{
		ID:                aggregate.ID().Bytes(),
		UserID:            aggregate.UserID().Bytes(),
		MaterialID:        aggregate.MaterialID().Bytes(),
		CollectorID:       optionalBytes(aggregate.Collector()),
		Address:           aggregate.Address(),
		Category:          aggregate.Category(),
		ContactPhone:      aggregate.ContactPhone(),
		UnitPriceSnapshot: aggregate.UnitPriceSnapshot(),
		Status:            aggregate.Status().String(),
		CreatedAt:         aggregate.CreatedAt(),
	}
	if s := aggregate.Settlement(); s != nil {
		weight, impurity, bonus, amount := s.Weight, s.ImpurityPercent, s.Bonus, s.Amount
		rec.ActualWeight = &weight
		rec.ImpurityPercent = &impurity
		rec.Bonus = &bonus
		rec.Amount = &amount
	}
	return rec
}

func orderFromRecord(rec orderRecord) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(rec.UserID[:])
	if err != nil {
		return nil, err
	}
	materialID, err := kernel.UUIDFromBytes(rec.MaterialID[:])
	if err != nil {
		return nil, err
	}
	collectorID, err := optionalUUID(rec.CollectorID)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(rec.Status)
	if err != nil {
		return nil, err
	}

	var settlement *order.Settlement
	if rec.ActualWeight != nil {
		settlement = &order.Settlement{
			Weight:          *rec.ActualWeight,
			ImpurityPercent: *rec.ImpurityPercent,
			Bonus:           *rec.Bonus,
			Amount:          *rec.Amount,
		}
	}

	return order.RestoreOrder(
		id, userID, materialID, collectorID,
		rec.Address, rec.Category, rec.ContactPhone,
		rec.UnitPriceSnapshot, status, settlement, rec.CreatedAt,
	)
}

func collectorToRecord(aggregate *collector.Collector) collectorRecord {
	return collectorRecord{
		ID:        aggregate.ID().Bytes(),
		AccountID: optionalBytes(aggregate.AccountID()),
		Name:      aggregate.Name(),
		Phone:     aggregate.Phone(),
		Balance:   aggregate.Balance(),
		Rating:    aggregate.Rating(),
		Active:    aggregate.IsActive(),
	}
}

func collectorFromRecord(rec collectorRecord) (*collector.Collector, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := optionalUUID(rec.AccountID)
	if err != nil {
		return nil, err
	}
	return collector.RestoreCollector(id, accountID, rec.Name, rec.Phone, rec.Balance, rec.Rating, rec.Active)
}

func accountToRecord(aggregate *account.Account) accountRecord {
	return accountRecord{
		ID:      aggregate.ID().Bytes(),
		OpenID:  aggregate.OpenID(),
		Name:    aggregate.Name(),
		Balance: aggregate.Balance(),
		Points:  aggregate.Points(),
	}
}

func accountFromRecord(rec accountRecord) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	return account.RestoreAccount(id, rec.OpenID, rec.Name, rec.Balance, rec.Points)
}

func withdrawalToRecord(aggregate *withdrawal.Withdrawal) withdrawalRecord {
	return withdrawalRecord{
		ID:           aggregate.ID().Bytes(),
		AccountID:    aggregate.AccountID().Bytes(),
		CollectorID:  optionalBytes(aggregate.CollectorID()),
		OrderID:      optionalBytes(aggregate.OrderID()),
		Amount:       aggregate.Amount(),
		Channel:      aggregate.Channel(),
		Status:       aggregate.Status().String(),
		RejectReason: aggregate.RejectReason(),
		RequestedAt:  aggregate.RequestedAt(),
	}
}

func withdrawalFromRecord(rec withdrawalRecord) (*withdrawal.Withdrawal, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(rec.AccountID[:])
	if err != nil {
		return nil, err
	}
	collectorID, err := optionalUUID(rec.CollectorID)
	if err != nil {
		return nil, err
	}
	orderID, err := optionalUUID(rec.OrderID)
	if err != nil {
		return nil, err
	}
	status, err := withdrawal.StatusFromString(rec.Status)
	if err != nil {
		return nil, err
	}
	return withdrawal.RestoreWithdrawal(
		id, accountID, collectorID, orderID,
		rec.Amount, rec.Channel, status, rec.RejectReason, rec.RequestedAt,
	)
}

func materialToRecord(aggregate *material.Material) materialRecord {
	return materialRecord{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Category:        aggregate.Category(),
		CurrentPrice:    aggregate.CurrentPrice(),
		MarketPrice:     aggregate.MarketPrice(),
		Trend:           aggregate.Trend().String(),
		Unit:            aggregate.Unit(),
		InventoryWeight: aggregate.InventoryWeight(),
	}
}

func materialFromRecord(rec materialRecord) (*material.Material, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	trend, err := material.TrendFromString(rec.Trend)
	if err != nil {
		return nil, err
	}
	return material.RestoreMaterial(
		id, rec.Name, rec.Category,
		rec.CurrentPrice, rec.MarketPrice, trend, rec.Unit, rec.InventoryWeight,
	)
}

func pricingRuleToRecord(rule *material.PricingRule) pricingRuleRecord {
	return pricingRuleRecord{
		ID:           rule.ID().Bytes(),
		MaterialID:   rule.MaterialID().Bytes(),
		Name:         rule.Name(),
		MinWeight:    rule.MinWeight(),
		BonusPercent: rule.BonusPercent(),
		Priority:     rule.Priority(),
	}
}

func pricingRuleFromRecord(rec pricingRuleRecord) (*material.PricingRule, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	materialID, err := kernel.UUIDFromBytes(rec.MaterialID[:])
	if err != nil {
		return nil, err
	}
	return material.NewPricingRule(id, materialID, rec.Name, rec.MinWeight, rec.BonusPercent, rec.Priority)
}

func auditToRecord(entry *audit.Entry) auditRecord {
	return auditRecord{
		ID:           entry.ID().Bytes(),
		EntityType:   entry.EntityType(),
		EntityID:     entry.EntityID().Bytes(),
		Action:       entry.Action(),
		OldValue:     entry.OldValue(),
		NewValue:     entry.NewValue(),
		OperatorType: entry.OperatorType(),
		OperatorID:   optionalBytes(entry.OperatorID()),
		CreatedAt:    entry.CreatedAt(),
	}
}

func auditFromRecord(rec auditRecord) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromBytes(rec.EntityID[:])
	if err != nil {
		return nil, err
	}
	operatorID, err := optionalUUID(rec.OperatorID)
	if err != nil {
		return nil, err
	}
	return audit.NewEntry(
		id, rec.EntityType, entityID,
		rec.Action, rec.OldValue, rec.NewValue,
		rec.OperatorType, operatorID, rec.CreatedAt,
	)
}

func notificationToRecord(aggregate *notification.Notification) notificationRecord {
	return notificationRecord{
		ID:                aggregate.ID().Bytes(),
		AccountID:         aggregate.AccountID().Bytes(),
		Title:             aggregate.Title(),
		Content:           aggregate.Content(),
		Kind:              aggregate.Kind(),
		RelatedEntityType: aggregate.RelatedEntityType(),
		RelatedEntityID:   optionalBytes(aggregate.RelatedEntityID()),
		Read:              aggregate.Read(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

func notificationFromRecord(rec notificationRecord) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(rec.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(rec.AccountID[:])
	if err != nil {
		return nil, err
	}
	relatedEntityID, err := optionalUUID(rec.RelatedEntityID)
	if err != nil {
		return nil, err
	}
	return notification.RestoreNotification(
		id, accountID, rec.Title, rec.Content, rec.Kind,
		rec.RelatedEntityType, relatedEntityID, rec.Read, rec.CreatedAt,
	)
}
