package memory

import (
	"context"
	"sort"
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/notification"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"
	"github.com/alanbulan/EcoLoop/internal/pkg/errs"
)

type memoryOrderRepository struct {
	uow *UnitOfWork
}

func (r *memoryOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.orders[key]; exists {
			return errs.NewConflictError("order", aggregate.ID().String())
		}
		t.orders[key] = orderToRecord(aggregate)
		return nil
	})
}

func (r *memoryOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.orders[key]; !exists {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		t.orders[key] = orderToRecord(aggregate)
		return nil
	})
}

func (r *memoryOrderRepository) UpdateFromPending(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		stored, exists := t.orders[key]
		if !exists || stored.Status != order.Pending.String() {
			return errs.NewConflictError("order", aggregate.ID().String())
		}
		t.orders[key] = orderToRecord(aggregate)
		return nil
	})
}

func (r *memoryOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var result *order.Order
	err := r.uow.run(func(t *tables) error {
		rec, exists := t.orders[id.Bytes()]
		if !exists {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		var mapErr error
		result, mapErr = orderFromRecord(rec)
		return mapErr
	})
	return result, err
}

func (r *memoryOrderRepository) GetAllPendingBefore(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	var result []*order.Order
	err := r.uow.run(func(t *tables) error {
		for _, rec := range t.orders {
			if rec.Status != order.Pending.String() || !rec.CreatedAt.Before(cutoff) {
				continue
			}
			o, mapErr := orderFromRecord(rec)
			if mapErr != nil {
				return mapErr
			}
			result = append(result, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result, nil
}

type memoryCollectorRepository struct {
	uow *UnitOfWork
}

func (r *memoryCollectorRepository) Add(_ context.Context, aggregate *collector.Collector) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.collectors[key]; exists {
			return errs.NewConflictError("collector", aggregate.ID().String())
		}
		t.collectors[key] = collectorToRecord(aggregate)
		return nil
	})
}

func (r *memoryCollectorRepository) Update(_ context.Context, aggregate *collector.Collector) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.collectors[key]; !exists {
			return errs.NewObjectNotFoundError("collector", aggregate.ID().String())
		}
		t.collectors[key] = collectorToRecord(aggregate)
		return nil
	})
}

func (r *memoryCollectorRepository) Get(_ context.Context, id kernel.UUID) (*collector.Collector, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var result *collector.Collector
	err := r.uow.run(func(t *tables) error {
		rec, exists := t.collectors[id.Bytes()]
		if !exists {
			return errs.NewObjectNotFoundError("collector", id.String())
		}
		var mapErr error
		result, mapErr = collectorFromRecord(rec)
		return mapErr
	})
	return result, err
}

func (r *memoryCollectorRepository) GetByAccountID(_ context.Context, accountID kernel.UUID) (*collector.Collector, error) {
	if err := accountID.Validate(); err != nil {
		return nil, err
	}
	var result *collector.Collector
	err := r.uow.run(func(t *tables) error {
		key := accountID.Bytes()
		for _, rec := range t.collectors {
			if rec.AccountID != nil && *rec.AccountID == key {
				var mapErr error
				result, mapErr = collectorFromRecord(rec)
				return mapErr
			}
		}
		return errs.NewObjectNotFoundError("collector", accountID.String())
	})
	return result, err
}

type memoryAccountRepository struct {
	uow *UnitOfWork
}

func (r *memoryAccountRepository) Add(_ context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.accounts[key]; exists {
			return errs.NewConflictError("account", aggregate.ID().String())
		}
		t.accounts[key] = accountToRecord(aggregate)
		return nil
	})
}

func (r *memoryAccountRepository) Update(_ context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.accounts[key]; !exists {
			return errs.NewObjectNotFoundError("account", aggregate.ID().String())
		}
		t.accounts[key] = accountToRecord(aggregate)
		return nil
	})
}

func (r *memoryAccountRepository) Get(_ context.Context, id kernel.UUID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var result *account.Account
	err := r.uow.run(func(t *tables) error {
		rec, exists := t.accounts[id.Bytes()]
		if !exists {
			return errs.NewObjectNotFoundError("account", id.String())
		}
		var mapErr error
		result, mapErr = accountFromRecord(rec)
		return mapErr
	})
	return result, err
}

func (r *memoryAccountRepository) GetByOpenID(_ context.Context, openID string) (*account.Account, error) {
	if openID == "" {
		return nil, errs.NewValueIsRequiredError("openID")
	}
	var result *account.Account
	err := r.uow.run(func(t *tables) error {
		for _, rec := range t.accounts {
			if rec.OpenID == openID {
				var mapErr error
				result, mapErr = accountFromRecord(rec)
				return mapErr
			}
		}
		return errs.NewObjectNotFoundError("account", openID)
	})
	return result, err
}

type memoryWithdrawalRepository struct {
	uow *UnitOfWork
}

func (r *memoryWithdrawalRepository) Add(_ context.Context, aggregate *withdrawal.Withdrawal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.withdrawals[key]; exists {
			return errs.NewConflictError("withdrawal", aggregate.ID().String())
		}
		t.withdrawals[key] = withdrawalToRecord(aggregate)
		return nil
	})
}

func (r *memoryWithdrawalRepository) Update(_ context.Context, aggregate *withdrawal.Withdrawal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.withdrawals[key]; !exists {
			return errs.NewObjectNotFoundError("withdrawal", aggregate.ID().String())
		}
		t.withdrawals[key] = withdrawalToRecord(aggregate)
		return nil
	})
}

func (r *memoryWithdrawalRepository) Get(_ context.Context, id kernel.UUID) (*withdrawal.Withdrawal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var result *withdrawal.Withdrawal
	err := r.uow.run(func(t *tables) error {
		rec, exists := t.withdrawals[id.Bytes()]
		if !exists {
			return errs.NewObjectNotFoundError("withdrawal", id.String())
		}
		var mapErr error
		result, mapErr = withdrawalFromRecord(rec)
		return mapErr
	})
	return result, err
}

func (r *memoryWithdrawalRepository) GetByOrderID(_ context.Context, orderID kernel.UUID) (*withdrawal.Withdrawal, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	var result *withdrawal.Withdrawal
	err := r.uow.run(func(t *tables) error {
		key := orderID.Bytes()
		for _, rec := range t.withdrawals {
			if rec.OrderID != nil && *rec.OrderID == key {
				var mapErr error
				result, mapErr = withdrawalFromRecord(rec)
				return mapErr
			}
		}
		return errs.NewObjectNotFoundError("withdrawal", orderID.String())
	})
	return result, err
}

func (r *memoryWithdrawalRepository) GetAllPendingBefore(_ context.Context, cutoff time.Time) ([]*withdrawal.Withdrawal, error) {
	var result []*withdrawal.Withdrawal
	err := r.uow.run(func(t *tables) error {
		for _, rec := range t.withdrawals {
			if rec.Status != withdrawal.Pending.String() || !rec.RequestedAt.Before(cutoff) {
				continue
			}
			w, mapErr := withdrawalFromRecord(rec)
			if mapErr != nil {
				return mapErr
			}
			result = append(result, w)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestedAt().Before(result[j].RequestedAt())
	})
	return result, nil
}

type memoryMaterialRepository struct {
	uow *UnitOfWork
}

func (r *memoryMaterialRepository) Add(_ context.Context, aggregate *material.Material) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.materials[key]; exists {
			return errs.NewConflictError("material", aggregate.ID().String())
		}
		t.materials[key] = materialToRecord(aggregate)
		return nil
	})
}

func (r *memoryMaterialRepository) Update(_ context.Context, aggregate *material.Material) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.materials[key]; !exists {
			return errs.NewObjectNotFoundError("material", aggregate.ID().String())
		}
		t.materials[key] = materialToRecord(aggregate)
		return nil
	})
}

func (r *memoryMaterialRepository) Get(_ context.Context, id kernel.UUID) (*material.Material, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var result *material.Material
	err := r.uow.run(func(t *tables) error {
		rec, exists := t.materials[id.Bytes()]
		if !exists {
			return errs.NewObjectNotFoundError("material", id.String())
		}
		var mapErr error
		result, mapErr = materialFromRecord(rec)
		return mapErr
	})
	return result, err
}

func (r *memoryMaterialRepository) GetPricingRules(_ context.Context, materialID kernel.UUID) ([]*material.PricingRule, error) {
	if err := materialID.Validate(); err != nil {
		return nil, err
	}
	var result []*material.PricingRule
	err := r.uow.run(func(t *tables) error {
		key := materialID.Bytes()
		for _, rec := range t.pricingRules {
			if rec.MaterialID != key {
				continue
			}
			rule, mapErr := pricingRuleFromRecord(rec)
			if mapErr != nil {
				return mapErr
			}
			result = append(result, rule)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Priority() > result[j].Priority()
	})
	return result, nil
}

type memoryAuditRepository struct {
	uow *UnitOfWork
}

func (r *memoryAuditRepository) Add(_ context.Context, entry *audit.Entry) error {
	return r.uow.run(func(t *tables) error {
		t.auditLog = append(t.auditLog, auditToRecord(entry))
		return nil
	})
}

func (r *memoryAuditRepository) GetByEntity(_ context.Context, entityType string, entityID kernel.UUID) ([]*audit.Entry, error) {
	if err := entityID.Validate(); err != nil {
		return nil, err
	}
	var result []*audit.Entry
	err := r.uow.run(func(t *tables) error {
		key := entityID.Bytes()
		for _, rec := range t.auditLog {
			if rec.EntityType != entityType || rec.EntityID != key {
				continue
			}
			entry, mapErr := auditFromRecord(rec)
			if mapErr != nil {
				return mapErr
			}
			result = append(result, entry)
		}
		return nil
	})
	return result, err
}

type memoryNotificationRepository struct {
	uow *UnitOfWork
}

func (r *memoryNotificationRepository) Add(_ context.Context, aggregate *notification.Notification) error {
	return r.uow.run(func(t *tables) error {
		t.notifications[aggregate.ID().Bytes()] = notificationToRecord(aggregate)
		return nil
	})
}

func (r *memoryNotificationRepository) Update(_ context.Context, aggregate *notification.Notification) error {
	return r.uow.run(func(t *tables) error {
		key := aggregate.ID().Bytes()
		if _, exists := t.notifications[key]; !exists {
			return errs.NewObjectNotFoundError("notification", aggregate.ID().String())
		}
		t.notifications[key] = notificationToRecord(aggregate)
		return nil
	})
}

func (r *memoryNotificationRepository) Get(_ context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var result *notification.Notification
	err := r.uow.run(func(t *tables) error {
		rec, exists := t.notifications[id.Bytes()]
		if !exists {
			return errs.NewObjectNotFoundError("notification", id.String())
		}
		var mapErr error
		result, mapErr = notificationFromRecord(rec)
		return mapErr
	})
	return result, err
}
