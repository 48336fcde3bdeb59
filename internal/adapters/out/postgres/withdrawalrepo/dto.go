// Package withdrawalrepo persists withdrawal aggregates with GORM.
package withdrawalrepo

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/withdrawal"

	"github.com/google/uuid"
)

// WithdrawalDTO represents the database structure for persisting withdrawal
// aggregates. Status is stored as its wire string, matching the literals the
// read side filters on.
type WithdrawalDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID    uuid.UUID  `gorm:"type:uuid;index"`
	CollectorID  *uuid.UUID `gorm:"type:uuid"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index"`
	Amount       float64
	Channel      string
	Status       string `gorm:"index"`
	RejectReason string
	RequestedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for withdrawal entities.
func (WithdrawalDTO) TableName() string {
	return "withdrawals"
}

func fromDomain(aggregate *withdrawal.Withdrawal) WithdrawalDTO {
	var collectorID, orderID *uuid.UUID
	if id := aggregate.CollectorID(); id != nil {
		raw := id.Bytes()
		collectorID = &raw
	}
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return WithdrawalDTO{
		ID:           aggregate.ID().Bytes(),
		AccountID:    aggregate.AccountID().Bytes(),
		CollectorID:  collectorID,
		OrderID:      orderID,
		Amount:       aggregate.Amount(),
		Channel:      aggregate.Channel(),
		Status:       aggregate.Status().String(),
		RejectReason: aggregate.RejectReason(),
		RequestedAt:  aggregate.RequestedAt(),
	}
}

func toDomain(dto WithdrawalDTO) (*withdrawal.Withdrawal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	var collectorID, orderID *kernel.UUID
	if dto.CollectorID != nil {
		cID, collectorErr := kernel.UUIDFromBytes((*dto.CollectorID)[:])
		if collectorErr != nil {
			return nil, collectorErr
		}
		collectorID = &cID
	}
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	status, err := withdrawal.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return withdrawal.RestoreWithdrawal(
		id,
		accountID,
		collectorID,
		orderID,
		dto.Amount,
		dto.Channel,
		status,
		dto.RejectReason,
		dto.RequestedAt,
	)
}
