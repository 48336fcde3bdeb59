// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire string so read-side queries can filter on the
// same literals the API exposes. Settlement columns stay NULL until the order
// completes.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID  `gorm:"type:uuid;index"`
	MaterialID        uuid.UUID  `gorm:"type:uuid"`
	CollectorID       *uuid.UUID `gorm:"type:uuid;index"`
	Address           string
	Category          string `gorm:"index"`
	ContactPhone      string
	UnitPriceSnapshot float64
	Status            string `gorm:"index"`
	ActualWeight      *float64
	ImpurityPercent   *float64
	Bonus             *float64
	Amount            *float64
	CreatedAt         time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var collectorID *uuid.UUID
	if id := aggregate.Collector(); id != nil {
		raw := id.Bytes()
		collectorID = &raw
	}

	dto := OrderDTO{
		ID:                aggregate.ID().Bytes(),
		UserID:            aggregate.UserID().Bytes(),
		MaterialID:        aggregate.MaterialID().Bytes(),
		CollectorID:       collectorID,
		Address:           aggregate.Address(),
		Category:          aggregate.Category(),
		ContactPhone:      aggregate.ContactPhone(),
		UnitPriceSnapshot: aggregate.UnitPriceSnapshot(),
		Status:            aggregate.Status().String(),
		CreatedAt:         aggregate.CreatedAt(),
	}

	if s := aggregate.Settlement(); s != nil {
		dto.ActualWeight = &s.Weight
		dto.ImpurityPercent = &s.ImpurityPercent
		dto.Bonus = &s.Bonus
		dto.Amount = &s.Amount
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	materialID, err := kernel.UUIDFromBytes(dto.MaterialID[:])
	if err != nil {
		return nil, err
	}

	var collectorID *kernel.UUID
	if dto.CollectorID != nil {
		cID, collectorErr := kernel.UUIDFromBytes((*dto.CollectorID)[:])
		if collectorErr != nil {
			return nil, collectorErr
		}
		collectorID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var settlement *order.Settlement
	if dto.ActualWeight != nil {
		settlement = &order.Settlement{
			Weight: *dto.ActualWeight,
		}
		if dto.ImpurityPercent != nil {
			settlement.ImpurityPercent = *dto.ImpurityPercent
		}
		if dto.Bonus != nil {
			settlement.Bonus = *dto.Bonus
		}
		if dto.Amount != nil {
			settlement.Amount = *dto.Amount
		}
	}

	return order.RestoreOrder(
		id,
		userID,
		materialID,
		collectorID,
		dto.Address,
		dto.Category,
		dto.ContactPhone,
		dto.UnitPriceSnapshot,
		status,
		settlement,
		dto.CreatedAt,
	)
}
