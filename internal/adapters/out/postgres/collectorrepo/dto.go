// Package collectorrepo persists collector aggregates with GORM.
package collectorrepo

import (
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CollectorDTO represents the database structure for persisting collector aggregates.
type CollectorDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID *uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Phone     string
	Balance   float64
	Rating    float64
	Active    bool
}

// TableName specifies the database table name for collector entities.
func (CollectorDTO) TableName() string {
	return "collectors"
}

func fromDomain(aggregate *collector.Collector) CollectorDTO {
	var accountID *uuid.UUID
	if id := aggregate.AccountID(); id != nil {
		raw := id.Bytes()
		accountID = &raw
	}

	return CollectorDTO{
		ID:        aggregate.ID().Bytes(),
		AccountID: accountID,
		Name:      aggregate.Name(),
		Phone:     aggregate.Phone(),
		Balance:   aggregate.Balance(),
		Rating:    aggregate.Rating(),
		Active:    aggregate.IsActive(),
	}
}

func toDomain(dto CollectorDTO) (*collector.Collector, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var accountID *kernel.UUID
	if dto.AccountID != nil {
		aID, accountErr := kernel.UUIDFromBytes((*dto.AccountID)[:])
		if accountErr != nil {
			return nil, accountErr
		}
		accountID = &aID
	}

	return collector.RestoreCollector(id, accountID, dto.Name, dto.Phone, dto.Balance, dto.Rating, dto.Active)
}
