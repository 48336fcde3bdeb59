// Package accountrepo persists account aggregates with GORM.
package accountrepo

import (
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/account"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account aggregates.
type AccountDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OpenID  string    `gorm:"uniqueIndex"`
	Name    string
	Balance float64
	Points  int
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:      aggregate.ID().Bytes(),
		OpenID:  aggregate.OpenID(),
		Name:    aggregate.Name(),
		Balance: aggregate.Balance(),
		Points:  aggregate.Points(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, dto.OpenID, dto.Name, dto.Balance, dto.Points)
}
