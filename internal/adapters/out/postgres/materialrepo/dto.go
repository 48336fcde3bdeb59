// Package materialrepo persists material aggregates and their pricing rules
// with GORM.
package materialrepo

import (
	"time"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"

	"github.com/google/uuid"
)

// MaterialDTO represents the database structure for persisting material aggregates.
type MaterialDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	Category        string `gorm:"index"`
	CurrentPrice    float64
	MarketPrice     float64
	Trend           string
	Unit            string
	InventoryWeight float64
	UpdatedAt       time.Time
}

// TableName specifies the database table name for material entities.
func (MaterialDTO) TableName() string {
	return "materials"
}

// PricingRuleDTO represents the database structure for bonus rules.
type PricingRuleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	MaterialID   uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	MinWeight    float64
	BonusPercent float64
	Priority     int
}

// TableName specifies the database table name for pricing rule entities.
func (PricingRuleDTO) TableName() string {
	return "pricing_rules"
}

func fromDomain(aggregate *material.Material) MaterialDTO {
	return MaterialDTO{
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

func toDomain(dto MaterialDTO) (*material.Material, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trend, err := material.TrendFromString(dto.Trend)
	if err != nil {
		return nil, err
	}

	return material.RestoreMaterial(
		id,
		dto.Name,
		dto.Category,
		dto.CurrentPrice,
		dto.MarketPrice,
		trend,
		dto.Unit,
		dto.InventoryWeight,
	)
}

func ruleToDomain(dto PricingRuleDTO) (*material.PricingRule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	materialID, err := kernel.UUIDFromBytes(dto.MaterialID[:])
	if err != nil {
		return nil, err
	}

	return material.NewPricingRule(id, materialID, dto.Name, dto.MinWeight, dto.BonusPercent, dto.Priority)
}
