package ports

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/material"
)

// MaterialRepository defines the persistence contract for material aggregates
// and their pricing rules.
type MaterialRepository interface {
	// Add persists a new material aggregate to storage.
	Add(ctx context.Context, aggregate *material.Material) error

	// Update persists changes to an existing material aggregate.
	Update(ctx context.Context, aggregate *material.Material) error

	// Get retrieves a material aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*material.Material, error)

	// GetPricingRules retrieves all bonus rules configured for a material.
	// Rule selection happens in the domain; the repository returns them all.
	GetPricingRules(ctx context.Context, materialID kernel.UUID) ([]*material.PricingRule, error)
}
