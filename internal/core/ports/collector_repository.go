package ports

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/collector"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

// CollectorRepository defines the persistence contract for collector aggregates.
type CollectorRepository interface {
	// Add persists a new collector aggregate to storage.
	Add(ctx context.Context, aggregate *collector.Collector) error

	// Update persists changes to an existing collector aggregate.
	Update(ctx context.Context, aggregate *collector.Collector) error

	// Get retrieves a collector aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*collector.Collector, error)

	// GetByAccountID retrieves the collector linked to a login account.
	// Used to resolve the acting collector from an authenticated session.
	GetByAccountID(ctx context.Context, accountID kernel.UUID) (*collector.Collector, error)
}
