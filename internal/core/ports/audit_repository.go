package ports

import (
	"context"

	"github.com/alanbulan/EcoLoop/internal/core/domain/model/audit"
	"github.com/alanbulan/EcoLoop/internal/core/domain/model/kernel"
)

// AuditRepository defines the persistence contract for audit entries.
// Entries are append-only.
type AuditRepository interface {
	// Add persists a new audit entry.
	Add(ctx context.Context, entry *audit.Entry) error

	// GetByEntity retrieves all entries for one entity in creation order.
	// Order timelines are rebuilt from this sequence.
	GetByEntity(ctx context.Context, entityType string, entityID kernel.UUID) ([]*audit.Entry, error)
}
